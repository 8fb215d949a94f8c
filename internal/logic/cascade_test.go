package logic

import (
	"context"
	"testing"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
	"github.com/anoma/taiga-core/internal/tree"
)

// buildCascadeScenario sets up a bundle where a cascade intent at leaf 0
// names a carried resource spent at leaf 2. If mismatchLabel is set, the
// intent's label names a different commitment than the carried resource's.
func buildCascadeScenario(t *testing.T, mismatchLabel bool) (CascadeWitness, PublicInputs, *tree.ResourceExistenceWitness) {
	t.Helper()
	ctx := context.Background()

	newKeyed := func(label primitives.F, quantity uint64, ephemeral bool) resource.Resource {
		key, err := primitives.RandomF()
		if err != nil {
			t.Fatalf("RandomF failed: %v", err)
		}
		nonce, err := primitives.RandomF()
		if err != nil {
			t.Fatalf("RandomF failed: %v", err)
		}
		seed, err := primitives.NewRandomSeed()
		if err != nil {
			t.Fatalf("NewRandomSeed failed: %v", err)
		}
		r, err := resource.NewInput(
			primitives.FromUint64(1), label, primitives.ZeroF(),
			quantity, key, nonce, ephemeral, seed,
		)
		if err != nil {
			t.Fatalf("NewInput failed: %v", err)
		}
		return r
	}

	carried := newKeyed(primitives.FromUint64(7), 3, false)
	carriedCm, err := carried.Commitment()
	if err != nil {
		t.Fatalf("Commitment failed: %v", err)
	}

	label := carriedCm
	if mismatchLabel {
		label = primitives.FromUint64(0xBAD)
	}

	intentKey, err := primitives.RandomF()
	if err != nil {
		t.Fatalf("RandomF failed: %v", err)
	}
	nonce, err := primitives.RandomF()
	if err != nil {
		t.Fatalf("RandomF failed: %v", err)
	}
	seed, err := primitives.NewRandomSeed()
	if err != nil {
		t.Fatalf("NewRandomSeed failed: %v", err)
	}
	intent, err := resource.NewInput(
		cascadeVK, label, primitives.ZeroF(),
		0, intentKey, nonce, true, seed,
	)
	if err != nil {
		t.Fatalf("NewInput failed: %v", err)
	}

	intentNf, err := intent.Nullifier()
	if err != nil {
		t.Fatalf("Nullifier failed: %v", err)
	}
	carriedNf, err := carried.Nullifier()
	if err != nil {
		t.Fatalf("Nullifier failed: %v", err)
	}

	// Two actions: the intent pair and the carried pair; output leaves are
	// stand-ins since this logic only reasons about the two nullifiers.
	leaves := []primitives.F{
		*intentNf, primitives.FromUint64(11),
		*carriedNf, primitives.FromUint64(22),
	}
	resTree, rho, err := tree.BuildResourceTree(ctx, 4, leaves)
	if err != nil {
		t.Fatalf("BuildResourceTree failed: %v", err)
	}
	intentOpening, err := resTree.WitnessFor(ctx, 0)
	if err != nil {
		t.Fatalf("WitnessFor failed: %v", err)
	}
	carriedOpening, err := resTree.WitnessFor(ctx, 2)
	if err != nil {
		t.Fatalf("WitnessFor failed: %v", err)
	}

	cms, err := Commit(seed, cascadeVK, DefaultDynamicLogicVK)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	binding := PublicInputs{
		LeafValue: *intentNf,
		Rho:       rho,
		LogicCm1:  cms.Slot1,
		LogicCm2:  cms.Slot2,
	}

	w := CascadeWitness{
		Intent:      intent,
		Carried:     carried,
		CarriedPath: carriedOpening,
	}
	return w, binding, intentOpening
}

// TestCascadeRequiresNamedResource proves a cascade consumption when the
// intent's label is the carried resource's actual commitment, and checks
// it cannot be proven when the label names anything else.
func TestCascadeRequiresNamedResource(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping proof generation in short mode")
	}
	ctx := context.Background()

	cl, err := NewCascadeLogic()
	if err != nil {
		t.Fatalf("NewCascadeLogic failed: %v", err)
	}

	w, binding, opening := buildCascadeScenario(t, false)
	proof, err := cl.Prove(ctx, binding, opening, w)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	ok, err := cl.Verify(ctx, proof)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Error("cascade over the named resource should verify")
	}

	w, binding, opening = buildCascadeScenario(t, true)
	if _, err := cl.Prove(ctx, binding, opening, w); err == nil {
		t.Error("cascade whose label names a different commitment should not be provable")
	}
}
