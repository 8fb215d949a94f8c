package logic

import (
	"context"
	"testing"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
	"github.com/anoma/taiga-core/internal/tree"
)

func TestIntentLabelDeterministic(t *testing.T) {
	alt1 := resource.ResourceKind{Logic: primitives.FromUint64(1), Label: primitives.FromUint64(2)}
	alt2 := resource.ResourceKind{Logic: primitives.FromUint64(3), Label: primitives.FromUint64(4)}
	npk := primitives.FromUint64(5)
	value := primitives.FromUint64(6)

	l1 := IntentLabel(alt1, alt2, npk, value)
	l2 := IntentLabel(alt1, alt2, npk, value)
	if !primitives.Equal(l1, l2) {
		t.Error("intent label should be deterministic")
	}

	swapped := IntentLabel(alt2, alt1, npk, value)
	if primitives.Equal(l1, swapped) {
		t.Error("intent label should depend on alternative order")
	}
}

// buildIntentScenario constructs a consumed intent resource, a settlement
// output of the given kind, and the resource tree both open against.
func buildIntentScenario(t *testing.T, settleKind resource.ResourceKind) (IntentWitness, PublicInputs, *tree.ResourceExistenceWitness) {
	t.Helper()
	ctx := context.Background()

	alt1 := resource.ResourceKind{Logic: primitives.FromUint64(100), Label: primitives.FromUint64(101)}
	alt2 := resource.ResourceKind{Logic: primitives.FromUint64(200), Label: primitives.FromUint64(201)}

	receiverKey, err := primitives.RandomF()
	if err != nil {
		t.Fatalf("RandomF failed: %v", err)
	}
	receiverNpk, err := resource.Key(receiverKey).Public()
	if err != nil {
		t.Fatalf("Public failed: %v", err)
	}
	receiverValue := primitives.FromUint64(77)

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
		intentVK,
		IntentLabel(alt1, alt2, receiverNpk, receiverValue),
		primitives.ZeroF(),
		0, intentKey, nonce, true, seed,
	)
	if err != nil {
		t.Fatalf("NewInput failed: %v", err)
	}

	settlement := resource.NewOutput(
		settleKind.Logic, settleKind.Label, receiverValue,
		5, receiverNpk, false,
	)
	outSeed, err := primitives.NewRandomSeed()
	if err != nil {
		t.Fatalf("NewRandomSeed failed: %v", err)
	}
	if err := settlement.SetNonce(&intent, outSeed); err != nil {
		t.Fatalf("SetNonce failed: %v", err)
	}

	nfPtr, err := intent.Nullifier()
	if err != nil {
		t.Fatalf("Nullifier failed: %v", err)
	}
	cm, err := settlement.Commitment()
	if err != nil {
		t.Fatalf("Commitment failed: %v", err)
	}

	resTree, rho, err := tree.BuildResourceTree(ctx, 4, []primitives.F{*nfPtr, cm})
	if err != nil {
		t.Fatalf("BuildResourceTree failed: %v", err)
	}
	intentOpening, err := resTree.WitnessFor(ctx, 0)
	if err != nil {
		t.Fatalf("WitnessFor failed: %v", err)
	}
	settleOpening, err := resTree.WitnessFor(ctx, 1)
	if err != nil {
		t.Fatalf("WitnessFor failed: %v", err)
	}

	cms, err := Commit(outSeed, intentVK, DefaultDynamicLogicVK)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	binding := PublicInputs{
		LeafValue: *nfPtr,
		Rho:       rho,
		LogicCm1:  cms.Slot1,
		LogicCm2:  cms.Slot2,
	}

	w := IntentWitness{
		Intent:            intent,
		Alt1:              alt1,
		Alt2:              alt2,
		ReceiverNpk:       receiverNpk,
		ReceiverValue:     receiverValue,
		Settlement:        settlement,
		SettlementOpening: settleOpening,
	}
	return w, binding, intentOpening
}

// TestIntentSettlesEitherAlternative proves and verifies an intent
// consumption for each of the two declared kinds, then checks an
// undeclared kind cannot be proven at all.
func TestIntentSettlesEitherAlternative(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping proof generation in short mode")
	}
	ctx := context.Background()

	il, err := NewIntentLogic()
	if err != nil {
		t.Fatalf("NewIntentLogic failed: %v", err)
	}

	for _, kind := range []resource.ResourceKind{
		{Logic: primitives.FromUint64(100), Label: primitives.FromUint64(101)},
		{Logic: primitives.FromUint64(200), Label: primitives.FromUint64(201)},
	} {
		w, binding, opening := buildIntentScenario(t, kind)
		proof, err := il.Prove(ctx, binding, opening, w)
		if err != nil {
			t.Fatalf("Prove failed for a declared kind: %v", err)
		}
		ok, err := il.Verify(ctx, proof)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if !ok {
			t.Error("settlement of a declared kind should verify")
		}
	}

	// An undeclared kind leaves the circuit unsatisfied.
	wrong := resource.ResourceKind{Logic: primitives.FromUint64(300), Label: primitives.FromUint64(301)}
	w, binding, opening := buildIntentScenario(t, wrong)
	if _, err := il.Prove(ctx, binding, opening, w); err == nil {
		t.Error("settlement of an undeclared kind should not be provable")
	}
}
