package compliance

import (
	"errors"
	"testing"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
	"github.com/anoma/taiga-core/internal/tree"
)

func TestActionDeltaBalancedPair(t *testing.T) {
	kind, err := primitives.Kind(primitives.FromUint64(7), primitives.FromUint64(8))
	if err != nil {
		t.Fatalf("Kind failed: %v", err)
	}
	rcv := primitives.FromUint64(31415)

	// Equal quantities of the same kind cancel, leaving only the
	// randomness term.
	delta := actionDelta(5, kind, 5, kind, rcv)
	expected := primitives.ScalarMul(primitives.ToBigInt(rcv), primitives.GeneratorR())

	if delta.X.Cmp(expected.X) != 0 || delta.Y.Cmp(expected.Y) != 0 {
		t.Error("balanced action delta should reduce to rcv·R")
	}
}

func TestActionDeltaAdditive(t *testing.T) {
	kindA, err := primitives.Kind(primitives.FromUint64(1), primitives.FromUint64(2))
	if err != nil {
		t.Fatalf("Kind failed: %v", err)
	}
	kindB, err := primitives.Kind(primitives.FromUint64(3), primitives.FromUint64(4))
	if err != nil {
		t.Fatalf("Kind failed: %v", err)
	}

	// Two actions swapping kind A for kind B and back; summed deltas
	// cancel per kind and the rcv terms accumulate.
	rcv1 := primitives.FromUint64(100)
	rcv2 := primitives.FromUint64(200)
	d1 := actionDelta(9, kindA, 9, kindB, rcv1)
	d2 := actionDelta(9, kindB, 9, kindA, rcv2)
	sum := primitives.PedComAdd(d1, d2)

	var rcvSum primitives.F
	rcvSum.Add(&rcv1, &rcv2)
	expected := primitives.ScalarMul(primitives.ToBigInt(rcvSum), primitives.GeneratorR())

	if sum.X.Cmp(expected.X) != 0 || sum.Y.Cmp(expected.Y) != 0 {
		t.Error("cross-action deltas should sum to (Σ rcv)·R when kinds balance")
	}
}

// The anchor precheck fires before any proving machinery is touched, so a
// zero-value Builder is enough to exercise it.
func TestProveRejectsAnchorMismatch(t *testing.T) {
	var seed primitives.RandomSeed
	seed[0] = 1

	input, err := resource.NewInput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.ZeroF(),
		5, primitives.FromUint64(3), primitives.FromUint64(4), false, seed,
	)
	if err != nil {
		t.Fatalf("NewInput failed: %v", err)
	}
	output := resource.NewOutput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.ZeroF(),
		5, primitives.FromUint64(9), false,
	)
	if err := output.SetNonce(&input, seed); err != nil {
		t.Fatalf("SetNonce failed: %v", err)
	}

	zeroPath := &tree.Path{
		Siblings: make([]primitives.F, tree.LedgerTreeDepth),
		PathBits: make([]bool, tree.LedgerTreeDepth),
	}
	resourcePath := &tree.Path{
		Siblings: make([]primitives.F, ResourceTreeDepth),
		PathBits: make([]bool, ResourceTreeDepth),
	}

	b := &Builder{}
	_, err = b.Prove(ActionWitness{
		Input:        input,
		Output:       output,
		LedgerPath:   zeroPath,
		ResourcePath: resourcePath,
		Anchor:       primitives.FromUint64(0xDEAD),
	}, primitives.ZeroF())
	if !errors.Is(err, resource.ErrAnchorMismatch) {
		t.Errorf("expected ErrAnchorMismatch, got %v", err)
	}
}
