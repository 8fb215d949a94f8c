package taiga

import (
	"testing"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
)

func TestResourceCommitAndNullify(t *testing.T) {
	var seed primitives.RandomSeed
	seed[0] = 9

	r, err := resource.NewInput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.FromUint64(3),
		10, primitives.FromUint64(42), primitives.FromUint64(7), false, seed,
	)
	if err != nil {
		t.Fatalf("NewInput failed: %v", err)
	}

	cm1, err := ResourceCommit(&r)
	if err != nil {
		t.Fatalf("ResourceCommit failed: %v", err)
	}
	cm2, err := ResourceCommit(&r)
	if err != nil {
		t.Fatalf("ResourceCommit failed: %v", err)
	}
	if !primitives.Equal(cm1, cm2) {
		t.Error("ResourceCommit should be deterministic")
	}

	nf, err := ResourceNullify(&r)
	if err != nil {
		t.Fatalf("ResourceNullify failed: %v", err)
	}
	if nf == nil {
		t.Fatal("a keyed resource should nullify")
	}

	out := resource.NewOutput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.FromUint64(3),
		10, primitives.FromUint64(400), false,
	)
	nf2, err := ResourceNullify(&out)
	if err != nil {
		t.Fatalf("ResourceNullify failed: %v", err)
	}
	if nf2 != nil {
		t.Error("a receive-only resource should not nullify")
	}
}
