package resource

import (
	"errors"
	"testing"

	"github.com/anoma/taiga-core/internal/primitives"
)

func testSeed(b byte) primitives.RandomSeed {
	var s primitives.RandomSeed
	s[0] = b
	return s
}

func testInput(t *testing.T) Resource {
	t.Helper()
	r, err := NewInput(
		primitives.FromUint64(1), // logic
		primitives.FromUint64(2), // label
		primitives.FromUint64(3), // value
		5,
		primitives.FromUint64(1000), // spending key
		primitives.FromUint64(77),   // nonce
		false,
		testSeed(1),
	)
	if err != nil {
		t.Fatalf("NewInput failed: %v", err)
	}
	return r
}

func TestCommitmentDeterministic(t *testing.T) {
	r := testInput(t)

	cm1, err := r.Commitment()
	if err != nil {
		t.Fatalf("Commitment failed: %v", err)
	}
	cm2, err := r.Commitment()
	if err != nil {
		t.Fatalf("Commitment failed: %v", err)
	}
	if !primitives.Equal(cm1, cm2) {
		t.Error("commitment should be deterministic")
	}
}

func TestCommitmentDependsOnEveryField(t *testing.T) {
	base := testInput(t)
	baseCm, err := base.Commitment()
	if err != nil {
		t.Fatalf("Commitment failed: %v", err)
	}

	mutations := map[string]func(r *Resource){
		"logic":       func(r *Resource) { r.Logic = primitives.FromUint64(99) },
		"label":       func(r *Resource) { r.Label = primitives.FromUint64(99) },
		"value":       func(r *Resource) { r.Value = primitives.FromUint64(99) },
		"quantity":    func(r *Resource) { r.Quantity = 6 },
		"nk":          func(r *Resource) { r.NK = Key(primitives.FromUint64(1001)) },
		"nonce":       func(r *Resource) { r.Nonce = primitives.FromUint64(78) },
		"psi":         func(r *Resource) { r.Psi = primitives.FromUint64(99) },
		"rcm":         func(r *Resource) { r.Rcm = primitives.FromUint64(99) },
		"isEphemeral": func(r *Resource) { r.IsEphemeral = true },
	}

	for name, mutate := range mutations {
		r := base
		mutate(&r)
		cm, err := r.Commitment()
		if err != nil {
			t.Fatalf("%s: Commitment failed: %v", name, err)
		}
		if primitives.Equal(cm, baseCm) {
			t.Errorf("changing %s should change the commitment", name)
		}
	}
}

func TestNpkIdempotence(t *testing.T) {
	key := primitives.FromUint64(123)

	npk, err := Key(key).Public()
	if err != nil {
		t.Fatalf("Public failed: %v", err)
	}

	npk2, err := PubKey(npk).Public()
	if err != nil {
		t.Fatalf("Public failed: %v", err)
	}
	if !primitives.Equal(npk, npk2) {
		t.Error("nk.public().public() should equal nk.public()")
	}
}

func TestNullifierRequiresKey(t *testing.T) {
	out := NewOutput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.FromUint64(3),
		5, primitives.FromUint64(400), false,
	)

	nf, err := out.Nullifier()
	if err != nil {
		t.Fatalf("Nullifier failed: %v", err)
	}
	if nf != nil {
		t.Error("a PubKey-only resource should have no nullifier")
	}
}

func TestCommitmentBeforeSetNonce(t *testing.T) {
	out := NewOutput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.FromUint64(3),
		5, primitives.FromUint64(400), false,
	)

	_, err := out.Commitment()
	if !errors.Is(err, ErrNonceNotSet) {
		t.Errorf("expected ErrNonceNotSet, got %v", err)
	}
}

func TestSetNonceSpine(t *testing.T) {
	in := testInput(t)

	out := NewOutput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.FromUint64(3),
		5, primitives.FromUint64(400), false,
	)
	if err := out.SetNonce(&in, testSeed(2)); err != nil {
		t.Fatalf("SetNonce failed: %v", err)
	}

	nf, err := in.Nullifier()
	if err != nil {
		t.Fatalf("Nullifier failed: %v", err)
	}
	if nf == nil {
		t.Fatal("input should have a nullifier")
	}
	if !primitives.Equal(out.Nonce, *nf) {
		t.Error("output nonce should equal the paired input's nullifier")
	}

	// psi and rcm are back-filled from the seed and new nonce.
	psi, err := primitives.PRFPsi(testSeed(2), *nf)
	if err != nil {
		t.Fatalf("PRFPsi failed: %v", err)
	}
	if !primitives.Equal(out.Psi, psi) {
		t.Error("psi should be derived from rseed and the inherited nonce")
	}

	if _, err := out.Commitment(); err != nil {
		t.Errorf("commitment after SetNonce should succeed: %v", err)
	}
}

func TestSetNonceFromPubKeyInput(t *testing.T) {
	in := NewOutput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.FromUint64(3),
		5, primitives.FromUint64(400), false,
	)
	out := NewOutput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.FromUint64(3),
		5, primitives.FromUint64(500), false,
	)

	err := out.SetNonce(&in, testSeed(3))
	if !errors.Is(err, ErrMissingNullifierKey) {
		t.Errorf("expected ErrMissingNullifierKey, got %v", err)
	}
}

func TestKindFungibility(t *testing.T) {
	a := testInput(t)
	b := testInput(t)
	b.Value = primitives.FromUint64(999)
	b.Quantity = 1

	ka, err := a.Kind()
	if err != nil {
		t.Fatalf("Kind failed: %v", err)
	}
	kb, err := b.Kind()
	if err != nil {
		t.Fatalf("Kind failed: %v", err)
	}
	if ka.X.Cmp(kb.X) != 0 || ka.Y.Cmp(kb.Y) != 0 {
		t.Error("resources sharing (logic, label) should share a kind")
	}

	c := testInput(t)
	c.Label = primitives.FromUint64(42)
	kc, err := c.Kind()
	if err != nil {
		t.Fatalf("Kind failed: %v", err)
	}
	if ka.X.Cmp(kc.X) == 0 && ka.Y.Cmp(kc.Y) == 0 {
		t.Error("different labels should yield different kinds")
	}
}
