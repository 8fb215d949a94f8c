package primitives

import (
	"math/big"
	"testing"
)

func TestHashNDeterministic(t *testing.T) {
	a := FromUint64(1)
	b := FromUint64(2)

	h1, err := HashN(a, b)
	if err != nil {
		t.Fatalf("HashN failed: %v", err)
	}
	h2, err := HashN(a, b)
	if err != nil {
		t.Fatalf("HashN failed: %v", err)
	}
	if !Equal(h1, h2) {
		t.Error("HashN should be deterministic")
	}

	// Order matters
	h3, err := HashN(b, a)
	if err != nil {
		t.Fatalf("HashN failed: %v", err)
	}
	if Equal(h1, h3) {
		t.Error("HashN should depend on input order")
	}
}

func TestEncodeEphemeralQuantity(t *testing.T) {
	q := uint64(12345)

	plain := EncodeEphemeralQuantity(false, q)
	if !Equal(plain, FromUint64(q)) {
		t.Error("non-ephemeral encoding should equal the plain quantity")
	}

	eph := EncodeEphemeralQuantity(true, q)
	if Equal(eph, plain) {
		t.Error("ephemeral flag should change the encoding")
	}

	// eph - 2^128 == quantity
	shift := new(big.Int).Lsh(big.NewInt(1), 128)
	diff := new(big.Int).Sub(ToBigInt(eph), shift)
	if diff.Cmp(new(big.Int).SetUint64(q)) != 0 {
		t.Error("ephemeral encoding should be quantity + 2^128")
	}
}

func TestPRFDomainSeparation(t *testing.T) {
	var seed RandomSeed
	seed[0] = 7
	nonce := FromUint64(99)

	psi, err := PRFPsi(seed, nonce)
	if err != nil {
		t.Fatalf("PRFPsi failed: %v", err)
	}
	rcm, err := PRFRcm(seed, nonce)
	if err != nil {
		t.Fatalf("PRFRcm failed: %v", err)
	}
	if Equal(psi, rcm) {
		t.Error("distinct tags should yield distinct outputs")
	}

	psi2, err := PRFPsi(seed, nonce)
	if err != nil {
		t.Fatalf("PRFPsi failed: %v", err)
	}
	if !Equal(psi, psi2) {
		t.Error("PRF should be deterministic")
	}

	var otherSeed RandomSeed
	otherSeed[0] = 8
	psi3, err := PRFPsi(otherSeed, nonce)
	if err != nil {
		t.Fatalf("PRFPsi failed: %v", err)
	}
	if Equal(psi, psi3) {
		t.Error("distinct seeds should yield distinct outputs")
	}
}

func TestPRFLogTagsDistinct(t *testing.T) {
	var seed RandomSeed
	seed[31] = 3

	r1, err := PRFRLog1(seed)
	if err != nil {
		t.Fatalf("PRFRLog1 failed: %v", err)
	}
	r2, err := PRFRLog2(seed)
	if err != nil {
		t.Fatalf("PRFRLog2 failed: %v", err)
	}
	if Equal(r1, r2) {
		t.Error("the two logic-commitment randomizers should differ")
	}
}

func TestBlake2sCommit(t *testing.T) {
	vk := FromUint64(42)
	r := FromUint64(7)

	c1, err := Blake2sCommit(vk, r)
	if err != nil {
		t.Fatalf("Blake2sCommit failed: %v", err)
	}
	c2, err := Blake2sCommit(vk, r)
	if err != nil {
		t.Fatalf("Blake2sCommit failed: %v", err)
	}
	if !c1.Equal(c2) {
		t.Error("commitment should be deterministic")
	}

	c3, err := Blake2sCommit(vk, FromUint64(8))
	if err != nil {
		t.Fatalf("Blake2sCommit failed: %v", err)
	}
	if c1.Equal(c3) {
		t.Error("different randomness should hide the committed value")
	}

	c4, err := Blake2sCommit(FromUint64(43), r)
	if err != nil {
		t.Fatalf("Blake2sCommit failed: %v", err)
	}
	if c1.Equal(c4) {
		t.Error("different values should commit differently")
	}
}

func TestPedComHomomorphic(t *testing.T) {
	base, err := HC(FromUint64(1), FromUint64(2))
	if err != nil {
		t.Fatalf("HC failed: %v", err)
	}

	v1, v2 := big.NewInt(100), big.NewInt(200)
	r1, r2 := FromUint64(11), FromUint64(22)

	c1 := PedCom(v1, base, r1)
	c2 := PedCom(v2, base, r2)
	cSum := PedComAdd(c1, c2)

	var rSum F
	rSum.Add(&r1, &r2)
	expected := PedCom(new(big.Int).Add(v1, v2), base, rSum)

	if cSum.X.Cmp(expected.X) != 0 || cSum.Y.Cmp(expected.Y) != 0 {
		t.Error("PedCom should be additively homomorphic")
	}
}

func TestKindSeparation(t *testing.T) {
	k1, err := Kind(FromUint64(1), FromUint64(10))
	if err != nil {
		t.Fatalf("Kind failed: %v", err)
	}
	k2, err := Kind(FromUint64(1), FromUint64(10))
	if err != nil {
		t.Fatalf("Kind failed: %v", err)
	}
	if k1.X.Cmp(k2.X) != 0 || k1.Y.Cmp(k2.Y) != 0 {
		t.Error("same (logic, label) should derive the same kind point")
	}

	k3, err := Kind(FromUint64(1), FromUint64(11))
	if err != nil {
		t.Fatalf("Kind failed: %v", err)
	}
	if k1.X.Cmp(k3.X) == 0 && k1.Y.Cmp(k3.Y) == 0 {
		t.Error("different labels should derive different kind points")
	}
}
