package ptx

import (
	"math/big"
	"testing"

	"github.com/anoma/taiga-core/internal/primitives"
)

func TestBindingSignatureRoundTrip(t *testing.T) {
	sk := big.NewInt(123456789)
	pub := primitives.ScalarMul(sk, primitives.GeneratorR())
	txHash := primitives.FromUint64(42)

	sig, err := Sign(sk, txHash)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if !Verify(pub, txHash, sig) {
		t.Error("signature should verify under the matching public key")
	}
}

func TestBindingSignatureRejectsWrongHash(t *testing.T) {
	sk := big.NewInt(987654321)
	pub := primitives.ScalarMul(sk, primitives.GeneratorR())

	sig, err := Sign(sk, primitives.FromUint64(1))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if Verify(pub, primitives.FromUint64(2), sig) {
		t.Error("signature should not verify against a different hash")
	}
}

func TestBindingSignatureRejectsWrongKey(t *testing.T) {
	sk := big.NewInt(55555)
	txHash := primitives.FromUint64(7)

	sig, err := Sign(sk, txHash)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	otherPub := primitives.ScalarMul(big.NewInt(66666), primitives.GeneratorR())
	if Verify(otherPub, txHash, sig) {
		t.Error("signature should not verify under an unrelated key")
	}
}

// The binding key is additive: two parties' rcv sums sign for the combined
// delta. Signing under sk1+sk2 must verify under pub1+pub2.
func TestBindingKeyAdditivity(t *testing.T) {
	sk1, sk2 := big.NewInt(1000), big.NewInt(2000)
	pub1 := primitives.ScalarMul(sk1, primitives.GeneratorR())
	pub2 := primitives.ScalarMul(sk2, primitives.GeneratorR())
	combined := primitives.PointAdd(pub1, pub2)

	txHash := primitives.FromUint64(9)
	sig, err := Sign(new(big.Int).Add(sk1, sk2), txHash)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if !Verify(combined, txHash, sig) {
		t.Error("signature under summed secret should verify under summed public keys")
	}
}

// A signature under the same secret but the wrong base point (the curve's
// base point instead of R) must not verify: the binding key lives in the
// R-generated relation, which is what makes unbalanced kind contributions
// unsignable.
func TestBindingSignatureBaseIsR(t *testing.T) {
	sk := big.NewInt(424242)
	wrongPub := primitives.ScalarMul(sk, primitives.BasePoint())
	txHash := primitives.FromUint64(11)

	sig, err := Sign(sk, txHash)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if Verify(wrongPub, txHash, sig) {
		t.Error("signature should not verify under sk·B with the wrong base")
	}
}
