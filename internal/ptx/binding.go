package ptx

import (
	"math/big"

	"github.com/iden3/go-iden3-crypto/babyjub"

	"github.com/anoma/taiga-core/internal/primitives"
)

// BindingSignature is a Schnorr-style signature σ = (Rσ, s) over tx_hash
// under public key Δ_total, using sk = Σ rcv as the secret scalar. This is
// a bespoke construction directly over babyjub.Point rather than the
// library's SignPoseidon/VerifyPoseidon EdDSA helpers, because sk here is
// an unstructured sum of independently sampled field scalars, not a
// pruned 32-byte private key; see the Open Questions entry in DESIGN.md.
//
// The signing base point is primitives.GeneratorR, the generator carrying
// the rcv randomness term of every action's Δ: a balanced transaction has
// Δ_total = (Σ rcv)·R, so Σ rcv is exactly the discrete log of Δ_total
// with respect to R and the signature verifies only when per-kind
// quantities conserve.
type BindingSignature struct {
	R *primitives.Point
	S *big.Int
}

// Sign produces a binding signature over txHash, using sk as the secret
// scalar and implicitly signing under the public key sk·GeneratorR (which
// the caller must have already arranged to equal Δ_total).
func Sign(sk *big.Int, txHash primitives.F) (*BindingSignature, error) {
	kBytes, err := primitives.RandomBytes(32)
	if err != nil {
		return nil, err
	}
	k := new(big.Int).SetBytes(kBytes)
	k.Mod(k, babyjub.SubOrder)

	R := primitives.ScalarMul(k, primitives.GeneratorR())
	pub := primitives.ScalarMul(sk, primitives.GeneratorR())

	e := challenge(R, pub, txHash)

	s := new(big.Int).Mul(e, sk)
	s.Add(s, k)
	s.Mod(s, babyjub.SubOrder)

	return &BindingSignature{R: R, S: s}, nil
}

// Verify checks σ against the claimed public key Δ_total and tx_hash:
// s·GeneratorR =? R + e·Δ_total.
func Verify(pub *primitives.Point, txHash primitives.F, sig *BindingSignature) bool {
	e := challenge(sig.R, pub, txHash)

	lhs := primitives.ScalarMul(sig.S, primitives.GeneratorR())

	eTimesPub := primitives.ScalarMul(e, pub)
	rhs := primitives.PointAdd(sig.R, eTimesPub)

	return lhs.X.Cmp(rhs.X) == 0 && lhs.Y.Cmp(rhs.Y) == 0
}

// addScalar accumulates binding-secret scalars modulo the prime subgroup
// order, matching how ScalarMul reduces each rcv term of Δ; a plain field
// addition could wrap modulo the field instead and break the discrete-log
// relation between Σ rcv and Δ_total.
func addScalar(acc, next primitives.F) primitives.F {
	sum := new(big.Int).Add(
		new(big.Int).Mod(primitives.ToBigInt(acc), babyjub.SubOrder),
		new(big.Int).Mod(primitives.ToBigInt(next), babyjub.SubOrder),
	)
	sum.Mod(sum, babyjub.SubOrder)
	var out primitives.F
	out.SetBigInt(sum)
	return out
}

// challenge computes the Fiat-Shamir scalar e = H(R, pub, txHash) reduced
// mod the prime subgroup order.
func challenge(R, pub *primitives.Point, txHash primitives.F) *big.Int {
	var rx, ry, px, py primitives.F
	rx.SetBigInt(R.X)
	ry.SetBigInt(R.Y)
	px.SetBigInt(pub.X)
	py.SetBigInt(pub.Y)

	digest := primitives.MustHashN(rx, ry, px, py, txHash)
	e := primitives.ToBigInt(digest)
	e.Mod(e, babyjub.SubOrder)
	return e
}
