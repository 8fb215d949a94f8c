package primitives

import "math/big"

// PedCom is the Pedersen-style binding commitment over E:
// PedCom(v, B, r) = v·B + r·R, where R is the fixed independent generator
// GeneratorR. Quantities here are signed (they model net per-kind deltas),
// so v is taken as a *big.Int rather than a field element to keep sign
// handling explicit at call sites.
func PedCom(v *big.Int, base *Point, r F) *Point {
	vB := ScalarMul(v, base)
	rR := ScalarMul(fToBigInt(r), GeneratorR())
	return PointAdd(vB, rR)
}

// PedComAdd homomorphically adds two binding commitments, used to
// accumulate Δ across multiple actions without opening either operand.
func PedComAdd(a, b *Point) *Point {
	return PointAdd(a, b)
}
