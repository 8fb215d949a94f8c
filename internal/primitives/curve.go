package primitives

import (
	"math/big"

	"github.com/iden3/go-iden3-crypto/babyjub"
)

// Point is E, the Baby Jubjub curve defined over F. Baby Jubjub's base
// field is exactly BN254's scalar field, which is how this repository
// realizes the cycle-mate relationship between the outer
// proving curve (BN254, where Groth16 proofs live) and the inner
// commitment curve (Baby Jubjub, where kinds and binding commitments
// live).
type Point = babyjub.Point

// generatorR is the fixed generator used by the binding commitment's
// randomness term (PedCom's R). Derived by hashing a fixed label to a
// field element and running it through the SWU map, so R has no known
// discrete-log relation to the curve's base point or to any kind point a
// (logic, label) pair can hash to.
var generatorR = deriveGenerator("Taiga_PedCom_R")

// IdentityPoint returns the curve's neutral element.
func IdentityPoint() *Point {
	return babyjub.NewPoint()
}

// PointAdd returns a + b, going through the projective representation
// (the affine Point type only exposes scalar multiplication).
func PointAdd(a, b *Point) *Point {
	sum := babyjub.NewPointProjective().Add(a.Projective(), b.Projective())
	return sum.Affine()
}

// PointNeg returns -p, computed as (SubOrder-1)*p so it never touches the
// point's internal coordinate representation directly.
func PointNeg(p *Point) *Point {
	negOne := new(big.Int).Sub(babyjub.SubOrder, big.NewInt(1))
	return ScalarMul(negOne, p)
}

// ScalarMul returns scalar * p, reducing scalar modulo the prime subgroup
// order first.
func ScalarMul(scalar *big.Int, p *Point) *Point {
	s := new(big.Int).Mod(scalar, babyjub.SubOrder)
	out := babyjub.NewPoint()
	out.Mul(s, p)
	return out
}

// fToBigInt converts a field element to its canonical big.Int
// representation.
func fToBigInt(x F) *big.Int {
	b := new(big.Int)
	x.BigInt(b)
	return b
}

// deriveGenerator derives a fixed generator point by hashing a label with
// Poseidon and mapping the digest through SWU, so the labeled generator
// family has no member with a discrete log known relative to any other.
func deriveGenerator(label string) *Point {
	var acc F
	for _, b := range []byte(label) {
		acc = MustHashN(acc, FromUint64(uint64(b)))
	}
	p, err := MapToCurve(acc)
	if err != nil {
		panic(err)
	}
	return p
}

// HC hashes its inputs with H to a field element, then maps that element
// to the curve with simplified SWU composed with the rational maps back
// to Edwards form (see MapToCurve). The cofactor multiplication inside
// the map keeps the output in the prime subgroup and never the identity.
func HC(elems ...F) (*Point, error) {
	digest, err := HashN(elems...)
	if err != nil {
		return nil, err
	}
	return MapToCurve(digest)
}

// Kind derives the kind point K = HC(logic, label).
func Kind(logic, label F) (*Point, error) {
	return HC(logic, label)
}

// BasePoint returns the curve's prime-subgroup base point.
func BasePoint() *Point {
	return babyjub.B8
}

// GeneratorR returns the fixed independent generator R used by PedCom.
func GeneratorR() *Point {
	return generatorR
}

// PointCoords exposes a point's affine coordinates as big.Ints, for
// witness assembly at the circuit boundary.
func PointCoords(p *Point) (*big.Int, *big.Int) {
	return new(big.Int).Set(p.X), new(big.Int).Set(p.Y)
}
