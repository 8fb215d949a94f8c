package primitives

import (
	"errors"
	"math/big"

	"github.com/iden3/go-iden3-crypto/babyjub"
)

// ErrExceptionalInput is returned when the SWU map lands on one of the
// curve's exceptional points (negligible probability for hashed inputs).
var ErrExceptionalInput = errors.New("taiga: hash-to-curve hit an exceptional point")

// swuConstants are the parameters of the simplified SWU map onto Baby
// Jubjub's short Weierstrass form, plus the birational-map coefficients
// back to twisted Edwards coordinates. Baby Jubjub a·x²+y²=1+d·x²y² is
// birationally equivalent to the Montgomery curve B·v² = t³ + A·t² + t
// with A = 2(a+d)/(a−d), B = 4/(a−d), which in turn shifts to the short
// Weierstrass curve y² = x³ + aW·x + bW with aW = (3−A²)/(3B²),
// bW = (2A³−9A)/(27B³).
type swuConstants struct {
	montA, montB F
	montShift    F // A/3, the Weierstrass-to-Montgomery shift
	weierA       F
	weierB       F
	z            F // fixed non-square of F
	x1Coeff      F // -bW/aW
	exceptionalX F // bW/(z·aW), the x1 used when the SWU denominator vanishes
}

var swu = newSWUConstants()

func newSWUConstants() swuConstants {
	var c swuConstants

	var aEd, dEd F
	aEd.SetBigInt(babyjub.A)
	dEd.SetBigInt(babyjub.D)

	var two, three, four, nine, twentySeven F
	two.SetUint64(2)
	three.SetUint64(3)
	four.SetUint64(4)
	nine.SetUint64(9)
	twentySeven.SetUint64(27)

	var aMinusD, invAMinusD F
	aMinusD.Sub(&aEd, &dEd)
	invAMinusD.Inverse(&aMinusD)

	var aPlusD F
	aPlusD.Add(&aEd, &dEd)
	c.montA.Mul(&aPlusD, &invAMinusD)
	c.montA.Mul(&c.montA, &two)
	c.montB.Mul(&four, &invAMinusD)

	var invThree F
	invThree.Inverse(&three)
	c.montShift.Mul(&c.montA, &invThree)

	var aSq, bSq, num, den F
	aSq.Square(&c.montA)
	bSq.Square(&c.montB)
	num.Sub(&three, &aSq)
	den.Mul(&three, &bSq)
	den.Inverse(&den)
	c.weierA.Mul(&num, &den)

	var aCu, bCu, twoACu, nineA F
	aCu.Mul(&aSq, &c.montA)
	twoACu.Double(&aCu)
	nineA.Mul(&nine, &c.montA)
	num.Sub(&twoACu, &nineA)
	bCu.Mul(&bSq, &c.montB)
	den.Mul(&twentySeven, &bCu)
	den.Inverse(&den)
	c.weierB.Mul(&num, &den)

	// Smallest non-square, found by Legendre symbol.
	for i := uint64(2); ; i++ {
		var z F
		z.SetUint64(i)
		if z.Legendre() == -1 {
			c.z = z
			break
		}
	}

	var invWeierA F
	invWeierA.Inverse(&c.weierA)
	c.x1Coeff.Mul(&c.weierB, &invWeierA)
	c.x1Coeff.Neg(&c.x1Coeff)

	var zA F
	zA.Mul(&c.z, &c.weierA)
	zA.Inverse(&zA)
	c.exceptionalX.Mul(&c.weierB, &zA)

	return c
}

// Circuit-boundary accessors: the compliance circuit recomputes the same
// map in-circuit and needs these as compile-time constants.

func SWUZ() *big.Int            { return fToBigInt(swu.z) }
func SWUX1Coeff() *big.Int      { return fToBigInt(swu.x1Coeff) }
func SWUExceptionalX() *big.Int { return fToBigInt(swu.exceptionalX) }
func SWUWeierA() *big.Int       { return fToBigInt(swu.weierA) }
func SWUWeierB() *big.Int       { return fToBigInt(swu.weierB) }
func SWUMontB() *big.Int        { return fToBigInt(swu.montB) }
func SWUMontShift() *big.Int    { return fToBigInt(swu.montShift) }

// sgn0 is the parity of the canonical representation, used to fix which
// of the two square roots the map takes.
func sgn0(x F) uint64 {
	return uint64(fToBigInt(x).Bit(0))
}

func weierRHS(x F) F {
	var xSq, xCu, ax, out F
	xSq.Square(&x)
	xCu.Mul(&xSq, &x)
	ax.Mul(&swu.weierA, &x)
	out.Add(&xCu, &ax)
	out.Add(&out, &swu.weierB)
	return out
}

func swuX1(u F) (x1, zu2 F) {
	var u2 F
	u2.Square(&u)
	zu2.Mul(&swu.z, &u2)

	var tv1 F
	tv1.Square(&zu2)
	tv1.Add(&tv1, &zu2)
	if tv1.IsZero() {
		return swu.exceptionalX, zu2
	}
	tv1.Inverse(&tv1)
	var one F
	one.SetOne()
	tv1.Add(&tv1, &one)
	x1.Mul(&swu.x1Coeff, &tv1)
	return x1, zu2
}

// SWUSelect runs the branch-selection core of the simplified SWU map:
// it returns which of the two candidate abscissae has a square
// right-hand side, the selected (x, y) on the Weierstrass curve with y's
// sign pinned to u's parity, and, in the non-square branch, a square
// root of z·g(x1) witnessing that the first branch really was
// unavailable. Shared by MapToCurve and the compliance circuit's hint so
// both sides of a proof derive the identical point.
func SWUSelect(u F) (isSquare bool, x, y, aux F, err error) {
	x1, zu2 := swuX1(u)
	gx1 := weierRHS(x1)

	if y.Sqrt(&gx1) != nil {
		if sgn0(y) != sgn0(u) {
			y.Neg(&y)
		}
		return true, x1, y, ZeroF(), nil
	}

	var x2 F
	x2.Mul(&zu2, &x1)
	gx2 := weierRHS(x2)
	if y.Sqrt(&gx2) == nil {
		return false, F{}, F{}, F{}, ErrExceptionalInput
	}
	if sgn0(y) != sgn0(u) {
		y.Neg(&y)
	}

	var zgx1 F
	zgx1.Mul(&swu.z, &gx1)
	if aux.Sqrt(&zgx1) == nil {
		return false, F{}, F{}, F{}, ErrExceptionalInput
	}
	return false, x2, y, aux, nil
}

// MapToCurve is the hash-to-curve map HC's curve stage: simplified SWU
// onto Baby Jubjub's Weierstrass form, the rational maps back through
// Montgomery to twisted Edwards coordinates, and a cofactor
// multiplication into the prime subgroup. Points produced this way carry
// no known discrete-log relation to one another or to the fixed
// generators, which is what the binding commitment's soundness rests on.
func MapToCurve(u F) (*Point, error) {
	_, x, y, _, err := SWUSelect(u)
	if err != nil {
		return nil, err
	}

	// Weierstrass -> Montgomery: t = B·x − A/3, v = B·y.
	var t, v F
	t.Mul(&swu.montB, &x)
	t.Sub(&t, &swu.montShift)
	v.Mul(&swu.montB, &y)
	if v.IsZero() {
		return nil, ErrExceptionalInput
	}

	// Montgomery -> Edwards: xE = t/v, yE = (t−1)/(t+1).
	var one, xE, yE, den F
	one.SetOne()
	den.Add(&t, &one)
	if den.IsZero() {
		return nil, ErrExceptionalInput
	}
	den.Inverse(&den)
	var invV, tm1 F
	invV.Inverse(&v)
	xE.Mul(&t, &invV)
	tm1.Sub(&t, &one)
	yE.Mul(&tm1, &den)

	mapped := &babyjub.Point{X: fToBigInt(xE), Y: fToBigInt(yE)}
	out := babyjub.NewPoint().Mul(big.NewInt(8), mapped)
	if out.X.Sign() == 0 && out.Y.Cmp(big.NewInt(1)) == 0 {
		return nil, ErrExceptionalInput
	}
	return out, nil
}
