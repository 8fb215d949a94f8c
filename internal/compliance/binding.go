package compliance

import (
	"math/big"

	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/consensys/gnark/std/hash"

	"github.com/anoma/taiga-core/internal/primitives"
)

func init() {
	solver.RegisterHint(swuHint)
}

// swuHint supplies the SWU branch selector and square roots for one map
// evaluation: outputs are (isSquare, y, aux), where y is the selected
// ordinate with its sign pinned to the input's parity and aux is the
// non-square-branch witness √(z·g(x1)). The constraints around the hint
// in mapToCurve are what make these values binding; the hint itself just
// runs the same field arithmetic as primitives.SWUSelect.
func swuHint(mod *big.Int, inputs, outputs []*big.Int) error {
	var u primitives.F
	u.SetBigInt(inputs[0])
	isSquare, _, y, aux, err := primitives.SWUSelect(u)
	if err != nil {
		return err
	}
	if isSquare {
		outputs[0].SetUint64(1)
	} else {
		outputs[0].SetUint64(0)
	}
	outputs[1].Set(primitives.ToBigInt(y))
	outputs[2].Set(primitives.ToBigInt(aux))
	return nil
}

// mapToCurve recomputes primitives.MapToCurve in-circuit: simplified SWU
// onto Baby Jubjub's Weierstrass form, the rational maps back through
// Montgomery to Edwards coordinates, and three doublings for the
// cofactor. The square-root branch comes from swuHint and is pinned down
// by three constraints: the claimed ordinate squares to the selected
// right-hand side, the non-square branch exhibits a root of z·g(x1)
// (possible only when g(x1) is a non-square, z being a non-square), and
// the ordinate's low bit equals the input's. A prover therefore cannot
// pick the other branch or the other root, so each (logic, label) pair
// derives exactly one kind point, with no discrete log known relative to
// R or to any other kind.
func mapToCurve(api frontend.API, curve twistededwards.Curve, u frontend.Variable) (twistededwards.Point, error) {
	z := primitives.SWUZ()
	weierA := primitives.SWUWeierA()
	weierB := primitives.SWUWeierB()

	zu2 := api.Mul(z, api.Mul(u, u))
	tv1 := api.Add(api.Mul(zu2, zu2), zu2)
	isExceptional := api.IsZero(tv1)
	tv1Safe := api.Select(isExceptional, 1, tv1)
	inv := api.Inverse(tv1Safe)
	x1 := api.Select(
		isExceptional,
		primitives.SWUExceptionalX(),
		api.Mul(primitives.SWUX1Coeff(), api.Add(1, inv)),
	)
	gx1 := api.Add(api.Mul(api.Mul(x1, x1), x1), api.Mul(weierA, x1), weierB)

	x2 := api.Mul(zu2, x1)
	gx2 := api.Add(api.Mul(api.Mul(x2, x2), x2), api.Mul(weierA, x2), weierB)

	hinted, err := api.Compiler().NewHint(swuHint, 3, u)
	if err != nil {
		return twistededwards.Point{}, err
	}
	isSquare, y, aux := hinted[0], hinted[1], hinted[2]
	api.AssertIsBoolean(isSquare)

	ySq := api.Mul(y, y)
	notSquare := api.Sub(1, isSquare)
	api.AssertIsEqual(api.Mul(isSquare, api.Sub(ySq, gx1)), 0)
	api.AssertIsEqual(api.Mul(notSquare, api.Sub(ySq, gx2)), 0)
	api.AssertIsEqual(api.Mul(notSquare, api.Sub(api.Mul(aux, aux), api.Mul(z, gx1))), 0)

	yBits := api.ToBinary(y)
	uBits := api.ToBinary(u)
	api.AssertIsEqual(yBits[0], uBits[0])

	x := api.Select(isSquare, x1, x2)

	// Weierstrass -> Montgomery -> Edwards.
	t := api.Sub(api.Mul(primitives.SWUMontB(), x), primitives.SWUMontShift())
	v := api.Mul(primitives.SWUMontB(), y)
	p := twistededwards.Point{
		X: api.Div(t, v),
		Y: api.Div(api.Sub(t, 1), api.Add(t, 1)),
	}
	p = curve.Double(p)
	p = curve.Double(p)
	p = curve.Double(p)
	return p, nil
}

// bindingDelta computes Δ = qIn·K_in − qOut·K_out + rcv·R over the
// twisted-Edwards curve in-circuit, using gnark's native twisted-Edwards
// gadget. tedwards.BN254 selects the Baby Jubjub parameters embedded in
// the BN254 scalar field, so this gadget and the out-of-circuit
// primitives.Point arithmetic agree on the group law.
//
// The kind points are derived inside the circuit exactly the way
// primitives.HC derives them outside it: hash (logic, label) to a field
// element and run it through the SWU map, so a prover cannot substitute
// kind points unrelated to the resource fields or with a discrete log it
// knows relative to R.
func bindingDelta(
	api frontend.API,
	h hash.FieldHasher,
	inLogic, inLabel, qIn frontend.Variable,
	outLogic, outLabel, qOut frontend.Variable,
	rcv frontend.Variable,
) (frontend.Variable, frontend.Variable, error) {
	curve, err := twistededwards.NewEdCurve(api, tedwards.BN254)
	if err != nil {
		return nil, nil, err
	}

	rGenX, rGenY := primitives.PointCoords(primitives.GeneratorR())
	rGen := twistededwards.Point{X: rGenX, Y: rGenY}

	h.Reset()
	h.Write(inLogic, inLabel)
	kIn, err := mapToCurve(api, curve, h.Sum())
	if err != nil {
		return nil, nil, err
	}

	h.Reset()
	h.Write(outLogic, outLabel)
	kOut, err := mapToCurve(api, curve, h.Sum())
	if err != nil {
		return nil, nil, err
	}

	inTerm := curve.ScalarMul(kIn, qIn)
	outTerm := curve.ScalarMul(kOut, qOut)
	rTerm := curve.ScalarMul(rGen, rcv)

	negOutTerm := curve.Neg(outTerm)
	sum := curve.Add(inTerm, negOutTerm)
	sum = curve.Add(sum, rTerm)

	return sum.X, sum.Y, nil
}
