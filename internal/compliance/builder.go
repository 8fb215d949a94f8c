package compliance

import (
	"errors"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
	"github.com/anoma/taiga-core/internal/tree"
)

var ErrProofGenerationFailed = errors.New("taiga: compliance proof generation failed")

// Builder compiles the compliance circuit once and reuses its proving and
// verifying keys for every action, mirroring CircuitManager's
// compile-once/prove-many lifecycle.
type Builder struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

// Setup compiles the circuit and runs the Groth16 trusted setup. This is
// process-wide and expensive (seconds to minutes); callers are expected to
// cache the keys to disk and reload rather than re-running Setup per
// process.
func Setup() (*Builder, error) {
	circuit := &Circuit{}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, err
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, err
	}
	return &Builder{ccs: ccs, pk: pk, vk: vk}, nil
}

// VerifyingKey exposes the compiled verifying key, e.g. for persistence.
func (b *Builder) VerifyingKey() groth16.VerifyingKey {
	return b.vk
}

// WriteTo persists the compiled constraint system and both keys, so a
// process can skip the expensive Setup on restart.
func (b *Builder) WriteTo(ccsW, pkW, vkW io.Writer) error {
	if _, err := b.ccs.WriteTo(ccsW); err != nil {
		return err
	}
	if _, err := b.pk.WriteTo(pkW); err != nil {
		return err
	}
	if _, err := b.vk.WriteTo(vkW); err != nil {
		return err
	}
	return nil
}

// ReadBuilder reloads a Builder persisted by WriteTo.
func ReadBuilder(ccsR, pkR, vkR io.Reader) (*Builder, error) {
	ccs := groth16.NewCS(ecc.BN254)
	if _, err := ccs.ReadFrom(ccsR); err != nil {
		return nil, err
	}
	pk := groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(pkR); err != nil {
		return nil, err
	}
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(vkR); err != nil {
		return nil, err
	}
	return &Builder{ccs: ccs, pk: pk, vk: vk}, nil
}

// ActionWitness is the per-action input to compliance proof generation.
type ActionWitness struct {
	Input        resource.Resource
	Output       resource.Resource
	LedgerPath   *tree.Path
	ResourcePath *tree.Path // the full resource-tree opening of the nf_in leaf
	Anchor       primitives.F
	Rcv          primitives.F
}

// PublicInputs are the six field/point values the compliance proof
// exposes for this action.
type PublicInputs struct {
	NfIn   primitives.F
	CmOut  primitives.F
	Anchor primitives.F
	Rho    primitives.F
	Delta  *primitives.Point
}

// Proof bundles a Groth16 proof with the public inputs it was generated
// against.
type Proof struct {
	Proof  groth16.Proof
	Public PublicInputs
}

// Prove generates a compliance proof for one action, computing the
// circuit's public outputs (nf_in, cm_out, Δ) from the witness as it goes.
func (b *Builder) Prove(aw ActionWitness, rho primitives.F) (*Proof, error) {
	cmIn, err := aw.Input.Commitment()
	if err != nil {
		return nil, err
	}
	nfInPtr, err := aw.Input.Nullifier()
	if err != nil {
		return nil, err
	}
	if nfInPtr == nil {
		return nil, resource.ErrMissingNullifierKey
	}
	nfIn := *nfInPtr

	cmOut, err := aw.Output.Commitment()
	if err != nil {
		return nil, err
	}

	// Catch a bad ledger path before paying for the prover: the circuit
	// would reject it anyway, but only as an opaque unsatisfied-constraint
	// failure.
	if !aw.Input.IsEphemeral && !tree.VerifyPath(cmIn, aw.LedgerPath, aw.Anchor) {
		return nil, resource.ErrAnchorMismatch
	}

	kIn, err := aw.Input.Kind()
	if err != nil {
		return nil, err
	}
	kOut, err := aw.Output.Kind()
	if err != nil {
		return nil, err
	}

	delta := actionDelta(aw.Input.Quantity, kIn, aw.Output.Quantity, kOut, aw.Rcv)

	assignment := &Circuit{
		NfIn:   primitives.ToBigInt(nfIn),
		CmOut:  primitives.ToBigInt(cmOut),
		Anchor: primitives.ToBigInt(aw.Anchor),
		Rho:    primitives.ToBigInt(rho),
	}
	deltaX, deltaY := primitives.PointCoords(delta)
	assignment.DeltaX = deltaX
	assignment.DeltaY = deltaY

	fillWitness(assignment, aw)

	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, err
	}
	proof, err := groth16.Prove(b.ccs, b.pk, w)
	if err != nil {
		return nil, ErrProofGenerationFailed
	}

	return &Proof{
		Proof: proof,
		Public: PublicInputs{
			NfIn:   nfIn,
			CmOut:  cmOut,
			Anchor: aw.Anchor,
			Rho:    rho,
			Delta:  delta,
		},
	}, nil
}

// Verify checks a compliance proof against its claimed public inputs.
func (b *Builder) Verify(p *Proof) (bool, error) {
	deltaX, deltaY := primitives.PointCoords(p.Public.Delta)
	pub := &Circuit{
		NfIn:   primitives.ToBigInt(p.Public.NfIn),
		CmOut:  primitives.ToBigInt(p.Public.CmOut),
		Anchor: primitives.ToBigInt(p.Public.Anchor),
		Rho:    primitives.ToBigInt(p.Public.Rho),
		DeltaX: deltaX,
		DeltaY: deltaY,
	}
	w, err := frontend.NewWitness(pub, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, err
	}
	if err := groth16.Verify(p.Proof, b.vk, w); err != nil {
		return false, nil
	}
	return true, nil
}

// actionDelta computes Δ = qIn·K_in − qOut·K_out + rcv·R out of circuit,
// for both witness assembly and for the builder's own accumulation of
// Δ_total across actions.
func actionDelta(qIn uint64, kIn *primitives.Point, qOut uint64, kOut *primitives.Point, rcv primitives.F) *primitives.Point {
	inTerm := primitives.ScalarMul(new(big.Int).SetUint64(qIn), kIn)
	outTerm := primitives.ScalarMul(new(big.Int).SetUint64(qOut), kOut)
	negOutTerm := primitives.PointNeg(outTerm)
	rTerm := primitives.ScalarMul(primitives.ToBigInt(rcv), primitives.GeneratorR())
	sum := primitives.PointAdd(inTerm, negOutTerm)
	return primitives.PointAdd(sum, rTerm)
}

func fillWitness(c *Circuit, aw ActionWitness) {
	in := aw.Input
	out := aw.Output

	c.InLogic = primitives.ToBigInt(in.Logic)
	c.InLabel = primitives.ToBigInt(in.Label)
	c.InValue = primitives.ToBigInt(in.Value)
	c.InQuantity = new(big.Int).SetUint64(in.Quantity)
	c.InKey = primitives.ToBigInt(in.NK.Value)
	c.InNonce = primitives.ToBigInt(in.Nonce)
	c.InPsi = primitives.ToBigInt(in.Psi)
	c.InRcm = primitives.ToBigInt(in.Rcm)
	c.InIsEphemeral = boolVar(in.IsEphemeral)

	c.OutLogic = primitives.ToBigInt(out.Logic)
	c.OutLabel = primitives.ToBigInt(out.Label)
	c.OutValue = primitives.ToBigInt(out.Value)
	c.OutQuantity = new(big.Int).SetUint64(out.Quantity)
	c.OutNkIsKey = boolVar(out.NK.IsKey())
	c.OutNkValue = primitives.ToBigInt(out.NK.Value)
	c.OutPsi = primitives.ToBigInt(out.Psi)
	c.OutRcm = primitives.ToBigInt(out.Rcm)
	c.OutIsEphemeral = boolVar(out.IsEphemeral)

	for i := 0; i < LedgerTreeDepth; i++ {
		c.LedgerSiblings[i] = primitives.ToBigInt(aw.LedgerPath.Siblings[i])
		c.LedgerPathBits[i] = boolVar(aw.LedgerPath.PathBits[i])
	}
	// aw.ResourcePath is the full opening of the nf_in leaf (even
	// position); level 0 of that path is cm_out itself and is already
	// folded into the circuit's pair-hash step, so only levels 1..depth-1
	// are carried as witness here.
	for i := 0; i < ResourceTreeUpperDepth; i++ {
		c.ResourceSiblings[i] = primitives.ToBigInt(aw.ResourcePath.Siblings[i+1])
		c.ResourcePathBits[i] = boolVar(aw.ResourcePath.PathBits[i+1])
	}
	c.Rcv = primitives.ToBigInt(aw.Rcv)
}

func boolVar(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}
