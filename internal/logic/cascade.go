package logic

import (
	"context"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
	"github.com/anoma/taiga-core/internal/tree"
)

// CascadeCircuit chains partial transactions when a party holds more
// resources than one bundle's action slots: the cascade intent's label is
// the commitment of the carried-over resource, and consuming the intent
// is only provable when that exact resource is spent as a sibling in the
// same resource tree. The sibling leaf is its nullifier, tied to the
// label-as-commitment through the nullifier preimage.
type CascadeCircuit struct {
	CommonPublic
	OpeningWitness // opening of the cascade intent's own leaf

	// Consumed cascade intent, in full; its label is the carried
	// resource's commitment.
	IntentLogicVK     frontend.Variable
	IntentLabel       frontend.Variable
	IntentValue       frontend.Variable
	IntentQuantity    frontend.Variable
	IntentKey         frontend.Variable
	IntentNonce       frontend.Variable
	IntentPsi         frontend.Variable
	IntentRcm         frontend.Variable
	IntentIsEphemeral frontend.Variable

	// Spending secrets of the carried resource, linking its nullifier to
	// the label.
	CarriedKey   frontend.Variable
	CarriedNonce frontend.Variable
	CarriedPsi   frontend.Variable
	CarriedPath  OpeningWitness
}

func (c *CascadeCircuit) Define(api frontend.API) error {
	h, err := newCircuitHasher(api)
	if err != nil {
		return err
	}

	api.AssertIsBoolean(c.IntentIsEphemeral)

	// Pin the intent's own leaf to its field contents.
	h.Reset()
	h.Write(c.IntentKey, 0)
	npk := h.Sum()
	epsQ := api.Add(api.Mul(c.IntentIsEphemeral, twoPow128), c.IntentQuantity)
	h.Reset()
	h.Write(c.IntentLogicVK, c.IntentLabel, c.IntentValue, npk, c.IntentNonce, c.IntentPsi, epsQ, c.IntentRcm)
	cm := h.Sum()
	h.Reset()
	h.Write(c.IntentKey, c.IntentNonce, c.IntentPsi, cm)
	nf := h.Sum()
	api.AssertIsEqual(nf, c.LeafValue)
	api.AssertIsEqual(walkOpening(api, h, c.LeafValue, c.OpeningWitness), c.Rho)

	// The carried resource's nullifier commits to the label: the intent is
	// spendable only alongside the exact resource the label names.
	h.Reset()
	h.Write(c.CarriedKey, c.CarriedNonce, c.CarriedPsi, c.IntentLabel)
	carriedNf := h.Sum()
	api.AssertIsEqual(walkOpening(api, h, carriedNf, c.CarriedPath), c.Rho)

	return nil
}

var cascadeVK = primitives.MustHashN(primitives.FromUint64(0xD1CE), primitives.FromUint64(4))

// CascadeLogic is the ResourceLogic governing cascade intent resources.
type CascadeLogic struct {
	builder *circuitBuilder
}

// NewCascadeLogic compiles the cascade circuit once.
func NewCascadeLogic() (*CascadeLogic, error) {
	b, err := compile(&CascadeCircuit{})
	if err != nil {
		return nil, err
	}
	return &CascadeLogic{builder: b}, nil
}

func (l *CascadeLogic) CompressedVK() primitives.F { return cascadeVK }

// CascadeWitness is the private witness for consuming a cascade intent.
type CascadeWitness struct {
	Intent resource.Resource

	// The resource carried over into this bundle; its commitment must be
	// the intent's label and it must itself be spent here.
	Carried     resource.Resource
	CarriedPath *tree.ResourceExistenceWitness
}

func (l *CascadeLogic) Prove(ctx context.Context, binding PublicInputs, opening *tree.ResourceExistenceWitness, witness any) (*Proof, error) {
	w, ok := witness.(CascadeWitness)
	if !ok {
		return nil, ErrProofGenerationFailed
	}
	if !w.Intent.NK.IsKey() || !w.Carried.NK.IsKey() {
		return nil, resource.ErrMissingNullifierKey
	}

	assignment := &CascadeCircuit{
		CommonPublic:   publicAssignment(binding),
		OpeningWitness: openingAssignment(opening),

		IntentLogicVK:     primitives.ToBigInt(w.Intent.Logic),
		IntentLabel:       primitives.ToBigInt(w.Intent.Label),
		IntentValue:       primitives.ToBigInt(w.Intent.Value),
		IntentQuantity:    new(big.Int).SetUint64(w.Intent.Quantity),
		IntentKey:         primitives.ToBigInt(w.Intent.NK.Value),
		IntentNonce:       primitives.ToBigInt(w.Intent.Nonce),
		IntentPsi:         primitives.ToBigInt(w.Intent.Psi),
		IntentRcm:         primitives.ToBigInt(w.Intent.Rcm),
		IntentIsEphemeral: boolToVar(w.Intent.IsEphemeral),

		CarriedKey:   primitives.ToBigInt(w.Carried.NK.Value),
		CarriedNonce: primitives.ToBigInt(w.Carried.Nonce),
		CarriedPsi:   primitives.ToBigInt(w.Carried.Psi),
		CarriedPath:  openingAssignment(w.CarriedPath),
	}
	proof, err := l.builder.prove(assignment)
	if err != nil {
		return nil, err
	}
	return &Proof{Proof: proof, Public: binding}, nil
}

func (l *CascadeLogic) Verify(ctx context.Context, proof *Proof) (bool, error) {
	assignment := &CascadeCircuit{CommonPublic: publicAssignment(proof.Public)}
	return l.builder.verify(proof.Proof, assignment)
}
