package logic

import (
	"context"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
	"github.com/anoma/taiga-core/internal/tree"
)

// twoPow128 mirrors the ε‖quantity embedding used by resource commitments:
// is_ephemeral lands at bit 128 of the quantity field element.
const twoPow128 = "340282366920938463463374607431768211456"

// IntentCircuit proves the or-relation intent contract. The consumed
// intent resource's label commits to two acceptable kinds and a receiver;
// the circuit recomputes the intent's commitment and nullifier from its
// full field contents (pinning LeafValue to exactly this resource), opens
// a sibling leaf of the same resource tree, and asserts the sibling is an
// output of one of the two declared kinds carrying the declared receiver
// key and value.
//
// The alternatives and the receiver are witnesses, not public inputs:
// which settlement the intent would have accepted stays hidden, only the
// logic commitments are published.
type IntentCircuit struct {
	CommonPublic
	OpeningWitness // opening of the intent's own leaf (its nullifier)

	// Consumed intent resource, in full.
	IntentLogicVK     frontend.Variable
	IntentValue       frontend.Variable
	IntentQuantity    frontend.Variable
	IntentKey         frontend.Variable
	IntentNonce       frontend.Variable
	IntentPsi         frontend.Variable
	IntentRcm         frontend.Variable
	IntentIsEphemeral frontend.Variable

	// Label preimage: the two acceptable alternatives and the receiver.
	Alt1Logic     frontend.Variable
	Alt1Label     frontend.Variable
	Alt2Logic     frontend.Variable
	Alt2Label     frontend.Variable
	ReceiverNpk   frontend.Variable
	ReceiverValue frontend.Variable

	// Sibling settlement output, in full, with its own opening to ρ.
	OutLogic       frontend.Variable
	OutLabel       frontend.Variable
	OutValue       frontend.Variable
	OutNpk         frontend.Variable
	OutNonce       frontend.Variable
	OutPsi         frontend.Variable
	OutRcm         frontend.Variable
	OutQuantity    frontend.Variable
	OutIsEphemeral frontend.Variable
	OutOpening     OpeningWitness
}

func (c *IntentCircuit) Define(api frontend.API) error {
	h, err := newCircuitHasher(api)
	if err != nil {
		return err
	}

	api.AssertIsBoolean(c.IntentIsEphemeral)
	api.AssertIsBoolean(c.OutIsEphemeral)

	// The intent's label is the hash of what it is willing to accept.
	h.Reset()
	h.Write(c.Alt1Logic, c.Alt1Label, c.Alt2Logic, c.Alt2Label, c.ReceiverNpk, c.ReceiverValue)
	label := h.Sum()

	// Recompute the intent's commitment and nullifier; LeafValue is the
	// nullifier published when the intent was consumed, so the leaf the
	// shared opening walks from is pinned to these exact fields.
	h.Reset()
	h.Write(c.IntentKey, 0)
	npk := h.Sum()
	epsQ := api.Add(api.Mul(c.IntentIsEphemeral, twoPow128), c.IntentQuantity)
	h.Reset()
	h.Write(c.IntentLogicVK, label, c.IntentValue, npk, c.IntentNonce, c.IntentPsi, epsQ, c.IntentRcm)
	cm := h.Sum()
	h.Reset()
	h.Write(c.IntentKey, c.IntentNonce, c.IntentPsi, cm)
	nf := h.Sum()
	api.AssertIsEqual(nf, c.LeafValue)
	api.AssertIsEqual(walkOpening(api, h, c.LeafValue, c.OpeningWitness), c.Rho)

	// The settlement output lives under the same ρ.
	outEpsQ := api.Add(api.Mul(c.OutIsEphemeral, twoPow128), c.OutQuantity)
	h.Reset()
	h.Write(c.OutLogic, c.OutLabel, c.OutValue, c.OutNpk, c.OutNonce, c.OutPsi, outEpsQ, c.OutRcm)
	outCm := h.Sum()
	api.AssertIsEqual(walkOpening(api, h, outCm, c.OutOpening), c.Rho)

	// Or-relation over the two declared kinds.
	m1 := api.Mul(
		api.IsZero(api.Sub(c.OutLogic, c.Alt1Logic)),
		api.IsZero(api.Sub(c.OutLabel, c.Alt1Label)),
	)
	m2 := api.Mul(
		api.IsZero(api.Sub(c.OutLogic, c.Alt2Logic)),
		api.IsZero(api.Sub(c.OutLabel, c.Alt2Label)),
	)
	api.AssertIsEqual(api.Sub(api.Add(m1, m2), api.Mul(m1, m2)), 1)

	// Settlement goes to the declared receiver.
	api.AssertIsEqual(c.OutNpk, c.ReceiverNpk)
	api.AssertIsEqual(c.OutValue, c.ReceiverValue)

	return nil
}

// IntentLabel derives the label an or-relation intent resource carries:
// the hash of its two acceptable kinds and the receiver it settles to.
func IntentLabel(alt1, alt2 resource.ResourceKind, receiverNpk, receiverValue primitives.F) primitives.F {
	return primitives.MustHashN(
		alt1.Logic, alt1.Label, alt2.Logic, alt2.Label, receiverNpk, receiverValue,
	)
}

var intentVK = primitives.MustHashN(primitives.FromUint64(0xCAFE), primitives.FromUint64(3))

// IntentLogic is the ResourceLogic governing or-relation intent resources.
type IntentLogic struct {
	builder *circuitBuilder
}

// NewIntentLogic compiles the intent circuit once.
func NewIntentLogic() (*IntentLogic, error) {
	b, err := compile(&IntentCircuit{})
	if err != nil {
		return nil, err
	}
	return &IntentLogic{builder: b}, nil
}

func (l *IntentLogic) CompressedVK() primitives.F { return intentVK }

// IntentWitness is the private witness for consuming an intent resource.
type IntentWitness struct {
	Intent        resource.Resource
	Alt1          resource.ResourceKind
	Alt2          resource.ResourceKind
	ReceiverNpk   primitives.F
	ReceiverValue primitives.F

	Settlement        resource.Resource
	SettlementOpening *tree.ResourceExistenceWitness
}

func (l *IntentLogic) Prove(ctx context.Context, binding PublicInputs, opening *tree.ResourceExistenceWitness, witness any) (*Proof, error) {
	w, ok := witness.(IntentWitness)
	if !ok {
		return nil, ErrProofGenerationFailed
	}
	if !w.Intent.NK.IsKey() {
		return nil, resource.ErrMissingNullifierKey
	}
	outNpk, err := w.Settlement.NK.Public()
	if err != nil {
		return nil, err
	}

	assignment := &IntentCircuit{
		CommonPublic:   publicAssignment(binding),
		OpeningWitness: openingAssignment(opening),

		IntentLogicVK:     primitives.ToBigInt(w.Intent.Logic),
		IntentValue:       primitives.ToBigInt(w.Intent.Value),
		IntentQuantity:    new(big.Int).SetUint64(w.Intent.Quantity),
		IntentKey:         primitives.ToBigInt(w.Intent.NK.Value),
		IntentNonce:       primitives.ToBigInt(w.Intent.Nonce),
		IntentPsi:         primitives.ToBigInt(w.Intent.Psi),
		IntentRcm:         primitives.ToBigInt(w.Intent.Rcm),
		IntentIsEphemeral: boolToVar(w.Intent.IsEphemeral),

		Alt1Logic:     primitives.ToBigInt(w.Alt1.Logic),
		Alt1Label:     primitives.ToBigInt(w.Alt1.Label),
		Alt2Logic:     primitives.ToBigInt(w.Alt2.Logic),
		Alt2Label:     primitives.ToBigInt(w.Alt2.Label),
		ReceiverNpk:   primitives.ToBigInt(w.ReceiverNpk),
		ReceiverValue: primitives.ToBigInt(w.ReceiverValue),

		OutLogic:       primitives.ToBigInt(w.Settlement.Logic),
		OutLabel:       primitives.ToBigInt(w.Settlement.Label),
		OutValue:       primitives.ToBigInt(w.Settlement.Value),
		OutNpk:         primitives.ToBigInt(outNpk),
		OutNonce:       primitives.ToBigInt(w.Settlement.Nonce),
		OutPsi:         primitives.ToBigInt(w.Settlement.Psi),
		OutRcm:         primitives.ToBigInt(w.Settlement.Rcm),
		OutQuantity:    new(big.Int).SetUint64(w.Settlement.Quantity),
		OutIsEphemeral: boolToVar(w.Settlement.IsEphemeral),
		OutOpening:     openingAssignment(w.SettlementOpening),
	}
	proof, err := l.builder.prove(assignment)
	if err != nil {
		return nil, err
	}
	return &Proof{Proof: proof, Public: binding}, nil
}

func (l *IntentLogic) Verify(ctx context.Context, proof *Proof) (bool, error) {
	assignment := &IntentCircuit{CommonPublic: publicAssignment(proof.Public)}
	return l.builder.verify(proof.Proof, assignment)
}

func boolToVar(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}
