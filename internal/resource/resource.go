// Package resource implements the Taiga resource model: the generalized
// UTXO carried by every action, its commitment and nullifier derivation,
// and the nullifier-key tagged union that distinguishes spendable from
// receive-only resources.
package resource

import (
	"github.com/anoma/taiga-core/internal/primitives"
)

// NullifierKeyVariant tags which arm of the NullifierKey union is populated.
type NullifierKeyVariant int

const (
	// VariantKey is a secret spending key, for resources one can spend.
	VariantKey NullifierKeyVariant = iota
	// VariantPubKey is a public commitment, for resources one may only
	// create or receive.
	VariantPubKey
)

// NullifierKey is the tagged union nk: either Key(F) or PubKey(F). A
// plain sum type; the two arms collapse under Public.
type NullifierKey struct {
	Variant NullifierKeyVariant
	Value   primitives.F
}

// Key constructs the spendable variant nk = Key(key).
func Key(key primitives.F) NullifierKey {
	return NullifierKey{Variant: VariantKey, Value: key}
}

// PubKey constructs the receive-only variant nk = PubKey(x).
func PubKey(x primitives.F) NullifierKey {
	return NullifierKey{Variant: VariantPubKey, Value: x}
}

// IsKey reports whether this is the spendable variant.
func (nk NullifierKey) IsKey() bool {
	return nk.Variant == VariantKey
}

// Public computes npk(nk): nk itself if it is already PubKey(x), else
// H(key, 0). Both arms collapse to the same field element under
// commitment.
func (nk NullifierKey) Public() (primitives.F, error) {
	if nk.Variant == VariantPubKey {
		return nk.Value, nil
	}
	return primitives.HashN(nk.Value, primitives.ZeroF())
}

// ResourceKind identifies a fungibility class: all resources sharing the
// same (logic, label) pair are mutually fungible.
type ResourceKind struct {
	Logic primitives.F
	Label primitives.F
}

// Point derives the kind point K = HC(logic, label) ∈ E.
func (k ResourceKind) Point() (*primitives.Point, error) {
	return primitives.Kind(k.Logic, k.Label)
}

// Resource is the Taiga analogue of a note or UTXO.
type Resource struct {
	Logic       primitives.F
	Label       primitives.F
	Value       primitives.F
	Quantity    uint64
	NK          NullifierKey
	Nonce       primitives.F
	Psi         primitives.F
	Rcm         primitives.F
	IsEphemeral bool

	nonceSet bool
}

// ResourceCommitment is the ledger identity of an output resource and the
// Merkle leaf used by downstream resource-logic proofs.
type ResourceCommitment = primitives.F

// Nullifier is a collision-free tag published when a resource is spent.
type Nullifier = primitives.F

// NewInput constructs an input resource: one that already has a fixed
// nonce (inherited from its own predecessor's nullifier, or chosen freely
// if ephemeral) and carries a spending key.
func NewInput(
	logic, label, value primitives.F,
	quantity uint64,
	nkKey primitives.F,
	nonce primitives.F,
	isEphemeral bool,
	rseed primitives.RandomSeed,
) (Resource, error) {
	psi, err := primitives.PRFPsi(rseed, nonce)
	if err != nil {
		return Resource{}, err
	}
	rcm, err := primitives.PRFRcm(rseed, nonce)
	if err != nil {
		return Resource{}, err
	}
	return Resource{
		Logic:       logic,
		Label:       label,
		Value:       value,
		Quantity:    quantity,
		NK:          Key(nkKey),
		Nonce:       nonce,
		Psi:         psi,
		Rcm:         rcm,
		IsEphemeral: isEphemeral,
		nonceSet:    true,
	}, nil
}

// NewOutput constructs an output resource with nonce, psi, and rcm left as
// zero placeholders; SetNonce MUST be called before Commitment.
func NewOutput(
	logic, label, value primitives.F,
	quantity uint64,
	npk primitives.F,
	isEphemeral bool,
) Resource {
	return Resource{
		Logic:       logic,
		Label:       label,
		Value:       value,
		Quantity:    quantity,
		NK:          PubKey(npk),
		IsEphemeral: isEphemeral,
	}
}

// SetNonce sets output.nonce := paired_input.nullifier(), then derives
// psi and rcm from rseed‖nonce. MUST be called before Commitment on any
// output.
func (r *Resource) SetNonce(pairedInput *Resource, rseed primitives.RandomSeed) error {
	nf, err := pairedInput.Nullifier()
	if err != nil {
		return err
	}
	if nf == nil {
		return ErrMissingNullifierKey
	}
	psi, err := primitives.PRFPsi(rseed, *nf)
	if err != nil {
		return err
	}
	rcm, err := primitives.PRFRcm(rseed, *nf)
	if err != nil {
		return err
	}
	r.Nonce = *nf
	r.Psi = psi
	r.Rcm = rcm
	r.nonceSet = true
	return nil
}

// Commitment computes cm = H(logic, label, value, npk, nonce, psi,
// ε‖quantity, rcm), in exactly that 8-element preimage order.
func (r *Resource) Commitment() (ResourceCommitment, error) {
	if !r.nonceSet {
		return primitives.F{}, ErrNonceNotSet
	}
	npk, err := r.NK.Public()
	if err != nil {
		return primitives.F{}, err
	}
	epsQuantity := primitives.EncodeEphemeralQuantity(r.IsEphemeral, r.Quantity)
	return primitives.HashN(
		r.Logic, r.Label, r.Value, npk, r.Nonce, r.Psi, epsQuantity, r.Rcm,
	)
}

// Nullifier computes nf = H(key, nonce, psi, cm), defined only when
// nk = Key(key). Returns nil (not an error) when nk is PubKey-only.
func (r *Resource) Nullifier() (*Nullifier, error) {
	if !r.NK.IsKey() {
		return nil, nil
	}
	cm, err := r.Commitment()
	if err != nil {
		return nil, err
	}
	nf, err := primitives.HashN(r.NK.Value, r.Nonce, r.Psi, cm)
	if err != nil {
		return nil, err
	}
	return &nf, nil
}

// Kind returns HC(logic, label).
func (r *Resource) Kind() (*primitives.Point, error) {
	return primitives.Kind(r.Logic, r.Label)
}
