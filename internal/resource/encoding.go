package resource

import (
	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/pkg/common"
)

// EncodedLen is the fixed byte length of a serialized resource: seven
// 32-byte field elements, an 8-byte quantity, a variant byte, and a flags
// byte. This framing is builder-local; only the hash preimage orders are
// security-critical, and those are fixed elsewhere.
const EncodedLen = 7*32 + 8 + 2

const (
	flagEphemeral = 1 << 0
	flagNonceSet  = 1 << 1
)

// Bytes serializes the resource. The nonce-set marker survives the round
// trip, so a deserialized not-yet-nonced output still refuses Commitment.
func (r *Resource) Bytes() []byte {
	out := make([]byte, 0, EncodedLen)
	for _, f := range []primitives.F{r.Logic, r.Label, r.Value, r.NK.Value, r.Nonce, r.Psi, r.Rcm} {
		b := f.Bytes()
		out = append(out, b[:]...)
	}
	out = append(out, common.Uint64ToBytes(r.Quantity)...)
	out = append(out, byte(r.NK.Variant))

	var flags byte
	if r.IsEphemeral {
		flags |= flagEphemeral
	}
	if r.nonceSet {
		flags |= flagNonceSet
	}
	out = append(out, flags)
	return out
}

// FromBytes deserializes a resource produced by Bytes.
func FromBytes(data []byte) (Resource, error) {
	if len(data) != EncodedLen {
		return Resource{}, ErrInvalidEncoding
	}

	fields := make([]primitives.F, 7)
	for i := range fields {
		fields[i].SetBytes(data[i*32 : (i+1)*32])
	}
	quantity := common.BytesToUint64(data[7*32 : 7*32+8])

	variant := NullifierKeyVariant(data[EncodedLen-2])
	if variant != VariantKey && variant != VariantPubKey {
		return Resource{}, ErrInvalidEncoding
	}
	flags := data[EncodedLen-1]
	if flags&^(flagEphemeral|flagNonceSet) != 0 {
		return Resource{}, ErrInvalidEncoding
	}

	return Resource{
		Logic:       fields[0],
		Label:       fields[1],
		Value:       fields[2],
		NK:          NullifierKey{Variant: variant, Value: fields[3]},
		Nonce:       fields[4],
		Psi:         fields[5],
		Rcm:         fields[6],
		Quantity:    quantity,
		IsEphemeral: flags&flagEphemeral != 0,
		nonceSet:    flags&flagNonceSet != 0,
	}, nil
}
