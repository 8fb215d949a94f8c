package primitives

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// HashN is the sponge hash H: it absorbs N field elements and squeezes
// one, via the Poseidon2 Merkle-Damgård hasher over the BN254 scalar
// field. This is the exact out-of-circuit counterpart of the in-circuit
// poseidon2 gadget the compliance and logic circuits use, so every hash
// preimage (commitments, nullifiers, Merkle nodes) recomputes to the same
// value inside and outside a proof.
func HashN(elems ...F) (F, error) {
	h := poseidon2.NewMerkleDamgardHasher()
	for i := range elems {
		b := elems[i].Bytes()
		if _, err := h.Write(b[:]); err != nil {
			return F{}, err
		}
	}
	var out F
	out.SetBytes(h.Sum(nil))
	return out, nil
}

// MustHashN panics on error; used where the input is fixed-arity field
// elements, for which the hasher's Write cannot fail.
func MustHashN(elems ...F) F {
	out, err := HashN(elems...)
	if err != nil {
		panic(err)
	}
	return out
}
