// Package primitives implements the algebraic backbone shared by every
// higher layer: the scalar field, the binding curve, the Poseidon sponge,
// the seed-expansion PRF, the Pedersen-style binding commitment, and the
// resource-logic commitment scheme.
package primitives

import (
	"crypto/rand"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// F is a scalar field element. Every hash, commitment, key, and resource
// field lives in F.
type F = fr.Element

// ZeroF returns the additive identity.
func ZeroF() F {
	var z F
	z.SetZero()
	return z
}

// RandomF samples a uniformly random field element.
func RandomF() (F, error) {
	var x F
	_, err := x.SetRandom()
	if err != nil {
		return F{}, err
	}
	return x, nil
}

// RandomBytes returns n cryptographically random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// FromUniformBytes reduces a uniform byte string (any length, but intended
// for 64-byte XOF output) into a field element.
func FromUniformBytes(data []byte) F {
	var x F
	x.SetBytes(data)
	return x
}

// FromUint64 embeds a u64 into F.
func FromUint64(v uint64) F {
	var x F
	x.SetUint64(v)
	return x
}

// EncodeEphemeralQuantity folds is_ephemeral into the high bits of the
// quantity field element: ε·2^128 + quantity.
func EncodeEphemeralQuantity(isEphemeral bool, quantity uint64) F {
	q := new(big.Int).SetUint64(quantity)
	if isEphemeral {
		shift := new(big.Int).Lsh(big.NewInt(1), 128)
		q.Add(q, shift)
	}
	var out F
	out.SetBigInt(q)
	return out
}

// Equal reports whether two field elements represent the same value.
func Equal(a, b F) bool {
	return a.Equal(&b)
}

// ToBigInt returns the canonical big.Int representation of a field
// element, exported for witness assembly at the circuit boundary.
func ToBigInt(x F) *big.Int {
	return fToBigInt(x)
}
