package primitives

import (
	"golang.org/x/crypto/blake2s"
)

// LogicCommitment is a hiding commitment to a compressed verifying key,
// published in lieu of the key itself so that two transactions running
// different but equally valid predicates remain indistinguishable.
type LogicCommitment struct {
	Lo F
	Hi F
}

// Blake2sCommit computes logic_cm = Blake2sCommit(vkCompressed, r), a
// 32-byte BLAKE2s digest over vkCompressed‖r split into two 128-bit field
// halves.
func Blake2sCommit(vkCompressed F, r F) (LogicCommitment, error) {
	h, err := blake2s.New256(nil)
	if err != nil {
		return LogicCommitment{}, err
	}
	vb := vkCompressed.Bytes()
	rb := r.Bytes()
	if _, err := h.Write(vb[:]); err != nil {
		return LogicCommitment{}, err
	}
	if _, err := h.Write(rb[:]); err != nil {
		return LogicCommitment{}, err
	}
	digest := h.Sum(nil)

	var lo, hi F
	lo.SetBytes(digest[:16])
	hi.SetBytes(digest[16:])
	return LogicCommitment{Lo: lo, Hi: hi}, nil
}

// Equal reports whether two logic commitments carry the same two halves.
func (c LogicCommitment) Equal(other LogicCommitment) bool {
	return Equal(c.Lo, other.Lo) && Equal(c.Hi, other.Hi)
}
