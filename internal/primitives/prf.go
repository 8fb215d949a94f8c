package primitives

import (
	"golang.org/x/crypto/blake2b"
)

// Seed expansion personalization and tag bytes.
const (
	personalization = "Taiga_ExpandSeed"

	TagPsi     byte = 0x09
	TagRcm     byte = 0x04
	TagRcv     byte = 0x10
	TagRLog1   byte = 0x11
	TagRLog2   byte = 0x12
	TagPadding byte = 0x13
)

// RandomSeed is 32 uniform bytes, the single entropy source for all
// per-resource randomness.
type RandomSeed [32]byte

// NewRandomSeed draws a fresh uniform seed.
func NewRandomSeed() (RandomSeed, error) {
	var s RandomSeed
	b, err := RandomBytes(32)
	if err != nil {
		return s, err
	}
	copy(s[:], b)
	return s, nil
}

// PRFTag computes PRF_tag(seed, extra) -> F: BLAKE2b-512 over
// personalization‖tag_byte‖seed‖extra, reduced to F via FromUniformBytes.
// x/crypto's blake2b exposes no personalization parameter, so the 16-byte
// personalization string is absorbed as a domain prefix instead.
func PRFTag(tag byte, seed RandomSeed, extra []byte) (F, error) {
	h, err := blake2b.New512(nil)
	if err != nil {
		return F{}, err
	}
	if _, err := h.Write([]byte(personalization)); err != nil {
		return F{}, err
	}
	if _, err := h.Write([]byte{tag}); err != nil {
		return F{}, err
	}
	if _, err := h.Write(seed[:]); err != nil {
		return F{}, err
	}
	if _, err := h.Write(extra); err != nil {
		return F{}, err
	}
	return FromUniformBytes(h.Sum(nil)), nil
}

func extraBytes(elems ...F) []byte {
	out := make([]byte, 0, 32*len(elems))
	for _, e := range elems {
		b := e.Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// PRFPsi derives psi = PRF_ψ(rseed, nonce).
func PRFPsi(seed RandomSeed, nonce F) (F, error) {
	return PRFTag(TagPsi, seed, extraBytes(nonce))
}

// PRFRcm derives the commitment trapdoor rcm = PRF_r(rseed, nonce).
func PRFRcm(seed RandomSeed, nonce F) (F, error) {
	return PRFTag(TagRcm, seed, extraBytes(nonce))
}

// PRFRcv derives the binding-commitment randomness rcv = PRF_rcv(rseed).
func PRFRcv(seed RandomSeed) (F, error) {
	return PRFTag(TagRcv, seed, nil)
}

// PRFRLog1 and PRFRLog2 derive the two logic-commitment randomizers.
func PRFRLog1(seed RandomSeed) (F, error) {
	return PRFTag(TagRLog1, seed, nil)
}

func PRFRLog2(seed RandomSeed) (F, error) {
	return PRFTag(TagRLog2, seed, nil)
}
