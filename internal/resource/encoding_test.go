package resource

import (
	"errors"
	"testing"

	"github.com/anoma/taiga-core/internal/primitives"
)

func TestEncodingRoundTrip(t *testing.T) {
	var seed primitives.RandomSeed
	seed[0] = 3

	in, err := NewInput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.FromUint64(3),
		42, primitives.FromUint64(4), primitives.FromUint64(5), true, seed,
	)
	if err != nil {
		t.Fatalf("NewInput failed: %v", err)
	}

	decoded, err := FromBytes(in.Bytes())
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if decoded != in {
		t.Error("input resource should round-trip")
	}

	cm1, err := in.Commitment()
	if err != nil {
		t.Fatalf("Commitment failed: %v", err)
	}
	cm2, err := decoded.Commitment()
	if err != nil {
		t.Fatalf("Commitment failed: %v", err)
	}
	if !primitives.Equal(cm1, cm2) {
		t.Error("round-tripped resource should commit identically")
	}
}

func TestEncodingPreservesNonceSet(t *testing.T) {
	out := NewOutput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.FromUint64(3),
		7, primitives.FromUint64(9), false,
	)

	decoded, err := FromBytes(out.Bytes())
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if _, err := decoded.Commitment(); !errors.Is(err, ErrNonceNotSet) {
		t.Errorf("a round-tripped un-nonced output should still refuse Commitment, got %v", err)
	}
}

func TestEncodingRejectsMalformed(t *testing.T) {
	var seed primitives.RandomSeed
	in, err := NewInput(
		primitives.FromUint64(1), primitives.FromUint64(2), primitives.FromUint64(3),
		1, primitives.FromUint64(4), primitives.FromUint64(5), false, seed,
	)
	if err != nil {
		t.Fatalf("NewInput failed: %v", err)
	}
	b := in.Bytes()

	if _, err := FromBytes(b[:len(b)-1]); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("truncated encoding should be rejected, got %v", err)
	}

	bad := make([]byte, len(b))
	copy(bad, b)
	bad[EncodedLen-2] = 0xFF
	if _, err := FromBytes(bad); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("unknown variant byte should be rejected, got %v", err)
	}

	copy(bad, b)
	bad[EncodedLen-1] = 0xFF
	if _, err := FromBytes(bad); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("unknown flag bits should be rejected, got %v", err)
	}
}
