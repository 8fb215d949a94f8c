// Package common provides shared byte- and integer-encoding utilities.
package common

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"
)

// HexToBytes converts a hex string to bytes
func HexToBytes(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return hex.DecodeString(s)
}

// BytesToHex converts bytes to a hex string with 0x prefix
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// BigIntToBytes converts a big.Int to a fixed-size byte slice
func BigIntToBytes(n *big.Int, size int) []byte {
	if n == nil {
		return make([]byte, size)
	}
	b := n.Bytes()
	if len(b) >= size {
		return b[:size]
	}
	// Pad with leading zeros
	result := make([]byte, size)
	copy(result[size-len(b):], b)
	return result
}

// BytesToBigInt converts a byte slice to big.Int
func BytesToBigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// Uint64ToBytes converts uint64 to bytes (big endian)
func Uint64ToBytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// BytesToUint64 converts bytes to uint64 (big endian)
func BytesToUint64(b []byte) uint64 {
	if len(b) < 8 {
		padded := make([]byte, 8)
		copy(padded[8-len(b):], b)
		b = padded
	}
	return binary.BigEndian.Uint64(b)
}
