// Package codec implements the wire encodings used by both contracts:
// little-endian primitive packing for storage and parameter streams, the
// big-endian-framed witness payload read from the enclosing transaction,
// and the fixed-width transfer parcel encoding.
package codec

import (
	"encoding/binary"
	"math/big"

	"github.com/satcity/satcity/alkane"
)

// ErrTruncated is returned whenever a buffer ends before a fixed-width
// field can be read in full.
var ErrTruncated = alkane.ErrMalformedWitness

// PutU128LE writes v into dst (must be 16 bytes) in little-endian order.
// v must fit in 128 bits; callers are expected to have range-checked it.
func PutU128LE(dst []byte, v *big.Int) {
	b := v.Bytes()
	for i, j := 0, len(b)-1; j >= 0 && i < len(dst); i, j = i+1, j-1 {
		dst[i] = b[j]
	}
}

// U128FromLE reads a 16-byte little-endian buffer into a big.Int.
func U128FromLE(src []byte) *big.Int {
	be := make([]byte, len(src))
	for i, j := 0, len(src)-1; j >= 0; i, j = i+1, j-1 {
		be[i] = src[j]
	}
	return new(big.Int).SetBytes(be)
}

// MaxU128 is the largest value representable in 128 bits, used to
// range-check decoded and accumulated balances.
var MaxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// FitsU128 reports whether v is within [0, 2^128 - 1].
func FitsU128(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(MaxU128) <= 0
}

// PutU32BE writes v into dst (must be 4 bytes) in big-endian order, the
// framing convention used by the witness payload.
func PutU32BE(dst []byte, v uint32) {
	binary.BigEndian.PutUint32(dst, v)
}

// U32FromBE reads a 4-byte big-endian buffer into a uint32.
func U32FromBE(src []byte) uint32 {
	return binary.BigEndian.Uint32(src)
}
