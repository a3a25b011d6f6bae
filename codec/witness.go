package codec

import (
	"github.com/holiman/uint256"

	"github.com/satcity/satcity/alkane"
)

// WitnessMagic is the fixed 4-byte tag identifying a Sat City witness
// payload at transaction input index 0.
var WitnessMagic = [4]byte{'S', 'A', 'T', 'C'}

// WitnessVersion is the only version this decoder accepts.
const WitnessVersion = 1

// Variant selects which preprocessed Cairo AIR a proof targets.
type Variant uint8

const (
	// VariantCanonical is the AIR with the Pedersen builtin.
	VariantCanonical Variant = 0
	// VariantNoPedersen is the AIR without the Pedersen builtin.
	VariantNoPedersen Variant = 1
)

// Valid reports whether v is one of the known preprocessed variants.
func (v Variant) Valid() bool {
	return v == VariantCanonical || v == VariantNoPedersen
}

// Witness is the decoded form of the fixed-layout payload described in
// the codec design: a magic-tagged, versioned buffer carrying a proof's
// field elements and the new state root it commits to.
type Witness struct {
	Version       uint8
	Variant       Variant
	FieldElements []uint256.Int
	NewRoot       []byte
}

// DecodeWitness parses the fixed SATC witness layout:
//
//	magic[4] == "SATC"
//	version  u8  == 1
//	variant  u8  in {0,1}
//	N        u32 big-endian   // field element count
//	fe[N][32]                 // field elements, big-endian
//	L        u32 big-endian   // new root length
//	root[L]
//
// Any deviation — wrong magic, unknown version, truncated buffer, or
// trailing bytes beyond the declared lengths — fails with
// alkane.ErrMalformedWitness. The decoder is total: callers get either a
// fully parsed and validated Witness, or that single error.
func DecodeWitness(buf []byte) (*Witness, error) {
	const headerLen = 4 + 1 + 1 + 4
	if len(buf) < headerLen {
		return nil, alkane.ErrMalformedWitness
	}
	if buf[0] != WitnessMagic[0] || buf[1] != WitnessMagic[1] || buf[2] != WitnessMagic[2] || buf[3] != WitnessMagic[3] {
		return nil, alkane.ErrMalformedWitness
	}
	version := buf[4]
	if version != WitnessVersion {
		return nil, alkane.ErrMalformedWitness
	}
	variant := Variant(buf[5])

	n := U32FromBE(buf[6:10])
	offset := headerLen
	feBytes := int(n) * 32
	if feBytes/32 != int(n) { // overflow guard for absurd N
		return nil, alkane.ErrMalformedWitness
	}
	if len(buf) < offset+feBytes+4 {
		return nil, alkane.ErrMalformedWitness
	}

	elements := make([]uint256.Int, n)
	for i := 0; i < int(n); i++ {
		start := offset + i*32
		elements[i].SetBytes(buf[start : start+32])
	}
	offset += feBytes

	l := U32FromBE(buf[offset : offset+4])
	offset += 4
	if len(buf) < offset+int(l) {
		return nil, alkane.ErrMalformedWitness
	}
	root := make([]byte, l)
	copy(root, buf[offset:offset+int(l)])
	offset += int(l)

	// Trailing bytes beyond the declared lengths are rejected.
	if offset != len(buf) {
		return nil, alkane.ErrMalformedWitness
	}

	return &Witness{
		Version:       version,
		Variant:       variant,
		FieldElements: elements,
		NewRoot:       root,
	}, nil
}

// EncodeWitness re-serializes a Witness to the wire layout DecodeWitness
// accepts. Round-tripping DecodeWitness(EncodeWitness(w)) reproduces w
// byte-for-byte for any value DecodeWitness would have accepted.
func EncodeWitness(w *Witness) []byte {
	n := len(w.FieldElements)
	out := make([]byte, 4+1+1+4+n*32+4+len(w.NewRoot))

	copy(out[0:4], WitnessMagic[:])
	out[4] = w.Version
	out[5] = byte(w.Variant)
	PutU32BE(out[6:10], uint32(n))

	offset := 10
	for i := range w.FieldElements {
		b := w.FieldElements[i].Bytes32()
		copy(out[offset:offset+32], b[:])
		offset += 32
	}

	PutU32BE(out[offset:offset+4], uint32(len(w.NewRoot)))
	offset += 4
	copy(out[offset:], w.NewRoot)

	return out
}
