package codec

import (
	"encoding/binary"

	"github.com/satcity/satcity/alkane"
)

// transferWidth is the fixed width of one encoded AlkaneTransfer:
// id (32 bytes, two little-endian u128s) || value (16-byte little-endian
// u128).
const transferWidth = 32 + 16

// EncodeId serializes an Id as two little-endian u128s (32 bytes total).
func EncodeId(id alkane.Id) []byte {
	return id.Bytes()
}

// DecodeId parses the 32-byte encoding produced by EncodeId.
func DecodeId(b []byte) (alkane.Id, error) {
	return alkane.IdFromBytes(b)
}

// EncodeTransfer serializes a Transfer as id || value_u128_le.
func EncodeTransfer(t alkane.Transfer) []byte {
	out := make([]byte, transferWidth)
	copy(out[:32], EncodeId(t.Id))
	PutU128LE(out[32:48], t.Value)
	return out
}

// DecodeTransfer parses the fixed-width encoding produced by
// EncodeTransfer. Requires exactly transferWidth bytes.
func DecodeTransfer(b []byte) (alkane.Transfer, error) {
	if len(b) != transferWidth {
		return alkane.Transfer{}, alkane.ErrMalformedWitness
	}
	id, err := DecodeId(b[:32])
	if err != nil {
		return alkane.Transfer{}, err
	}
	return alkane.Transfer{Id: id, Value: U128FromLE(b[32:48])}, nil
}

// TryToVecParcel serializes a Parcel as count_u32_le || transfers…,
// matching the codec's length-prefixed array convention.
func TryToVecParcel(p alkane.Parcel) []byte {
	out := make([]byte, 4+len(p)*transferWidth)
	binary.LittleEndian.PutUint32(out[:4], uint32(len(p)))
	for i, t := range p {
		start := 4 + i*transferWidth
		copy(out[start:start+transferWidth], EncodeTransfer(t))
	}
	return out
}

// FromVecParcel parses the encoding produced by TryToVecParcel. Rejects
// truncated buffers and trailing bytes beyond the declared count.
func FromVecParcel(b []byte) (alkane.Parcel, error) {
	if len(b) < 4 {
		return nil, alkane.ErrMalformedWitness
	}
	count := binary.LittleEndian.Uint32(b[:4])
	want := 4 + int(count)*transferWidth
	if len(b) != want {
		return nil, alkane.ErrMalformedWitness
	}

	parcel := make(alkane.Parcel, count)
	for i := 0; i < int(count); i++ {
		start := 4 + i*transferWidth
		t, err := DecodeTransfer(b[start : start+transferWidth])
		if err != nil {
			return nil, err
		}
		parcel[i] = t
	}
	return parcel, nil
}
