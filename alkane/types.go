// Package alkane defines the shared data model used by both contracts:
// opaque contract/asset identifiers, asset transfers, and the
// per-invocation context a host passes into an opcode handler.
package alkane

import (
	"bytes"
	"encoding/hex"
	"math/big"
)

// Id is a stable contract/asset identifier: a pair (block, tx) of u128
// values, totally ordered lexicographically by (block, tx). It is used
// both as a contract address and as a token identifier.
type Id struct {
	Block *big.Int
	Tx    *big.Int
}

// NewId constructs an Id from plain integers, convenient in tests and the
// simulator.
func NewId(block, tx uint64) Id {
	return Id{Block: new(big.Int).SetUint64(block), Tx: new(big.Int).SetUint64(tx)}
}

// Cmp orders two Ids lexicographically by (block, tx). Used to sort
// compound keys (I7) and to iterate the refund set in ascending order.
func (id Id) Cmp(other Id) int {
	if c := id.Block.Cmp(other.Block); c != 0 {
		return c
	}
	return id.Tx.Cmp(other.Tx)
}

// Equal reports whether id and other identify the same asset/contract.
func (id Id) Equal(other Id) bool {
	return id.Cmp(other) == 0
}

// String renders the id as "(block,tx)", used in logs and error messages.
func (id Id) String() string {
	return "(" + id.Block.String() + "," + id.Tx.String() + ")"
}

// Bytes serializes the Id as 32 bytes: block (16, little-endian) || tx
// (16, little-endian), matching the persisted-state byte convention in
// the data model.
func (id Id) Bytes() []byte {
	out := make([]byte, 32)
	putU128LE(out[:16], id.Block)
	putU128LE(out[16:], id.Tx)
	return out
}

// IdFromBytes parses the 32-byte encoding produced by Bytes.
func IdFromBytes(b []byte) (Id, error) {
	if len(b) != 32 {
		return Id{}, ErrMalformedWitness
	}
	return Id{
		Block: u128FromLE(b[:16]),
		Tx:    u128FromLE(b[16:]),
	}, nil
}

// HexKey renders the Id as a lowercase hex string, suitable as a
// StoragePointer path component.
func (id Id) HexKey() string {
	return hex.EncodeToString(id.Bytes())
}

func putU128LE(dst []byte, v *big.Int) {
	b := v.Bytes() // big-endian, no leading zeros
	for i, j := 0, len(b)-1; j >= 0 && i < len(dst); i, j = i+1, j-1 {
		dst[i] = b[j]
	}
}

func u128FromLE(src []byte) *big.Int {
	be := make([]byte, len(src))
	for i, j := 0, len(src)-1; j >= 0; i, j = i+1, j-1 {
		be[i] = src[j]
	}
	return new(big.Int).SetBytes(be)
}

// SortPair returns (a, b) reordered so the first component is the
// lexicographically smaller Id. Compound keys pairing two Ids always use
// this to guarantee canonical lookup regardless of call order (I7).
func SortPair(a, b Id) (Id, Id) {
	if a.Cmp(b) <= 0 {
		return a, b
	}
	return b, a
}

// Transfer is a single-asset movement: `value == 1` denotes an NFT
// transfer of the unique token `id`; `value > 1` denotes a fungible
// transfer of `value` units of `id`; `value == 0` is invalid at
// validation edges.
type Transfer struct {
	Id    Id
	Value *big.Int
}

// IsNFT reports whether the transfer represents a unique (value == 1)
// asset move.
func (t Transfer) IsNFT() bool {
	return t.Value != nil && t.Value.Cmp(big.NewInt(1)) == 0
}

// IsZero reports whether the transfer carries no value, which is invalid
// wherever a transfer is validated as an asset movement.
func (t Transfer) IsZero() bool {
	return t.Value == nil || t.Value.Sign() == 0
}

// Parcel is an ordered sequence of Transfers. Duplicates are allowed only
// for fungible entries.
type Parcel []Transfer

// Empty reports whether the parcel carries no transfers.
func (p Parcel) Empty() bool {
	return len(p) == 0
}

// Response is the output surface of every opcode handler: return bytes
// plus the outgoing asset moves.
type Response struct {
	Data    []byte
	Alkanes Parcel
}

// Context carries the per-invocation values a host supplies to a
// handler: the contract's own identity, the caller's identity, the
// assets sent along with this call, and a byte view of the enclosing
// Bitcoin transaction (from which the verifier extracts its witness
// payload).
type Context struct {
	Myself           Id
	Caller           Id
	IncomingAlkanes  Parcel
	TransactionBytes []byte
}

// BytesEqual is a small helper used throughout storage-backed comparisons
// where byte slices stand in for identifiers.
func BytesEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}
