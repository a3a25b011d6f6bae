// Package storage provides a StoragePointer abstraction over a
// host-provided key/value store: keyword paths, hierarchical selection,
// and typed fixed-width get/set, mirroring the storage conventions a
// contract host exposes to a WASM guest.
package storage

import (
	"math/big"

	"github.com/satcity/satcity/codec"
)

// KV is the host-provided persistence primitive a contract reads and
// writes through. A real host backs this with its own state trie; tests
// and the simulator use an in-memory implementation.
type KV interface {
	Get(key []byte) []byte
	Set(key []byte, value []byte)
}

// MemoryKV is an in-memory KV suitable for tests and the simulator.
type MemoryKV struct {
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get returns the stored value for key, or nil if absent.
func (m *MemoryKV) Get(key []byte) []byte {
	v, ok := m.data[string(key)]
	if !ok {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

// Set stores value under key. Setting an empty value still creates the
// entry; callers that want to clear a key should use Pointer.Clear.
func (m *MemoryKV) Set(key []byte, value []byte) {
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[string(key)] = cp
}

// Delete removes key entirely, distinct from storing an empty value.
func (m *MemoryKV) Delete(key []byte) {
	delete(m.data, string(key))
}

// Pointer is a byte-string key into a host KV store, with composition
// helpers for building hierarchical paths.
type Pointer struct {
	kv  KV
	key []byte
}

// NewPointer returns the root Pointer for a given key prefix.
func NewPointer(kv KV, key []byte) Pointer {
	return Pointer{kv: kv, key: append([]byte(nil), key...)}
}

// Root returns the Pointer for a bare path, e.g. Root(kv, "/owner").
func Root(kv KV, path string) Pointer {
	return NewPointer(kv, []byte(path))
}

// Keyword appends a literal suffix, e.g. p.Keyword("/allowlist").
func (p Pointer) Keyword(suffix string) Pointer {
	return Pointer{kv: p.kv, key: append(append([]byte(nil), p.key...), suffix...)}
}

// Select appends variable-length bytes that namespace a sub-map, e.g.
// an AlkaneId or a caller's identity bytes.
func (p Pointer) Select(b []byte) Pointer {
	next := append([]byte(nil), p.key...)
	next = append(next, '/')
	next = append(next, b...)
	return Pointer{kv: p.kv, key: next}
}

// Key returns the fully composed byte-string key.
func (p Pointer) Key() []byte {
	return append([]byte(nil), p.key...)
}

// Get returns the raw bytes stored at this pointer, or nil if unset.
func (p Pointer) Get() []byte {
	return p.kv.Get(p.key)
}

// Set stores raw bytes at this pointer.
func (p Pointer) Set(value []byte) {
	p.kv.Set(p.key, value)
}

// Clear removes any value at this pointer. If the underlying KV supports
// deletion it is used; otherwise the pointer is set to nil, which reads
// back as absent via GetU8/GetU128.
func (p Pointer) Clear() {
	if d, ok := p.kv.(interface{ Delete([]byte) }); ok {
		d.Delete(p.key)
		return
	}
	p.kv.Set(p.key, nil)
}

// GetU8 reads a single-byte flag, defaulting to 0 when unset.
func (p Pointer) GetU8() uint8 {
	v := p.Get()
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

// SetU8 writes a single-byte flag.
func (p Pointer) SetU8(v uint8) {
	p.Set([]byte{v})
}

// GetU128 reads a fixed-width little-endian u128, defaulting to 0 when
// unset.
func (p Pointer) GetU128() *big.Int {
	v := p.Get()
	if len(v) == 0 {
		return new(big.Int)
	}
	return codec.U128FromLE(v)
}

// SetU128 writes a fixed-width little-endian u128.
func (p Pointer) SetU128(v *big.Int) {
	buf := make([]byte, 16)
	codec.PutU128LE(buf, v)
	p.Set(buf)
}

// Present reports whether any value (including zero-length) has been
// explicitly written at this pointer.
func (p Pointer) Present() bool {
	return p.Get() != nil
}
