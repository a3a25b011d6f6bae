// Package verifier implements the Verifier contract: a thin state
// machine around a pluggable STARK verification backend. Proof checking
// itself is treated as a black box behind the Backend interface so the
// contract logic never depends on a specific proof system.
package verifier

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/codec"
)

// Backend verifies one proof's field elements against a preprocessed
// AIR variant. A real backend wraps a Cairo/STARK verifier; tests and
// the simulator use MockBackend.
type Backend interface {
	Verify(variant codec.Variant, elements []uint256.Int) error
}

// Registry dispatches verification to the backend registered for a
// given preprocessed variant. Variants with no registered backend fail
// with UnsupportedVariant.
type Registry struct {
	mu       sync.RWMutex
	backends map[codec.Variant]Backend
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[codec.Variant]Backend)}
}

// Register binds a backend to a preprocessed variant.
func (r *Registry) Register(variant codec.Variant, b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[variant] = b
}

// Verify routes to the backend registered for variant, or fails with
// UnsupportedVariant if none is registered.
func (r *Registry) Verify(variant codec.Variant, elements []uint256.Int) error {
	r.mu.RLock()
	b, ok := r.backends[variant]
	r.mu.RUnlock()
	if !ok {
		return alkane.ErrUnsupportedVariant
	}
	return b.Verify(variant, elements)
}

// MockBackend is a deterministic stand-in STARK verifier for tests and
// the simulator: it accepts any non-empty field-element set unless
// configured to reject, so test fixtures can exercise both the happy
// path and ProofInvalid without a real prover.
type MockBackend struct {
	// Reject forces every call to fail with ProofInvalid, simulating a
	// proof that does not verify.
	Reject bool
}

// Verify implements Backend.
func (m *MockBackend) Verify(variant codec.Variant, elements []uint256.Int) error {
	if m.Reject {
		return alkane.ErrProofInvalid
	}
	if len(elements) == 0 {
		return alkane.ErrProofInvalid
	}
	return nil
}
