// Package auth implements the shared owner/initialization/pause/lock
// primitives both contracts build their state machines on.
package auth

import (
	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/storage"
)

// Lifecycle bundles the storage-backed auth primitives for one contract
// instance: a one-shot init guard, an owner identity, a pause flag, and
// a reentrancy lock.
type Lifecycle struct {
	kv storage.KV
}

// New wraps a KV store with the lifecycle helpers.
func New(kv storage.KV) *Lifecycle {
	return &Lifecycle{kv: kv}
}

func (l *Lifecycle) initialized() storage.Pointer { return storage.Root(l.kv, "/initialized") }
func (l *Lifecycle) owner() storage.Pointer       { return storage.Root(l.kv, "/owner") }
func (l *Lifecycle) paused() storage.Pointer      { return storage.Root(l.kv, "/paused") }
func (l *Lifecycle) lock() storage.Pointer        { return storage.Root(l.kv, "/lock") }

// ObserveInitialization atomically checks and sets the one-shot init
// flag: if `/initialized` is already non-zero it fails with
// AlreadyInitialized; otherwise it writes 1 and returns nil. Once set, it
// never reverts to 0 (I4).
func (l *Lifecycle) ObserveInitialization() error {
	if l.initialized().GetU8() != 0 {
		return alkane.ErrAlreadyInitialized
	}
	l.initialized().SetU8(1)
	return nil
}

// RequireInitialized fails with NotInitialized unless Initialize has
// already run.
func (l *Lifecycle) RequireInitialized() error {
	if l.initialized().GetU8() == 0 {
		return alkane.ErrNotInitialized
	}
	return nil
}

// SetOwner stores the admin principal. Called once, by Initialize.
func (l *Lifecycle) SetOwner(id alkane.Id) {
	l.owner().Set(id.Bytes())
}

// Owner returns the currently stored admin principal.
func (l *Lifecycle) Owner() (alkane.Id, error) {
	return alkane.IdFromBytes(l.owner().Get())
}

// OnlyOwner compares caller against the stored owner and fails with
// Unauthorized on mismatch (I5).
func (l *Lifecycle) OnlyOwner(caller alkane.Id) error {
	owner, err := l.Owner()
	if err != nil {
		return alkane.ErrUnauthorized
	}
	if !caller.Equal(owner) {
		return alkane.ErrUnauthorized
	}
	return nil
}

// Paused reports whether the contract is currently in the Paused state.
func (l *Lifecycle) Paused() bool {
	return l.paused().GetU8() != 0
}

// SetPaused writes the pause flag. Any non-zero input is normalized to 1
// at rest; zero unpauses.
func (l *Lifecycle) SetPaused(paused bool) {
	if paused {
		l.paused().SetU8(1)
	} else {
		l.paused().SetU8(0)
	}
}

// RequireNotPaused fails with Paused when the contract is paused. Deposit
// and Withdraw call this before touching the ledger; admin ops do not.
func (l *Lifecycle) RequireNotPaused() error {
	if l.Paused() {
		return alkane.ErrPaused
	}
	return nil
}

// Acquire takes the reentrancy lock, failing with LOCKED if it is
// already held. Callers MUST release via the returned func, typically
// with defer, so the lock clears on every exit path including error and
// panic.
func (l *Lifecycle) Acquire() (release func(), err error) {
	if l.lock().GetU8() != 0 {
		return nil, alkane.ErrLocked
	}
	l.lock().SetU8(1)
	return func() { l.lock().SetU8(0) }, nil
}
