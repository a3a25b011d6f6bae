// Package escrow implements the GameEscrow contract: an allowlisted
// FT/NFT ledger that accepts deposits and releases assets against
// operator-signed, nonce-protected withdrawal requests.
package escrow

import (
	"math/big"

	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/codec"
	"github.com/satcity/satcity/storage"
)

// Ledger holds the allowlist, per-caller FT balances, per-token NFT
// custody, and per-player withdrawal nonces, each keyed the way the
// persisted storage layout describes.
type Ledger struct {
	kv storage.KV
}

// NewLedger wraps a KV store with the ledger accessors.
func NewLedger(kv storage.KV) *Ledger {
	return &Ledger{kv: kv}
}

func (l *Ledger) allowlist(token alkane.Id) storage.Pointer {
	return storage.Root(l.kv, "/allowlist").Select(token.Bytes())
}

func (l *Ledger) ftBalance(caller, token alkane.Id) storage.Pointer {
	return storage.Root(l.kv, "/ft").Select(caller.Bytes()).Select(token.Bytes())
}

func (l *Ledger) nftSlot(token alkane.Id) storage.Pointer {
	return storage.Root(l.kv, "/nft").Select(token.Bytes())
}

func (l *Ledger) nonceSlot(player alkane.Id) storage.Pointer {
	return storage.Root(l.kv, "/nonce").Select(player.Bytes())
}

// IsAllowed reports whether token may be deposited.
func (l *Ledger) IsAllowed(token alkane.Id) bool {
	return l.allowlist(token).GetU8() != 0
}

// Allow adds token to the allowlist.
func (l *Ledger) Allow(token alkane.Id) {
	l.allowlist(token).SetU8(1)
}

// Disallow removes token from the allowlist. Existing deposited balances
// are untouched; only new deposits are blocked.
func (l *Ledger) Disallow(token alkane.Id) {
	l.allowlist(token).Clear()
}

// FTBalance returns caller's current fungible balance of token, 0 if
// never credited.
func (l *Ledger) FTBalance(caller, token alkane.Id) *big.Int {
	return l.ftBalance(caller, token).GetU128()
}

// CreditFT adds amount to caller's balance of token, failing with
// Overflow if the result would exceed the u128 range.
func (l *Ledger) CreditFT(caller, token alkane.Id, amount *big.Int) error {
	next := new(big.Int).Add(l.FTBalance(caller, token), amount)
	if !codec.FitsU128(next) {
		return alkane.ErrOverflow
	}
	l.ftBalance(caller, token).SetU128(next)
	return nil
}

// DebitFT subtracts amount from caller's balance of token, failing with
// InsufficientBalance if the balance is too low.
func (l *Ledger) DebitFT(caller, token alkane.Id, amount *big.Int) error {
	cur := l.FTBalance(caller, token)
	if cur.Cmp(amount) < 0 {
		return alkane.ErrInsufficientBalance
	}
	l.ftBalance(caller, token).SetU128(new(big.Int).Sub(cur, amount))
	return nil
}

// NFTDepositor returns the depositor of record for token and whether
// the NFT is currently held in escrow.
func (l *Ledger) NFTDepositor(token alkane.Id) (alkane.Id, bool) {
	b := l.nftSlot(token).Get()
	if b == nil {
		return alkane.Id{}, false
	}
	id, err := alkane.IdFromBytes(b)
	if err != nil {
		return alkane.Id{}, false
	}
	return id, true
}

// DepositNFT records depositor as the custodian of token. Re-depositing
// an NFT already held in escrow is rejected (NFTAlreadyDeposited) rather
// than silently replacing the recorded depositor.
func (l *Ledger) DepositNFT(depositor, token alkane.Id) error {
	if _, held := l.NFTDepositor(token); held {
		return alkane.ErrNFTAlreadyDeposited
	}
	l.nftSlot(token).Set(depositor.Bytes())
	return nil
}

// WithdrawNFT clears token's custody slot, requiring that recipient is
// the recorded depositor of record. Fails with NotOwner if the token
// is not held, or is held for a different principal.
func (l *Ledger) WithdrawNFT(token, recipient alkane.Id) error {
	owner, held := l.NFTDepositor(token)
	if !held || !owner.Equal(recipient) {
		return alkane.ErrNotOwner
	}
	l.nftSlot(token).Clear()
	return nil
}

// Nonce returns the next expected withdrawal nonce for player, 0 if none
// has ever been accepted (so a player's first withdrawal must present
// nonce 0).
func (l *Ledger) Nonce(player alkane.Id) *big.Int {
	return l.nonceSlot(player).GetU128()
}

// AdvanceNonce accepts next only if it equals the next expected nonce,
// enforcing strict monotonicity starting from 0 (replay protection);
// otherwise it fails with BadNonce. On success the stored nonce becomes
// next+1, the new next-expected value.
func (l *Ledger) AdvanceNonce(player alkane.Id, next *big.Int) error {
	if next.Cmp(l.Nonce(player)) != 0 {
		return alkane.ErrBadNonce
	}
	l.nonceSlot(player).SetU128(new(big.Int).Add(next, big.NewInt(1)))
	return nil
}
