package escrow

import (
	"math/big"

	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/auth"
	"github.com/satcity/satcity/storage"
)

// Contract implements the GameEscrow operations against a KV store and
// ledger: Initialize, Deposit, Withdraw, AddTokenToAllowlist,
// RemoveTokenFromAllowlist, SetOperator, and SetPaused.
type Contract struct {
	kv     storage.KV
	lc     *auth.Lifecycle
	ledger *Ledger
}

// New wires a Contract to its storage.
func New(kv storage.KV) *Contract {
	return &Contract{kv: kv, lc: auth.New(kv), ledger: NewLedger(kv)}
}

// Ledger exposes the underlying ledger for read-only balance queries.
func (c *Contract) Ledger() *Ledger { return c.ledger }

func (c *Contract) operator() storage.Pointer { return storage.Root(c.kv, "/operator") }

// Initialize sets the owner and the operator key withdrawal signatures
// must be signed by. Callable exactly once (I4).
func (c *Contract) Initialize(owner alkane.Id, operatorPubkey []byte) error {
	if err := c.lc.ObserveInitialization(); err != nil {
		return err
	}
	c.lc.SetOwner(owner)
	c.operator().Set(operatorPubkey)
	return nil
}

// AddTokenToAllowlist permits token to be deposited. Owner-only.
func (c *Contract) AddTokenToAllowlist(caller, token alkane.Id) error {
	if err := c.requireOwnerOp(caller); err != nil {
		return err
	}
	c.ledger.Allow(token)
	return nil
}

// RemoveTokenFromAllowlist blocks further deposits of token; balances
// already deposited can still be withdrawn. Owner-only.
func (c *Contract) RemoveTokenFromAllowlist(caller, token alkane.Id) error {
	if err := c.requireOwnerOp(caller); err != nil {
		return err
	}
	c.ledger.Disallow(token)
	return nil
}

// SetOperator replaces the withdrawal-signing key. Owner-only.
func (c *Contract) SetOperator(caller alkane.Id, newOperatorPubkey []byte) error {
	if err := c.requireOwnerOp(caller); err != nil {
		return err
	}
	c.operator().Set(newOperatorPubkey)
	return nil
}

// SetPaused toggles the pause flag, which blocks Deposit and Withdraw
// but never admin operations. Owner-only.
func (c *Contract) SetPaused(caller alkane.Id, paused bool) error {
	if err := c.requireOwnerOp(caller); err != nil {
		return err
	}
	c.lc.SetPaused(paused)
	return nil
}

// requireOwnerOp is the common guard for the owner-gated admin
// operations: contract must be initialized and caller must be the
// owner. Admin operations run regardless of the pause flag.
func (c *Contract) requireOwnerOp(caller alkane.Id) error {
	if err := c.lc.RequireInitialized(); err != nil {
		return err
	}
	return c.lc.OnlyOwner(caller)
}

// Deposit credits the ledger for every transfer in incoming: NFT
// transfers (value == 1) record caller as the depositor of record;
// fungible transfers (value > 1) add to caller's balance of that token.
// Every token must be on the allowlist, and the incoming parcel must be
// non-empty.
func (c *Contract) Deposit(caller alkane.Id, incoming alkane.Parcel) error {
	if err := c.lc.RequireInitialized(); err != nil {
		return err
	}
	if err := c.lc.RequireNotPaused(); err != nil {
		return err
	}
	if incoming.Empty() {
		return alkane.ErrNothingToDeposit
	}

	for _, t := range incoming {
		if !c.ledger.IsAllowed(t.Id) {
			return alkane.ErrTokenNotAllowed
		}
		if t.IsZero() {
			return alkane.ErrZeroAmount
		}
		if t.IsNFT() {
			if err := c.ledger.DepositNFT(caller, t.Id); err != nil {
				return err
			}
			continue
		}
		if err := c.ledger.CreditFT(caller, t.Id, t.Value); err != nil {
			return err
		}
	}
	return nil
}

// Withdraw releases token to recipient against an operator-signed
// request. The signature must recover to the stored operator key, and
// the request's nonce must equal recipient's next expected nonce.
// amount == 1 withdraws the NFT held in escrow for token, requiring
// recipient to be its depositor of record (NotOwner otherwise); any
// other non-zero amount debits recipient's fungible balance.
//
// Unlike Deposit, Withdraw does not gate on the token allowlist:
// allowlist removal blocks further deposits but must not strand
// balances a player already deposited while the token was listed, so a
// delisted token can still be withdrawn.
func (c *Contract) Withdraw(myself, recipient, token alkane.Id, amount, nonce *big.Int, sig []byte) (alkane.Response, error) {
	if err := c.lc.RequireInitialized(); err != nil {
		return alkane.Response{}, err
	}
	if err := c.lc.RequireNotPaused(); err != nil {
		return alkane.Response{}, err
	}
	if amount == nil || amount.Sign() == 0 {
		return alkane.Response{}, alkane.ErrZeroAmount
	}

	hash := WithdrawMessageHash(myself, recipient, token, amount, nonce)
	if err := VerifyWithdrawSignature(c.operator().Get(), hash, sig); err != nil {
		return alkane.Response{}, err
	}

	if err := c.ledger.AdvanceNonce(recipient, nonce); err != nil {
		return alkane.Response{}, err
	}

	if amount.Cmp(big.NewInt(1)) == 0 {
		if err := c.ledger.WithdrawNFT(token, recipient); err != nil {
			return alkane.Response{}, err
		}
	} else {
		if err := c.ledger.DebitFT(recipient, token, amount); err != nil {
			return alkane.Response{}, err
		}
	}

	return alkane.Response{Alkanes: alkane.Parcel{{Id: token, Value: amount}}}, nil
}
