package verifier

import (
	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/auth"
	"github.com/satcity/satcity/codec"
	"github.com/satcity/satcity/storage"
)

// Contract implements the Verifier's three operations against a KV
// store: Initialize, VerifyAndUpdate, and GetStateRoot.
//
// VerifyAndUpdate is owner-gated: this is a trusted-sequencer design,
// not a permissionless one. Proof validity alone does not authorize a
// state transition — only the owner may submit one, even a correctly
// proven one. A permissionless variant is a possible future redesign
// but is out of scope here.
type Contract struct {
	kv       storage.KV
	lc       *auth.Lifecycle
	registry *Registry
}

// New wires a Contract to its storage and STARK backend registry.
func New(kv storage.KV, registry *Registry) *Contract {
	return &Contract{kv: kv, lc: auth.New(kv), registry: registry}
}

func (c *Contract) bridgeID() storage.Pointer    { return storage.Root(c.kv, "/bridge_id") }
func (c *Contract) stateRoot() storage.Pointer   { return storage.Root(c.kv, "/state_root") }
func (c *Contract) lastVariant() storage.Pointer { return storage.Root(c.kv, "/last_preprocessed_variant") }

// Initialize binds the bound bridge (GameEscrow) identity and seeds the
// genesis state root; caller becomes the owner. Callable exactly once
// (I4).
func (c *Contract) Initialize(caller, bridge alkane.Id, genesisRoot []byte) error {
	if err := c.lc.ObserveInitialization(); err != nil {
		return err
	}
	c.lc.SetOwner(caller)
	c.bridgeID().Set(bridge.Bytes())
	c.stateRoot().Set(genesisRoot)
	return nil
}

// BridgeID returns the escrow contract this verifier is bound to.
func (c *Contract) BridgeID() (alkane.Id, error) {
	if err := c.lc.RequireInitialized(); err != nil {
		return alkane.Id{}, err
	}
	return alkane.IdFromBytes(c.bridgeID().Get())
}

// GetStateRoot returns the current canonical state root.
func (c *Contract) GetStateRoot() ([]byte, error) {
	if err := c.lc.RequireInitialized(); err != nil {
		return nil, err
	}
	return c.stateRoot().Get(), nil
}

// VerifyAndUpdate decodes the witness carried in the enclosing
// transaction, checks the backend registered for its variant accepts
// the proof, and on success advances the canonical state root to the
// witness's declared new root. Only the owner may call this.
func (c *Contract) VerifyAndUpdate(caller alkane.Id, txBytes []byte) ([]byte, error) {
	if err := c.lc.RequireInitialized(); err != nil {
		return nil, err
	}
	if err := c.lc.OnlyOwner(caller); err != nil {
		return nil, err
	}

	w, err := codec.DecodeWitness(txBytes)
	if err != nil {
		return nil, err
	}
	if !w.Variant.Valid() {
		return nil, alkane.ErrUnsupportedVariant
	}

	if err := c.registry.Verify(w.Variant, w.FieldElements); err != nil {
		return nil, err
	}

	c.stateRoot().Set(w.NewRoot)
	c.lastVariant().SetU8(uint8(w.Variant))
	return w.NewRoot, nil
}
