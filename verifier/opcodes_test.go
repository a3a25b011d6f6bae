package verifier

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/auth"
	"github.com/satcity/satcity/codec"
	"github.com/satcity/satcity/dispatch"
	"github.com/satcity/satcity/storage"
)

func TestOpcodeDispatchFullFlow(t *testing.T) {
	kv := storage.NewMemoryKV()
	reg := NewRegistry()
	reg.Register(codec.VariantCanonical, &MockBackend{})
	c := New(kv, reg)
	d := dispatch.New(auth.New(kv), func(alkane.Id) *big.Int { return big.NewInt(0) })
	Register(d, c)

	owner := alkane.NewId(1, 1)
	bridge := alkane.NewId(2, 2)

	if _, err := d.Dispatch(alkane.Context{Caller: owner}, OpInitialize,
		[]*big.Int{bridge.Block, bridge.Tx}, []byte("genesis")); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	witness := oneElementWitness(codec.VariantCanonical, []byte("new-root"))
	resp, err := d.Dispatch(alkane.Context{Caller: owner, TransactionBytes: witness}, OpVerifyAndUpdate, nil, nil)
	if err != nil {
		t.Fatalf("VerifyAndUpdate: %v", err)
	}
	if !bytes.Equal(resp.Data, []byte("new-root")) {
		t.Fatalf("expected new-root, got %q", resp.Data)
	}

	readResp, err := d.Dispatch(alkane.Context{Caller: owner}, OpGetStateRoot, nil, nil)
	if err != nil {
		t.Fatalf("GetStateRoot: %v", err)
	}
	if !bytes.Equal(readResp.Data, []byte("new-root")) {
		t.Fatalf("expected GetStateRoot to reflect the update, got %q", readResp.Data)
	}
}

func TestOpcodeDispatchUnknownOpcode(t *testing.T) {
	kv := storage.NewMemoryKV()
	c := New(kv, NewRegistry())
	d := dispatch.New(auth.New(kv), func(alkane.Id) *big.Int { return big.NewInt(0) })
	Register(d, c)

	if _, err := d.Dispatch(alkane.Context{}, dispatch.Opcode(2), nil, nil); !alkane.IsKind(err, "UnknownOpcode") {
		t.Fatalf("expected UnknownOpcode, got %v", err)
	}
}
