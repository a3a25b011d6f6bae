package storage

import (
	"math/big"
	"testing"
)

func TestPointerU8RoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	p := Root(kv, "/paused")

	if p.GetU8() != 0 {
		t.Fatal("unset u8 should default to 0")
	}
	p.SetU8(1)
	if p.GetU8() != 1 {
		t.Fatal("SetU8/GetU8 round trip failed")
	}
}

func TestPointerU128RoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	p := Root(kv, "/nonce").Select([]byte("player-1"))

	if p.GetU128().Sign() != 0 {
		t.Fatal("unset u128 should default to 0")
	}
	p.SetU128(big.NewInt(42))
	if p.GetU128().Cmp(big.NewInt(42)) != 0 {
		t.Fatal("SetU128/GetU128 round trip failed")
	}
}

func TestPointerSelectCompose(t *testing.T) {
	kv := NewMemoryKV()
	base := Root(kv, "/ft")
	pA := base.Select([]byte("caller-a")).Select([]byte("token-x"))
	pB := base.Select([]byte("caller-b")).Select([]byte("token-x"))

	pA.SetU128(big.NewInt(10))
	pB.SetU128(big.NewInt(20))

	if pA.GetU128().Cmp(big.NewInt(10)) != 0 {
		t.Fatal("pointer pA read back wrong value")
	}
	if pB.GetU128().Cmp(big.NewInt(20)) != 0 {
		t.Fatal("pointer pB read back wrong value")
	}
}

func TestPointerClearRemovesValue(t *testing.T) {
	kv := NewMemoryKV()
	p := Root(kv, "/nft").Select([]byte("token-1"))
	p.Set([]byte("owner-bytes"))

	if !p.Present() {
		t.Fatal("expected pointer to be present after Set")
	}
	p.Clear()
	if p.Present() {
		t.Fatal("expected pointer to be absent after Clear")
	}
}

func TestPointerSelectIsOrderSensitive(t *testing.T) {
	kv := NewMemoryKV()
	p1 := Root(kv, "/x").Select([]byte("a")).Select([]byte("b"))
	p2 := Root(kv, "/x").Select([]byte("ab"))

	p1.SetU8(1)
	if p2.GetU8() == 1 {
		t.Fatal("distinct select sequences collided into the same key")
	}
}
