package alkane

import (
	"math/big"
	"testing"
)

func bigFromUint(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

func TestIdOrdering(t *testing.T) {
	a := NewId(2, 100)
	b := NewId(2, 200)
	if a.Cmp(b) >= 0 {
		t.Fatal("expected a < b")
	}
	if b.Cmp(a) <= 0 {
		t.Fatal("expected b > a")
	}
	if a.Cmp(a) != 0 {
		t.Fatal("expected a == a")
	}
}

func TestIdBytesRoundTrip(t *testing.T) {
	id := NewId(2, 100)
	got, err := IdFromBytes(id.Bytes())
	if err != nil {
		t.Fatalf("IdFromBytes: %v", err)
	}
	if !got.Equal(id) {
		t.Fatalf("round trip mismatch: got %s, want %s", got, id)
	}
}

func TestIdFromBytesRejectsWrongLength(t *testing.T) {
	if _, err := IdFromBytes(make([]byte, 31)); err == nil {
		t.Fatal("expected error for short buffer")
	}
}

func TestSortPairCanonicalizes(t *testing.T) {
	a := NewId(9, 1)
	b := NewId(2, 7)

	x1, y1 := SortPair(a, b)
	x2, y2 := SortPair(b, a)

	if !x1.Equal(x2) || !y1.Equal(y2) {
		t.Fatal("SortPair is not order-independent")
	}
	if x1.Cmp(y1) > 0 {
		t.Fatal("SortPair did not put the smaller Id first")
	}
}

func TestTransferClassification(t *testing.T) {
	nft := Transfer{Id: NewId(3, 9), Value: bigFromUint(1)}
	ft := Transfer{Id: NewId(3, 9), Value: bigFromUint(50)}
	zero := Transfer{Id: NewId(3, 9), Value: bigFromUint(0)}

	if !nft.IsNFT() {
		t.Error("value==1 should be an NFT transfer")
	}
	if ft.IsNFT() {
		t.Error("value>1 should not be an NFT transfer")
	}
	if !zero.IsZero() {
		t.Error("value==0 should report IsZero")
	}
}

func TestIdStringFormat(t *testing.T) {
	id := NewId(2, 7)
	if id.String() != "(2,7)" {
		t.Fatalf("String() = %q, want %q", id.String(), "(2,7)")
	}
}
