package codec

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/satcity/satcity/alkane"
)

func sampleWitness() *Witness {
	return &Witness{
		Version: 1,
		Variant: VariantCanonical,
		FieldElements: []uint256.Int{
			*uint256.NewInt(7),
			*uint256.NewInt(42),
		},
		NewRoot: bytesOfLen(32, 0xAB),
	}
}

func bytesOfLen(n int, fill byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return b
}

func TestWitnessRoundTrip(t *testing.T) {
	w := sampleWitness()
	encoded := EncodeWitness(w)

	decoded, err := DecodeWitness(encoded)
	if err != nil {
		t.Fatalf("DecodeWitness: %v", err)
	}
	if decoded.Version != w.Version || decoded.Variant != w.Variant {
		t.Fatal("version/variant mismatch after round trip")
	}
	if len(decoded.FieldElements) != len(w.FieldElements) {
		t.Fatalf("field element count = %d, want %d", len(decoded.FieldElements), len(w.FieldElements))
	}
	for i := range w.FieldElements {
		if !decoded.FieldElements[i].Eq(&w.FieldElements[i]) {
			t.Fatalf("field element %d mismatch", i)
		}
	}
	if string(decoded.NewRoot) != string(w.NewRoot) {
		t.Fatal("root mismatch after round trip")
	}

	reencoded := EncodeWitness(decoded)
	if string(reencoded) != string(encoded) {
		t.Fatal("re-encoding a decoded witness did not reproduce the original bytes")
	}
}

func TestDecodeWitnessRejectsBadMagic(t *testing.T) {
	buf := EncodeWitness(sampleWitness())
	buf[0] = 'X'
	if _, err := DecodeWitness(buf); !alkane.IsKind(err, "MalformedWitness") {
		t.Fatalf("expected MalformedWitness, got %v", err)
	}
}

func TestDecodeWitnessRejectsUnknownVersion(t *testing.T) {
	buf := EncodeWitness(sampleWitness())
	buf[4] = 2
	if _, err := DecodeWitness(buf); !alkane.IsKind(err, "MalformedWitness") {
		t.Fatalf("expected MalformedWitness, got %v", err)
	}
}

func TestDecodeWitnessAcceptsUnknownVariant(t *testing.T) {
	// Variant validity is a semantic check made by the verifier core
	// (UnsupportedVariant), not a decode-time failure.
	w := sampleWitness()
	w.Variant = 2
	buf := EncodeWitness(w)
	decoded, err := DecodeWitness(buf)
	if err != nil {
		t.Fatalf("DecodeWitness: %v", err)
	}
	if decoded.Variant.Valid() {
		t.Fatal("variant 2 should not be reported valid")
	}
}

func TestDecodeWitnessRejectsTruncatedByOneByte(t *testing.T) {
	buf := EncodeWitness(sampleWitness())
	truncated := buf[:len(buf)-1]
	if _, err := DecodeWitness(truncated); !alkane.IsKind(err, "MalformedWitness") {
		t.Fatalf("expected MalformedWitness, got %v", err)
	}
}

func TestDecodeWitnessRejectsTrailingBytes(t *testing.T) {
	buf := append(EncodeWitness(sampleWitness()), 0x00)
	if _, err := DecodeWitness(buf); !alkane.IsKind(err, "MalformedWitness") {
		t.Fatalf("expected MalformedWitness, got %v", err)
	}
}

func TestDecodeWitnessRejectsShortHeader(t *testing.T) {
	if _, err := DecodeWitness([]byte{'S', 'A', 'T'}); !alkane.IsKind(err, "MalformedWitness") {
		t.Fatalf("expected MalformedWitness, got %v", err)
	}
}
