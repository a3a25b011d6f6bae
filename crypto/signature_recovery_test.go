package crypto

import (
	"crypto/sha256"
	"math/big"
	"testing"
)

func TestParseCompactSignature(t *testing.T) {
	sig := make([]byte, 65)
	sig[0] = 0xAA  // first byte of R
	sig[32] = 0xBB // first byte of S
	sig[64] = 1    // V

	cs, err := ParseCompactSignature(sig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs.R[0] != 0xAA {
		t.Fatalf("R[0] = %x, want 0xAA", cs.R[0])
	}
	if cs.S[0] != 0xBB {
		t.Fatalf("S[0] = %x, want 0xBB", cs.S[0])
	}
	if cs.V != 1 {
		t.Fatalf("V = %d, want 1", cs.V)
	}
}

func TestParseCompactSignatureTooShort(t *testing.T) {
	_, err := ParseCompactSignature(make([]byte, 64))
	if err != ErrSigRecoverInvalidLength {
		t.Fatalf("expected ErrSigRecoverInvalidLength, got %v", err)
	}
}

func TestCompactSignatureRoundTrip(t *testing.T) {
	orig := make([]byte, 65)
	for i := range orig {
		orig[i] = byte(i)
	}
	orig[64] = 0 // valid V

	cs, err := ParseCompactSignature(orig)
	if err != nil {
		t.Fatal(err)
	}
	encoded := cs.Bytes()
	if len(encoded) != 65 {
		t.Fatalf("encoded length = %d, want 65", len(encoded))
	}
	for i := range orig {
		if encoded[i] != orig[i] {
			t.Fatalf("byte %d: %x != %x", i, encoded[i], orig[i])
		}
	}
}

func TestValidateSignatureComponents(t *testing.T) {
	// Valid: mid-range R and S in lower half.
	r := new(big.Int).Div(secp256k1N, big.NewInt(2))
	s := new(big.Int).Div(secp256k1N, big.NewInt(4))
	if err := validateSigComponents(r, s, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Invalid V.
	if err := validateSigComponents(r, s, 4); err != ErrSigRecoverInvalidV {
		t.Fatalf("expected ErrSigRecoverInvalidV, got %v", err)
	}

	// R = 0.
	if err := validateSigComponents(big.NewInt(0), s, 0); err != ErrSigRecoverInvalidR {
		t.Fatalf("expected ErrSigRecoverInvalidR, got %v", err)
	}

	// R = n.
	if err := validateSigComponents(new(big.Int).Set(secp256k1N), s, 0); err != ErrSigRecoverInvalidR {
		t.Fatalf("expected ErrSigRecoverInvalidR, got %v", err)
	}

	// S = 0.
	if err := validateSigComponents(r, big.NewInt(0), 0); err != ErrSigRecoverInvalidS {
		t.Fatalf("expected ErrSigRecoverInvalidS, got %v", err)
	}

	// S in upper half.
	highS := new(big.Int).Add(secp256k1halfN, big.NewInt(1))
	if err := validateSigComponents(r, highS, 0); err != ErrSigRecoverMalleable {
		t.Fatalf("expected ErrSigRecoverMalleable, got %v", err)
	}
}

func TestNormalizeSFlipsToLowerHalf(t *testing.T) {
	highS := new(big.Int).Add(secp256k1halfN, big.NewInt(100))
	cs := &CompactSignature{V: 0}
	copy(cs.R[:], big.NewInt(42).Bytes())
	sBytes := highS.Bytes()
	copy(cs.S[32-len(sBytes):], sBytes)

	cs.NormalizeS()

	normalizedS := cs.SBigInt()
	if normalizedS.Cmp(secp256k1halfN) > 0 {
		t.Fatal("S still in upper half after normalization")
	}
	if cs.V != 1 {
		t.Fatalf("V should be flipped to 1, got %d", cs.V)
	}
}

func TestNormalizeSNoOpForLowerHalf(t *testing.T) {
	lowS := new(big.Int).Div(secp256k1halfN, big.NewInt(2))
	cs := &CompactSignature{V: 0}
	sBytes := lowS.Bytes()
	copy(cs.S[32-len(sBytes):], sBytes)

	cs.NormalizeS()

	if cs.SBigInt().Cmp(lowS) != 0 {
		t.Fatal("S should not change when already in lower half")
	}
	if cs.V != 0 {
		t.Fatalf("V should remain 0, got %d", cs.V)
	}
}

func TestRecoverPublicKeyRoundTripSigRecover(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	hash := hashOf("hello sat city")
	sig, err := Sign(hash, key)
	if err != nil {
		t.Fatal(err)
	}

	sr := NewSigRecover()
	cs, err := ParseCompactSignature(sig)
	if err != nil {
		t.Fatal(err)
	}

	pub, err := sr.RecoverPublicKey(hash, cs)
	if err != nil {
		t.Fatalf("RecoverPublicKey: %v", err)
	}

	expected := FromECDSAPub(key.PubKey())
	if len(pub) != len(expected) {
		t.Fatalf("pubkey length %d != %d", len(pub), len(expected))
	}
	for i := range pub {
		if pub[i] != expected[i] {
			t.Fatalf("pubkey byte %d: %x != %x", i, pub[i], expected[i])
		}
	}
}

func TestRecoverPublicKeyRejectsMalleableSignature(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	hash := hashOf("malleable")
	sig, err := Sign(hash, key)
	if err != nil {
		t.Fatal(err)
	}
	cs, err := ParseCompactSignature(sig)
	if err != nil {
		t.Fatal(err)
	}
	cs.NormalizeS() // ensure low-S, then force it high again below.

	flipped := cs.SBigInt()
	flipped.Sub(secp256k1N, flipped)
	sBytes := flipped.Bytes()
	cs.S = [32]byte{}
	copy(cs.S[32-len(sBytes):], sBytes)
	cs.V ^= 1

	sr := NewSigRecover()
	if _, err := sr.RecoverPublicKey(hash, cs); err != ErrSigRecoverMalleable {
		t.Fatalf("expected ErrSigRecoverMalleable, got %v", err)
	}
}

func TestBatchSignatureVerification(t *testing.T) {
	sr := NewSigRecover()
	n := 10
	hashes := make([][]byte, n)
	sigs := make([]*CompactSignature, n)
	expectedPub := make([][]byte, n)

	for i := 0; i < n; i++ {
		key, err := GenerateKey()
		if err != nil {
			t.Fatal(err)
		}
		h := sha256.Sum256([]byte{byte(i), byte(i + 1)})
		hash := h[:]
		sig, err := Sign(hash, key)
		if err != nil {
			t.Fatal(err)
		}
		cs, err := ParseCompactSignature(sig)
		if err != nil {
			t.Fatal(err)
		}
		hashes[i] = hash
		sigs[i] = cs
		expectedPub[i] = FromECDSAPub(key.PubKey())
	}

	results, err := sr.BatchSignatureVerification(hashes, sigs)
	if err != nil {
		t.Fatalf("batch verification: %v", err)
	}
	if len(results) != n {
		t.Fatalf("results length = %d, want %d", len(results), n)
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("result %d: unexpected error %v", i, r.Err)
		}
		got := FromECDSAPub(r.PubKey)
		if string(got) != string(expectedPub[i]) {
			t.Fatalf("result %d: recovered pubkey mismatch", i)
		}
	}
}

func TestBatchSignatureVerificationEmpty(t *testing.T) {
	sr := NewSigRecover()
	_, err := sr.BatchSignatureVerification(nil, nil)
	if err != ErrSigRecoverBatchEmpty {
		t.Fatalf("expected ErrSigRecoverBatchEmpty, got %v", err)
	}
}

func TestBatchSignatureVerificationMismatch(t *testing.T) {
	sr := NewSigRecover()
	_, err := sr.BatchSignatureVerification(
		[][]byte{{1}},
		[]*CompactSignature{{}, {}},
	)
	if err != ErrSigRecoverBatchMismatch {
		t.Fatalf("expected ErrSigRecoverBatchMismatch, got %v", err)
	}
}

func TestIsValidSignature(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	hash := hashOf("valid")
	sig, err := Sign(hash, key)
	if err != nil {
		t.Fatal(err)
	}
	if !IsValidSignature(sig) {
		t.Fatal("valid signature not recognized")
	}

	// Invalid: too short.
	if IsValidSignature(sig[:64]) {
		t.Fatal("short signature should be invalid")
	}

	// Invalid: zero R.
	badSig := make([]byte, 65)
	copy(badSig, sig)
	for i := 0; i < 32; i++ {
		badSig[i] = 0
	}
	if IsValidSignature(badSig) {
		t.Fatal("zero R should be invalid")
	}
}

func TestRecoverCompressed(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	hash := hashOf("compressed")
	sig, err := Sign(hash, key)
	if err != nil {
		t.Fatal(err)
	}

	sr := NewSigRecover()
	cs, _ := ParseCompactSignature(sig)
	compressed, err := sr.RecoverCompressed(hash, cs)
	if err != nil {
		t.Fatalf("RecoverCompressed: %v", err)
	}
	if len(compressed) != 33 {
		t.Fatalf("compressed length = %d, want 33", len(compressed))
	}
	if compressed[0] != 0x02 && compressed[0] != 0x03 {
		t.Fatalf("invalid prefix: %x", compressed[0])
	}
}
