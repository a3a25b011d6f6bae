package crypto

import (
	"errors"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// secp256k1N is the order of the secp256k1 curve, used for signature
// component range checks and low-S normalization. It is a well-known
// curve constant and does not depend on any particular library's
// exported surface.
var secp256k1N, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

// secp256k1halfN is half the curve order, used for the low-S
// malleability check applied to withdrawal signatures.
var secp256k1halfN = new(big.Int).Div(secp256k1N, big.NewInt(2))

// GenerateKey generates a new secp256k1 private key, e.g. for an operator
// key used to sign withdrawal authorizations.
func GenerateKey() (*secp256k1.PrivateKey, error) {
	return secp256k1.GeneratePrivateKey()
}

// Sign produces a 65-byte recoverable signature (R || S || V) over a
// 32-byte hash. V is the raw recovery id in [0,3].
func Sign(hash []byte, priv *secp256k1.PrivateKey) ([]byte, error) {
	if len(hash) != 32 {
		return nil, errors.New("hash must be 32 bytes")
	}
	compact := ecdsa.SignCompact(priv, hash, false)
	out := make([]byte, 65)
	copy(out[:32], compact[1:33])
	copy(out[32:64], compact[33:65])
	out[64] = compact[0] - 27
	return out, nil
}

// Ecrecover recovers the uncompressed public key (0x04 || X || Y, 65
// bytes) from hash and a 65-byte recoverable signature.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	pub, err := SigToPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return FromECDSAPub(pub), nil
}

// SigToPub recovers the public key from hash and a 65-byte recoverable
// signature (R || S || V).
func SigToPub(hash, sig []byte) (*secp256k1.PublicKey, error) {
	if len(sig) != 65 {
		return nil, errors.New("signature must be 65 bytes [R || S || V]")
	}
	if len(hash) != 32 {
		return nil, errors.New("hash must be 32 bytes")
	}
	v := sig[64]
	if v > 3 {
		return nil, errors.New("invalid recovery id")
	}

	compact := make([]byte, 65)
	compact[0] = 27 + v
	copy(compact[1:33], sig[:32])
	copy(compact[33:65], sig[32:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// ValidateSignatureValues checks r, s, v for structural validity: r and s
// must lie in [1, n-1], v must be a valid recovery id, and when lowSOnly
// is set s must additionally sit in the lower half of the curve order
// (the BIP-62 / EIP-2 malleability rule applied to withdrawal
// signatures).
func ValidateSignatureValues(v byte, r, s *big.Int, lowSOnly bool) bool {
	if r == nil || s == nil {
		return false
	}
	if v > 3 {
		return false
	}
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	if r.Cmp(secp256k1N) >= 0 || s.Cmp(secp256k1N) >= 0 {
		return false
	}
	if lowSOnly && s.Cmp(secp256k1halfN) > 0 {
		return false
	}
	return true
}

// CompressPubkey compresses a public key to 33 bytes.
func CompressPubkey(pubkey *secp256k1.PublicKey) []byte {
	if pubkey == nil {
		return nil
	}
	return pubkey.SerializeCompressed()
}

// DecompressPubkey parses a 33-byte compressed public key.
func DecompressPubkey(pubkey []byte) (*secp256k1.PublicKey, error) {
	if len(pubkey) != 33 {
		return nil, errors.New("invalid compressed public key length")
	}
	return secp256k1.ParsePubKey(pubkey)
}

// FromECDSAPub marshals a public key to 65-byte uncompressed format
// (0x04 || X || Y).
func FromECDSAPub(pub *secp256k1.PublicKey) []byte {
	if pub == nil {
		return nil
	}
	return pub.SerializeUncompressed()
}
