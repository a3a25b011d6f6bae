package escrow

import (
	"crypto/sha256"
	"math/big"

	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/codec"
	"github.com/satcity/satcity/crypto"
)

// withdrawDomainTag domain-separates withdrawal authorizations from any
// other signature an operator key might ever produce.
var withdrawDomainTag = []byte("SATC-WITHDRAW-v1")

// WithdrawMessageHash computes the SHA-256 digest an operator signs to
// authorize a withdrawal:
//
//	SHA256("SATC-WITHDRAW-v1" || recipient || token || amount_u128_le || nonce_u128_le || myself)
//
// myself binds the authorization to this specific escrow instance so a
// signature cannot be replayed against a different deployment.
func WithdrawMessageHash(myself, recipient, token alkane.Id, amount, nonce *big.Int) []byte {
	buf := make([]byte, 0, len(withdrawDomainTag)+32+32+16+16+32)
	buf = append(buf, withdrawDomainTag...)
	buf = append(buf, recipient.Bytes()...)
	buf = append(buf, token.Bytes()...)

	amountLE := make([]byte, 16)
	codec.PutU128LE(amountLE, amount)
	buf = append(buf, amountLE...)

	nonceLE := make([]byte, 16)
	codec.PutU128LE(nonceLE, nonce)
	buf = append(buf, nonceLE...)

	buf = append(buf, myself.Bytes()...)

	digest := sha256.Sum256(buf)
	return digest[:]
}

// VerifyWithdrawSignature recovers the signer of hash from sig and
// checks it matches the stored operator key (compressed, 33 bytes).
// Fails with BadSignature on any malformed signature (including one whose
// S lies in the upper half of the curve order) or a mismatched signer.
func VerifyWithdrawSignature(operatorPubkey, hash, sig []byte) error {
	if !crypto.IsValidSignature(sig) {
		return alkane.ErrBadSignature
	}
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return alkane.ErrBadSignature
	}
	if !alkane.BytesEqual(crypto.CompressPubkey(pub), operatorPubkey) {
		return alkane.ErrBadSignature
	}
	return nil
}
