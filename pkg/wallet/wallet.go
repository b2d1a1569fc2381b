// Package wallet signs and submits entry-function transactions on behalf of an account.
package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"h2o-bounty/pkg/aptos"

	"github.com/aptos-labs/aptos-go-sdk/crypto"
)

var ErrBadSignature = errors.New("signature verification failed")

// Wallet is what the data layer needs from a connected account.
type Wallet interface {
	Address() string
	SignAndSubmitTransaction(ctx context.Context, payload aptos.EntryFunctionPayload) (*aptos.PendingTransaction, error)
}

// AddressFromPublicKey derives the account address of an ed25519 public key:
// its authentication key under the single-key ed25519 scheme.
func AddressFromPublicKey(pub ed25519.PublicKey) string {
	key := &crypto.Ed25519PublicKey{Inner: pub}
	return aptos.Address(*key.AuthKey()).String()
}

// ParsePublicKey decodes a 0x-prefixed hex ed25519 public key.
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	raw, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key: want %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// EncodePublicKey is the 0x-prefixed hex form ParsePublicKey accepts.
func EncodePublicKey(pub ed25519.PublicKey) string {
	return encodeHex(pub)
}

// ParsePrivateKey accepts a 32-byte seed or a 64-byte key in hex, optionally
// carrying the "ed25519-priv-" prefix used by wallet exports.
func ParsePrivateKey(s string) (ed25519.PrivateKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "ed25519-priv-")
	raw, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, fmt.Errorf("private key: unexpected length %d", len(raw))
	}
}

// VerifyMessage checks an ed25519 signature (hex) over message.
func VerifyMessage(pub ed25519.PublicKey, message, signatureHex string) error {
	sig, err := decodeHex(signatureHex)
	if err != nil {
		return fmt.Errorf("signature: %w", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("signature: want %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}
	if !ed25519.Verify(pub, []byte(message), sig) {
		return ErrBadSignature
	}
	return nil
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
}

func encodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
