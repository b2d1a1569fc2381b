package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"h2o-bounty/configs"
	"h2o-bounty/internal/constants"
	"h2o-bounty/pkg/crypto"
	"h2o-bounty/pkg/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHex() (string, ed25519.PrivateKey) {
	seed := []byte(strings.Repeat("b", ed25519.SeedSize))
	return hex.EncodeToString(seed), ed25519.NewKeyFromSeed(seed)
}

func TestLoadSignerNone(t *testing.T) {
	signer, err := LoadSigner(configs.Config{}, nil)
	require.NoError(t, err)
	assert.Nil(t, signer)
}

func TestLoadSignerPlainAndSealed(t *testing.T) {
	keyHex, key := seedHex()
	want := wallet.AddressFromPublicKey(key.Public().(ed25519.PublicKey))

	plain, err := LoadSigner(configs.Config{SignerKey: "0x" + keyHex}, nil)
	require.NoError(t, err)
	assert.Equal(t, want, plain.Address())

	sealed, err := crypto.Seal([]byte(keyHex), "passphrase")
	require.NoError(t, err)
	fromSealed, err := LoadSigner(configs.Config{SignerSealedKey: sealed, SignerPassphrase: "passphrase"}, nil)
	require.NoError(t, err)
	assert.Equal(t, want, fromSealed.Address())

	_, err = LoadSigner(configs.Config{SignerSealedKey: sealed, SignerPassphrase: "wrong"}, nil)
	assert.Error(t, err)

	_, err = LoadSigner(configs.Config{SignerSealedKey: sealed}, nil)
	assert.Error(t, err)
}

func TestNewBountyUsesModuleAddress(t *testing.T) {
	svc := NewBounty(configs.Config{TxWaitTimeout: time.Second}, nil, nil)
	assert.Equal(t, constants.ModuleAddress, svc.ModuleAddress())

	svc = NewBounty(configs.Config{ModuleAddress: "0xABC"}, nil, nil)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000abc", svc.ModuleAddress())
}
