package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/aptos/aptostest"

	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

const joinBoard = "0x2e5f33f9b87b179dc3e162524731f4546c228ff65eb79121913ef583adfeac2d::MoveMentBoard::join_board"

func testKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed([]byte(strings.Repeat("k", ed25519.SeedSize)))
}

func newTestWallet(t *testing.T) (*Local, *aptostest.Fullnode) {
	t.Helper()
	node := aptostest.NewFullnode(t)
	client, err := aptos.NewClient(node.Config())
	require.NoError(t, err)
	w, err := NewLocal(testKey(), client)
	require.NoError(t, err)
	return w, node
}

func TestAddressFromPublicKey(t *testing.T) {
	key := testKey()
	pub := key.Public().(ed25519.PublicKey)

	sum := sha3.Sum256(append(append([]byte{}, pub...), 0x00))
	assert.Equal(t, "0x"+hex.EncodeToString(sum[:]), AddressFromPublicKey(pub))
}

func TestParsePrivateKeyForms(t *testing.T) {
	key := testKey()
	seedHex := hex.EncodeToString(key.Seed())

	for _, in := range []string{seedHex, "0x" + seedHex, "ed25519-priv-0x" + seedHex, hex.EncodeToString(key)} {
		got, err := ParsePrivateKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, key, got)
	}

	_, err := ParsePrivateKey("0x1234")
	assert.Error(t, err)
}

func TestSignAndSubmitTransaction(t *testing.T) {
	w, node := newTestWallet(t)
	assert.Equal(t, AddressFromPublicKey(w.PublicKey()), w.Address())

	payload := aptos.NewEntryFunctionPayload(joinBoard, nil, aptos.AddressArg("0xb0"))
	pending, err := w.SignAndSubmitTransaction(context.Background(), payload)
	require.NoError(t, err)
	assert.NotEmpty(t, pending.Hash)
	assert.Equal(t, w.Address(), pending.Sender)

	submitted := node.Submitted(t)
	require.Len(t, submitted, 1)
	raw := submitted[0].Transaction
	assert.Equal(t, w.Address(), aptos.Address(raw.Sender).String())
	assert.Equal(t, uint64(3), raw.SequenceNumber)
	assert.Equal(t, uint64(100), raw.GasUnitPrice)
	assert.Equal(t, uint64(aptos.DefaultMaxGasAmount), raw.MaxGasAmount)

	entry, ok := raw.Payload.Payload.(*sdk.EntryFunction)
	require.True(t, ok)
	assert.Equal(t, "MoveMentBoard", entry.Module.Name)
	assert.Equal(t, "join_board", entry.Function)
	board, err := aptos.AddressArg("0xb0").MarshalArg()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{board}, entry.Args)

	assert.NoError(t, submitted[0].Verify())
}

func TestSignAndSubmitNeverSignsNodeBytes(t *testing.T) {
	w, node := newTestWallet(t)

	_, err := w.SignAndSubmitTransaction(context.Background(),
		aptos.NewEntryFunctionPayload(joinBoard, nil, aptos.AddressArg("0xb0")))
	require.NoError(t, err)

	assert.Zero(t, node.EncodeCalls())
	submitted := node.Submitted(t)
	require.Len(t, submitted, 1)
	entry := submitted[0].Transaction.Payload.Payload.(*sdk.EntryFunction)
	assert.Equal(t, "join_board", entry.Function)
}

func TestSignAndSubmitRejectsUntypedArguments(t *testing.T) {
	w, node := newTestWallet(t)

	_, err := w.SignAndSubmitTransaction(context.Background(), aptos.NewEntryFunctionPayload(joinBoard, nil, "0xb0"))
	require.Error(t, err)
	assert.ErrorIs(t, err, aptos.ErrInvalidArgument)
	assert.Empty(t, node.Submitted(t))
}

func TestVerifyMessage(t *testing.T) {
	w, _ := newTestWallet(t)
	sig := w.SignMessage("APTOS\nmessage: login\nnonce: abc")

	assert.NoError(t, VerifyMessage(w.PublicKey(), "APTOS\nmessage: login\nnonce: abc", sig))
	assert.True(t, errors.Is(VerifyMessage(w.PublicKey(), "tampered", sig), ErrBadSignature))
	assert.Error(t, VerifyMessage(w.PublicKey(), "x", "0x1234"))
}
