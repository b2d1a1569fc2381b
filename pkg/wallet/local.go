package wallet

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"h2o-bounty/pkg/aptos"

	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/crypto"
)

// Node builds unsigned transactions and accepts signed ones. *aptos.Client
// satisfies it. The node never supplies the bytes the wallet signs.
type Node interface {
	BuildTransaction(ctx context.Context, sender aptos.Address, payload aptos.EntryFunctionPayload) (*sdk.RawTransaction, error)
	SubmitTransaction(ctx context.Context, signed *sdk.SignedTransaction) (*aptos.PendingTransaction, error)
}

// Local holds an ed25519 key in memory and signs with it.
type Local struct {
	key     ed25519.PrivateKey
	account *sdk.Account
	address aptos.Address
	node    Node
}

func NewLocal(key ed25519.PrivateKey, node Node) (*Local, error) {
	account, err := sdk.NewAccountFromSigner(&crypto.Ed25519PrivateKey{Inner: key})
	if err != nil {
		return nil, fmt.Errorf("wallet account: %w", err)
	}
	return &Local{
		key:     key,
		account: account,
		address: aptos.Address(account.AccountAddress()),
		node:    node,
	}, nil
}

func (w *Local) Address() string { return w.address.String() }

func (w *Local) PublicKey() ed25519.PublicKey {
	return w.key.Public().(ed25519.PublicKey)
}

// SignMessage signs an arbitrary message, as a browser wallet does for login.
func (w *Local) SignMessage(message string) string {
	return encodeHex(ed25519.Sign(w.key, []byte(message)))
}

// SignAndSubmitTransaction builds the raw transaction, signs its locally
// computed signing message and submits the BCS-encoded result.
func (w *Local) SignAndSubmitTransaction(ctx context.Context, payload aptos.EntryFunctionPayload) (*aptos.PendingTransaction, error) {
	raw, err := w.node.BuildTransaction(ctx, w.address, payload)
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}
	signed, err := raw.SignedTransaction(w.account)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	pending, err := w.node.SubmitTransaction(ctx, signed)
	if err != nil {
		return nil, fmt.Errorf("submit transaction: %w", err)
	}
	return pending, nil
}
