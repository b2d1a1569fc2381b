package config

import (
	"fmt"

	"h2o-bounty/configs"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/crypto"
	"h2o-bounty/pkg/wallet"
)

// NewNode builds the fullnode client for the configured network.
func NewNode(cfg configs.Config) (*aptos.Client, error) {
	return aptos.NewClient(cfg.Network.ClientConfig(cfg.HTTPTimeout))
}

// LoadSigner returns the server wallet, or nil when no key is configured.
// A sealed key takes precedence over a plain one.
func LoadSigner(cfg configs.Config, node wallet.Node) (*wallet.Local, error) {
	keyHex := cfg.SignerKey
	if cfg.SignerSealedKey != "" {
		if cfg.SignerPassphrase == "" {
			return nil, fmt.Errorf("SIGNER_SEALED_KEY needs SIGNER_PASSPHRASE")
		}
		raw, err := crypto.Open(cfg.SignerSealedKey, cfg.SignerPassphrase)
		if err != nil {
			return nil, fmt.Errorf("open sealed signer key: %w", err)
		}
		keyHex = string(raw)
	}
	if keyHex == "" {
		return nil, nil
	}
	key, err := wallet.ParsePrivateKey(keyHex)
	if err != nil {
		return nil, err
	}
	return wallet.NewLocal(key, node)
}

// NewBounty builds the contract service. rec may be nil.
func NewBounty(cfg configs.Config, node contracts.Node, rec contracts.Recorder) *contracts.Service {
	opts := []contracts.Option{
		contracts.WithModuleAddress(cfg.ModuleAddress),
		contracts.WithWaitTimeout(cfg.TxWaitTimeout),
	}
	if rec != nil {
		opts = append(opts, contracts.WithRecorder(rec))
	}
	return contracts.New(node, opts...)
}
