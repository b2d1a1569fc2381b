package configs

import (
	"os"
	"strconv"
	"time"

	"h2o-bounty/pkg/aptos"
)

// Network describes the Movement network the service talks to.
type Network struct {
	Name      string
	NodeURL   string
	FaucetURL string
	// ChainID zero means ask the node.
	ChainID uint8
}

var Testnet = Network{
	Name:      "testnet",
	NodeURL:   "https://aptos.testnet.porto.movementlabs.xyz/v1",
	FaucetURL: "https://fund.testnet.porto.movementlabs.xyz/",
}

// LoadNetwork starts from the testnet descriptor and applies APTOS_* overrides.
func LoadNetwork() Network {
	n := Testnet
	if v := os.Getenv("APTOS_NETWORK"); v != "" {
		n.Name = v
	}
	if v := os.Getenv("APTOS_NODE_URL"); v != "" {
		n.NodeURL = v
	}
	if v := os.Getenv("APTOS_FAUCET_URL"); v != "" {
		n.FaucetURL = v
	}
	if v, err := strconv.ParseUint(os.Getenv("APTOS_CHAIN_ID"), 10, 8); err == nil {
		n.ChainID = uint8(v)
	}
	return n
}

// ClientConfig builds the fullnode client configuration for this network.
func (n Network) ClientConfig(timeout time.Duration) aptos.Config {
	return aptos.Config{
		NodeURL:   n.NodeURL,
		FaucetURL: n.FaucetURL,
		ChainID:   n.ChainID,
		Timeout:   timeout,
	}
}
