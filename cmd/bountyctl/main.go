// Command bountyctl reads and writes the bounty-board contracts from a shell.
// Reads need only a fullnode; writes sign with SIGNER_PRIVATE_KEY (or the
// sealed key) and wait for the transaction to land.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"h2o-bounty/configs"
	"h2o-bounty/internal/config"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/logger"
	"h2o-bounty/pkg/wallet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	nodeURL   string
	faucetURL string
	timeout   time.Duration

	// Set by setup, or directly by tests.
	node   *aptos.Client
	bounty *contracts.Service
	signer wallet.Wallet
)

var rootCmd = &cobra.Command{
	Use:               "bountyctl",
	Short:             "Inspect and drive the H2O bounty boards on Movement",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&nodeURL, "node-url", "", "Fullnode REST URL (default: APTOS_NODE_URL or testnet)")
	rootCmd.PersistentFlags().StringVar(&faucetURL, "faucet-url", "", "Faucet URL (default: APTOS_FAUCET_URL or testnet)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall command timeout")

	rootCmd.AddCommand(eventsCmd, boardCmd, taskCmd, submissionCmd, profileCmd, profilesCmd)
	rootCmd.AddCommand(joinCmd, submitCmd, fundCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if bounty != nil {
		return nil
	}
	cfg := configs.LoadConfig()
	if nodeURL != "" {
		cfg.Network.NodeURL = nodeURL
	}
	if faucetURL != "" {
		cfg.Network.FaucetURL = faucetURL
	}

	var err error
	node, err = config.NewNode(cfg)
	if err != nil {
		return err
	}
	bounty = config.NewBounty(cfg, node, nil)

	local, err := config.LoadSigner(cfg, node)
	if err != nil {
		return err
	}
	if local != nil {
		signer = local
		logger.SystemLogger.Debug("Signer loaded", zap.String("address", local.Address()))
	}
	return nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func requireSigner() (wallet.Wallet, error) {
	if signer == nil {
		return nil, fmt.Errorf("no signer: set SIGNER_PRIVATE_KEY or SIGNER_SEALED_KEY")
	}
	return signer, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
