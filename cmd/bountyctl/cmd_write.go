package main

import (
	"fmt"
	"strings"

	"h2o-bounty/internal/contracts"
	"h2o-bounty/pkg/aptos"

	"github.com/spf13/cobra"
)

var resubmit bool

var joinCmd = &cobra.Command{
	Use:   "join <board-id>",
	Short: "Join a board with the configured signer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := requireSigner()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		res, err := bounty.JoinBoard(ctx, w, args[0])
		if res != nil {
			_ = printJSON(cmd, res)
		}
		return err
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <board-id> <task-id> <proof>",
	Short: "Submit proof for a task with the configured signer",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		proof := strings.TrimSpace(args[2])
		if proof == "" {
			return fmt.Errorf("proof must not be empty")
		}
		w, err := requireSigner()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		var res *contracts.WriteResult
		if resubmit {
			res, err = bounty.ResubmitTaskProof(ctx, w, args[0], args[1], proof)
		} else {
			res, err = bounty.SubmitTaskProof(ctx, w, args[0], args[1], proof)
		}
		if res != nil {
			_ = printJSON(cmd, res)
		}
		return err
	},
}

var fundCmd = &cobra.Command{
	Use:   "fund <address> <amount-move>",
	Short: "Request test MOVE from the network faucet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := aptos.ParseAddress(args[0])
		if err != nil {
			return err
		}
		amount, err := contracts.ParseMoveAmount(args[1])
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := node.FundAccount(ctx, addr.String(), amount); err != nil {
			return err
		}
		return printJSON(cmd, map[string]interface{}{"address": addr.String(), "octas": amount})
	},
}

func init() {
	submitCmd.Flags().BoolVar(&resubmit, "resubmit", false, "Resubmit after a rejection")
}
