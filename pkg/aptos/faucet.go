package aptos

import (
	"context"
	"fmt"

	sdk "github.com/aptos-labs/aptos-go-sdk"
)

// FundAccount mints test coins to address through the faucet and waits for
// the mint to land.
func (c *Client) FundAccount(ctx context.Context, address string, amount uint64) error {
	if c.faucetURL == "" {
		return ErrNoFaucet
	}
	addr, err := ParseAddress(address)
	if err != nil {
		return err
	}
	_, err = call(ctx, func() (struct{}, error) {
		return struct{}{}, c.inner.Fund(sdk.AccountAddress(addr), amount)
	})
	if err != nil {
		return fmt.Errorf("fund %s: %w", addr, err)
	}
	return nil
}
