package handlers

import (
	"h2o-bounty/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Health reports the fullnode ledger the service is reading from.
func Health(c *fiber.Ctx) error {
	info, err := config.Node.LedgerInfo(c.UserContext())
	if err != nil {
		return readError(c, "ledger info", err)
	}
	return respond(c, fiber.StatusOK, "OK", fiber.Map{
		"chain_id":       info.ChainID,
		"ledger_version": info.LedgerVersion,
		"block_height":   info.BlockHeight,
		"module_address": config.Bounty.ModuleAddress(),
		"node_url":       config.Node.NodeURL(),
	})
}
