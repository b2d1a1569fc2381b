package handlers

import (
	"errors"

	"h2o-bounty/internal/config"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Fund asks the network faucet for test MOVE and waits for the mint to land.
func Fund(c *fiber.Ctx) error {
	type FundRequest struct {
		Address string `json:"address" validate:"required"`
		Amount  string `json:"amount" validate:"required"`
	}
	var req FundRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	addr, err := aptos.ParseAddress(req.Address)
	if err != nil {
		return badRequest(c, "Invalid address", err)
	}
	amount, err := contracts.ParseMoveAmount(req.Amount)
	if err != nil || amount == 0 {
		return badRequest(c, "Invalid amount", err)
	}

	if err := config.Node.FundAccount(c.UserContext(), addr.String(), amount); err != nil {
		if errors.Is(err, aptos.ErrNoFaucet) {
			return respond(c, fiber.StatusNotFound, "No faucet on this network", nil)
		}
		logger.ErrorLogger.Error("Error funding account", zap.String("address", addr.String()), zap.Error(err))
		return respond(c, fiber.StatusBadGateway, "Error funding account", nil)
	}
	logger.AuditLogger.Info("Faucet funded account", zap.String("address", addr.String()), zap.Uint64("octas", amount))
	return respond(c, fiber.StatusOK, "Account funded", fiber.Map{"address": addr.String(), "octas": amount})
}
