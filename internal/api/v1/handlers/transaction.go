package handlers

import (
	"errors"

	"h2o-bounty/internal/config"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/internal/middleware"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConfirmTransaction waits for a transaction the browser wallet submitted and
// records its outcome. Only the transaction's own sender may confirm it.
func ConfirmTransaction(c *fiber.Ctx) error {
	hash, err := aptos.NormalizeHex(c.Params("hash"))
	if err != nil {
		return badRequest(c, "Invalid transaction hash", err)
	}
	res, err := config.Bounty.ConfirmTransaction(c.UserContext(), hash, middleware.Address(c))
	if errors.Is(err, contracts.ErrSenderMismatch) {
		logger.SecurityLogger.Warn("Confirm for another account's transaction",
			zap.String("hash", hash),
			zap.String("address", middleware.Address(c)))
		return respond(c, fiber.StatusForbidden, "Transaction was not sent by this account", nil)
	}
	if err != nil {
		return writeError(c, res, err)
	}
	return respond(c, fiber.StatusOK, "Transaction confirmed", res)
}

// ListTransactions lists the logged writes of ?sender=, defaulting to the session's account.
func ListTransactions(c *fiber.Ctx) error {
	if config.TxLog == nil {
		return respond(c, fiber.StatusServiceUnavailable, "Transaction log is not configured", nil)
	}
	sender := c.Query("sender", middleware.Address(c))
	if sender == "" {
		return badRequest(c, "sender is required", nil)
	}
	records, err := config.TxLog.ListBySender(c.UserContext(), sender, c.QueryInt("limit", 0))
	if err != nil {
		logger.ErrorLogger.Error("Error listing transactions", zap.String("sender", sender), zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Error listing transactions", nil)
	}
	return respond(c, fiber.StatusOK, "Transactions retrieved successfully", records)
}
