package handlers

import (
	"context"
	"errors"

	"h2o-bounty/internal/config"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/internal/middleware"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/logger"
	"h2o-bounty/pkg/wallet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{
		"message": message,
		"success": status < 400,
		"status":  status,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	logger.ErrorLogger.Error(message, zap.String("url", c.OriginalURL()), zap.Error(err))
	body := fiber.Map{
		"message": message,
		"success": false,
		"status":  fiber.StatusBadRequest,
	}
	if err != nil {
		body["errors"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "Bad request", err)
	}
	if err := config.Validate.Struct(req); err != nil {
		return badRequest(c, "Validation error", err)
	}
	return nil
}

// readError maps a view failure: a Move abort means the object does not exist.
func readError(c *fiber.Ctx, what string, err error) error {
	if aptos.IsMoveAbort(err) {
		return respond(c, fiber.StatusNotFound, what+" not found", nil)
	}
	if errors.Is(err, aptos.ErrInvalidArgument) {
		return badRequest(c, "Invalid "+what+" id", err)
	}
	logger.ErrorLogger.Error("Error fetching "+what, zap.String("url", c.OriginalURL()), zap.Error(err))
	if errors.Is(err, contracts.ErrMalformedResponse) {
		return respond(c, fiber.StatusBadGateway, "Unexpected response for "+what, nil)
	}
	return respond(c, fiber.StatusBadGateway, "Error fetching "+what, nil)
}

func writeError(c *fiber.Ctx, res *contracts.WriteResult, err error) error {
	switch {
	case errors.Is(err, aptos.ErrTransactionFailed):
		return respond(c, fiber.StatusUnprocessableEntity, "Transaction failed", res)
	case errors.Is(err, context.DeadlineExceeded):
		return respond(c, fiber.StatusGatewayTimeout, "Timed out waiting for transaction", res)
	case errors.Is(err, contracts.ErrInvalidStatus), errors.Is(err, aptos.ErrInvalidHex), errors.Is(err, aptos.ErrInvalidArgument):
		return badRequest(c, "Invalid transaction arguments", err)
	case aptos.IsNotFound(err):
		return respond(c, fiber.StatusNotFound, "Transaction not found", res)
	default:
		return respond(c, fiber.StatusBadGateway, "Error submitting transaction", nil)
	}
}

// dispatch runs a write. The server wallet signs only for its own session;
// any other account gets the call descriptor back (202) to sign in the
// browser and confirm through /transactions/:hash/confirm.
func dispatch(c *fiber.Ctx, payload aptos.EntryFunctionPayload, send func(w wallet.Wallet) (*contracts.WriteResult, error)) error {
	address := middleware.Address(c)
	if config.Signer == nil || aptos.NormalizeAddress(config.Signer.Address()) != address {
		return respond(c, fiber.StatusAccepted, "Sign and submit this transaction with your wallet", fiber.Map{
			"sender":  address,
			"payload": payload,
		})
	}

	res, err := send(config.Signer)
	if err != nil {
		return writeError(c, res, err)
	}
	logger.AuditLogger.Info("Write submitted by server wallet",
		zap.String("function", payload.Function),
		zap.String("hash", res.Hash))
	return respond(c, fiber.StatusCreated, "Transaction confirmed", res)
}
