package handlers

import (
	"errors"

	"h2o-bounty/internal/config"
	"h2o-bounty/internal/middleware"
	"h2o-bounty/internal/session"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/logger"
	"h2o-bounty/pkg/wallet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Challenge starts a wallet connection: the browser signs the returned message.
func Challenge(c *fiber.Ctx) error {
	type ChallengeRequest struct {
		Address string `json:"address" validate:"required"`
	}
	var req ChallengeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ch, err := config.Sessions.Challenge(c.UserContext(), req.Address)
	if err != nil {
		if errors.Is(err, aptos.ErrInvalidAddress) {
			return badRequest(c, "Invalid address", err)
		}
		logger.ErrorLogger.Error("Error creating challenge", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Error creating challenge", nil)
	}
	return respond(c, fiber.StatusOK, "Challenge created", ch)
}

func Verify(c *fiber.Ctx) error {
	var req session.VerifyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	token, claims, err := config.Sessions.Verify(c.UserContext(), req)
	if err != nil {
		logger.SecurityLogger.Warn("Wallet verification failed",
			zap.String("address", req.Address),
			zap.String("ip", c.IP()),
			zap.Error(err))
		switch {
		case errors.Is(err, session.ErrNoChallenge):
			return respond(c, fiber.StatusUnauthorized, "Challenge expired", nil)
		case errors.Is(err, aptos.ErrInvalidAddress):
			return badRequest(c, "Invalid address", err)
		default:
			return respond(c, fiber.StatusUnauthorized, "Bad signature", nil)
		}
	}
	logger.AuditLogger.Info("Wallet connected", zap.String("address", claims.Address))
	return respond(c, fiber.StatusOK, "Wallet connected", fiber.Map{
		"token":      token,
		"expires_at": claims.ExpiresAt.Time,
		"nav":        session.NavFor(claims),
	})
}

func Disconnect(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if err := config.Sessions.Revoke(c.UserContext(), claims); err != nil {
		logger.ErrorLogger.Error("Error revoking session", zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, "Error disconnecting wallet", nil)
	}
	logger.AuditLogger.Info("Wallet disconnected", zap.String("address", claims.Address))
	return respond(c, fiber.StatusOK, "Wallet disconnected", session.NavFor(nil))
}

// Nav reflects the connection state of the caller.
func Nav(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, "Navigation", session.NavFor(middleware.Claims(c)))
}

// ServerWallet reports the address the server signs with, if any.
func ServerWallet(c *fiber.Ctx) error {
	if config.Signer == nil {
		return respond(c, fiber.StatusNotFound, "No server wallet configured", nil)
	}
	data := fiber.Map{"address": config.Signer.Address()}
	if local, ok := config.Signer.(*wallet.Local); ok {
		data["public_key"] = wallet.EncodePublicKey(local.PublicKey())
	}
	return respond(c, fiber.StatusOK, "Server wallet", data)
}
