package middleware

import (
	"errors"
	"strings"

	"h2o-bounty/internal/config"
	"h2o-bounty/internal/session"
	"h2o-bounty/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func bearerToken(c *fiber.Ctx) (string, bool) {
	parts := strings.Split(c.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  fiber.StatusUnauthorized,
	})
}

// UseToken requires a wallet session and stores its claims and address in locals.
func UseToken(c *fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return unauthorized(c, "No token provided")
	}
	token, ok := bearerToken(c)
	if !ok {
		return unauthorized(c, "Invalid token format")
	}
	claims, err := config.Sessions.Parse(c.UserContext(), token)
	if err != nil {
		logger.SecurityLogger.Warn("Rejected session token", zap.String("ip", c.IP()), zap.Error(err))
		if errors.Is(err, session.ErrRevoked) {
			return unauthorized(c, "Token revoked")
		}
		return unauthorized(c, "Invalid token")
	}
	c.Locals("claims", claims)
	c.Locals("address", claims.Address)
	logger.ContextLogger.Debug("Session attached",
		zap.String("address", claims.Address),
		zap.String("jti", claims.ID),
		zap.String("url", c.OriginalURL()))
	return c.Next()
}

// OptionalToken is UseToken for public routes: a valid token sets the locals,
// anything else is treated as no wallet connected.
func OptionalToken(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Next()
	}
	claims, err := config.Sessions.Parse(c.UserContext(), token)
	if err != nil {
		return c.Next()
	}
	c.Locals("claims", claims)
	c.Locals("address", claims.Address)
	return c.Next()
}

// Claims returns the session claims set by UseToken or OptionalToken, or nil.
func Claims(c *fiber.Ctx) *session.Claims {
	claims, _ := c.Locals("claims").(*session.Claims)
	return claims
}

// Address returns the connected wallet address, or "".
func Address(c *fiber.Ctx) string {
	address, _ := c.Locals("address").(string)
	return address
}
