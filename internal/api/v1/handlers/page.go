package handlers

import (
	"strings"

	"h2o-bounty/internal/config"
	"h2o-bounty/internal/middleware"
	"h2o-bounty/internal/pages"
	"h2o-bounty/pkg/aptos"

	"github.com/gofiber/fiber/v2"
)

// Page handlers render the board and task detail pages. The page state is in
// the body; the HTTP status only says whether the request itself was served.

func pageStatus(state pages.State) int {
	switch state {
	case pages.StateNotFound:
		return fiber.StatusNotFound
	case pages.StateError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusOK
	}
}

func GetBoardPage(c *fiber.Ctx) error {
	page := pages.NewBoardPage(config.Bounty, publisher(), c.Params("boardId"))
	_ = page.Load(c.UserContext())
	return respond(c, pageStatus(page.State), "Board page", page)
}

func GetTaskPage(c *fiber.Ctx) error {
	page := pages.NewTaskPage(config.Bounty, publisher(), c.Params("boardId"), c.Params("taskId"), middleware.Address(c))
	_ = page.Load(c.UserContext())
	return respond(c, pageStatus(page.State), "Task page", page)
}

// JoinBoardPage signs with the server wallet, so it is only served to the
// server wallet's own session.
func JoinBoardPage(c *fiber.Ctx) error {
	if !serverSession(c) {
		return respond(c, fiber.StatusForbidden, "Page actions need the server wallet; use POST /boards/:boardId/join", nil)
	}
	page := pages.NewBoardPage(config.Bounty, publisher(), c.Params("boardId"))
	if err := page.Load(c.UserContext()); err != nil {
		return respond(c, pageStatus(page.State), "Board page", page)
	}
	_ = page.Join(c.UserContext(), config.Signer)
	return respond(c, fiber.StatusOK, "Board page", page)
}

func SubmitTaskPage(c *fiber.Ctx) error {
	type ProofRequest struct {
		Proof string `json:"proof"`
	}
	var req ProofRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Bad request", err)
	}
	if strings.TrimSpace(req.Proof) == "" {
		return badRequest(c, "Proof is required", pages.ErrEmptyProof)
	}
	if !serverSession(c) {
		return respond(c, fiber.StatusForbidden, "Page actions need the server wallet; use POST /boards/:boardId/tasks/:taskId/submissions", nil)
	}

	page := pages.NewTaskPage(config.Bounty, publisher(), c.Params("boardId"), c.Params("taskId"), middleware.Address(c))
	if err := page.Load(c.UserContext()); err != nil {
		return respond(c, pageStatus(page.State), "Task page", page)
	}
	_ = page.SubmitProof(c.UserContext(), config.Signer, req.Proof)
	return respond(c, fiber.StatusOK, "Task page", page)
}

func serverSession(c *fiber.Ctx) bool {
	return config.Signer != nil && aptos.NormalizeAddress(config.Signer.Address()) == middleware.Address(c)
}

func publisher() pages.Publisher {
	if config.Hub == nil {
		return nil
	}
	return config.Hub
}
