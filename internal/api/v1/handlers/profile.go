package handlers

import (
	"strings"

	"h2o-bounty/internal/config"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/pkg/wallet"

	"github.com/gofiber/fiber/v2"
)

func ListProfiles(c *fiber.Ctx) error {
	addresses, err := config.Bounty.GetAllUserAddresses(c.UserContext())
	if err != nil {
		return readError(c, "profiles", err)
	}
	return respond(c, fiber.StatusOK, "Profiles retrieved successfully", addresses)
}

func GetProfile(c *fiber.Ctx) error {
	profile, err := config.Bounty.GetUserProfile(c.UserContext(), c.Params("address"))
	if err != nil {
		return readError(c, "Profile", err)
	}
	return respond(c, fiber.StatusOK, "Profile retrieved successfully", profile)
}

func CreateProfile(c *fiber.Ctx) error {
	type ProfileRequest struct {
		Username string `json:"username" validate:"required,max=64"`
		Email    string `json:"email" validate:"required,email"`
		Role     string `json:"role"`
		Bio      string `json:"bio" validate:"max=512"`
	}
	var req ProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := req.Role
	if role == "" {
		role = "user"
	}

	payload := config.Bounty.CreateProfilePayload(username, email, role, req.Bio)
	return dispatch(c, payload, func(w wallet.Wallet) (*contracts.WriteResult, error) {
		return config.Bounty.CreateProfile(c.UserContext(), w, username, email, role, req.Bio)
	})
}

func GetJoinedBoards(c *fiber.Ctx) error {
	boards, err := config.Bounty.GetUserJoinedBoards(c.UserContext(), c.Params("address"))
	if err != nil {
		return readError(c, "joined boards", err)
	}
	return respond(c, fiber.StatusOK, "Joined boards retrieved successfully", boards)
}

func GetCreatedBoards(c *fiber.Ctx) error {
	boards, err := config.Bounty.GetUserCreatedBoards(c.UserContext(), c.Params("address"))
	if err != nil {
		return readError(c, "created boards", err)
	}
	return respond(c, fiber.StatusOK, "Created boards retrieved successfully", boards)
}
