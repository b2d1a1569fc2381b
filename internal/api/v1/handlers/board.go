package handlers

import (
	"h2o-bounty/internal/config"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/pkg/wallet"

	"github.com/gofiber/fiber/v2"
)

// ListBoards returns every BoardCreatedEvent, i.e. the board directory.
func ListBoards(c *fiber.Ctx) error {
	events, err := config.Bounty.GetBoardCreatedEvents(c.UserContext())
	if err != nil {
		return readError(c, "boards", err)
	}
	return respond(c, fiber.StatusOK, "Boards retrieved successfully", events)
}

func GetBoard(c *fiber.Ctx) error {
	board, err := config.Bounty.GetBoardInfo(c.UserContext(), c.Params("boardId"))
	if err != nil {
		return readError(c, "Board", err)
	}
	return respond(c, fiber.StatusOK, "Board retrieved successfully", board)
}

func CreateBoard(c *fiber.Ctx) error {
	type BoardRequest struct {
		Name        string `json:"name" validate:"required,max=128"`
		Description string `json:"description" validate:"required"`
		ImgURL      string `json:"img_url" validate:"omitempty,url"`
		Amount      string `json:"amount" validate:"required"`
	}
	var req BoardRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	amount, err := contracts.ParseMoveAmount(req.Amount)
	if err != nil {
		return badRequest(c, "Invalid amount", err)
	}

	payload := config.Bounty.CreateBoardPayload(req.Name, req.Description, req.ImgURL, amount)
	return dispatch(c, payload, func(w wallet.Wallet) (*contracts.WriteResult, error) {
		return config.Bounty.CreateBoard(c.UserContext(), w, req.Name, req.Description, req.ImgURL, amount)
	})
}

func JoinBoard(c *fiber.Ctx) error {
	boardID := c.Params("boardId")
	return dispatch(c, config.Bounty.JoinBoardPayload(boardID), func(w wallet.Wallet) (*contracts.WriteResult, error) {
		return config.Bounty.JoinBoard(c.UserContext(), w, boardID)
	})
}

func AddRewardToBoard(c *fiber.Ctx) error {
	type RewardRequest struct {
		Amount string `json:"amount" validate:"required"`
	}
	var req RewardRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	amount, err := contracts.ParseMoveAmount(req.Amount)
	if err != nil || amount == 0 {
		return badRequest(c, "Invalid amount", err)
	}

	boardID := c.Params("boardId")
	return dispatch(c, config.Bounty.AddRewardToBoardPayload(boardID, amount), func(w wallet.Wallet) (*contracts.WriteResult, error) {
		return config.Bounty.AddRewardToBoard(c.UserContext(), w, boardID, amount)
	})
}

func CloseBoard(c *fiber.Ctx) error {
	boardID := c.Params("boardId")
	return dispatch(c, config.Bounty.WithdrawRewardAndCloseBoardPayload(boardID), func(w wallet.Wallet) (*contracts.WriteResult, error) {
		return config.Bounty.WithdrawRewardAndCloseBoard(c.UserContext(), w, boardID)
	})
}
