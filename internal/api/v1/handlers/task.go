package handlers

import (
	"fmt"
	"math"

	"h2o-bounty/internal/config"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/pkg/wallet"

	"github.com/gofiber/fiber/v2"
)

// Task handlers

func GetTask(c *fiber.Ctx) error {
	task, err := config.Bounty.GetTaskInfo(c.UserContext(), c.Params("boardId"), c.Params("taskId"))
	if err != nil {
		return readError(c, "Task", err)
	}
	return respond(c, fiber.StatusOK, "Task retrieved successfully", task)
}

// CreateTask takes the deadline in milliseconds and the reward in MOVE; the
// contract stores microseconds and octas.
func CreateTask(c *fiber.Ctx) error {
	type TaskRequest struct {
		Name           string `json:"name" validate:"required,max=128"`
		Description    string `json:"description" validate:"required"`
		Deadline       uint64 `json:"deadline" validate:"required"`
		MaxCompletions uint64 `json:"max_completions" validate:"required,min=1"`
		Reward         string `json:"reward" validate:"required"`
		Config         string `json:"config"`
		AllowSelfCheck bool   `json:"allow_self_check"`
	}
	var req TaskRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Deadline > math.MaxUint64/1000 {
		return badRequest(c, "Invalid deadline", fmt.Errorf("deadline %d ms is out of range", req.Deadline))
	}
	reward, err := contracts.ParseMoveAmount(req.Reward)
	if err != nil {
		return badRequest(c, "Invalid reward", err)
	}

	params := contracts.CreateTaskParams{
		BoardID:        c.Params("boardId"),
		Name:           req.Name,
		Description:    req.Description,
		Deadline:       req.Deadline * 1000,
		MaxCompletions: req.MaxCompletions,
		Reward:         reward,
		Config:         req.Config,
		AllowSelfCheck: req.AllowSelfCheck,
	}
	payload, err := config.Bounty.CreateTaskPayload(params)
	if err != nil {
		return badRequest(c, "Invalid board id", err)
	}
	return dispatch(c, payload, func(w wallet.Wallet) (*contracts.WriteResult, error) {
		return config.Bounty.CreateTask(c.UserContext(), w, params)
	})
}

func CancelTask(c *fiber.Ctx) error {
	boardID, taskID := c.Params("boardId"), c.Params("taskId")
	return dispatch(c, config.Bounty.CancelTaskPayload(boardID, taskID), func(w wallet.Wallet) (*contracts.WriteResult, error) {
		return config.Bounty.CancelTask(c.UserContext(), w, boardID, taskID)
	})
}

func AddReviewer(c *fiber.Ctx) error {
	type ReviewerRequest struct {
		Reviewer string `json:"reviewer" validate:"required"`
	}
	var req ReviewerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	boardID, taskID := c.Params("boardId"), c.Params("taskId")
	payload := config.Bounty.AddReviewerPayload(boardID, taskID, req.Reviewer)
	return dispatch(c, payload, func(w wallet.Wallet) (*contracts.WriteResult, error) {
		return config.Bounty.AddReviewer(c.UserContext(), w, boardID, taskID, req.Reviewer)
	})
}
