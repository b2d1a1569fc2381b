package handlers

import (
	"strings"

	"h2o-bounty/internal/config"
	"h2o-bounty/internal/constants"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/pkg/wallet"

	"github.com/gofiber/fiber/v2"
)

// GetSubmission answers 404 when the submitter has not submitted to the task.
func GetSubmission(c *fiber.Ctx) error {
	sub, err := config.Bounty.GetSubmissionInfo(c.UserContext(), c.Params("boardId"), c.Params("taskId"), c.Params("submitter"))
	if err != nil {
		return readError(c, "Submission", err)
	}
	if sub == nil {
		return respond(c, fiber.StatusNotFound, "No submissions yet", nil)
	}
	return respond(c, fiber.StatusOK, "Submission retrieved successfully", sub)
}

// SubmitProof submits, or with "resubmit": true resubmits, proof for the session's account.
func SubmitProof(c *fiber.Ctx) error {
	type ProofRequest struct {
		Proof    string `json:"proof" validate:"required"`
		Resubmit bool   `json:"resubmit"`
	}
	var req ProofRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if strings.TrimSpace(req.Proof) == "" {
		return badRequest(c, "Proof is required", nil)
	}

	boardID, taskID := c.Params("boardId"), c.Params("taskId")
	if req.Resubmit {
		payload := config.Bounty.ResubmitTaskProofPayload(boardID, taskID, req.Proof)
		return dispatch(c, payload, func(w wallet.Wallet) (*contracts.WriteResult, error) {
			return config.Bounty.ResubmitTaskProof(c.UserContext(), w, boardID, taskID, req.Proof)
		})
	}
	payload := config.Bounty.SubmitTaskProofPayload(boardID, taskID, req.Proof)
	return dispatch(c, payload, func(w wallet.Wallet) (*contracts.WriteResult, error) {
		return config.Bounty.SubmitTaskProof(c.UserContext(), w, boardID, taskID, req.Proof)
	})
}

// ReviewSubmission accepts the status as 0/1/2 or Rejected/Approved/"Under Review".
func ReviewSubmission(c *fiber.Ctx) error {
	type ReviewRequest struct {
		Status  *constants.SubmissionStatus `json:"status" validate:"required"`
		Comment string                      `json:"comment"`
	}
	var req ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	boardID, taskID, submitter := c.Params("boardId"), c.Params("taskId"), c.Params("submitter")
	payload, err := config.Bounty.ReviewSubmissionPayload(boardID, taskID, submitter, *req.Status, req.Comment)
	if err != nil {
		return badRequest(c, "Invalid status", err)
	}
	return dispatch(c, payload, func(w wallet.Wallet) (*contracts.WriteResult, error) {
		return config.Bounty.ReviewSubmission(c.UserContext(), w, boardID, taskID, submitter, *req.Status, req.Comment)
	})
}
