package contracts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"h2o-bounty/internal/constants"
	"h2o-bounty/pkg/aptos"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus = errors.New("invalid submission status")
	ErrInvalidAmount = errors.New("invalid MOVE amount")
)

// CreateTaskParams are the arguments of create_task in contract order.
type CreateTaskParams struct {
	BoardID        string
	Name           string
	Description    string
	Deadline       uint64
	MaxCompletions uint64
	Reward         uint64
	Config         string
	AllowSelfCheck bool
}

func boardArg(id string) aptos.AddressArg {
	return aptos.AddressArg(strings.TrimSpace(id))
}

func taskArg(id string) aptos.U64String {
	return aptos.U64String(strings.TrimSpace(id))
}

// ParseMoveAmount converts a MOVE amount such as "2.5" to octas. More than
// eight decimal places, negative values and overflow are rejected.
func ParseMoveAmount(s string) (uint64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	octas := d.Shift(8)
	if d.IsNegative() || !octas.Equal(octas.Truncate(0)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	n, err := strconv.ParseUint(octas.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return n, nil
}

func moveCoin() []string {
	return []string{constants.CoinMove}
}

func (s *Service) CreateProfilePayload(username, email, role, bio string) aptos.EntryFunctionPayload {
	return aptos.NewEntryFunctionPayload(s.profileFn(constants.CreateUserProfile), nil,
		aptos.String(username), aptos.String(email), aptos.String(role), aptos.String(bio))
}

func (s *Service) CreateBoardPayload(name, description, imageURL string, amount uint64) aptos.EntryFunctionPayload {
	return aptos.NewEntryFunctionPayload(s.boardFn(constants.CreateBoard), moveCoin(),
		aptos.String(name), aptos.String(description), aptos.String(imageURL), aptos.U64(amount))
}

func (s *Service) AddRewardToBoardPayload(boardID string, amount uint64) aptos.EntryFunctionPayload {
	return aptos.NewEntryFunctionPayload(s.boardFn(constants.AddRewardToBoard), moveCoin(),
		boardArg(boardID), aptos.U64(amount))
}

func (s *Service) JoinBoardPayload(boardID string) aptos.EntryFunctionPayload {
	return aptos.NewEntryFunctionPayload(s.boardFn(constants.JoinBoard), nil,
		boardArg(boardID))
}

func (s *Service) WithdrawRewardAndCloseBoardPayload(boardID string) aptos.EntryFunctionPayload {
	return aptos.NewEntryFunctionPayload(s.boardFn(constants.WithdrawRewardAndCloseBoard), moveCoin(),
		boardArg(boardID))
}

// CreateTaskPayload hex-normalizes the board id before building the call.
func (s *Service) CreateTaskPayload(p CreateTaskParams) (aptos.EntryFunctionPayload, error) {
	boardID, err := aptos.NormalizeHex(p.BoardID)
	if err != nil {
		return aptos.EntryFunctionPayload{}, fmt.Errorf("create task: board id: %w", err)
	}
	return aptos.NewEntryFunctionPayload(s.boardFn(constants.CreateTask), nil,
		aptos.AddressArg(boardID),
		aptos.String(p.Name),
		aptos.String(p.Description),
		aptos.U64(p.Deadline),
		aptos.U64(p.MaxCompletions),
		aptos.U64(p.Reward),
		aptos.String(p.Config),
		aptos.Bool(p.AllowSelfCheck),
	), nil
}

func (s *Service) CancelTaskPayload(boardID, taskID string) aptos.EntryFunctionPayload {
	return aptos.NewEntryFunctionPayload(s.boardFn(constants.CancelTask), nil,
		boardArg(boardID), taskArg(taskID))
}

func (s *Service) SubmitTaskProofPayload(boardID, taskID, proof string) aptos.EntryFunctionPayload {
	return aptos.NewEntryFunctionPayload(s.boardFn(constants.SubmitTaskProof), nil,
		boardArg(boardID), taskArg(taskID), aptos.String(proof))
}

func (s *Service) ResubmitTaskProofPayload(boardID, taskID, proof string) aptos.EntryFunctionPayload {
	return aptos.NewEntryFunctionPayload(s.boardFn(constants.ResubmitTaskProof), nil,
		boardArg(boardID), taskArg(taskID), aptos.String(proof))
}

// ReviewSubmissionPayload only checks the status is a known code; whether the
// sender may review is decided by the contract.
func (s *Service) ReviewSubmissionPayload(boardID, taskID, submitter string, status constants.SubmissionStatus, comment string) (aptos.EntryFunctionPayload, error) {
	if !status.Valid() {
		return aptos.EntryFunctionPayload{}, fmt.Errorf("%w: %d", ErrInvalidStatus, uint8(status))
	}
	return aptos.NewEntryFunctionPayload(s.boardFn(constants.ReviewSubmission), moveCoin(),
		boardArg(boardID),
		taskArg(taskID),
		aptos.AddressArg(aptos.NormalizeAddress(submitter)),
		aptos.U8(status),
		aptos.String(comment),
	), nil
}

func (s *Service) AddReviewerPayload(boardID, taskID, reviewer string) aptos.EntryFunctionPayload {
	return aptos.NewEntryFunctionPayload(s.boardFn(constants.AddReviewer), nil,
		boardArg(boardID), taskArg(taskID), aptos.AddressArg(aptos.NormalizeAddress(reviewer)))
}
