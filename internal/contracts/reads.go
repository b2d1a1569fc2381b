package contracts

import (
	"context"
	"encoding/json"
	"fmt"

	"h2o-bounty/internal/constants"
	"h2o-bounty/internal/models"
	"h2o-bounty/pkg/aptos"
)

// view returns the first return value of a view function.
func (s *Service) view(ctx context.Context, function string, args ...interface{}) (json.RawMessage, error) {
	out, err := s.node.View(ctx, aptos.ViewRequest{Function: function, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", function, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s returned no values", ErrMalformedResponse, function)
	}
	return out[0], nil
}

func (s *Service) GetBoardCreatedEvents(ctx context.Context) ([]models.BoardCreatedEvent, error) {
	fn := s.boardFn(constants.GetBoardCreatedInfo)
	data, err := s.view(ctx, fn)
	if err != nil {
		return nil, err
	}
	raws, err := decodeList[rawBoardCreatedEvent](fn, data)
	if err != nil {
		return nil, err
	}
	events := make([]models.BoardCreatedEvent, len(raws))
	for i := range raws {
		events[i] = shapeEvent(&raws[i])
	}
	return events, nil
}

// GetBoardInfo returns an error satisfying aptos.IsMoveAbort when the board does not exist.
func (s *Service) GetBoardInfo(ctx context.Context, boardID string) (*models.Board, error) {
	fn := s.boardFn(constants.GetBoardInfo)
	data, err := s.view(ctx, fn, boardArg(boardID))
	if err != nil {
		return nil, err
	}
	var raw rawBoard
	if err := decodeOne(fn, data, &raw); err != nil {
		return nil, err
	}
	board := shapeBoard(boardID, &raw)
	return &board, nil
}

func (s *Service) GetTaskInfo(ctx context.Context, boardID, taskID string) (*models.Task, error) {
	fn := s.boardFn(constants.GetTaskInfo)
	data, err := s.view(ctx, fn, boardArg(boardID), taskArg(taskID))
	if err != nil {
		return nil, err
	}
	var raw rawTask
	if err := decodeOne(fn, data, &raw); err != nil {
		return nil, err
	}
	task := shapeTask(&raw)
	return &task, nil
}

// GetSubmissionInfo returns (nil, nil) when submitter has not submitted to the
// task. The contract aborts in that case; any other failure is an error.
func (s *Service) GetSubmissionInfo(ctx context.Context, boardID, taskID, submitter string) (*models.Submission, error) {
	fn := s.boardFn(constants.GetSubmissionInfo)
	data, err := s.view(ctx, fn, boardArg(boardID), taskArg(taskID), aptos.AddressArg(aptos.NormalizeAddress(submitter)))
	if err != nil {
		if aptos.IsMoveAbort(err) {
			return nil, nil
		}
		return nil, err
	}
	if isNull(data) {
		return nil, nil
	}
	var raw rawSubmission
	if err := decodeOne(fn, data, &raw); err != nil {
		return nil, err
	}
	sub := shapeSubmission(&raw)
	return &sub, nil
}

func (s *Service) boardsFor(ctx context.Context, function, address string) ([]models.Board, error) {
	data, err := s.view(ctx, function, aptos.AddressArg(aptos.NormalizeAddress(address)))
	if err != nil {
		return nil, err
	}
	raws, err := decodeList[rawBoard](function, data)
	if err != nil {
		return nil, err
	}
	boards := make([]models.Board, len(raws))
	for i := range raws {
		boards[i] = shapeBoard("", &raws[i])
	}
	return boards, nil
}

func (s *Service) GetUserJoinedBoards(ctx context.Context, address string) ([]models.Board, error) {
	return s.boardsFor(ctx, s.boardFn(constants.GetUserJoinBoards), address)
}

func (s *Service) GetUserCreatedBoards(ctx context.Context, address string) ([]models.Board, error) {
	return s.boardsFor(ctx, s.boardFn(constants.GetUserCreateBoards), address)
}

func (s *Service) GetUserProfile(ctx context.Context, address string) (*models.Profile, error) {
	fn := s.profileFn(constants.GetUserProfile)
	data, err := s.view(ctx, fn, aptos.AddressArg(aptos.NormalizeAddress(address)))
	if err != nil {
		return nil, err
	}
	var raw rawProfile
	if err := decodeOne(fn, data, &raw); err != nil {
		return nil, err
	}
	profile := shapeProfile(&raw)
	return &profile, nil
}

func (s *Service) GetAllUserAddresses(ctx context.Context) ([]string, error) {
	fn := s.profileFn(constants.GetAllUserAddresses)
	data, err := s.view(ctx, fn)
	if err != nil {
		return nil, err
	}
	if isNull(data) {
		return []string{}, nil
	}
	var addrs []string
	if err := json.Unmarshal(data, &addrs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, fn, err)
	}
	if addrs == nil {
		return []string{}, nil
	}
	return aptos.NormalizeAddresses(addrs), nil
}
