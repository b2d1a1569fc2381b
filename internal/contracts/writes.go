package contracts

import (
	"context"
	"errors"
	"fmt"

	"h2o-bounty/internal/constants"
	"h2o-bounty/internal/models"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/logger"
	"h2o-bounty/pkg/wallet"

	"go.uber.org/zap"
)

var (
	ErrNoWallet = errors.New("no wallet connected")
	// ErrSenderMismatch is returned when the committed transaction was sent
	// by another account than the one confirming it.
	ErrSenderMismatch = errors.New("transaction sender mismatch")
)

// WriteResult describes a transaction that reached the chain.
type WriteResult struct {
	Hash     string `json:"hash"`
	Function string `json:"function"`
	Sender   string `json:"sender"`
	Version  uint64 `json:"version"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
}

// submit signs through the wallet and waits for confirmation. Failures are
// logged and returned; nothing is retried.
func (s *Service) submit(ctx context.Context, w wallet.Wallet, payload aptos.EntryFunctionPayload) (*WriteResult, error) {
	if w == nil {
		return nil, ErrNoWallet
	}

	pending, err := w.SignAndSubmitTransaction(ctx, payload)
	if err != nil {
		logger.ErrorLogger.Error("Error submitting transaction",
			zap.String("function", payload.Function),
			zap.String("sender", w.Address()),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", payload.Function, err)
	}

	return s.confirm(ctx, payload.Function, w.Address(), pending.Hash)
}

func (s *Service) confirm(ctx context.Context, function, sender, hash string) (*WriteResult, error) {
	waitCtx := ctx
	if s.waitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.waitTimeout)
		defer cancel()
	}

	tx, err := s.node.WaitForTransaction(waitCtx, hash)

	result := &WriteResult{Hash: hash, Function: function, Sender: aptos.NormalizeAddress(sender)}
	if tx != nil {
		// The chain's sender is authoritative.
		onChain := aptos.NormalizeAddress(tx.Sender)
		if result.Sender != "" && onChain != result.Sender {
			logger.SecurityLogger.Warn("Transaction sender mismatch",
				zap.String("hash", hash),
				zap.String("sender", onChain),
				zap.String("caller", result.Sender))
			return nil, fmt.Errorf("%w: %s was sent by %s", ErrSenderMismatch, hash, onChain)
		}
		result.Sender = onChain
		result.Version = uint64(tx.Version)
		result.Success = tx.Success
		result.VMStatus = tx.VMStatus
		if result.Function == "" {
			result.Function = tx.Function
		}
	}
	s.record(ctx, result, err)

	if err != nil {
		logger.ErrorLogger.Error("Error waiting for transaction",
			zap.String("hash", hash),
			zap.String("function", result.Function),
			zap.Error(err))
		return result, err
	}
	logger.AuditLogger.Info("Transaction confirmed",
		zap.String("hash", hash),
		zap.String("function", result.Function),
		zap.String("sender", result.Sender),
		zap.Uint64("version", result.Version))
	return result, nil
}

func (s *Service) record(ctx context.Context, result *WriteResult, waitErr error) {
	if s.recorder == nil {
		return
	}
	rec := models.TxRecord{
		Hash:     result.Hash,
		Function: result.Function,
		Sender:   result.Sender,
		Success:  waitErr == nil && result.Success,
		VMStatus: result.VMStatus,
	}
	if waitErr != nil {
		rec.Error = waitErr.Error()
	}
	if err := s.recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		logger.ErrorLogger.Error("Error recording transaction", zap.String("hash", result.Hash), zap.Error(err))
	}
}

// ConfirmTransaction waits for a transaction that a browser wallet submitted
// directly and records its outcome.
func (s *Service) ConfirmTransaction(ctx context.Context, hash, sender string) (*WriteResult, error) {
	return s.confirm(ctx, "", sender, hash)
}

func (s *Service) CreateProfile(ctx context.Context, w wallet.Wallet, username, email, role, bio string) (*WriteResult, error) {
	return s.submit(ctx, w, s.CreateProfilePayload(username, email, role, bio))
}

func (s *Service) CreateBoard(ctx context.Context, w wallet.Wallet, name, description, imageURL string, amount uint64) (*WriteResult, error) {
	return s.submit(ctx, w, s.CreateBoardPayload(name, description, imageURL, amount))
}

func (s *Service) AddRewardToBoard(ctx context.Context, w wallet.Wallet, boardID string, amount uint64) (*WriteResult, error) {
	return s.submit(ctx, w, s.AddRewardToBoardPayload(boardID, amount))
}

func (s *Service) JoinBoard(ctx context.Context, w wallet.Wallet, boardID string) (*WriteResult, error) {
	return s.submit(ctx, w, s.JoinBoardPayload(boardID))
}

func (s *Service) WithdrawRewardAndCloseBoard(ctx context.Context, w wallet.Wallet, boardID string) (*WriteResult, error) {
	return s.submit(ctx, w, s.WithdrawRewardAndCloseBoardPayload(boardID))
}

func (s *Service) CreateTask(ctx context.Context, w wallet.Wallet, p CreateTaskParams) (*WriteResult, error) {
	payload, err := s.CreateTaskPayload(p)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, w, payload)
}

func (s *Service) CancelTask(ctx context.Context, w wallet.Wallet, boardID, taskID string) (*WriteResult, error) {
	return s.submit(ctx, w, s.CancelTaskPayload(boardID, taskID))
}

func (s *Service) SubmitTaskProof(ctx context.Context, w wallet.Wallet, boardID, taskID, proof string) (*WriteResult, error) {
	return s.submit(ctx, w, s.SubmitTaskProofPayload(boardID, taskID, proof))
}

func (s *Service) ResubmitTaskProof(ctx context.Context, w wallet.Wallet, boardID, taskID, proof string) (*WriteResult, error) {
	return s.submit(ctx, w, s.ResubmitTaskProofPayload(boardID, taskID, proof))
}

func (s *Service) ReviewSubmission(ctx context.Context, w wallet.Wallet, boardID, taskID, submitter string, status constants.SubmissionStatus, comment string) (*WriteResult, error) {
	payload, err := s.ReviewSubmissionPayload(boardID, taskID, submitter, status, comment)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, w, payload)
}

func (s *Service) AddReviewer(ctx context.Context, w wallet.Wallet, boardID, taskID, reviewer string) (*WriteResult, error) {
	return s.submit(ctx, w, s.AddReviewerPayload(boardID, taskID, reviewer))
}
