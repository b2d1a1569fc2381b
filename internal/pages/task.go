package pages

import (
	"context"
	"strings"

	"h2o-bounty/internal/constants"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/internal/models"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/logger"
	"h2o-bounty/pkg/wallet"

	"go.uber.org/zap"
)

type TaskService interface {
	GetTaskInfo(ctx context.Context, boardID, taskID string) (*models.Task, error)
	GetSubmissionInfo(ctx context.Context, boardID, taskID, submitter string) (*models.Submission, error)
	SubmitTaskProof(ctx context.Context, w wallet.Wallet, boardID, taskID, proof string) (*contracts.WriteResult, error)
	ResubmitTaskProof(ctx context.Context, w wallet.Wallet, boardID, taskID, proof string) (*contracts.WriteResult, error)
}

// TaskPage is the task detail view together with the viewer's own submission.
type TaskPage struct {
	svc TaskService
	pub Publisher

	BoardID      string                 `json:"board_id"`
	TaskID       string                 `json:"task_id"`
	Viewer       string                 `json:"viewer,omitempty"`
	State        State                  `json:"state"`
	Task         *models.Task           `json:"task,omitempty"`
	Submission   *models.Submission     `json:"submission,omitempty"`
	EmptyMessage string                 `json:"empty_message,omitempty"`
	Banner       string                 `json:"banner,omitempty"`
	LastTx       *contracts.WriteResult `json:"last_tx,omitempty"`
}

// NewTaskPage builds a page for viewer, which may be empty when no wallet is connected.
func NewTaskPage(svc TaskService, pub Publisher, boardID, taskID, viewer string) *TaskPage {
	if viewer != "" {
		viewer = aptos.NormalizeAddress(viewer)
	}
	return &TaskPage{
		svc:     svc,
		pub:     orNop(pub),
		BoardID: boardID,
		TaskID:  taskID,
		Viewer:  viewer,
		State:   StateLoading,
	}
}

func (p *TaskPage) Topic() string { return TaskTopic(p.BoardID, p.TaskID) }

func (p *TaskPage) set(state State) {
	p.State = state
	publish(p.pub, p.Topic(), p)
}

func (p *TaskPage) Load(ctx context.Context) error {
	p.Task = nil
	p.Submission = nil
	p.EmptyMessage = ""
	p.Banner = ""
	p.set(StateLoading)

	if err := p.refresh(ctx); err != nil {
		logger.ErrorLogger.Error("Failed to fetch task details",
			zap.String("board_id", p.BoardID),
			zap.String("task_id", p.TaskID),
			zap.Error(err))
		if p.Task == nil && aptos.IsMoveAbort(err) {
			p.set(StateNotFound)
			return err
		}
		p.Task = nil
		p.Banner = BannerLoadTaskFailed
		p.set(StateError)
		return err
	}
	p.set(StatePopulated)
	return nil
}

// refresh re-reads the task and, when there is a viewer, their submission.
func (p *TaskPage) refresh(ctx context.Context) error {
	task, err := p.svc.GetTaskInfo(ctx, p.BoardID, p.TaskID)
	if err != nil {
		return err
	}
	p.Task = task

	var sub *models.Submission
	if p.Viewer != "" {
		sub, err = p.svc.GetSubmissionInfo(ctx, p.BoardID, p.TaskID, p.Viewer)
		if err != nil {
			return err
		}
	}
	p.Submission = sub
	if sub == nil {
		p.EmptyMessage = NoSubmissionsMessage
	} else {
		p.EmptyMessage = ""
	}
	return nil
}

// CanSubmit reports whether the submit action is enabled for proof.
func (p *TaskPage) CanSubmit(proof string) bool {
	return p.State == StatePopulated && strings.TrimSpace(proof) != ""
}

// SubmitProof sends proof for the task. A previously rejected submission is
// resubmitted instead. An empty proof is refused before anything is sent.
func (p *TaskPage) SubmitProof(ctx context.Context, w wallet.Wallet, proof string) error {
	if strings.TrimSpace(proof) == "" {
		return ErrEmptyProof
	}
	if p.State != StatePopulated {
		return ErrNotPopulated
	}
	if w != nil && p.Viewer != aptos.NormalizeAddress(w.Address()) {
		p.Viewer = aptos.NormalizeAddress(w.Address())
	}

	p.Banner = ""
	p.set(StateSubmitting)

	var (
		res *contracts.WriteResult
		err error
	)
	if p.Submission != nil && p.Submission.Status == constants.SubmissionRejected {
		res, err = p.svc.ResubmitTaskProof(ctx, w, p.BoardID, p.TaskID, proof)
	} else {
		res, err = p.svc.SubmitTaskProof(ctx, w, p.BoardID, p.TaskID, proof)
	}
	p.LastTx = res
	if err != nil {
		logger.ErrorLogger.Error("Failed to submit task",
			zap.String("board_id", p.BoardID),
			zap.String("task_id", p.TaskID),
			zap.Error(err))
		p.Banner = BannerSubmitFailed
		p.set(StatePopulated)
		return err
	}

	if err := p.refresh(ctx); err != nil {
		logger.ErrorLogger.Error("Failed to refresh task after submit", zap.String("task_id", p.TaskID), zap.Error(err))
		p.Banner = BannerLoadTaskFailed
	}
	p.set(StatePopulated)
	return nil
}
