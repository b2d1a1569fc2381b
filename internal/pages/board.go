package pages

import (
	"context"

	"h2o-bounty/internal/contracts"
	"h2o-bounty/internal/models"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/logger"
	"h2o-bounty/pkg/wallet"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type BoardService interface {
	GetBoardInfo(ctx context.Context, boardID string) (*models.Board, error)
	GetTaskInfo(ctx context.Context, boardID, taskID string) (*models.Task, error)
	JoinBoard(ctx context.Context, w wallet.Wallet, boardID string) (*contracts.WriteResult, error)
}

// BoardPage is the board detail view: the board plus every one of its tasks.
type BoardPage struct {
	svc BoardService
	pub Publisher

	BoardID string                 `json:"board_id"`
	State   State                  `json:"state"`
	Board   *models.Board          `json:"board,omitempty"`
	Tasks   []models.Task          `json:"tasks"`
	Banner  string                 `json:"banner,omitempty"`
	LastTx  *contracts.WriteResult `json:"last_tx,omitempty"`
}

func NewBoardPage(svc BoardService, pub Publisher, boardID string) *BoardPage {
	return &BoardPage{
		svc:     svc,
		pub:     orNop(pub),
		BoardID: boardID,
		State:   StateLoading,
		Tasks:   []models.Task{},
	}
}

func (p *BoardPage) Topic() string { return BoardTopic(p.BoardID) }

func (p *BoardPage) set(state State) {
	p.State = state
	publish(p.pub, p.Topic(), p)
}

// Load fetches the board and then all of its tasks concurrently. The page
// only becomes populated when every task fetch succeeded.
func (p *BoardPage) Load(ctx context.Context) error {
	p.Board = nil
	p.Tasks = []models.Task{}
	p.Banner = ""
	p.set(StateLoading)

	board, err := p.svc.GetBoardInfo(ctx, p.BoardID)
	if err != nil {
		logger.ErrorLogger.Error("Failed to fetch board details", zap.String("board_id", p.BoardID), zap.Error(err))
		if aptos.IsMoveAbort(err) {
			p.set(StateNotFound)
		} else {
			p.set(StateError)
		}
		return err
	}

	tasks, err := fetchTasks(ctx, p.svc, p.BoardID, board.TaskIDs)
	if err != nil {
		logger.ErrorLogger.Error("Failed to fetch board tasks", zap.String("board_id", p.BoardID), zap.Error(err))
		p.set(StateError)
		return err
	}

	p.Board = board
	p.Tasks = tasks
	p.set(StatePopulated)
	return nil
}

// fetchTasks issues exactly one query per task id and keeps the board's task order.
func fetchTasks(ctx context.Context, svc BoardService, boardID string, taskIDs []string) ([]models.Task, error) {
	tasks := make([]models.Task, len(taskIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, taskID := range taskIDs {
		i, taskID := i, taskID
		g.Go(func() error {
			task, err := svc.GetTaskInfo(gctx, boardID, taskID)
			if err != nil {
				return err
			}
			tasks[i] = *task
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// IsMember reports whether address already belongs to the loaded board.
func (p *BoardPage) IsMember(address string) bool {
	return p.Board != nil && p.Board.IsMember(aptos.NormalizeAddress(address))
}

// Join submits join_board for the connected wallet. On success the board is
// re-read so the new member shows up; a failure leaves the page populated
// with a banner.
func (p *BoardPage) Join(ctx context.Context, w wallet.Wallet) error {
	if p.State != StatePopulated {
		return ErrNotPopulated
	}
	p.Banner = ""
	p.set(StateSubmitting)

	res, err := p.svc.JoinBoard(ctx, w, p.BoardID)
	p.LastTx = res
	if err != nil {
		logger.ErrorLogger.Error("Failed to join board", zap.String("board_id", p.BoardID), zap.Error(err))
		p.Banner = BannerJoinFailed
		p.set(StatePopulated)
		return err
	}

	if board, err := p.svc.GetBoardInfo(ctx, p.BoardID); err == nil {
		p.Board = board
	} else {
		logger.SystemLogger.Warn("Failed to refresh board after join", zap.String("board_id", p.BoardID), zap.Error(err))
	}
	p.set(StatePopulated)
	return nil
}
