// Package contracts is the only place that talks to the bounty-board Move modules.
// Writes build an entry-function call, hand it to a wallet and wait for it to
// land; reads call a view function and reshape the result for display.
package contracts

import (
	"context"
	"encoding/json"
	"time"

	"h2o-bounty/internal/constants"
	"h2o-bounty/internal/models"
	"h2o-bounty/pkg/aptos"
)

// Node is the fullnode surface the service needs. *aptos.Client satisfies it.
type Node interface {
	View(ctx context.Context, req aptos.ViewRequest) ([]json.RawMessage, error)
	WaitForTransaction(ctx context.Context, hash string) (*aptos.Transaction, error)
}

// Recorder persists the outcome of every confirmed-or-failed write.
type Recorder interface {
	Record(ctx context.Context, rec models.TxRecord) error
}

type Service struct {
	node          Node
	moduleAddress string
	waitTimeout   time.Duration
	recorder      Recorder
}

type Option func(*Service)

func WithModuleAddress(addr string) Option {
	return func(s *Service) {
		if addr != "" {
			s.moduleAddress = aptos.NormalizeAddress(addr)
		}
	}
}

// WithWaitTimeout bounds the confirmation wait of writes. Zero means no bound.
func WithWaitTimeout(d time.Duration) Option {
	return func(s *Service) { s.waitTimeout = d }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func New(node Node, opts ...Option) *Service {
	s := &Service{
		node:          node,
		moduleAddress: constants.ModuleAddress,
		waitTimeout:   20 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ModuleAddress() string { return s.moduleAddress }

func (s *Service) boardFn(name string) string {
	return constants.FunctionID(s.moduleAddress, constants.BoardModuleName, name)
}

func (s *Service) profileFn(name string) string {
	return constants.FunctionID(s.moduleAddress, constants.ProfileModuleName, name)
}
