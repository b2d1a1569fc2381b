// Package pages holds the board and task detail state machines. A page starts
// in loading, settles in populated, not_found or error, and passes through
// submitting while a write is in flight. Every transition is published so
// connected browsers can follow along.
package pages

import (
	"encoding/json"
	"errors"

	"h2o-bounty/pkg/logger"

	"go.uber.org/zap"
)

type State string

const (
	StateLoading    State = "loading"
	StatePopulated  State = "populated"
	StateNotFound   State = "not_found"
	StateError      State = "error"
	StateSubmitting State = "submitting"
)

// Banners shown on a populated page after a failed action.
const (
	BannerLoadTaskFailed = "Failed to load task details. Please try again."
	BannerSubmitFailed   = "Failed to submit task. Please try again."
	BannerJoinFailed     = "Failed to join board. Please try again."
)

// NoSubmissionsMessage is rendered when the viewer has not submitted to a task.
const NoSubmissionsMessage = "No submissions yet"

var (
	ErrEmptyProof   = errors.New("proof must not be empty")
	ErrNotPopulated = errors.New("page is not ready for actions")
)

// Publisher receives a JSON snapshot of a page after every transition.
type Publisher interface {
	Publish(topic string, message []byte)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, []byte) {}

func orNop(pub Publisher) Publisher {
	if pub == nil {
		return nopPublisher{}
	}
	return pub
}

func BoardTopic(boardID string) string {
	return "boards/" + boardID
}

func TaskTopic(boardID, taskID string) string {
	return "boards/" + boardID + "/tasks/" + taskID
}

func publish(pub Publisher, topic string, snapshot interface{}) {
	msg, err := json.Marshal(snapshot)
	if err != nil {
		logger.ErrorLogger.Error("Error encoding page snapshot", zap.String("topic", topic), zap.Error(err))
		return
	}
	pub.Publish(topic, msg)
}
