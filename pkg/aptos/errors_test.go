package aptos

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMoveAbort(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"aborted code", &APIError{StatusCode: http.StatusBadRequest, Message: "execution failed", VMErrorCode: VMStatusAborted}, true},
		{"missing data code", &APIError{StatusCode: http.StatusBadRequest, VMErrorCode: VMStatusMissingData}, true},
		{"abort message", &APIError{StatusCode: http.StatusBadRequest, Message: "Move abort in 0x2e::MoveMentBoard: 0x1"}, true},
		{"status in message", &APIError{StatusCode: http.StatusBadRequest, Message: "VMError with status ABORTED"}, true},
		{"deserialization", &APIError{StatusCode: http.StatusBadRequest, Message: "Failed to deserialize argument at index 0", VMErrorCode: 1033}, false},
		{"bad request without vm error", &APIError{StatusCode: http.StatusBadRequest, Message: "invalid function id"}, false},
		{"server error", &APIError{StatusCode: http.StatusInternalServerError, Message: "Move abort"}, false},
		{"transport", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsMoveAbort(tc.err))
		})
	}
}
