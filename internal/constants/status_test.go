package constants

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionID(t *testing.T) {
	assert.Equal(t,
		ModuleAddress+"::MoveMentBoard::create_board",
		FunctionID(ModuleAddress, BoardModuleName, CreateBoard))
}

func TestSubmissionStatusDecoding(t *testing.T) {
	cases := map[string]SubmissionStatus{
		`0`:              SubmissionRejected,
		`"1"`:            SubmissionApproved,
		`2`:              SubmissionUnderReview,
		`"Approved"`:     SubmissionApproved,
		`"Under Review"`: SubmissionUnderReview,
		`"UNDER_REVIEW"`: SubmissionUnderReview,
	}
	for in, want := range cases {
		var got SubmissionStatus
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, want, got, in)
	}

	var s SubmissionStatus
	assert.Error(t, json.Unmarshal([]byte(`"lost"`), &s))
}

func TestSubmissionStatusMarshalsName(t *testing.T) {
	out, err := json.Marshal(SubmissionApproved)
	require.NoError(t, err)
	assert.Equal(t, `"Approved"`, string(out))
	assert.False(t, SubmissionStatus(3).Valid())
}
