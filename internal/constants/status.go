package constants

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SubmissionStatus mirrors the contract's u8 submission status codes.
type SubmissionStatus uint8

const (
	SubmissionRejected    SubmissionStatus = 0
	SubmissionApproved    SubmissionStatus = 1
	SubmissionUnderReview SubmissionStatus = 2
)

func (s SubmissionStatus) Valid() bool {
	return s <= SubmissionUnderReview
}

func (s SubmissionStatus) String() string {
	switch s {
	case SubmissionRejected:
		return "Rejected"
	case SubmissionApproved:
		return "Approved"
	case SubmissionUnderReview:
		return "Under Review"
	default:
		return fmt.Sprintf("SubmissionStatus(%d)", uint8(s))
	}
}

func (s SubmissionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the numeric code (as number or string) or the display name.
func (s *SubmissionStatus) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if n, err := strconv.ParseUint(raw, 10, 8); err == nil {
		*s = SubmissionStatus(n)
		return nil
	}
	switch strings.ToLower(strings.ReplaceAll(raw, "_", " ")) {
	case "rejected":
		*s = SubmissionRejected
	case "approved":
		*s = SubmissionApproved
	case "under review", "underreview", "pending":
		*s = SubmissionUnderReview
	default:
		return fmt.Errorf("unknown submission status %s", string(b))
	}
	return nil
}

// TaskStatus is defined by the contract but no view returns it yet.
type TaskStatus uint8

const (
	TaskActive    TaskStatus = 0
	TaskCompleted TaskStatus = 1
	TaskCancelled TaskStatus = 2
)

func (s TaskStatus) String() string {
	switch s {
	case TaskActive:
		return "Active"
	case TaskCompleted:
		return "Completed"
	case TaskCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("TaskStatus(%d)", uint8(s))
	}
}
