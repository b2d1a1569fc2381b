package models

import (
	"time"

	"h2o-bounty/internal/constants"

	"github.com/shopspring/decimal"
)

// RewardType identifies the coin a board pays out in.
type RewardType struct {
	AccountAddress string `json:"account_address"`
	ModuleName     string `json:"module_name"`
	StructName     string `json:"struct_name"`
}

// TypeTag renders the reward type as <address>::<module>::<struct>.
func (r RewardType) TypeTag() string {
	return r.AccountAddress + "::" + r.ModuleName + "::" + r.StructName
}

// Board amounts are octas (10^-8 MOVE); timestamps are milliseconds.
type Board struct {
	BoardID          string          `json:"board_id,omitempty"`
	Creator          string          `json:"creator"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ImgURL           string          `json:"img_url"`
	TaskIDs          []string        `json:"task_ids"`
	RewardType       RewardType      `json:"reward_type"`
	TotalPledged     uint64          `json:"total_pledged"`
	TotalPledgedMove decimal.Decimal `json:"total_pledged_move"`
	Members          []string        `json:"members"`
	CreatedAt        int64           `json:"created_at"`
	Closed           bool            `json:"closed"`
}

// IsMember expects a normalized address.
func (b *Board) IsMember(address string) bool {
	for _, m := range b.Members {
		if m == address {
			return true
		}
	}
	return false
}

type Task struct {
	TaskID         string          `json:"task_id"`
	Name           string          `json:"name"`
	Creator        string          `json:"creator"`
	Description    string          `json:"description"`
	Deadline       int64           `json:"deadline"`
	MaxCompletions uint64          `json:"max_completions"`
	Reviewers      []string        `json:"reviewers"`
	Completed      bool            `json:"completed"`
	RewardAmount   string          `json:"reward_amount"`
	RewardMove     decimal.Decimal `json:"reward_move"`
	CreatedAt      int64           `json:"created_at"`
	Cancelled      bool            `json:"cancelled"`
	Config         string          `json:"config"`
	AllowSelfCheck bool            `json:"allow_self_check"`
}

func (t *Task) IsReviewer(address string) bool {
	for _, r := range t.Reviewers {
		if r == address {
			return true
		}
	}
	return false
}

type Submission struct {
	Submitter     string                     `json:"submitter"`
	Proof         string                     `json:"proof"`
	Status        constants.SubmissionStatus `json:"status"`
	SubmittedAt   int64                      `json:"submitted_at"`
	ReviewComment string                     `json:"review_comment,omitempty"`
}

type Profile struct {
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Role          string   `json:"role"`
	Bio           string   `json:"bio"`
	UserAddress   string   `json:"user_address"`
	CreatedBoards []string `json:"created_boards"`
	JoinBoards    []string `json:"join_boards"`
	CreatedAt     int64    `json:"created_at"`
}

type BoardCreatedEvent struct {
	BoardID          string          `json:"board_id"`
	Creator          string          `json:"creator"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ImgURL           string          `json:"img_url"`
	RewardType       RewardType      `json:"reward_type"`
	TotalPledged     uint64          `json:"total_pledged"`
	TotalPledgedMove decimal.Decimal `json:"total_pledged_move"`
	Closed           bool            `json:"closed"`
	CreatedAt        int64           `json:"created_at"`
}

// TxRecord is one row of the local transaction log.
type TxRecord struct {
	ID        int       `json:"id"`
	Hash      string    `json:"hash"`
	Function  string    `json:"function"`
	Sender    string    `json:"sender"`
	Success   bool      `json:"success"`
	VMStatus  string    `json:"vm_status,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
