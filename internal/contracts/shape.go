package contracts

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"h2o-bounty/internal/constants"
	"h2o-bounty/internal/models"
	"h2o-bounty/pkg/aptos"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrMalformedResponse is returned when a view response lacks fields the shaping needs.
var ErrMalformedResponse = errors.New("malformed view response")

var validate = validator.New()

// flexString decodes a JSON string or number into its string form.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// optionalString decodes either a plain string or a Move Option<String> ({"vec":[...]}).
type optionalString string

func (o *optionalString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '{' {
		var opt struct {
			Vec []string `json:"vec"`
		}
		if err := json.Unmarshal(b, &opt); err != nil {
			return err
		}
		if len(opt.Vec) > 0 {
			*o = optionalString(opt.Vec[0])
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*o = optionalString(s)
	return nil
}

type rawRewardType struct {
	AccountAddress string `json:"account_address"`
	ModuleName     string `json:"module_name"`
	StructName     string `json:"struct_name"`
}

type rawBoard struct {
	Creator      string         `json:"creator"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	ImgURL       string         `json:"img_url"`
	TaskIDs      []flexString   `json:"task_ids"`
	RewardType   *rawRewardType `json:"reward_type" validate:"required"`
	TotalPledged aptos.U64      `json:"total_pledged"`
	Members      []string       `json:"members" validate:"required"`
	CreatedAt    aptos.U64      `json:"created_at"`
	Closed       bool           `json:"closed"`
}

type rawBoardCreatedEvent struct {
	BoardID      string         `json:"board_id"`
	Creator      string         `json:"creator"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	ImgURL       string         `json:"img_url"`
	RewardType   *rawRewardType `json:"reward_type" validate:"required"`
	TotalPledged aptos.U64      `json:"total_pledged"`
	Closed       bool           `json:"closed"`
	CreatedAt    aptos.U64      `json:"created_at"`
}

// rawTask accepts both reward_amount and rewardAmount; deployments have used either.
type rawTask struct {
	TaskID            flexString `json:"task_id"`
	Name              string     `json:"name"`
	Creator           string     `json:"creator"`
	Description       string     `json:"description"`
	Deadline          aptos.U64  `json:"deadline"`
	MaxCompletions    aptos.U64  `json:"max_completions"`
	Reviewers         []string   `json:"reviewers"`
	Completed         bool       `json:"completed"`
	RewardAmount      flexString `json:"reward_amount"`
	RewardAmountCamel flexString `json:"rewardAmount"`
	CreatedAt         aptos.U64  `json:"created_at"`
	Cancelled         bool       `json:"cancelled"`
	Config            string     `json:"config"`
	AllowSelfCheck    bool       `json:"allow_self_check"`
}

type rawSubmission struct {
	Submitter     string                     `json:"submitter"`
	Proof         string                     `json:"proof"`
	Status        constants.SubmissionStatus `json:"status"`
	SubmittedAt   aptos.U64                  `json:"submitted_at"`
	ReviewComment optionalString             `json:"review_comment"`
}

type rawProfile struct {
	Username      *string         `json:"username" validate:"required"`
	Email         *string         `json:"email" validate:"required"`
	Role          string          `json:"role"`
	Bio           string          `json:"bio"`
	UserAddress   *string         `json:"user_address" validate:"required"`
	CreatedBoards []string        `json:"created_boards" validate:"required"`
	JoinBoards    []string        `json:"join_boards" validate:"required"`
	CreatedAt     json.RawMessage `json:"created_at"`
}

// OctasToMove converts an on-chain amount to MOVE (÷ 10^8), exactly.
func OctasToMove(octas uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(octas), -8)
}

// OctaStringToMove is OctasToMove for string-encoded amounts; unparseable input is zero.
func OctaStringToMove(octas string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(octas))
	if err != nil {
		return decimal.Zero
	}
	return d.Shift(-8)
}

// MicrosToMillis is floor(µs / 1000).
func MicrosToMillis(micros uint64) int64 {
	return int64(micros / 1000)
}

// decodeTypeName turns a hex-encoded Move type name (vector<u8>) into text.
// Anything that is not printable hex-encoded ASCII is returned untouched.
func decodeTypeName(s string) string {
	if !strings.HasPrefix(s, "0x") {
		return s
	}
	raw, err := hex.DecodeString(s[2:])
	if err != nil || len(raw) == 0 {
		return s
	}
	for _, c := range raw {
		if c > unicode.MaxASCII || !unicode.IsPrint(rune(c)) {
			return s
		}
	}
	return string(raw)
}

func shapeRewardType(raw *rawRewardType) models.RewardType {
	return models.RewardType{
		AccountAddress: aptos.NormalizeAddress(raw.AccountAddress),
		ModuleName:     decodeTypeName(raw.ModuleName),
		StructName:     decodeTypeName(raw.StructName),
	}
}

func flexStrings(in []flexString) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func shapeBoard(boardID string, raw *rawBoard) models.Board {
	return models.Board{
		BoardID:          boardID,
		Creator:          aptos.NormalizeAddress(raw.Creator),
		Name:             raw.Name,
		Description:      raw.Description,
		ImgURL:           raw.ImgURL,
		TaskIDs:          flexStrings(raw.TaskIDs),
		RewardType:       shapeRewardType(raw.RewardType),
		TotalPledged:     uint64(raw.TotalPledged),
		TotalPledgedMove: OctasToMove(uint64(raw.TotalPledged)),
		Members:          aptos.NormalizeAddresses(raw.Members),
		CreatedAt:        MicrosToMillis(uint64(raw.CreatedAt)),
		Closed:           raw.Closed,
	}
}

func shapeEvent(raw *rawBoardCreatedEvent) models.BoardCreatedEvent {
	return models.BoardCreatedEvent{
		BoardID:          aptos.NormalizeAddress(raw.BoardID),
		Creator:          aptos.NormalizeAddress(raw.Creator),
		Name:             raw.Name,
		Description:      raw.Description,
		ImgURL:           raw.ImgURL,
		RewardType:       shapeRewardType(raw.RewardType),
		TotalPledged:     uint64(raw.TotalPledged),
		TotalPledgedMove: OctasToMove(uint64(raw.TotalPledged)),
		Closed:           raw.Closed,
		CreatedAt:        MicrosToMillis(uint64(raw.CreatedAt)),
	}
}

func shapeTask(raw *rawTask) models.Task {
	reward := string(raw.RewardAmount)
	if reward == "" {
		reward = string(raw.RewardAmountCamel)
	}
	reviewers := aptos.NormalizeAddresses(raw.Reviewers)
	if reviewers == nil {
		reviewers = []string{}
	}
	return models.Task{
		TaskID:         string(raw.TaskID),
		Name:           raw.Name,
		Creator:        aptos.NormalizeAddress(raw.Creator),
		Description:    raw.Description,
		Deadline:       MicrosToMillis(uint64(raw.Deadline)),
		MaxCompletions: uint64(raw.MaxCompletions),
		Reviewers:      reviewers,
		Completed:      raw.Completed,
		RewardAmount:   reward,
		RewardMove:     OctaStringToMove(reward),
		CreatedAt:      MicrosToMillis(uint64(raw.CreatedAt)),
		Cancelled:      raw.Cancelled,
		Config:         raw.Config,
		AllowSelfCheck: raw.AllowSelfCheck,
	}
}

func shapeSubmission(raw *rawSubmission) models.Submission {
	return models.Submission{
		Submitter:     aptos.NormalizeAddress(raw.Submitter),
		Proof:         raw.Proof,
		Status:        raw.Status,
		SubmittedAt:   MicrosToMillis(uint64(raw.SubmittedAt)),
		ReviewComment: string(raw.ReviewComment),
	}
}

// profileCreatedAt is lenient: anything that is not a non-negative integer becomes 0.
func profileCreatedAt(raw json.RawMessage) int64 {
	var v flexString
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return 0
	}
	n, err := strconv.ParseUint(string(v), 10, 64)
	if err != nil {
		return 0
	}
	return MicrosToMillis(n)
}

func shapeProfile(raw *rawProfile) models.Profile {
	role := raw.Role
	if role == "" {
		role = "user"
	}
	return models.Profile{
		Username:      strings.TrimSpace(*raw.Username),
		Email:         strings.ToLower(*raw.Email),
		Role:          role,
		Bio:           raw.Bio,
		UserAddress:   aptos.NormalizeAddress(*raw.UserAddress),
		CreatedBoards: aptos.NormalizeAddresses(raw.CreatedBoards),
		JoinBoards:    aptos.NormalizeAddresses(raw.JoinBoards),
		CreatedAt:     profileCreatedAt(raw.CreatedAt),
	}
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

// decodeOne unmarshals and validates a single struct-shaped view value.
func decodeOne(function string, data json.RawMessage, out interface{}) error {
	if isNull(data) {
		return fmt.Errorf("%w: %s returned null", ErrMalformedResponse, function)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, function, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, function, err)
	}
	return nil
}

// decodeList unmarshals a vector view value; null is an empty list.
func decodeList[T any](function string, data json.RawMessage) ([]T, error) {
	if isNull(data) {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, function, err)
	}
	for i := range out {
		if err := validate.Struct(&out[i]); err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrMalformedResponse, function, i, err)
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
