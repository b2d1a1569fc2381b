package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"h2o-bounty/internal/constants"
	"h2o-bounty/internal/models"
	"h2o-bounty/pkg/aptos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModule = "0x2e5f33f9b87b179dc3e162524731f4546c228ff65eb79121913ef583adfeac2d"

type fakeNode struct {
	views    map[string]string
	viewErr  map[string]error
	calls    []aptos.ViewRequest
	tx       *aptos.Transaction
	waitErr  error
	waitedOn string
}

func (n *fakeNode) View(ctx context.Context, req aptos.ViewRequest) ([]json.RawMessage, error) {
	n.calls = append(n.calls, req)
	if err, ok := n.viewErr[req.Function]; ok {
		return nil, err
	}
	body, ok := n.views[req.Function]
	if !ok {
		return nil, errors.New("unexpected view " + req.Function)
	}
	var out []json.RawMessage
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (n *fakeNode) WaitForTransaction(ctx context.Context, hash string) (*aptos.Transaction, error) {
	n.waitedOn = hash
	return n.tx, n.waitErr
}

type fakeWallet struct {
	address string
	payload aptos.EntryFunctionPayload
	err     error
}

func (w *fakeWallet) Address() string { return w.address }

func (w *fakeWallet) SignAndSubmitTransaction(ctx context.Context, p aptos.EntryFunctionPayload) (*aptos.PendingTransaction, error) {
	w.payload = p
	if w.err != nil {
		return nil, w.err
	}
	return &aptos.PendingTransaction{Hash: "0xabc", Sender: w.address}, nil
}

type memRecorder struct {
	records []models.TxRecord
}

func (r *memRecorder) Record(ctx context.Context, rec models.TxRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func fn(module, name string) string {
	return constants.FunctionID(testModule, module, name)
}

func boardFn(name string) string   { return fn(constants.BoardModuleName, name) }
func profileFn(name string) string { return fn(constants.ProfileModuleName, name) }

const boardJSON = `[{
	"creator": "0xABC",
	"name": "Docs bounty",
	"description": "Improve the docs",
	"img_url": "https://img/1.png",
	"task_ids": ["0", 1],
	"reward_type": {"account_address": "0x1", "module_name": "0x6170746f735f636f696e", "struct_name": "0x4170746f73436f696e"},
	"total_pledged": "250000000",
	"members": ["0xDEF", "0x1"],
	"created_at": "1700000000000000",
	"closed": false
}]`

func TestGetBoardInfoShapesValues(t *testing.T) {
	node := &fakeNode{views: map[string]string{boardFn(constants.GetBoardInfo): boardJSON}}
	svc := New(node)

	board, err := svc.GetBoardInfo(context.Background(), "0xb0")
	require.NoError(t, err)

	assert.Equal(t, "0xb0", board.BoardID)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000abc", board.Creator)
	assert.Equal(t, "2.5", board.TotalPledgedMove.String())
	assert.Equal(t, uint64(250000000), board.TotalPledged)
	assert.Equal(t, int64(1700000000000), board.CreatedAt)
	assert.Equal(t, []string{"0", "1"}, board.TaskIDs)
	assert.Equal(t, []string{
		"0x0000000000000000000000000000000000000000000000000000000000000def",
		"0x1",
	}, board.Members)
	assert.Equal(t, "0x1::aptos_coin::AptosCoin", board.RewardType.TypeTag())

	require.Len(t, node.calls, 1)
	assert.Equal(t, []interface{}{aptos.AddressArg("0xb0")}, node.calls[0].Arguments)
}

func TestGetBoardInfoMissingMembersIsMalformed(t *testing.T) {
	node := &fakeNode{views: map[string]string{
		boardFn(constants.GetBoardInfo): `[{"creator":"0x1","reward_type":{"account_address":"0x1","module_name":"m","struct_name":"s"}}]`,
	}}
	_, err := New(node).GetBoardInfo(context.Background(), "0xb0")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGetBoardInfoAbortPassesThrough(t *testing.T) {
	abort := &aptos.APIError{StatusCode: http.StatusBadRequest, Message: "Move abort in 0x2e::MoveMentBoard: 0x1"}
	node := &fakeNode{viewErr: map[string]error{boardFn(constants.GetBoardInfo): abort}}

	_, err := New(node).GetBoardInfo(context.Background(), "0xdead")
	require.Error(t, err)
	assert.True(t, aptos.IsMoveAbort(err))
}

func TestGetBoardCreatedEvents(t *testing.T) {
	node := &fakeNode{views: map[string]string{
		boardFn(constants.GetBoardCreatedInfo): `[[{
			"board_id": "0xB1", "creator": "0xC", "name": "n", "description": "d", "img_url": "",
			"reward_type": {"account_address": "0x1", "module_name": "aptos_coin", "struct_name": "AptosCoin"},
			"total_pledged": "100000000", "closed": true, "created_at": "1999"
		}]]`,
	}}
	events, err := New(node).GetBoardCreatedEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000000000000000b1", events[0].BoardID)
	assert.Equal(t, "0xc", events[0].Creator)
	assert.Equal(t, "1", events[0].TotalPledgedMove.String())
	assert.Equal(t, int64(1), events[0].CreatedAt)
	assert.True(t, events[0].Closed)
}

func TestGetBoardCreatedEventsNullIsEmpty(t *testing.T) {
	node := &fakeNode{views: map[string]string{boardFn(constants.GetBoardCreatedInfo): `[null]`}}
	events, err := New(node).GetBoardCreatedEvents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestGetTaskInfoRewardSpellings(t *testing.T) {
	for _, field := range []string{"reward_amount", "rewardAmount"} {
		node := &fakeNode{views: map[string]string{
			boardFn(constants.GetTaskInfo): `[{"task_id":"3","name":"t","creator":"0xA","deadline":"5000","max_completions":"2","` +
				field + `":"150000000","created_at":"1000"}]`,
		}}
		task, err := New(node).GetTaskInfo(context.Background(), "0xb0", "3")
		require.NoError(t, err, field)
		assert.Equal(t, "150000000", task.RewardAmount, field)
		assert.Equal(t, "1.5", task.RewardMove.String(), field)
		assert.Equal(t, int64(5), task.Deadline)
		assert.NotNil(t, task.Reviewers)
		assert.Equal(t, "0xa", task.Creator)
	}
}

func TestGetSubmissionInfo(t *testing.T) {
	node := &fakeNode{views: map[string]string{
		boardFn(constants.GetSubmissionInfo): `[{"submitter":"0xAA","proof":"https://proof","status":1,"submitted_at":"2000000","review_comment":{"vec":["looks good"]}}]`,
	}}
	sub, err := New(node).GetSubmissionInfo(context.Background(), "0xb0", "0", "0xAA")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, constants.SubmissionApproved, sub.Status)
	assert.Equal(t, int64(2000), sub.SubmittedAt)
	assert.Equal(t, "looks good", sub.ReviewComment)
	assert.Equal(t, "0xaa", sub.Submitter)

	require.Len(t, node.calls, 1)
	assert.Equal(t, []interface{}{aptos.AddressArg("0xb0"), aptos.U64String("0"), aptos.AddressArg("0xaa")}, node.calls[0].Arguments)
}

func TestGetSubmissionInfoAbsent(t *testing.T) {
	abort := &aptos.APIError{StatusCode: http.StatusBadRequest, Message: "execution failed", VMErrorCode: 4016}
	node := &fakeNode{viewErr: map[string]error{boardFn(constants.GetSubmissionInfo): abort}}

	sub, err := New(node).GetSubmissionInfo(context.Background(), "0xb0", "0", "0xaa")
	assert.NoError(t, err)
	assert.Nil(t, sub)
}

func TestGetSubmissionInfoTransportError(t *testing.T) {
	node := &fakeNode{viewErr: map[string]error{
		boardFn(constants.GetSubmissionInfo): &aptos.APIError{StatusCode: http.StatusServiceUnavailable, Message: "down"},
	}}
	sub, err := New(node).GetSubmissionInfo(context.Background(), "0xb0", "0", "0xaa")
	assert.Error(t, err)
	assert.Nil(t, sub)
}

func TestGetUserProfile(t *testing.T) {
	node := &fakeNode{views: map[string]string{
		profileFn(constants.GetUserProfile): `[{"username":"  alice ","email":"Alice@Example.COM","role":"","bio":"hi",
			"user_address":"0xA11CE","created_boards":["0xB1"],"join_boards":[],"created_at":"oops"}]`,
	}}
	p, err := New(node).GetUserProfile(context.Background(), "0xA11CE")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, "user", p.Role)
	assert.Equal(t, int64(0), p.CreatedAt)
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000000000000a11ce", p.UserAddress)
	assert.Equal(t, []string{"0x00000000000000000000000000000000000000000000000000000000000000b1"}, p.CreatedBoards)
	assert.Empty(t, p.JoinBoards)
}

func TestGetUserProfileMissingUsername(t *testing.T) {
	node := &fakeNode{views: map[string]string{
		profileFn(constants.GetUserProfile): `[{"email":"a@b.c","user_address":"0x1","created_boards":[],"join_boards":[]}]`,
	}}
	_, err := New(node).GetUserProfile(context.Background(), "0x1")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGetUserBoards(t *testing.T) {
	node := &fakeNode{views: map[string]string{
		boardFn(constants.GetUserJoinBoards):   "[" + boardJSON + "]",
		boardFn(constants.GetUserCreateBoards): `[[]]`,
	}}
	svc := New(node)

	joined, err := svc.GetUserJoinedBoards(context.Background(), "0xDEF")
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, "Docs bounty", joined[0].Name)

	created, err := svc.GetUserCreatedBoards(context.Background(), "0xDEF")
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestGetAllUserAddresses(t *testing.T) {
	node := &fakeNode{views: map[string]string{
		profileFn(constants.GetAllUserAddresses): `[["0xA", "0x0B"]]`,
	}}
	addrs, err := New(node).GetAllUserAddresses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0xa", "0xb"}, addrs)
}

func TestViewEmptyResultIsMalformed(t *testing.T) {
	node := &fakeNode{views: map[string]string{boardFn(constants.GetTaskInfo): `[]`}}
	_, err := New(node).GetTaskInfo(context.Background(), "0xb0", "0")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestWithModuleAddress(t *testing.T) {
	svc := New(&fakeNode{}, WithModuleAddress("0xCAFE"))
	assert.Equal(t, "0x000000000000000000000000000000000000000000000000000000000000cafe", svc.ModuleAddress())
	p := svc.JoinBoardPayload("0xb0")
	assert.Equal(t, svc.ModuleAddress()+"::MoveMentBoard::join_board", p.Function)
}

func argsJSON(t *testing.T, p aptos.EntryFunctionPayload) string {
	t.Helper()
	out, err := json.Marshal(p.Arguments)
	require.NoError(t, err)
	return string(out)
}

func TestPayloadsEncodeLocally(t *testing.T) {
	svc := New(&fakeNode{})
	payloads := []aptos.EntryFunctionPayload{
		svc.CreateProfilePayload("alice", "a@b.c", "user", "bio"),
		svc.CreateBoardPayload("n", "d", "https://img", 1),
		svc.JoinBoardPayload("0xb0"),
		svc.SubmitTaskProofPayload("0xb0", "2", "https://proof"),
		svc.AddReviewerPayload("0xb0", "2", "0xaa"),
	}
	for _, p := range payloads {
		_, err := p.TransactionPayload()
		assert.NoError(t, err, p.Function)
	}

	_, err := svc.CancelTaskPayload("0xb0", "not-a-number").TransactionPayload()
	assert.ErrorIs(t, err, aptos.ErrInvalidArgument)
}

func TestCreateBoardPayload(t *testing.T) {
	p := New(&fakeNode{}).CreateBoardPayload("n", "d", "https://img", 250000000)
	assert.Equal(t, aptos.EntryFunctionPayloadType, p.Type)
	assert.Equal(t, boardFn(constants.CreateBoard), p.Function)
	assert.Equal(t, []string{constants.CoinMove}, p.TypeArguments)
	assert.JSONEq(t, `["n","d","https://img","250000000"]`, argsJSON(t, p))
}

func TestCreateProfilePayload(t *testing.T) {
	p := New(&fakeNode{}).CreateProfilePayload("alice", "a@b.c", "user", "bio")
	assert.Equal(t, profileFn(constants.CreateUserProfile), p.Function)
	assert.Empty(t, p.TypeArguments)
	assert.JSONEq(t, `["alice","a@b.c","user","bio"]`, argsJSON(t, p))
}

func TestCreateTaskPayloadNormalizesBoardID(t *testing.T) {
	svc := New(&fakeNode{})
	p, err := svc.CreateTaskPayload(CreateTaskParams{
		BoardID: "0xAB", Name: "t", Description: "d", Deadline: 10, MaxCompletions: 3, Reward: 5, Config: "{}", AllowSelfCheck: true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `["0xab","t","d","10","3","5","{}",true]`, argsJSON(t, p))

	_, err = svc.CreateTaskPayload(CreateTaskParams{BoardID: "not-hex"})
	assert.Error(t, err)
}

func TestReviewSubmissionPayload(t *testing.T) {
	svc := New(&fakeNode{})
	p, err := svc.ReviewSubmissionPayload("0xb0", "1", "0xAA", constants.SubmissionRejected, "nope")
	require.NoError(t, err)
	assert.Equal(t, []string{constants.CoinMove}, p.TypeArguments)
	assert.JSONEq(t, `["0xb0","1","0xaa",0,"nope"]`, argsJSON(t, p))

	_, err = svc.ReviewSubmissionPayload("0xb0", "1", "0xAA", constants.SubmissionStatus(7), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestWriteConfirmsAndRecords(t *testing.T) {
	node := &fakeNode{tx: &aptos.Transaction{Hash: "0xabc", Sender: "0xA", Version: 42, Success: true, VMStatus: "Executed successfully"}}
	rec := &memRecorder{}
	svc := New(node, WithRecorder(rec))
	w := &fakeWallet{address: "0xA"}

	res, err := svc.JoinBoard(context.Background(), w, "0xb0")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", res.Hash)
	assert.Equal(t, uint64(42), res.Version)
	assert.True(t, res.Success)
	assert.Equal(t, boardFn(constants.JoinBoard), w.payload.Function)
	assert.Equal(t, "0xabc", node.waitedOn)

	require.Len(t, rec.records, 1)
	assert.True(t, rec.records[0].Success)
	assert.Equal(t, "0xa", rec.records[0].Sender)
	assert.Equal(t, boardFn(constants.JoinBoard), rec.records[0].Function)
}

func TestWriteFailureIsReturned(t *testing.T) {
	failed := &aptos.Transaction{Hash: "0xabc", Sender: "0xA", Success: false, VMStatus: "Move abort: EALREADY_MEMBER"}
	node := &fakeNode{tx: failed, waitErr: &aptos.TransactionError{Hash: "0xabc", VMStatus: failed.VMStatus}}
	rec := &memRecorder{}
	svc := New(node, WithRecorder(rec))

	res, err := svc.JoinBoard(context.Background(), &fakeWallet{address: "0xA"}, "0xb0")
	assert.ErrorIs(t, err, aptos.ErrTransactionFailed)
	require.NotNil(t, res)
	assert.False(t, res.Success)

	require.Len(t, rec.records, 1)
	assert.False(t, rec.records[0].Success)
	assert.NotEmpty(t, rec.records[0].Error)
}

func TestWriteSignRejected(t *testing.T) {
	rejected := errors.New("user rejected the request")
	node := &fakeNode{}
	svc := New(node)

	_, err := svc.SubmitTaskProof(context.Background(), &fakeWallet{address: "0xA", err: rejected}, "0xb0", "0", "proof")
	assert.ErrorIs(t, err, rejected)
	assert.Empty(t, node.waitedOn)
}

func TestWriteWithoutWallet(t *testing.T) {
	_, err := New(&fakeNode{}).CreateProfile(context.Background(), nil, "a", "b", "c", "d")
	assert.ErrorIs(t, err, ErrNoWallet)
}

func TestConfirmTransactionTakesFunctionFromPayload(t *testing.T) {
	node := &fakeNode{tx: &aptos.Transaction{
		Hash: "0xfeed", Sender: "0xB", Success: true, Version: 7, Function: "0x1::m::f",
	}}
	svc := New(node, WithWaitTimeout(time.Second))

	res, err := svc.ConfirmTransaction(context.Background(), "0xfeed", "")
	require.NoError(t, err)
	assert.Equal(t, "0x1::m::f", res.Function)
	assert.Equal(t, "0xb", res.Sender)
}

func TestConfirmTransactionRefusesAnotherSender(t *testing.T) {
	node := &fakeNode{tx: &aptos.Transaction{Hash: "0xabc", Sender: "0xb0b", Success: true, Version: 9, Function: "0x1::m::f"}}
	rec := &memRecorder{}
	svc := New(node, WithRecorder(rec))

	res, err := svc.ConfirmTransaction(context.Background(), "0xabc", "0xa11ce")
	assert.ErrorIs(t, err, ErrSenderMismatch)
	assert.Nil(t, res)
	assert.Empty(t, rec.records)

	res, err = svc.ConfirmTransaction(context.Background(), "0xabc", "0x0B0B")
	require.NoError(t, err)
	assert.Equal(t, "0xb0b", res.Sender)
	require.Len(t, rec.records, 1)
	assert.Equal(t, "0xb0b", rec.records[0].Sender)
}

func TestParseMoveAmount(t *testing.T) {
	n, err := ParseMoveAmount("2.5")
	require.NoError(t, err)
	assert.Equal(t, uint64(250000000), n)

	n, err = ParseMoveAmount("0.00000001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	for _, bad := range []string{"", "abc", "-1", "0.000000001", "999999999999999999999"} {
		_, err := ParseMoveAmount(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}
