package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"h2o-bounty/configs"
	"h2o-bounty/internal/config"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/aptos/aptostest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useFullnode(t *testing.T, views aptostest.ViewFunc) *aptostest.Fullnode {
	t.Helper()
	fake := aptostest.NewFullnode(t)
	fake.Views = views

	var err error
	node, err = aptos.NewClient(fake.Config())
	require.NoError(t, err)
	bounty = config.NewBounty(configs.Config{}, node, nil)
	signer = nil
	t.Cleanup(func() { node, bounty, signer = nil, nil, nil })
	return fake
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBoardCommandPrintsShapedBoard(t *testing.T) {
	useFullnode(t, func(body []byte) (int, string) {
		assert.True(t, aptostest.Calls(body, "get_board_info"))
		assert.True(t, aptostest.HasAddress(body, "0xb0"))
		return http.StatusOK, `[{"creator":"0x1","name":"Docs","description":"d","img_url":"","task_ids":[],
			"reward_type":{"account_address":"0x1","module_name":"aptos_coin","struct_name":"AptosCoin"},
			"total_pledged":"150000000","members":[],"created_at":"2000","closed":false}]`
	})

	out, err := run(t, "board", "0xb0")
	require.NoError(t, err)

	var board map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &board))
	assert.Equal(t, "Docs", board["name"])
	assert.Equal(t, "1.5", board["total_pledged_move"])
	assert.Equal(t, float64(2), board["created_at"])
}

func TestSubmissionCommandPrintsNullWhenAbsent(t *testing.T) {
	useFullnode(t, func(body []byte) (int, string) {
		return http.StatusBadRequest, aptostest.ViewError("Move abort", aptos.VMStatusAborted)
	})

	out, err := run(t, "submission", "0xb0", "0", "0xaa")
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(out))
}

func TestJoinCommandNeedsSigner(t *testing.T) {
	useFullnode(t, func(body []byte) (int, string) {
		t.Error("unexpected view")
		return http.StatusOK, `[]`
	})

	_, err := run(t, "join", "0xb0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no signer")
}

func TestSubmitCommandRejectsEmptyProof(t *testing.T) {
	useFullnode(t, func(body []byte) (int, string) {
		t.Error("unexpected view")
		return http.StatusOK, `[]`
	})

	_, err := run(t, "submit", "0xb0", "0", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proof")
}

func TestFundCommand(t *testing.T) {
	fake := useFullnode(t, nil)

	out, err := run(t, "fund", "0xaa", "2.5")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xaa"}, fake.Funded())

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "0xaa", res["address"])
	assert.Equal(t, float64(250000000), res["octas"])
}
