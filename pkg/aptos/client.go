package aptos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/api"
)

const (
	DefaultMaxGasAmount = 200000
	defaultTimeout      = 30 * time.Second
	defaultPollInterval = 500 * time.Millisecond
	defaultWaitTimeout  = 2 * time.Minute
)

// Config describes which fullnode (and optional faucet) the client talks to.
// A zero ChainID is read from the node.
type Config struct {
	NodeURL      string
	FaucetURL    string
	ChainID      uint8
	Timeout      time.Duration
	PollInterval time.Duration
	MaxGasAmount uint64
}

// Client adapts the aptos-go-sdk client to context-aware calls and the
// service's own types. Transactions are built and BCS-encoded locally.
type Client struct {
	inner        *sdk.Client
	nodeURL      string
	faucetURL    string
	pollInterval time.Duration
	maxGasAmount uint64
}

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	poll := cfg.PollInterval
	if poll == 0 {
		poll = defaultPollInterval
	}
	maxGas := cfg.MaxGasAmount
	if maxGas == 0 {
		maxGas = DefaultMaxGasAmount
	}

	nodeURL := strings.TrimRight(cfg.NodeURL, "/")
	faucetURL := strings.TrimRight(cfg.FaucetURL, "/")
	client, err := sdk.NewClient(sdk.NetworkConfig{
		Name:      "custom",
		ChainId:   cfg.ChainID,
		NodeUrl:   nodeURL,
		FaucetUrl: faucetURL,
	})
	if err != nil {
		return nil, fmt.Errorf("fullnode client: %w", err)
	}
	client.SetTimeout(timeout)

	return &Client{
		inner:        client,
		nodeURL:      nodeURL,
		faucetURL:    faucetURL,
		pollInterval: poll,
		maxGasAmount: maxGas,
	}, nil
}

func (c *Client) NodeURL() string { return c.nodeURL }

// call runs a blocking SDK call and gives up when ctx is done. The abandoned
// call is bounded by the HTTP timeout.
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		val, err := fn()
		done <- result{val, err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-done:
		return r.val, nodeError(r.err)
	}
}

// nodeError turns an SDK HTTP failure into an *APIError carrying the node's error body.
func nodeError(err error) error {
	var httpErr *sdk.HttpError
	if !errors.As(err, &httpErr) {
		return err
	}
	apiErr := &APIError{}
	if json.Unmarshal(httpErr.Body, apiErr) != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(httpErr.Body))
	}
	apiErr.StatusCode = httpErr.StatusCode
	return apiErr
}

// View calls a view function and returns its return values as raw JSON.
func (c *Client) View(ctx context.Context, req ViewRequest) ([]json.RawMessage, error) {
	payload, err := req.viewPayload()
	if err != nil {
		return nil, err
	}
	vals, err := call(ctx, func() ([]any, error) { return c.inner.View(payload) })
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, len(vals))
	for i, v := range vals {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("view %s: value %d: %w", req.Function, i, err)
		}
		out[i] = raw
	}
	return out, nil
}

func (c *Client) LedgerInfo(ctx context.Context) (*LedgerInfo, error) {
	info, err := call(ctx, func() (sdk.NodeInfo, error) { return c.inner.Info() })
	if err != nil {
		return nil, err
	}
	return &LedgerInfo{
		ChainID:       info.ChainId,
		LedgerVersion: U64(info.LedgerVersion()),
		BlockHeight:   U64(info.BlockHeight()),
	}, nil
}

// BuildTransaction encodes payload into an unsigned raw transaction for
// sender. Sequence number and gas price come from the node; the signing
// message is always derived locally from the result.
func (c *Client) BuildTransaction(ctx context.Context, sender Address, payload EntryFunctionPayload) (*sdk.RawTransaction, error) {
	txPayload, err := payload.TransactionPayload()
	if err != nil {
		return nil, err
	}
	return call(ctx, func() (*sdk.RawTransaction, error) {
		return c.inner.BuildTransaction(sdk.AccountAddress(sender), txPayload, sdk.MaxGasAmount(c.maxGasAmount))
	})
}

// SubmitTransaction posts a signed transaction in BCS form.
func (c *Client) SubmitTransaction(ctx context.Context, signed *sdk.SignedTransaction) (*PendingTransaction, error) {
	resp, err := call(ctx, func() (*api.SubmitTransactionResponse, error) { return c.inner.SubmitTransaction(signed) })
	if err != nil {
		return nil, err
	}
	sender := Address(signed.Transaction.Sender)
	return &PendingTransaction{Hash: resp.Hash, Sender: sender.String()}, nil
}

// WaitForTransaction polls until the transaction is committed. A committed
// transaction with success=false is returned together with a *TransactionError.
// Bound it with ctx; without a deadline the wait gives up after two minutes.
func (c *Client) WaitForTransaction(ctx context.Context, hash string) (*Transaction, error) {
	limit := defaultWaitTimeout
	if deadline, ok := ctx.Deadline(); ok {
		// Outlive ctx so a timeout surfaces as ctx.Err().
		limit = time.Until(deadline) + time.Second
	}
	userTx, err := call(ctx, func() (*api.UserTransaction, error) {
		return c.inner.WaitForTransaction(hash, sdk.PollPeriod(c.pollInterval), sdk.PollTimeout(limit))
	})
	if err != nil {
		return nil, fmt.Errorf("wait for transaction %s: %w", hash, err)
	}
	tx := fromUserTransaction(userTx)
	if !tx.Success {
		return tx, &TransactionError{Hash: hash, VMStatus: tx.VMStatus}
	}
	return tx, nil
}

func fromUserTransaction(u *api.UserTransaction) *Transaction {
	tx := &Transaction{
		Hash:     u.Hash,
		Version:  U64(u.Version),
		Success:  u.Success,
		VMStatus: u.VmStatus,
	}
	if u.Sender != nil {
		tx.Sender = NormalizeAddress(u.Sender.String())
	}
	if u.Payload != nil {
		if entry, ok := u.Payload.Inner.(*api.TransactionPayloadEntryFunction); ok {
			tx.Function = entry.Function
		}
	}
	return tx
}
