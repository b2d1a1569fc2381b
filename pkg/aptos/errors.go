package aptos

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// VM status codes the node reports in vm_error_code.
const (
	VMStatusMissingData = 4008
	VMStatusAborted     = 4016
)

var (
	// ErrTransactionFailed wraps every committed-but-unsuccessful transaction.
	ErrTransactionFailed = errors.New("transaction failed")
	// ErrNoFaucet is returned by FundAccount when no faucet URL is configured.
	ErrNoFaucet = errors.New("faucet url not configured")
)

// APIError is the error body returned by the fullnode.
type APIError struct {
	StatusCode  int    `json:"-"`
	Message     string `json:"message"`
	ErrorCode   string `json:"error_code"`
	VMErrorCode uint64 `json:"vm_error_code"`
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("fullnode %d %s: %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("fullnode %d: %s", e.StatusCode, e.Message)
}

// TransactionError describes a transaction that landed with a non-success VM status.
type TransactionError struct {
	Hash     string
	VMStatus string
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %s", e.Hash, e.VMStatus)
}

func (e *TransactionError) Unwrap() error {
	return ErrTransactionFailed
}

// IsMoveAbort reports whether a view call failed because the Move code aborted
// or the resource it reads does not exist. The board contract signals
// "not found" this way. Other 400s, such as argument deserialization
// failures, are not aborts.
func IsMoveAbort(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		return false
	}
	switch apiErr.VMErrorCode {
	case VMStatusAborted, VMStatusMissingData:
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "abort") || strings.Contains(msg, "missing_data")
}

// IsNotFound reports a 404 from the node, e.g. an unknown account or transaction hash.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
