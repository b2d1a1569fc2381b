// Package aptostest runs an in-process fullnode and faucet for tests.
package aptostest

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"h2o-bounty/pkg/aptos"

	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/bcs"
)

// ViewFunc answers POST /v1/view. body is the request as sent by the client.
type ViewFunc func(body []byte) (status int, response string)

// Tx is what the fake reports for a committed transaction.
type Tx struct {
	Sender   string
	Function string
	Success  bool
	VMStatus string
	// Pending keeps the transaction in the mempool forever.
	Pending bool
}

// Fullnode serves the REST routes the service uses. Transactions posted to
// it commit immediately.
type Fullnode struct {
	Server *httptest.Server

	ChainID  uint8
	Sequence uint64
	GasPrice uint64
	// Function is reported for transactions submitted through the fake.
	Function string
	Views    ViewFunc

	mu          sync.Mutex
	txs         map[string]Tx
	submitted   [][]byte
	funded      []string
	encodeCalls int
}

// NewFullnode starts a fake fullnode that is closed with the test.
func NewFullnode(t *testing.T) *Fullnode {
	t.Helper()
	f := &Fullnode{
		ChainID:  4,
		Sequence: 3,
		GasPrice: 100,
		Function: "0x1::aptos_account::transfer",
		txs:      map[string]Tx{},
	}
	f.Server = httptest.NewServer(f)
	t.Cleanup(f.Server.Close)
	return f
}

// Config points a client at the fake.
func (f *Fullnode) Config() aptos.Config {
	return aptos.Config{
		NodeURL:      f.Server.URL + "/v1",
		FaucetURL:    f.Server.URL,
		PollInterval: time.Millisecond,
	}
}

// Commit registers a transaction as committed under hash.
func (f *Fullnode) Commit(hash string, tx Tx) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs[hash] = tx
}

// Submitted returns the signed transactions posted so far, decoded from BCS.
func (f *Fullnode) Submitted(t *testing.T) []*sdk.SignedTransaction {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*sdk.SignedTransaction, len(f.submitted))
	for i, body := range f.submitted {
		signed := &sdk.SignedTransaction{}
		if err := bcs.Deserialize(signed, body); err != nil {
			t.Fatalf("decode submitted transaction %d: %v", i, err)
		}
		out[i] = signed
	}
	return out
}

// Funded lists the addresses the faucet minted to.
func (f *Fullnode) Funded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.funded...)
}

// EncodeCalls counts requests to /transactions/encode_submission.
func (f *Fullnode) EncodeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.encodeCalls
}

func (f *Fullnode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path
	switch {
	case path == "/v1" || path == "/v1/":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"chain_id": f.ChainID, "epoch": "1", "ledger_version": "99", "oldest_ledger_version": "0",
			"ledger_timestamp": "1700000000000000", "node_role": "full_node",
			"oldest_block_height": "0", "block_height": "7", "git_hash": "0",
		})
	case path == "/v1/view":
		body, _ := io.ReadAll(r.Body)
		if f.Views == nil {
			writeError(w, http.StatusBadRequest, "function not found", 0)
			return
		}
		status, resp := f.Views(body)
		w.WriteHeader(status)
		io.WriteString(w, resp)
	case strings.HasPrefix(path, "/v1/accounts/"):
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"sequence_number":    fmt.Sprint(f.Sequence),
			"authentication_key": "0x" + strings.Repeat("0", 64),
		})
	case path == "/v1/estimate_gas_price":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"deprioritized_gas_estimate": f.GasPrice,
			"gas_estimate":               f.GasPrice,
			"prioritized_gas_estimate":   f.GasPrice,
		})
	case path == "/v1/transactions/encode_submission":
		f.mu.Lock()
		f.encodeCalls++
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, "0x"+hex.EncodeToString([]byte("not the transaction you built")))
	case path == "/v1/transactions" && r.Method == http.MethodPost:
		f.submit(w, r)
	case strings.HasPrefix(path, "/v1/transactions/by_hash/"), strings.HasPrefix(path, "/v1/transactions/wait_by_hash/"):
		hash := path[strings.LastIndex(path, "/")+1:]
		f.mu.Lock()
		tx, ok := f.txs[hash]
		f.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, "transaction not found", 0)
			return
		}
		if tx.Pending {
			pending := pendingTransaction(hash, aptos.NormalizeAddress(tx.Sender), tx.Function)
			pending["type"] = "pending_transaction"
			writeJSON(w, http.StatusOK, pending)
			return
		}
		writeJSON(w, http.StatusOK, userTransaction(hash, tx))
	case path == "/mint" || path == "/fund":
		f.mint(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found", 0)
	}
}

func (f *Fullnode) submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) < 32 {
		writeError(w, http.StatusBadRequest, "invalid transaction", 0)
		return
	}
	// The sender is the first field of the raw transaction.
	var sender aptos.Address
	copy(sender[:], body[:32])

	f.mu.Lock()
	f.submitted = append(f.submitted, body)
	hash := fmt.Sprintf("0x%064x", len(f.submitted))
	f.txs[hash] = Tx{Sender: sender.String(), Function: f.Function, Success: true, VMStatus: "Executed successfully"}
	f.mu.Unlock()

	writeJSON(w, http.StatusAccepted, pendingTransaction(hash, sender.String(), f.Function))
}

func (f *Fullnode) mint(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		var body struct {
			Address string `json:"address"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		address = body.Address
	}
	hash := fmt.Sprintf("0x%064x", 0xf00d)
	f.mu.Lock()
	f.funded = append(f.funded, aptos.NormalizeAddress(address))
	f.txs[hash] = Tx{Sender: "0x1", Function: "0x1::aptos_account::transfer", Success: true, VMStatus: "Executed successfully"}
	f.mu.Unlock()
	if r.URL.Path == "/fund" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"txn_hashes": []string{hash}})
		return
	}
	writeJSON(w, http.StatusOK, []string{hash})
}

func pendingTransaction(hash, sender, function string) map[string]interface{} {
	return map[string]interface{}{
		"hash":                      hash,
		"sender":                    sender,
		"sequence_number":           "3",
		"max_gas_amount":            "200000",
		"gas_unit_price":            "100",
		"expiration_timestamp_secs": "1700000000",
		"payload":                   entryPayload(function),
		"signature":                 signature(),
	}
}

func userTransaction(hash string, tx Tx) map[string]interface{} {
	out := pendingTransaction(hash, aptos.NormalizeAddress(tx.Sender), tx.Function)
	out["type"] = "user_transaction"
	out["version"] = "100"
	out["state_change_hash"] = fmt.Sprintf("0x%064x", 1)
	out["event_root_hash"] = fmt.Sprintf("0x%064x", 2)
	out["state_checkpoint_hash"] = nil
	out["accumulator_root_hash"] = fmt.Sprintf("0x%064x", 3)
	out["gas_used"] = "10"
	out["success"] = tx.Success
	out["vm_status"] = tx.VMStatus
	out["changes"] = []interface{}{}
	out["events"] = []interface{}{}
	out["timestamp"] = "1700000000000000"
	return out
}

func entryPayload(function string) map[string]interface{} {
	return map[string]interface{}{
		"type":           aptos.EntryFunctionPayloadType,
		"function":       function,
		"type_arguments": []string{},
		"arguments":      []interface{}{},
	}
}

func signature() map[string]interface{} {
	return map[string]interface{}{
		"type":       "ed25519_signature",
		"public_key": "0x" + strings.Repeat("11", 32),
		"signature":  "0x" + strings.Repeat("22", 64),
	}
}

// Calls reports whether a view request body names function.
func Calls(body []byte, function string) bool {
	return bytes.Contains(body, []byte(function))
}

// HasAddress reports whether a view request body carries address as an
// argument, in either its BCS or its JSON form.
func HasAddress(body []byte, address string) bool {
	addr, err := aptos.ParseAddress(address)
	if err != nil {
		return false
	}
	return bytes.Contains(body, addr[:]) || bytes.Contains(body, []byte(`"`+address+`"`))
}

// ViewError is the body the node sends when a view function fails.
func ViewError(message string, vmErrorCode uint64) string {
	body, _ := json.Marshal(map[string]interface{}{
		"message":       message,
		"error_code":    "invalid_input",
		"vm_error_code": vmErrorCode,
	})
	return string(body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, vmErrorCode uint64) {
	w.WriteHeader(status)
	io.WriteString(w, ViewError(message, vmErrorCode))
}
