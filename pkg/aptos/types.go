package aptos

import (
	"fmt"

	sdk "github.com/aptos-labs/aptos-go-sdk"
)

const EntryFunctionPayloadType = "entry_function_payload"

// EntryFunctionPayload is the call descriptor of a state-changing transaction.
// It marshals to the JSON a browser wallet signs; Arguments must be Args for
// the payload to be built locally.
type EntryFunctionPayload struct {
	Type          string        `json:"type"`
	Function      string        `json:"function"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

// NewEntryFunctionPayload builds a payload; arguments are positional.
func NewEntryFunctionPayload(function string, typeArgs []string, args ...interface{}) EntryFunctionPayload {
	if typeArgs == nil {
		typeArgs = []string{}
	}
	if args == nil {
		args = []interface{}{}
	}
	return EntryFunctionPayload{
		Type:          EntryFunctionPayloadType,
		Function:      function,
		TypeArguments: typeArgs,
		Arguments:     args,
	}
}

// TransactionPayload converts the descriptor into the BCS entry function the
// SDK signs.
func (p EntryFunctionPayload) TransactionPayload() (sdk.TransactionPayload, error) {
	addr, module, function, err := splitID(p.Function)
	if err != nil {
		return sdk.TransactionPayload{}, err
	}
	tags, err := typeTags(p.TypeArguments)
	if err != nil {
		return sdk.TransactionPayload{}, err
	}
	args, err := encodeArgs(p.Arguments)
	if err != nil {
		return sdk.TransactionPayload{}, fmt.Errorf("%s: %w", p.Function, err)
	}
	return sdk.TransactionPayload{Payload: &sdk.EntryFunction{
		Module:   sdk.ModuleId{Address: sdk.AccountAddress(addr), Name: module},
		Function: function,
		ArgTypes: tags,
		Args:     args,
	}}, nil
}

// ViewRequest names a view function and its typed arguments.
type ViewRequest struct {
	Function      string        `json:"function"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

func (r ViewRequest) viewPayload() (*sdk.ViewPayload, error) {
	addr, module, function, err := splitID(r.Function)
	if err != nil {
		return nil, err
	}
	tags, err := typeTags(r.TypeArguments)
	if err != nil {
		return nil, err
	}
	args, err := encodeArgs(r.Arguments)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Function, err)
	}
	return &sdk.ViewPayload{
		Module:   sdk.ModuleId{Address: sdk.AccountAddress(addr), Name: module},
		Function: function,
		ArgTypes: tags,
		Args:     args,
	}, nil
}

type LedgerInfo struct {
	ChainID       uint8 `json:"chain_id"`
	LedgerVersion U64   `json:"ledger_version"`
	BlockHeight   U64   `json:"block_height"`
}

type PendingTransaction struct {
	Hash   string `json:"hash"`
	Sender string `json:"sender"`
}

// Transaction is a committed user transaction.
type Transaction struct {
	Hash     string `json:"hash"`
	Sender   string `json:"sender"`
	Function string `json:"function,omitempty"`
	Version  U64    `json:"version"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
}
