package aptos

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/bcs"
)

var ErrInvalidArgument = errors.New("invalid move argument")

// Arg is a typed Move argument. It marshals to the JSON form a browser wallet
// takes and encodes to the BCS bytes of a locally built transaction.
type Arg interface {
	json.Marshaler
	MarshalArg() ([]byte, error)
}

// String is a Move 0x1::string::String.
type String string

func (s String) MarshalJSON() ([]byte, error) { return json.Marshal(string(s)) }

func (s String) MarshalArg() ([]byte, error) {
	return encode(func(ser *bcs.Serializer) { ser.WriteString(string(s)) })
}

type Bool bool

func (b Bool) MarshalJSON() ([]byte, error) { return json.Marshal(bool(b)) }

func (b Bool) MarshalArg() ([]byte, error) {
	return encode(func(ser *bcs.Serializer) { ser.Bool(bool(b)) })
}

// U8 travels as a JSON number.
type U8 uint8

func (u U8) MarshalJSON() ([]byte, error) { return json.Marshal(uint8(u)) }

func (u U8) MarshalArg() ([]byte, error) {
	return encode(func(ser *bcs.Serializer) { ser.U8(uint8(u)) })
}

func (u U64) MarshalArg() ([]byte, error) {
	return encode(func(ser *bcs.Serializer) { ser.U64(uint64(u)) })
}

// U64String is a u64 still in the decimal form it arrived in, e.g. a task id
// from a URL. It is checked when encoded.
type U64String string

func (u U64String) MarshalJSON() ([]byte, error) { return json.Marshal(string(u)) }

func (u U64String) MarshalArg() ([]byte, error) {
	v, err := strconv.ParseUint(string(u), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: u64 %q", ErrInvalidArgument, string(u))
	}
	return U64(v).MarshalArg()
}

// AddressArg is an account or object address as given by the caller.
type AddressArg string

func (a AddressArg) MarshalJSON() ([]byte, error) { return json.Marshal(string(a)) }

func (a AddressArg) MarshalArg() ([]byte, error) {
	addr, err := ParseAddress(string(a))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	sdkAddr := sdk.AccountAddress(addr)
	return bcs.Serialize(&sdkAddr)
}

func encode(f func(ser *bcs.Serializer)) ([]byte, error) {
	ser := &bcs.Serializer{}
	f(ser)
	if err := ser.Error(); err != nil {
		return nil, err
	}
	return ser.ToBytes(), nil
}

// encodeArgs BCS-encodes positional arguments. Untyped values are rejected.
func encodeArgs(args []interface{}) ([][]byte, error) {
	out := make([][]byte, len(args))
	for i, a := range args {
		arg, ok := a.(Arg)
		if !ok {
			return nil, fmt.Errorf("%w: argument %d has type %T", ErrInvalidArgument, i, a)
		}
		b, err := arg.MarshalArg()
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

// splitID splits "<address>::<module>::<name>".
func splitID(id string) (Address, string, string, error) {
	parts := strings.Split(id, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return Address{}, "", "", fmt.Errorf("%w: identifier %q", ErrInvalidArgument, id)
	}
	addr, err := ParseAddress(parts[0])
	if err != nil {
		return Address{}, "", "", fmt.Errorf("%w: identifier %q", ErrInvalidArgument, id)
	}
	return addr, parts[1], parts[2], nil
}

// typeTags parses struct type arguments such as 0x1::aptos_coin::AptosCoin.
// Generic struct arguments are not used by the board modules.
func typeTags(args []string) ([]sdk.TypeTag, error) {
	tags := make([]sdk.TypeTag, len(args))
	for i, s := range args {
		addr, module, name, err := splitID(s)
		if err != nil {
			return nil, err
		}
		tags[i] = sdk.TypeTag{Value: &sdk.StructTag{
			Address:    sdk.AccountAddress(addr),
			Module:     module,
			Name:       name,
			TypeParams: []sdk.TypeTag{},
		}}
	}
	return tags, nil
}
