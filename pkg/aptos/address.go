package aptos

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAddress is returned when a string is not a valid account address.
var ErrInvalidAddress = errors.New("invalid account address")

// ErrInvalidHex is returned when a value is not an even-length hex string.
var ErrInvalidHex = errors.New("invalid hex string")

// Address is a 32-byte Movement/Aptos account address.
type Address [32]byte

// ParseAddress accepts long and short forms, with or without the 0x prefix.
func ParseAddress(s string) (Address, error) {
	var addr Address
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if h == "" || len(h) > 64 {
		return addr, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}
	raw, err := hex.DecodeString(h)
	if err != nil {
		return addr, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	copy(addr[32-len(raw):], raw)
	return addr, nil
}

// IsSpecial reports whether the address is one of 0x0..0xf.
func (a Address) IsSpecial() bool {
	for i := 0; i < 31; i++ {
		if a[i] != 0 {
			return false
		}
	}
	return a[31] < 0x10
}

// String returns the standard form: short for special addresses, 64 lowercase hex digits otherwise.
func (a Address) String() string {
	if a.IsSpecial() {
		return fmt.Sprintf("0x%x", a[31])
	}
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// NormalizeAddress never fails: unparseable input is lowercased and trimmed.
func NormalizeAddress(s string) string {
	addr, err := ParseAddress(s)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return addr.String()
}

// NormalizeAddresses maps NormalizeAddress over a list. A nil list stays nil.
func NormalizeAddresses(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = NormalizeAddress(s)
	}
	return out
}

// NormalizeHex lowercases a hex string and makes sure it carries the 0x prefix.
func NormalizeHex(s string) (string, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if h == "" || len(h)%2 == 1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	raw, err := hex.DecodeString(h)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return "0x" + hex.EncodeToString(raw), nil
}

// U64 decodes Move u64 values, which the node sends as JSON strings,
// and tolerates plain numbers for the smaller integer types.
type U64 uint64

func (u *U64) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("decode u64 %s: %w", string(b), err)
	}
	*u = U64(v)
	return nil
}

func (u U64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

func (u U64) String() string {
	return strconv.FormatUint(uint64(u), 10)
}
