package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"github.com/vitwit/inkcall/types"
)

// ParseConfig parses and validates a Config from JSON. Fields missing from
// data keep their value in base; a nil base starts from the zero Config.
// Unknown fields are rejected.
func ParseConfig(data []byte, base *types.Config) (*types.Config, error) {
	var config types.Config
	if base != nil {
		config = *base
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		return nil, &types.Error{
			Code:    types.ErrInvalidConfig,
			Message: fmt.Sprintf("failed to parse config: %v", err),
		}
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ParseHexInput decodes 0x-prefixed hex. The prefix is optional.
func ParseHexInput(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	if s == "0x" {
		return []byte{}, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, &types.Error{
			Code:    types.ErrInvalidInput,
			Message: fmt.Sprintf("invalid hex input: %v", err),
		}
	}
	return b, nil
}

// ParseAccountID parses a 0x-prefixed 20-byte hex address.
func ParseAccountID(s string) (types.AccountID, error) {
	if !common.IsHexAddress(s) {
		return types.AccountID{}, &types.Error{
			Code:    types.ErrInvalidInput,
			Message: fmt.Sprintf("invalid account id %q", s),
		}
	}
	return common.HexToAddress(s), nil
}

// ParseBalance reads a decimal amount such as "1.5" with the given number of
// fractional digits into the smallest unit.
func ParseBalance(amount string, decimals int32) (types.Balance, error) {
	if amount == "" {
		return 0, &types.Error{Code: types.ErrInvalidInput, Message: "amount cannot be empty"}
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, &types.Error{
			Code:    types.ErrInvalidInput,
			Message: fmt.Sprintf("invalid amount format: %v", err),
		}
	}

	if dec.IsNegative() {
		return 0, &types.Error{Code: types.ErrInvalidInput, Message: "amount cannot be negative"}
	}

	units := dec.Shift(decimals)
	if !units.Equal(units.Truncate(0)) {
		return 0, &types.Error{
			Code:    types.ErrInvalidInput,
			Message: fmt.Sprintf("amount %s has more than %d fractional digits", amount, decimals),
		}
	}
	if units.GreaterThan(decimal.NewFromInt(math.MaxUint32)) {
		return 0, &types.Error{
			Code:    types.ErrInvalidInput,
			Message: fmt.Sprintf("amount %s overflows balance", amount),
		}
	}

	return types.Balance(units.IntPart()), nil
}

// FormatBalance is the inverse of ParseBalance.
func FormatBalance(b types.Balance, decimals int32) string {
	return b.Decimal(decimals).StringFixed(decimals)
}

// NormalizeJSON formats JSON with consistent indentation
func NormalizeJSON(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}
