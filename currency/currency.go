// Copyright (c) 2021 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/hyperledger-labs/wallet-bridge
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package currency

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// displayPlaces is the number of fractional digits shown for an amount.
// Digits beyond it are truncated, not rounded.
const displayPlaces = 6

// ErrorKind identifies the reason a hex amount could not be parsed.
type ErrorKind int

// Enumeration of format error kinds.
const (
	Empty ErrorKind = iota
	InvalidHex
)

// String implements the stringer interface for ErrorKind.
func (k ErrorKind) String() string {
	return [...]string{"empty", "invalid hex"}[k]
}

// FormatError is returned when a hex amount cannot be parsed.
//
// Use errors.Is with ErrEmpty or ErrInvalidHex to check for the kind.
type FormatError struct {
	Kind  ErrorKind
	Input string
}

// Sentinel format errors for use with errors.Is.
var (
	ErrEmpty      = &FormatError{Kind: Empty}
	ErrInvalidHex = &FormatError{Kind: InvalidHex}
)

// Error implements error interface.
func (e *FormatError) Error() string {
	if e.Input == "" {
		return e.Kind.String() + " amount"
	}
	return fmt.Sprintf("%s amount %q", e.Kind, e.Input)
}

// Is reports if target is a format error of the same kind.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

// ParseHex parses a non-negative integer in hexadecimal notation with an
// optional 0x or 0X prefix. Values are not limited to 64 bits.
//
// It returns an error of kind Empty if nothing remains after the prefix and
// of kind InvalidHex if any remaining character is not a hex digit.
func ParseHex(hex string) (*big.Int, error) {
	digits := trimHexPrefix(hex)
	if digits == "" {
		return nil, errors.WithStack(&FormatError{Kind: Empty, Input: hex})
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return nil, errors.WithStack(&FormatError{Kind: InvalidHex, Input: hex})
		}
	}
	amount, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, errors.WithStack(&FormatError{Kind: InvalidHex, Input: hex})
	}
	return amount, nil
}

// Format converts a hex amount in base units to a display string in whole
// units, followed by a space and the symbol. Eg: "0xde0b6b3a7640000" with 18
// decimals and symbol ETH is "1 ETH".
//
// An empty amount (with or without prefix) is displayed as zero. Malformed
// amounts return an error of kind InvalidHex and never a number.
func Format(hex string, decimals uint8, symbol string) (string, error) {
	amount, err := ParseHex(hex)
	if errors.Is(err, ErrEmpty) {
		amount = new(big.Int)
	} else if err != nil {
		return "", err
	}
	return FormatAmount(amount, decimals) + " " + symbol, nil
}

// FormatAmount converts an amount in base units to whole units and returns
// its string representation.
//
// The value is truncated to 6 decimal places, trailing zeros and a trailing
// decimal point are removed. Zero is represented as "0".
func FormatAmount(amount *big.Int, decimals uint8) string {
	d := decimal.NewFromBigInt(amount, -int32(decimals)).Truncate(displayPlaces)
	s := strings.TrimRight(d.StringFixed(displayPlaces), "0")
	return strings.TrimSuffix(s, ".")
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// currency implements walletbridge.Currency for a token with given symbol
// and number of decimals.
type currency struct {
	symbol   string
	decimals uint8

	multiplier decimal.Decimal
}

func newCurrency(symbol string, decimals uint8) currency {
	return currency{
		symbol:     symbol,
		decimals:   decimals,
		multiplier: decimal.New(1, int32(decimals)),
	}
}

// Symbol returns the symbol of the currency.
func (c currency) Symbol() string {
	return c.symbol
}

// Decimals returns the number of decimals of the base unit.
func (c currency) Decimals() uint8 {
	return c.decimals
}

// Parse parses the given amount in whole units, converts it to base units and
// returns a big.Int representation of the value.
// It can parse decimal values down to one base unit without loss of accuracy.
func (c currency) Parse(input string) (*big.Int, error) {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return nil, errors.Wrap(err, "invalid decimal string")
	}
	if amount.IsNegative() {
		return nil, errors.New("amount should not be negative")
	}

	amountBaseUnit := amount.Mul(c.multiplier)
	if !amount.IsZero() && amountBaseUnit.LessThan(decimal.NewFromInt(1)) {
		return nil, errors.Errorf("amount is too small, should be at least 1e-%d", c.decimals)
	}
	return amountBaseUnit.BigInt(), nil
}

// Print converts the input in base units to whole units and returns a string
// representation of it. See FormatAmount.
func (c currency) Print(input *big.Int) string {
	return FormatAmount(input, c.decimals)
}

// PrintHex formats a hex amount in base units as whole units followed by the
// currency symbol. See Format.
func (c currency) PrintHex(input string) (string, error) {
	return Format(input, c.decimals, c.symbol)
}
