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

package currency_test

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/wallet-bridge/currency"
)

func Test_Format(t *testing.T) {
	tests := []struct {
		name     string
		hex      string
		decimals uint8
		symbol   string
		want     string
	}{
		{"zero", "0x0", 18, "ETH", "0 ETH"},
		{"one_ether", "0xde0b6b3a7640000", 18, "ETH", "1 ETH"},
		{"half_ether", "0x6f05b59d3b20000", 18, "ETH", "0.5 ETH"},
		{"empty", "", 18, "ETH", "0 ETH"},
		{"prefix_only", "0x", 18, "ETH", "0 ETH"},
		{"upper_case_prefix_and_digits", "0XDE0B6B3A7640000", 18, "ETH", "1 ETH"},
		{"without_prefix", "de0b6b3a7640000", 18, "ETH", "1 ETH"},
		{"leading_zeros", "0x000de0b6b3a7640000", 18, "ETH", "1 ETH"},
		{"truncates_not_rounds", "0x1b69b4ba630f315", 18, "ETH", "0.123456 ETH"},
		{"truncates_repeating_digits", "0x1b69b4bacd05f15", 18, "ETH", "0.123456 ETH"},
		{"truncates_just_below_one", "0xde0b6b3a763ffff", 18, "ETH", "0.999999 ETH"},
		{"below_display_precision", "0x1", 18, "ETH", "0 ETH"},
		{"beyond_64_bits", "0x400000000000000000", 18, "ETH", "1180.59162 ETH"},
		{"large_whole_number", "0x42ec210956b3ba0000", 18, "ETH", "1234.5 ETH"},
		{"other_symbol", "0x14d1120d7b160000", 18, "SepoliaETH", "1.5 SepoliaETH"},
		{"six_decimals", "0xf4240", 6, "USDC", "1 USDC"},
		{"zero_decimals", "0xf4240", 0, "TKN", "1000000 TKN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := currency.Format(tt.hex, tt.decimals, tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Format_InvalidHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
	}{
		{"non_hex_digits", "0xzz"},
		{"non_hex_without_prefix", "xyz"},
		{"negative", "-0x1"},
		{"decimal_point", "0x1.5"},
		{"whitespace", "0x 1"},
		{"double_prefix", "0x0x1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := currency.Format(tt.hex, 18, "ETH")
			require.Error(t, err)
			t.Log(err)
			assert.Empty(t, got)
			assert.True(t, errors.Is(err, currency.ErrInvalidHex))
			assert.False(t, errors.Is(err, currency.ErrEmpty))

			formatErr := &currency.FormatError{}
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, currency.InvalidHex, formatErr.Kind)
			assert.Equal(t, tt.hex, formatErr.Input)
		})
	}
}

func Test_ParseHex(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		got, err := currency.ParseHex("0xde0b6b3a7640000")
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1e18), got)
	})
	t.Run("beyond_64_bits", func(t *testing.T) {
		got, err := currency.ParseHex("0x400000000000000000")
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Lsh(big.NewInt(1), 70), got)
	})
	t.Run("err_empty", func(t *testing.T) {
		for _, hex := range []string{"", "0x", "0X"} {
			_, err := currency.ParseHex(hex)
			assert.True(t, errors.Is(err, currency.ErrEmpty), "input %q", hex)
		}
	})
	t.Run("err_invalid", func(t *testing.T) {
		_, err := currency.ParseHex("0xg")
		assert.True(t, errors.Is(err, currency.ErrInvalidHex))
	})
}

func Test_FormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  *big.Int
		output string
	}{
		{"whole_number", big.NewInt(5e18), "5"},
		{"decimal", big.NewInt(5e17), "0.5"},
		{"truncate_instead_of_round_up", big.NewInt(12345678e10), "0.123456"},
		{"truncate", big.NewInt(87654321e10), "0.876543"},
		{"to_zero", big.NewInt(5), "0"},
		{"zero", big.NewInt(0), "0"},
		{"trailing_zeros_in_integer_part", new(big.Int).Mul(big.NewInt(10), big.NewInt(1e18)), "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.output, currency.FormatAmount(tt.input, 18))
		})
	}
}

func Test_Currency_Parse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  *big.Int
		wantErr bool
	}{
		{"happy_1", "0.5", big.NewInt(5e17), false},
		{"happy_2", "0.000000000000000005", big.NewInt(5), false},
		{"happy_3_exp_form", "5e-18", big.NewInt(5), false},
		{"happy_3_exp_form_upper_case", "5E-18", big.NewInt(5), false},

		{"err_too_small_exp_form", "5e-19", nil, true},
		{"err_too_small_exp_form_upper_case", "5E-19", nil, true},
		{"err_too_small", "0.0000000000000000005", nil, true},
		{"err_negative", "-1", nil, true},
		{"invalid_string", "invalid-currency-string", nil, true},
	}
	r := currency.NewRegistry()
	eth, err := r.Register(currency.ETHSymbol, currency.ETHDecimals)
	require.NoError(t, err)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eth.Parse(tt.input)
			if err != nil {
				t.Log(err)
			}
			require.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.output, got)
		})
	}
}

func Test_Currency_Print_PrintHex(t *testing.T) {
	r := currency.NewRegistry()
	sepolia, err := r.Register("SepoliaETH", currency.ETHDecimals)
	require.NoError(t, err)

	assert.Equal(t, "SepoliaETH", sepolia.Symbol())
	assert.Equal(t, currency.ETHDecimals, sepolia.Decimals())
	assert.Equal(t, "0.5", sepolia.Print(big.NewInt(5e17)))

	got, err := sepolia.PrintHex("0x6f05b59d3b20000")
	require.NoError(t, err)
	assert.Equal(t, "0.5 SepoliaETH", got)

	_, err = sepolia.PrintHex("0xzz")
	assert.True(t, errors.Is(err, currency.ErrInvalidHex))
}
