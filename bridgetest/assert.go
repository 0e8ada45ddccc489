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

package bridgetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/wallet-bridge"
)

// AssertAPIError tests if the passed error contains expected category, code
// and phrases in the message.
func AssertAPIError(t *testing.T, e walletbridge.APIError, categ walletbridge.ErrorCategory,
	code walletbridge.ErrorCode, msgs ...string) {
	t.Helper()

	require.Error(t, e)
	assert.Equal(t, categ, e.Category())
	assert.Equal(t, code, e.Code())
	for _, msg := range msgs {
		assert.Contains(t, e.Message(), msg)
	}
}

// AssertErrInfoInvalidConfig tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoInvalidConfig(t *testing.T, info interface{}, name, value string) {
	t.Helper()

	addInfo, ok := info.(walletbridge.ErrInfoInvalidConfig)
	require.True(t, ok)
	assert.Equal(t, name, addInfo.Name)
	assert.Equal(t, value, addInfo.Value)
}

// AssertErrInfoUnknownCurrency tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoUnknownCurrency(t *testing.T, info interface{}, symbol string) {
	t.Helper()

	addInfo, ok := info.(walletbridge.ErrInfoUnknownCurrency)
	require.True(t, ok)
	assert.Equal(t, symbol, addInfo.Symbol)
}

// AssertErrInfoWalletUnreachable tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoWalletUnreachable(t *testing.T, info interface{}, address, reason string) {
	t.Helper()

	addInfo, ok := info.(walletbridge.ErrInfoWalletUnreachable)
	require.True(t, ok)
	assert.Equal(t, address, addInfo.Address)
	assert.Contains(t, addInfo.Reason, reason)
}

// AssertErrInfoInvalidBalance tests if additional info field is of
// correct type and has expected values.
func AssertErrInfoInvalidBalance(t *testing.T, info interface{}, address, balance string) {
	t.Helper()

	addInfo, ok := info.(walletbridge.ErrInfoInvalidBalance)
	require.True(t, ok)
	assert.Equal(t, address, addInfo.Address)
	assert.Equal(t, balance, addInfo.Balance)
}
