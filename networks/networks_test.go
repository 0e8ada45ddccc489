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

package networks_test

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/otiai10/copy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/wallet-bridge/currency"
	"github.com/hyperledger-labs/wallet-bridge/networks"
)

var testdataDir = "../testdata/networks"

// copyTestdata copies the networks test data into a temp dir, so that the
// tests can modify the files.
func copyTestdata(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, copy.Copy(testdataDir, dir))
	return dir
}

func Test_Registry_Lookup_BuiltIn(t *testing.T) {
	r := networks.NewRegistry()
	tests := []struct {
		name    string
		chainID uint64
		want    networks.Network
	}{
		{"mainnet", networks.MainnetChainID, networks.Network{
			ChainID: 1, Name: "Ethereum Mainnet", Symbol: "ETH", Decimals: 18,
		}},
		{"sepolia", networks.SepoliaChainID, networks.Network{
			ChainID: 11155111, Name: "Sepolia", Symbol: "SepoliaETH", Decimals: 18,
		}},
		{"holesky", networks.HoleskyChainID, networks.Network{
			ChainID: 17000, Name: "Holesky", Symbol: "HoleskyETH", Decimals: 18,
		}},
		{"ganache", networks.GanacheChainID, networks.Network{
			ChainID: 1337, Name: "Ganache", Symbol: "ETH", Decimals: 18,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isKnown := r.Lookup(tt.chainID)
			assert.True(t, isKnown)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Registry_Lookup_Unknown(t *testing.T) {
	got, isKnown := networks.NewRegistry().Lookup(99)
	assert.False(t, isKnown)
	assert.Equal(t, networks.Network{ChainID: 99, Name: "Chain 99", Symbol: "ETH", Decimals: 18}, got)
}

func Test_Registry_LoadFile(t *testing.T) {
	dir := copyTestdata(t)

	t.Run("happy", func(t *testing.T) {
		r := networks.NewRegistry()
		require.NoError(t, r.LoadFile(filepath.Join(dir, "valid.yaml")))

		sepolia, isKnown := r.Lookup(networks.SepoliaChainID)
		assert.True(t, isKnown)
		assert.Equal(t, "Sepolia Testnet", sepolia.Name)

		anvil, isKnown := r.Lookup(31337)
		assert.True(t, isKnown)
		assert.Equal(t, networks.Network{ChainID: 31337, Name: "Anvil", Symbol: "AnvilETH", Decimals: 18}, anvil)

		assert.Len(t, r.Networks(), 5)
	})
	t.Run("happy_empty_file", func(t *testing.T) {
		emptyFile := filepath.Join(dir, "empty.yaml")
		require.NoError(t, ioutil.WriteFile(emptyFile, nil, 0o600))

		r := networks.NewRegistry()
		require.NoError(t, r.LoadFile(emptyFile))
		assert.Len(t, r.Networks(), 4)
	})
	t.Run("err_missing_symbol", func(t *testing.T) {
		r := networks.NewRegistry()
		err := r.LoadFile(filepath.Join(dir, "invalid.yaml"))
		require.Error(t, err)
		t.Log(err)
		_, isKnown := r.Lookup(31337)
		assert.False(t, isKnown, "registry should not be modified on error")
	})
	t.Run("err_missing_decimals", func(t *testing.T) {
		r := networks.NewRegistry()
		err := r.LoadFile(filepath.Join(dir, "missing_decimals.yaml"))
		require.Error(t, err)
		t.Log(err)
		_, isKnown := r.Lookup(137)
		assert.False(t, isKnown, "registry should not be modified on error")

		currencies := currency.NewRegistry()
		require.NoError(t, r.RegisterCurrencies(currencies))
		assert.Nil(t, currencies.Currency("POL"))
	})
	t.Run("err_malformed", func(t *testing.T) {
		err := networks.NewRegistry().LoadFile(filepath.Join(dir, "malformed.yaml"))
		require.Error(t, err)
		t.Log(err)
	})
	t.Run("err_missing_file", func(t *testing.T) {
		err := networks.NewRegistry().LoadFile(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		t.Log(err)
	})
}

func Test_Registry_Networks_Sorted(t *testing.T) {
	list := networks.NewRegistry().Networks()
	require.Len(t, list, 4)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ChainID, list[i].ChainID)
	}
}

func Test_Registry_RegisterCurrencies(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		currencies := currency.NewRegistry()
		require.NoError(t, networks.NewRegistry().RegisterCurrencies(currencies))
		assert.Equal(t, []string{"ETH", "HoleskyETH", "SepoliaETH"}, currencies.Symbols())

		// Registering again is a no-op.
		require.NoError(t, networks.NewRegistry().RegisterCurrencies(currencies))
		assert.Len(t, currencies.Symbols(), 3)
	})
	t.Run("err_conflicting_decimals", func(t *testing.T) {
		currencies := currency.NewRegistry()
		_, err := currencies.Register("ETH", 6)
		require.NoError(t, err)

		err = networks.NewRegistry().RegisterCurrencies(currencies)
		require.Error(t, err)
		t.Log(err)
	})
}
