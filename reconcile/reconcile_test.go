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

package reconcile_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/reconcile"
)

var (
	address     = "0x8450c0055cB180C7C37A25866132A740b812937B"
	networkName = "Sepolia"

	connected    = walletbridge.Snapshot{Connected: true, Address: address, NetworkName: networkName}
	disconnected = walletbridge.Snapshot{}

	displayedConnected = walletbridge.DisplayState{
		Connected:       true,
		ControlsEnabled: true,
		Status:          walletbridge.StatusConnected,
		Address:         address,
		Balance:         "Balance: 1 SepoliaETH",
		Network:         networkName,
	}
	displayedDisconnected = walletbridge.DisplayState{}
)

func Test_Reconcile(t *testing.T) {
	tests := []struct {
		name      string
		truth     walletbridge.Snapshot
		displayed walletbridge.DisplayState
		want      []walletbridge.Action
	}{
		{
			"connect", connected, displayedDisconnected,
			[]walletbridge.Action{
				{Kind: walletbridge.ShowStatus, Text: "Connected"},
				{Kind: walletbridge.ShowAddress, Text: address},
				{Kind: walletbridge.ShowNetwork, Text: networkName},
				{Kind: walletbridge.SetControlsEnabled, Enabled: true},
				{Kind: walletbridge.RequestBalanceRefresh},
			},
		},
		{
			"disconnect", disconnected, displayedConnected,
			[]walletbridge.Action{
				{Kind: walletbridge.ShowStatus, Text: "Disconnected"},
				{Kind: walletbridge.ShowAddress, Text: ""},
				{Kind: walletbridge.ShowBalance, Text: ""},
				{Kind: walletbridge.ShowNetwork, Text: ""},
				{Kind: walletbridge.SetControlsEnabled, Enabled: false},
			},
		},
		{"already_connected", connected, displayedConnected, nil},
		{"already_disconnected", disconnected, displayedDisconnected, nil},
		{
			// Only the connection flag is compared, a changed address is not a transition.
			"connected_other_address",
			walletbridge.Snapshot{Connected: true, Address: "0xc4bA4815c82727554e4c12A07a139b74c6742322"},
			displayedConnected, nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile.Reconcile(tt.truth, tt.displayed))
		})
	}
}

func Test_Reconcile_Pure(t *testing.T) {
	displayed := displayedDisconnected
	_ = reconcile.Reconcile(connected, displayed)
	assert.Equal(t, displayedDisconnected, displayed)
}

func Test_Apply(t *testing.T) {
	t.Run("connect", func(t *testing.T) {
		got := reconcile.Apply(displayedDisconnected, reconcile.Reconcile(connected, displayedDisconnected)...)
		assert.Equal(t, walletbridge.DisplayState{
			Connected:       true,
			ControlsEnabled: true,
			Status:          walletbridge.StatusConnected,
			Address:         address,
			Network:         networkName,
		}, got)
	})
	t.Run("disconnect", func(t *testing.T) {
		got := reconcile.Apply(displayedConnected, reconcile.Reconcile(disconnected, displayedConnected)...)
		assert.Equal(t, walletbridge.DisplayState{Status: walletbridge.StatusDisconnected}, got)
	})
	t.Run("balance", func(t *testing.T) {
		got := reconcile.Apply(displayedConnected, walletbridge.NewShowBalance("Balance: 2 ETH"))
		assert.Equal(t, "Balance: 2 ETH", got.Balance)
		assert.True(t, got.Connected)
	})
	t.Run("other_status_keeps_connection_flag", func(t *testing.T) {
		got := reconcile.Apply(displayedConnected, walletbridge.NewShowStatus("Connecting"))
		assert.Equal(t, "Connecting", got.Status)
		assert.True(t, got.Connected)
	})
	t.Run("no_actions", func(t *testing.T) {
		assert.Equal(t, displayedConnected, reconcile.Apply(displayedConnected))
	})
}

func Test_Reconcile_FixedPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))
	for i := 0; i < 200; i++ {
		truth := randomSnapshot(rng)
		displayed := randomDisplayState(rng)

		first := reconcile.Reconcile(truth, displayed)
		applied := reconcile.Apply(displayed, first...)
		require.Empty(t, reconcile.Reconcile(truth, applied), "truth: %+v, displayed: %+v", truth, displayed)
		require.Equal(t, truth.Connected, applied.Connected)

		// Further calls remain no-ops.
		require.Empty(t, reconcile.Reconcile(truth, applied))
	}
}

func Test_Reconcile_OneRefreshPerConnect(t *testing.T) {
	displayed := displayedDisconnected
	refreshes := 0
	for _, truth := range []walletbridge.Snapshot{connected, connected, connected, disconnected, connected, connected} {
		actions := reconcile.Reconcile(truth, displayed)
		for _, a := range actions {
			if a.Kind == walletbridge.RequestBalanceRefresh {
				refreshes++
			}
		}
		displayed = reconcile.Apply(displayed, actions...)
	}
	// Two disconnected->connected transitions.
	assert.Equal(t, 2, refreshes)
}

func randomSnapshot(rng *rand.Rand) walletbridge.Snapshot {
	if rng.Intn(2) == 0 {
		return walletbridge.Snapshot{}
	}
	return walletbridge.Snapshot{Connected: true, Address: randomString(rng), NetworkName: randomString(rng)}
}

func randomDisplayState(rng *rand.Rand) walletbridge.DisplayState {
	return walletbridge.DisplayState{
		Connected:       rng.Intn(2) == 0,
		ControlsEnabled: rng.Intn(2) == 0,
		Status:          randomString(rng),
		Address:         randomString(rng),
		Balance:         randomString(rng),
		Network:         randomString(rng),
	}
}

func randomString(rng *rand.Rand) string {
	const chars = "0123456789abcdef"
	b := make([]byte, rng.Intn(8))
	for i := range b {
		b[i] = chars[rng.Intn(len(chars))]
	}
	return string(b)
}
