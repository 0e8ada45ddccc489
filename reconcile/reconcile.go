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

// Package reconcile computes the display updates needed to bring the
// displayed connection state in line with the state reported by a wallet.
//
// The functions here are pure: they return descriptions of display actions
// and leave it to an adapter to apply them to a user interface.
package reconcile

import (
	"github.com/hyperledger-labs/wallet-bridge"
)

// Reconcile compares the connection state reported by the wallet with the
// state currently displayed and returns the actions to apply, in order.
//
// It returns no actions when both states already match, so that calling it
// repeatedly with an unchanged snapshot has no further effect once the
// returned actions have been applied.
func Reconcile(truth walletbridge.Snapshot, displayed walletbridge.DisplayState) []walletbridge.Action {
	switch {
	case truth.Connected && !displayed.Connected:
		return []walletbridge.Action{
			walletbridge.NewShowStatus(walletbridge.StatusConnected),
			walletbridge.NewShowAddress(truth.Address),
			walletbridge.NewShowNetwork(truth.NetworkName),
			walletbridge.NewSetControlsEnabled(true),
			walletbridge.NewRequestBalanceRefresh(),
		}
	case !truth.Connected && displayed.Connected:
		return []walletbridge.Action{
			walletbridge.NewShowStatus(walletbridge.StatusDisconnected),
			walletbridge.NewShowAddress(""),
			walletbridge.NewShowBalance(""),
			walletbridge.NewShowNetwork(""),
			walletbridge.NewSetControlsEnabled(false),
		}
	default:
		return nil
	}
}

// Apply returns the display state that results from applying the actions to
// the given state, in order.
//
// A ShowStatus action with the connected or disconnected status text also
// sets the connection flag of the state. RequestBalanceRefresh does not
// change the state.
func Apply(state walletbridge.DisplayState, actions ...walletbridge.Action) walletbridge.DisplayState {
	for _, a := range actions {
		switch a.Kind {
		case walletbridge.ShowStatus:
			state.Status = a.Text
			switch a.Text {
			case walletbridge.StatusConnected:
				state.Connected = true
			case walletbridge.StatusDisconnected:
				state.Connected = false
			}
		case walletbridge.ShowAddress:
			state.Address = a.Text
		case walletbridge.ShowBalance:
			state.Balance = a.Text
		case walletbridge.ShowNetwork:
			state.Network = a.Text
		case walletbridge.SetControlsEnabled:
			state.ControlsEnabled = a.Enabled
		case walletbridge.RequestBalanceRefresh:
		}
	}
	return state
}
