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

package main

import (
	"context"
	"strconv"
	"sync"

	"github.com/abiosoft/ishell"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/bridge"
	"github.com/hyperledger-labs/wallet-bridge/currency"
)

var (
	// Bridge for the currently connected wallet. It is created on connect
	// using the current configuration and stopped on disconnect.
	bridgeMtx  sync.Mutex
	b          *bridge.Bridge
	stopPoller context.CancelFunc

	connectCmdUsage = "Usage: connect"
	connectCmd      = &ishell.Cmd{
		Name: "connect",
		Help: "Connect the wallet using the current configuration. " + connectCmdUsage,
		Func: connectFn,
	}

	disconnectCmdUsage = "Usage: disconnect"
	disconnectCmd      = &ishell.Cmd{
		Name: "disconnect",
		Help: "Disconnect the wallet. " + disconnectCmdUsage,
		Func: disconnectFn,
	}

	balanceCmdUsage = "Usage: balance"
	balanceCmd      = &ishell.Cmd{
		Name: "balance",
		Help: "Refresh the balance of the connected account. " + balanceCmdUsage,
		Func: balanceFn,
	}

	statusCmdUsage = "Usage: status"
	statusCmd      = &ishell.Cmd{
		Name: "status",
		Help: "Print the displayed state. " + statusCmdUsage,
		Func: statusFn,
	}

	formatCmdUsage = "Usage: format [hex-amount] [decimals] [symbol]"
	formatCmd      = &ishell.Cmd{
		Name: "format",
		Help: "Format an amount in base units given as hex string. Decimals and symbol default to ETH. " +
			formatCmdUsage,
		Func: formatFn,
	}
)

// shellDisplay prints the display actions to the shell.
type shellDisplay struct{}

func (shellDisplay) Apply(a walletbridge.Action) error {
	switch a.Kind {
	case walletbridge.ShowStatus:
		if a.Text == walletbridge.StatusConnected {
			sh.Printf("%s\n", greenf("Status: %s", a.Text))
		} else {
			sh.Printf("%s\n", redf("Status: %s", a.Text))
		}
	case walletbridge.ShowAddress:
		sh.Printf("Address: %s\n", a.Text)
	case walletbridge.ShowNetwork:
		sh.Printf("Network: %s\n", a.Text)
	case walletbridge.ShowBalance:
		if a.Text != "" {
			sh.Printf("%s\n", yellowf("%s", a.Text))
		}
	case walletbridge.SetControlsEnabled, walletbridge.RequestBalanceRefresh:
	}
	return nil
}

func isConnected() bool {
	bridgeMtx.Lock()
	defer bridgeMtx.Unlock()
	return b != nil && b.State().Connected
}

func connectFn(c *ishell.Context) {
	bridgeMtx.Lock()
	defer bridgeMtx.Unlock()
	if b != nil && b.State().Connected {
		c.Printf("%s\n\n", redf("Already connected."))
		return
	}

	if b == nil {
		newB, _, err := bridge.NewEthereum(currentConfig(), shellDisplay{})
		if err != nil {
			c.Printf("%s\n\n", redf("Error initializing bridge: %v.", err))
			return
		}
		var ctx context.Context
		ctx, stopPoller = context.WithCancel(context.Background())
		b = newB
		go b.Run(ctx, currentConfig().PollInterval)
	}
	isConnected, apiErr := connectBridge(context.Background(), b)
	if !isConnected {
		// Drop the bridge, so that a changed config is used on next connect.
		stopPoller()
		b = nil
	}
	if apiErr != nil {
		c.Printf("%s\n\n", apiErrorString(apiErr))
		return
	}
	c.Println()
}

// connectBridge connects the wallet of the bridge. An error in refreshing
// the balance leaves the wallet connected. If the wallet is not displayed as
// connected afterwards, it is disconnected and isConnected is false.
func connectBridge(ctx context.Context, br *bridge.Bridge) (isConnected bool, _ walletbridge.APIError) {
	apiErr := br.Connect(ctx)
	if br.State().Connected {
		return true, apiErr
	}
	br.Disconnect(ctx) // nolint: errcheck
	return false, apiErr
}

func disconnectFn(c *ishell.Context) {
	bridgeMtx.Lock()
	defer bridgeMtx.Unlock()
	if b == nil {
		printNotConnectedError(c)
		return
	}
	if apiErr := b.Disconnect(context.Background()); apiErr != nil {
		c.Printf("%s\n\n", apiErrorString(apiErr))
		return
	}
	stopPoller()
	b = nil
	c.Println()
}

func balanceFn(c *ishell.Context) {
	bridgeMtx.Lock()
	defer bridgeMtx.Unlock()
	if b == nil {
		printNotConnectedError(c)
		return
	}
	if apiErr := b.RefreshBalance(context.Background()); apiErr != nil {
		c.Printf("%s\n\n", apiErrorString(apiErr))
		return
	}
	c.Println()
}

func statusFn(c *ishell.Context) {
	bridgeMtx.Lock()
	defer bridgeMtx.Unlock()
	if b == nil {
		c.Printf("%s\n\n", prettify(walletbridge.DisconnectedState()))
		return
	}
	c.Printf("%s\n\n", prettify(b.State()))
}

func formatFn(c *ishell.Context) {
	if len(c.Args) < 1 || len(c.Args) > 3 {
		printArgCountError(c, 1)
		return
	}
	decimals, symbol := currency.ETHDecimals, currency.ETHSymbol
	if len(c.Args) >= 2 {
		d, err := strconv.ParseUint(c.Args[1], 10, 8)
		if err != nil {
			c.Printf("%s\n\n", redf("Invalid decimals %s: %v.", c.Args[1], err))
			return
		}
		decimals = uint8(d)
	}
	if len(c.Args) == 3 {
		symbol = c.Args[2]
	}
	formatted, err := currency.Format(c.Args[0], decimals, symbol)
	if err != nil {
		c.Printf("%s\n\n", redf("%s", walletbridge.BalanceParseErrorText+": "+err.Error()))
		return
	}
	c.Printf("%s\n\n", greenf("%s", formatted))
}

// closeBridge disconnects the wallet if connected and stops the poller.
func closeBridge() {
	bridgeMtx.Lock()
	defer bridgeMtx.Unlock()
	if b == nil {
		return
	}
	b.Disconnect(context.Background()) // nolint: errcheck
	stopPoller()
	b = nil
}
