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

// Package bridge connects a wallet to a display. It forwards the user
// actions (connect, disconnect, get balance) to the wallet and keeps the
// display in line with the connection state reported by the wallet.
package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/currency"
	"github.com/hyperledger-labs/wallet-bridge/log"
	"github.com/hyperledger-labs/wallet-bridge/reconcile"
)

// balancePrefix is prepended to the formatted balance on the display.
const balancePrefix = "Balance: "

// Bridge is the controller between a wallet and a display.
//
// User actions and the poll loop run on different goroutines, so all the
// methods defined over it are safe for concurrent access. They are
// serialized, each of them runs to completion before the next one starts.
type Bridge struct {
	log.Logger

	mtx        sync.Mutex
	wallet     walletbridge.Wallet
	display    walletbridge.Display
	currencies walletbridge.ROCurrencyRegistry
	state      walletbridge.DisplayState

	address         string // configured address, used for annotating errors before connection.
	responseTimeout time.Duration
}

// New returns a bridge for the given wallet and display. The display is
// assumed to show the disconnected state initially.
//
// The currencies registry should at least contain the default currency
// (ETH), which is used when the wallet does not report a currency.
func New(cfg walletbridge.Config, wallet walletbridge.Wallet, display walletbridge.Display,
	currencies walletbridge.ROCurrencyRegistry) (*Bridge, walletbridge.APIError) {
	if !currencies.IsRegistered(currency.ETHSymbol) {
		return nil, walletbridge.NewAPIErrUnknownCurrency(currency.ETHSymbol)
	}
	return &Bridge{
		Logger:          log.NewLoggerWithField("bridge", cfg.Address),
		wallet:          wallet,
		display:         display,
		currencies:      currencies,
		state:           walletbridge.DisconnectedState(),
		address:         cfg.Address,
		responseTimeout: cfg.ResponseTimeout,
	}, nil
}

// State returns a copy of the currently displayed state.
func (b *Bridge) State() walletbridge.DisplayState {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.state
}

// Connect requests the wallet to connect and updates the display with the
// resulting state.
func (b *Bridge) Connect(ctx context.Context) walletbridge.APIError {
	b.WithField("method", "Connect").Info("Received request")
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if _, err := b.wallet.Connect(ctx); err != nil {
		apiErr := walletbridge.NewAPIErrWalletUnreachable(err, b.address)
		b.WithFields(walletbridge.APIErrAsMap("Connect", apiErr)).Error(apiErr.Message())
		return apiErr
	}
	return b.sync(ctx)
}

// Disconnect requests the wallet to disconnect and updates the display with
// the resulting state.
func (b *Bridge) Disconnect(ctx context.Context) walletbridge.APIError {
	b.WithField("method", "Disconnect").Info("Received request")
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if err := b.wallet.Disconnect(ctx); err != nil {
		apiErr := walletbridge.NewAPIErrUnknownInternal(errors.WithMessage(err, "disconnecting wallet"))
		b.WithFields(walletbridge.APIErrAsMap("Disconnect", apiErr)).Error(apiErr.Message())
		return apiErr
	}
	return b.sync(ctx)
}

// Sync reads the connection state from the wallet and applies the actions
// needed to bring the display in line with it. When the wallet got connected,
// the balance is refreshed as well.
//
// Calling Sync again without a change in the wallet state has no effect.
func (b *Bridge) Sync(ctx context.Context) walletbridge.APIError {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.sync(ctx)
}

func (b *Bridge) sync(ctx context.Context) walletbridge.APIError {
	actions := reconcile.Reconcile(b.wallet.Snapshot(), b.state)
	var firstErr walletbridge.APIError
	for _, a := range actions {
		var err walletbridge.APIError
		if a.Kind == walletbridge.RequestBalanceRefresh {
			err = b.refreshBalance(ctx)
		} else {
			err = b.apply(a)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RefreshBalance requests the balance of the connected account from the
// wallet and shows it on the display.
//
// If the balance could not be fetched or parsed, a fixed error text is shown
// instead and an error is returned.
func (b *Bridge) RefreshBalance(ctx context.Context) walletbridge.APIError {
	b.WithField("method", "RefreshBalance").Info("Received request")
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if !b.state.Connected {
		apiErr := walletbridge.NewAPIErrWalletNotConnected(errors.New("connect the wallet to get the balance"))
		b.WithFields(walletbridge.APIErrAsMap("RefreshBalance", apiErr)).Error(apiErr.Message())
		return apiErr
	}
	return b.refreshBalance(ctx)
}

func (b *Bridge) refreshBalance(ctx context.Context) walletbridge.APIError {
	address := b.state.Address
	curr, apiErr := b.currency()
	if apiErr != nil {
		b.WithFields(walletbridge.APIErrAsMap("RefreshBalance", apiErr)).Error(apiErr.Message())
		return apiErr
	}

	if b.responseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.responseTimeout)
		defer cancel()
	}
	hexBalance, err := b.wallet.Balance(ctx, address)
	if err != nil {
		apiErr = walletbridge.NewAPIErrWalletUnreachable(err, address)
		b.WithFields(walletbridge.APIErrAsMap("RefreshBalance", apiErr)).Error(apiErr.Message())
		b.apply(walletbridge.NewShowBalance(walletbridge.BalanceFetchErrorText)) // nolint: errcheck
		return apiErr
	}

	formatted, err := curr.PrintHex(hexBalance)
	if err != nil {
		apiErr = walletbridge.NewAPIErrInvalidBalance(err, address, hexBalance)
		b.WithFields(walletbridge.APIErrAsMap("RefreshBalance", apiErr)).Error(apiErr.Message())
		b.apply(walletbridge.NewShowBalance(walletbridge.BalanceParseErrorText)) // nolint: errcheck
		return apiErr
	}
	b.WithField("balance", formatted).Debug("Fetched balance")
	return b.apply(walletbridge.NewShowBalance(balancePrefix + formatted))
}

// currency returns the currency of the network the wallet is connected to,
// or ETH if the wallet does not report it.
func (b *Bridge) currency() (walletbridge.Currency, walletbridge.APIError) {
	symbol := currency.ETHSymbol
	if reporter, ok := b.wallet.(walletbridge.CurrencyReporter); ok && reporter.CurrencySymbol() != "" {
		symbol = reporter.CurrencySymbol()
	}
	if !b.currencies.IsRegistered(symbol) {
		return nil, walletbridge.NewAPIErrUnknownCurrency(symbol)
	}
	return b.currencies.Currency(symbol), nil
}

// apply applies the action to the display. The displayed state is updated
// only if the display accepted the action.
func (b *Bridge) apply(a walletbridge.Action) walletbridge.APIError {
	if err := b.display.Apply(a); err != nil {
		apiErr := walletbridge.NewAPIErrUnknownInternal(errors.WithMessagef(err, "applying %s action", a.Kind))
		b.WithFields(walletbridge.APIErrAsMap("apply", apiErr)).Error(apiErr.Message())
		return apiErr
	}
	b.state = reconcile.Apply(b.state, a)
	return nil
}

// Run calls Sync at every interval until the context is canceled. Errors
// are logged and do not stop the loop.
func (b *Bridge) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	b.Sync(ctx) // nolint: errcheck
	for {
		select {
		case <-ctx.Done():
			b.Debug("Stopped sync loop")
			return
		case <-ticker.C:
			b.Sync(ctx) // nolint: errcheck
		}
	}
}
