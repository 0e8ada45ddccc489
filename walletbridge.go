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

package walletbridge

import (
	"context"
	"math/big"
	"time"
)

// Snapshot is the connection state reported by a wallet at one point in
// time. It is a value type and is not modified once captured.
type Snapshot struct {
	Connected   bool
	Address     string
	NetworkName string
}

// DisplayState is the state last rendered on the user interface.
//
// It should be changed only by applying actions (see reconcile.Apply), so
// that it always reflects what the display actually shows.
type DisplayState struct {
	Connected       bool
	ControlsEnabled bool
	Status          string
	Address         string
	Balance         string
	Network         string
}

// DisconnectedState returns the display state shown before a wallet is
// connected.
func DisconnectedState() DisplayState {
	return DisplayState{Status: StatusDisconnected}
}

// ActionKind identifies the type of a display action.
type ActionKind int

// Enumeration of display action kinds.
const (
	ShowStatus ActionKind = iota
	ShowAddress
	ShowBalance
	ShowNetwork
	SetControlsEnabled
	RequestBalanceRefresh
)

// String implements the stringer interface for ActionKind.
func (k ActionKind) String() string {
	return [...]string{
		"ShowStatus",
		"ShowAddress",
		"ShowBalance",
		"ShowNetwork",
		"SetControlsEnabled",
		"RequestBalanceRefresh",
	}[k]
}

// Action describes a single update to the display. Text is used by the Show*
// kinds and Enabled by SetControlsEnabled. RequestBalanceRefresh carries no
// data.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Text    string     `json:"text,omitempty"`
	Enabled bool       `json:"enabled,omitempty"`
}

// Status texts shown for the two connection states.
const (
	StatusConnected    = "Connected"
	StatusDisconnected = "Disconnected"
)

// Balance texts shown when a balance could not be displayed.
const (
	BalanceParseErrorText = "Error parsing balance"
	BalanceFetchErrorText = "Error fetching balance"
)

// NewShowStatus returns a ShowStatus action.
func NewShowStatus(text string) Action { return Action{Kind: ShowStatus, Text: text} }

// NewShowAddress returns a ShowAddress action.
func NewShowAddress(text string) Action { return Action{Kind: ShowAddress, Text: text} }

// NewShowBalance returns a ShowBalance action.
func NewShowBalance(text string) Action { return Action{Kind: ShowBalance, Text: text} }

// NewShowNetwork returns a ShowNetwork action.
func NewShowNetwork(text string) Action { return Action{Kind: ShowNetwork, Text: text} }

// NewSetControlsEnabled returns a SetControlsEnabled action.
func NewSetControlsEnabled(enabled bool) Action {
	return Action{Kind: SetControlsEnabled, Enabled: enabled}
}

// NewRequestBalanceRefresh returns a RequestBalanceRefresh action.
func NewRequestBalanceRefresh() Action { return Action{Kind: RequestBalanceRefresh} }

//go:generate mockery --name Wallet --output ./internal/mocks

// Wallet is the external wallet collaborator. It owns the connection to the
// wallet and the blockchain node; this project only consumes it.
type Wallet interface {
	// Connect establishes the connection and returns the resulting snapshot.
	Connect(ctx context.Context) (Snapshot, error)
	// Disconnect tears down the connection.
	Disconnect(ctx context.Context) error
	// Snapshot returns the current connection state without blocking.
	Snapshot() Snapshot
	// Balance returns the balance of address at the latest block, as the hex
	// string returned by eth_getBalance.
	Balance(ctx context.Context, address string) (string, error)
}

// CurrencyReporter is implemented by wallets that know the symbol of the
// currency used on the network they are connected to.
type CurrencyReporter interface {
	CurrencySymbol() string
}

//go:generate mockery --name Display --output ./internal/mocks

// Display applies display actions to a concrete user interface.
type Display interface {
	Apply(Action) error
}

// Currency represents a parser that can convert between string representation of a currency and
// its equivalent value in base unit represented as a big integer.
type Currency interface {
	Parse(string) (*big.Int, error)
	Print(*big.Int) string
	PrintHex(string) (string, error)
	Symbol() string
	Decimals() uint8
}

// CurrencyRegistry provides an interface to register and retrieve currency
// parsers.
type CurrencyRegistry interface {
	ROCurrencyRegistry
	Register(symbol string, decimals uint8) (Currency, error)
}

// ROCurrencyRegistry provides an interface to retrieve currency parsers.
type ROCurrencyRegistry interface {
	IsRegistered(symbol string) bool
	Currency(symbol string) Currency
	Symbols() []string
}

// Config represents the configuration parameters for the wallet bridge.
type Config struct {
	LogLevel string // LogLevel represents the log level for the bridge and all derived loggers.
	LogFile  string // LogFile represents the file to write logs. Empty string represents stdout.

	ChainURL     string // URL of the blockchain node.
	Address      string // On-chain address of the watched account.
	NetworksFile string // Optional YAML file with additional network definitions.

	ChainConnTimeout time.Duration // Timeout for connecting to blockchain node.
	ResponseTimeout  time.Duration // Timeout to wait for a response from the blockchain node.
	PollInterval     time.Duration // Interval at which the connection state is reconciled.

	WSAddr string // Listen address for the websocket display. Empty disables it.
}
