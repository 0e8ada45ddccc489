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

package ethereum

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/blockchain/ethereum/internal"
	"github.com/hyperledger-labs/wallet-bridge/log"
	"github.com/hyperledger-labs/wallet-bridge/networks"
)

// NewWallet initializes a watch-only wallet for the address in the config,
// that reads data from the blockchain node at cfg.ChainURL.
//
// The connection is not established until Connect is called on the wallet.
// The returned wallet also implements walletbridge.CurrencyReporter.
func NewWallet(cfg walletbridge.Config, nets *networks.Registry) (walletbridge.Wallet, error) {
	return newWallet(cfg, nets)
}

func newWallet(cfg walletbridge.Config, nets *networks.Registry) (*internal.Wallet, error) {
	if !common.IsHexAddress(cfg.Address) {
		return nil, errors.Errorf("invalid ethereum address %q", cfg.Address)
	}
	if nets == nil {
		nets = networks.NewRegistry()
	}
	internal.ForwardLibLogs(log.NewLoggerWithField("lib", "go-ethereum"))
	return &internal.Wallet{
		Logger:          log.NewLoggerWithField("wallet", cfg.Address),
		ChainURL:        cfg.ChainURL,
		Addr:            common.HexToAddress(cfg.Address),
		ConnTimeout:     cfg.ChainConnTimeout,
		ResponseTimeout: cfg.ResponseTimeout,
		Networks:        nets,
	}, nil
}

// BalanceAt connects to the blockchain node, reads the balance of the address
// in the config and disconnects. It returns the raw hex balance and the
// network the node is connected to.
func BalanceAt(ctx context.Context, cfg walletbridge.Config, nets *networks.Registry) (string, networks.Network, error) {
	w, err := newWallet(cfg, nets)
	if err != nil {
		return "", networks.Network{}, err
	}
	if _, err = w.Connect(ctx); err != nil {
		return "", networks.Network{}, err
	}
	defer w.Disconnect(ctx) // nolint: errcheck

	balance, err := w.Balance(ctx, cfg.Address)
	if err != nil {
		return "", networks.Network{}, err
	}
	network, _ := w.Network()
	return balance, network, nil
}
