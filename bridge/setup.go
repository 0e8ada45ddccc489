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

package bridge

import (
	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/blockchain/ethereum"
	"github.com/hyperledger-labs/wallet-bridge/currency"
	"github.com/hyperledger-labs/wallet-bridge/networks"
)

// InitRegistries initializes a network registry with the built-in networks
// and those in the networks file (if not empty), and a currency registry with
// the currencies of all these networks.
func InitRegistries(networksFile string) (*networks.Registry, *currency.Registry, error) {
	nets := networks.NewRegistry()
	if networksFile != "" {
		if err := nets.LoadFile(networksFile); err != nil {
			return nil, nil, err
		}
	}
	currencies := currency.NewRegistry()
	if err := nets.RegisterCurrencies(currencies); err != nil {
		return nil, nil, err
	}
	return nets, currencies, nil
}

// NewEthereum returns a bridge between a watch-only ethereum wallet for the
// configured address and the display. It also returns the wallet, so that
// the caller can disconnect it when done.
func NewEthereum(cfg walletbridge.Config, display walletbridge.Display) (*Bridge, walletbridge.Wallet, error) {
	nets, currencies, err := InitRegistries(cfg.NetworksFile)
	if err != nil {
		return nil, nil, err
	}
	wallet, err := ethereum.NewWallet(cfg, nets)
	if err != nil {
		return nil, nil, err
	}
	b, apiErr := New(cfg, wallet, display, currencies)
	if apiErr != nil {
		return nil, nil, apiErr
	}
	return b, wallet, nil
}
