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

// Package networks keeps the metadata (name, currency symbol and decimals)
// of the ethereum networks identified by their chain ID.
package networks

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/currency"
)

// Network represents the metadata of a network.
type Network struct {
	ChainID  uint64 `yaml:"-"`
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals uint8  `yaml:"decimals"`
}

// Chain IDs of the built-in networks.
const (
	MainnetChainID uint64 = 1
	SepoliaChainID uint64 = 11155111
	HoleskyChainID uint64 = 17000
	GanacheChainID uint64 = 1337
)

func builtIn() map[uint64]Network {
	return map[uint64]Network{
		MainnetChainID: {ChainID: MainnetChainID, Name: "Ethereum Mainnet", Symbol: "ETH", Decimals: 18},
		SepoliaChainID: {ChainID: SepoliaChainID, Name: "Sepolia", Symbol: "SepoliaETH", Decimals: 18},
		HoleskyChainID: {ChainID: HoleskyChainID, Name: "Holesky", Symbol: "HoleskyETH", Decimals: 18},
		GanacheChainID: {ChainID: GanacheChainID, Name: "Ganache", Symbol: "ETH", Decimals: 18},
	}
}

// Registry is a list of known networks indexed by chain ID.
// The methods defined over it are safe for concurrent access.
type Registry struct {
	mutex    sync.RWMutex
	networks map[uint64]Network
}

// NewRegistry returns a registry that contains the built-in networks.
func NewRegistry() *Registry {
	return &Registry{networks: builtIn()}
}

// LoadFile reads network definitions from the given yaml file and adds them to the registry.
// Definitions in the file replace the existing entries for the same chain ID.
//
// The file is a map of chain ID to network. Eg:
//
//	11155111:
//	  name: Sepolia
//	  symbol: SepoliaETH
//	  decimals: 18
func (r *Registry) LoadFile(filePath string) error {
	f, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return errors.Wrap(err, "opening networks file")
	}
	defer f.Close() // nolint: errcheck, gosec  // safe to defer f.Close() for files opened in read mode.

	entries := make(map[uint64]networkEntry)
	decoder := yaml.NewDecoder(f)
	if err = decoder.Decode(&entries); err != nil && err != io.EOF {
		return errors.Wrap(err, "decoding networks file")
	}
	loaded := make(map[uint64]Network, len(entries))
	for chainID, e := range entries {
		if e.Name == "" || e.Symbol == "" || e.Decimals == nil {
			return errors.Errorf("network with chain ID %d: name, symbol and decimals are required", chainID)
		}
		loaded[chainID] = Network{ChainID: chainID, Name: e.Name, Symbol: e.Symbol, Decimals: *e.Decimals}
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	for chainID, n := range loaded {
		r.networks[chainID] = n
	}
	return nil
}

// networkEntry is the format of a network in the networks file.
// Decimals is a pointer, so that a missing value can be told apart from 0.
type networkEntry struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals *uint8 `yaml:"decimals"`
}

// Lookup returns the network for the given chain ID. For unknown chain IDs,
// it returns a network named after the chain ID that uses ETH as currency
// and the returned flag is false.
func (r *Registry) Lookup(chainID uint64) (_ Network, isKnown bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if n, ok := r.networks[chainID]; ok {
		return n, true
	}
	return Network{
		ChainID:  chainID,
		Name:     fmt.Sprintf("Chain %d", chainID),
		Symbol:   currency.ETHSymbol,
		Decimals: currency.ETHDecimals,
	}, false
}

// Networks returns all networks in the registry sorted by chain ID.
func (r *Registry) Networks() []Network {
	r.mutex.RLock()
	list := make([]Network, 0, len(r.networks))
	for _, n := range r.networks {
		list = append(list, n)
	}
	r.mutex.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].ChainID < list[j].ChainID })
	return list
}

// RegisterCurrencies registers the currency of each network in the
// currency registry. Networks sharing a symbol must use the same decimals.
func (r *Registry) RegisterCurrencies(currencies walletbridge.CurrencyRegistry) error {
	for _, n := range r.Networks() {
		if c := currencies.Currency(n.Symbol); c != nil {
			if c.Decimals() != n.Decimals {
				return errors.Errorf("currency %s registered with %d decimals, network %s uses %d",
					n.Symbol, c.Decimals(), n.Name, n.Decimals)
			}
			continue
		}
		if _, err := currencies.Register(n.Symbol, n.Decimals); err != nil {
			return errors.WithMessage(err, "registering currency for network "+n.Name)
		}
	}
	return nil
}
