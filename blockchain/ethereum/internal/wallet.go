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

package internal

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/log"
	"github.com/hyperledger-labs/wallet-bridge/networks"
)

// latestBlock is the block parameter for reading the most recent state.
const latestBlock = "latest"

// Wallet is a watch-only ethereum wallet for a single account. It reads
// data from the blockchain node using the JSON-RPC API and never signs.
//
// The methods defined over it are safe for concurrent access.
type Wallet struct {
	log.Logger

	// ChainURL is the URL of the blockchain node.
	ChainURL string
	// Addr is the address of the watched account.
	Addr common.Address
	// ConnTimeout is the max duration to wait for connecting to the node.
	ConnTimeout time.Duration
	// ResponseTimeout is the max duration to wait for the response to a request.
	ResponseTimeout time.Duration
	// Networks is used for resolving the chain ID reported by the node.
	Networks *networks.Registry

	mtx     sync.RWMutex
	client  *rpc.Client
	network networks.Network
}

// Connect dials the blockchain node and reads the chain ID to identify the
// network. If the wallet is already connected, it returns the current
// snapshot.
func (w *Wallet) Connect(ctx context.Context) (walletbridge.Snapshot, error) {
	if s := w.Snapshot(); s.Connected {
		return s, nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.ConnTimeout)
	defer cancel()
	client, err := rpc.DialContext(ctx, w.ChainURL)
	if err != nil {
		return walletbridge.Snapshot{}, errors.Wrap(err, "connecting to ethereum node at "+w.ChainURL)
	}
	var chainID hexutil.Uint64
	if err = client.CallContext(ctx, &chainID, "eth_chainId"); err != nil {
		client.Close()
		return walletbridge.Snapshot{}, errors.Wrap(err, "reading chain ID from ethereum node at "+w.ChainURL)
	}
	network, isKnown := w.Networks.Lookup(uint64(chainID))
	if !isKnown {
		w.Infof("Unknown chain ID %d, using %s as currency", uint64(chainID), network.Symbol)
	}

	w.mtx.Lock()
	if w.client != nil {
		// Connected concurrently, keep the first connection.
		w.mtx.Unlock()
		client.Close()
		return w.Snapshot(), nil
	}
	w.client = client
	w.network = network
	w.mtx.Unlock()

	w.WithField("network", network.Name).Info("Connected to ethereum node")
	return w.Snapshot(), nil
}

// Disconnect closes the connection to the blockchain node. It is a no-op
// when the wallet is not connected.
func (w *Wallet) Disconnect(_ context.Context) error {
	w.mtx.Lock()
	client := w.client
	w.client = nil
	w.network = networks.Network{}
	w.mtx.Unlock()

	if client != nil {
		client.Close()
		w.Info("Disconnected from ethereum node")
	}
	return nil
}

// Snapshot returns the current connection state.
func (w *Wallet) Snapshot() walletbridge.Snapshot {
	w.mtx.RLock()
	defer w.mtx.RUnlock()
	if w.client == nil {
		return walletbridge.Snapshot{}
	}
	return walletbridge.Snapshot{
		Connected:   true,
		Address:     w.Addr.Hex(),
		NetworkName: w.network.Name,
	}
}

// Network returns the network the wallet is connected to. The returned flag
// is false if the wallet is not connected.
func (w *Wallet) Network() (_ networks.Network, isConnected bool) {
	w.mtx.RLock()
	defer w.mtx.RUnlock()
	return w.network, w.client != nil
}

// CurrencySymbol returns the symbol of the currency used on the connected
// network. It is empty if the wallet is not connected.
func (w *Wallet) CurrencySymbol() string {
	n, _ := w.Network()
	return n.Symbol
}

// Balance reads the balance of the given address at the latest block and
// returns it as the hex string sent by the node.
func (w *Wallet) Balance(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", errors.Errorf("invalid address %q", address)
	}
	w.mtx.RLock()
	client := w.client
	w.mtx.RUnlock()
	if client == nil {
		return "", errors.New("not connected to ethereum node")
	}

	ctx, cancel := context.WithTimeout(ctx, w.ResponseTimeout)
	defer cancel()
	var balance string
	err := client.CallContext(ctx, &balance, "eth_getBalance", common.HexToAddress(address), latestBlock)
	if err != nil {
		return "", errors.Wrap(err, "reading on-chain balance for "+address)
	}
	return balance, nil
}
