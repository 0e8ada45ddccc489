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

// Package ethereumtest provides an in-process ethereum node and wallet
// helpers for testing the components that read data from the blockchain.
package ethereumtest

import (
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

// DefaultChainID is the chain ID reported by a node created with NewNode,
// unless changed using SetChainID.
const DefaultChainID = 1337

// Node is an in-process ethereum node that serves the eth_chainId and
// eth_getBalance methods of the JSON-RPC API over HTTP.
//
// Balances are returned exactly as set, so that malformed values can be
// served as well.
type Node struct {
	mtx        sync.Mutex
	chainID    uint64
	balances   map[common.Address]string
	balanceErr error
	requests   int

	server *httptest.Server
}

// NewNode starts a node that listens on a random local port. The node is
// stopped when the test completes.
func NewNode(t *testing.T) *Node {
	t.Helper()
	n := &Node{
		chainID:  DefaultChainID,
		balances: make(map[common.Address]string),
	}
	rpcServer := rpc.NewServer()
	require.NoError(t, rpcServer.RegisterName("eth", &ethService{node: n}))
	n.server = httptest.NewServer(rpcServer)

	t.Cleanup(func() {
		n.server.Close()
		rpcServer.Stop()
	})
	return n
}

// URL returns the URL for connecting to the node.
func (n *Node) URL() string {
	return n.server.URL
}

// SetChainID sets the chain ID reported by the node.
func (n *Node) SetChainID(chainID uint64) {
	n.mtx.Lock()
	n.chainID = chainID
	n.mtx.Unlock()
}

// SetBalance sets the balance returned for the address. It need not be a
// valid hex string.
func (n *Node) SetBalance(address, balance string) {
	n.mtx.Lock()
	n.balances[common.HexToAddress(address)] = balance
	n.mtx.Unlock()
}

// SetBalanceErr sets the error returned for all balance requests. Pass nil
// to reset it.
func (n *Node) SetBalanceErr(err error) {
	n.mtx.Lock()
	n.balanceErr = err
	n.mtx.Unlock()
}

// BalanceRequests returns the number of balance requests received so far.
func (n *Node) BalanceRequests() int {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	return n.requests
}

// ethService implements the subset of the "eth" namespace used by the wallet.
type ethService struct {
	node *Node
}

// ChainId is served as eth_chainId.
func (s *ethService) ChainId() hexutil.Uint64 { // nolint: golint,stylecheck
	s.node.mtx.Lock()
	defer s.node.mtx.Unlock()
	return hexutil.Uint64(s.node.chainID)
}

// GetBalance is served as eth_getBalance. Accounts without a balance hold
// zero.
func (s *ethService) GetBalance(address common.Address, _ string) (string, error) {
	s.node.mtx.Lock()
	defer s.node.mtx.Unlock()
	s.node.requests++
	if s.node.balanceErr != nil {
		return "", s.node.balanceErr
	}
	balance, ok := s.node.balances[address]
	if !ok {
		return "0x0", nil
	}
	return balance, nil
}
