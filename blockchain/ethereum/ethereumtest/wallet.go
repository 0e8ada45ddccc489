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

package ethereumtest

import (
	"math/big"
	"math/rand"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/params"

	"github.com/hyperledger-labs/wallet-bridge"
)

// Timeouts used for connecting to the test node and waiting for responses.
const (
	ChainConnTimeout = 5 * time.Second
	ResponseTimeout  = 5 * time.Second
)

// NewRandomAddress returns a random ethereum address in checksum encoding.
func NewRandomAddress(rng *rand.Rand) string {
	var addr common.Address
	rng.Read(addr[:]) // nolint: gosec
	return addr.Hex()
}

// NewConfig returns a config for a wallet that watches address on the node.
func NewConfig(n *Node, address string) walletbridge.Config {
	return walletbridge.Config{
		LogLevel:         "debug",
		ChainURL:         n.URL(),
		Address:          address,
		ChainConnTimeout: ChainConnTimeout,
		ResponseTimeout:  ResponseTimeout,
		PollInterval:     100 * time.Millisecond,
	}
}

// HexWei returns the hex encoding of the given number of ether in wei.
func HexWei(ether int64) string {
	wei := new(big.Int).Mul(big.NewInt(ether), big.NewInt(params.Ether))
	return hexutil.EncodeBig(wei)
}
