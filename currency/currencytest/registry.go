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

// Package currencytest provides currency registries for use in tests.
package currencytest

import (
	"github.com/hyperledger-labs/wallet-bridge/currency"
)

// Registry returns a new currency registry with ETH and the given additional
// symbols (each with 18 decimals) registered.
//
// This is intended for use in tests of the bridge, because in actual
// implementation, the registry is initialized from the network registry.
func Registry(symbols ...string) *currency.Registry {
	r := currency.NewRegistry()
	//nolint: errcheck		// Registering currencies on new registry will not fail.
	r.Register(currency.ETHSymbol, currency.ETHDecimals)
	for _, symbol := range symbols {
		r.Register(symbol, currency.ETHDecimals) // nolint: errcheck
	}
	return r
}
