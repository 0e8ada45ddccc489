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

// Package ethereum provides a watch-only wallet for the ethereum blockchain
// platform. The actual implementation of the functionality is done in the
// internal package and is shared by this package and the ethereumtest
// package.
//
// In addition to the intended functionality, this package is also structured
// to isolate all the imports from the "go-ethereum" project, as it is licensed
// under LGPL. The exported functions in this package use only those types
// defined in the root package of this project, the networks package and the
// std lib.
package ethereum
