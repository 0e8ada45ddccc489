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

package main

import (
	"sync"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/config"
)

var (
	// Configuration used when connecting. It can be changed only while the
	// wallet is not connected.
	cfgMtx sync.Mutex
	cfg    = defaultConfig()

	aliceAddr = "0x8450c0055cB180C7C37A25866132A740b812937B"
	bobAddr   = "0xc4bA4815c82727554e4c12A07a139b74c6742322"

	configCmdUsage = "Usage: config [sub-command]"
	configCmd      = &ishell.Cmd{
		Name: "config",
		Help: "Use this command to view or change the configuration used for connecting. " + configCmdUsage,
		Func: configFn,
	}

	configShowCmdUsage = "Usage: config show"
	configShowCmd      = &ishell.Cmd{
		Name: "show",
		Help: "Print the configuration. " + configShowCmdUsage,
		Func: configShowFn,
	}

	configLoadCmdUsage = "Usage: config load [config file]"
	configLoadCmd      = &ishell.Cmd{
		Name: "load",
		Help: "Load the configuration from a yaml file. " + configLoadCmdUsage,
		Completer: func([]string) []string {
			return []string{"walletbridge.yaml"}
		},
		Func: configLoadFn,
	}

	configSetChainURLCmdUsage = "Usage: config set-chain-url [url]"
	configSetChainURLCmd      = &ishell.Cmd{
		Name: "set-chain-url",
		Help: "Set URL of the blockchain node. " + configSetChainURLCmdUsage,
		Completer: func([]string) []string {
			return []string{"ws://127.0.0.1:8545"} // Provide default values as autocompletion.
		},
		Func: configSetChainURLFn,
	}

	configSetAddressCmdUsage = "Usage: config set-address [address]"
	configSetAddressCmd      = &ishell.Cmd{
		Name: "set-address",
		Help: "Set address of the account to watch. " + configSetAddressCmdUsage,
		Completer: func([]string) []string {
			return []string{aliceAddr, bobAddr}
		},
		Func: configSetAddressFn,
	}
)

func init() {
	configCmd.AddCmd(configShowCmd)
	configCmd.AddCmd(configLoadCmd)
	configCmd.AddCmd(configSetChainURLCmd)
	configCmd.AddCmd(configSetAddressCmd)
}

func defaultConfig() walletbridge.Config {
	c := config.Default()
	c.ChainURL = "ws://127.0.0.1:8545"
	c.Address = aliceAddr
	c.PollInterval = time.Second
	return c
}

func currentConfig() walletbridge.Config {
	cfgMtx.Lock()
	defer cfgMtx.Unlock()
	return cfg
}

func configFn(c *ishell.Context) {
	c.Println(c.HelpText())
}

func configShowFn(c *ishell.Context) {
	c.Printf("%s\n\n", prettify(currentConfig()))
}

func configLoadFn(c *ishell.Context) {
	if len(c.Args) != 1 {
		printArgCountError(c, 1)
		return
	}
	newCfg, err := config.ParseConfig(c.Args[0])
	if err != nil {
		c.Printf("%s\n\n", redf("Error loading config: %v.", err))
		return
	}
	updateConfig(c, func(cfg *walletbridge.Config) { *cfg = newCfg })
}

func configSetChainURLFn(c *ishell.Context) {
	if len(c.Args) != 1 {
		printArgCountError(c, 1)
		return
	}
	updateConfig(c, func(cfg *walletbridge.Config) { cfg.ChainURL = c.Args[0] })
}

func configSetAddressFn(c *ishell.Context) {
	if len(c.Args) != 1 {
		printArgCountError(c, 1)
		return
	}
	updateConfig(c, func(cfg *walletbridge.Config) { cfg.Address = c.Args[0] })
}

// updateConfig applies the change to a copy of the configuration and stores
// it if the result is valid.
func updateConfig(c *ishell.Context, change func(*walletbridge.Config)) {
	if isConnected() {
		c.Printf("%s\n\n", redf("Configuration cannot be changed while connected. Disconnect first."))
		return
	}
	cfgMtx.Lock()
	defer cfgMtx.Unlock()

	newCfg := cfg
	change(&newCfg)
	if apiErr := config.Validate(newCfg); apiErr != nil {
		c.Printf("%s\n\n", apiErrorString(apiErr))
		return
	}
	cfg = newCfg
	c.Printf("%s\n\n", greenf("Configuration updated."))
}
