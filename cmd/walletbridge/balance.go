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
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/blockchain/ethereum"
	"github.com/hyperledger-labs/wallet-bridge/bridge"
	"github.com/hyperledger-labs/wallet-bridge/config"
)

// Viper instance for the balance command. It is configured the same way as
// the one for run command.
var balanceCfgViper *viper.Viper

func init() {
	rootCmd.AddCommand(balanceCmd)
	defineConfigFlags(balanceCmd.Flags())

	balanceCfgViper = newConfigViper(balanceCmd.Flags())
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the balance of an account",
	Long: `Connect to the blockchain node, print the balance of the account and exit.
The balance is printed in the currency of the network the node is connected to.

If address is not specified, the address in the configuration is used.
Configuration is parsed the same way as for the run command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: balanceFn,
}

func balanceFn(cmd *cobra.Command, args []string) error {
	cfg, err := parseConfig(cmd.Flags(), balanceCfgViper)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Address = args[0]
	}
	if apiErr := config.Validate(cfg); apiErr != nil {
		return apiErr
	}
	formatted, err := fetchBalance(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatted)
	return nil
}

// fetchBalance reads the balance of the configured address and formats it in
// the currency of the network.
func fetchBalance(ctx context.Context, cfg walletbridge.Config) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	nets, currencies, err := bridge.InitRegistries(cfg.NetworksFile)
	if err != nil {
		return "", err
	}
	hexBalance, network, err := ethereum.BalanceAt(ctx, cfg, nets)
	if err != nil {
		return "", walletbridge.NewAPIErrWalletUnreachable(err, cfg.Address)
	}
	curr := currencies.Currency(network.Symbol)
	if curr == nil {
		return "", walletbridge.NewAPIErrUnknownCurrency(network.Symbol)
	}
	formatted, err := curr.PrintHex(hexBalance)
	if err != nil {
		return "", walletbridge.NewAPIErrInvalidBalance(errors.WithStack(err), cfg.Address, hexBalance)
	}
	return fmt.Sprintf("%s (%s)", formatted, network.Name), nil
}
