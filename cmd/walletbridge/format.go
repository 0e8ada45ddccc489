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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperledger-labs/wallet-bridge/currency"
)

const (
	// flag names for format command.
	decimalsF = "decimals"
	symbolF   = "symbol"
)

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().Uint8(decimalsF, currency.ETHDecimals, "Number of decimals of the currency")
	formatCmd.Flags().String(symbolF, currency.ETHSymbol, "Symbol of the currency")
}

var formatCmd = &cobra.Command{
	Use:   "format <hex-amount>",
	Short: "Format an amount in base units given as hex string",
	Long: `Format an amount in base units given as hex string (with or without 0x
prefix) for display. It is shown in whole units with up to 6 decimal places,
truncated toward zero, followed by the currency symbol.`,
	Example: `  walletbridge format 0xde0b6b3a7640000
  walletbridge format 0xf4240 --decimals 6 --symbol USDC`,
	Args: cobra.ExactArgs(1),
	RunE: formatFn,
}

func formatFn(cmd *cobra.Command, args []string) error {
	decimals, err := cmd.Flags().GetUint8(decimalsF)
	if err != nil {
		panic("unknown flag decimals\n")
	}
	symbol, err := cmd.Flags().GetString(symbolF)
	if err != nil {
		panic("unknown flag symbol\n")
	}

	formatted, err := currency.Format(args[0], decimals, symbol)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatted)
	return nil
}
