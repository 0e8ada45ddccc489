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
	"github.com/abiosoft/ishell"
	"github.com/fatih/color"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/log"
)

var (
	// File that stores history of commands used in the interactive shell.
	// This will be preserved across the multiple runs of walletbridge cli.
	// It will be located in the home directory.
	historyFile = ".walletbridgecli_history"

	// Log file for the bridge and the wallet, so that logs do not mix with
	// the shell output.
	logFile = "walletbridgecli.log"

	// Singleton instance of ishell that is used throughout this program.
	// this will be initialized in main() and be accessed by the display
	// to print the actions.
	sh *ishell.Shell

	// SPrintf style functions that produce colored text.
	redf    = color.New(color.FgRed).SprintfFunc()
	greenf  = color.New(color.FgGreen).SprintfFunc()
	yellowf = color.New(color.FgYellow).SprintfFunc()
)

func main() {
	if err := log.InitLogger("debug", logFile); err != nil {
		panic(err)
	}

	// New shell includes help, clear, exit commands by default.
	sh = ishell.New()

	// Read and write history to $HOME/historyFile
	sh.SetHomeHistoryPath(historyFile)

	sh.AddCmd(configCmd)
	sh.AddCmd(connectCmd)
	sh.AddCmd(disconnectCmd)
	sh.AddCmd(balanceCmd)
	sh.AddCmd(statusCmd)
	sh.AddCmd(formatCmd)

	sh.Printf("Wallet bridge cli application.\n\n")
	sh.Printf("%s\n\n", greenf("Set the chain URL and address using 'config' and connect using 'connect'."))

	sh.Run()
	closeBridge()
}

// printArgCountError is a helper function to print error message that is used across mutiple commands.
func printArgCountError(c *ishell.Context, reqArgCount int) {
	c.Printf("%s\n\n", redf("Got %d arg(s). Want %d.", len(c.Args), reqArgCount))
	c.Printf("Command help:\t%s\n\n", c.Cmd.Help)
}

// printNotConnectedError is a helper function to print error message that is used across mutiple commands.
func printNotConnectedError(c ishell.Actions) {
	c.Printf("%s\n\n", redf("Wallet not connected, connect using 'connect' command."))
}

// apiErrorString formats the error returned by the bridge into pretty strings.
func apiErrorString(e walletbridge.APIError) string {
	return redf("category: %s, code: %d, message: %s, additional info: %+v",
		e.Category(), e.Code(), e.Message(), e.AddInfo())
}
