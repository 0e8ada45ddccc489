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
	"os"
	"time"

	"github.com/mum4k/termdash"
	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/container"
	"github.com/mum4k/termdash/keyboard"
	"github.com/mum4k/termdash/terminal/tcell"
	"github.com/mum4k/termdash/terminal/terminalapi"
	"github.com/mum4k/termdash/widgets/text"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/bridge"
	"github.com/hyperledger-labs/wallet-bridge/config"
	"github.com/hyperledger-labs/wallet-bridge/log"
)

const (
	terminalMinX = 80
	terminalMinY = 24

	logFile  = "walletbridgetui.log"
	logLevel = "debug"

	rootContainerID = "root"

	defaultChainURL = "ws://127.0.0.1:8545"
	defaultAddress  = "0x8450c0055cB180C7C37A25866132A740b812937B"
)

var (
	// Size of the terminal.
	x, y int

	// Properties of the log container.
	logsHeight        = 8
	logBoxBorderColor = cell.Color(1)
	logBoxTitleColor  = cell.Color(6)

	// Singleton instances set during init and used across the program.
	// Safe for concurrent use.
	logBox *text.Text            // Text box for logging.
	logger log.Logger            // Logger for logging to file.
	errs   = make(chan error, 5) // Channel for functions to send errors to the main event loop.
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Printf("Error parsing flags: %v\n", err)
		os.Exit(1)
	}
	if apiErr := config.Validate(cfg); apiErr != nil {
		fmt.Printf("Invalid configuration: %v\n", apiErr)
		os.Exit(1)
	}
	initLoggers(cfg.LogLevel, cfg.LogFile)

	// Initialize termdash container.
	t, err := tcell.New()
	if err != nil {
		logger.Fatal(errors.Wrap(err, "initializing tcell"))
	}
	defer t.Close()
	// After this point, call only return (not panic/os.Exit),
	// so that t.Close is invoked to return the terminal to sane state.

	if x, y = t.Size().X, t.Size().Y; x < terminalMinX || y < terminalMinY {
		logErrorf("Terminal window size is %d x %d. Should be at least %d x %d", x, y, terminalMinX, terminalMinY)
		return
	}
	logInfof("Terminal window size: %d x %d", x, y)
	c, err := container.New(t, container.ID(rootContainerID))
	if err != nil {
		logError(errors.Wrap(err, "initializing container"))
		return
	}

	// Construct event loop.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	keyboardEvents := make(chan *terminalapi.Keyboard, 5)
	keyboardEventsHandler := func(k *terminalapi.Keyboard) { keyboardEvents <- k }
	errHandler := func(e error) { errs <- e }
	eventLoop := contructEventLoop(keyboardEvents, errs, ctx.Done())

	// Initialize the scene and the bridge behind it.
	s, err := newSceneScreen()
	if err != nil {
		logError(errors.Wrap(err, "initializing scene"))
		return
	}
	b, closeBridge, err := newBridge(cfg, s)
	if err != nil {
		logError(errors.WithMessage(err, "initializing bridge"))
		return
	}
	defer closeBridge()
	s.setCallbacks(ctx, b, cancel)
	if err = renderSceneView(c, s); err != nil {
		logError(errors.WithMessage(err, "rendering scene"))
		return
	}
	go b.Run(ctx, cfg.PollInterval)

	// Run termdash controller.
	controller, err := termdash.NewController(t, c,
		termdash.KeyboardSubscriber(keyboardEventsHandler), termdash.ErrorHandler(errHandler))
	if err != nil {
		logError(errors.Wrap(err, "initializing controller"))
		return
	}
	defer controller.Close()

	eventLoop()
	cancel()
}

// newBridge initializes the bridge behind the scene. The returned function
// disconnects the wallet.
func newBridge(cfg walletbridge.Config, s *sceneScreen) (*bridge.Bridge, func(), error) {
	b, wallet, err := bridge.NewEthereum(cfg, s.display())
	if err != nil {
		return nil, nil, err
	}
	closeBridge := func() {
		if err := wallet.Disconnect(context.Background()); err != nil {
			logError(errors.WithMessage(err, "disconnecting wallet"))
		}
	}
	return b, closeBridge, nil
}

// parseFlags parses the configuration from the flags. If a config file is
// specified, values in it are used as defaults.
func parseFlags(args []string) (walletbridge.Config, error) {
	fs := pflag.NewFlagSet("walletbridgetui", pflag.ContinueOnError)
	configFile := fs.String("configfile", "", "config file. Flags override the values in it")
	chainURL := fs.String(config.KeyChainURL, defaultChainURL, "URL of the blockchain node")
	address := fs.String(config.KeyAddress, defaultAddress, "Address of the account to watch")
	networksFile := fs.String(config.KeyNetworksFile, "", "YAML file with additional network definitions")
	if err := fs.Parse(args); err != nil {
		return walletbridge.Config{}, errors.WithStack(err)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.ParseConfig(*configFile); err != nil {
			return walletbridge.Config{}, err
		}
	}
	if *configFile == "" || fs.Changed(config.KeyChainURL) {
		cfg.ChainURL = *chainURL
	}
	if *configFile == "" || fs.Changed(config.KeyAddress) {
		cfg.Address = *address
	}
	if fs.Changed(config.KeyNetworksFile) {
		cfg.NetworksFile = *networksFile
	}
	// The terminal is used by the scene, so logs always go to a file.
	cfg.LogLevel, cfg.LogFile = logLevel, logFile
	return cfg, nil
}

func initLoggers(logLevel, logFile string) {
	err := log.InitLogger(logLevel, logFile)
	if err != nil {
		panic(err)
	}
	logger = log.NewLogger()

	logBox, err = text.New(text.RollContent(), text.WrapAtWords())
	if err != nil {
		panic(err)
	}
}

func contructEventLoop(keyboardEvents chan *terminalapi.Keyboard, errs chan error, quit <-chan struct{}) func() {
	return func() {
		for {
			select {
			case e := <-errs:
				if e != nil {
					logError(e)
				}

			case k := <-keyboardEvents:
				if k.Key == keyboard.KeyEsc || k.Key == keyboard.KeyCtrlC {
					logErrorf("Received %s. Closing the scene.", k.Key)
					return
				}

			case <-quit:
				logError("User pressed quit button. Closing the scene.")
				time.Sleep(500 * time.Millisecond)
				return
			}
		}
	}
}

// Handy functions for logging to both file and log box.
// These assume the logger and logBox instances are initialized.

func logErrorf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	logger.Error(msg)
	logBox.Write("Error: "+msg+"\n", text.WriteCellOpts(cell.FgColor(cell.ColorRed))) // nolint: errcheck, gosec
}

func logInfof(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	logger.Info(msg)
	logBox.Write(msg + "\n") // nolint: errcheck, gosec
}

func logError(a ...interface{}) {
	msg := fmt.Sprint(a...)
	logger.Error(msg)
	logBox.Write("Error: "+msg+"\n", text.WriteCellOpts(cell.FgColor(cell.ColorRed))) // nolint: errcheck, gosec
}
