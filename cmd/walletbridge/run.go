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
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/api/ws"
	"github.com/hyperledger-labs/wallet-bridge/bridge"
	"github.com/hyperledger-labs/wallet-bridge/config"
	"github.com/hyperledger-labs/wallet-bridge/log"
)

const (
	configfileF = "configfile" // can only be specified in flag, not via config file.

	// default values for flags in run command.
	defaultConfigFile = "walletbridge.yaml"
)

var (
	// Viper instance for parsing the configuration file. Each flag in the cfgFlags list (that are defined
	// on the run command) will also be attached to the viper instance, so that the values from flags (when
	// specified), override the values defined in the environment and the configuration file.
	cfgViper *viper.Viper

	// Flags corresponding to configuration parameters. Each of this flag can individually override the
	// values in config file. Also, the configuration can be fully specified by using all of these
	// flags, in which case no config file is needed and configFile flag can be unspecified.
	cfgFlags = []string{
		config.KeyLogLevel,
		config.KeyLogFile,
		config.KeyChainURL,
		config.KeyAddress,
		config.KeyNetworksFile,
		config.KeyChainConnTimeout,
		config.KeyResponseTimeout,
		config.KeyPollInterval,
		config.KeyWSAddr,
	}
)

func init() {
	rootCmd.AddCommand(runCmd)
	defineConfigFlags(runCmd.Flags())

	cfgViper = newConfigViper(runCmd.Flags())
}

// defineConfigFlags defines a flag for each configuration parameter.
func defineConfigFlags(fs *pflag.FlagSet) {
	fs.String(configfileF, defaultConfigFile, "config file")

	// All these flags should have zero values for defaults, as their only purpose is allow	the user to
	// explicitly specify the configuration.
	fs.String(config.KeyLogLevel, "", "Log level. Supported levels: debug, info, error")
	fs.String(config.KeyLogFile, "", "Log file path. Use empty string for stdout")
	fs.String(config.KeyChainURL, "", "URL of the blockchain node")
	fs.String(config.KeyAddress, "", "Address of the account to watch as hex string with 0x prefix")
	fs.String(config.KeyNetworksFile, "", "YAML file with additional network definitions")
	fs.Duration(config.KeyChainConnTimeout, time.Duration(0),
		"Connection timeout for connecting to the blockchain node")
	fs.Duration(config.KeyResponseTimeout, time.Duration(0),
		"Max duration to wait for a response from the blockchain node")
	fs.Duration(config.KeyPollInterval, time.Duration(0),
		"Interval at which the connection state of the wallet is checked")
	fs.String(config.KeyWSAddr, "", "Address for serving the websocket display. Empty string disables it")
}

// newConfigViper returns a viper instance with the defaults, the environment
// and the configuration flags in the flag set attached.
func newConfigViper(fs *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Bind the configuration flags to viper instance,
	// values in flags (when specified), takes precedence over those in config file.
	for i := range cfgFlags {
		if err := v.BindPFlag(cfgFlags[i], fs.Lookup(cfgFlags[i])); err != nil {
			panic(err)
		}
	}
	return v
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the wallet bridge",
	Long: `Start the wallet bridge. It connects to the blockchain node, keeps the
display in sync with the connection state and shows the balance of the
configured account. Actions are written to the log and, if wsaddr is set,
pushed to the websocket subscribers.

Configuration can be specified in the config file, via environment variables
(WALLETBRIDGE_<NAME>, also read from a .env file) or via flags. Values in the
flags override that in the environment, which override that in the config file.

If the default config file does not exist, it is ignored. However, if all the
config flags are specified, config file is ignored.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := parseConfig(cmd.Flags(), cfgViper)
	if err != nil {
		return err
	}
	if apiErr := config.Validate(cfg); apiErr != nil {
		return apiErr
	}
	if err = log.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		return errors.WithMessage(err, "initializing logger")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Running wallet bridge with the below config:\n%s\n\n", prettify(cfg))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return runBridge(ctx, cfg)
}

// runBridge runs the bridge until the context is canceled.
func runBridge(ctx context.Context, cfg walletbridge.Config) error {
	displays := bridge.MultiDisplay{bridge.LogDisplay{Logger: log.NewLoggerWithField("display", "log")}}
	if cfg.WSAddr != "" {
		wsDisplay := ws.NewDisplay()
		if err := wsDisplay.ListenAndServe(cfg.WSAddr); err != nil {
			return err
		}
		defer wsDisplay.Close() // nolint: errcheck
		displays = append(displays, wsDisplay)
	}

	b, wallet, err := bridge.NewEthereum(cfg, displays)
	if err != nil {
		return err
	}
	// Errors in reading the balance after connecting are shown on the display.
	if apiErr := b.Connect(ctx); apiErr != nil && !b.State().Connected {
		return apiErr
	}
	b.Run(ctx, cfg.PollInterval)
	return errors.WithMessage(wallet.Disconnect(context.Background()), "disconnecting wallet")
}

func parseConfig(fs *pflag.FlagSet, v *viper.Viper) (walletbridge.Config, error) {
	// Ignore config file, if all config flags are specified.
	if !areAllFlagsSpecified(fs, cfgFlags...) {
		cfgFile, err := fs.GetString(configfileF)
		if err != nil {
			panic("unknown flag configfile\n")
		}
		cfgFile = filepath.Clean(cfgFile)

		// Default config file is optional, the config can be set via environment.
		_, statErr := os.Stat(cfgFile)
		if fs.Changed(configfileF) || statErr == nil {
			v.SetConfigFile(cfgFile)
			v.SetConfigType("yaml")
			if err = v.ReadInConfig(); err != nil {
				return walletbridge.Config{}, errors.WithMessage(err, "reading config file")
			}
		}
	}
	return config.Unmarshal(v)
}
