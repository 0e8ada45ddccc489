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

// Package config parses and validates the configuration of the wallet
// bridge.
package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/hyperledger-labs/wallet-bridge"
)

// Names of the configuration parameters, as used in the config file, the
// environment and the flags.
const (
	KeyLogLevel         = "loglevel"
	KeyLogFile          = "logfile"
	KeyChainURL         = "chainurl"
	KeyAddress          = "address"
	KeyNetworksFile     = "networksfile"
	KeyChainConnTimeout = "chainconntimeout"
	KeyResponseTimeout  = "responsetimeout"
	KeyPollInterval     = "pollinterval"
	KeyWSAddr           = "wsaddr"
)

// EnvPrefix is the prefix for environment variables that set config values,
// for example WALLETBRIDGE_CHAINURL.
const EnvPrefix = "WALLETBRIDGE"

// Default returns the default configuration. Address has no default value.
func Default() walletbridge.Config {
	return walletbridge.Config{
		LogLevel:         "info",
		ChainURL:         "http://127.0.0.1:8545",
		ChainConnTimeout: 10 * time.Second,
		ResponseTimeout:  10 * time.Second,
		PollInterval:     2 * time.Second,
	}
}

// SetDefaults registers the default values on the viper instance.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyChainURL, d.ChainURL)
	v.SetDefault(KeyAddress, d.Address)
	v.SetDefault(KeyNetworksFile, d.NetworksFile)
	v.SetDefault(KeyChainConnTimeout, d.ChainConnTimeout)
	v.SetDefault(KeyResponseTimeout, d.ResponseTimeout)
	v.SetDefault(KeyPollInterval, d.PollInterval)
	v.SetDefault(KeyWSAddr, d.WSAddr)
}

// ParseConfig parses the configuration from a file. Values not set in the
// file take their defaults.
func ParseConfig(configFile string) (walletbridge.Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(filepath.Clean(configFile))

	if err := v.ReadInConfig(); err != nil {
		return walletbridge.Config{}, errors.Wrap(err, "reading from source")
	}
	return Unmarshal(v)
}

// Unmarshal copies the configuration from the viper instance to a config
// struct.
func Unmarshal(v *viper.Viper) (walletbridge.Config, error) {
	var cfg walletbridge.Config
	return cfg, errors.Wrap(v.Unmarshal(&cfg), "unmarshalling")
}

// Validate checks if the values in the configuration are valid. It returns an
// ErrInvalidConfig API error for the first invalid value.
func Validate(cfg walletbridge.Config) walletbridge.APIError {
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return walletbridge.NewAPIErrInvalidConfig(err, KeyLogLevel, cfg.LogLevel)
	}
	if err := validateURL(cfg.ChainURL); err != nil {
		return walletbridge.NewAPIErrInvalidConfig(err, KeyChainURL, cfg.ChainURL)
	}
	if !common.IsHexAddress(cfg.Address) {
		return walletbridge.NewAPIErrInvalidConfig(errors.New("not an ethereum address"), KeyAddress, cfg.Address)
	}
	durations := []struct {
		name  string
		value time.Duration
	}{
		{KeyChainConnTimeout, cfg.ChainConnTimeout},
		{KeyResponseTimeout, cfg.ResponseTimeout},
		{KeyPollInterval, cfg.PollInterval},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return walletbridge.NewAPIErrInvalidConfig(errors.New("should be positive"), d.name, d.value.String())
		}
	}
	return nil
}

func validateURL(chainURL string) error {
	u, err := url.Parse(chainURL)
	if err != nil {
		return errors.WithStack(err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return errors.Errorf("unsupported scheme %q, should be one of http, https, ws, wss", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host should not be empty")
	}
	return nil
}
