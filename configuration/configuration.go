// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vaultstore/fault"
)

// basic defaults, mirroring the teacher's defaultLogLevels/defaultLogFile
// literals in command/bitmarkd/configuration.go.
const (
	defaultGatewayScheme = "https"
	defaultGatewayPort   = 443

	defaultLogDirectory = "log"
	defaultLogFile      = "vault-cli.log"
	defaultLogCount     = 10          // number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when the log file exceeds this size
)

var defaultLogLevels = map[string]string{
	logger.DefaultTag: "info",
}

// GatewayConfiguration is the scheme/host/port triple every gatewayhttp.Client
// is built from (spec section 3, "Mount context").
type GatewayConfiguration struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Scheme string `json:"scheme"`
}

// IdentityConfiguration holds this device's signing material. Exactly one
// of Seed or PrivateKeyHex is normally present; PrivateKeyHex is what
// crypto.NewKeyPairFromPrivateKeyHex consumes directly.
type IdentityConfiguration struct {
	Seed          string `json:"seed,omitempty"`
	PrivateKeyHex string `json:"private_key_hex,omitempty"`
}

// Configuration is the full shape vault-cli loads from disk (spec
// section 4.9).
type Configuration struct {
	Gateway  GatewayConfiguration  `json:"gateway"`
	Identity IdentityConfiguration `json:"identity"`
	Logging  logger.Configuration  `json:"logging"`
}

// DefaultConfiguration returns the baseline Configuration a file's own
// settings are merged on top of, mirroring the starting literal in the
// teacher's GetConfiguration before readConfigurationFile overlays it.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Gateway: GatewayConfiguration{
			Scheme: defaultGatewayScheme,
			Port:   defaultGatewayPort,
		},
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}
}

// Parse reads fileName as JSON and decodes it on top of
// DefaultConfiguration (spec section 4.9). The gateway host is the one
// field this client cannot sensibly default; its absence is reported
// as fault.ErrRequiredHostPort, the same sentinel vault-cli's setup
// command returns for a missing --connect host.
func Parse(fileName string) (*Configuration, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	raw, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	config := DefaultConfiguration()
	if err := json.Unmarshal(raw, config); nil != err {
		return nil, err
	}

	if "" == config.Gateway.Host {
		return nil, fault.ErrRequiredHostPort
	}

	return config, nil
}

// Save writes config to fileName as indented JSON, for the "setup"
// command to persist a freshly generated identity (mirrors
// bitmark-cli's own configuration.Save).
func Save(fileName string, config *Configuration) error {
	raw, err := json.MarshalIndent(config, "", "    ")
	if nil != err {
		return err
	}
	return ioutil.WriteFile(fileName, raw, 0600)
}
