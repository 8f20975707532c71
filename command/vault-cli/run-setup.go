// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultstore/configuration"
	"github.com/bitmark-inc/vaultstore/crypto"
	"github.com/bitmark-inc/vaultstore/fault"
)

// runSetup writes a fresh vault-cli.json at the requested --config
// path, generating a device key pair when --private-key is
// not supplied. It refuses to overwrite an existing file, the same
// caution bitmark-cli's own setup applies to its configuration.
func runSetup(c *cli.Context) error {
	configFile := c.GlobalString("config")
	if "" == configFile {
		return ErrMissingConfig
	}
	if _, err := os.Stat(configFile); nil == err {
		return fault.ExistsError("not overwriting existing configuration: " + configFile)
	}

	host := c.String("connect")
	if "" == host {
		return fault.ErrRequiredHostPort
	}

	privateKeyHex := c.String("private-key")
	var keyPair *crypto.KeyPair
	var err error
	if "" == privateKeyHex {
		keyPair, err = crypto.GenerateKeyPair()
	} else {
		keyPair, err = crypto.NewKeyPairFromPrivateKeyHex(privateKeyHex)
	}
	if nil != err {
		return err
	}

	config := configuration.DefaultConfiguration()
	config.Gateway.Host = host
	config.Gateway.Port = c.Int("port")
	config.Gateway.Scheme = c.String("scheme")
	config.Identity.PrivateKeyHex = keyPair.PrivateKeyHex()

	if err := configuration.Save(configFile, config); nil != err {
		return err
	}

	return printJson(c.App.Writer, generatedKeyPair{
		PrivateKeyHex: keyPair.PrivateKeyHex(),
		PublicKeyHex:  keyPair.PublicKeyHex(),
		DatastoreID:   keyPair.DatastoreID(),
	})
}
