// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultstore/crypto"
)

type generatedKeyPair struct {
	PrivateKeyHex string `json:"private_key_hex"`
	PublicKeyHex  string `json:"public_key_hex"`
	DatastoreID   string `json:"datastore_id"`
}

// runGenerate draws a fresh device key pair and prints it, without
// touching any configuration file - mirrors bitmark-cli's own
// "generate" command, which likewise never stores its result.
func runGenerate(c *cli.Context) error {
	keyPair, err := crypto.GenerateKeyPair()
	if nil != err {
		return err
	}

	return printJson(c.App.Writer, generatedKeyPair{
		PrivateKeyHex: keyPair.PrivateKeyHex(),
		PublicKeyHex:  keyPair.PublicKeyHex(),
		DatastoreID:   keyPair.DatastoreID(),
	})
}
