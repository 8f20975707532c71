// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io/ioutil"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultstore/vaultfile"
)

func runPut(c *cli.Context) error {
	a, err := appFrom(c)
	if nil != err {
		return err
	}

	name := c.String("name")
	if "" == name {
		return ErrMissingName
	}
	file := c.String("file")
	if "" == file {
		return ErrMissingFile
	}

	buf, err := ioutil.ReadFile(file)
	if nil != err {
		return err
	}

	dctx, err := mountFromFlags(c, a)
	if nil != err {
		return err
	}

	var readers []string
	if "" != c.String("readers") {
		readers = strings.Split(c.String("readers"), ",")
	}

	entry, err := vaultfile.PutFile(context.Background(), a.client, a.mgr, dctx, dctx.Descriptor.RootUUID, name, buf, readers, nowMillis())
	if nil != err {
		return err
	}

	return printJson(a.w, entry)
}
