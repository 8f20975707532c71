// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultstore/vaultfile"
)

func runURLs(c *cli.Context) error {
	a, err := appFrom(c)
	if nil != err {
		return err
	}

	name := c.String("name")
	if "" == name {
		return ErrMissingName
	}

	dctx, err := mountFromFlags(c, a)
	if nil != err {
		return err
	}

	urls, err := vaultfile.GetFileURLs(context.Background(), a.client, dctx, name)
	if nil != err {
		return err
	}

	return printJson(a.w, urls)
}
