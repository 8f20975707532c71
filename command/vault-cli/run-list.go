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

func runList(c *cli.Context) error {
	a, err := appFrom(c)
	if nil != err {
		return err
	}

	dctx, err := mountFromFlags(c, a)
	if nil != err {
		return err
	}

	root, err := vaultfile.ListFiles(context.Background(), a.client, dctx)
	if nil != err {
		return err
	}

	return printJson(a.w, root)
}
