// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultstore/vaultfile"
)

func runGet(c *cli.Context) error {
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

	buf, err := vaultfile.GetFile(context.Background(), a.client, dctx, name)
	if nil != err {
		return err
	}

	output := c.String("output")
	if "" == output {
		_, err := a.w.Write(buf)
		return err
	}
	return ioutil.WriteFile(output, buf, 0644)
}
