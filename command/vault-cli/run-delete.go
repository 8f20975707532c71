// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultstore/vaultfile"
)

func runDelete(c *cli.Context) error {
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

	var readers []string
	if "" != c.String("readers") {
		readers = strings.Split(c.String("readers"), ",")
	}

	return vaultfile.DeleteFile(context.Background(), a.client, a.mgr, dctx, dctx.Descriptor.RootUUID, name, readers, nowMillis())
}
