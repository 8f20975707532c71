// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
)

// printJson renders a command result (a generated key pair, a file
// listing, a mount descriptor) as indented JSON on handle — this is
// ordinary result output, not the canonical wire form vaultstore
// signs, so the stock encoding/json marshaler is the right tool here.
func printJson(handle io.Writer, result interface{}) error {
	b, err := json.MarshalIndent(result, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(handle, "%s\n", b)
	return err
}
