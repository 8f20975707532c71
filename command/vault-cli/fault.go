// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import "github.com/bitmark-inc/vaultstore/fault"

// common errors - keep in alphabetic order
const (
	ErrMissingConfig = fault.InvalidError("a configuration file is required")
	ErrMissingDevice = fault.InvalidError("a device id is required")
	ErrMissingFile   = fault.InvalidError("a local file is required")
	ErrMissingName   = fault.InvalidError("a datastore path name is required")
	ErrNilAppContext = fault.ProcessError("internal error: nil app context")
)
