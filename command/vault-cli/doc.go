// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command vault-cli is a thin command-line harness over the File API
// (datastore mount/create plus vaultfile put/get/delete/list), grounded
// on command/bitmark-cli's own main.go/commands.go structure: one
// run-*.go file per subcommand, a shared *appContext carried through
// cli.Context.App.Metadata, and printJson for output.
package main
