// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vaultfile implements the per-file operations of spec
// section 4.6: putFile, deleteFile, getFile, getFileURLs, and
// listFiles, each composing datastore.Context resolution, the §4.7
// device-root discovery it depends on, and the inode/blob
// transformations that keep a device's root page consistent with the
// files actually replicated through the gateway.
//
// See DESIGN.md, section "vaultfile", for the grounding ledger entry.
package vaultfile
