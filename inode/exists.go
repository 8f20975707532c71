// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inode

import "github.com/bitmark-inc/vaultstore/blob"

// Exists reports whether name is a live file in root: present in
// files, and either absent from tombstones or tombstoned at or before
// the file entry's own timestamp (spec section 3, "A file exists in a
// device root iff ..."; spec section 9, open question on tombstone-vs-
// file ordering, resolved in favor of the spec's own stated rule). name
// is looked up under its url-encoded form, matching how
// DeviceRootInsert/DeviceRootRemove store it.
func Exists(root DeviceRoot, name string) bool {
	key := blob.EncodeName(name)
	entry, hasFile := root.Files[key]
	if !hasFile {
		return false
	}
	tombstone, hasTombstone := root.Tombstones[key]
	if !hasTombstone {
		return true
	}
	tombstoneTimestamp, _, ok := blob.ParseDataTombstone(tombstone)
	if !ok {
		// a malformed tombstone cannot retract a file
		return true
	}
	return tombstoneTimestamp <= entry.Timestamp
}
