// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inode

import "github.com/bitmark-inc/vaultstore/blob"

// protoVersion is the wire version every device root and file entry
// carries (spec section 3); it has never changed and is distinct from
// the mutable-data envelope's own constant version field.
const protoVersion = 2

// leafType marks a device root page as a leaf (spec section 3); no
// other page type exists in this model.
const leafType = 1

// FileEntry is one name's current pointer into replica storage.
type FileEntry struct {
	ProtoVersion int      `json:"proto_version"`
	URLs         []string `json:"urls"`
	DataHash     string   `json:"data_hash"`
	Timestamp    int64    `json:"timestamp"`
}

// DeviceRoot is one device's directory page within a datastore (spec
// section 3). Every transformation in this file returns a fresh clone;
// none mutates its receiver or argument.
type DeviceRoot struct {
	ProtoVersion int                  `json:"proto_version"`
	Type         int                  `json:"type"`
	Owner        string               `json:"owner"`
	Readers      []string             `json:"readers"`
	Timestamp    int64                `json:"timestamp"`
	Files        map[string]FileEntry `json:"files"`
	Tombstones   map[string]string    `json:"tombstones"`
}

// MakeEmptyDeviceRoot builds a fresh page for a device that has never
// written to this datastore (spec section 4.4).
func MakeEmptyDeviceRoot(datastoreID string, readers []string, nowMs int64) DeviceRoot {
	clonedReaders := make([]string, len(readers))
	copy(clonedReaders, readers)
	return DeviceRoot{
		ProtoVersion: protoVersion,
		Type:         leafType,
		Owner:        datastoreID,
		Readers:      clonedReaders,
		Timestamp:    nowMs,
		Files:        map[string]FileEntry{},
		Tombstones:   map[string]string{},
	}
}

// nextTimestamp enforces the monotonic-timestamp invariant (spec
// section 3): every edit sets new = max(now_ms, old+1).
func nextTimestamp(nowMs, oldTimestamp int64) int64 {
	next := oldTimestamp + 1
	if nowMs > next {
		return nowMs
	}
	return next
}

// DeviceRootInsert returns a clone of root with files[name] set to
// entry and the timestamp advanced (spec section 4.4). name is stored
// under its url-encoded form (spec section 3), so callers always pass
// the raw, human-readable name.
func DeviceRootInsert(root DeviceRoot, name string, entry FileEntry, nowMs int64) DeviceRoot {
	clone := cloneDeviceRoot(root)
	clone.Files[blob.EncodeName(name)] = entry
	clone.Timestamp = nextTimestamp(nowMs, root.Timestamp)
	return clone
}

// DeviceRootRemove returns a clone of root with tombstones[name] set
// to tombstone and the timestamp advanced. It does not delete
// files[name]; readers resolve existence by comparing timestamps via
// Exists (spec section 4.4). name is stored under its url-encoded form,
// matching DeviceRootInsert.
func DeviceRootRemove(root DeviceRoot, name string, tombstone string, nowMs int64) DeviceRoot {
	clone := cloneDeviceRoot(root)
	clone.Tombstones[blob.EncodeName(name)] = tombstone
	clone.Timestamp = nextTimestamp(nowMs, root.Timestamp)
	return clone
}

func cloneDeviceRoot(root DeviceRoot) DeviceRoot {
	readers := make([]string, len(root.Readers))
	copy(readers, root.Readers)

	files := make(map[string]FileEntry, len(root.Files))
	for name, entry := range root.Files {
		files[name] = entry
	}

	tombstones := make(map[string]string, len(root.Tombstones))
	for name, tombstone := range root.Tombstones {
		tombstones[name] = tombstone
	}

	return DeviceRoot{
		ProtoVersion: root.ProtoVersion,
		Type:         root.Type,
		Owner:        root.Owner,
		Readers:      readers,
		Timestamp:    root.Timestamp,
		Files:        files,
		Tombstones:   tombstones,
	}
}
