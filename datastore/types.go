// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"github.com/bitmark-inc/vaultstore/crypto"
	"github.com/bitmark-inc/vaultstore/gateway"
)

// Context is a resolved, usable mount context: everything a File API
// call needs to build, sign, and submit a request (spec section 3,
// "Mount context").
type Context struct {
	Owner        string
	AppName      string
	BlockchainID string
	DatastoreID  string
	DeviceID     string
	PrivateKey   *crypto.KeyPair
	Peers        []gateway.Peer
	Descriptor   gateway.DatastoreDescriptor
	SessionToken string

	// Created is true only for the call that just created the
	// datastore via MountOrCreate (spec section 4.5).
	Created      bool
	CreationURLs map[string][]string
}

// MountOptions selects one of the two mount modes described in spec
// section 4.5.
type MountOptions struct {
	// Owner is the cache key's first component: the datastore id in
	// single-reader/writer mode, or the blockchain id in multi-reader
	// mode.
	Owner string

	// Single-reader/writer mode.
	DatastoreID string
	DeviceID    string
	DataPubkeys []string

	// Multi-reader mode.
	BlockchainID string
	AppName      string

	// PrivateKeyHex is this device's private key, present only when
	// this device can write.
	PrivateKeyHex string
}
