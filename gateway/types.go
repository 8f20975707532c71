// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import "github.com/bitmark-inc/vaultstore/inode"

// DatastoreDescriptor is signed once at creation and is immutable
// thereafter (spec section 3).
type DatastoreDescriptor struct {
	Type      string   `json:"type"`
	Pubkey    string   `json:"pubkey"`
	Drivers   []string `json:"drivers"`
	DeviceIDs []string `json:"device_ids"`
	RootUUID  string   `json:"root_uuid"`
}

// Peer is one other device's advertised public key for a given app
// (spec section 3, "Mount context").
type Peer struct {
	DeviceID  string `json:"device_id"`
	PublicKey string `json:"public_key"`
}

// MutationRequest is the request body shape shared by every mutation
// endpoint: file put/delete and device-root put (spec section 6,
// "Request body for mutation endpoints"). Sizes of Headers, Payloads,
// and Signatures must all agree; the protocol assigns them a
// positional 1:1 correspondence.
type MutationRequest struct {
	Headers      []string `json:"headers"`
	Payloads     []string `json:"payloads"`
	Signatures   []string `json:"signatures"`
	Tombstones   []string `json:"tombstones"`
	DatastoreStr string   `json:"datastore_str"`
	DatastoreSig string   `json:"datastore_sig"`
}

// CreateRequest is the body of POST /v1/stores (spec section 4.5).
type CreateRequest struct {
	DatastoreBlob  string            `json:"datastore_blob"`
	DatastoreSig   string            `json:"datastore_sig"`
	RootBlob       string            `json:"root_blob"`
	RootSig        string            `json:"root_sig"`
	RootTombstones map[string]string `json:"root_tombstones"`
}

// CreateResponse carries the status and the replica URLs assigned to
// the newly created datastore and root page (spec section 4.5).
type CreateResponse struct {
	Status string              `json:"status"`
	URLs   map[string][]string `json:"urls"`
}

// DeleteRequest is the body of DELETE /v1/stores (spec section 4.5).
type DeleteRequest struct {
	DatastoreTombstones map[string]string `json:"datastore_tombstones"`
	RootTombstones      map[string]string `json:"root_tombstones"`
}

// MountResponse is the resolved context the gateway returns for
// either mount path (spec section 4.5).
type MountResponse struct {
	DatastoreID  string              `json:"datastore_id"`
	BlockchainID string              `json:"blockchain_id"`
	AppName      string              `json:"app_name"`
	Descriptor   DatastoreDescriptor `json:"descriptor"`
	Peers        []Peer              `json:"peers"`
}

// DeviceRootEnvelope is the signed envelope the gateway returns for a
// device-root read (spec section 4.4, "the mutable-data envelope").
type DeviceRootEnvelope struct {
	FqDataID  string `json:"fq_data_id"`
	Data      string `json:"data"`
	Version   int    `json:"version"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}

// PutFileResponse is the response to a file create/update (spec
// section 4.6): the replica URLs the caller must fold into the final
// file entry before advancing the device root.
type PutFileResponse struct {
	Status string   `json:"status"`
	URLs   []string `json:"urls"`
}

// ProfileResponse is the decoded keyfile embedded in a user profile
// (spec section 4.7, "getAppKeys").
type ProfileResponse struct {
	Keys ProfileKeys `json:"keys"`
}

// ProfileKeys maps device id -> app name -> the app's public key.
type ProfileKeys struct {
	Apps map[string]map[string]AppKey `json:"apps"`
}

// AppKey is the per-app key record inside a profile keyfile.
type AppKey struct {
	PublicKey string `json:"public_key"`
}

// ListingResponse is the full device root returned from the listing
// endpoint (spec section 4.6); its shape is exactly inode.DeviceRoot.
type ListingResponse = inode.DeviceRoot
