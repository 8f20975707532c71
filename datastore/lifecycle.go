// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"context"

	"github.com/bitmark-inc/vaultstore/blob"
	"github.com/bitmark-inc/vaultstore/crypto"
	"github.com/bitmark-inc/vaultstore/gateway"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/inode"
	"github.com/bitmark-inc/vaultstore/session"
)

// MakeCreateRequest builds the three byte-exact signed artifacts the
// gateway accepts on POST /v1/stores (spec section 4.5):
// datastore_blob (the signed descriptor), root_blob (the signed empty
// device root), and a signed tombstone per device id for the root's
// own data id.
func MakeCreateRequest(dsType string, priv *crypto.KeyPair, drivers []string, allDeviceIDs []string, rootUUID string, readers []string, nowMs int64) (gateway.CreateRequest, error) {
	descriptor := gateway.DatastoreDescriptor{
		Type:      dsType,
		Pubkey:    priv.PublicKeyHex(),
		Drivers:   drivers,
		DeviceIDs: allDeviceIDs,
		RootUUID:  rootUUID,
	}
	descriptorJSON, err := crypto.StableJSONOfStruct(descriptor)
	if nil != err {
		return gateway.CreateRequest{}, err
	}
	datastoreSig, err := crypto.SignDataPayload(descriptorJSON, priv)
	if nil != err {
		return gateway.CreateRequest{}, err
	}

	datastoreID := priv.DatastoreID()
	emptyRoot := inode.MakeEmptyDeviceRoot(datastoreID, readers, nowMs)
	rootJSON, err := crypto.StableJSONOfStruct(emptyRoot)
	if nil != err {
		return gateway.CreateRequest{}, err
	}
	rootSig, err := crypto.SignDataPayload(rootJSON, priv)
	if nil != err {
		return gateway.CreateRequest{}, err
	}

	rootDataID := inode.RootDataId(datastoreID, rootUUID)
	unsignedTombstones := blob.MakeDataTombstones(allDeviceIDs, rootDataID, nowMs)
	signedTombstones := make(map[string]string, len(unsignedTombstones))
	for deviceID, tombstone := range unsignedTombstones {
		signed, err := blob.SignDataTombstone(tombstone, priv)
		if nil != err {
			return gateway.CreateRequest{}, err
		}
		signedTombstones[deviceID] = signed
	}

	return gateway.CreateRequest{
		DatastoreBlob:  descriptorJSON,
		DatastoreSig:   datastoreSig,
		RootBlob:       rootJSON,
		RootSig:        rootSig,
		RootTombstones: signedTombstones,
	}, nil
}

// Create POSTs the create bundle to the gateway (spec section 4.5).
func Create(ctx context.Context, client *gatewayhttp.Client, sessionToken string, req gateway.CreateRequest, dsPubkey, apiPassword string) (*gateway.CreateResponse, error) {
	return gateway.Create(ctx, client, sessionToken, req, dsPubkey, apiPassword)
}

// MakeDeleteRequest builds the signed tombstones for both the
// datastore descriptor and the root page, one per device id (spec
// section 4.5).
func MakeDeleteRequest(priv *crypto.KeyPair, allDeviceIDs []string, datastoreID, rootUUID string, nowMs int64) (gateway.DeleteRequest, error) {
	rootDataID := inode.RootDataId(datastoreID, rootUUID)

	descriptorTombstones, err := signedTombstonesFor(allDeviceIDs, datastoreID, nowMs, priv)
	if nil != err {
		return gateway.DeleteRequest{}, err
	}
	rootTombstones, err := signedTombstonesFor(allDeviceIDs, rootDataID, nowMs, priv)
	if nil != err {
		return gateway.DeleteRequest{}, err
	}

	return gateway.DeleteRequest{
		DatastoreTombstones: descriptorTombstones,
		RootTombstones:      rootTombstones,
	}, nil
}

func signedTombstonesFor(allDeviceIDs []string, dataID string, nowMs int64, priv *crypto.KeyPair) (map[string]string, error) {
	unsigned := blob.MakeDataTombstones(allDeviceIDs, dataID, nowMs)
	signed := make(map[string]string, len(unsigned))
	for deviceID, tombstone := range unsigned {
		s, err := blob.SignDataTombstone(tombstone, priv)
		if nil != err {
			return nil, err
		}
		signed[deviceID] = s
	}
	return signed, nil
}

// Delete DELETEs a datastore using its signed tombstones (spec section
// 4.5).
func Delete(ctx context.Context, client *gatewayhttp.Client, sessionToken string, req gateway.DeleteRequest) error {
	return gateway.Delete(ctx, client, sessionToken, req)
}

// SetRetry is the external handle for forcing mount to treat a
// datastore as nonexistent until the next successful create — spec
// section 4.5's "datastoreCreateSetRetry".
func SetRetry(mgr *session.Manager, blockchainID, appName string) error {
	return mgr.PartialCreateFailureSet(blockchainID, appName)
}

// ClearRetry clears the partial-create failure flag, as a successful
// create does automatically.
func ClearRetry(mgr *session.Manager, blockchainID, appName string) error {
	return mgr.PartialCreateFailureClear(blockchainID, appName)
}
