// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vaultfile

import (
	"context"

	"github.com/bitmark-inc/vaultstore/crypto"
	"github.com/bitmark-inc/vaultstore/datastore"
	"github.com/bitmark-inc/vaultstore/gateway"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/inode"
	"github.com/bitmark-inc/vaultstore/session"
)

// pushRoot serializes, signs, and uploads this device's updated root
// page, then records the new version as observed so a later call by
// the same device does not mistake its own write for an unexpected
// absence (spec section 4.7).
func pushRoot(ctx context.Context, client *gatewayhttp.Client, mgr *session.Manager, dctx *datastore.Context, rootUUID string, root inode.DeviceRoot, nowMs int64) error {
	envelope, err := inode.DeviceRootSerialize(dctx.DeviceID, dctx.DatastoreID, rootUUID, root, nowMs)
	if nil != err {
		return err
	}
	header, err := envelope.Serialize()
	if nil != err {
		return err
	}
	headerSig, err := crypto.SignDataPayload(header, dctx.PrivateKey)
	if nil != err {
		return err
	}

	descriptorJSON, descriptorSig, err := signDescriptor(dctx)
	if nil != err {
		return err
	}

	req := gateway.MutationRequest{
		Headers:      []string{header},
		Payloads:     []string{envelope.Data},
		Signatures:   []string{headerSig},
		Tombstones:   []string{},
		DatastoreStr: descriptorJSON,
		DatastoreSig: descriptorSig,
	}

	if err := gateway.PutDeviceRoot(ctx, client, dctx.SessionToken, dctx.DatastoreID, false, req); nil != err {
		return err
	}

	if nil == mgr {
		return nil
	}
	return mgr.ObservedRootMark(dctx.DatastoreID, rootUUID, dctx.DeviceID)
}

// signDescriptor canonically serializes and signs the immutable
// datastore descriptor, the accompanying proof every mutation request
// carries (spec section 4.5).
func signDescriptor(dctx *datastore.Context) (descriptorJSON, descriptorSig string, err error) {
	descriptorJSON, err = crypto.StableJSONOfStruct(dctx.Descriptor)
	if nil != err {
		return "", "", err
	}
	descriptorSig, err = crypto.SignDataPayload(descriptorJSON, dctx.PrivateKey)
	if nil != err {
		return "", "", err
	}
	return descriptorJSON, descriptorSig, nil
}

// allDeviceIDs lists this device followed by every peer device
// advertising the same app, the full set whose roots must eventually
// observe a tombstone (spec section 4.6, "deleteFile").
func allDeviceIDs(dctx *datastore.Context) []string {
	ids := make([]string, 0, len(dctx.Peers)+1)
	ids = append(ids, dctx.DeviceID)
	for _, peer := range dctx.Peers {
		ids = append(ids, peer.DeviceID)
	}
	return ids
}
