// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vaultfile

import (
	"context"

	"github.com/bitmark-inc/vaultstore/blob"
	"github.com/bitmark-inc/vaultstore/datastore"
	"github.com/bitmark-inc/vaultstore/fault"
	"github.com/bitmark-inc/vaultstore/gateway"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/inode"
	"github.com/bitmark-inc/vaultstore/session"
)

// DeleteFile retracts name with a tombstone signed for every device
// sharing this datastore, so each reader's own root eventually learns
// the file is gone, then mirrors the retraction into this device's
// root page (spec section 4.6, "deleteFile"). Returns
// fault.ErrNotFoundFile if name does not currently exist.
func DeleteFile(ctx context.Context, client *gatewayhttp.Client, mgr *session.Manager, dctx *datastore.Context, rootUUID, name string, readers []string, nowMs int64) error {
	if nil == dctx.PrivateKey || !dctx.PrivateKey.CanSign() {
		return fault.ErrAuthenticationRequired
	}

	info, err := datastore.FindDeviceRootInfo(ctx, client, mgr, *dctx, rootUUID, readers, nowMs)
	if nil != err {
		return err
	}
	if !inode.Exists(info.Root, name) {
		return fault.ErrNotFoundFile
	}

	deviceIDs := allDeviceIDs(dctx)
	dataID := dctx.DatastoreID + "/" + name
	unsigned := blob.MakeDataTombstones(deviceIDs, dataID, nowMs)

	signed := make([]string, 0, len(deviceIDs))
	var ownTombstone string
	for _, deviceID := range deviceIDs {
		s, err := blob.SignDataTombstone(unsigned[deviceID], dctx.PrivateKey)
		if nil != err {
			return err
		}
		signed = append(signed, s)
		if deviceID == dctx.DeviceID {
			ownTombstone = s
		}
	}

	descriptorJSON, descriptorSig, err := signDescriptor(dctx)
	if nil != err {
		return err
	}

	req := gateway.MutationRequest{
		Headers:      []string{},
		Payloads:     []string{},
		Signatures:   []string{},
		Tombstones:   signed,
		DatastoreStr: descriptorJSON,
		DatastoreSig: descriptorSig,
	}

	if err := gateway.DeleteFile(ctx, client, dctx.SessionToken, dctx.DatastoreID, name, req); nil != err {
		return err
	}

	updatedRoot := inode.DeviceRootRemove(info.Root, name, ownTombstone, nowMs)
	return pushRoot(ctx, client, mgr, dctx, rootUUID, updatedRoot, nowMs)
}
