// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vaultfile

import (
	"context"
	"encoding/base64"

	"github.com/bitmark-inc/vaultstore/blob"
	"github.com/bitmark-inc/vaultstore/crypto"
	"github.com/bitmark-inc/vaultstore/datastore"
	"github.com/bitmark-inc/vaultstore/fault"
	"github.com/bitmark-inc/vaultstore/gateway"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/inode"
	"github.com/bitmark-inc/vaultstore/session"
)

// PutFile creates or updates one file and advances this device's root
// page to point at it (spec section 4.6, "putFile"). readers seeds a
// freshly synthesized root in the rare case this device has never
// written to the datastore before; it is ignored once a root already
// exists.
func PutFile(ctx context.Context, client *gatewayhttp.Client, mgr *session.Manager, dctx *datastore.Context, rootUUID, name string, buf []byte, readers []string, nowMs int64) (*inode.FileEntry, error) {
	if nil == dctx.PrivateKey || !dctx.PrivateKey.CanSign() {
		return nil, fault.ErrAuthenticationRequired
	}

	info, err := datastore.FindDeviceRootInfo(ctx, client, mgr, *dctx, rootUUID, readers, nowMs)
	if nil != err {
		return nil, err
	}

	dataHash := crypto.HashDataPayload(buf)
	provisional := inode.FileEntry{
		ProtoVersion: fileEntryProtoVersion,
		URLs:         []string{},
		DataHash:     dataHash,
		Timestamp:    nowMs,
	}
	entryJSON, err := crypto.StableJSONOfStruct(provisional)
	if nil != err {
		return nil, err
	}

	dataID := dctx.DatastoreID + "/" + name
	envelope := blob.MakeDataInfo(dataID, base64.StdEncoding.EncodeToString([]byte(entryJSON)), dctx.DeviceID, nowMs)
	header, err := envelope.Serialize()
	if nil != err {
		return nil, err
	}
	headerSig, err := crypto.SignDataPayload(header, dctx.PrivateKey)
	if nil != err {
		return nil, err
	}

	descriptorJSON, descriptorSig, err := signDescriptor(dctx)
	if nil != err {
		return nil, err
	}

	req := gateway.MutationRequest{
		Headers:      []string{header},
		Payloads:     []string{base64.StdEncoding.EncodeToString(buf)},
		Signatures:   []string{headerSig},
		Tombstones:   []string{},
		DatastoreStr: descriptorJSON,
		DatastoreSig: descriptorSig,
	}

	resp, err := gateway.PutFile(ctx, client, dctx.SessionToken, dctx.DatastoreID, name, req)
	if nil != err {
		return nil, err
	}

	final := inode.FileEntry{
		ProtoVersion: provisional.ProtoVersion,
		URLs:         resp.URLs,
		DataHash:     dataHash,
		Timestamp:    nowMs,
	}

	updatedRoot := inode.DeviceRootInsert(info.Root, name, final, nowMs)
	if err := pushRoot(ctx, client, mgr, dctx, rootUUID, updatedRoot, nowMs); nil != err {
		return nil, err
	}

	return &final, nil
}

// fileEntryProtoVersion matches the wire version inode.DeviceRoot and
// inode.FileEntry carry everywhere else; it is not exported by inode
// since callers outside that package never need to construct a
// FileEntry from scratch except here.
const fileEntryProtoVersion = 2
