// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/vaultstore/fault"
	"github.com/bitmark-inc/vaultstore/gateway"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/inode"
	"github.com/bitmark-inc/vaultstore/session"
)

// DeviceRootInfo is the result of resolving one device's root page
// (spec section 4.7): the page itself, plus whether it was freshly
// synthesized rather than fetched from the gateway.
type DeviceRootInfo struct {
	DeviceID string
	Root     inode.DeviceRoot
	Created  bool
}

// FindDeviceRootInfo implements spec section 4.7's findDeviceRootInfo
// for a single device id: it determines whether dctx's device is
// expected to already own a root page (it created the datastore, or a
// previous version has been observed), fetches the page, and
// synthesizes an empty one in memory when absence was expected.
func FindDeviceRootInfo(ctx context.Context, client *gatewayhttp.Client, mgr *session.Manager, dctx Context, rootUUID string, readers []string, nowMs int64) (DeviceRootInfo, error) {
	expected := false
	if nil != dctx.PrivateKey && dctx.PrivateKey.CanSign() && dctx.PrivateKey.PublicKeyHex() == dctx.Descriptor.Pubkey {
		expected = true
	}
	if !expected && nil != mgr {
		observed, err := mgr.ObservedRootIsSet(dctx.DatastoreID, rootUUID, dctx.DeviceID)
		if nil != err {
			return DeviceRootInfo{}, err
		}
		expected = observed
	}

	envelope, err := gateway.GetDeviceRoot(ctx, client, dctx.SessionToken, dctx.DatastoreID, dctx.DeviceID)
	if fault.IsErrNotFound(err) {
		if expected {
			return DeviceRootInfo{}, err
		}
		return DeviceRootInfo{
			DeviceID: dctx.DeviceID,
			Root:     inode.MakeEmptyDeviceRoot(dctx.DatastoreID, readers, nowMs),
			Created:  true,
		}, nil
	}
	if nil != err {
		return DeviceRootInfo{}, err
	}

	payload, decErr := base64.StdEncoding.DecodeString(envelope.Data)
	if nil != decErr {
		return DeviceRootInfo{}, fault.ErrMalformedResponse
	}
	var root inode.DeviceRoot
	if err := json.Unmarshal(payload, &root); nil != err {
		return DeviceRootInfo{}, fault.ErrMalformedResponse
	}

	if nil != mgr {
		if err := mgr.ObservedRootMark(dctx.DatastoreID, rootUUID, dctx.DeviceID); nil != err {
			return DeviceRootInfo{}, err
		}
	}

	return DeviceRootInfo{DeviceID: dctx.DeviceID, Root: root, Created: false}, nil
}

// DiscoverDeviceRoots runs FindDeviceRootInfo concurrently across
// every device id in deviceIDs, the one place in this package that
// fans out with errgroup (spec section 5): each goroutine writes only
// to its own pre-sized slice slot, so no locking is required. The
// first error encountered cancels the remaining lookups and is
// returned.
func DiscoverDeviceRoots(ctx context.Context, client *gatewayhttp.Client, mgr *session.Manager, dctx Context, rootUUID string, deviceIDs, readers []string, nowMs int64) ([]DeviceRootInfo, error) {
	results := make([]DeviceRootInfo, len(deviceIDs))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, deviceID := range deviceIDs {
		i, deviceID := i, deviceID
		perDevice := dctx
		perDevice.DeviceID = deviceID
		group.Go(func() error {
			info, err := FindDeviceRootInfo(groupCtx, client, mgr, perDevice, rootUUID, readers, nowMs)
			if nil != err {
				return err
			}
			results[i] = info
			return nil
		})
	}
	if err := group.Wait(); nil != err {
		return nil, err
	}
	return results, nil
}

// GetAppKeys implements spec section 4.7's getAppKeys: when overrides
// is non-empty it is returned unchanged (the caller already knows the
// peer public keys); otherwise the user's profile is resolved and the
// embedded keyfile is scanned for every device that advertises
// appName.
func GetAppKeys(ctx context.Context, client *gatewayhttp.Client, sessionToken, blockchainID, appName string, overrides []gateway.Peer) ([]gateway.Peer, error) {
	if len(overrides) > 0 {
		return overrides, nil
	}

	profile, err := gateway.ResolveProfile(ctx, client, sessionToken, blockchainID)
	if nil != err {
		return nil, err
	}

	peers := make([]gateway.Peer, 0, len(profile.Keys.Apps))
	for deviceID, apps := range profile.Keys.Apps {
		app, found := apps[appName]
		if !found {
			continue
		}
		peers = append(peers, gateway.Peer{DeviceID: deviceID, PublicKey: app.PublicKey})
	}
	return peers, nil
}
