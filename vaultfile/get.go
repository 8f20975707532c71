// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vaultfile

import (
	"context"

	"github.com/bitmark-inc/vaultstore/datastore"
	"github.com/bitmark-inc/vaultstore/gateway"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/inode"
)

// GetFile fetches the raw bytes currently stored at name (spec section
// 4.6, "getFile").
func GetFile(ctx context.Context, client *gatewayhttp.Client, dctx *datastore.Context, name string) ([]byte, error) {
	return gateway.GetFileBytes(ctx, client, dctx.SessionToken, dctx.DatastoreID, name)
}

// GetFileURLs fetches name's current entry and returns just its
// replica URLs, without downloading the file body (spec section 4.6,
// "getFileURLs").
func GetFileURLs(ctx context.Context, client *gatewayhttp.Client, dctx *datastore.Context, name string) ([]string, error) {
	entry, err := gateway.GetFileHeader(ctx, client, dctx.SessionToken, dctx.DatastoreID, name, dctx.DeviceID)
	if nil != err {
		return nil, err
	}
	return entry.URLs, nil
}

// ListFiles fetches the full root page for the mounted datastore (spec
// section 4.6, "listFiles").
func ListFiles(ctx context.Context, client *gatewayhttp.Client, dctx *datastore.Context) (*inode.DeviceRoot, error) {
	return gateway.ListFiles(ctx, client, dctx.SessionToken, dctx.DatastoreID)
}
