// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inode

import (
	"encoding/base64"

	"github.com/bitmark-inc/vaultstore/blob"
	"github.com/bitmark-inc/vaultstore/crypto"
)

// RootDataId builds the data id a device root is keyed under: the
// datastore id and the root uuid joined by "." (spec section 4.4).
func RootDataId(datastoreID, rootUUID string) string {
	return datastoreID + "." + rootUUID
}

// DeviceRootSerialize builds the mutable-data envelope for root, ready
// for signing and upload (spec section 4.4). The root page itself is
// canonically serialized, base64-encoded, and carried as the
// envelope's data field.
func DeviceRootSerialize(deviceID, datastoreID, rootUUID string, root DeviceRoot, nowMs int64) (blob.DataInfo, error) {
	canonical, err := crypto.StableJSONOfStruct(root)
	if nil != err {
		return blob.DataInfo{}, err
	}
	payload := base64.StdEncoding.EncodeToString([]byte(canonical))
	dataID := RootDataId(datastoreID, rootUUID)
	return blob.MakeDataInfo(dataID, payload, deviceID, nowMs), nil
}
