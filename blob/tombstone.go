// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blob

import (
	"regexp"
	"strconv"

	"github.com/bitmark-inc/vaultstore/crypto"
)

const tombstonePrefix = "delete-"

// MakeDataTombstone builds the unsigned tombstone string for a single
// fully-qualified data id (spec section 4.2): "delete-<nowMs>:<fqDataId>".
func MakeDataTombstone(fqDataID string, nowMs int64) string {
	return tombstonePrefix + strconv.FormatInt(nowMs, 10) + ":" + fqDataID
}

// MakeDataTombstones expands a tombstone for dataID per device id in
// deviceIDs, since each device writes under its own fully-qualified id
// (spec section 4.2).
func MakeDataTombstones(deviceIDs []string, dataID string, nowMs int64) map[string]string {
	tombstones := make(map[string]string, len(deviceIDs))
	for _, deviceID := range deviceIDs {
		fq := MakeFullyQualifiedDataId(deviceID, dataID)
		tombstones[deviceID] = MakeDataTombstone(fq, nowMs)
	}
	return tombstones
}

// SignDataTombstone appends a base64 signature over the tombstone string
// to produce the form the gateway accepts (spec section 4.2).
func SignDataTombstone(tombstone string, priv *crypto.KeyPair) (string, error) {
	sig, err := crypto.SignDataPayload(tombstone, priv)
	if nil != err {
		return "", err
	}
	return tombstone + ":" + sig, nil
}

var tombstonePattern = regexp.MustCompile(`^delete-(\d+):([^:]+)`)

// ParseDataTombstone extracts the (timestamp, fqDataId) pair from either
// a signed or unsigned tombstone string. A malformed tombstone never
// raises — it returns ok=false, matching spec section 4.2's "NULL
// sentinel, never raising" contract.
func ParseDataTombstone(tombstone string) (timestamp int64, fqDataID string, ok bool) {
	match := tombstonePattern.FindStringSubmatch(tombstone)
	if nil == match {
		return 0, "", false
	}
	ts, err := strconv.ParseInt(match[1], 10, 64)
	if nil != err {
		return 0, "", false
	}
	return ts, match[2], true
}
