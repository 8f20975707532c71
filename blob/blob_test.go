// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blob_test

import (
	"strings"
	"testing"

	"github.com/bitmark-inc/vaultstore/blob"
	"github.com/bitmark-inc/vaultstore/crypto"
)

const testPrivateKeyHex = "e9873d79c6d87dc0fb6a5778633389f4453213303da61f20bd67fc233aa33260"

func TestMakeFullyQualifiedDataIdEscapesSlashes(t *testing.T) {
	fq := blob.MakeFullyQualifiedDataId("device1", "folder/file.txt")
	if strings.Contains(fq, "/") {
		t.Fatalf("expected no literal '/' in a fully qualified data id, got %q", fq)
	}
	// the literal backslash-x-2f substitution is itself percent-encoded
	if !strings.Contains(fq, "%5Cx2f") {
		t.Fatalf("expected the escaped slash marker to appear percent-encoded in %q", fq)
	}
}

func TestMakeFullyQualifiedDataIdPassesSafeCharsThrough(t *testing.T) {
	fq := blob.MakeFullyQualifiedDataId("dev", "a.b-c_d+e")
	if !strings.Contains(fq, "a.b-c_d+e") {
		t.Fatalf("expected safe characters to pass through unescaped, got %q", fq)
	}
}

func TestMakeFullyQualifiedDataIdEscapesColon(t *testing.T) {
	fq := blob.MakeFullyQualifiedDataId("dev1", "name")
	if strings.Contains(fq, ":") {
		t.Fatalf("expected the device/data separator colon to be percent-encoded, got %q", fq)
	}
	if !strings.Contains(fq, "%3A") {
		t.Fatalf("expected %%3A in %q", fq)
	}
}

func TestMakeDataInfoVersionIsAlwaysOne(t *testing.T) {
	info := blob.MakeDataInfo("/file1", "ZGF0YQ==", "device1", 1000)
	if 1 != info.Version {
		t.Fatalf("expected version 1, got %d", info.Version)
	}
}

func TestDataInfoSignRoundTrips(t *testing.T) {
	kp, err := crypto.NewKeyPairFromPrivateKeyHex(testPrivateKeyHex)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}

	info := blob.MakeDataInfo("/file1", "ZGF0YQ==", "device1", 1000)
	serialized, err := info.Serialize()
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	sig, err := info.Sign(kp)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}

	pub, err := crypto.NewKeyPairFromPublicKeyHex(kp.PublicKeyHex())
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	ok, err := crypto.VerifySignature(serialized, sig, pub)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected the envelope signature to verify")
	}
}

// invariant 8: round trip of tombstone parsing
func TestTombstoneRoundTrip(t *testing.T) {
	fq := blob.MakeFullyQualifiedDataId("device1", "/file1")
	tombstone := blob.MakeDataTombstone(fq, 123456789)

	ts, id, ok := blob.ParseDataTombstone(tombstone)
	if !ok {
		t.Fatalf("expected tombstone to parse")
	}
	if 123456789 != ts {
		t.Fatalf("expected timestamp 123456789, got %d", ts)
	}
	if fq != id {
		t.Fatalf("expected id %q, got %q", fq, id)
	}
}

func TestSignedTombstoneStillParses(t *testing.T) {
	kp, err := crypto.NewKeyPairFromPrivateKeyHex(testPrivateKeyHex)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	fq := blob.MakeFullyQualifiedDataId("device1", "/file1")
	tombstone := blob.MakeDataTombstone(fq, 123456789)
	signed, err := blob.SignDataTombstone(tombstone, kp)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}

	ts, id, ok := blob.ParseDataTombstone(signed)
	if !ok {
		t.Fatalf("expected signed tombstone to parse")
	}
	if 123456789 != ts || fq != id {
		t.Fatalf("unexpected parse result: ts=%d id=%q", ts, id)
	}
}

func TestParseDataTombstoneMalformedReturnsFalse(t *testing.T) {
	_, _, ok := blob.ParseDataTombstone("not a tombstone")
	if ok {
		t.Fatalf("expected ok=false for a malformed tombstone, not an error")
	}
}

func TestMakeDataTombstonesExpandsPerDevice(t *testing.T) {
	deviceIDs := []string{"dev1", "dev2", "dev3"}
	tombstones := blob.MakeDataTombstones(deviceIDs, "/file1", 1000)
	if len(tombstones) != len(deviceIDs) {
		t.Fatalf("expected %d tombstones, got %d", len(deviceIDs), len(tombstones))
	}
	for _, deviceID := range deviceIDs {
		ts, ok := tombstones[deviceID]
		if !ok {
			t.Fatalf("expected a tombstone for device %q", deviceID)
		}
		_, id, ok := blob.ParseDataTombstone(ts)
		if !ok {
			t.Fatalf("expected tombstone for %q to parse", deviceID)
		}
		expected := blob.MakeFullyQualifiedDataId(deviceID, "/file1")
		if id != expected {
			t.Fatalf("expected fq id %q for device %q, got %q", expected, deviceID, id)
		}
	}
}
