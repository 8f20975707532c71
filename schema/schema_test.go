// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema_test

import (
	"testing"

	"github.com/bitmark-inc/vaultstore/fault"
	"github.com/bitmark-inc/vaultstore/schema"
)

func TestRequiredRejectsMissing(t *testing.T) {
	v := schema.Required(schema.String())
	err := v(nil)
	if nil == err || !fault.IsErrInvalid(err) {
		t.Fatalf("expected an invalid error, got %v", err)
	}
}

func TestRequiredRejectsEmptyString(t *testing.T) {
	v := schema.Required(schema.String())
	if err := v(""); nil == err {
		t.Fatalf("expected an error for an empty required string")
	}
}

func TestOptionalAllowsMissing(t *testing.T) {
	v := schema.Optional(schema.Hex())
	if err := v(nil); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHexRejectsOddLength(t *testing.T) {
	if err := schema.Hex()("abc"); nil == err {
		t.Fatalf("expected an error for an odd-length hex string")
	}
}

func TestHexAcceptsValid(t *testing.T) {
	if err := schema.Hex()("deadbeef"); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBase58RejectsInvalidChars(t *testing.T) {
	if err := schema.Base58()("not0base58OI"); nil == err {
		t.Fatalf("expected an error for invalid base58 characters")
	}
}

func TestPositiveRejectsZeroAndNegative(t *testing.T) {
	v := schema.Positive()
	if err := v(float64(0)); nil == err {
		t.Fatalf("expected an error for zero")
	}
	if err := v(float64(-1)); nil == err {
		t.Fatalf("expected an error for a negative value")
	}
	if err := v(float64(1)); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOneOfRejectsUnlistedValue(t *testing.T) {
	v := schema.OneOf("datastore", "collection")
	if err := v("bogus"); nil == err {
		t.Fatalf("expected an error for an unlisted value")
	}
	if err := v("collection"); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEachValidatesEveryElement(t *testing.T) {
	v := schema.Each(schema.Hex())
	if err := v([]interface{}{"ab", "cd"}); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v([]interface{}{"ab", "zz"}); nil == err {
		t.Fatalf("expected an error for a non-hex element")
	}
}

func TestObjectValidatesFields(t *testing.T) {
	v := schema.Object(map[string]schema.Validator{
		"name": schema.Required(schema.String()),
	})
	if err := v(map[string]interface{}{"name": "x"}); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v(map[string]interface{}{}); nil == err {
		t.Fatalf("expected an error for a missing required field")
	}
}

func TestRegistryValidatesDatastoreDescriptor(t *testing.T) {
	descriptor := map[string]interface{}{
		"type":       "datastore",
		"pubkey":     "04deadbeef",
		"drivers":    []interface{}{"leveldb"},
		"device_ids": []interface{}{"device1"},
		"root_uuid":  "d290f1ee-6c54-4b01-90e6-d701748f0851",
	}
	if err := schema.Validate(schema.DatastoreDescriptor, descriptor); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistryRejectsUnregisteredName(t *testing.T) {
	if err := schema.Validate("nonexistent-shape", map[string]interface{}{}); nil == err {
		t.Fatalf("expected an error for an unregistered shape name")
	}
}

func TestRegistryValidatesDeviceRoot(t *testing.T) {
	root := map[string]interface{}{
		"proto_version": float64(2),
		"type":          float64(1),
		"owner":         "17VZNX1SN5NtKa8UQFxwQbFeFc3iqRYhem",
		"readers":       []interface{}{},
		"timestamp":     float64(1000),
		"files": map[string]interface{}{
			"a": map[string]interface{}{
				"proto_version": float64(2),
				"urls":          []interface{}{"https://example.com/a"},
				"data_hash":     "deadbeef",
				"timestamp":     float64(1000),
			},
		},
		"tombstones": map[string]interface{}{},
	}
	if err := schema.Validate(schema.DeviceRoot, root); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
}
