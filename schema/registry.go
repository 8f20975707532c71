// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import "github.com/bitmark-inc/vaultstore/fault"

// Shape names registered below, exported so call sites never hand-type
// the strings (spec section 6, section 4.10).
const (
	DatastoreDescriptor = "datastore-descriptor"
	DeviceRoot          = "device-root"
	FileEntry           = "file-entry"
	PutFileResponse     = "put-file-response"
	ListingResponse     = "listing-response"
	ProfileKeyfile      = "profile-keyfile"
)

// Registry looks up the Validator for a named wire shape, the way
// rpc call sites look up a storage.Handle by pool name.
var Registry = map[string]Validator{}

func register(name string, v Validator) {
	Registry[name] = v
}

// Validate looks up name in the Registry and applies it to v. An
// unregistered name is itself a schema violation — it indicates a
// caller typo, not a malformed response.
func Validate(name string, v interface{}) error {
	validator, ok := Registry[name]
	if !ok {
		return fault.InvalidError("no schema registered for " + name)
	}
	return validator(v)
}

var fileEntryValidator = Object(map[string]Validator{
	"proto_version": Required(Positive()),
	"urls":           Required(Each(String())),
	"data_hash":      Required(Hex()),
	"timestamp":      Required(NonNegative()),
})

var deviceRootValidator = Object(map[string]Validator{
	"proto_version": Required(Positive()),
	"type":          Required(Positive()),
	"owner":         Required(Base58()),
	"readers":       Optional(Each(Hex())),
	"timestamp":     Required(NonNegative()),
	"files":         Optional(MapOf(fileEntryValidator)),
	"tombstones":    Optional(MapOf(String())),
})

var datastoreDescriptorValidator = Object(map[string]Validator{
	"type":       Required(OneOf("datastore", "collection")),
	"pubkey":     Required(Hex()),
	"drivers":    Required(Each(String())),
	"device_ids": Required(Each(String())),
	"root_uuid":  Required(String()),
})

var putFileResponseValidator = Object(map[string]Validator{
	"status": Required(String()),
	"urls":   Required(Each(String())),
})

var listingResponseValidator = deviceRootValidator

var profileKeyfileValidator = Object(map[string]Validator{
	"keys": Required(Object(map[string]Validator{
		"apps": Required(MapOf(MapOf(Object(map[string]Validator{
			"public_key": Required(Hex()),
		})))),
	})),
})

func init() {
	register(DatastoreDescriptor, datastoreDescriptorValidator)
	register(DeviceRoot, deviceRootValidator)
	register(FileEntry, fileEntryValidator)
	register(PutFileResponse, putFileResponseValidator)
	register(ListingResponse, listingResponseValidator)
	register(ProfileKeyfile, profileKeyfileValidator)
}
