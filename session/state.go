// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import "github.com/bitmark-inc/vaultstore/gateway"

// MountContext is the resolved, cached state for one (owner, app) pair
// (spec section 3, "Mount context"): host, port, scheme, the
// blockchain/app identity that resolved it, the datastore and device
// ids, this device's private key (present only when this device can
// write), the known peer public keys, and the datastore descriptor
// currently in force.
type MountContext struct {
	Host          string                     `json:"host"`
	Port          int                        `json:"port"`
	Scheme        string                     `json:"scheme"`
	BlockchainID  string                     `json:"blockchain_id,omitempty"`
	AppName       string                     `json:"app_name"`
	DatastoreID   string                     `json:"datastore_id"`
	DeviceID      string                     `json:"device_id"`
	PrivateKeyHex string                     `json:"private_key_hex,omitempty"`
	Peers         []gateway.Peer             `json:"peers"`
	Descriptor    gateway.DatastoreDescriptor `json:"descriptor"`
}

// PersistentState is the exact shape of the local-storage blob (spec
// section 6, "Persistent state layout"). DatastoreContexts is keyed
// "<owner>/<app>"; PartialCreateFailures is keyed
// "<blockchain_id>/<app_name>".
type PersistentState struct {
	CoreSessionToken      string                  `json:"coreSessionToken"`
	AppPrivateKey         string                  `json:"appPrivateKey"`
	DatastoreContexts     map[string]MountContext `json:"datastore_contexts"`
	PartialCreateFailures map[string]bool         `json:"partial_create_failures"`
	ObservedRoots         map[string]bool         `json:"observed_roots"`
}

func emptyState() PersistentState {
	return PersistentState{
		DatastoreContexts:     map[string]MountContext{},
		PartialCreateFailures: map[string]bool{},
		ObservedRoots:         map[string]bool{},
	}
}

func cloneState(state PersistentState) PersistentState {
	contexts := make(map[string]MountContext, len(state.DatastoreContexts))
	for key, ctx := range state.DatastoreContexts {
		contexts[key] = ctx
	}
	failures := make(map[string]bool, len(state.PartialCreateFailures))
	for key, flag := range state.PartialCreateFailures {
		failures[key] = flag
	}
	roots := make(map[string]bool, len(state.ObservedRoots))
	for key, flag := range state.ObservedRoots {
		roots[key] = flag
	}
	return PersistentState{
		CoreSessionToken:      state.CoreSessionToken,
		AppPrivateKey:         state.AppPrivateKey,
		DatastoreContexts:     contexts,
		PartialCreateFailures: failures,
		ObservedRoots:         roots,
	}
}

func contextKey(owner, appName string) string {
	return owner + "/" + appName
}

func failureKey(blockchainID, appName string) string {
	return blockchainID + "/" + appName
}

func observedRootKey(datastoreID, rootUUID, deviceID string) string {
	return datastoreID + "/" + rootUUID + "/" + deviceID
}
