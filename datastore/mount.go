// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"context"

	"github.com/pborman/uuid"

	"github.com/bitmark-inc/vaultstore/crypto"
	"github.com/bitmark-inc/vaultstore/fault"
	"github.com/bitmark-inc/vaultstore/gateway"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/replication"
	"github.com/bitmark-inc/vaultstore/session"
)

func toContext(owner, appName string, resp *gateway.MountResponse, opts MountOptions) (Context, error) {
	dctx := Context{
		Owner:        owner,
		AppName:      appName,
		BlockchainID: resp.BlockchainID,
		DatastoreID:  resp.DatastoreID,
		DeviceID:     opts.DeviceID,
		Peers:        resp.Peers,
		Descriptor:   resp.Descriptor,
	}
	if "" != opts.PrivateKeyHex {
		priv, err := crypto.NewKeyPairFromPrivateKeyHex(opts.PrivateKeyHex)
		if nil != err {
			return Context{}, err
		}
		dctx.PrivateKey = priv
	}
	return dctx, nil
}

func toSessionContext(host, scheme string, port int, dctx Context) session.MountContext {
	privHex := ""
	if nil != dctx.PrivateKey {
		privHex = dctx.PrivateKey.PrivateKeyHex()
	}
	return session.MountContext{
		Host:          host,
		Port:          port,
		Scheme:        scheme,
		BlockchainID:  dctx.BlockchainID,
		AppName:       dctx.AppName,
		DatastoreID:   dctx.DatastoreID,
		DeviceID:      dctx.DeviceID,
		PrivateKeyHex: privHex,
		Peers:         dctx.Peers,
		Descriptor:    dctx.Descriptor,
	}
}

// Mount resolves a mount context in either of spec section 4.5's two
// modes, caching the result under (blockchain_id ∨ datastore_id,
// app_name). A partial-create failure flag set for (blockchain_id,
// app_name) short-circuits to "not found" without any request, and a
// successful resolution clears the cache entry for any stale prior
// mount of the same key. Returns (nil, nil) when the datastore does
// not exist.
func Mount(ctx context.Context, client *gatewayhttp.Client, mgr *session.Manager, sessionToken string, gatewayHost, gatewayScheme string, gatewayPort int, opts MountOptions) (*Context, error) {
	if "" != opts.BlockchainID && "" != opts.AppName {
		if set, err := mgr.PartialCreateFailureIsSet(opts.BlockchainID, opts.AppName); nil != err {
			return nil, err
		} else if set {
			return nil, nil
		}
	}

	var resp *gateway.MountResponse
	var err error
	owner := opts.Owner

	// Mode 1 can also be entered without an explicit opts.DatastoreID:
	// when the session's own app_user_id claim equals the datastore id,
	// the token itself names the single-reader/writer datastore.
	datastoreID := opts.DatastoreID
	if "" == datastoreID && "" != sessionToken {
		if derived, ok := session.AppUserIDFromToken(sessionToken); ok {
			datastoreID = derived
		}
	}

	switch {
	case "" != datastoreID:
		resp, err = gateway.MountSingleReader(ctx, client, sessionToken, datastoreID, []string{opts.DeviceID}, opts.DataPubkeys)
		if "" == owner {
			owner = datastoreID
		}
	case "" != opts.BlockchainID && "" != opts.AppName:
		resp, err = gateway.MountMultiReader(ctx, client, sessionToken, opts.AppName, opts.BlockchainID)
		if "" == owner {
			owner = opts.BlockchainID
		}
	default:
		return nil, fault.ErrRequiredDatastoreId
	}
	if nil != err {
		return nil, err
	}
	if nil == resp {
		return nil, nil
	}

	dctx, err := toContext(owner, opts.AppName, resp, opts)
	if nil != err {
		return nil, err
	}
	dctx.SessionToken = sessionToken

	if err := mgr.SetMountContext(owner, opts.AppName, toSessionContext(gatewayHost, gatewayScheme, gatewayPort, dctx)); nil != err {
		return nil, err
	}

	return &dctx, nil
}

// MountOrCreateOptions carries everything MountOrCreate needs beyond a
// plain Mount: the replication inputs for §4.3 driver selection when
// opts does not already name a fixed driver list, the datastore type,
// the reader set for a freshly-created empty root, and (for the
// administrative create path) an API password.
type MountOrCreateOptions struct {
	Mount MountOptions

	DatastoreType    string
	Readers          []string
	PreferredDrivers []string
	AvailableDrivers []string
	Strategy         replication.Strategy
	Classification   replication.Classification

	APIPassword string
}

// MountOrCreate implements spec section 4.5's datastoreMountOrCreate:
// Mount first; if it resolves to nil, run §4.3 driver selection (or
// use the caller-supplied driver list), create the datastore, clear
// the partial-failure flag, re-mount, and attach the creation URLs.
func MountOrCreate(ctx context.Context, client *gatewayhttp.Client, mgr *session.Manager, sessionToken string, gatewayHost, gatewayScheme string, gatewayPort int, opts MountOrCreateOptions, nowMs int64) (*Context, error) {
	dctx, err := Mount(ctx, client, mgr, sessionToken, gatewayHost, gatewayScheme, gatewayPort, opts.Mount)
	if nil != err {
		return nil, err
	}
	if nil != dctx {
		return dctx, nil
	}

	if "" == opts.Mount.PrivateKeyHex {
		return nil, fault.ErrRequiredPrivateKey
	}
	priv, err := crypto.NewKeyPairFromPrivateKeyHex(opts.Mount.PrivateKeyHex)
	if nil != err {
		return nil, err
	}

	drivers := opts.PreferredDrivers
	if 0 == len(drivers) {
		selected, err := replication.SelectDrivers(opts.Strategy, opts.Classification, opts.AvailableDrivers)
		if nil != err {
			return nil, err
		}
		drivers = make([]string, len(selected))
		for i, d := range selected {
			drivers[i] = d.Name
		}
	}

	allDeviceIDs := []string{opts.Mount.DeviceID}
	rootUUID := uuid.New()

	createReq, err := MakeCreateRequest(opts.DatastoreType, priv, drivers, allDeviceIDs, rootUUID, opts.Readers, nowMs)
	if nil != err {
		return nil, err
	}

	createResp, err := Create(ctx, client, sessionToken, createReq, priv.PublicKeyHex(), opts.APIPassword)
	if nil != err {
		// Only a transport-class failure leaves the create outcome
		// ambiguous enough to warrant remembering "retry on next mount"
		// (spec section 4.5); a logical/permanent rejection (e.g. a 400
		// or 403 surfaced via gatewayhttp.statusToError) is final, and
		// auto-setting the flag here would wrongly keep a rejected
		// datastore "absent, needs create-retry" forever. A caller that
		// independently resolves an ambiguous outcome can still call
		// SetRetry itself (spec section 4.5: retry is "the external
		// handle for forcing this state").
		if fault.IsErrRemoteIO(err) && "" != opts.Mount.BlockchainID && "" != opts.Mount.AppName {
			_ = SetRetry(mgr, opts.Mount.BlockchainID, opts.Mount.AppName)
		}
		return nil, err
	}

	if "" != opts.Mount.BlockchainID && "" != opts.Mount.AppName {
		if err := ClearRetry(mgr, opts.Mount.BlockchainID, opts.Mount.AppName); nil != err {
			return nil, err
		}
	}

	mountOpts := opts.Mount
	mountOpts.DatastoreID = priv.DatastoreID()
	remounted, err := Mount(ctx, client, mgr, sessionToken, gatewayHost, gatewayScheme, gatewayPort, mountOpts)
	if nil != err {
		return nil, err
	}
	if nil == remounted {
		return nil, fault.ErrMountFail
	}

	remounted.Created = true
	remounted.CreationURLs = createResp.URLs
	return remounted, nil
}
