// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vaultstore/configuration"
	"github.com/bitmark-inc/vaultstore/datastore"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/session"
)

// appContext is the per-invocation state every subcommand but
// "version", "generate" and "setup" needs, carried through
// cli.Context.App.Metadata the same way bitmark-cli threads its own
// *metadata.
type appContext struct {
	config     *configuration.Configuration
	configFile string
	client     *gatewayhttp.Client
	mgr        *session.Manager
	log        *logger.L
	w          io.Writer
	e          io.Writer
}

func appFrom(c *cli.Context) (*appContext, error) {
	a, ok := c.App.Metadata["app"].(*appContext)
	if !ok || nil == a {
		return nil, ErrNilAppContext
	}
	return a, nil
}

func nowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// mountFromFlags resolves a datastore.Context from the command's
// --datastore-id or --blockchain-id/--app-name flags, creating the
// datastore on first use exactly as datastore.MountOrCreate does for
// the library's own callers (spec section 4.5).
func mountFromFlags(c *cli.Context, a *appContext) (*datastore.Context, error) {
	deviceID := c.String("device-id")
	if "" == deviceID {
		return nil, ErrMissingDevice
	}

	var readers []string
	if "" != c.String("readers") {
		readers = strings.Split(c.String("readers"), ",")
	}
	var preferredDrivers []string
	if "" != c.String("drivers") {
		preferredDrivers = strings.Split(c.String("drivers"), ",")
	}

	opts := datastore.MountOrCreateOptions{
		Mount: datastore.MountOptions{
			DatastoreID:   c.GlobalString("datastore-id"),
			BlockchainID:  c.GlobalString("blockchain-id"),
			AppName:       c.GlobalString("app-name"),
			DeviceID:      deviceID,
			PrivateKeyHex: a.config.Identity.PrivateKeyHex,
		},
		DatastoreType:    "personal",
		Readers:          readers,
		PreferredDrivers: preferredDrivers,
	}

	sessionToken, err := a.mgr.SessionToken()
	if nil != err {
		return nil, err
	}

	return datastore.MountOrCreate(
		context.Background(),
		a.client,
		a.mgr,
		sessionToken,
		a.config.Gateway.Host,
		a.config.Gateway.Scheme,
		a.config.Gateway.Port,
		opts,
		nowMillis(),
	)
}
