// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vaultfile_test

import (
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/bitmark-inc/vaultstore/crypto"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
)

const testPrivateKeyHex = "e9873d79c6d87dc0fb6a5778633389f4453213303da61f20bd67fc233aa33260"

func mustKeyPair(t *testing.T) *crypto.KeyPair {
	t.Helper()
	kp, err := crypto.NewKeyPairFromPrivateKeyHex(testPrivateKeyHex)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	return kp
}

func newTestClient(t *testing.T, server *httptest.Server) *gatewayhttp.Client {
	t.Helper()
	parsed, err := url.Parse(server.URL)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	port, err := strconv.Atoi(parsed.Port())
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	return gatewayhttp.New(parsed.Scheme, parsed.Hostname(), port, nil)
}
