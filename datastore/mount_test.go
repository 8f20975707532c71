// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/bitmark-inc/vaultstore/datastore"
	"github.com/bitmark-inc/vaultstore/fault"
	"github.com/bitmark-inc/vaultstore/gateway"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/replication"
	"github.com/bitmark-inc/vaultstore/session"
)

func newTestClient(t *testing.T, server *httptest.Server) (*gatewayhttp.Client, string, int) {
	t.Helper()
	parsed, err := url.Parse(server.URL)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	port, err := strconv.Atoi(parsed.Port())
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	return gatewayhttp.New(parsed.Scheme, parsed.Hostname(), port, nil), parsed.Hostname(), port
}

// end-to-end scenario 1: mounting an existing datastore by id.
func TestMountSingleReaderCachesContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply := gateway.MountResponse{
			DatastoreID: "ds1",
			Descriptor: gateway.DatastoreDescriptor{
				Type:   "personal",
				Pubkey: "pub-owner",
			},
		}
		body, _ := json.Marshal(reply)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
	defer server.Close()

	client, host, port := newTestClient(t, server)
	mgr := session.NewManager(session.NewMemoryStore(), nil)

	dctx, err := datastore.Mount(context.Background(), client, mgr, "token", host, "http", port, datastore.MountOptions{
		DatastoreID: "ds1",
		DeviceID:    "device1",
	})
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if nil == dctx || "ds1" != dctx.DatastoreID {
		t.Fatalf("unexpected context: %+v", dctx)
	}

	cached, found, err := mgr.GetMountContext("ds1", "")
	if nil != err || !found {
		t.Fatalf("expected the context to be cached, found=%v err=%v", found, err)
	}
	if "ds1" != cached.DatastoreID {
		t.Fatalf("unexpected cached datastore id: %q", cached.DatastoreID)
	}
}

func TestMountReturnsNilOnNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, host, port := newTestClient(t, server)
	mgr := session.NewManager(session.NewMemoryStore(), nil)

	dctx, err := datastore.Mount(context.Background(), client, mgr, "token", host, "http", port, datastore.MountOptions{
		DatastoreID: "ds1",
		DeviceID:    "device1",
	})
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if nil != dctx {
		t.Fatalf("expected a nil context, got %+v", dctx)
	}
}

// end-to-end scenario 5: a partial-create failure flag forces Mount to
// resolve to nil without issuing any request, and a subsequent
// MountOrCreate retries create.
func TestMountOrCreateRetriesAfterPartialCreateFailure(t *testing.T) {
	var createCalls, mountCalls int
	priv := mustKeyPair(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case http.MethodPost == r.Method && "/v1/stores" == r.URL.Path:
			createCalls++
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok","urls":{"device1":["https://replica/a"]}}`))
		case http.MethodGet == r.Method:
			mountCalls++
			reply := gateway.MountResponse{
				DatastoreID: priv.DatastoreID(),
				Descriptor: gateway.DatastoreDescriptor{
					Type:   "personal",
					Pubkey: priv.PublicKeyHex(),
				},
			}
			body, _ := json.Marshal(reply)
			w.WriteHeader(http.StatusOK)
			w.Write(body)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client, host, port := newTestClient(t, server)
	mgr := session.NewManager(session.NewMemoryStore(), nil)

	if err := mgr.PartialCreateFailureSet("bid1", "app1"); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}

	opts := datastore.MountOrCreateOptions{
		Mount: datastore.MountOptions{
			BlockchainID:  "bid1",
			AppName:       "app1",
			DeviceID:      "device1",
			PrivateKeyHex: testPrivateKeyHex,
		},
		DatastoreType:    "personal",
		PreferredDrivers: []string{"leveldb"},
	}

	dctx, err := datastore.MountOrCreate(context.Background(), client, mgr, "token", host, "http", port, opts, 5000)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if nil == dctx || !dctx.Created {
		t.Fatalf("expected a freshly created context, got %+v", dctx)
	}
	if 1 != createCalls {
		t.Fatalf("expected exactly one create call, got %d", createCalls)
	}

	set, err := mgr.PartialCreateFailureIsSet("bid1", "app1")
	if nil != err || set {
		t.Fatalf("expected the partial-create flag to be cleared, set=%v err=%v", set, err)
	}
}

func TestMountOrCreateFallsBackToReplicationSelection(t *testing.T) {
	var capturedDrivers []string
	priv := mustKeyPair(t)
	first := true

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case http.MethodGet == r.Method && first:
			first = false
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPost == r.Method && "/v1/stores" == r.URL.Path:
			var body struct {
				DatastoreBlob string `json:"datastore_blob"`
			}
			raw, _ := ioutil.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &body)
			var descriptor struct {
				Drivers []string `json:"drivers"`
			}
			_ = json.Unmarshal([]byte(body.DatastoreBlob), &descriptor)
			capturedDrivers = descriptor.Drivers
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok","urls":{}}`))
		case http.MethodGet == r.Method:
			reply := gateway.MountResponse{
				DatastoreID: priv.DatastoreID(),
				Descriptor:  gateway.DatastoreDescriptor{Type: "personal", Pubkey: priv.PublicKeyHex()},
			}
			body, _ := json.Marshal(reply)
			w.WriteHeader(http.StatusOK)
			w.Write(body)
		}
	}))
	defer server.Close()

	client, host, port := newTestClient(t, server)
	mgr := session.NewManager(session.NewMemoryStore(), nil)

	opts := datastore.MountOrCreateOptions{
		Mount: datastore.MountOptions{
			DatastoreID:   priv.DatastoreID(),
			DeviceID:      "device1",
			PrivateKeyHex: testPrivateKeyHex,
		},
		DatastoreType:    "personal",
		AvailableDrivers: []string{"leveldb", "ipfs"},
		Strategy:         replication.Strategy{replication.ConcernLocal: 1},
		Classification: replication.Classification{
			"leveldb": {replication.ReadLocal, replication.WriteLocal},
			"ipfs":    {replication.ReadPublic, replication.WritePublic},
		},
	}

	_, err := datastore.MountOrCreate(context.Background(), client, mgr, "token", host, "http", port, opts, 5000)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 1 != len(capturedDrivers) || "leveldb" != capturedDrivers[0] {
		t.Fatalf("expected only leveldb to be selected for the local concern, got %v", capturedDrivers)
	}
}

func TestMountOrCreateSetsRetryFlagOnCreateFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case http.MethodGet == r.Method:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPost == r.Method:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client, host, port := newTestClient(t, server)
	mgr := session.NewManager(session.NewMemoryStore(), nil)

	opts := datastore.MountOrCreateOptions{
		Mount: datastore.MountOptions{
			BlockchainID:  "bid2",
			AppName:       "app2",
			DeviceID:      "device1",
			PrivateKeyHex: testPrivateKeyHex,
		},
		DatastoreType:    "personal",
		PreferredDrivers: []string{"leveldb"},
	}

	_, err := datastore.MountOrCreate(context.Background(), client, mgr, "token", host, "http", port, opts, 5000)
	if nil == err || !fault.IsErrRemoteIO(err) {
		t.Fatalf("expected a remote-io error, got %v", err)
	}

	set, err := mgr.PartialCreateFailureIsSet("bid2", "app2")
	if nil != err || !set {
		t.Fatalf("expected the partial-create flag to be set, set=%v err=%v", set, err)
	}
}

// a logical/permanent create rejection (here, a 400) must not set the
// partial-create retry flag: that flag means "create may have
// succeeded server-side even though we couldn't observe it", which is
// never true of a rejection the gateway raised before doing anything.
func TestMountOrCreateDoesNotSetRetryFlagOnLogicalFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case http.MethodGet == r.Method:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPost == r.Method:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client, host, port := newTestClient(t, server)
	mgr := session.NewManager(session.NewMemoryStore(), nil)

	opts := datastore.MountOrCreateOptions{
		Mount: datastore.MountOptions{
			BlockchainID:  "bid3",
			AppName:       "app3",
			DeviceID:      "device1",
			PrivateKeyHex: testPrivateKeyHex,
		},
		DatastoreType:    "personal",
		PreferredDrivers: []string{"leveldb"},
	}

	_, err := datastore.MountOrCreate(context.Background(), client, mgr, "token", host, "http", port, opts, 5000)
	if nil == err || fault.IsErrRemoteIO(err) {
		t.Fatalf("expected a non-transport error, got %v", err)
	}

	set, err := mgr.PartialCreateFailureIsSet("bid3", "app3")
	if nil != err || set {
		t.Fatalf("expected the partial-create flag to remain unset, set=%v err=%v", set, err)
	}
}

// end-to-end: single-reader mode can be entered purely from the session
// token's app_user_id claim, with no explicit DatastoreID in opts (spec
// section 4.5, mode 1's second entry path).
func TestMountDerivesDatastoreIDFromSessionToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if "/v1/stores/ds-from-token" != r.URL.Path {
			t.Errorf("expected the derived datastore id in the path, got %s", r.URL.Path)
		}
		reply := gateway.MountResponse{
			DatastoreID: "ds-from-token",
			Descriptor:  gateway.DatastoreDescriptor{Type: "personal", Pubkey: "pub-owner"},
		}
		body, _ := json.Marshal(reply)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
	defer server.Close()

	client, host, port := newTestClient(t, server)
	mgr := session.NewManager(session.NewMemoryStore(), nil)

	claims := `{"app_user_id":"ds-from-token"}`
	token := "header." + base64.RawURLEncoding.EncodeToString([]byte(claims)) + ".sig"

	dctx, err := datastore.Mount(context.Background(), client, mgr, token, host, "http", port, datastore.MountOptions{
		DeviceID: "device1",
	})
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if nil == dctx || "ds-from-token" != dctx.DatastoreID {
		t.Fatalf("unexpected context: %+v", dctx)
	}
}
