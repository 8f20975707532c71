// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitmark-inc/vaultstore/session"
)

func TestManagerMountContextRoundTrip(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(), nil)

	if _, found, err := mgr.GetMountContext("owner1", "app1"); nil != err || found {
		t.Fatalf("expected no cached context, found=%v err=%v", found, err)
	}

	ctx := session.MountContext{Host: "gateway.example", Port: 6270, Scheme: "https", AppName: "app1", DatastoreID: "ds1"}
	if err := mgr.SetMountContext("owner1", "app1", ctx); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}

	got, found, err := mgr.GetMountContext("owner1", "app1")
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected to find the mount context")
	}
	if "ds1" != got.DatastoreID {
		t.Fatalf("expected datastore id ds1, got %q", got.DatastoreID)
	}
}

func TestManagerInvalidateMountContextForcesReload(t *testing.T) {
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, nil)

	ctx := session.MountContext{DatastoreID: "ds1"}
	if err := mgr.SetMountContext("owner1", "app1", ctx); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	mgr.InvalidateMountContext("owner1", "app1")

	got, found, err := mgr.GetMountContext("owner1", "app1")
	if nil != err || !found {
		t.Fatalf("expected the durable context to still be found after invalidation, found=%v err=%v", found, err)
	}
	if "ds1" != got.DatastoreID {
		t.Fatalf("unexpected datastore id: %q", got.DatastoreID)
	}
}

// end-to-end scenario 5: partial-create recovery.
func TestPartialCreateFailureSetClear(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(), nil)

	set, err := mgr.PartialCreateFailureIsSet("bid1", "app1")
	if nil != err || set {
		t.Fatalf("expected no flag set initially, set=%v err=%v", set, err)
	}

	if err := mgr.PartialCreateFailureSet("bid1", "app1"); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	set, err = mgr.PartialCreateFailureIsSet("bid1", "app1")
	if nil != err || !set {
		t.Fatalf("expected the flag to be set, set=%v err=%v", set, err)
	}

	if err := mgr.PartialCreateFailureClear("bid1", "app1"); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	set, err = mgr.PartialCreateFailureIsSet("bid1", "app1")
	if nil != err || set {
		t.Fatalf("expected the flag to be cleared, set=%v err=%v", set, err)
	}
}

func TestSessionTokenAndAppPrivateKeyPersist(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(), nil)

	if err := mgr.SetSessionToken("tok123"); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	token, err := mgr.SessionToken()
	if nil != err || "tok123" != token {
		t.Fatalf("expected tok123, got %q (err=%v)", token, err)
	}

	if err := mgr.SetAppPrivateKey("deadbeef"); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	key, err := mgr.AppPrivateKey()
	if nil != err || "deadbeef" != key {
		t.Fatalf("expected deadbeef, got %q (err=%v)", key, err)
	}
}

func TestFileStorePlaintextRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "session-filestore")
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "state.json")
	store := session.NewFileStore(path, nil)

	mgr := session.NewManager(store, nil)
	if err := mgr.SetSessionToken("tok-file"); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened := session.NewManager(session.NewFileStore(path, nil), nil)
	token, err := reopened.SessionToken()
	if nil != err || "tok-file" != token {
		t.Fatalf("expected tok-file, got %q (err=%v)", token, err)
	}
}

func TestFileStoreEncryptedRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "session-filestore-enc")
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "state.bin")
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}

	store := session.NewFileStore(path, &key)
	mgr := session.NewManager(store, nil)
	if err := mgr.SetAppPrivateKey("secretkeyhex"); nil != err {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := ioutil.ReadFile(path)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(raw), "secretkeyhex") {
		t.Fatalf("expected the on-disk file to not contain the plaintext key")
	}

	reopened := session.NewManager(session.NewFileStore(path, &key), nil)
	key2, err := reopened.AppPrivateKey()
	if nil != err || "secretkeyhex" != key2 {
		t.Fatalf("expected secretkeyhex, got %q (err=%v)", key2, err)
	}
}

