// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"encoding/json"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/vaultstore/fault"
)

// stateKey is the single key PersistentState is stored under; unlike
// storage/access.go's multi-key transaction log, this store holds one
// caller's entire state as a single record.
var stateKey = []byte("persistent-state")

// LevelDBStore persists PersistentState in a goleveldb database,
// repurposing the teacher's primary storage engine (storage/access.go)
// for the CLI harness and for integration tests that want a real,
// crash-safe backing store without standing up a file server.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDBStore opens (creating if absent) a goleveldb database at
// path.
func OpenLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if nil != err {
		return nil, fault.RemoteIOError(err.Error())
	}
	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Load() (PersistentState, error) {
	raw, err := s.db.Get(stateKey, nil)
	if leveldb.ErrNotFound == err {
		return emptyState(), nil
	}
	if nil != err {
		return PersistentState{}, fault.RemoteIOError(err.Error())
	}
	var state PersistentState
	if err := json.Unmarshal(raw, &state); nil != err {
		return PersistentState{}, fault.RemoteIOError(err.Error())
	}
	return state, nil
}

func (s *LevelDBStore) Save(state PersistentState) error {
	raw, err := json.Marshal(state)
	if nil != err {
		return fault.RemoteIOError(err.Error())
	}
	if err := s.db.Put(stateKey, raw, nil); nil != err {
		return fault.RemoteIOError(err.Error())
	}
	return nil
}

// Close releases the underlying database handle.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
