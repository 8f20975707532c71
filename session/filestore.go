// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"crypto/rand"
	"encoding/json"
	"io/ioutil"
	"os"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/bitmark-inc/vaultstore/fault"
)

// FileStore persists PersistentState as a single JSON file. When a
// 32-byte key is supplied, the file is additionally sealed with
// nacl/secretbox (grounded on
// command/bitmark-cli/configuration/encrypt.go's encryptData/
// decryptData pair) so the cached app private key is not left in
// plaintext on disk; this repository does not itself derive that key
// from a password (spec section 1 Non-goals: "does not own a key-
// lifecycle or recovery policy") — the caller supplies it already
// derived.
type FileStore struct {
	mu   sync.Mutex
	path string
	key  *[32]byte
}

// NewFileStore returns a FileStore writing to path. A nil key leaves
// the file as plaintext JSON.
func NewFileStore(path string, key *[32]byte) *FileStore {
	return &FileStore{path: path, key: key}
}

func (s *FileStore) Load() (PersistentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := ioutil.ReadFile(s.path)
	if nil != err {
		if os.IsNotExist(err) {
			return emptyState(), nil
		}
		return PersistentState{}, fault.RemoteIOError(err.Error())
	}

	plaintext := raw
	if nil != s.key {
		plaintext, err = decryptBlob(raw, s.key)
		if nil != err {
			return PersistentState{}, err
		}
	}

	var state PersistentState
	if err := json.Unmarshal(plaintext, &state); nil != err {
		return PersistentState{}, fault.RemoteIOError(err.Error())
	}
	return state, nil
}

func (s *FileStore) Save(state PersistentState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plaintext, err := json.Marshal(state)
	if nil != err {
		return fault.RemoteIOError(err.Error())
	}

	out := plaintext
	if nil != s.key {
		out, err = encryptBlob(plaintext, s.key)
		if nil != err {
			return err
		}
	}

	return ioutil.WriteFile(s.path, out, 0600)
}

func encryptBlob(plaintext []byte, key *[32]byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); nil != err {
		return nil, fault.RemoteIOError("could not generate nonce")
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

func decryptBlob(sealed []byte, key *[32]byte) ([]byte, error) {
	if len(sealed) <= 24 {
		return nil, fault.InvalidError("encrypted session file is too short")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plaintext, ok := secretbox.Open(nil, sealed[24:], &nonce, key)
	if !ok {
		return nil, fault.InvalidError("could not decrypt session file")
	}
	return plaintext, nil
}
