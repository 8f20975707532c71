// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"
)

const (
	mountCacheExpiry  = 5 * time.Minute
	mountCacheCleanup = 10 * time.Minute
)

// Manager wraps a durable Store with an in-memory TTL cache of mount
// contexts, exactly the "TTL cache in front of a durable store" shape
// storage/cache.go's dbCache gives the teacher's leveldb access layer.
// Partial-create failure flags and the session token/app key are read
// through to the Store directly — they are consulted rarely and must
// always reflect the latest durable write.
type Manager struct {
	mu    sync.Mutex
	store Store
	mount *cache.Cache
	log   *logger.L
}

// NewManager wraps store with a fresh mount-context cache.
func NewManager(store Store, log *logger.L) *Manager {
	return &Manager{
		store: store,
		mount: cache.New(mountCacheExpiry, mountCacheCleanup),
		log:   log,
	}
}

func (m *Manager) withState(mutate func(*PersistentState) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.store.Load()
	if nil != err {
		return err
	}
	if err := mutate(&state); nil != err {
		return err
	}
	return m.store.Save(state)
}

// GetMountContext returns the cached context for (owner, appName), if
// any. A cache hit avoids touching the Store; a miss falls through to
// the durable state and repopulates the cache on success.
func (m *Manager) GetMountContext(owner, appName string) (*MountContext, bool, error) {
	key := contextKey(owner, appName)

	if cached, found := m.mount.Get(key); found {
		ctx := cached.(MountContext)
		return &ctx, true, nil
	}

	m.mu.Lock()
	state, err := m.store.Load()
	m.mu.Unlock()
	if nil != err {
		return nil, false, err
	}

	ctx, found := state.DatastoreContexts[key]
	if !found {
		return nil, false, nil
	}
	m.mount.Set(key, ctx, cache.DefaultExpiration)
	return &ctx, true, nil
}

// SetMountContext persists ctx under (owner, appName) and refreshes
// the cache entry.
func (m *Manager) SetMountContext(owner, appName string, ctx MountContext) error {
	key := contextKey(owner, appName)
	err := m.withState(func(state *PersistentState) error {
		if nil == state.DatastoreContexts {
			state.DatastoreContexts = map[string]MountContext{}
		}
		state.DatastoreContexts[key] = ctx
		return nil
	})
	if nil != err {
		return err
	}
	m.mount.Set(key, ctx, cache.DefaultExpiration)
	if nil != m.log {
		m.log.Debugf("session: mount context cached for %s", key)
	}
	return nil
}

// InvalidateMountContext evicts the cache entry for (owner, appName)
// without touching durable state, for callers that know a cached
// context is stale (e.g. after observing a 404 on a previously-mounted
// datastore).
func (m *Manager) InvalidateMountContext(owner, appName string) {
	m.mount.Delete(contextKey(owner, appName))
}

// PartialCreateFailureIsSet reports spec section 4.5's persistent
// partial-create flag for (blockchainID, appName).
func (m *Manager) PartialCreateFailureIsSet(blockchainID, appName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, err := m.store.Load()
	if nil != err {
		return false, err
	}
	return state.PartialCreateFailures[failureKey(blockchainID, appName)], nil
}

// PartialCreateFailureSet records the flag, per "datastoreCreateSetRetry"
// (spec section 4.5).
func (m *Manager) PartialCreateFailureSet(blockchainID, appName string) error {
	key := failureKey(blockchainID, appName)
	return m.withState(func(state *PersistentState) error {
		if nil == state.PartialCreateFailures {
			state.PartialCreateFailures = map[string]bool{}
		}
		state.PartialCreateFailures[key] = true
		return nil
	})
}

// PartialCreateFailureClear clears the flag, as a successful create
// does (spec section 4.5: "Success clears the flag.").
func (m *Manager) PartialCreateFailureClear(blockchainID, appName string) error {
	key := failureKey(blockchainID, appName)
	return m.withState(func(state *PersistentState) error {
		delete(state.PartialCreateFailures, key)
		return nil
	})
}

// ObservedRootIsSet reports whether this device has ever previously
// fetched a root page for (datastoreID, rootUUID) — spec section 4.7's
// "the cache reports any previously-observed version for (datastore_id,
// root_uuid, this device)".
func (m *Manager) ObservedRootIsSet(datastoreID, rootUUID, deviceID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, err := m.store.Load()
	if nil != err {
		return false, err
	}
	return state.ObservedRoots[observedRootKey(datastoreID, rootUUID, deviceID)], nil
}

// ObservedRootMark records that a root page for (datastoreID, rootUUID,
// deviceID) has now been seen at least once.
func (m *Manager) ObservedRootMark(datastoreID, rootUUID, deviceID string) error {
	key := observedRootKey(datastoreID, rootUUID, deviceID)
	return m.withState(func(state *PersistentState) error {
		if nil == state.ObservedRoots {
			state.ObservedRoots = map[string]bool{}
		}
		state.ObservedRoots[key] = true
		return nil
	})
}

// SessionToken returns the persisted core session token.
func (m *Manager) SessionToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, err := m.store.Load()
	if nil != err {
		return "", err
	}
	return state.CoreSessionToken, nil
}

// SetSessionToken persists a new core session token.
func (m *Manager) SetSessionToken(token string) error {
	return m.withState(func(state *PersistentState) error {
		state.CoreSessionToken = token
		return nil
	})
}

// AppPrivateKey returns the persisted app private key, hex-encoded.
func (m *Manager) AppPrivateKey() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, err := m.store.Load()
	if nil != err {
		return "", err
	}
	return state.AppPrivateKey, nil
}

// SetAppPrivateKey persists a new app private key.
func (m *Manager) SetAppPrivateKey(privateKeyHex string) error {
	return m.withState(func(state *PersistentState) error {
		state.AppPrivateKey = privateKeyHex
		return nil
	})
}
