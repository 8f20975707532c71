// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package session holds the durable persistent-state blob (session
// token, app private key, per-(owner,app) mount contexts, partial-
// create failure flags) behind a TTL cache for mount contexts (spec
// section 4.5, section 5, section 6's "Persistent state layout").
//
// See DESIGN.md, section "session", for the grounding ledger entry.
package session
