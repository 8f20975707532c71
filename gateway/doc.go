// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gateway is the set of typed wrappers around the remote
// storage gateway's REST endpoints (spec section 6).
//
// See DESIGN.md, section "gateway", for the grounding ledger entry.
package gateway
