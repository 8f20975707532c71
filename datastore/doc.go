// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package datastore implements the create/delete/mount/mount-or-create
// lifecycle, including partial-create failure recovery and concurrent
// device-root discovery across a datastore's device ids (spec section
// 4.5, section 4.7).
//
// See DESIGN.md, section "datastore", for the grounding ledger entry.
package datastore
