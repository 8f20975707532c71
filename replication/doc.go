// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package replication selects the drivers that satisfy a datastore's
// replication strategy (spec section 4.3).
//
// See DESIGN.md, section "replication", for the grounding ledger entry.
package replication
