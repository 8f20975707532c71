// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blob wraps a named payload in the mutable-data envelope and
// produces the signed tombstones used to retract one (spec section 4.2).
//
// See DESIGN.md, section "blob", for the grounding ledger entry.
package blob
