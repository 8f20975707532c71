// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schema provides small hand-written validators for the wire
// shapes exchanged with the gateway, in place of a generic JSON-Schema
// engine (spec section 4.10).
//
// See DESIGN.md, section "schema", for the grounding ledger entry.
package schema
