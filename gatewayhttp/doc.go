// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gatewayhttp is the single HTTP request helper every gateway
// endpoint binding goes through, mapping transport and status-code
// failures onto the fault taxonomy (spec section 6.1).
//
// See DESIGN.md, section "gatewayhttp", for the grounding ledger entry.
package gatewayhttp
