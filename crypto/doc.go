// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package crypto implements the datastore protocol's cryptographic core:
// secp256k1 keypair derivation, Base58Check datastore-id addressing, the
// payload-hashing scheme used for every signature, the signing envelope
// itself, and the stable (canonical) JSON serialization that every signed
// object is built from.
//
// See DESIGN.md, section "crypto", for the grounding ledger entry.
package crypto
