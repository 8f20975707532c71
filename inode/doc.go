// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package inode holds the device-root directory page and its pure,
// side-effect-free transformations (spec section 4.4).
//
// See DESIGN.md, section "inode", for the grounding ledger entry.
package inode
