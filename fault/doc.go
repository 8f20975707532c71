// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault classifies every error the vault client can return
// into one of a small set of named types (ExistsError, InvalidError,
// NotFoundError, ...), each mapping onto a wire-independent outcome of
// the datastore protocol. Callers compare against the IsErrX
// predicates instead of matching error strings, and gatewayhttp uses
// the same classes to translate an HTTP status into the right one.
package fault
