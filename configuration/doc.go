// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration loads vault-cli's JSON configuration file: the
// gateway to connect to, this device's identity, and logging settings,
// following the same one-struct-with-defaults-merged-in shape as
// bitmarkd's own configuration, minus the UCL parser this client has
// no need to carry.
package configuration
