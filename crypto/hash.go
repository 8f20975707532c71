// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// HashRawData returns the plain sha256 hex digest of buf (spec section
// 4.1). File entries do not use it: their data_hash comes from
// HashDataPayload.
func HashRawData(buf []byte) string {
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// HashDataPayload computes the length-framed digest used everywhere a
// payload is signed: sha256( ASCII(len(buf)) || ":" || buf || "," ).
// This framing is non-negotiable (spec section 3 invariants, section
// 4.1) — any deviation produces a hash, and therefore a signature, that
// peers will reject.
func HashDataPayload(buf []byte) string {
	sum := hashDataPayloadBytes(buf)
	return hex.EncodeToString(sum[:])
}

func hashDataPayloadBytes(buf []byte) [32]byte {
	framed := frameDataPayload(buf)
	return sha256.Sum256(framed)
}

// frameDataPayload builds the exact byte sequence that gets hashed and
// signed for a payload: its length as ASCII decimal, a colon, the raw
// bytes, and a trailing comma.
func frameDataPayload(buf []byte) []byte {
	prefix := strconv.Itoa(len(buf)) + ":"
	framed := make([]byte, 0, len(prefix)+len(buf)+1)
	framed = append(framed, prefix...)
	framed = append(framed, buf...)
	framed = append(framed, ',')
	return framed
}
