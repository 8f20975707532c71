// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blob

import (
	"strings"

	"github.com/bitmark-inc/vaultstore/crypto"
)

// DataInfo is the mutable-data envelope: the exact shape that gets
// canonically serialized and signed for every mutable object in the
// protocol (spec section 3, "Mutable-data envelope").
type DataInfo struct {
	FqDataID  string `json:"fq_data_id"`
	Data      string `json:"data"`
	Version   int    `json:"version"`
	Timestamp int64  `json:"timestamp"`
}

// schemaEnvelopeVersion is the constant the protocol uses for every
// mutable-data envelope; monotonicity is carried entirely by the
// device-root timestamp, not this field (spec section 9, open question
// on "version").
const schemaEnvelopeVersion = 1

// MakeFullyQualifiedDataId builds the device-scoped, percent-encoded
// identifier every mutable-data envelope is keyed by (spec section 4.2):
// any "/" in dataID is first replaced with the literal two characters
// "\x2f", the result is joined to deviceID with ":", and the whole
// string is then percent-encoded using the legacy ECMAScript `escape()`
// character set — letters, digits, and "@*_+-./" pass through
// unescaped, everything else becomes %XX uppercase hex (spec section
// 4.2, section 8 boundary case on "/" escaping).
func MakeFullyQualifiedDataId(deviceID, dataID string) string {
	escapedSlashes := strings.ReplaceAll(dataID, "/", `\x2f`)
	combined := deviceID + ":" + escapedSlashes
	return legacyEscape(combined)
}

// EncodeName percent-encodes a device-root files/tombstones map key
// (spec section 3: the maps are keyed by "url-encoded name") using the
// same legacy-escape character set as MakeFullyQualifiedDataId, minus
// that function's "/"-to-"\x2f" substitution step — a device-root name
// is not being joined to a device id with ":", so there is nothing for
// the substitution to disambiguate.
func EncodeName(name string) string {
	return legacyEscape(name)
}

const legacyEscapeSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789@*_+-./"

// legacyEscape reproduces the behavior of ECMAScript's global `escape()`
// function (spec section 4.2: "RFC 3986 escape semantics"), not
// encodeURIComponent — the safe set intentionally includes '.' and '/'.
func legacyEscape(s string) string {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(legacyEscapeSafe, c) >= 0 {
			buf.WriteByte(c)
			continue
		}
		buf.WriteString("%")
		buf.WriteString(strings.ToUpper(hexByte(c)))
	}
	return buf.String()
}

const hexDigits = "0123456789abcdef"

func hexByte(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0f]})
}

// MakeDataInfo builds the provisional envelope for a freshly-written
// payload (spec section 4.2). version is always schemaEnvelopeVersion —
// this layer never increments it; the device-root timestamp carries
// monotonicity instead. If an explicit fully-qualified id is not
// supplied, one is derived from deviceID and dataID.
func MakeDataInfo(dataID, dataPayloadB64, deviceID string, nowMs int64, fqDataID ...string) DataInfo {
	fq := ""
	if len(fqDataID) > 0 && "" != fqDataID[0] {
		fq = fqDataID[0]
	} else {
		fq = MakeFullyQualifiedDataId(deviceID, dataID)
	}
	return DataInfo{
		FqDataID:  fq,
		Data:      dataPayloadB64,
		Version:   schemaEnvelopeVersion,
		Timestamp: nowMs,
	}
}

// Serialize produces the canonical byte sequence that gets signed for
// this envelope (spec section 3).
func (d DataInfo) Serialize() (string, error) {
	return crypto.StableJSONOfStruct(d)
}

// Sign canonically serializes and signs this envelope, returning the
// base64 signature to accompany it on the wire.
func (d DataInfo) Sign(priv *crypto.KeyPair) (string, error) {
	serialized, err := d.Serialize()
	if nil != err {
		return "", err
	}
	return crypto.SignDataPayload(serialized, priv)
}
