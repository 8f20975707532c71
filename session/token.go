// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// AppUserIDFromToken extracts the "app_user_id" claim from a
// JWT-shaped sessionToken, without verifying its signature — the
// gateway already verified the token before honoring the request it
// rides on, so this side only needs to read a claim out of it (spec
// section 4.5, mode 1: single-reader mode can be "derived from
// sessionToken when the session's app_user_id equals the datastore
// id"). ok is false when token is not a three-segment compact JWT, its
// payload segment does not decode, or the claim is absent or empty.
func AppUserIDFromToken(token string) (id string, ok bool) {
	parts := strings.Split(token, ".")
	if 3 != len(parts) {
		return "", false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if nil != err {
		return "", false
	}
	var claims struct {
		AppUserID string `json:"app_user_id"`
	}
	if err := json.Unmarshal(payload, &claims); nil != err {
		return "", false
	}
	if "" == claims.AppUserID {
		return "", false
	}
	return claims.AppUserID, true
}
