// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crypto_test

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/bitmark-inc/vaultstore/crypto"
)

func TestHashRawData(t *testing.T) {
	buf := []byte("hello world")
	expected := sha256.Sum256(buf)
	got := crypto.HashRawData(buf)
	if got != hex.EncodeToString(expected[:]) {
		t.Fatalf("expected %x, got %s", expected, got)
	}
}

// invariant 2: hashDataPayload(b) = sha256_hex(len(b) ":" || b || ",")
func TestHashDataPayloadFraming(t *testing.T) {
	cases := [][]byte{
		[]byte(""),
		[]byte("hello world"),
		[]byte("{\"a\":1}"),
	}
	for _, buf := range cases {
		framed := []byte(fmt.Sprintf("%d:", len(buf)))
		framed = append(framed, buf...)
		framed = append(framed, ',')
		expected := sha256.Sum256(framed)

		got := crypto.HashDataPayload(buf)
		if got != hex.EncodeToString(expected[:]) {
			t.Fatalf("for buf %q: expected %x, got %s", buf, expected, got)
		}
	}
}
