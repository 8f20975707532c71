// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"math/big"

	"github.com/btcsuite/btcd/btcec"

	"github.com/bitmark-inc/vaultstore/fault"
)

const signatureComponentLength = 32

// SignRawData signs the sha256 digest of buf with priv and returns the
// base64 encoding of R||S, each left-zero-padded to 32 bytes (spec
// section 4.1). If precomputedHash is supplied it is used verbatim
// instead of re-hashing buf — callers that already computed
// HashDataPayload use this to avoid hashing twice.
func SignRawData(buf []byte, priv *KeyPair, precomputedHash ...[]byte) (string, error) {
	if !priv.CanSign() {
		return "", fault.ErrAuthenticationRequired
	}

	digest, err := rawDataDigest(buf, precomputedHash...)
	if nil != err {
		return "", err
	}

	signature, err := priv.btcecPrivateKey().Sign(digest)
	if nil != err {
		return "", err
	}
	return encodeSignature(signature), nil
}

func rawDataDigest(buf []byte, precomputedHash ...[]byte) ([]byte, error) {
	if len(precomputedHash) > 0 && nil != precomputedHash[0] {
		if len(precomputedHash[0]) != signatureComponentLength {
			return nil, fault.ErrInvalidKeyLength
		}
		return precomputedHash[0], nil
	}
	sum := sha256.Sum256(buf)
	return sum[:], nil
}

// SignDataPayload signs str under the length-framed payload hash (spec
// section 4.1) and returns the base64 R||S signature. This is the form
// used to sign every mutable-data envelope and tombstone.
func SignDataPayload(str string, priv *KeyPair) (string, error) {
	digest := hashDataPayloadBytes([]byte(str))
	return SignRawData([]byte(str), priv, digest[:])
}

// VerifySignature checks a base64 R||S signature against the
// length-framed payload hash of str, using an arbitrary (possibly
// public-only) KeyPair. Not required for the client's own operation
// (spec section 1 Non-goals: "does not verify peer signatures
// end-to-end") but provided for tests that round-trip a signature.
func VerifySignature(str string, sigB64 string, pub *KeyPair) (bool, error) {
	digest := hashDataPayloadBytes([]byte(str))
	return verifyDigest(digest[:], sigB64, pub)
}

func verifyDigest(digest []byte, sigB64 string, pub *KeyPair) (bool, error) {
	raw, err := base64.StdEncoding.DecodeString(sigB64)
	if nil != err {
		return false, fault.ErrInvalidSignatureLength
	}
	if len(raw) != 2*signatureComponentLength {
		return false, fault.ErrInvalidSignatureLength
	}
	sig := &btcec.Signature{
		R: new(big.Int).SetBytes(raw[:signatureComponentLength]),
		S: new(big.Int).SetBytes(raw[signatureComponentLength:]),
	}
	return sig.Verify(digest, pub.public), nil
}

// encodeSignature formats a btcec signature as base64(R||S), each
// component left-zero-padded to 32 bytes (spec section 4.1, section 8
// boundary case: "Signature r or s shorter than 32 bytes is left
// zero-padded").
func encodeSignature(sig *btcec.Signature) string {
	raw := make([]byte, 2*signatureComponentLength)
	rBytes := sig.R.Bytes()
	sBytes := sig.S.Bytes()
	copy(raw[signatureComponentLength-len(rBytes):signatureComponentLength], rBytes)
	copy(raw[2*signatureComponentLength-len(sBytes):], sBytes)
	return base64.StdEncoding.EncodeToString(raw)
}
