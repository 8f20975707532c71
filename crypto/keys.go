// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/bitmark-inc/vaultstore/fault"
)

// AddressVersion is the P2PKH-style version byte prepended before the
// Base58Check checksum when deriving a datastore id from a public key.
const AddressVersion = 0x00

const (
	privateKeyRawLength        = 32
	privateKeyCompressedLength = 33
	compressedFormatMarker     = 0x01
	checksumLength             = 4
)

// KeyPair wraps a secp256k1 private/public key pair, mirroring the
// teacher's account.PrivateKey/account.Account split: the private half
// knows how to sign and derive its own public half, the public half knows
// how to format itself as an address.
type KeyPair struct {
	private *btcec.PrivateKey
	public  *btcec.PublicKey
}

// DecodePrivateKeyHex accepts a 32-byte or 33-byte hex-encoded private
// scalar. When 33 bytes are given and the trailing byte is the
// compressed-format marker 0x01, that marker is stripped before use, per
// spec section 4.1.
func DecodePrivateKeyHex(hexKey string) ([]byte, error) {
	raw, err := hex.DecodeString(hexKey)
	if nil != err {
		return nil, fault.ErrCannotDecodePrivateKey
	}
	return DecodePrivateKeyBytes(raw)
}

// DecodePrivateKeyBytes applies the same 32/33-byte stripping rule as
// DecodePrivateKeyHex to an already-decoded buffer.
func DecodePrivateKeyBytes(raw []byte) ([]byte, error) {
	switch len(raw) {
	case privateKeyRawLength:
		return raw, nil
	case privateKeyCompressedLength:
		if raw[privateKeyCompressedLength-1] != compressedFormatMarker {
			return nil, fault.ErrInvalidKeyLength
		}
		return raw[:privateKeyRawLength], nil
	default:
		return nil, fault.ErrInvalidKeyLength
	}
}

// NewKeyPairFromPrivateKeyHex decodes and derives a full KeyPair from a
// hex-encoded private scalar (see DecodePrivateKeyHex for accepted forms).
func NewKeyPairFromPrivateKeyHex(hexKey string) (*KeyPair, error) {
	raw, err := DecodePrivateKeyHex(hexKey)
	if nil != err {
		return nil, err
	}
	return NewKeyPairFromPrivateKeyBytes(raw)
}

// NewKeyPairFromPrivateKeyBytes derives a full KeyPair from a raw 32-byte
// private scalar.
func NewKeyPairFromPrivateKeyBytes(raw []byte) (*KeyPair, error) {
	if privateKeyRawLength != len(raw) {
		return nil, fault.ErrInvalidKeyLength
	}
	priv, pub := btcec.PrivKeyFromBytes(btcec.S256(), raw)
	return &KeyPair{private: priv, public: pub}, nil
}

// GenerateKeyPair draws a fresh 32-byte private scalar from crypto/rand
// and derives its KeyPair, for the CLI's "generate" command (spec
// section 4.1 names key generation, the teacher's keypair.MakeRawKeyPair
// seeds the equivalent draw from the same source).
func GenerateKeyPair() (*KeyPair, error) {
	raw := make([]byte, privateKeyRawLength)
	n, err := rand.Read(raw)
	if nil != err {
		return nil, err
	}
	if privateKeyRawLength != n {
		return nil, fault.ErrInvalidKeyLength
	}
	return NewKeyPairFromPrivateKeyBytes(raw)
}

// NewKeyPairFromPublicKeyHex builds a public-only KeyPair (no signing
// capability) from a hex-encoded uncompressed public key, for verifying
// peer addresses without holding the corresponding private key.
func NewKeyPairFromPublicKeyHex(hexKey string) (*KeyPair, error) {
	raw, err := hex.DecodeString(hexKey)
	if nil != err {
		return nil, fault.ErrCannotDecodePublicKey
	}
	pub, err := btcec.ParsePubKey(raw, btcec.S256())
	if nil != err {
		return nil, fault.ErrCannotDecodePublicKey
	}
	return &KeyPair{public: pub}, nil
}

// PrivateKeyBytes returns the raw 32-byte private scalar, or nil for a
// public-only KeyPair.
func (k *KeyPair) PrivateKeyBytes() []byte {
	if nil == k.private {
		return nil
	}
	return k.private.Serialize()
}

// PrivateKeyHex returns the hex-encoded raw 32-byte private scalar.
func (k *KeyPair) PrivateKeyHex() string {
	if nil == k.private {
		return ""
	}
	return hex.EncodeToString(k.PrivateKeyBytes())
}

// PublicKeyUncompressed returns the 65-byte uncompressed public key
// (0x04 || X || Y), the only serialization the datastore-id derivation
// and the wire descriptors ever use (spec section 3).
func (k *KeyPair) PublicKeyUncompressed() []byte {
	return k.public.SerializeUncompressed()
}

// PublicKeyHex returns the hex encoding of PublicKeyUncompressed.
func (k *KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKeyUncompressed())
}

// CanSign reports whether this KeyPair holds a private half.
func (k *KeyPair) CanSign() bool {
	return nil != k.private
}

// btcecPrivateKey exposes the underlying key for the sign package.
func (k *KeyPair) btcecPrivateKey() *btcec.PrivateKey {
	return k.private
}

// DatastoreID derives the Base58Check address from this key pair's
// uncompressed public key: RIPEMD160(SHA256(pubkey)) with AddressVersion
// prepended and a double-SHA256 checksum appended (spec sections 3, 4.1).
func (k *KeyPair) DatastoreID() string {
	return AddressFromUncompressedPublicKey(k.PublicKeyUncompressed())
}

// AddressFromUncompressedPublicKey computes the Base58Check datastore id
// for an arbitrary 65-byte uncompressed public key, independent of
// whether the caller holds the private half.
func AddressFromUncompressedPublicKey(pubkey []byte) string {
	sha := sha256.Sum256(pubkey)
	ripe := ripemd160.New()
	ripe.Write(sha[:])
	hash := ripe.Sum(nil)

	payload := make([]byte, 0, 1+len(hash))
	payload = append(payload, AddressVersion)
	payload = append(payload, hash...)

	return base58CheckEncode(payload)
}

// base58CheckEncode appends a double-SHA256 checksum to payload and
// Base58-encodes the result (the standard Bitcoin Base58Check scheme).
func base58CheckEncode(payload []byte) string {
	checksum := doubleSHA256(payload)
	full := make([]byte, 0, len(payload)+checksumLength)
	full = append(full, payload...)
	full = append(full, checksum[:checksumLength]...)
	return base58.Encode(full)
}

// base58CheckDecode reverses base58CheckEncode, verifying the checksum.
func base58CheckDecode(encoded string) ([]byte, error) {
	full, err := base58.Decode(encoded)
	if nil != err {
		return nil, fault.ErrCannotDecodePublicKey
	}
	if len(full) < checksumLength {
		return nil, fault.ErrChecksumMismatch
	}
	checksumStart := len(full) - checksumLength
	payload := full[:checksumStart]
	checksum := doubleSHA256(payload)
	for i := 0; i < checksumLength; i++ {
		if checksum[i] != full[checksumStart+i] {
			return nil, fault.ErrChecksumMismatch
		}
	}
	return payload, nil
}

func doubleSHA256(buf []byte) [32]byte {
	first := sha256.Sum256(buf)
	return sha256.Sum256(first[:])
}

// DatastoreIDFromBase58 validates a Base58Check-encoded datastore id and
// returns the underlying version byte plus RIPEMD160 hash, for callers
// that need to re-verify a peer-supplied id rather than derive their own.
func DatastoreIDFromBase58(id string) (version byte, hash []byte, err error) {
	payload, err := base58CheckDecode(id)
	if nil != err {
		return 0, nil, err
	}
	if len(payload) < 2 {
		return 0, nil, fault.ErrInvalidKeyLength
	}
	return payload[0], payload[1:], nil
}
