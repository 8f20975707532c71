// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/vaultstore/fault"
)

// Validator checks an already-decoded JSON value (string, float64,
// bool, nil, map[string]interface{}, []interface{}) and reports the
// first violation found. Every error returned is a fault.InvalidError,
// so callers classify failures with fault.IsErrInvalid exactly as they
// would any other validation failure in this repository.
type Validator func(v interface{}) error

// Object validates a JSON object against one Validator per field.
// Fields absent from v are passed to their Validator as nil, so a
// field is only mandatory if wrapped in Required.
func Object(fields map[string]Validator) Validator {
	return func(v interface{}) error {
		obj, ok := v.(map[string]interface{})
		if !ok {
			return fault.InvalidError("expected an object")
		}
		for name, validate := range fields {
			if err := validate(obj[name]); nil != err {
				return fault.InvalidError(fmt.Sprintf("field %q: %s", name, err))
			}
		}
		return nil
	}
}

// Required rejects a missing (nil) or empty-string value before
// delegating to inner.
func Required(inner Validator) Validator {
	return func(v interface{}) error {
		if nil == v {
			return fault.InvalidError("required value is missing")
		}
		if s, ok := v.(string); ok && "" == s {
			return fault.InvalidError("required value is empty")
		}
		return inner(v)
	}
}

// Optional passes a nil value and only runs inner against a present one.
func Optional(inner Validator) Validator {
	return func(v interface{}) error {
		if nil == v {
			return nil
		}
		return inner(v)
	}
}

// String validates that v is a JSON string, with no further constraint.
func String() Validator {
	return func(v interface{}) error {
		if _, ok := v.(string); !ok {
			return fault.InvalidError("expected a string")
		}
		return nil
	}
}

// Hex validates that v is a string of an even number of hex digits.
func Hex() Validator {
	return func(v interface{}) error {
		s, ok := v.(string)
		if !ok {
			return fault.InvalidError("expected a hex string")
		}
		if _, err := hex.DecodeString(s); nil != err {
			return fault.InvalidError("expected a hex string")
		}
		return nil
	}
}

// Base58 validates that v is a string decodable as base58.
func Base58() Validator {
	return func(v interface{}) error {
		s, ok := v.(string)
		if !ok {
			return fault.InvalidError("expected a base58 string")
		}
		if _, err := base58.Decode(s); nil != err {
			return fault.InvalidError("expected a base58 string")
		}
		return nil
	}
}

// Positive validates that v is a JSON number greater than zero.
func Positive() Validator {
	return func(v interface{}) error {
		n, ok := asNumber(v)
		if !ok {
			return fault.InvalidError("expected a number")
		}
		if n <= 0 {
			return fault.InvalidError("expected a positive number")
		}
		return nil
	}
}

// NonNegative validates that v is a JSON number greater than or equal
// to zero, used for timestamps that may legitimately be zero.
func NonNegative() Validator {
	return func(v interface{}) error {
		n, ok := asNumber(v)
		if !ok {
			return fault.InvalidError("expected a number")
		}
		if n < 0 {
			return fault.InvalidError("expected a non-negative number")
		}
		return nil
	}
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, nil == err
	default:
		return 0, false
	}
}

// OneOf validates that v is a string equal to one of options.
func OneOf(options ...string) Validator {
	return func(v interface{}) error {
		s, ok := v.(string)
		if !ok {
			return fault.InvalidError("expected a string")
		}
		for _, opt := range options {
			if opt == s {
				return nil
			}
		}
		return fault.InvalidError(fmt.Sprintf("expected one of %v, got %q", options, s))
	}
}

// Each validates that v is a JSON array each of whose elements
// satisfies inner.
func Each(inner Validator) Validator {
	return func(v interface{}) error {
		arr, ok := v.([]interface{})
		if !ok {
			return fault.InvalidError("expected an array")
		}
		for i, item := range arr {
			if err := inner(item); nil != err {
				return fault.InvalidError(fmt.Sprintf("index %d: %s", i, err))
			}
		}
		return nil
	}
}

// MapOf validates that v is a JSON object each of whose values
// satisfies inner, irrespective of key.
func MapOf(inner Validator) Validator {
	return func(v interface{}) error {
		obj, ok := v.(map[string]interface{})
		if !ok {
			return fault.InvalidError("expected an object")
		}
		for key, item := range obj {
			if err := inner(item); nil != err {
				return fault.InvalidError(fmt.Sprintf("key %q: %s", key, err))
			}
		}
		return nil
	}
}
