// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crypto

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/bitmark-inc/vaultstore/fault"
)

// StableJSON produces the canonical serialization every signed object in
// the protocol is built from: object keys sorted lexicographically by
// code point, arrays preserved in order, undefined (nil map value)
// entries omitted, and an explicit error — never infinite recursion — on
// a cyclic structure (spec sections 3, 9). The identical string must be
// produced by any implementation given the same logical value, so this
// walks a generic value tree (as produced by json.Unmarshal into
// interface{}, or built up by hand) rather than relying on
// encoding/json's own (unordered-for-maps-by-default, cycle-unsafe for
// structs) marshaling.
func StableJSON(v interface{}) (string, error) {
	var buf strings.Builder
	seen := map[uintptr]bool{}
	if err := writeStable(&buf, v, seen); nil != err {
		return "", err
	}
	return buf.String(), nil
}

// StableJSONOfStruct normalizes an arbitrary JSON-taggable Go value (a
// struct, map, or slice of them) through one encoding/json round trip —
// which is itself incapable of representing a cycle, so this path can
// never observe one — and then serializes the result with StableJSON.
// Use this for typed wire structs; use StableJSON directly when the
// caller already has a map[string]interface{} it wants sorted (and
// potentially cycle-checked).
func StableJSONOfStruct(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if nil != err {
		return "", err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); nil != err {
		return "", err
	}
	return StableJSON(generic)
}

func writeStable(buf *strings.Builder, v interface{}, seen map[uintptr]bool) error {
	switch value := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if value {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case string:
		buf.WriteString(encodeJSONString(value))
		return nil
	case float64:
		buf.WriteString(formatNumber(value))
		return nil
	case int:
		buf.WriteString(strconv.Itoa(value))
		return nil
	case int64:
		buf.WriteString(strconv.FormatInt(value, 10))
		return nil
	case uint64:
		buf.WriteString(strconv.FormatUint(value, 10))
		return nil
	case json.Number:
		buf.WriteString(string(value))
		return nil
	case map[string]interface{}:
		ptr := reflect.ValueOf(value).Pointer()
		if 0 != ptr && seen[ptr] {
			return fault.ErrCyclicStructure
		}
		seen[ptr] = true
		defer delete(seen, ptr)
		return writeStableObject(buf, value, seen)
	case []interface{}:
		ptr := reflect.ValueOf(value).Pointer()
		if 0 != ptr && seen[ptr] {
			return fault.ErrCyclicStructure
		}
		seen[ptr] = true
		defer delete(seen, ptr)
		return writeStableArray(buf, value, seen)
	default:
		return writeStableReflected(buf, v, seen)
	}
}

// writeStableReflected handles slices and maps whose element type is not
// exactly interface{} (common when a caller builds a value with a
// concrete slice/map type instead of going through StableJSONOfStruct),
// plus cycle detection on both.
func writeStableReflected(buf *strings.Builder, v interface{}, seen map[uintptr]bool) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		ptr := rv.Pointer()
		if ptr != 0 {
			if seen[ptr] {
				return fault.ErrCyclicStructure
			}
			seen[ptr] = true
			defer delete(seen, ptr)
		}
		keys := rv.MapKeys()
		pairs := make(map[string]interface{}, len(keys))
		for _, k := range keys {
			pairs[fmt.Sprintf("%v", k.Interface())] = rv.MapIndex(k).Interface()
		}
		return writeStableObject(buf, pairs, seen)
	case reflect.Slice, reflect.Array:
		if reflect.Slice == rv.Kind() {
			ptr := rv.Pointer()
			if ptr != 0 {
				if seen[ptr] {
					return fault.ErrCyclicStructure
				}
				seen[ptr] = true
				defer delete(seen, ptr)
			}
		}
		items := make([]interface{}, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return writeStableArray(buf, items, seen)
	default:
		encoded, err := json.Marshal(v)
		if nil != err {
			return err
		}
		var generic interface{}
		if err := json.Unmarshal(encoded, &generic); nil != err {
			return err
		}
		return writeStable(buf, generic, seen)
	}
}

func writeStableObject(buf *strings.Builder, obj map[string]interface{}, seen map[uintptr]bool) error {
	keys := make([]string, 0, len(obj))
	for k, v := range obj {
		if nil == v {
			continue // undefined values are omitted
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(encodeJSONString(k))
		buf.WriteByte(':')
		if err := writeStable(buf, obj[k], seen); nil != err {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeStableArray(buf *strings.Builder, arr []interface{}, seen map[uintptr]bool) error {
	buf.WriteByte('[')
	for i, item := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeStable(buf, item, seen); nil != err {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

// encodeJSONString renders s as a double-quoted JSON string without
// encoding/json's HTML-safe escaping of '<', '>', '&' — the reference
// JS implementation's JSON.stringify never escapes those, and a signed
// payload must serialize identically everywhere (spec sections 3, 9).
// Only the characters JSON itself requires escaped are escaped; every
// other rune, including non-ASCII, passes through as-is.
func encodeJSONString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// formatNumber renders a float64 the way encoding/json would for an
// integral value decoded from JSON (no trailing ".0"), while still
// supporting genuine fractional values.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
