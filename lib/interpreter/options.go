// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"fmt"
	"maps"
	"math"
)

// Options configures an interpreter at creation time. Keys are
// human-readable option names such as "decimal places". Unrecognized
// keys are ignored and missing keys take the kind's default.
//
// Values arrive from several decoders: CBOR yields uint64 and int64,
// JSON yields float64, and Go callers pass int. The accessors accept
// all of them as long as the value is integral and in range.
type Options map[string]any

// Int returns the integer option named key, or def when absent.
func (o Options) Int(key string, def int) (int, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return def, nil
	}
	var wide int64
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		wide = int64(v)
	case int16:
		wide = int64(v)
	case int32:
		wide = int64(v)
	case int64:
		wide = v
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, fmt.Errorf("%w: option %q: %d out of range", ErrArgument, key, v)
		}
		wide = int64(v)
	case uint8:
		wide = int64(v)
	case uint16:
		wide = int64(v)
	case uint32:
		wide = int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%w: option %q: %d out of range", ErrArgument, key, v)
		}
		wide = int64(v)
	case float32:
		return floatOption(key, float64(v))
	case float64:
		return floatOption(key, v)
	default:
		return 0, fmt.Errorf("%w: option %q: want an integer, got %T", ErrArgument, key, raw)
	}
	if wide < math.MinInt || wide > math.MaxInt {
		return 0, fmt.Errorf("%w: option %q: %d out of range", ErrArgument, key, wide)
	}
	return int(wide), nil
}

func floatOption(key string, v float64) (int, error) {
	if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: option %q: %v is not a usable integer", ErrArgument, key, v)
	}
	return int(v), nil
}

// String returns the string option named key, or def when absent.
func (o Options) String(key string, def string) (string, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: option %q: want a string, got %T", ErrArgument, key, raw)
	}
	return s, nil
}

// Bool returns the boolean option named key, or def when absent.
func (o Options) Bool(key string, def bool) (bool, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%w: option %q: want a boolean, got %T", ErrArgument, key, raw)
	}
	return b, nil
}

// Clone returns a shallow copy, so callers can keep an interpreter's
// options without sharing the map.
func (o Options) Clone() Options {
	return maps.Clone(o)
}
