// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"time"

	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/primitives"
	"github.com/trejkaz/hex-components/lib/value"
)

// epochTime decodes an integer count of units since an epoch. Values
// outside any sensible calendar range are represented, not rejected.
type epochTime struct {
	name  string
	width int
	order primitives.ByteOrder
	epoch time.Time

	// unsigned counts are read as uint64; millis converts the raw
	// count to milliseconds.
	unsigned bool
	millis   func(raw int64) int64
}

// secondsToMillis wraps in two's complement for counts beyond about
// ±9.2e15 seconds; the wrapped instant is what such a value decodes to.
func secondsToMillis(raw int64) int64 { return raw * 1000 }

func millisToMillis(raw int64) int64 { return raw }

// fileTimeTicksPerMilli is the number of 100ns FILETIME ticks in a
// millisecond.
const fileTimeTicksPerMilli = 10_000

func (e epochTime) Name() string          { return e.name }
func (e epochTime) Options() Options      { return nil }
func (e epochTime) ValueLength() uint64   { return uint64(e.width) }
func (e epochTime) ValueKind() value.Kind { return value.KindDateTime }

func (e epochTime) Interpret(b binary.Binary, position uint64) (value.Value, error) {
	var millis int64
	if e.unsigned {
		raw, err := e.order.Unsigned(b, position, e.width)
		if err != nil {
			return nil, err
		}
		// Dividing first keeps every uint64 tick count in range.
		millis = int64(raw / fileTimeTicksPerMilli)
	} else {
		raw, err := e.order.Signed(b, position, e.width)
		if err != nil {
			return nil, err
		}
		millis = e.millis(raw)
	}
	return value.DateTime{Epoch: e.epoch, Millis: millis, Size: uint64(e.width)}, nil
}

// MS-DOS packs a date as day:5 month:4 year:7 and a time as
// seconds/2:5 minute:6 hour:5, least significant field first.
var (
	dosDay    = primitives.MustLowest[uint16](5)
	dosMonth  = dosDay.MustNext(4)
	dosYear   = dosMonth.MustNext(7)
	dosSecond = primitives.MustLowest[uint16](5)
	dosMinute = dosSecond.MustNext(6)
	dosHour   = dosMinute.MustNext(5)
)

const dosYearBase = 1980

type dosDate struct{}

func (dosDate) Name() string          { return "dos_date" }
func (dosDate) Options() Options      { return nil }
func (dosDate) ValueLength() uint64   { return 2 }
func (dosDate) ValueKind() value.Kind { return value.KindDate }

func (dosDate) Interpret(b binary.Binary, position uint64) (value.Value, error) {
	packed, err := primitives.LittleEndian.Uint16(b, position)
	if err != nil {
		return nil, err
	}
	return value.Date{
		Year:  int(dosYear.Evaluate(packed)) + dosYearBase,
		Month: int(dosMonth.Evaluate(packed)),
		Day:   int(dosDay.Evaluate(packed)),
		Size:  2,
	}, nil
}

type dosTime struct{}

func (dosTime) Name() string          { return "dos_time" }
func (dosTime) Options() Options      { return nil }
func (dosTime) ValueLength() uint64   { return 2 }
func (dosTime) ValueKind() value.Kind { return value.KindTime }

func (dosTime) Interpret(b binary.Binary, position uint64) (value.Value, error) {
	packed, err := primitives.LittleEndian.Uint16(b, position)
	if err != nil {
		return nil, err
	}
	return value.Time{
		Hour:   int(dosHour.Evaluate(packed)),
		Minute: int(dosMinute.Evaluate(packed)),
		Second: int(dosSecond.Evaluate(packed)) * 2,
		Size:   2,
	}, nil
}
