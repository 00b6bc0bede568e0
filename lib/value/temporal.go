// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"time"
)

// UnixEpoch is 1970-01-01T00:00:00Z.
var UnixEpoch = time.Unix(0, 0).UTC()

// FileTimeEpoch is 1601-01-01T00:00:00Z, the origin of Windows
// FILETIME values.
var FileTimeEpoch = time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)

// Date is a calendar date with no time zone. Fields are kept exactly
// as decoded, so an invalid date such as month 0 survives a round
// trip.
type Date struct {
	Year  int
	Month int
	Day   int
	Size  uint64
}

func (v Date) Kind() Kind     { return KindDate }
func (v Date) Length() uint64 { return v.Size }

func (v Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", v.Year, v.Month, v.Day)
}

func (v Date) Equal(o Value) bool {
	other, ok := o.(Date)
	return ok && other == v
}

// Time is a time of day with no date or time zone.
type Time struct {
	Hour   int
	Minute int
	Second int
	Size   uint64
}

func (v Time) Kind() Kind     { return KindTime }
func (v Time) Length() uint64 { return v.Size }

func (v Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", v.Hour, v.Minute, v.Second)
}

func (v Time) Equal(o Value) bool {
	other, ok := o.(Time)
	return ok && other == v
}

// DateTime is an instant stored as milliseconds from an epoch.
type DateTime struct {
	Epoch  time.Time
	Millis int64
	Size   uint64
}

// Time returns the instant in UTC.
func (v DateTime) Time() time.Time {
	seconds := v.Millis / 1000
	remainder := v.Millis % 1000
	return time.Unix(v.Epoch.Unix()+seconds, int64(v.Epoch.Nanosecond())+remainder*int64(time.Millisecond)).UTC()
}

func (v DateTime) Kind() Kind     { return KindDateTime }
func (v DateTime) Length() uint64 { return v.Size }

func (v DateTime) String() string {
	return v.Time().Format("2006-01-02T15:04:05.000Z07:00")
}

func (v DateTime) Equal(o Value) bool {
	other, ok := o.(DateTime)
	return ok && other.Size == v.Size && other.Millis == v.Millis && other.Epoch.Equal(v.Epoch)
}
