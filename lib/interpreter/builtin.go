// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/trejkaz/hex-components/lib/primitives"
	"github.com/trejkaz/hex-components/lib/value"
)

// builtin is one built-in kind with its display text.
type builtin struct {
	kind    string
	english string
	german  string
	factory Factory
}

// static wraps an option-less interpreter as a factory that always
// returns it.
func static(i Interpreter) Factory {
	return func(Options) (Interpreter, error) { return i, nil }
}

var orderNames = map[primitives.ByteOrder][2]string{
	primitives.BigEndian:    {"big endian", "Big Endian"},
	primitives.LittleEndian: {"little endian", "Little Endian"},
}

func builtins() []builtin {
	list := []builtin{
		{"uint8", "Unsigned 8-bit integer", "Vorzeichenlose 8-Bit-Ganzzahl",
			static(integer{name: "uint8", width: 1})},
		{"int8", "Signed 8-bit integer", "Vorzeichenbehaftete 8-Bit-Ganzzahl",
			static(integer{name: "int8", width: 1, signed: true})},
		{"fixed_point", "Fixed-point number", "Festkommazahl", newFixedPoint},
		{"bool", "Boolean", "Wahrheitswert", static(boolean{})},
		{"java_time_be64", "Java time (big endian)", "Java-Zeit (Big Endian)",
			static(epochTime{name: "java_time_be64", width: 8, order: primitives.BigEndian, epoch: value.UnixEpoch, millis: millisToMillis})},
		{"java_time_le64", "Java time (little endian)", "Java-Zeit (Little Endian)",
			static(epochTime{name: "java_time_le64", width: 8, order: primitives.LittleEndian, epoch: value.UnixEpoch, millis: millisToMillis})},
		{"filetime_le64", "Windows FILETIME", "Windows-FILETIME",
			static(epochTime{name: "filetime_le64", width: 8, order: primitives.LittleEndian, epoch: value.FileTimeEpoch, unsigned: true})},
		{"dos_date", "MS-DOS date", "MS-DOS-Datum", static(dosDate{})},
		{"dos_time", "MS-DOS time", "MS-DOS-Uhrzeit", static(dosTime{})},
		{"stringz", "Null-terminated string", "Nullterminierte Zeichenkette", static(stringz{})},
		{"string", "String", "Zeichenkette", newCharsetString(false)},
		{"stringz_charset", "Null-terminated string (charset)", "Nullterminierte Zeichenkette (Zeichensatz)",
			newCharsetString(true)},
	}

	for _, order := range []primitives.ByteOrder{primitives.BigEndian, primitives.LittleEndian} {
		names := orderNames[order]
		for _, width := range []int{2, 4, 8} {
			bits := width * 8
			for _, signed := range []bool{false, true} {
				kind := fmt.Sprintf("uint%d_%s", bits, order)
				english := fmt.Sprintf("Unsigned %d-bit integer (%s)", bits, names[0])
				german := fmt.Sprintf("Vorzeichenlose %d-Bit-Ganzzahl (%s)", bits, names[1])
				if signed {
					kind = fmt.Sprintf("int%d_%s", bits, order)
					english = fmt.Sprintf("Signed %d-bit integer (%s)", bits, names[0])
					german = fmt.Sprintf("Vorzeichenbehaftete %d-Bit-Ganzzahl (%s)", bits, names[1])
				}
				list = append(list, builtin{kind, english, german,
					static(integer{name: kind, width: width, order: order, signed: signed})})
			}
		}

		for _, width := range []int{4, 8} {
			kind := fmt.Sprintf("float%d_%s", width*8, order)
			list = append(list, builtin{kind,
				fmt.Sprintf("%d-bit float (%s)", width*8, names[0]),
				fmt.Sprintf("%d-Bit-Gleitkommazahl (%s)", width*8, names[1]),
				static(float{name: kind, width: width, order: order})})

			kind = fmt.Sprintf("ctime_%s%d", order, width*8)
			list = append(list, builtin{kind,
				fmt.Sprintf("C time, %d-bit (%s)", width*8, names[0]),
				fmt.Sprintf("C-Zeit, %d Bit (%s)", width*8, names[1]),
				static(epochTime{name: kind, width: width, order: order, epoch: value.UnixEpoch, millis: secondsToMillis})})
		}
	}
	return list
}

// RegisterBuiltins adds the built-in kinds and their English and
// German display names to r.
func RegisterBuiltins(r *Registry) error {
	for _, b := range builtins() {
		if err := r.Register(b.kind, b.english, b.factory); err != nil {
			return err
		}
		if err := r.Translate(language.English, b.english, b.english); err != nil {
			return err
		}
		if err := r.Translate(language.German, b.english, b.german); err != nil {
			return err
		}
	}
	return nil
}
