// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"errors"
	"fmt"

	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/value"
)

var (
	// ErrArgument is returned for invalid options, lengths and bounds.
	ErrArgument = errors.New("interpreter: invalid argument")

	// ErrKindNotFound is returned by [Registry.Create] for a kind
	// name nobody registered.
	ErrKindNotFound = errors.New("interpreter: kind not found")

	// ErrDuplicateKind is returned when a kind name is registered
	// twice.
	ErrDuplicateKind = errors.New("interpreter: kind already registered")

	// ErrFrozen is returned by [Registry.Register] after
	// [Registry.Freeze].
	ErrFrozen = errors.New("interpreter: registry is frozen")
)

// Interpreter is the common part of every interpreter.
type Interpreter interface {
	// Name is the kind name the interpreter was registered under.
	Name() string

	// ValueKind is the kind of value.Value that decoding produces.
	ValueKind() value.Kind

	// Options returns the options that recreate this interpreter
	// through Registry.Create, or nil when the kind takes none.
	Options() Options
}

// FixedLength is an interpreter that always consumes ValueLength
// bytes.
type FixedLength interface {
	Interpreter
	ValueLength() uint64
	Interpret(b binary.Binary, position uint64) (value.Value, error)
}

// VariableLength is an interpreter that consumes at most length bytes.
// The returned value's Length is the number of bytes actually used.
type VariableLength interface {
	Interpreter
	Interpret(b binary.Binary, position, length uint64) (value.Value, error)
}

// Interpret decodes the range [position, position+length) of b with i.
// A fixed-length interpreter reads exactly its own width from position
// and fails when length is too short to hold it.
func Interpret(i Interpreter, b binary.Binary, position, length uint64) (value.Value, error) {
	switch typed := i.(type) {
	case FixedLength:
		if length < typed.ValueLength() {
			return nil, fmt.Errorf("%w: %s needs %d bytes, range has %d", ErrArgument, typed.Name(), typed.ValueLength(), length)
		}
		return typed.Interpret(b, position)
	case VariableLength:
		return typed.Interpret(b, position, length)
	case nil:
		return nil, fmt.Errorf("%w: nil interpreter", ErrArgument)
	default:
		return nil, fmt.Errorf("%w: %s is neither fixed nor variable length", ErrArgument, i.Name())
	}
}

// Length returns the bytes an annotation of length bytes consumes
// through i: ValueLength for a fixed-length interpreter, length
// otherwise.
func Length(i Interpreter, length uint64) uint64 {
	if fixed, ok := i.(FixedLength); ok {
		return fixed.ValueLength()
	}
	return length
}
