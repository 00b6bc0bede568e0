// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package annotation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/trejkaz/hex-components/lib/interpreter"
	"github.com/trejkaz/hex-components/lib/value"
)

var (
	// ErrOverlap is returned when an annotation would overlap a
	// sibling.
	ErrOverlap = errors.New("annotation: overlaps an existing annotation")

	// ErrNotContained is returned when a child does not lie within
	// its parent.
	ErrNotContained = errors.New("annotation: child extends outside its parent")

	// ErrEmpty is returned for an annotation of zero length.
	ErrEmpty = errors.New("annotation: empty range")

	// ErrNotFound is returned for an ID or index that does not name a
	// live annotation.
	ErrNotFound = errors.New("annotation: not found")

	// ErrReentrantMutation is returned when a listener tries to
	// mutate the collection that is notifying it.
	ErrReentrantMutation = errors.New("annotation: mutation during event dispatch")
)

// ID names an annotation within one Collection. The zero ID names
// nothing and is used as the parent of top-level annotations.
type ID struct {
	slot       uint32
	generation uint32
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool { return id.generation == 0 }

func (id ID) String() string {
	if id.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%d.%d", id.slot, id.generation)
}

// Node describes an annotation to insert, with its children.
//
// When Value is nil and Interpreter is set, the value is decoded from
// the binary at insertion time. When both are nil the annotation is a
// bare note over a range.
type Node struct {
	Start       uint64
	Length      uint64
	Interpreter interpreter.Interpreter
	Value       value.Value
	Note        string
	Children    []Node
}

// End returns the first position past the node.
func (n Node) End() uint64 { return n.Start + n.Length }

// Annotation is a snapshot of one annotation. It does not change when
// the collection does.
type Annotation struct {
	id       ID
	parent   ID
	start    uint64
	length   uint64
	interp   interpreter.Interpreter
	value    value.Value
	note     string
	children []ID
}

// ID returns the annotation's handle in its collection.
func (a Annotation) ID() ID { return a.id }

// Start returns the position of the first byte covered.
func (a Annotation) Start() uint64 { return a.start }

// Length returns the number of bytes covered.
func (a Annotation) Length() uint64 { return a.length }

// End returns the position just past the last byte covered.
func (a Annotation) End() uint64 { return a.start + a.length }

// Contains reports whether position lies within the annotation.
func (a Annotation) Contains(position uint64) bool {
	return position >= a.start && position < a.End()
}

func (a Annotation) Interpreter() interpreter.Interpreter { return a.interp }
func (a Annotation) Value() value.Value                   { return a.value }
func (a Annotation) Note() string                         { return a.note }

// Parent returns the enclosing annotation, or the zero ID at the top
// level.
func (a Annotation) Parent() ID { return a.parent }

// Children returns the IDs of the direct children in start order.
func (a Annotation) Children() []ID { return slices.Clone(a.children) }
