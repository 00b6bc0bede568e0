// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package annotation

import (
	"fmt"
	"slices"
)

// EventKind distinguishes the three kinds of change.
type EventKind uint8

const (
	// Added: a new annotation, with its children, was inserted.
	Added EventKind = iota + 1

	// Removed: an annotation and its subtree were removed. The
	// event's ID no longer resolves.
	Removed

	// Changed: an annotation's value or note was replaced. Its ID,
	// position and range are unchanged, but anything derived from
	// its value is stale.
	Changed
)

func (k EventKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event describes one mutation. Index is the annotation's position
// among its siblings: after insertion for Added, immediately before
// removal for Removed. Parent is the zero ID for top-level
// annotations.
type Event struct {
	Kind   EventKind
	ID     ID
	Parent ID
	Index  int
	Start  uint64
	Length uint64
}

// End returns the position just past the affected range.
func (e Event) End() uint64 { return e.Start + e.Length }

// Listener receives collection events.
//
// Listeners are compared with == by [Collection.RemoveListener], so
// the dynamic type must be comparable. Pointers always are.
type Listener interface {
	AnnotationsAdded(Event)
	AnnotationsRemoved(Event)
	AnnotationsChanged(Event)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are
// skipped. Register it by pointer.
type ListenerFuncs struct {
	Added   func(Event)
	Removed func(Event)
	Changed func(Event)
}

func (l *ListenerFuncs) AnnotationsAdded(e Event) {
	if l.Added != nil {
		l.Added(e)
	}
}

func (l *ListenerFuncs) AnnotationsRemoved(e Event) {
	if l.Removed != nil {
		l.Removed(e)
	}
}

func (l *ListenerFuncs) AnnotationsChanged(e Event) {
	if l.Changed != nil {
		l.Changed(e)
	}
}

// AddListener registers l. A listener registered twice is notified
// twice.
func (c *Collection) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// RemoveListener unregisters the most recent registration of l. It
// reports whether l was registered.
func (c *Collection) RemoveListener(l Listener) bool {
	for i := len(c.listeners) - 1; i >= 0; i-- {
		if c.listeners[i] == l {
			c.listeners = slices.Delete(slices.Clone(c.listeners), i, i+1)
			return true
		}
	}
	return false
}

// publish delivers e to a snapshot of the listeners. Mutations are
// refused until it returns, including when a listener panics.
func (c *Collection) publish(e Event) {
	if len(c.listeners) == 0 {
		return
	}
	listeners := c.listeners

	c.dispatching = true
	defer func() { c.dispatching = false }()

	for _, l := range listeners {
		switch e.Kind {
		case Added:
			l.AnnotationsAdded(e)
		case Removed:
			l.AnnotationsRemoved(e)
		case Changed:
			l.AnnotationsChanged(e)
		}
	}
}

// checkMutable fails when called from inside a listener.
func (c *Collection) checkMutable(operation string) error {
	if c.dispatching {
		return fmt.Errorf("%s: %w", operation, ErrReentrantMutation)
	}
	return nil
}
