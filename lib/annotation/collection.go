// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package annotation

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"

	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/interpreter"
	"github.com/trejkaz/hex-components/lib/value"
)

// record is one arena slot. A slot is live while its annotation
// exists; a freed slot keeps its generation so the next occupant gets
// a fresh one.
type record struct {
	generation uint32
	live       bool

	start    uint64
	length   uint64
	interp   interpreter.Interpreter
	value    value.Value
	note     string
	parent   ID
	children []ID
}

func (r *record) end() uint64 { return r.start + r.length }

// Collection is the set of annotations over one binary.
type Collection struct {
	binary binary.Binary
	logger *slog.Logger

	records []record
	free    []uint32
	roots   []ID
	count   int

	listeners   []Listener
	dispatching bool
}

// Option configures a Collection.
type Option func(*Collection)

// WithLogger sets the logger for debug output. A nil logger discards.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns an empty collection over b.
func New(b binary.Binary, options ...Option) *Collection {
	c := &Collection{
		binary: b,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Binary returns the binary the collection annotates.
func (c *Collection) Binary() binary.Binary { return c.binary }

// Len returns the number of top-level annotations.
func (c *Collection) Len() int { return len(c.roots) }

// Count returns the number of annotations at every depth.
func (c *Collection) Count() int { return c.count }

// lookup resolves id to its live record.
func (c *Collection) lookup(id ID) (*record, bool) {
	if id.IsZero() || int(id.slot) >= len(c.records) {
		return nil, false
	}
	r := &c.records[id.slot]
	if !r.live || r.generation != id.generation {
		return nil, false
	}
	return r, true
}

func (c *Collection) snapshot(id ID, r *record) Annotation {
	return Annotation{
		id:       id,
		parent:   r.parent,
		start:    r.start,
		length:   r.length,
		interp:   r.interp,
		value:    r.value,
		note:     r.note,
		children: slices.Clone(r.children),
	}
}

// Get returns the annotation named by id.
func (c *Collection) Get(id ID) (Annotation, bool) {
	r, ok := c.lookup(id)
	if !ok {
		return Annotation{}, false
	}
	return c.snapshot(id, r), true
}

// At returns the top-level annotation at index, in start order.
func (c *Collection) At(index int) (Annotation, bool) {
	if index < 0 || index >= len(c.roots) {
		return Annotation{}, false
	}
	id := c.roots[index]
	r, _ := c.lookup(id)
	return c.snapshot(id, r), true
}

// All returns the top-level annotations in start order.
func (c *Collection) All() []Annotation {
	return c.snapshots(c.roots)
}

func (c *Collection) snapshots(ids []ID) []Annotation {
	if len(ids) == 0 {
		return nil
	}
	result := make([]Annotation, len(ids))
	for i, id := range ids {
		r, _ := c.lookup(id)
		result[i] = c.snapshot(id, r)
	}
	return result
}

// Walk visits every annotation depth first, parents before children
// and siblings in start order. Returning false from fn stops the walk.
func (c *Collection) Walk(fn func(Annotation) bool) {
	c.walk(c.roots, fn)
}

func (c *Collection) walk(ids []ID, fn func(Annotation) bool) bool {
	for _, id := range ids {
		r, _ := c.lookup(id)
		if !fn(c.snapshot(id, r)) {
			return false
		}
		if !c.walk(r.children, fn) {
			return false
		}
	}
	return true
}

// siblings returns the ordered sibling list that parent's children
// live in: the top level for the zero ID.
func (c *Collection) siblings(parent ID) *[]ID {
	if parent.IsZero() {
		return &c.roots
	}
	r, _ := c.lookup(parent)
	return &r.children
}

// insertionIndex locates where an annotation starting at start goes
// among ids, and fails if [start, end) would overlap a neighbour.
// Neighbours are sorted and disjoint, so only the two adjacent to the
// insertion point can overlap.
func (c *Collection) insertionIndex(ids []ID, start, end uint64) (int, error) {
	index := sort.Search(len(ids), func(i int) bool {
		return c.records[ids[i].slot].start >= start
	})
	if index > 0 {
		before := &c.records[ids[index-1].slot]
		if before.end() > start {
			return 0, fmt.Errorf("%w: [%d, %d) overlaps [%d, %d)", ErrOverlap, start, end, before.start, before.end())
		}
	}
	if index < len(ids) {
		after := &c.records[ids[index].slot]
		if after.start < end {
			return 0, fmt.Errorf("%w: [%d, %d) overlaps [%d, %d)", ErrOverlap, start, end, after.start, after.end())
		}
	}
	return index, nil
}

// prepared is a validated node with its value decoded and children
// sorted, ready to be written into the arena.
type prepared struct {
	node     Node
	value    value.Value
	children []prepared
}

// prepare validates node, recursively, against the binary and the
// bounds [low, high) of its would-be parent, and decodes values. It
// does not touch the arena.
func (c *Collection) prepare(node Node, low, high uint64) (prepared, error) {
	if node.Length == 0 {
		return prepared{}, fmt.Errorf("%w at %d", ErrEmpty, node.Start)
	}
	if err := binary.CheckRange(node.Start, node.Length, c.binary.Length()); err != nil {
		return prepared{}, err
	}
	if node.Start < low || node.End() > high {
		return prepared{}, fmt.Errorf("%w: [%d, %d) outside [%d, %d)", ErrNotContained, node.Start, node.End(), low, high)
	}

	result := prepared{node: node, value: node.Value}
	if result.value == nil && node.Interpreter != nil {
		decoded, err := interpreter.Interpret(node.Interpreter, c.binary, node.Start, node.Length)
		if err != nil {
			return prepared{}, fmt.Errorf("decoding %s at %d: %w", node.Interpreter.Name(), node.Start, err)
		}
		result.value = decoded
	}

	children := slices.Clone(node.Children)
	slices.SortStableFunc(children, func(a, b Node) int {
		return cmp.Compare(a.Start, b.Start)
	})
	for i, child := range children {
		if i > 0 && children[i-1].End() > child.Start {
			return prepared{}, fmt.Errorf("%w: child [%d, %d) overlaps [%d, %d)",
				ErrOverlap, child.Start, child.End(), children[i-1].Start, children[i-1].End())
		}
		p, err := c.prepare(child, node.Start, node.End())
		if err != nil {
			return prepared{}, err
		}
		result.children = append(result.children, p)
	}
	return result, nil
}

// allocate writes p and its subtree into the arena and returns the new
// ID. Children are already sorted.
func (c *Collection) allocate(p prepared, parent ID) ID {
	var slot uint32
	if n := len(c.free); n > 0 {
		slot = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		slot = uint32(len(c.records))
		c.records = append(c.records, record{})
	}

	r := &c.records[slot]
	r.generation++
	if r.generation == 0 {
		r.generation = 1
	}
	id := ID{slot: slot, generation: r.generation}
	*r = record{
		generation: r.generation,
		live:       true,
		start:      p.node.Start,
		length:     p.node.Length,
		interp:     p.node.Interpreter,
		value:      p.value,
		note:       p.node.Note,
		parent:     parent,
	}
	c.count++

	children := make([]ID, 0, len(p.children))
	for _, child := range p.children {
		children = append(children, c.allocate(child, id))
	}
	// allocate may have grown the arena, so index again.
	c.records[slot].children = children
	return id
}

// Add inserts a top-level annotation, with any children, and returns
// its ID. It fails with [ErrOverlap] if the range intersects another
// top-level annotation, and with a bounds error if it runs past the
// end of the binary.
func (c *Collection) Add(node Node) (ID, error) {
	return c.insert(ID{}, node)
}

// AddChild inserts node as a child of parent. The node must lie
// within the parent and must not overlap the parent's other children.
func (c *Collection) AddChild(parent ID, node Node) (ID, error) {
	if parent.IsZero() {
		return ID{}, fmt.Errorf("adding child: %w: zero parent", ErrNotFound)
	}
	return c.insert(parent, node)
}

func (c *Collection) insert(parent ID, node Node) (ID, error) {
	if err := c.checkMutable("adding annotation"); err != nil {
		return ID{}, err
	}

	low, high := uint64(0), c.binary.Length()
	if !parent.IsZero() {
		r, ok := c.lookup(parent)
		if !ok {
			return ID{}, fmt.Errorf("adding child: parent %s: %w", parent, ErrNotFound)
		}
		low, high = r.start, r.end()
	}

	p, err := c.prepare(node, low, high)
	if err != nil {
		return ID{}, err
	}
	index, err := c.insertionIndex(*c.siblings(parent), node.Start, node.End())
	if err != nil {
		return ID{}, err
	}

	id := c.allocate(p, parent)
	list := c.siblings(parent)
	*list = slices.Insert(*list, index, id)

	c.logger.Debug("annotation added",
		"id", id.String(),
		"parent", parent.String(),
		"index", index,
		"start", node.Start,
		"length", node.Length,
	)
	c.publish(Event{Kind: Added, ID: id, Parent: parent, Index: index, Start: node.Start, Length: node.Length})
	return id, nil
}

// Remove deletes the annotation named by id together with its
// children. An ID that does not resolve yields [ErrNotFound] and no
// event.
func (c *Collection) Remove(id ID) error {
	if err := c.checkMutable("removing annotation"); err != nil {
		return err
	}
	r, ok := c.lookup(id)
	if !ok {
		return fmt.Errorf("removing %s: %w", id, ErrNotFound)
	}

	parent := r.parent
	list := c.siblings(parent)
	index := slices.Index(*list, id)
	*list = slices.Delete(*list, index, index+1)
	c.remove(parent, index, id)
	return nil
}

// RemoveAt deletes the top-level annotation at index.
func (c *Collection) RemoveAt(index int) error {
	if err := c.checkMutable("removing annotation"); err != nil {
		return err
	}
	if index < 0 || index >= len(c.roots) {
		return fmt.Errorf("removing index %d of %d: %w", index, len(c.roots), ErrNotFound)
	}
	id := c.roots[index]
	c.roots = slices.Delete(c.roots, index, index+1)
	c.remove(ID{}, index, id)
	return nil
}

// remove frees the subtree at id, already unlinked from its sibling
// list, and publishes the event.
func (c *Collection) remove(parent ID, index int, id ID) {
	r := &c.records[id.slot]
	event := Event{Kind: Removed, ID: id, Parent: parent, Index: index, Start: r.start, Length: r.length}
	c.release(id)

	c.logger.Debug("annotation removed",
		"id", id.String(),
		"parent", parent.String(),
		"index", index,
		"start", event.Start,
		"length", event.Length,
	)
	c.publish(event)
}

func (c *Collection) release(id ID) {
	r := &c.records[id.slot]
	children := r.children
	*r = record{generation: r.generation}
	c.free = append(c.free, id.slot)
	c.count--
	for _, child := range children {
		c.release(child)
	}
}

// ReplaceValue sets the decoded value of id.
func (c *Collection) ReplaceValue(id ID, v value.Value) error {
	if err := c.checkMutable("replacing value"); err != nil {
		return err
	}
	r, ok := c.lookup(id)
	if !ok {
		return fmt.Errorf("replacing value of %s: %w", id, ErrNotFound)
	}
	r.value = v
	c.changed(id, r)
	return nil
}

// SetNote sets the note of id.
func (c *Collection) SetNote(id ID, note string) error {
	if err := c.checkMutable("setting note"); err != nil {
		return err
	}
	r, ok := c.lookup(id)
	if !ok {
		return fmt.Errorf("setting note of %s: %w", id, ErrNotFound)
	}
	r.note = note
	c.changed(id, r)
	return nil
}

func (c *Collection) changed(id ID, r *record) {
	index := slices.Index(*c.siblings(r.parent), id)
	c.publish(Event{Kind: Changed, ID: id, Parent: r.parent, Index: index, Start: r.start, Length: r.length})
}

// AnnotationAt returns the innermost annotation covering position.
func (c *Collection) AnnotationAt(position uint64) (Annotation, bool) {
	var found ID
	ids := c.roots
	for {
		// Last sibling starting at or before position.
		index := sort.Search(len(ids), func(i int) bool {
			return c.records[ids[i].slot].start > position
		}) - 1
		if index < 0 {
			break
		}
		r := &c.records[ids[index].slot]
		if r.end() <= position {
			break
		}
		found = ids[index]
		ids = r.children
	}
	if found.IsZero() {
		return Annotation{}, false
	}
	return c.Get(found)
}

// AnnotationsIn returns the top-level annotations intersecting the
// half-open range [start, end), in start order.
func (c *Collection) AnnotationsIn(start, end uint64) []Annotation {
	if start >= end {
		return nil
	}
	// Siblings are disjoint and sorted by start, so their ends are
	// sorted too.
	low := sort.Search(len(c.roots), func(i int) bool {
		return c.records[c.roots[i].slot].end() > start
	})
	high := sort.Search(len(c.roots), func(i int) bool {
		return c.records[c.roots[i].slot].start >= end
	})
	if low >= high {
		return nil
	}
	return c.snapshots(c.roots[low:high])
}
