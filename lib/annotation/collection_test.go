// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package annotation

import (
	"errors"
	"slices"
	"testing"

	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/interpreter"
	"github.com/trejkaz/hex-components/lib/value"
)

// newCollection returns a collection over size patterned bytes.
func newCollection(t *testing.T, size int) *Collection {
	t.Helper()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	return New(binary.FromBytes(data))
}

func mustAdd(t *testing.T, c *Collection, node Node) ID {
	t.Helper()
	id, err := c.Add(node)
	if err != nil {
		t.Fatalf("Add([%d, %d)): %v", node.Start, node.End(), err)
	}
	return id
}

func mustAddChild(t *testing.T, c *Collection, parent ID, node Node) ID {
	t.Helper()
	id, err := c.AddChild(parent, node)
	if err != nil {
		t.Fatalf("AddChild([%d, %d)): %v", node.Start, node.End(), err)
	}
	return id
}

func starts(annotations []Annotation) []uint64 {
	var result []uint64
	for _, a := range annotations {
		result = append(result, a.Start())
	}
	return result
}

func TestAddRejectsOverlap(t *testing.T) {
	c := newCollection(t, 32)
	mustAdd(t, c, Node{Start: 0, Length: 8})

	if _, err := c.Add(Node{Start: 5, Length: 5}); !errors.Is(err, ErrOverlap) {
		t.Fatalf("Add([5, 10)) error = %v, want ErrOverlap", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d after a rejected add, want 1", c.Len())
	}

	mustAdd(t, c, Node{Start: 8, Length: 2})
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestAddOverlapCases(t *testing.T) {
	tests := []struct {
		name    string
		start   uint64
		length  uint64
		overlap bool
	}{
		{"before, touching", 0, 10, false},
		{"after, touching", 20, 5, false},
		{"identical", 10, 10, true},
		{"inside", 12, 2, true},
		{"enclosing", 5, 20, true},
		{"straddles start", 8, 4, true},
		{"straddles end", 19, 2, true},
		{"last byte", 19, 1, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newCollection(t, 64)
			mustAdd(t, c, Node{Start: 10, Length: 10})
			_, err := c.Add(Node{Start: test.start, Length: test.length})
			if test.overlap && !errors.Is(err, ErrOverlap) {
				t.Errorf("error = %v, want ErrOverlap", err)
			}
			if !test.overlap && err != nil {
				t.Errorf("Add: %v", err)
			}
		})
	}
}

func TestAddKeepsStartOrder(t *testing.T) {
	c := newCollection(t, 100)
	for _, start := range []uint64{50, 10, 90, 30, 70, 0} {
		mustAdd(t, c, Node{Start: start, Length: 5})
	}
	if got := starts(c.All()); !slices.Equal(got, []uint64{0, 10, 30, 50, 70, 90}) {
		t.Errorf("starts = %v", got)
	}
	for i := range c.Len() {
		a, ok := c.At(i)
		if !ok {
			t.Fatalf("At(%d) missing", i)
		}
		if i > 0 {
			previous, _ := c.At(i - 1)
			if previous.End() > a.Start() {
				t.Errorf("annotations %d and %d overlap", i-1, i)
			}
		}
	}
	if _, ok := c.At(c.Len()); ok {
		t.Error("At(Len) should fail")
	}
	if _, ok := c.At(-1); ok {
		t.Error("At(-1) should fail")
	}
}

func TestAddRejectsBadRanges(t *testing.T) {
	c := newCollection(t, 16)
	if _, err := c.Add(Node{Start: 4, Length: 0}); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty range error = %v, want ErrEmpty", err)
	}
	if _, err := c.Add(Node{Start: 10, Length: 7}); !errors.Is(err, binary.ErrOutOfBounds) {
		t.Errorf("range past the end error = %v, want ErrOutOfBounds", err)
	}
	if _, err := c.Add(Node{Start: ^uint64(0), Length: 2}); !errors.Is(err, binary.ErrOutOfBounds) {
		t.Errorf("overflowing range error = %v, want ErrOutOfBounds", err)
	}
	mustAdd(t, c, Node{Start: 0, Length: 16})
}

func TestAddDecodesWithInterpreter(t *testing.T) {
	c := New(binary.FromBytes([]byte{0x34, 0x12, 0xFF}))
	interp, err := interpreter.Default().Create("uint16_le", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := mustAdd(t, c, Node{Start: 0, Length: 2, Interpreter: interp})
	a, _ := c.Get(id)
	if !value.Equal(a.Value(), value.Unsigned{Number: 0x1234, Size: 2}) {
		t.Errorf("Value = %v, want 4660", a.Value())
	}

	if _, err := c.Add(Node{Start: 2, Length: 1, Interpreter: interp}); !errors.Is(err, interpreter.ErrArgument) {
		t.Errorf("too-short range error = %v, want ErrArgument", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d after a failed decode, want 1", c.Len())
	}
}

func TestAddKeepsSuppliedValue(t *testing.T) {
	c := newCollection(t, 4)
	interp, _ := interpreter.Default().Create("uint8", nil)
	supplied := value.Unsigned{Number: 99, Size: 1}
	id := mustAdd(t, c, Node{Start: 0, Length: 1, Interpreter: interp, Value: supplied})
	a, _ := c.Get(id)
	if !value.Equal(a.Value(), supplied) {
		t.Errorf("Value = %v, want the supplied 99", a.Value())
	}
}

func TestAddTree(t *testing.T) {
	c := newCollection(t, 32)
	id := mustAdd(t, c, Node{Start: 4, Length: 12, Note: "header", Children: []Node{
		{Start: 10, Length: 2, Note: "flags"},
		{Start: 4, Length: 4, Note: "magic", Children: []Node{{Start: 6, Length: 1}}},
	}})

	header, _ := c.Get(id)
	children := header.Children()
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2", len(children))
	}
	first, _ := c.Get(children[0])
	if first.Note() != "magic" {
		t.Errorf("first child = %q, want magic (children sorted by start)", first.Note())
	}
	if first.Parent() != id {
		t.Errorf("Parent = %s, want %s", first.Parent(), id)
	}
	if c.Count() != 4 {
		t.Errorf("Count = %d, want 4", c.Count())
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestAddTreeValidatesChildren(t *testing.T) {
	tests := []struct {
		name     string
		children []Node
		want     error
	}{
		{"child outside parent", []Node{{Start: 2, Length: 4}}, ErrNotContained},
		{"child past parent end", []Node{{Start: 10, Length: 8}}, ErrNotContained},
		{"overlapping children", []Node{{Start: 5, Length: 3}, {Start: 7, Length: 2}}, ErrOverlap},
		{"empty child", []Node{{Start: 5, Length: 0}}, ErrEmpty},
		{"bad grandchild", []Node{{Start: 5, Length: 2, Children: []Node{{Start: 6, Length: 2}}}}, ErrNotContained},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newCollection(t, 32)
			_, err := c.Add(Node{Start: 4, Length: 12, Children: test.children})
			if !errors.Is(err, test.want) {
				t.Fatalf("error = %v, want %v", err, test.want)
			}
			if c.Len() != 0 || c.Count() != 0 {
				t.Errorf("collection changed by a failed add: Len %d Count %d", c.Len(), c.Count())
			}
		})
	}
}

func TestAddChild(t *testing.T) {
	c := newCollection(t, 32)
	parent := mustAdd(t, c, Node{Start: 5, Length: 5})
	child := mustAddChild(t, c, parent, Node{Start: 6, Length: 1})

	if _, err := c.AddChild(parent, Node{Start: 6, Length: 2}); !errors.Is(err, ErrOverlap) {
		t.Errorf("overlapping sibling error = %v, want ErrOverlap", err)
	}
	if _, err := c.AddChild(parent, Node{Start: 9, Length: 2}); !errors.Is(err, ErrNotContained) {
		t.Errorf("uncontained child error = %v, want ErrNotContained", err)
	}
	mustAddChild(t, c, parent, Node{Start: 7, Length: 3})

	grandchild := mustAddChild(t, c, child, Node{Start: 6, Length: 1})
	a, _ := c.Get(grandchild)
	if a.Parent() != child {
		t.Errorf("grandchild parent = %s, want %s", a.Parent(), child)
	}

	if _, err := c.AddChild(ID{}, Node{Start: 0, Length: 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("zero parent error = %v, want ErrNotFound", err)
	}
}

// TestCrossBranchOverlapIsImpossible checks that containment plus the
// per-level sibling check rule out two annotations in different
// branches covering the same byte.
func TestCrossBranchOverlapIsImpossible(t *testing.T) {
	c := newCollection(t, 32)
	left := mustAdd(t, c, Node{Start: 0, Length: 10})
	mustAdd(t, c, Node{Start: 10, Length: 10})

	if _, err := c.AddChild(left, Node{Start: 8, Length: 4}); !errors.Is(err, ErrNotContained) {
		t.Errorf("child reaching into the next branch: error = %v, want ErrNotContained", err)
	}
}

func TestAnnotationAtInnermost(t *testing.T) {
	c := newCollection(t, 32)
	parent := mustAdd(t, c, Node{Start: 5, Length: 5})
	child := mustAddChild(t, c, parent, Node{Start: 6, Length: 1})

	tests := []struct {
		position uint64
		want     ID
		found    bool
	}{
		{4, ID{}, false},
		{5, parent, true},
		{6, child, true},
		{7, parent, true},
		{9, parent, true},
		{10, ID{}, false},
	}
	for _, test := range tests {
		got, ok := c.AnnotationAt(test.position)
		if ok != test.found {
			t.Errorf("AnnotationAt(%d) found = %v, want %v", test.position, ok, test.found)
			continue
		}
		if ok && got.ID() != test.want {
			t.Errorf("AnnotationAt(%d) = %s, want %s", test.position, got.ID(), test.want)
		}
	}

	wider := mustAddChild(t, c, parent, Node{Start: 7, Length: 2})
	got, ok := c.AnnotationAt(7)
	if !ok || got.ID() != wider {
		t.Errorf("AnnotationAt(7) = %v, want the [7, 9) child", got.ID())
	}
}

func TestAnnotationAtDeepNesting(t *testing.T) {
	c := newCollection(t, 64)
	id := mustAdd(t, c, Node{Start: 0, Length: 64})
	for depth := uint64(1); depth < 8; depth++ {
		id = mustAddChild(t, c, id, Node{Start: depth, Length: 64 - 2*depth})
	}
	got, ok := c.AnnotationAt(32)
	if !ok || got.ID() != id {
		t.Errorf("AnnotationAt(32) = %s, want the deepest %s", got.ID(), id)
	}
	got, _ = c.AnnotationAt(63)
	if got.Start() != 0 {
		t.Errorf("AnnotationAt(63) starts at %d, want the root", got.Start())
	}
}

func TestAnnotationsIn(t *testing.T) {
	c := newCollection(t, 100)
	for _, start := range []uint64{0, 10, 20, 30, 40} {
		mustAdd(t, c, Node{Start: start, Length: 5})
	}

	tests := []struct {
		name       string
		start, end uint64
		want       []uint64
	}{
		{"everything", 0, 100, []uint64{0, 10, 20, 30, 40}},
		{"one gap", 5, 10, nil},
		{"touching end is exclusive", 5, 11, []uint64{10}},
		{"partial overlap both ends", 3, 22, []uint64{0, 10, 20}},
		{"inside one", 31, 32, []uint64{30}},
		{"past the end", 45, 100, nil},
		{"empty range", 10, 10, nil},
		{"inverted range", 20, 10, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := starts(c.AnnotationsIn(test.start, test.end))
			if !slices.Equal(got, test.want) {
				t.Errorf("AnnotationsIn(%d, %d) = %v, want %v", test.start, test.end, got, test.want)
			}
		})
	}
}

func TestAnnotationsInIsIdempotent(t *testing.T) {
	c := newCollection(t, 100)
	for _, start := range []uint64{40, 0, 20} {
		mustAdd(t, c, Node{Start: start, Length: 10, Note: "n"})
	}
	first := c.AnnotationsIn(5, 45)
	second := c.AnnotationsIn(5, 45)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID() != second[i].ID() || first[i].Start() != second[i].Start() {
			t.Errorf("element %d differs: %s vs %s", i, first[i].ID(), second[i].ID())
		}
	}
}

func TestRemove(t *testing.T) {
	c := newCollection(t, 32)
	parent := mustAdd(t, c, Node{Start: 5, Length: 5})
	child := mustAddChild(t, c, parent, Node{Start: 6, Length: 1})
	other := mustAdd(t, c, Node{Start: 20, Length: 2})

	if err := c.Remove(child); err != nil {
		t.Fatalf("Remove(child): %v", err)
	}
	got, ok := c.AnnotationAt(6)
	if !ok || got.ID() != parent {
		t.Errorf("after removing the child, AnnotationAt(6) = %s, want the parent", got.ID())
	}

	if err := c.Remove(parent); err != nil {
		t.Fatalf("Remove(parent): %v", err)
	}
	if _, ok := c.AnnotationAt(6); ok {
		t.Error("AnnotationAt(6) should find nothing after removing the parent")
	}
	if c.Len() != 1 || c.Count() != 1 {
		t.Errorf("Len %d Count %d, want 1 and 1", c.Len(), c.Count())
	}
	if a, _ := c.At(0); a.ID() != other {
		t.Errorf("remaining annotation = %s, want %s", a.ID(), other)
	}
}

func TestRemoveSubtreeFreesChildren(t *testing.T) {
	c := newCollection(t, 32)
	parent := mustAdd(t, c, Node{Start: 0, Length: 10, Children: []Node{{Start: 1, Length: 1}, {Start: 3, Length: 1}}})
	a, _ := c.Get(parent)
	children := a.Children()

	if err := c.Remove(parent); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	for _, child := range children {
		if _, ok := c.Get(child); ok {
			t.Errorf("child %s still resolves", child)
		}
	}
	if c.Count() != 0 {
		t.Errorf("Count = %d, want 0", c.Count())
	}
}

func TestRemoveMissing(t *testing.T) {
	c := newCollection(t, 16)
	id := mustAdd(t, c, Node{Start: 0, Length: 4})
	if err := c.Remove(id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.Remove(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove error = %v, want ErrNotFound", err)
	}
	if err := c.Remove(ID{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(zero) error = %v, want ErrNotFound", err)
	}
	if err := c.RemoveAt(0); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveAt(0) on empty error = %v, want ErrNotFound", err)
	}
}

func TestStaleIDDoesNotResolveAfterSlotReuse(t *testing.T) {
	c := newCollection(t, 16)
	old := mustAdd(t, c, Node{Start: 0, Length: 4, Note: "old"})
	if err := c.Remove(old); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	fresh := mustAdd(t, c, Node{Start: 0, Length: 4, Note: "new"})

	if fresh == old {
		t.Fatal("reused slot produced the same ID")
	}
	if _, ok := c.Get(old); ok {
		t.Error("stale ID resolves after its slot was reused")
	}
	if err := c.SetNote(old, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetNote(stale) error = %v, want ErrNotFound", err)
	}
}

func TestRemoveAt(t *testing.T) {
	c := newCollection(t, 32)
	for _, start := range []uint64{0, 10, 20} {
		mustAdd(t, c, Node{Start: start, Length: 5})
	}
	if err := c.RemoveAt(1); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	if got := starts(c.All()); !slices.Equal(got, []uint64{0, 20}) {
		t.Errorf("starts = %v, want [0 20]", got)
	}
}

func TestReplaceValueAndSetNote(t *testing.T) {
	c := newCollection(t, 16)
	id := mustAdd(t, c, Node{Start: 2, Length: 2})

	replacement := value.Boolean{Bool: true, Size: 1}
	if err := c.ReplaceValue(id, replacement); err != nil {
		t.Fatalf("ReplaceValue: %v", err)
	}
	if err := c.SetNote(id, "checked"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}
	a, _ := c.Get(id)
	if !value.Equal(a.Value(), replacement) || a.Note() != "checked" {
		t.Errorf("got value %v note %q", a.Value(), a.Note())
	}
	if a.Start() != 2 || a.Length() != 2 {
		t.Errorf("range moved to [%d, %d)", a.Start(), a.End())
	}
}

func TestSnapshotsDoNotChange(t *testing.T) {
	c := newCollection(t, 32)
	parent := mustAdd(t, c, Node{Start: 0, Length: 20, Note: "before"})
	mustAddChild(t, c, parent, Node{Start: 10, Length: 2})

	snapshot, _ := c.Get(parent)
	mustAddChild(t, c, parent, Node{Start: 2, Length: 2})
	if err := c.SetNote(parent, "after"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}

	if snapshot.Note() != "before" {
		t.Errorf("snapshot note = %q, want before", snapshot.Note())
	}
	if len(snapshot.Children()) != 1 {
		t.Errorf("snapshot children = %d, want 1", len(snapshot.Children()))
	}
}

func TestWalkOrder(t *testing.T) {
	c := newCollection(t, 32)
	mustAdd(t, c, Node{Start: 20, Length: 4})
	mustAdd(t, c, Node{Start: 0, Length: 10, Children: []Node{{Start: 5, Length: 1}, {Start: 1, Length: 2}}})

	var visited []uint64
	c.Walk(func(a Annotation) bool {
		visited = append(visited, a.Start())
		return true
	})
	if !slices.Equal(visited, []uint64{0, 1, 5, 20}) {
		t.Errorf("visited %v, want [0 1 5 20]", visited)
	}

	visited = nil
	c.Walk(func(a Annotation) bool {
		visited = append(visited, a.Start())
		return len(visited) < 2
	})
	if len(visited) != 2 {
		t.Errorf("Walk did not stop: visited %v", visited)
	}
}
