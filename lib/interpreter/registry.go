// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Factory creates an interpreter from its options.
type Factory func(options Options) (Interpreter, error)

// Languages are the languages display names are translated into.
// Any other language falls back to the closest match, which for
// unrelated languages is English.
var Languages = []language.Tag{language.English, language.German}

var languageMatcher = language.NewMatcher(Languages)

// Entry is one registered kind.
type Entry struct {
	// Kind is the stable name recorded in persisted documents.
	Kind string

	// DisplayKey is the message key of the human-readable name. It
	// doubles as the English text when no translation exists.
	DisplayKey string

	Factory Factory

	catalog catalog.Catalog
}

// DisplayName returns the entry's name translated for tag.
func (e Entry) DisplayName(tag language.Tag) string {
	if e.catalog == nil {
		return e.DisplayKey
	}
	_, index, _ := languageMatcher.Match(tag)
	printer := message.NewPrinter(Languages[index], message.Catalog(e.catalog))
	return printer.Sprintf("%m", e.DisplayKey)
}

// Registry maps kind names to interpreter factories.
//
// A registry has two phases. While open, Register and Translate add
// entries under a lock. [Registry.Freeze] ends registration; after it
// the entry table never changes and lookups read it without locking.
type Registry struct {
	mu      sync.RWMutex
	frozen  atomic.Bool
	entries map[string]Entry
	sorted  []Entry
	catalog *catalog.Builder
}

// NewRegistry returns an empty, open registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
		catalog: catalog.NewBuilder(catalog.Fallback(language.English)),
	}
}

// Register adds a kind. Until [Registry.Translate] provides text for
// the display key, the key itself is shown in every language.
func (r *Registry) Register(kind, displayKey string, factory Factory) error {
	if kind == "" {
		return fmt.Errorf("%w: empty kind name", ErrArgument)
	}
	if factory == nil {
		return fmt.Errorf("%w: kind %q has no factory", ErrArgument, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, kind)
	}
	if _, exists := r.entries[kind]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, kind)
	}

	entry := Entry{Kind: kind, DisplayKey: displayKey, Factory: factory, catalog: r.catalog}
	r.entries[kind] = entry

	index := sort.Search(len(r.sorted), func(i int) bool {
		return r.sorted[i].Kind >= kind
	})
	r.sorted = append(r.sorted, Entry{})
	copy(r.sorted[index+1:], r.sorted[index:])
	r.sorted[index] = entry
	return nil
}

// Translate sets the display text for key in the given language.
func (r *Registry) Translate(tag language.Tag, key, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return fmt.Errorf("%w: cannot translate %q", ErrFrozen, key)
	}
	if err := r.catalog.SetString(tag, key, text); err != nil {
		return fmt.Errorf("translating %q to %s: %w", key, tag, err)
	}
	return nil
}

// Freeze ends registration. It is idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// read runs fn with the entry table stable: lock-free once frozen,
// under the read lock before that.
func (r *Registry) read(fn func()) {
	if r.frozen.Load() {
		fn()
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn()
}

// All returns every entry sorted by kind name. The slice is a copy.
func (r *Registry) All() []Entry {
	var entries []Entry
	r.read(func() {
		entries = append([]Entry(nil), r.sorted...)
	})
	return entries
}

// Lookup returns the entry for kind.
func (r *Registry) Lookup(kind string) (Entry, bool) {
	var entry Entry
	var ok bool
	r.read(func() {
		entry, ok = r.entries[kind]
	})
	return entry, ok
}

// Create builds an interpreter of the named kind.
func (r *Registry) Create(kind string, options Options) (Interpreter, error) {
	entry, ok := r.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKindNotFound, kind)
	}
	interp, err := entry.Factory(options)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", kind, err)
	}
	return interp, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry holding the built-in
// kinds. It is frozen on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		registry := NewRegistry()
		if err := RegisterBuiltins(registry); err != nil {
			panic(fmt.Sprintf("registering built-in interpreters: %v", err))
		}
		registry.Freeze()
		defaultRegistry = registry
	})
	return defaultRegistry
}
