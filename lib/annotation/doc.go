// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package annotation maintains the ordered, non-overlapping set of
// annotations laid over a [binary.Binary].
//
// An annotation covers a half-open byte range [Start, Start+Length),
// optionally names the interpreter that decodes it, and carries the
// decoded value and a free-form note. Annotations nest: a child lies
// entirely within its parent, and siblings at every depth are sorted
// by start and never overlap. The rules are enforced on every
// insertion, so two annotations in different branches can never cover
// the same byte unless one contains the other.
//
// # Storage
//
// A [Collection] keeps its annotations in a flat arena of records.
// Parents and children refer to each other by [ID], a slot number
// tagged with a generation counter. Removing an annotation frees its
// slot for reuse and bumps the generation, so an ID held across a
// removal stops resolving instead of silently naming a different
// annotation. [Annotation] values are read-only snapshots; mutations go
// through Collection methods.
//
// # Events
//
// Every successful mutation publishes exactly one [Event] to the
// registered [Listener]s, synchronously and in registration order,
// after the collection has been updated. Listeners may read the
// collection but must not mutate it: a mutating call made while events
// are being dispatched fails with [ErrReentrantMutation]. A listener
// that panics aborts dispatch to the listeners after it; the mutation
// itself has already been applied and the collection remains usable.
//
// # Concurrency
//
// A Collection has a single logical owner and is not safe for
// concurrent mutation. [Collection.Redecode] is the exception that
// proves the rule: it fans decoding out across goroutines, which only
// read the binary, and then applies the results on the calling
// goroutine.
//
// # Persistence
//
// [Collection.Document] captures the structure as a [Document]: ranges,
// interpreter kind names with their options, and notes. Decoded values
// are not stored. [Restore] rebuilds a collection by re-running the
// interpreters through a registry, after checking that the binary's
// BLAKE3 digest matches the one recorded.
package annotation
