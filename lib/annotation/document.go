// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package annotation

import (
	"errors"
	"fmt"

	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/binhash"
	"github.com/trejkaz/hex-components/lib/interpreter"
)

// DocumentVersion is the current Document layout.
const DocumentVersion = 1

// ErrDigestMismatch is returned by [Restore] when a document was
// written for different bytes.
var ErrDigestMismatch = errors.New("annotation: binary digest does not match document")

// ErrUnsupportedVersion is returned by [Restore] for documents from a
// newer release.
var ErrUnsupportedVersion = errors.New("annotation: unsupported document version")

// Record is the persisted form of one annotation. Interpreter is a
// registry kind name; Options recreate the interpreter.
type Record struct {
	Start       uint64              `json:"start"`
	Length      uint64              `json:"length"`
	Interpreter string              `json:"interpreter,omitempty"`
	Options     interpreter.Options `json:"options,omitempty"`
	Note        string              `json:"note,omitempty"`
	Children    []Record            `json:"children,omitempty"`
}

// Document is the persisted form of a collection. BinaryDigest is the
// hex BLAKE3 digest of the annotated bytes; an empty digest skips the
// check on restore, which hand-written documents rely on.
type Document struct {
	Version      int      `json:"version"`
	BinaryDigest string   `json:"binary_digest,omitempty"`
	Records      []Record `json:"records"`
}

// Document captures the collection's structure. Values are not stored;
// they are recomputed by [Restore].
func (c *Collection) Document() (Document, error) {
	digest, err := binhash.Digest(c.binary)
	if err != nil {
		return Document{}, fmt.Errorf("hashing binary: %w", err)
	}
	return Document{
		Version:      DocumentVersion,
		BinaryDigest: binhash.FormatDigest(digest),
		Records:      c.persist(c.roots),
	}, nil
}

// persist converts the subtrees at ids to records.
func (c *Collection) persist(ids []ID) []Record {
	if len(ids) == 0 {
		return nil
	}
	result := make([]Record, 0, len(ids))
	for _, id := range ids {
		r, _ := c.lookup(id)
		persisted := Record{
			Start:    r.start,
			Length:   r.length,
			Note:     r.note,
			Children: c.persist(r.children),
		}
		if r.interp != nil {
			persisted.Interpreter = r.interp.Name()
			persisted.Options = r.interp.Options().Clone()
		}
		result = append(result, persisted)
	}
	return result
}

// Restore rebuilds a collection over b from document, creating
// interpreters through registry and decoding every value afresh. A nil
// registry means [interpreter.Default].
func Restore(b binary.Binary, registry *interpreter.Registry, document Document, options ...Option) (*Collection, error) {
	if registry == nil {
		registry = interpreter.Default()
	}
	if document.Version > DocumentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, document.Version)
	}
	if document.BinaryDigest != "" {
		want, err := binhash.ParseDigest(document.BinaryDigest)
		if err != nil {
			return nil, fmt.Errorf("parsing document digest: %w", err)
		}
		got, err := binhash.Digest(b)
		if err != nil {
			return nil, fmt.Errorf("hashing binary: %w", err)
		}
		if got != want {
			return nil, fmt.Errorf("%w: document has %s, binary is %s",
				ErrDigestMismatch, document.BinaryDigest, binhash.FormatDigest(got))
		}
	}

	collection := New(b, options...)
	for i, persisted := range document.Records {
		node, err := toNode(registry, persisted)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := collection.Add(node); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	collection.logger.Debug("collection restored",
		"records", len(document.Records),
		"annotations", collection.Count(),
		"version", document.Version,
	)
	return collection, nil
}

func toNode(registry *interpreter.Registry, persisted Record) (Node, error) {
	node := Node{Start: persisted.Start, Length: persisted.Length, Note: persisted.Note}
	if persisted.Interpreter != "" {
		interp, err := registry.Create(persisted.Interpreter, persisted.Options)
		if err != nil {
			return Node{}, err
		}
		node.Interpreter = interp
	}
	for _, child := range persisted.Children {
		childNode, err := toNode(registry, child)
		if err != nil {
			return Node{}, err
		}
		node.Children = append(node.Children, childNode)
	}
	return node, nil
}
