// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"bytes"
	"fmt"
	"math"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/value"
)

// MaxBound is the largest length a terminated-string scan accepts.
const MaxBound = math.MaxInt32

// OptionCharset names the character set of string and
// stringz_charset.
const OptionCharset = "charset"

// DefaultCharset is used when no charset option is given.
const DefaultCharset = "UTF-8"

// scanChunk is how many bytes a terminator scan reads at a time.
const scanChunk = 4096

// scanTerminated returns the number of bytes before the first zero
// byte in [position, position+bound), or bound when there is none.
// Running off the end of b before either is a bounds error.
func scanTerminated(b binary.Binary, position, bound uint64) (uint64, error) {
	if bound > MaxBound {
		return 0, fmt.Errorf("%w: bound %d exceeds %d", ErrArgument, bound, uint64(MaxBound))
	}
	if err := binary.CheckRange(position, 0, b.Length()); err != nil {
		return 0, err
	}
	available := min(bound, b.Length()-position)

	buffer := make([]byte, min(available, scanChunk))
	var scanned uint64
	for scanned < available {
		chunk := buffer[:min(available-scanned, uint64(len(buffer)))]
		n, err := b.ReadAt(chunk, position+scanned)
		if err != nil {
			return 0, err
		}
		if index := bytes.IndexByte(chunk[:n], 0); index >= 0 {
			return scanned + uint64(index), nil
		}
		scanned += uint64(n)
	}
	if available < bound {
		return 0, &binary.BoundsError{Position: position, Width: bound, Length: b.Length()}
	}
	return bound, nil
}

// stringz decodes a null-terminated byte string. The value covers the
// bytes before the terminator and views them in place.
type stringz struct{}

func (stringz) Name() string          { return "stringz" }
func (stringz) Options() Options      { return nil }
func (stringz) ValueKind() value.Kind { return value.KindBinaryString }

func (stringz) Interpret(b binary.Binary, position, bound uint64) (value.Value, error) {
	length, err := scanTerminated(b, position, bound)
	if err != nil {
		return nil, err
	}
	view, err := b.Slice(position, length)
	if err != nil {
		return nil, err
	}
	return value.BinaryString{Bytes: view}, nil
}

// charsetString decodes text in a named character set. When
// terminated is set the text ends at the first zero byte, which only
// makes sense for charsets with single-byte units.
type charsetString struct {
	charset    string
	encoding   encoding.Encoding
	terminated bool
}

// lookupCharset resolves an IANA character set name or alias. The
// returned name prefers the MIME spelling, so "latin1" becomes
// "ISO-8859-1".
func lookupCharset(name string) (string, encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return "", nil, fmt.Errorf("%w: charset %q: %v", ErrArgument, name, err)
	}
	if enc == nil {
		return "", nil, fmt.Errorf("%w: charset %q is not supported", ErrArgument, name)
	}
	for _, index := range []*ianaindex.Index{ianaindex.MIME, ianaindex.IANA} {
		if canonical, err := index.Name(enc); err == nil {
			return canonical, enc, nil
		}
	}
	return name, enc, nil
}

func newCharsetString(terminated bool) Factory {
	return func(options Options) (Interpreter, error) {
		name, err := options.String(OptionCharset, DefaultCharset)
		if err != nil {
			return nil, err
		}
		canonical, enc, err := lookupCharset(name)
		if err != nil {
			return nil, err
		}
		return charsetString{charset: canonical, encoding: enc, terminated: terminated}, nil
	}
}

func (c charsetString) Name() string {
	if c.terminated {
		return "stringz_charset"
	}
	return "string"
}

func (c charsetString) Options() Options      { return Options{OptionCharset: c.charset} }
func (c charsetString) ValueKind() value.Kind { return value.KindText }

func (c charsetString) Interpret(b binary.Binary, position, length uint64) (value.Value, error) {
	if c.terminated {
		var err error
		if length, err = scanTerminated(b, position, length); err != nil {
			return nil, err
		}
	} else if err := binary.CheckRange(position, length, b.Length()); err != nil {
		return nil, err
	}

	view, err := b.Slice(position, length)
	if err != nil {
		return nil, err
	}
	raw, err := binary.ReadAll(view)
	if err != nil {
		return nil, err
	}
	decoded, err := c.encoding.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", c.charset, err)
	}
	return value.Text{Text: string(decoded), Charset: c.charset, Size: length}, nil
}
