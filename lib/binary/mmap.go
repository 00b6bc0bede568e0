// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package binary

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapped is a Binary backed by a read-only memory mapping of a file.
// Reads after Close fault, so Close only once every reader is done.
type Mapped struct {
	memory
	mapping []byte
}

// MapFile maps the file at path into memory. An empty file produces
// an empty Binary without creating a mapping.
func MapFile(path string) (*Mapped, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s for mapping: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	size := info.Size()
	if size == 0 {
		return &Mapped{}, nil
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("mapping %s: size %d exceeds address space", path, size)
	}

	mapping, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}
	return &Mapped{memory: memory{data: mapping}, mapping: mapping}, nil
}

// Close releases the mapping.
func (m *Mapped) Close() error {
	if m.mapping == nil {
		return nil
	}
	mapping := m.mapping
	m.mapping = nil
	m.data = nil
	if err := unix.Munmap(mapping); err != nil {
		return fmt.Errorf("unmapping: %w", err)
	}
	return nil
}
