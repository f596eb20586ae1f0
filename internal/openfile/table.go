// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package openfile implements the fixed-size open-file table: one
// (inumber, offset) entry per live handle, guarded by a single mutex.
package openfile

import (
	"errors"
	"sync"

	"github.com/tecnicofs/tfs/internal/inode"
)

// ErrNoSpace is returned by Add when every handle slot is in use.
var ErrNoSpace = errors.New("openfile: no free handle slots")

// ErrInvalid is returned by Remove/Get for an unknown or already-closed
// handle.
var ErrInvalid = errors.New("openfile: invalid handle")

// Entry is the live state of one open file: the inode it refers to and
// the byte offset the next Read/Write will act on.
type Entry struct {
	Inumber inode.Num
	Offset  int
}

// Table is the fixed-size pool of open-file entries. The table mutex is
// held only for Add/Remove/Get; the returned *Entry is then read and
// mutated by the caller under the relevant inode's lock, not the table's.
type Table struct {
	mu      sync.Mutex
	entries []*Entry // nil means free
}

// NewTable allocates a table with room for maxOpenFiles live handles.
func NewTable(maxOpenFiles int) *Table {
	return &Table{entries: make([]*Entry, maxOpenFiles)}
}

// Add inserts a new entry and returns its handle.
func (t *Table) Add(id inode.Num, offset int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, e := range t.entries {
		if e == nil {
			t.entries[i] = &Entry{Inumber: id, Offset: offset}
			return i, nil
		}
	}

	return 0, ErrNoSpace
}

// Remove destroys the entry at h.
func (t *Table) Remove(h int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h < 0 || h >= len(t.entries) || t.entries[h] == nil {
		return ErrInvalid
	}
	t.entries[h] = nil
	return nil
}

// Get returns the live entry at h, or ErrInvalid if none.
func (t *Table) Get(h int) (*Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h < 0 || h >= len(t.entries) || t.entries[h] == nil {
		return nil, ErrInvalid
	}
	return t.entries[h], nil
}
