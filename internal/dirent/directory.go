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

// Package dirent implements the single flat directory: a fixed-capacity
// array of (name, inumber) entries, sized by the caller to what would fit
// in the root inode's one data block. The entries are held in a Go slice;
// they are not written into the block's bytes.
// There is exactly one Directory per file system, matching the Non-goal
// that rules out nested directories.
package dirent

import (
	"errors"

	"github.com/tecnicofs/tfs/internal/inode"
)

// MaxNameLen bounds a directory entry's name, mirroring the reference's
// fixed on-disk d_name field.
const MaxNameLen = 40

// None marks a free entry slot.
const None inode.Num = -1

// ErrFull is returned by Add when every entry slot is in use.
var ErrFull = errors.New("dirent: directory full")

// ErrExists is returned by Add when name is already present.
var ErrExists = errors.New("dirent: name already exists")

// ErrNameTooLong is returned by Add when name exceeds MaxNameLen.
var ErrNameTooLong = errors.New("dirent: name too long")

// Entry is one (name, inumber) directory slot.
type Entry struct {
	Name    string
	Inumber inode.Num // None when the slot is free
}

// Directory is the packed array of entries. All operations are called by
// the owning package with the root inode's rwlock already held at the
// appropriate mode — Directory itself does no locking.
type Directory struct {
	entries []Entry
}

// New returns an empty directory with room for capacity entries.
func New(capacity int) *Directory {
	d := &Directory{entries: make([]Entry, capacity)}
	for i := range d.entries {
		d.entries[i].Inumber = None
	}
	return d
}

// Find returns the inumber of the entry named name, if any.
//
// SHARED_LOCKS_REQUIRED(root inode's rwlock)
func (d *Directory) Find(name string) (inode.Num, bool) {
	for _, e := range d.entries {
		if e.Inumber != None && e.Name == name {
			return e.Inumber, true
		}
	}
	return None, false
}

// Add inserts (name, id) into the first free slot.
//
// EXCLUSIVE_LOCKS_REQUIRED(root inode's rwlock)
func (d *Directory) Add(name string, id inode.Num) error {
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	if _, ok := d.Find(name); ok {
		return ErrExists
	}

	for i := range d.entries {
		if d.entries[i].Inumber == None {
			d.entries[i] = Entry{Name: name, Inumber: id}
			return nil
		}
	}

	return ErrFull
}

// Clear removes the entry named name.
//
// EXCLUSIVE_LOCKS_REQUIRED(root inode's rwlock)
func (d *Directory) Clear(name string) bool {
	for i := range d.entries {
		if d.entries[i].Inumber != None && d.entries[i].Name == name {
			d.entries[i] = Entry{Inumber: None}
			return true
		}
	}
	return false
}

// Entries returns a copy of the live (non-free) entries, for use by the
// out-of-scope listing helper. It performs no locking of its own; the
// caller must hold at least the root inode's read lock.
//
// SHARED_LOCKS_REQUIRED(root inode's rwlock)
func (d *Directory) Entries() []Entry {
	live := make([]Entry, 0, len(d.entries))
	for _, e := range d.entries {
		if e.Inumber != None {
			live = append(live, e)
		}
	}
	return live
}
