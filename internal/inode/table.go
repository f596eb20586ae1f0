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

// Package inode implements the fixed-size inode table: one rwlock-guarded
// Inode per slot, plus a free bitmap shielded by its own invariant-checked
// mutex, entirely separate from any individual inode's lock.
package inode

import (
	"errors"
	"fmt"

	"github.com/jacobsa/syncutil"
	"github.com/tecnicofs/tfs/internal/block"
)

// ErrNoSpace is returned by Create when every inode slot is in use.
var ErrNoSpace = errors.New("inode: no free inode slots")

// Kind distinguishes a directory inode from a regular-file inode. Symbolic
// links are regular-file inodes with the SymLink flag set, not a distinct
// Kind — mirroring the reference's single-type inode record.
type Kind int

const (
	File Kind = iota
	Directory
)

// Num identifies a slot in the table; it is stable for the lifetime of the
// slot's current occupant. Num(0) is the root directory's reserved slot.
type Num int

// Root is the fixed slot reserved for the root directory.
const Root Num = 0

// Inode holds the attributes of one file or directory, guarded by its own
// rwlock. Fields are only meaningful while the slot is allocated.
type Inode struct {
	Kind      Kind
	Size      int
	DataBlock block.ID // block.None for an empty regular file
	HardLinks int
	SymLink   bool
	SymPath   string

	mu syncutil.InvariantMutex
}

func (in *Inode) checkInvariants() {
	if in.Kind == File && !in.SymLink {
		if (in.Size == 0) != (in.DataBlock == block.None) {
			panic(fmt.Sprintf("size/block mismatch: size=%d block=%v", in.Size, in.DataBlock))
		}
	}
	if in.SymLink && in.DataBlock != block.None {
		panic("symlink inode holds a data block")
	}
}

// Lock acquires the inode's write lock.
func (in *Inode) Lock() { in.mu.Lock() }

// Unlock releases the inode's write lock.
func (in *Inode) Unlock() { in.mu.Unlock() }

// RLock acquires the inode's read lock.
func (in *Inode) RLock() { in.mu.RLock() }

// RUnlock releases the inode's read lock.
func (in *Inode) RUnlock() { in.mu.RUnlock() }

// Table is a fixed-size pool of inodes with a free bitmap guarded by its
// own mutex, separate from any per-inode rwlock.
type Table struct {
	inodes []Inode // fixed length, slot 0 reserved for Root
	used   []bool

	freeMu    syncutil.InvariantMutex
	freeCount int
}

// NewTable allocates a table of maxInodes slots. The caller is responsible
// for creating the root directory inode via Create(Directory) immediately
// afterward so it lands in slot Root.
func NewTable(maxInodes int) *Table {
	t := &Table{
		inodes:    make([]Inode, maxInodes),
		used:      make([]bool, maxInodes),
		freeCount: maxInodes,
	}

	for i := range t.inodes {
		t.inodes[i].mu = syncutil.NewInvariantMutex(t.inodes[i].checkInvariants)
	}

	t.freeMu = syncutil.NewInvariantMutex(t.checkInvariants)
	return t
}

func (t *Table) checkInvariants() {
	n := 0
	for _, u := range t.used {
		if !u {
			n++
		}
	}
	if n != t.freeCount {
		panic(fmt.Sprintf("free inode count mismatch: bitmap says %d, freeCount says %d", n, t.freeCount))
	}
}

// Create allocates a slot, zero-initializes it, and sets HardLinks to 1.
// For a directory, the caller is expected to allocate and wire up the
// root block separately (as tfs.New does); Create itself never touches the
// block pool.
func (t *Table) Create(kind Kind) (Num, error) {
	t.freeMu.Lock()
	defer t.freeMu.Unlock()

	if t.freeCount == 0 {
		return 0, ErrNoSpace
	}

	for i, u := range t.used {
		if !u {
			t.used[i] = true
			t.freeCount--

			t.inodes[i].Kind = kind
			t.inodes[i].Size = 0
			t.inodes[i].DataBlock = block.None
			t.inodes[i].HardLinks = 1
			t.inodes[i].SymLink = false
			t.inodes[i].SymPath = ""

			return Num(i), nil
		}
	}

	panic("freeCount > 0 but no free inode found")
}

// Delete frees id's data block, if any, via pool, and clears its bitmap
// slot. The caller must hold id's write lock; Delete releases none of the
// locking itself, matching the reference's EXCLUSIVE_LOCKS_REQUIRED
// convention rather than enforcing it at runtime.
func (t *Table) Delete(id Num, pool *block.Pool) {
	in := &t.inodes[id]
	if in.DataBlock != block.None {
		pool.Free(in.DataBlock)
		in.DataBlock = block.None
	}
	in.Size = 0
	in.HardLinks = 0
	in.SymLink = false
	in.SymPath = ""

	t.freeMu.Lock()
	t.used[id] = false
	t.freeCount++
	t.freeMu.Unlock()
}

// Get returns a stable pointer to the inode's rwlock+fields.
func (t *Table) Get(id Num) *Inode {
	return &t.inodes[id]
}
