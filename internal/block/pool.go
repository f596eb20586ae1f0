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

// Package block implements the fixed-size data-block pool backing every
// regular-file inode's contents.
package block

import (
	"errors"
	"fmt"

	"github.com/jacobsa/syncutil"
)

// ErrNoSpace is returned by Alloc when every block is in use.
var ErrNoSpace = errors.New("block: no free blocks")

// ID identifies a single block within a Pool, or None when a regular file
// holds no block yet.
type ID int

// None is the sentinel block ID meaning "no block allocated."
const None ID = -1

// Pool owns a contiguous buffer of maxBlocks*blockSize bytes and a free
// bitmap of the same arity. alloc/free are guarded by a dedicated
// invariant-checked mutex; Get performs no locking of its own — callers
// must hold the rwlock of the inode that owns the block.
type Pool struct {
	blockSize int

	// Each block is guarded by the rwlock of the inode that owns it.
	arena []byte
	// GUARDED_BY(freeMu)
	used []bool
	// GUARDED_BY(freeMu)
	freeCount int

	freeMu syncutil.InvariantMutex
}

// NewPool allocates a pool of maxBlocks blocks, each blockSize bytes, all
// initially free.
func NewPool(maxBlocks, blockSize int) *Pool {
	p := &Pool{
		blockSize: blockSize,
		arena:     make([]byte, maxBlocks*blockSize),
		used:      make([]bool, maxBlocks),
		freeCount: maxBlocks,
	}

	p.freeMu = syncutil.NewInvariantMutex(p.checkInvariants)
	return p
}

// LOCKS_REQUIRED(p.freeMu)
func (p *Pool) checkInvariants() {
	n := 0
	for _, u := range p.used {
		if !u {
			n++
		}
	}

	if n != p.freeCount {
		panic(fmt.Sprintf("free count mismatch: bitmap says %d, freeCount says %d", n, p.freeCount))
	}
}

// BlockSize returns the fixed size of every block in the pool.
func (p *Pool) BlockSize() int { return p.blockSize }

// Alloc returns the lowest-indexed free block and marks it used.
//
// LOCKS_EXCLUDED(p.freeMu)
func (p *Pool) Alloc() (ID, error) {
	p.freeMu.Lock()
	defer p.freeMu.Unlock()

	if p.freeCount == 0 {
		return None, ErrNoSpace
	}

	for i, u := range p.used {
		if !u {
			p.used[i] = true
			p.freeCount--
			return ID(i), nil
		}
	}

	// Unreachable if freeCount is tracked correctly.
	panic("freeCount > 0 but no free block found")
}

// Free marks id as free. Freeing an already-free block is a programming
// error and panics, matching the reference's treatment of double-free as
// undefined behavior the rewrite turns into a loud failure instead.
func (p *Pool) Free(id ID) {
	p.freeMu.Lock()
	defer p.freeMu.Unlock()

	if !p.used[id] {
		panic(fmt.Sprintf("double free of block %d", id))
	}

	p.used[id] = false
	p.freeCount++
}

// Get returns a view of exactly BlockSize bytes for id. The pool performs
// no locking here: the caller must hold the rwlock of the inode that owns
// the block for the duration of access.
func (p *Pool) Get(id ID) []byte {
	start := int(id) * p.blockSize
	return p.arena[start : start+p.blockSize]
}
