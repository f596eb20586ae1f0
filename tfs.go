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

// Package tfs implements TécnicoFS, an in-memory, single-directory file
// system exposed as an embeddable library. Client goroutines open, read,
// write, link, and unlink files through integer handles; all state lives
// in the process-local tables built by New.
package tfs

import (
	"fmt"

	"github.com/tecnicofs/tfs/internal/block"
	"github.com/tecnicofs/tfs/internal/dirent"
	"github.com/tecnicofs/tfs/internal/inode"
	"github.com/tecnicofs/tfs/internal/openfile"
)

// direntSize is the nominal on-block size of one directory entry (name +
// inumber), used only to size the directory's capacity from BlockSize —
// this repo keeps entries as a typed Go slice rather than hand-packed
// bytes, since byte-for-byte layout is not part of what spec.md's data
// model requires.
const direntSize = dirent.MaxNameLen + 8

// TFS is one in-memory file system instance. The zero value is not
// usable; construct with New.
type TFS struct {
	params Params

	blocks *block.Pool
	inodes *inode.Table
	dir    *dirent.Directory
	open   *openfile.Table
}

// New creates a file system with the given parameters, allocating the
// root directory inode in slot 0. Zero-valued fields in params are filled
// in from DefaultParams.
func New(params Params) (t *TFS, err error) {
	report := startOp("New", fmt.Sprintf("%+v", params))
	defer func() { report(&err) }()

	params = params.withDefaults()

	t = &TFS{
		params: params,
		blocks: block.NewPool(params.MaxBlockCount, params.BlockSize),
		inodes: inode.NewTable(params.MaxInodeCount),
		open:   openfile.NewTable(params.MaxOpenFiles),
	}

	rootID, cerr := t.inodes.Create(inode.Directory)
	if cerr != nil {
		err = ErrNoSpace
		return nil, err
	}
	if rootID != inode.Root {
		panic("root inode did not land in the reserved slot")
	}

	rootBlock, aerr := t.blocks.Alloc()
	if aerr != nil {
		err = ErrNoSpace
		return nil, err
	}

	root := t.inodes.Get(inode.Root)
	root.Lock()
	root.DataBlock = rootBlock
	root.Unlock()

	t.dir = dirent.New(params.BlockSize / direntSize)

	return t, nil
}

// Close tears down the file system. It does not reclaim the underlying
// memory (that is the Go garbage collector's job once the last reference
// to t is dropped) — it exists for API symmetry with New/Init and to give
// embedders a single place to hang future teardown logic.
func (t *TFS) Close() error {
	report := startOp("Close", "")
	var err error
	defer func() { report(&err) }()
	return nil
}

func validPath(path string) bool {
	return len(path) > 1 && path[0] == '/'
}

// BlockSize returns the fixed per-file block size this instance was
// configured with.
func (t *TFS) BlockSize() int { return t.params.BlockSize }

// ListNames returns the names of every live directory entry, in no
// particular order. It is a pure read under the root inode's read lock;
// see external.List for the out-of-scope, interface-only wrapper spec.md
// §1 expects this to back.
func (t *TFS) ListNames() ([]string, error) {
	root := t.inodes.Get(inode.Root)
	root.RLock()
	defer root.RUnlock()

	entries := t.dir.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

// resolve looks up name (the basename, without the leading '/') in the
// directory. The caller must already hold the root inode's lock, in
// either mode.
func (t *TFS) resolve(name string) (inode.Num, bool) {
	return t.dir.Find(name)
}

// Open resolves path to a handle, creating or truncating it as mode
// directs. See spec.md §4.5 for the full decision tree.
//
// One documented compromise, preserved from the reference: if O_CREAT
// causes a new inode and directory entry to be created but inserting into
// the open-file table then fails (table full), the inode and directory
// entry are left in place rather than rolled back. A subsequent
// Open(path, O_CREAT) will find the existing (empty) file.
func (t *TFS) Open(path string, mode OpenMode) (h Handle, err error) {
	report := startOp("Open", fmt.Sprintf("%q, %v", path, mode))
	defer func() { report(&err) }()

	if !validPath(path) {
		return 0, ErrBadPath
	}
	name := path[1:]

	root := t.inodes.Get(inode.Root)
	root.RLock()

	id, found := t.resolve(name)

	if !found && mode&OCreat != 0 {
		// Promote to the root's write lock to create the entry, the same
		// read-then-promote idiom used below for O_TRUNC. Re-check for a
		// racing creator before minting a new inode.
		root.RUnlock()
		root.Lock()

		id, found = t.resolve(name)
		if !found {
			newID, cerr := t.inodes.Create(inode.File)
			if cerr != nil {
				root.Unlock()
				return 0, ErrNoSpace
			}

			if derr := t.dir.Add(name, newID); derr != nil {
				newInode := t.inodes.Get(newID)
				newInode.Lock()
				t.inodes.Delete(newID, t.blocks)
				newInode.Unlock()
				root.Unlock()
				return 0, ErrNoSpace
			}

			id = newID
			found = true
		}

		root.Unlock()
		root.RLock()
	}

	if !found {
		root.RUnlock()
		return 0, ErrNotFound
	}

	target := t.inodes.Get(id)
	target.RLock()

	if target.SymLink {
		symPath := target.SymPath
		target.RUnlock()

		broken := !validPath(symPath)
		var hopID inode.Num
		if !broken {
			hopID, found = t.resolve(symPath[1:])
			broken = !found
		}
		if broken {
			root.RUnlock()
			return 0, ErrBrokenLink
		}

		// Single-hop resolution: whatever this names is what Open opens,
		// even if it is itself a symlink.
		id = hopID
		target = t.inodes.Get(id)
		target.RLock()
	}

	var offset int
	if mode&OTrunc != 0 {
		target.RUnlock()
		target.Lock()
		if target.Size > 0 {
			t.blocks.Free(target.DataBlock)
			target.DataBlock = block.None
			target.Size = 0
		}
		if mode&OAppend != 0 {
			offset = target.Size
		}
		target.Unlock()
	} else {
		if mode&OAppend != 0 {
			offset = target.Size
		}
		target.RUnlock()
	}

	root.RUnlock()

	handle, oerr := t.open.Add(id, offset)
	if oerr != nil {
		return 0, ErrNoSpace
	}

	return Handle(handle), nil
}

// CloseFile removes handle h from the open-file table. It does not touch
// the underlying inode.
func (t *TFS) CloseFile(h Handle) (err error) {
	report := startOp("CloseFile", fmt.Sprintf("%v", h))
	defer func() { report(&err) }()

	if rerr := t.open.Remove(int(h)); rerr != nil {
		return ErrInvalidHandle
	}
	return nil
}

// Read reads up to len(buf) bytes from h's current offset, advancing it.
func (t *TFS) Read(h Handle, buf []byte) (n int, err error) {
	report := startOp("Read", fmt.Sprintf("%v, len=%d", h, len(buf)))
	defer func() { report(&err) }()

	entry, oerr := t.open.Get(int(h))
	if oerr != nil {
		return 0, ErrInvalidHandle
	}

	in := t.inodes.Get(entry.Inumber)
	in.RLock()
	defer in.RUnlock()

	toRead := in.Size - entry.Offset
	if toRead > len(buf) {
		toRead = len(buf)
	}
	if toRead > 0 {
		data := t.blocks.Get(in.DataBlock)
		n = copy(buf, data[entry.Offset:entry.Offset+toRead])
		entry.Offset += n
	}

	return n, nil
}

// Write writes up to len(buf) bytes at h's current offset, advancing it.
// The write is clamped so that offset+len never exceeds BlockSize (the
// one-block-per-file cap); it allocates a block on first write to an
// empty file.
func (t *TFS) Write(h Handle, buf []byte) (n int, err error) {
	report := startOp("Write", fmt.Sprintf("%v, len=%d", h, len(buf)))
	defer func() { report(&err) }()

	entry, oerr := t.open.Get(int(h))
	if oerr != nil {
		return 0, ErrInvalidHandle
	}

	in := t.inodes.Get(entry.Inumber)
	in.Lock()
	defer in.Unlock()

	toWrite := len(buf)
	if entry.Offset+toWrite > t.params.BlockSize {
		toWrite = t.params.BlockSize - entry.Offset
	}
	if toWrite <= 0 {
		return 0, nil
	}

	if in.DataBlock == block.None {
		bid, aerr := t.blocks.Alloc()
		if aerr != nil {
			return 0, ErrNoSpace
		}
		in.DataBlock = bid
	}

	dst := t.blocks.Get(in.DataBlock)
	n = copy(dst[entry.Offset:], buf[:toWrite])
	entry.Offset += n
	if entry.Offset > in.Size {
		in.Size = entry.Offset
	}

	return n, nil
}

// Link creates a hard link: a new directory entry name that shares
// target's inode. target must exist and must not be a symlink.
func (t *TFS) Link(target, name string) (err error) {
	report := startOp("Link", fmt.Sprintf("%q, %q", target, name))
	defer func() { report(&err) }()

	if !validPath(target) || !validPath(name) {
		return ErrBadPath
	}

	root := t.inodes.Get(inode.Root)
	root.Lock()
	defer root.Unlock()

	targetID, found := t.resolve(target[1:])
	if !found {
		return ErrNotFound
	}

	targetInode := t.inodes.Get(targetID)
	targetInode.Lock()
	defer targetInode.Unlock()

	if targetInode.SymLink {
		return ErrIsSymlink
	}

	if _, exists := t.resolve(name[1:]); exists {
		return ErrExists
	}

	if derr := t.dir.Add(name[1:], targetID); derr != nil {
		return ErrNoSpace
	}
	targetInode.HardLinks++

	return nil
}

// SymLink creates a symbolic link name whose sym_path is target, copied
// verbatim. The target need not exist yet — resolution happens lazily on
// Open, and a symlink to a never-created or later-unlinked target simply
// fails to open with ErrBrokenLink rather than failing at creation time.
// Unlike the reference, linking to a symlink never clones the other
// inode's fields — the new inode always simply stores the literal string
// target.
func (t *TFS) SymLink(target, name string) (err error) {
	report := startOp("SymLink", fmt.Sprintf("%q, %q", target, name))
	defer func() { report(&err) }()

	if !validPath(target) || !validPath(name) {
		return ErrBadPath
	}

	root := t.inodes.Get(inode.Root)
	root.Lock()
	defer root.Unlock()

	if _, exists := t.resolve(name[1:]); exists {
		return ErrExists
	}

	newID, cerr := t.inodes.Create(inode.File)
	if cerr != nil {
		return ErrNoSpace
	}

	newInode := t.inodes.Get(newID)
	newInode.Lock()
	newInode.SymLink = true
	newInode.SymPath = target
	newInode.Unlock()

	if derr := t.dir.Add(name[1:], newID); derr != nil {
		newInode.Lock()
		t.inodes.Delete(newID, t.blocks)
		newInode.Unlock()
		return ErrNoSpace
	}

	return nil
}

// Unlink removes the directory entry named name. If the underlying inode
// is a symlink, the inode is deleted immediately. Otherwise its
// hard-link count is decremented and the inode is deleted only once it
// reaches zero.
//
// Unlink does not consult the open-file table: outstanding handles on a
// deleted inode become dangling, a documented precondition violation
// rather than a supported scenario (spec.md §9, resolved as
// "(a), not enforced" — see DESIGN.md).
func (t *TFS) Unlink(name string) (err error) {
	report := startOp("Unlink", fmt.Sprintf("%q", name))
	defer func() { report(&err) }()

	if !validPath(name) {
		return ErrBadPath
	}

	root := t.inodes.Get(inode.Root)
	root.Lock()
	defer root.Unlock()

	id, found := t.resolve(name[1:])
	if !found {
		return ErrNotFound
	}

	target := t.inodes.Get(id)
	target.Lock()
	defer target.Unlock()

	if target.SymLink {
		t.dir.Clear(name[1:])
		t.inodes.Delete(id, t.blocks)
		return nil
	}

	target.HardLinks--
	t.dir.Clear(name[1:])
	if target.HardLinks == 0 {
		t.inodes.Delete(id, t.blocks)
	}

	return nil
}
