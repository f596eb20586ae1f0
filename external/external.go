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

// Package external holds the thin, out-of-scope collaborators named in
// spec.md §1: a helper that ingests an OS-level file into a TFS file, and
// a directory listing utility. Neither adds design content of its own —
// they are both a few lines over the tfs package's public API.
package external

import (
	"io"
	"os"

	"github.com/tecnicofs/tfs"
)

// CopyFromExternal reads up to one block's worth of bytes from the
// OS-level file at sourcePath and writes them into destPath within t,
// creating and truncating destPath as needed.
//
// Unlike the reference implementation, a short read that stops because
// the source file is smaller than one block is not an error: this reads
// until EOF or the block-size cap, whichever comes first, and writes
// exactly what it read (spec.md §9, design note).
func CopyFromExternal(t *tfs.TFS, sourcePath, destPath string) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer src.Close()

	buf := make([]byte, blockSizeOf(t))
	n, err := io.ReadFull(src, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}

	h, err := t.Open(destPath, tfs.OCreat|tfs.OTrunc)
	if err != nil {
		return err
	}

	if _, err = t.Write(h, buf[:n]); err != nil {
		t.CloseFile(h)
		return err
	}

	return t.CloseFile(h)
}

// List returns the names of every live entry in t's single directory, in
// no particular order. It performs a pure read under the root's read
// lock over a local copy of the entries — unlike the reference's
// tfs_list, it never mutates inode state while iterating (spec.md §9,
// design note).
func List(t *tfs.TFS) ([]string, error) {
	return t.ListNames()
}

// blockSizeOf recovers the configured block size so CopyFromExternal can
// size its read buffer without the tfs package exposing Params directly
// on every call site.
func blockSizeOf(t *tfs.TFS) int {
	return t.BlockSize()
}
