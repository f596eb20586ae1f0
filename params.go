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

package tfs

// Params is an immutable configuration record fixed at Init. Zero-value
// fields are filled in from DefaultParams by New.
type Params struct {
	MaxInodeCount int
	MaxBlockCount int
	MaxOpenFiles  int
	BlockSize     int
}

// DefaultParams mirrors the reference implementation's tfs_default_params.
func DefaultParams() Params {
	return Params{
		MaxInodeCount: 64,
		MaxBlockCount: 1024,
		MaxOpenFiles:  16,
		BlockSize:     1024,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.MaxInodeCount == 0 {
		p.MaxInodeCount = d.MaxInodeCount
	}
	if p.MaxBlockCount == 0 {
		p.MaxBlockCount = d.MaxBlockCount
	}
	if p.MaxOpenFiles == 0 {
		p.MaxOpenFiles = d.MaxOpenFiles
	}
	if p.BlockSize == 0 {
		p.BlockSize = d.BlockSize
	}
	return p
}

// OpenMode is a bitmask of the flags accepted by Open.
type OpenMode int

const (
	OCreat  OpenMode = 1 << iota // create the file if it doesn't exist
	OTrunc                       // truncate an existing file to zero length
	OAppend                      // start the offset at the file's current size
)

// Handle identifies an open file; it is the index into the open-file table
// returned by Open.
type Handle int
