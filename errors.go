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

import "errors"

// Error kinds returned by the public operations. None of these are ever
// wrapped with additional context; callers compare with errors.Is.
var (
	ErrBadPath       = errors.New("tfs: path must be non-empty, start with '/', and have length > 1")
	ErrNotFound      = errors.New("tfs: no such file")
	ErrExists        = errors.New("tfs: name already exists")
	ErrBrokenLink    = errors.New("tfs: symbolic link target does not exist")
	ErrIsSymlink     = errors.New("tfs: target is a symbolic link")
	ErrInvalidHandle = errors.New("tfs: invalid handle")
	ErrNoSpace       = errors.New("tfs: no space left (inode, block, directory, or handle table full)")
	ErrNotInited     = errors.New("tfs: not initialized")
	ErrAlreadyInited = errors.New("tfs: already initialized")
)
