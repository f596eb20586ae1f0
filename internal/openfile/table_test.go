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

package openfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnicofs/tfs/internal/inode"
	"github.com/tecnicofs/tfs/internal/openfile"
)

func TestAddGetRemove(t *testing.T) {
	tbl := openfile.NewTable(2)

	h, err := tbl.Add(inode.Num(3), 0)
	require.NoError(t, err)

	entry, err := tbl.Get(h)
	require.NoError(t, err)
	assert.Equal(t, inode.Num(3), entry.Inumber)

	require.NoError(t, tbl.Remove(h))
	_, err = tbl.Get(h)
	assert.ErrorIs(t, err, openfile.ErrInvalid)
}

func TestAddExhaustion(t *testing.T) {
	tbl := openfile.NewTable(1)
	_, err := tbl.Add(inode.Num(1), 0)
	require.NoError(t, err)

	_, err = tbl.Add(inode.Num(2), 0)
	assert.ErrorIs(t, err, openfile.ErrNoSpace)
}

func TestRemoveInvalidHandle(t *testing.T) {
	tbl := openfile.NewTable(1)
	assert.ErrorIs(t, tbl.Remove(0), openfile.ErrInvalid)
	assert.ErrorIs(t, tbl.Remove(5), openfile.ErrInvalid)
}
