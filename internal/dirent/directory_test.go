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

package dirent_test

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnicofs/tfs/internal/dirent"
	"github.com/tecnicofs/tfs/internal/inode"
)

func TestAddFindClear(t *testing.T) {
	d := dirent.New(4)

	require.NoError(t, d.Add("a", inode.Num(1)))
	id, ok := d.Find("a")
	require.True(t, ok)
	assert.Equal(t, inode.Num(1), id)

	assert.True(t, d.Clear("a"))
	_, ok = d.Find("a")
	assert.False(t, ok)
}

func TestAddRejectsDuplicate(t *testing.T) {
	d := dirent.New(4)
	require.NoError(t, d.Add("a", inode.Num(1)))
	assert.ErrorIs(t, d.Add("a", inode.Num(2)), dirent.ErrExists)
}

func TestAddFullReturnsErrFull(t *testing.T) {
	d := dirent.New(1)
	require.NoError(t, d.Add("a", inode.Num(1)))
	assert.ErrorIs(t, d.Add("b", inode.Num(2)), dirent.ErrFull)
}

func TestClearFreesSlotForReuse(t *testing.T) {
	d := dirent.New(1)
	require.NoError(t, d.Add("a", inode.Num(1)))
	require.True(t, d.Clear("a"))
	assert.NoError(t, d.Add("b", inode.Num(2)))
}

func TestEntriesReturnsOnlyLive(t *testing.T) {
	d := dirent.New(3)
	require.NoError(t, d.Add("a", inode.Num(1)))
	require.NoError(t, d.Add("b", inode.Num(2)))
	require.True(t, d.Clear("a"))

	entries := d.Entries()
	want := []dirent.Entry{{Name: "b", Inumber: inode.Num(2)}}
	if diff := pretty.Compare(want, entries); diff != "" {
		t.Fatalf("Entries() mismatch (-want +got):\n%s", diff)
	}
}
