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

package inode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnicofs/tfs/internal/block"
	"github.com/tecnicofs/tfs/internal/inode"
)

func TestCreateReservesRootSlot(t *testing.T) {
	tbl := inode.NewTable(4)
	id, err := tbl.Create(inode.Directory)
	require.NoError(t, err)
	assert.Equal(t, inode.Root, id)
}

func TestCreateExhaustionAndFreeRecovery(t *testing.T) {
	tbl := inode.NewTable(2)

	_, err := tbl.Create(inode.File)
	require.NoError(t, err)
	second, err := tbl.Create(inode.File)
	require.NoError(t, err)

	_, err = tbl.Create(inode.File)
	assert.ErrorIs(t, err, inode.ErrNoSpace)

	pool := block.NewPool(1, 8)
	in := tbl.Get(second)
	in.Lock()
	tbl.Delete(second, pool)
	in.Unlock()

	_, err = tbl.Create(inode.File)
	assert.NoError(t, err)
}

func TestDeleteFreesDataBlock(t *testing.T) {
	tbl := inode.NewTable(2)
	pool := block.NewPool(2, 8)

	id, err := tbl.Create(inode.File)
	require.NoError(t, err)

	in := tbl.Get(id)
	in.Lock()
	bid, err := pool.Alloc()
	require.NoError(t, err)
	in.DataBlock = bid
	in.Size = 4
	in.Unlock()

	in.Lock()
	tbl.Delete(id, pool)
	in.Unlock()

	// The block should be available for reallocation.
	again, err := pool.Alloc()
	require.NoError(t, err)
	assert.Equal(t, bid, again)
}
