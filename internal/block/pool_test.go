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

package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnicofs/tfs/internal/block"
)

func TestAllocFreeRoundTrip(t *testing.T) {
	p := block.NewPool(4, 16)

	ids := make([]block.ID, 0, 4)
	for i := 0; i < 4; i++ {
		id, err := p.Alloc()
		require.NoError(t, err)
		ids = append(ids, id)
	}

	_, err := p.Alloc()
	assert.ErrorIs(t, err, block.ErrNoSpace)

	p.Free(ids[0])

	id, err := p.Alloc()
	require.NoError(t, err)
	assert.Equal(t, ids[0], id)
}

func TestGetReturnsExactlyBlockSize(t *testing.T) {
	p := block.NewPool(2, 8)
	id, err := p.Alloc()
	require.NoError(t, err)

	got := p.Get(id)
	assert.Len(t, got, 8)
}

func TestDoubleFreePanics(t *testing.T) {
	p := block.NewPool(1, 8)
	id, err := p.Alloc()
	require.NoError(t, err)

	p.Free(id)
	assert.Panics(t, func() { p.Free(id) })
}
