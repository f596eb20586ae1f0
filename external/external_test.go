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

package external_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnicofs/tfs"
	"github.com/tecnicofs/tfs/external"
)

func newTestFS(t *testing.T, blockSize int) *tfs.TFS {
	t.Helper()
	params := tfs.DefaultParams()
	params.BlockSize = blockSize

	fs, err := tfs.New(params)
	require.NoError(t, err)
	return fs
}

func writeTempFile(t *testing.T, contents []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source")
	require.NoError(t, os.WriteFile(path, contents, 0o600))
	return path
}

func readBack(t *testing.T, fs *tfs.TFS, path string, n int) []byte {
	t.Helper()
	h, err := fs.Open(path, 0)
	require.NoError(t, err)
	defer fs.CloseFile(h)

	buf := make([]byte, n)
	got, err := fs.Read(h, buf)
	require.NoError(t, err)
	return buf[:got]
}

func TestCopyFromExternalShortSourceIsNotTruncated(t *testing.T) {
	fs := newTestFS(t, 1024)

	contents := []byte("hello, tfs")
	src := writeTempFile(t, contents)

	require.NoError(t, external.CopyFromExternal(fs, src, "/dest"))

	got := readBack(t, fs, "/dest", len(contents)+1)
	assert.True(t, bytes.Equal(contents, got), "expected %q, got %q", contents, got)
}

func TestCopyFromExternalLargerThanBlockSizeIsSilentlyTruncated(t *testing.T) {
	// The directory's capacity is BlockSize/48 entries, so 64 is the
	// smallest block size that leaves room for "/dest".
	const blockSize = 64
	fs := newTestFS(t, blockSize)

	contents := bytes.Repeat([]byte{'x'}, blockSize*4)
	src := writeTempFile(t, contents)

	require.NoError(t, external.CopyFromExternal(fs, src, "/dest"))

	got := readBack(t, fs, "/dest", blockSize+1)
	assert.Equal(t, blockSize, len(got))
	assert.True(t, bytes.Equal(contents[:blockSize], got))
}

func TestListReturnsLiveNames(t *testing.T) {
	fs := newTestFS(t, 1024)

	names, err := external.List(fs)
	require.NoError(t, err)
	assert.Empty(t, names)

	src := writeTempFile(t, []byte("data"))
	require.NoError(t, external.CopyFromExternal(fs, src, "/a"))
	require.NoError(t, external.CopyFromExternal(fs, src, "/b"))

	names, err = external.List(fs)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}
