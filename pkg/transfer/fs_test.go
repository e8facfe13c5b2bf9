// Copyright 2025 The fileshuttle Authors
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

package transfer_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rishabhskr/fileshuttle/pkg/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestCopyPreservesModTime tests shutil.copy2 parity
func TestCopyPreservesModTime(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "dst.txt")

	require.NoError(t, os.WriteFile(src, []byte("content"), 0o644))
	modTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, modTime, modTime))

	require.NoError(t, transfer.OSFileSystem{}.Copy(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime), "destination should carry the source modification time")
}

// 🧪 TestCopyOverwritesExisting tests the overwrite policy
func TestCopyOverwritesExisting(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "dst.txt")

	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old content that is longer"), 0o644))

	require.NoError(t, transfer.OSFileSystem{}.Copy(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data), "an existing destination file is replaced entirely")
}

// 🧪 TestCopyRejectsDirectory tests the regular-file guard
func TestCopyRejectsDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	err := transfer.OSFileSystem{}.Copy(tmpDir, filepath.Join(tmpDir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-regular")
}

// 🧪 TestMoveRemovesSource tests the rename path
func TestMoveRemovesSource(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "dst.txt")

	require.NoError(t, os.WriteFile(src, []byte("content"), 0o644))
	require.NoError(t, transfer.OSFileSystem{}.Move(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should be gone after a move")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
