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

package transfer

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 💾 FileSystem is the filesystem port the planner and executor operate
// against. Production code uses OSFileSystem; tests substitute fakes to
// inject faults and to assert that nothing touches the disk.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
	MkdirAll(path string, perm fs.FileMode) error
	Copy(src, dst string) error
	Move(src, dst string) error
}

// 🏭 OSFileSystem implements FileSystem against the real filesystem
type OSFileSystem struct{}

func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OSFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

func (OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Copy duplicates src at dst, replacing any existing file and preserving
// the source's modification time. The source is left untouched.
func (OSFileSystem) Copy(src, dst string) error {
	sfi, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("stat source: %w", err)
	}
	if !sfi.Mode().IsRegular() {
		return errors.Errorf("non-regular source file %s (%q)", filepath.Base(src), sfi.Mode().String())
	}

	if err := copyContents(src, dst); err != nil {
		return err
	}

	// shutil.copy2 parity: carry the source timestamps over
	if err := os.Chtimes(dst, sfi.ModTime(), sfi.ModTime()); err != nil {
		return errors.Errorf("set destination times: %w", err)
	}

	return nil
}

// Move relocates src to dst. It tries an atomic rename first and falls
// back to copy plus remove when the destination is on another filesystem.
func (OSFileSystem) Move(src, dst string) error {
	sfi, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("stat source: %w", err)
	}
	if !sfi.Mode().IsRegular() {
		return errors.Errorf("non-regular source file %s (%q)", filepath.Base(src), sfi.Mode().String())
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	tmpDst := dst + ".tmp"
	if err := copyContents(src, tmpDst); err != nil {
		_ = os.Remove(tmpDst)
		return err
	}
	if err := os.Rename(tmpDst, dst); err != nil {
		_ = os.Remove(tmpDst)
		return errors.Errorf("rename temp to destination: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return errors.Errorf("remove source after copy (destination is safe): %w", err)
	}

	return nil
}

// copyContents copies the contents of src into dst, creating dst if needed
// and truncating it otherwise.
func copyContents(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("open source: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("create destination: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = errors.Errorf("close destination: %w", cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Errorf("copy contents: %w", err)
	}
	if err := out.Sync(); err != nil {
		return errors.Errorf("sync destination: %w", err)
	}

	return nil
}
