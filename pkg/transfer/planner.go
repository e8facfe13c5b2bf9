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
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrSourceNotFound is returned by Plan when the source path does not
// exist as either a file or a directory.
var ErrSourceNotFound = errors.New("source does not exist")

// 📄 Entry maps one source file to its path relative to the final
// destination
type Entry struct {
	SourcePath   string // absolute path of the file to transfer
	RelativePath string // path under the final destination
}

// 🗺️ Plan enumerates the files to transfer for the given source. A single
// file yields one entry named by its base name; a directory yields one
// entry per regular file, relative paths preserving the subtree layout in
// traversal order. Plan is read-only against the source and never touches
// the destination. The set of files is fixed at planning time; files added
// afterwards are not picked up.
func Plan(ctx context.Context, fsys FileSystem, source string, ignore []string) ([]Entry, error) {
	logger := zerolog.Ctx(ctx)

	info, err := fsys.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrSourceNotFound, source)
		}
		return nil, errors.Errorf("stat source: %w", err)
	}

	if !info.IsDir() {
		return []Entry{{SourcePath: source, RelativePath: info.Name()}}, nil
	}

	var entries []Entry
	err = fsys.WalkDir(source, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(source, path)
		if relErr != nil {
			return errors.Errorf("computing relative path for %s: %w", path, relErr)
		}

		if shouldIgnore(ctx, rel, ignore) {
			logger.Debug().Str("file", rel).Msg("file ignored by pattern")
			return nil
		}

		entries = append(entries, Entry{SourcePath: path, RelativePath: rel})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking source tree: %w", err)
	}

	logger.Debug().Int("files", len(entries)).Str("source", source).Msg("planned transfer")
	return entries, nil
}

// 🔍 shouldIgnore checks a relative path against the configured patterns
func shouldIgnore(ctx context.Context, rel string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	// Patterns are written with forward slashes regardless of platform
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}

	return false
}
