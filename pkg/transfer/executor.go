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
	"path/filepath"
	"time"

	"github.com/rishabhskr/fileshuttle/pkg/datefolder"
	"github.com/rs/zerolog"
)

// ProgressFunc is called after each successful file transfer
type ProgressFunc func(done, total int)

// 🏃 Executor performs one transfer run. The zero value uses the real
// filesystem and reports no progress.
type Executor struct {
	// FS is the filesystem port; nil means OSFileSystem
	FS FileSystem
	// OnProgress, when set, receives the running count after every file
	OnProgress ProgressFunc
}

func (e *Executor) fs() FileSystem {
	if e.FS == nil {
		return OSFileSystem{}
	}
	return e.FS
}

// 🎯 Run executes a single transfer and returns its Result. Every failure
// is captured as data on the Result; no error crosses this boundary. The
// run is strictly sequential and stops at the first file that cannot be
// transferred, reporting the count of files completed before it.
func (e *Executor) Run(ctx context.Context, cfg Config) Result {
	logger := zerolog.Ctx(ctx)

	// Validation happens before any filesystem access
	if cfg.Source == "" || cfg.DestinationBase == "" {
		return Result{
			Status: StatusError,
			Error:  &ErrorDetail{Message: "source or destination path not specified"},
		}
	}

	folder := datefolder.Resolve(
		cfg.DateFolder.Enabled,
		cfg.DateFolder.Source,
		cfg.DateFolder.Format,
		cfg.DateFolder.CustomDate,
		cfg.RunTime,
	)

	finalDest := cfg.DestinationBase
	if folder != "" {
		finalDest = filepath.Join(cfg.DestinationBase, filepath.FromSlash(folder))
	}

	logger.Debug().
		Str("operation", cfg.Operation.String()).
		Str("source", cfg.Source).
		Str("final_destination", finalDest).
		Str("date_folder", folder).
		Msg("starting transfer run")

	// The source is validated before the destination is created, so a
	// missing source never leaves a stray empty directory behind.
	entries, err := Plan(ctx, e.fs(), cfg.Source, cfg.IgnorePatterns)
	if err != nil {
		return Result{
			Status:           StatusError,
			FinalDestination: finalDest,
			DateFolder:       folder,
			Error:            &ErrorDetail{Path: cfg.Source, Message: err.Error()},
		}
	}

	if err := e.fs().MkdirAll(finalDest, 0o755); err != nil {
		return Result{
			Status:           StatusError,
			FinalDestination: finalDest,
			DateFolder:       folder,
			Error:            &ErrorDetail{Path: finalDest, Message: err.Error()},
		}
	}

	processed := 0
	start := time.Now()

	for _, entry := range entries {
		// Cooperative cancellation between files, never mid-file
		if err := ctx.Err(); err != nil {
			return Result{
				Status:           StatusError,
				FilesProcessed:   processed,
				FinalDestination: finalDest,
				DateFolder:       folder,
				Duration:         time.Since(start),
				Error:            &ErrorDetail{Path: entry.SourcePath, Message: err.Error()},
			}
		}

		dst := filepath.Join(finalDest, entry.RelativePath)

		if dir := filepath.Dir(entry.RelativePath); dir != "." {
			if err := e.fs().MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				return Result{
					Status:           StatusError,
					FilesProcessed:   processed,
					FinalDestination: finalDest,
					DateFolder:       folder,
					Duration:         time.Since(start),
					Error:            &ErrorDetail{Path: dst, Message: err.Error()},
				}
			}
		}

		var opErr error
		switch cfg.Operation {
		case OpMove:
			opErr = e.fs().Move(entry.SourcePath, dst)
		default:
			opErr = e.fs().Copy(entry.SourcePath, dst)
		}
		if opErr != nil {
			// Stop at the first failure; the remaining entries are
			// deliberately never attempted.
			logger.Debug().Err(opErr).Str("file", entry.SourcePath).Msg("transfer aborted")
			return Result{
				Status:           StatusError,
				FilesProcessed:   processed,
				FinalDestination: finalDest,
				DateFolder:       folder,
				Duration:         time.Since(start),
				Error:            &ErrorDetail{Path: entry.SourcePath, Message: opErr.Error()},
			}
		}

		processed++
		if e.OnProgress != nil {
			e.OnProgress(processed, len(entries))
		}
	}

	logger.Debug().Int("files", processed).Dur("duration", time.Since(start)).Msg("transfer complete")

	return Result{
		Status:           StatusSuccess,
		FilesProcessed:   processed,
		FinalDestination: finalDest,
		DateFolder:       folder,
		Duration:         time.Since(start),
	}
}
