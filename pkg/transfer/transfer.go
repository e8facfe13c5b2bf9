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

// Package transfer provides the core file transfer engine: planning the set
// of files to move or copy and executing the plan against the filesystem.
package transfer

import (
	"time"

	"github.com/rishabhskr/fileshuttle/pkg/datefolder"
)

// 🔀 Operation is the kind of transfer performed per file
type Operation int

const (
	OpCopy Operation = iota // duplicate the file, source is kept
	OpMove                  // relocate the file, source is removed
)

// String returns a string representation of Operation
func (o Operation) String() string {
	switch o {
	case OpCopy:
		return "copy"
	case OpMove:
		return "move"
	default:
		return "unknown"
	}
}

// 📅 DateFolder holds the destination subfolder settings for one run
type DateFolder struct {
	Enabled    bool
	Source     datefolder.Source
	Format     datefolder.Format
	CustomDate string
}

// 🔧 Config is the resolved, immutable input for a single run. It is built
// fresh by the calling layer each time; the engine keeps no state between
// runs.
type Config struct {
	// Source is a file or directory that must exist at run time
	Source string
	// DestinationBase is the destination directory, created if absent
	DestinationBase string
	// Operation selects copy or move
	Operation Operation
	// DateFolder controls the optional date-derived subfolder
	DateFolder DateFolder
	// RunTime is the instant the run started. It drives the date folder
	// for the current and schedule sources and the bad-custom-date
	// fallback.
	RunTime time.Time
	// IgnorePatterns are doublestar globs matched against each file's
	// path relative to Source; matching files are left out of the plan.
	IgnorePatterns []string
}
