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

// Package datefolder derives the optional destination subfolder name from a
// configured date source and format.
package datefolder

import "time"

// 📅 Source selects which date the folder name is derived from
type Source int

const (
	SourceCurrent      Source = iota // wall-clock time of the run
	SourceScheduledRun               // the instant the run was started with
	SourceCustom                     // an explicit ISO date from the config
)

// String returns a string representation of Source
func (s Source) String() string {
	switch s {
	case SourceCurrent:
		return "current"
	case SourceScheduledRun:
		return "schedule"
	case SourceCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// 🗓️ Format is one of the supported folder name layouts
type Format int

const (
	FormatYMDDash  Format = iota // 2006-01-02
	FormatYMDSlash               // 2006/01/02
	FormatDMYDash                // 02-01-2006
	FormatDMYSlash               // 02/01/2006
	FormatCompact                // 20060102
	FormatMDYDash                // 01-02-2006
)

// layouts maps each Format to its Go time layout
var layouts = map[Format]string{
	FormatYMDDash:  "2006-01-02",
	FormatYMDSlash: "2006/01/02",
	FormatDMYDash:  "02-01-2006",
	FormatDMYSlash: "02/01/2006",
	FormatCompact:  "20060102",
	FormatMDYDash:  "01-02-2006",
}

// String returns a string representation of Format
func (f Format) String() string {
	switch f {
	case FormatYMDDash:
		return "YYYY-MM-DD"
	case FormatYMDSlash:
		return "YYYY/MM/DD"
	case FormatDMYDash:
		return "DD-MM-YYYY"
	case FormatDMYSlash:
		return "DD/MM/YYYY"
	case FormatCompact:
		return "YYYYMMDD"
	case FormatMDYDash:
		return "MM-DD-YYYY"
	default:
		return "unknown"
	}
}

// customLayout is the layout custom dates are written in config documents.
const customLayout = "2006-01-02"

// 🎯 Resolve returns the date folder name for the given settings, or the
// empty string when date folders are disabled. An unparsable custom date
// silently falls back to runTime; an unknown format falls back to
// YYYY-MM-DD. Deterministic for every source except SourceCurrent.
func Resolve(enabled bool, source Source, format Format, customDate string, runTime time.Time) string {
	if !enabled {
		return ""
	}

	var date time.Time
	switch source {
	case SourceScheduledRun:
		date = runTime
	case SourceCustom:
		parsed, err := time.Parse(customLayout, customDate)
		if err != nil {
			// Quirk carried over from the first release: a bad custom
			// date is not an error, the run date is used instead.
			date = runTime
		} else {
			date = parsed
		}
	default:
		// "current" takes the caller's run instant when one was injected,
		// so tests stay deterministic; a zero runTime means wall clock.
		date = runTime
		if date.IsZero() {
			date = time.Now()
		}
	}

	layout, ok := layouts[format]
	if !ok {
		layout = layouts[FormatYMDDash]
	}

	return date.Format(layout)
}
