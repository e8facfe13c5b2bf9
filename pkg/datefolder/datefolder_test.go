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

package datefolder_test

import (
	"testing"
	"time"

	"github.com/rishabhskr/fileshuttle/pkg/datefolder"
	"github.com/stretchr/testify/assert"
)

// 🧪 TestResolveDisabled tests that disabled date folders yield no name
func TestResolveDisabled(t *testing.T) {
	runTime := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

	for src := datefolder.SourceCurrent; src <= datefolder.SourceCustom; src++ {
		got := datefolder.Resolve(false, src, datefolder.FormatYMDDash, "2024-12-31", runTime)
		assert.Empty(t, got, "disabled resolver should return empty string for source %s", src)
	}
}

// 🧪 TestResolveFormats tests every supported folder name layout
func TestResolveFormats(t *testing.T) {
	runTime := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		format datefolder.Format
		want   string
	}{
		{datefolder.FormatYMDDash, "2025-03-07"},
		{datefolder.FormatYMDSlash, "2025/03/07"},
		{datefolder.FormatDMYDash, "07-03-2025"},
		{datefolder.FormatDMYSlash, "07/03/2025"},
		{datefolder.FormatCompact, "20250307"},
		{datefolder.FormatMDYDash, "03-07-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got := datefolder.Resolve(true, datefolder.SourceCurrent, tt.format, "", runTime)
			assert.Equal(t, tt.want, got, "format %s should render run time", tt.format)
		})
	}
}

// 🧪 TestResolveSources tests date selection per source
func TestResolveSources(t *testing.T) {
	runTime := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		source     datefolder.Source
		customDate string
		want       string
	}{
		{
			name:   "current_uses_injected_run_time",
			source: datefolder.SourceCurrent,
			want:   "2025-03-07",
		},
		{
			name:   "schedule_uses_run_time",
			source: datefolder.SourceScheduledRun,
			want:   "2025-03-07",
		},
		{
			name:       "custom_uses_parsed_date",
			source:     datefolder.SourceCustom,
			customDate: "2024-12-31",
			want:       "2024-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := datefolder.Resolve(true, tt.source, datefolder.FormatYMDDash, tt.customDate, runTime)
			assert.Equal(t, tt.want, got)
		})
	}
}

// 🧪 TestResolveBadCustomDateFallsBack tests the documented silent fallback
func TestResolveBadCustomDateFallsBack(t *testing.T) {
	runTime := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

	got := datefolder.Resolve(true, datefolder.SourceCustom, datefolder.FormatYMDDash, "not-a-date", runTime)
	want := datefolder.Resolve(true, datefolder.SourceCurrent, datefolder.FormatYMDDash, "", runTime)

	assert.Equal(t, want, got, "bad custom date should fall back to the run time")
}

// 🧪 TestResolveUnknownFormatFallsBack tests the default layout fallback
func TestResolveUnknownFormatFallsBack(t *testing.T) {
	runTime := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

	got := datefolder.Resolve(true, datefolder.SourceScheduledRun, datefolder.Format(99), "", runTime)
	assert.Equal(t, "2025-03-07", got, "unknown format should fall back to YYYY-MM-DD")
}
