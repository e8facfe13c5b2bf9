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

import "time"

// 📊 Status is the overall outcome of a run
type Status int

const (
	StatusSuccess Status = iota
	StatusError
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusError:
		return "ERROR"
	default:
		return "unknown"
	}
}

// ❗ ErrorDetail carries the failing path and the underlying error text
// when a run ends in StatusError
type ErrorDetail struct {
	Path    string // path being processed when the run failed, if any
	Message string // underlying error description
}

// 📦 Result summarizes one run. It is produced exactly once per Run call
// and fully consumed by the caller; downstream collaborators (audit log,
// notification) receive it as data, the engine never calls them.
type Result struct {
	Status           Status
	FilesProcessed   int           // files fully transferred before the status was decided
	FinalDestination string        // destination actually used (base, or base plus date folder)
	DateFolder       string        // resolved folder name, empty when disabled
	Duration         time.Duration // wall-clock time of the transfer loop, planning excluded
	Error            *ErrorDetail  // set only when Status is StatusError
}

// Failed reports whether the run ended in an error
func (r Result) Failed() bool {
	return r.Status == StatusError
}

// ErrorMessage returns the error text, or the empty string on success
func (r Result) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Message
}
