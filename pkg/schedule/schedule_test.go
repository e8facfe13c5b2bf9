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

package schedule_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rishabhskr/fileshuttle/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🎭 fakeRunner records invocations and plays back canned results
type fakeRunner struct {
	calls  [][]string
	output string
	err    error
	// errOnDelete makes only the delete invocation fail
	errOnDelete bool
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	call := append([]string{name}, args...)
	f.calls = append(f.calls, call)
	if f.errOnDelete && len(args) > 0 && args[0] == "/delete" {
		return "ERROR: The system cannot find the file specified.", errors.New("exit status 1")
	}
	return f.output, f.err
}

// 🧪 TestCreateDaily tests the delete-then-create command sequence
func TestCreateDaily(t *testing.T) {
	runner := &fakeRunner{errOnDelete: true}
	mgr := schedule.NewWithRunner(runner)

	err := mgr.Create(context.Background(), schedule.Task{
		Name:      "fileshuttle_nightly",
		Time:      "02:30",
		Frequency: schedule.Daily,
		Command:   `fileshuttle --batch --config "C:\jobs\nightly.json"`,
	})
	require.NoError(t, err, "a failed stale-task delete must not abort creation")

	require.Len(t, runner.calls, 2, "delete then create")
	assert.Equal(t, []string{"schtasks", "/delete", "/tn", "fileshuttle_nightly", "/f"}, runner.calls[0])
	assert.Equal(t, []string{
		"schtasks", "/create", "/tn", "fileshuttle_nightly",
		"/tr", `fileshuttle --batch --config "C:\jobs\nightly.json"`,
		"/sc", "daily", "/st", "02:30", "/f",
	}, runner.calls[1])
}

// 🧪 TestCreateOnce tests that one-shot tasks get a start date
func TestCreateOnce(t *testing.T) {
	runner := &fakeRunner{}
	mgr := schedule.NewWithRunner(runner)

	err := mgr.Create(context.Background(), schedule.Task{
		Name:      "fileshuttle_once",
		Time:      "18:00",
		Frequency: schedule.Once,
		Command:   "fileshuttle --batch",
	})
	require.NoError(t, err)

	create := runner.calls[len(runner.calls)-1]
	assert.Contains(t, create, "/sd", "a once task needs a start date")
	assert.Contains(t, create, "once")
}

// 🧪 TestCreateValidation tests required fields
func TestCreateValidation(t *testing.T) {
	mgr := schedule.NewWithRunner(&fakeRunner{})

	err := mgr.Create(context.Background(), schedule.Task{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

// 🧪 TestStatusParsesQueryOutput tests schtasks list-format parsing
func TestStatusParsesQueryOutput(t *testing.T) {
	runner := &fakeRunner{output: strings.Join([]string{
		"HostName:      WS01",
		"TaskName:      \\fileshuttle_nightly",
		"Next Run Time: 3/8/2025 2:30:00 AM",
		"Status:        Ready",
	}, "\n")}
	mgr := schedule.NewWithRunner(runner)

	status, err := mgr.Status(context.Background(), "fileshuttle_nightly")
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.Equal(t, "Ready", status.State)
	assert.Equal(t, "3/8/2025 2:30:00 AM", status.NextRun, "the next run value should keep its time portion")
}

// 🧪 TestStatusMissingTask tests the not-registered case
func TestStatusMissingTask(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	mgr := schedule.NewWithRunner(runner)

	status, err := mgr.Status(context.Background(), "ghost")
	require.NoError(t, err, "an unknown task is a state, not an error")
	assert.False(t, status.Exists)
}

// 🧪 TestParseFrequency tests document value mapping
func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in      string
		want    schedule.Frequency
		wantErr bool
	}{
		{in: "daily", want: schedule.Daily},
		{in: "Weekly", want: schedule.Weekly},
		{in: "MONTHLY", want: schedule.Monthly},
		{in: "once", want: schedule.Once},
		{in: "hourly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := schedule.ParseFrequency(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
