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

// Package schedule registers recurring batch runs with the Windows Task
// Scheduler. It is the single external-scheduler collaborator; no
// cross-platform abstraction is attempted.
package schedule

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔁 Frequency is how often a registered task fires
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
	Once // scheduled for tomorrow at the given time
)

// String returns the schtasks schedule keyword
func (f Frequency) String() string {
	switch f {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Once:
		return "once"
	default:
		return "unknown"
	}
}

// ParseFrequency maps a config document value onto a Frequency
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(s) {
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	case "once":
		return Once, nil
	default:
		return Daily, errors.Errorf("unknown schedule frequency %q", s)
	}
}

// 📋 Task describes one recurring invocation to register
type Task struct {
	Name      string    // scheduler task name
	Time      string    // time of day, HH:MM
	Frequency Frequency
	Command   string // full command line the scheduler should run
}

// 📈 TaskStatus is the parsed state of a registered task
type TaskStatus struct {
	Exists  bool
	State   string
	NextRun string
}

// 🏃 Runner executes an external command and returns its combined output.
// Tests substitute a fake to assert the constructed command lines.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// execRunner runs commands with os/exec
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// 🗓️ Manager creates, deletes and queries scheduler tasks
type Manager struct {
	runner Runner
}

// 🏭 New creates a manager using the OS command runner
func New() *Manager {
	return &Manager{runner: execRunner{}}
}

// NewWithRunner creates a manager with a custom runner, used by tests
func NewWithRunner(r Runner) *Manager {
	return &Manager{runner: r}
}

// ➕ Create registers the task, replacing any existing one with the same
// name.
func (m *Manager) Create(ctx context.Context, task Task) error {
	logger := zerolog.Ctx(ctx)

	if task.Name == "" || task.Time == "" || task.Command == "" {
		return errors.New("task name, time and command are required")
	}

	// Remove a stale registration first; a missing task is not an error
	if out, err := m.runner.Run(ctx, "schtasks", "/delete", "/tn", task.Name, "/f"); err != nil {
		logger.Debug().Str("output", out).Msg("no existing task to delete")
	}

	args := []string{"/create", "/tn", task.Name, "/tr", task.Command, "/sc", task.Frequency.String(), "/st", task.Time, "/f"}
	if task.Frequency == Once {
		tomorrow := time.Now().AddDate(0, 0, 1).Format("01/02/2006")
		args = []string{"/create", "/tn", task.Name, "/tr", task.Command, "/sc", "once", "/sd", tomorrow, "/st", task.Time, "/f"}
	}

	out, err := m.runner.Run(ctx, "schtasks", args...)
	if err != nil {
		return errors.Errorf("creating scheduled task %q: %s: %w", task.Name, strings.TrimSpace(out), err)
	}

	logger.Info().Str("task", task.Name).Str("frequency", task.Frequency.String()).Str("time", task.Time).Msg("scheduled task created")
	return nil
}

// ➖ Delete removes a registered task
func (m *Manager) Delete(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("task name is required")
	}

	out, err := m.runner.Run(ctx, "schtasks", "/delete", "/tn", name, "/f")
	if err != nil {
		return errors.Errorf("deleting scheduled task %q: %s: %w", name, strings.TrimSpace(out), err)
	}
	return nil
}

// 🔎 Status queries the scheduler for a task's state and next run time
func (m *Manager) Status(ctx context.Context, name string) (TaskStatus, error) {
	if name == "" {
		return TaskStatus{}, errors.New("task name is required")
	}

	out, err := m.runner.Run(ctx, "schtasks", "/query", "/tn", name, "/fo", "list")
	if err != nil {
		// schtasks exits non-zero for unknown tasks
		return TaskStatus{Exists: false}, nil
	}

	status := TaskStatus{Exists: true, State: "Unknown", NextRun: "Unknown"}
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Status":
			status.State = strings.TrimSpace(value)
		case "Next Run Time":
			status.NextRun = strings.TrimSpace(value)
		}
	}

	return status, nil
}
