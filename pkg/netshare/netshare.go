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

// Package netshare maps a network share to a drive letter for the duration
// of a run, mirroring the `net use` flow of the original tool.
package netshare

import (
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Mount describes one share mapping
type Mount struct {
	Drive    string // drive letter with colon, e.g. "Z:"
	UNCPath  string // \\server\share
	User     string
	Password string
}

// Configured reports whether every field needed for a mapping is present
func (m Mount) Configured() bool {
	return m.Drive != "" && m.UNCPath != "" && m.User != "" && m.Password != ""
}

// 🏃 Runner executes an external command and returns its combined output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// 🔌 Mapper maps and unmaps network drives
type Mapper struct {
	runner Runner
}

// 🏭 New creates a mapper using the OS command runner
func New() *Mapper {
	return &Mapper{runner: execRunner{}}
}

// NewWithRunner creates a mapper with a custom runner, used by tests
func NewWithRunner(r Runner) *Mapper {
	return &Mapper{runner: r}
}

// ➕ Map attaches the share to the drive letter
func (m *Mapper) Map(ctx context.Context, mount Mount) error {
	if !mount.Configured() {
		return errors.New("drive, path, user and password are required")
	}

	out, err := m.runner.Run(ctx, "net", "use", mount.Drive, mount.UNCPath, mount.Password, "/user:"+mount.User)
	if err != nil {
		return errors.Errorf("mapping %s to %s: %s: %w", mount.UNCPath, mount.Drive, strings.TrimSpace(out), err)
	}

	zerolog.Ctx(ctx).Info().Str("drive", mount.Drive).Str("path", mount.UNCPath).Msg("network drive mapped")
	return nil
}

// ➖ Unmap detaches the drive letter
func (m *Mapper) Unmap(ctx context.Context, drive string) error {
	if drive == "" {
		return errors.New("drive is required")
	}

	out, err := m.runner.Run(ctx, "net", "use", drive, "/delete", "/y")
	if err != nil {
		return errors.Errorf("unmapping %s: %s: %w", drive, strings.TrimSpace(out), err)
	}

	zerolog.Ctx(ctx).Info().Str("drive", drive).Msg("network drive unmapped")
	return nil
}
