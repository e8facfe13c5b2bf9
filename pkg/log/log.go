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

// Package log provides user-facing console feedback layered over the
// structured zerolog output. Console lines are for the operator; every
// message is mirrored to zerolog for machine consumption.
package log

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 EventType classifies a per-file console line
type EventType int

const (
	FileTransferred EventType = iota
	FileSkipped
	FileFailed
)

// 📢 UserLogger provides operator-friendly feedback during a run
type UserLogger struct {
	zlog zerolog.Logger
}

// 🎯 NewUserLogger creates a user logger from the context's zerolog logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{zlog: *zerolog.Ctx(ctx)}
}

// 📝 LogFileEvent logs one per-file line with a prefix printer
func (u *UserLogger) LogFileEvent(event EventType, path string, description string) {
	var printer *pterm.PrefixPrinter
	var action string
	switch event {
	case FileSkipped:
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"})
	case FileFailed:
		action = "Failed"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	default:
		action = "Transferred"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✓"})
	}

	msg := fmt.Sprintf("%s %s", action, path)
	if description != "" {
		msg += fmt.Sprintf(" (%s)", description)
	}

	printer.Println(msg)
	u.zlog.Info().Str("file", path).Str("event", action).Msg("file event")
}

// 📈 LogProgress reports the running transfer count every tenth file
func (u *UserLogger) LogProgress(done, total int) {
	if done%10 != 0 && done != total {
		return
	}
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Printf("Processed %d/%d files\n", done, total)
	u.zlog.Debug().Int("done", done).Int("total", total).Msg("transfer progress")
}

// 📝 Header prints the run banner
func (u *UserLogger) Header(msg string) {
	name := color.New(color.Bold, color.FgCyan).Sprint("fileshuttle")
	fmt.Printf("\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	u.zlog.Info().Msg(msg)
}

// 📝 Success prints a green outcome line
func (u *UserLogger) Success(msg string) {
	fmt.Printf("✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	u.zlog.Info().Msg(msg)
}

// 📝 Warning prints a yellow line for recoverable trouble
func (u *UserLogger) Warning(msg string) {
	fmt.Printf("⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	u.zlog.Warn().Msg(msg)
}

// 📝 Error prints a red outcome line
func (u *UserLogger) Error(msg string) {
	fmt.Printf("❌ %s\n", color.New(color.FgRed).Sprint(msg))
	u.zlog.Error().Msg(msg)
}

// 📝 Successf formats and prints a success line
func (u *UserLogger) Successf(format string, args ...interface{}) {
	u.Success(fmt.Sprintf(format, args...))
}

// 📝 Warningf formats and prints a warning line
func (u *UserLogger) Warningf(format string, args ...interface{}) {
	u.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf formats and prints an error line
func (u *UserLogger) Errorf(format string, args ...interface{}) {
	u.Error(fmt.Sprintf(format, args...))
}
