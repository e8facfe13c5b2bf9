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

// Package notify renders and dispatches the outcome email for a run. A
// dispatch failure is the caller's to log and swallow; it never turns a
// successful transfer into a failed one.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rishabhskr/fileshuttle/pkg/transfer"
	"github.com/wneessen/go-mail"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Settings holds the mail submission configuration
type Settings struct {
	Host     string
	Port     int
	From     string
	Password string
	To       string
	UseTLS   bool // STARTTLS on the submission port
}

// Configured reports whether enough is set to attempt a dispatch. An
// unconfigured notifier is skipped silently, matching the original tool.
func (s Settings) Configured() bool {
	return s.From != "" && s.Password != "" && s.To != ""
}

// ✉️ Message is a rendered notification ready for dispatch
type Message struct {
	Subject string
	Body    string
}

// 📋 JobInfo carries the run context the templates mention but the
// transfer result does not hold
type JobInfo struct {
	Source          string
	DestinationBase string
	Operation       string
	Mode            string // execution mode tag, e.g. interactive or scheduled
}

// 🖋️ Render produces the outcome message for a result, choosing the
// success or failure template.
func Render(res transfer.Result, job JobInfo) Message {
	now := time.Now().Format("2006-01-02 15:04:05")
	dateFolder := res.DateFolder
	if dateFolder == "" {
		dateFolder = "None (disabled)"
	}

	if !res.Failed() {
		return Message{
			Subject: fmt.Sprintf("fileshuttle - %s operation successful (%s)", job.Operation, job.Mode),
			Body: fmt.Sprintf(`File %s operation completed successfully.

Execution Mode: %s
Details:
- Source: %s
- Base Destination: %s
- Final Destination: %s
- Operation: %s
- Files processed: %d
- Duration: %.2f seconds
- Date Folder: %s
- Time: %s

This is an automated message from fileshuttle.
`, job.Operation, job.Mode, job.Source, job.DestinationBase, res.FinalDestination,
				job.Operation, res.FilesProcessed, res.Duration.Seconds(), dateFolder, now),
		}
	}

	return Message{
		Subject: fmt.Sprintf("fileshuttle - %s operation failed (%s)", job.Operation, job.Mode),
		Body: fmt.Sprintf(`File %s operation failed.

Execution Mode: %s
Details:
- Source: %s
- Base Destination: %s
- Operation: %s
- Date Folder Setting: %s
- Error: %s
- Time: %s

Please check the audit log for more details.

This is an automated message from fileshuttle.
`, job.Operation, job.Mode, job.Source, job.DestinationBase, job.Operation,
			dateFolder, res.ErrorMessage(), now),
	}
}

// 🧪 TestMessage renders the configuration self-test mail
func TestMessage(previewDestination string) Message {
	return Message{
		Subject: "fileshuttle - test email",
		Body: fmt.Sprintf(`This is a test email from fileshuttle.

Email configuration is working correctly.
Preview destination: %s

Test completed at %s.
`, previewDestination, time.Now().Format("2006-01-02 15:04:05")),
	}
}

// 📮 Notifier dispatches messages over authenticated SMTP
type Notifier struct {
	settings Settings
}

// 🏭 New creates a notifier for the given settings
func New(settings Settings) *Notifier {
	return &Notifier{settings: settings}
}

// Configured reports whether this notifier will attempt dispatch
func (n *Notifier) Configured() bool {
	return n.settings.Configured()
}

// 🚀 Send dispatches one message. Callers log and swallow the returned
// error; a notification failure never fails the run it describes.
func (n *Notifier) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(n.settings.From); err != nil {
		return errors.Errorf("setting sender: %w", err)
	}
	if err := m.To(n.settings.To); err != nil {
		return errors.Errorf("setting recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	tlsPolicy := mail.NoTLS
	if n.settings.UseTLS {
		tlsPolicy = mail.TLSMandatory
	}

	client, err := mail.NewClient(n.settings.Host,
		mail.WithPort(n.settings.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.settings.From),
		mail.WithPassword(n.settings.Password),
		mail.WithTLSPolicy(tlsPolicy),
	)
	if err != nil {
		return errors.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Errorf("sending notification: %w", err)
	}

	return nil
}
