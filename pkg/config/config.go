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

// Package config loads and saves the job configuration document. The
// document is a flat set of keys with a default for every one of them, so
// a missing file or a missing key never prevents a run. Stringly-typed
// values from the document are converted to closed enums exactly once, in
// TransferConfig; the transfer engine never sees raw strings.
package config

import (
	"strings"
	"time"

	"github.com/rishabhskr/fileshuttle/pkg/datefolder"
	"github.com/rishabhskr/fileshuttle/pkg/netshare"
	"github.com/rishabhskr/fileshuttle/pkg/notify"
	"github.com/rishabhskr/fileshuttle/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 📚 Config is the persisted job configuration. Field names mirror the
// keys of the on-disk document.
type Config struct {
	SourcePath      string   `json:"source_path" yaml:"source_path" hcl:"source_path,optional"`
	DestinationPath string   `json:"destination_path" yaml:"destination_path" hcl:"destination_path,optional"`
	OperationType   string   `json:"operation_type" yaml:"operation_type" hcl:"operation_type,optional"`
	IgnorePatterns  []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" hcl:"ignore_patterns,optional"`

	UseDateFolders bool   `json:"use_date_folders" yaml:"use_date_folders" hcl:"use_date_folders,optional"`
	DateFormat     string `json:"date_format" yaml:"date_format" hcl:"date_format,optional"`
	DateFolderType string `json:"date_folder_type" yaml:"date_folder_type" hcl:"date_folder_type,optional"`
	CustomDate     string `json:"custom_date" yaml:"custom_date" hcl:"custom_date,optional"`

	ScheduleTime      string `json:"schedule_time" yaml:"schedule_time" hcl:"schedule_time,optional"`
	ScheduleFrequency string `json:"schedule_frequency" yaml:"schedule_frequency" hcl:"schedule_frequency,optional"`
	TaskName          string `json:"task_name" yaml:"task_name" hcl:"task_name,optional"`

	SMTPServer     string `json:"smtp_server" yaml:"smtp_server" hcl:"smtp_server,optional"`
	SMTPPort       int    `json:"smtp_port" yaml:"smtp_port" hcl:"smtp_port,optional"`
	SenderEmail    string `json:"sender_email" yaml:"sender_email" hcl:"sender_email,optional"`
	SenderPassword string `json:"sender_password" yaml:"sender_password" hcl:"sender_password,optional"`
	RecipientEmail string `json:"recipient_email" yaml:"recipient_email" hcl:"recipient_email,optional"`
	UseTLS         bool   `json:"use_tls" yaml:"use_tls" hcl:"use_tls,optional"`

	NetworkDrive    string `json:"network_drive" yaml:"network_drive" hcl:"network_drive,optional"`
	NetworkPath     string `json:"network_path" yaml:"network_path" hcl:"network_path,optional"`
	NetworkUser     string `json:"network_user" yaml:"network_user" hcl:"network_user,optional"`
	NetworkPassword string `json:"network_password" yaml:"network_password" hcl:"network_password,optional"`

	DatabasePath string `json:"database_path" yaml:"database_path" hcl:"database_path,optional"`
}

// 🏭 Default returns a configuration with every key at its default
func Default() *Config {
	return &Config{
		OperationType:     "copy",
		UseDateFolders:    true,
		DateFormat:        "YYYY-MM-DD",
		DateFolderType:    "current",
		ScheduleTime:      "00:00",
		ScheduleFrequency: "daily",
		TaskName:          "fileshuttle_task",
		SMTPServer:        "smtp.gmail.com",
		SMTPPort:          587,
		UseTLS:            true,
		DatabasePath:      "fileshuttle.db",
	}
}

// ParseOperation maps a document value onto a transfer.Operation
func ParseOperation(s string) (transfer.Operation, error) {
	switch strings.ToLower(s) {
	case "copy":
		return transfer.OpCopy, nil
	case "move":
		return transfer.OpMove, nil
	default:
		return transfer.OpCopy, errors.Errorf("unknown operation type %q", s)
	}
}

// ParseDateSource maps a document value onto a datefolder.Source
func ParseDateSource(s string) (datefolder.Source, error) {
	switch strings.ToLower(s) {
	case "current":
		return datefolder.SourceCurrent, nil
	case "schedule":
		return datefolder.SourceScheduledRun, nil
	case "custom":
		return datefolder.SourceCustom, nil
	default:
		return datefolder.SourceCurrent, errors.Errorf("unknown date folder type %q", s)
	}
}

// ParseDateFormat maps a document value onto a datefolder.Format. An
// unknown value is not an error; it falls back to YYYY-MM-DD, matching the
// resolver's documented behavior.
func ParseDateFormat(s string) datefolder.Format {
	switch s {
	case "YYYY-MM-DD":
		return datefolder.FormatYMDDash
	case "YYYY/MM/DD":
		return datefolder.FormatYMDSlash
	case "DD-MM-YYYY":
		return datefolder.FormatDMYDash
	case "DD/MM/YYYY":
		return datefolder.FormatDMYSlash
	case "YYYYMMDD":
		return datefolder.FormatCompact
	case "MM-DD-YYYY":
		return datefolder.FormatMDYDash
	default:
		return datefolder.FormatYMDDash
	}
}

// 🎯 TransferConfig converts the document into the engine's resolved input
// for one run starting at runTime. Enum validation happens here, once.
func (c *Config) TransferConfig(runTime time.Time) (transfer.Config, error) {
	op, err := ParseOperation(c.OperationType)
	if err != nil {
		return transfer.Config{}, err
	}

	source, err := ParseDateSource(c.DateFolderType)
	if err != nil {
		return transfer.Config{}, err
	}

	return transfer.Config{
		Source:          c.SourcePath,
		DestinationBase: c.DestinationPath,
		Operation:       op,
		DateFolder: transfer.DateFolder{
			Enabled:    c.UseDateFolders,
			Source:     source,
			Format:     ParseDateFormat(c.DateFormat),
			CustomDate: c.CustomDate,
		},
		RunTime:        runTime,
		IgnorePatterns: c.IgnorePatterns,
	}, nil
}

// 📮 NotifySettings extracts the mail submission settings
func (c *Config) NotifySettings() notify.Settings {
	return notify.Settings{
		Host:     c.SMTPServer,
		Port:     c.SMTPPort,
		From:     c.SenderEmail,
		Password: c.SenderPassword,
		To:       c.RecipientEmail,
		UseTLS:   c.UseTLS,
	}
}

// 🔌 NetworkMount extracts the optional network share mapping
func (c *Config) NetworkMount() netshare.Mount {
	return netshare.Mount{
		Drive:    c.NetworkDrive,
		UNCPath:  c.NetworkPath,
		User:     c.NetworkUser,
		Password: c.NetworkPassword,
	}
}
