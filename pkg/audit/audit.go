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

// Package audit persists one record per transfer run in a local sqlite
// database. Store failures are reported to the caller but must never be
// allowed to invalidate the transfer result they describe.
package audit

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"gitlab.com/tozd/go/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultRetention is how long records are kept by Prune when the caller
// does not choose an age.
const DefaultRetention = 30 * 24 * time.Hour

// 📜 Record is one audit log row describing a single run
type Record struct {
	ID               uint      `gorm:"primaryKey"`
	RunAt            time.Time `gorm:"index;not null"`
	Source           string    `gorm:"not null"`
	DestinationBase  string    `gorm:"not null"`
	FinalDestination string
	Operation        string
	Status           string
	FilesProcessed   int
	ErrorDetail      string
	ScheduleTime     string
	DateFolder       string
	ExecutionMode    string
}

// TableName keeps the table name stable across gorm naming changes
func (Record) TableName() string {
	return "transfer_records"
}

// 🗄️ Store wraps the sqlite-backed audit log
type Store struct {
	db *gorm.DB
}

// 🏭 Open opens (creating if needed) the audit database at path and runs
// migrations.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Errorf("opening audit database: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, errors.Errorf("migrating audit schema: %w", err)
	}

	return &Store{db: db}, nil
}

// 📝 Append stores one record
func (s *Store) Append(ctx context.Context, rec Record) error {
	if rec.RunAt.IsZero() {
		rec.RunAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return errors.Errorf("creating audit record: %w", err)
	}
	return nil
}

// 🔎 Recent returns up to limit records, most recent first
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	var recs []Record
	err := s.db.WithContext(ctx).
		Order("run_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, errors.Errorf("querying audit records: %w", err)
	}
	return recs, nil
}

// 🧹 Prune deletes records older than the given age and returns how many
// were removed. A zero age means DefaultRetention.
func (s *Store) Prune(ctx context.Context, age time.Duration) (int64, error) {
	if age <= 0 {
		age = DefaultRetention
	}
	cutoff := time.Now().Add(-age)

	res := s.db.WithContext(ctx).Where("run_at < ?", cutoff).Delete(&Record{})
	if res.Error != nil {
		return 0, errors.Errorf("deleting old audit records: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// 📤 ExportCSV writes every record to w as CSV, most recent first, with a
// header row.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) error {
	var recs []Record
	if err := s.db.WithContext(ctx).Order("run_at DESC").Find(&recs).Error; err != nil {
		return errors.Errorf("querying audit records: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{
		"Timestamp", "Source Path", "Destination Path", "Final Destination",
		"Operation Type", "Status", "Files Processed", "Error Message",
		"Schedule Time", "Date Folder", "Execution Mode",
	}
	if err := cw.Write(header); err != nil {
		return errors.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range recs {
		row := []string{
			rec.RunAt.Format(time.RFC3339),
			rec.Source,
			rec.DestinationBase,
			rec.FinalDestination,
			rec.Operation,
			rec.Status,
			strconv.Itoa(rec.FilesProcessed),
			rec.ErrorDetail,
			rec.ScheduleTime,
			rec.DateFolder,
			rec.ExecutionMode,
		}
		if err := cw.Write(row); err != nil {
			return errors.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Errorf("getting underlying connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return errors.Errorf("closing audit database: %w", err)
	}
	return nil
}
