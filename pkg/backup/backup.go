// Copyright 2025 hnorjordet
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

// 📦 Package backup manages timestamped copies of documents before they are
// mutated in place. Backups live in a flat directory and are named after the
// original file, so restores and retention both work by name prefix.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const stampLayout = "20060102_150405"

// Manager creates and restores backups under a single directory.
type Manager struct {
	dir  string
	keep int
	now  func() time.Time
}

// Entry describes one stored backup.
type Entry struct {
	Path     string    `json:"path"`
	Original string    `json:"original"`
	Created  time.Time `json:"created"`
}

// New creates a Manager storing backups in dir, keeping at most keep backups
// per original file during Cleanup. keep <= 0 disables retention.
func New(dir string, keep int) *Manager {
	return &Manager{dir: dir, keep: keep, now: time.Now}
}

// 💾 Create copies the file at path into the backup directory as
// name_backup_YYYYMMDD_HHMMSS.ext and returns the backup path.
func (m *Manager) Create(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading file for backup: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", errors.Errorf("creating backup directory: %w", err)
	}

	dst := filepath.Join(m.dir, backupName(filepath.Base(path), m.now()))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", errors.Errorf("writing backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("source", path).Str("backup", dst).Msg("created backup")
	return dst, nil
}

// 📚 List returns the stored backups, newest first. An absent backup
// directory is an empty list, not an error.
func (m *Manager) List(ctx context.Context) ([]Entry, error) {
	dirents, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Errorf("reading backup directory: %w", err)
	}

	var entries []Entry
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		original, created, ok := parseBackupName(d.Name())
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Path:     filepath.Join(m.dir, d.Name()),
			Original: original,
			Created:  created,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Created.Equal(entries[j].Created) {
			return entries[i].Created.After(entries[j].Created)
		}
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// ♻️ Restore copies a backup back over the destination file.
func (m *Manager) Restore(ctx context.Context, backupPath, dst string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return errors.Errorf("reading backup: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return errors.Errorf("restoring backup: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("backup", backupPath).Str("destination", dst).Msg("restored backup")
	return nil
}

// 🧹 Cleanup removes old backups so that at most the configured number of
// backups remain per original file. It returns how many files were removed.
func (m *Manager) Cleanup(ctx context.Context) (int, error) {
	if m.keep <= 0 {
		return 0, nil
	}

	entries, err := m.List(ctx)
	if err != nil {
		return 0, err
	}

	seen := map[string]int{}
	removed := 0
	for _, entry := range entries {
		seen[entry.Original]++
		if seen[entry.Original] <= m.keep {
			continue
		}
		if err := os.Remove(entry.Path); err != nil {
			return removed, errors.Errorf("removing old backup: %w", err)
		}
		removed++
	}

	zerolog.Ctx(ctx).Debug().Int("removed", removed).Msg("backup cleanup complete")
	return removed, nil
}

func backupName(base string, now time.Time) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_backup_%s%s", stem, now.Format(stampLayout), ext)
}

// parseBackupName splits name_backup_YYYYMMDD_HHMMSS.ext back into the
// original file name and the creation time.
func parseBackupName(name string) (string, time.Time, bool) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	i := strings.LastIndex(stem, "_backup_")
	if i < 0 {
		return "", time.Time{}, false
	}

	created, err := time.ParseInLocation(stampLayout, stem[i+len("_backup_"):], time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	return stem[:i] + ext, created, true
}
