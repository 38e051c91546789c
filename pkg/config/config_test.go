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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantErr  string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "json_config",
			file: "config.json",
			content: `{
  "profiles_dir": "/data/profiles",
  "workers": 8
}`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/profiles", cfg.ProfilesDir)
				assert.Equal(t, 8, cfg.Workers)
				assert.Equal(t, 10, cfg.BackupKeep, "gaps filled from defaults")
			},
		},
		{
			name: "yaml_config",
			file: "config.yaml",
			content: `profiles_dir: /data/profiles
library_path: /data/library.xml
backup_keep: 3
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/profiles", cfg.ProfilesDir)
				assert.Equal(t, "/data/library.xml", cfg.LibraryPath)
				assert.Equal(t, 3, cfg.BackupKeep)
				assert.Equal(t, 4, cfg.Workers, "gaps filled from defaults")
			},
		},
		{
			name: "hcl_config",
			file: "config.hcl",
			content: `profiles_dir = "/data/profiles"
backup_dir   = "/data/backups"
workers      = 2
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/profiles", cfg.ProfilesDir)
				assert.Equal(t, "/data/backups", cfg.BackupDir)
				assert.Equal(t, 2, cfg.Workers)
			},
		},
		{
			name:    "json_unknown_field",
			file:    "config.json",
			content: `{"profile_dir": "/oops"}`,
			wantErr: "parsing JSON",
		},
		{
			name:    "yaml_unknown_field",
			file:    "config.yaml",
			content: "profile_dir: /oops\n",
			wantErr: "parsing YAML",
		},
		{
			name:    "unsupported_extension",
			file:    "config.toml",
			content: "workers = 2",
			wantErr: "unsupported file extension",
		},
		{
			name:    "negative_backup_keep",
			file:    "config.json",
			content: `{"backup_keep": -1}`,
			wantErr: "backup_keep must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			cfg, err := Load(context.Background(), path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_AbsentFileUsesDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Location())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.ProfilesDir)
	assert.NotEmpty(t, cfg.LibraryPath)
	assert.NotEmpty(t, cfg.BackupDir)
	assert.Equal(t, 10, cfg.BackupKeep)
	assert.Equal(t, 4, cfg.Workers)
}
