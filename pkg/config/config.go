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

// 📝 Package config loads the tool configuration from JSON, YAML or HCL.
// The format is picked by file extension; unknown fields are rejected in
// every format so typos fail loudly instead of silently doing nothing.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🎯 Config holds the tool-wide settings. Every field has a usable default,
// so an absent config file is fine.
type Config struct {
	// ProfilesDir is scanned for *_qa_profile.xml documents.
	ProfilesDir string `json:"profiles_dir" yaml:"profiles_dir" hcl:"profiles_dir,optional"`

	// LibraryPath is the snippet library document location.
	LibraryPath string `json:"library_path" yaml:"library_path" hcl:"library_path,optional"`

	// BackupDir holds timestamped copies made before in-place replacement.
	BackupDir string `json:"backup_dir" yaml:"backup_dir" hcl:"backup_dir,optional"`

	// BackupKeep is how many backups to keep per file during cleanup.
	BackupKeep int `json:"backup_keep" yaml:"backup_keep" hcl:"backup_keep,optional"`

	// Workers is how many translation units are processed concurrently.
	Workers int `json:"workers" yaml:"workers" hcl:"workers,optional"`

	location string
}

// Default returns the configuration used when no file is present. Paths are
// rooted in the user's home directory.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".xliff-regex-tool")
	return &Config{
		ProfilesDir: filepath.Join(base, "profiles"),
		LibraryPath: filepath.Join(base, "library.xml"),
		BackupDir:   filepath.Join(base, "backups"),
		BackupKeep:  10,
		Workers:     4,
	}
}

// Location returns the path the config was loaded from, or "" for defaults.
func (c *Config) Location() string {
	return c.location
}

// 🔍 Validate checks the loaded values and fills gaps from the defaults.
func Validate(ctx context.Context, cfg *Config) error {
	def := Default()
	if cfg.ProfilesDir == "" {
		cfg.ProfilesDir = def.ProfilesDir
	}
	if cfg.LibraryPath == "" {
		cfg.LibraryPath = def.LibraryPath
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = def.BackupDir
	}
	if cfg.BackupKeep == 0 {
		cfg.BackupKeep = def.BackupKeep
	}
	if cfg.Workers == 0 {
		cfg.Workers = def.Workers
	}
	if cfg.BackupKeep < 0 {
		return errors.Errorf("backup_keep must not be negative, got %d", cfg.BackupKeep)
	}
	if cfg.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	return nil
}

// 📝 Load loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// An absent file yields the defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var cfg *Config

	switch ext {
	case ".json":
		cfg, err = loadJSON(data)
	case ".yaml", ".yml":
		cfg, err = loadYAML(data)
	case ".hcl":
		cfg, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}

	if err != nil {
		return nil, err
	}
	cfg.location = path
	if err := Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

// loadYAML loads a configuration from YAML data
func loadYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// loadHCL loads a configuration from HCL data
func loadHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}
