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

package library

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/hnorjordet/xliff-regex-tool/pkg/xmltext"
)

// 💾 Store persists the library at a fixed per-user location.
type Store struct {
	path string
}

// 🏭 NewStore creates a store rooted at path. Use DefaultPath for the
// conventional per-user location.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// 🏠 DefaultPath returns the conventional per-user library location,
// ~/.xliff-regex-tool/library.xml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".xliff-regex-tool", "library.xml"), nil
}

// 📖 Load reads the library from the store's location. An absent document is
// not an error: the starter library with its default categories is returned
// instead.
func (s *Store) Load(ctx context.Context) (*Library, error) {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", s.path).Msg("no library document, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading library: %w", err)
	}

	lib, err := Parse(data)
	if err != nil {
		return nil, &xmltext.ParseError{Path: s.path, Err: err}
	}
	return lib, nil
}

// 💾 Save overwrites the store's location with the library document.
func (s *Store) Save(ctx context.Context, lib *Library) error {
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Int("entries", lib.Len()).Msg("saving library")

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Errorf("creating library directory: %w", err)
	}
	if err := os.WriteFile(s.path, Encode(lib), 0o644); err != nil {
		return errors.Errorf("writing library: %w", err)
	}
	return nil
}

// 📥 Import parses a library document from an arbitrary location without
// touching the store's own location. Entries without ids get generated ones.
func Import(ctx context.Context, path string) (*Library, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("importing library")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading import file: %w", err)
	}

	lib, err := Parse(data)
	if err != nil {
		return nil, &xmltext.ParseError{Path: path, Err: err}
	}
	return lib, nil
}

// 📤 Export writes the in-memory library verbatim to an arbitrary location.
func Export(ctx context.Context, lib *Library, path string) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("entries", lib.Len()).Msg("exporting library")

	if err := os.WriteFile(path, Encode(lib), 0o644); err != nil {
		return errors.Errorf("exporting library: %w", err)
	}
	return nil
}
