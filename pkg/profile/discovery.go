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

package profile

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// profileGlob is the filename convention profile documents follow.
const profileGlob = "*_qa_profile.xml"

// Info is the display metadata of a discovered profile document.
type Info struct {
	Path        string
	Name        string
	Description string
	Language    string
}

// Discover lists the profile documents in dir, matched by the fixed filename
// suffix convention. Documents that fail to parse still appear in the
// listing with whatever metadata can be scraped out of them; only an
// unreadable directory is an error. An absent directory yields an empty
// listing.
func Discover(ctx context.Context, dir string) ([]Info, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Errorf("reading profiles directory: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := doublestar.Match(profileGlob, entry.Name())
		if err != nil || !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info := Info{Path: path, Name: entry.Name()}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn().Str("path", path).Err(err).Msg("skipping unreadable profile")
			continue
		}

		if p, err := Parse(data); err == nil {
			info.Name = p.Name
			info.Description = p.Description
			info.Language = p.Language
		} else {
			// Best effort: scrape metadata out of documents the
			// parser rejects so the listing stays useful.
			logger.Warn().Str("path", path).Err(err).Msg("profile did not parse cleanly")
			if name := scrapeTag(string(data), "name"); name != "" {
				info.Name = name
			}
			info.Description = scrapeTag(string(data), "description")
			info.Language = scrapeTag(string(data), "language")
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// scrapeTag extracts the first <tag>...</tag> text from raw markup without
// parsing it.
func scrapeTag(doc, tag string) string {
	openTag, closeTag := "<"+tag+">", "</"+tag+">"
	start := strings.Index(doc, openTag)
	if start < 0 {
		return ""
	}
	rest := doc[start+len(openTag):]
	end := strings.Index(rest, closeTag)
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
