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
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/hnorjordet/xliff-regex-tool/pkg/rule"
	"github.com/hnorjordet/xliff-regex-tool/pkg/xmltext"
)

// ErrNotFound is returned when a profile document is absent where required.
var ErrNotFound = errors.New("profile not found")

// fieldKind identifies which text field the next character-data event
// belongs to. Unrecognized elements map to fieldNone and their text is
// ignored.
type fieldKind int

const (
	fieldNone fieldKind = iota
	fieldName
	fieldDescription
	fieldLanguage
	fieldCreated
	fieldModified
	fieldPattern
	fieldReplacement
	fieldCategory
	fieldCaseSensitive
	fieldExcludePattern
)

var fieldKinds = map[string]fieldKind{
	"name":            fieldName,
	"description":     fieldDescription,
	"language":        fieldLanguage,
	"created":         fieldCreated,
	"modified":        fieldModified,
	"pattern":         fieldPattern,
	"replacement":     fieldReplacement,
	"category":        fieldCategory,
	"case_sensitive":  fieldCaseSensitive,
	"exclude_pattern": fieldExcludePattern,
}

// Load reads a profile document from path. Missing optional check fields
// default to enabled=true, case_sensitive=false and an empty exclusion
// pattern. Checks are re-sorted ascending by order before the profile is
// returned.
func Load(ctx context.Context, path string) (*Profile, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading profile")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, errors.Errorf("reading profile: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, &xmltext.ParseError{Path: path, Err: err}
	}
	return p, nil
}

// Parse parses a profile document from raw bytes.
func Parse(data []byte) (*Profile, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	p := &Profile{}
	var (
		inMetadata bool
		current    *rule.Rule
		field      fieldKind
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &xmltext.ParseError{Offset: dec.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "metadata":
				inMetadata = true
			case "check":
				c := rule.Rule{Enabled: true}
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "order":
						c.Order, _ = strconv.Atoi(attr.Value)
					case "enabled":
						c.Enabled = attr.Value == "true"
					}
				}
				current = &c
			default:
				field = fieldKinds[t.Name.Local]
			}

		case xml.CharData:
			text := string(t)
			if inMetadata {
				switch field {
				case fieldName:
					p.Name += text
				case fieldDescription:
					p.Description += text
				case fieldLanguage:
					p.Language += text
				case fieldCreated:
					p.Created = parseEpoch(text)
				case fieldModified:
					p.Modified = parseEpoch(text)
				}
			} else if current != nil {
				switch field {
				case fieldName:
					current.Name += text
				case fieldDescription:
					current.Description += text
				case fieldPattern:
					current.Pattern += text
				case fieldReplacement:
					current.Replacement += text
				case fieldCategory:
					current.Category += text
				case fieldCaseSensitive:
					current.CaseSensitive = text == "true"
				case fieldExcludePattern:
					current.ExcludePattern += text
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "metadata":
				inMetadata = false
			case "check":
				if current != nil {
					p.Checks = append(p.Checks, *current)
					current = nil
				}
			default:
				field = fieldNone
			}
		}
	}

	p.SortChecks()
	return p, nil
}

// Save writes the profile document to path. Every field is emitted
// explicitly, including empty ones, so that load(save(p)) reproduces p
// exactly.
func Save(ctx context.Context, p *Profile, path string) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Str("profile", p.Name).Msg("saving profile")

	if err := os.WriteFile(path, Encode(p), 0o644); err != nil {
		return errors.Errorf("writing profile: %w", err)
	}
	return nil
}

// Encode serializes the profile document.
func Encode(p *Profile) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<qa_profile>\n")

	b.WriteString("    <metadata>\n")
	writeField(&b, 8, "name", p.Name)
	writeField(&b, 8, "description", p.Description)
	writeField(&b, 8, "language", p.Language)
	writeField(&b, 8, "created", strconv.FormatInt(p.Created, 10))
	writeField(&b, 8, "modified", strconv.FormatInt(p.Modified, 10))
	b.WriteString("    </metadata>\n\n")

	b.WriteString("    <checks>\n")
	for _, c := range p.Checks {
		fmt.Fprintf(&b, "        <check order=\"%d\" enabled=\"%s\">\n", c.Order, boolText(c.Enabled))
		writeField(&b, 12, "name", c.Name)
		writeField(&b, 12, "description", c.Description)
		writeField(&b, 12, "pattern", c.Pattern)
		writeField(&b, 12, "replacement", c.Replacement)
		writeField(&b, 12, "category", c.Category)
		writeField(&b, 12, "case_sensitive", boolText(c.CaseSensitive))
		writeField(&b, 12, "exclude_pattern", c.ExcludePattern)
		b.WriteString("        </check>\n")
	}
	b.WriteString("    </checks>\n</qa_profile>\n")

	return []byte(b.String())
}

func writeField(b *strings.Builder, indent int, name, value string) {
	fmt.Fprintf(b, "%*s<%s>%s</%s>\n", indent, "", name, xmltext.Escape(value), name)
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// parseEpoch tolerates non-numeric timestamps in older documents by
// defaulting to zero.
func parseEpoch(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
