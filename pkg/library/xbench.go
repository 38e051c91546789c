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
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/hnorjordet/xliff-regex-tool/pkg/xmltext"
)

// IsChecklistPath reports whether path looks like an Xbench checklist.
// Checklists use the .xbckl extension; .xbck is accepted as a common
// truncation.
func IsChecklistPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xbckl", ".xbck":
		return true
	}
	return false
}

// Xbench checklists use a handful of element names for items depending on
// the check type, and several spellings for each field.
var (
	xbenchItemNames = map[string]bool{
		"ChecklistItem":   true,
		"PowerSearchItem": true,
		"Item":            true,
		"QAItem":          true,
	}
	xbenchNameFields    = []string{"Name", "Description", "Text"}
	xbenchSearchFields  = []string{"SearchText", "Search", "Pattern", "FindText", "SourceText"}
	xbenchReplaceFields = []string{"ReplaceText", "Replace", "Replacement", "TargetText"}
	xbenchRegexFields   = []string{"IsRegEx", "IsRegex", "RegEx", "UseRegex", "RegularExpression"}
)

// xbenchNode is a minimal element tree, enough to walk a checklist.
type xbenchNode struct {
	name     string
	text     string
	children []*xbenchNode
}

// 📥 ImportXbench parses an Xbench checklist file and converts its regex
// items into a library of snippet entries, grouped under the checklist name.
// Items that are not flagged as regular expressions are skipped.
func ImportXbench(ctx context.Context, path string) (*Library, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("importing xbench checklist")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading checklist: %w", err)
	}

	root, err := parseXbenchTree(data)
	if err != nil {
		return nil, &xmltext.ParseError{Path: path, Err: err}
	}

	category := firstText(root, "ChecklistName")
	if category == "" {
		category = uncategorized
	}

	lib := &Library{Categories: []Category{{Name: category}}}
	collectXbenchItems(root, category, &lib.Categories[0])
	return lib, nil
}

func parseXbenchTree(data []byte) (*xbenchNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	root := &xbenchNode{}
	stack := []*xbenchNode{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &xbenchNode{name: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
			stack = append(stack, node)
		case xml.CharData:
			stack[len(stack)-1].text += string(t)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return root, nil
}

func collectXbenchItems(node *xbenchNode, category string, dst *Category) {
	for _, child := range node.children {
		if xbenchItemNames[child.name] {
			if entry, ok := xbenchEntry(child, category); ok {
				dst.Entries = append(dst.Entries, entry)
			}
			continue
		}
		collectXbenchItems(child, category, dst)
	}
}

// xbenchEntry converts one checklist item. Only regex items with a search
// text survive the conversion. Search and replace text carry over verbatim:
// patterns like "  +" and single-space replacements are whitespace-significant.
func xbenchEntry(item *xbenchNode, category string) (Entry, bool) {
	search := anyRawText(item, xbenchSearchFields)
	if search == "" {
		return Entry{}, false
	}
	if !anyBool(item, xbenchRegexFields) {
		return Entry{}, false
	}

	name := anyText(item, xbenchNameFields)
	if name == "" {
		name = search
	}

	return Entry{
		ID:       NewID(),
		Name:     name,
		Pattern:  search,
		Replace:  anyRawText(item, xbenchReplaceFields),
		Category: category,
	}, true
}

func firstText(node *xbenchNode, name string) string {
	for _, child := range node.children {
		if child.name == name {
			return strings.TrimSpace(child.text)
		}
		if found := firstText(child, name); found != "" {
			return found
		}
	}
	return ""
}

// anyRawText is anyText without the trimming, for whitespace-significant
// fields.
func anyRawText(item *xbenchNode, names []string) string {
	for _, name := range names {
		for _, child := range item.children {
			if child.name == name && child.text != "" {
				return child.text
			}
		}
	}
	return ""
}

// anyText returns the first matching field's text, trimmed for display.
func anyText(item *xbenchNode, names []string) string {
	for _, name := range names {
		for _, child := range item.children {
			if child.name == name {
				if text := strings.TrimSpace(child.text); text != "" {
					return text
				}
			}
		}
	}
	return ""
}

func anyBool(item *xbenchNode, names []string) bool {
	for _, name := range names {
		for _, child := range item.children {
			if child.name != name {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(child.text)) {
			case "true", "yes", "1":
				return true
			}
		}
	}
	return false
}
