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
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/hnorjordet/xliff-regex-tool/pkg/xmltext"
)

// uncategorized is the category label for entries outside any category
// element.
const uncategorized = "Uncategorized"

// fieldKind identifies which entry field receives the next text event.
type fieldKind int

const (
	fieldNone fieldKind = iota
	fieldName
	fieldDescription
	fieldPattern
	fieldReplace
)

var fieldKinds = map[string]fieldKind{
	"name":        fieldName,
	"description": fieldDescription,
	"pattern":     fieldPattern,
	"replace":     fieldReplace,
}

// 📖 Parse parses a library document. Entries lacking an id get a freshly
// generated one; the category label comes from the nearest enclosing
// category element.
func Parse(data []byte) (*Library, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	lib := &Library{}
	var (
		current      *Category
		currentEntry *Entry
		field        fieldKind
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
			case "category":
				name := uncategorized
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						name = attr.Value
					}
				}
				current = &Category{Name: name}
			case "entry":
				category := uncategorized
				if current != nil {
					category = current.Name
				}
				currentEntry = &Entry{ID: NewID(), Category: category}
			default:
				field = fieldKinds[t.Name.Local]
			}

		case xml.CharData:
			if currentEntry == nil {
				continue
			}
			text := string(t)
			switch field {
			case fieldName:
				currentEntry.Name += text
			case fieldDescription:
				currentEntry.Description += text
			case fieldPattern:
				currentEntry.Pattern += text
			case fieldReplace:
				currentEntry.Replace += text
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "entry":
				if currentEntry != nil {
					if current != nil {
						current.Entries = append(current.Entries, *currentEntry)
					} else {
						lib.Add(uncategorized, *currentEntry)
					}
					currentEntry = nil
				}
			case "category":
				if current != nil {
					lib.Categories = append(lib.Categories, *current)
					current = nil
				}
			default:
				field = fieldNone
			}
		}
	}

	return lib, nil
}

// 📝 Encode serializes the library document verbatim: category order,
// duplicate category names and entry order are all preserved.
func Encode(lib *Library) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<regex-library>\n")

	for _, c := range lib.Categories {
		fmt.Fprintf(&b, "  <category name=\"%s\">\n", xmltext.Escape(c.Name))
		for _, e := range c.Entries {
			b.WriteString("    <entry>\n")
			writeField(&b, "name", e.Name)
			writeField(&b, "description", e.Description)
			writeField(&b, "pattern", e.Pattern)
			writeField(&b, "replace", e.Replace)
			b.WriteString("    </entry>\n")
		}
		b.WriteString("  </category>\n")
	}

	b.WriteString("</regex-library>\n")
	return []byte(b.String())
}

func writeField(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "      <%s>%s</%s>\n", name, xmltext.Escape(value), name)
}
