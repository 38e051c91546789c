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

package engine

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Inline markup shows up in segment text at several escaping levels: raw
// tags, entity-escaped tags and double-escaped tags. Entities inside a tag
// belong to the tag itself.
var inlineTag = regexp.MustCompile(`<[^<>]*>|&lt;(?:[^&]|&[a-zA-Z]+;|&#\d+;)*?&gt;|&amp;lt;(?:[^&]|&(?:amp|quot|lt|gt|apos|#\d+);)*?&amp;gt;`)

// segment is one run of unit text, either inline markup or plain text.
// Checks only ever see the plain runs; markup passes through untouched.
type segment struct {
	text string
	tag  bool
}

// splitMarkup cuts text into its ordered markup and plain-text runs.
func splitMarkup(text string) []segment {
	spans := inlineTag.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return []segment{{text: text}}
	}

	var segs []segment
	pos := 0
	for _, span := range spans {
		if span[0] > pos {
			segs = append(segs, segment{text: text[pos:span[0]]})
		}
		segs = append(segs, segment{text: text[span[0]:span[1]], tag: true})
		pos = span[1]
	}
	if pos < len(text) {
		segs = append(segs, segment{text: text[pos:]})
	}
	return segs
}

// plainText joins the plain runs, dropping the markup.
func plainText(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		if !s.tag {
			b.WriteString(s.text)
		}
	}
	return b.String()
}

// joinSegments rebuilds the unit text with the markup back in place.
func joinSegments(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return b.String()
}

// markupOffset maps a rune offset in the joined plain text back to a rune
// offset in the markup-bearing text. An offset on a run boundary maps to the
// end of the earlier plain run, before any intervening tag.
func markupOffset(segs []segment, pos int) int {
	plain, orig := 0, 0
	for _, s := range segs {
		n := utf8.RuneCountInString(s.text)
		if s.tag {
			orig += n
			continue
		}
		if plain+n >= pos {
			return orig + (pos - plain)
		}
		plain += n
		orig += n
	}
	return orig
}
