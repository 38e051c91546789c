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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnorjordet/xliff-regex-tool/pkg/profile"
	"github.com/hnorjordet/xliff-regex-tool/pkg/rule"
	"github.com/hnorjordet/xliff-regex-tool/pkg/xliff"
)

func TestSplitMarkup(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantPlain string
		wantJoin  string
	}{
		{
			name:      "no_markup",
			text:      "Pris: 10 kr",
			wantPlain: "Pris: 10 kr",
			wantJoin:  "Pris: 10 kr",
		},
		{
			name:      "paired_tags",
			text:      `Trykk <g id="1">OK</g> nå`,
			wantPlain: "Trykk OK nå",
			wantJoin:  `Trykk <g id="1">OK</g> nå`,
		},
		{
			name:      "self_closing_tag",
			text:      `Se <x id="4"/> etter`,
			wantPlain: "Se  etter",
			wantJoin:  `Se <x id="4"/> etter`,
		},
		{
			name:      "entity_escaped_tag",
			text:      "klikk &lt;b&gt;her&lt;/b&gt;",
			wantPlain: "klikk her",
			wantJoin:  "klikk &lt;b&gt;her&lt;/b&gt;",
		},
		{
			name:      "leading_and_trailing_tags",
			text:      `<b>midt</b>`,
			wantPlain: "midt",
			wantJoin:  `<b>midt</b>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := splitMarkup(tt.text)
			assert.Equal(t, tt.wantPlain, plainText(segs))
			assert.Equal(t, tt.wantJoin, joinSegments(segs))
		})
	}
}

func TestMarkupOffset(t *testing.T) {
	// "Se <x id="4"/> etter 10 stk" -> plain "Se  etter 10 stk"
	segs := splitMarkup(`Se <x id="4"/> etter 10 stk`)

	tests := []struct {
		name  string
		plain int
		want  int
	}{
		{name: "start_of_text", plain: 0, want: 0},
		{name: "boundary_before_tag", plain: 3, want: 3},
		{name: "after_tag", plain: 4, want: 15},
		{name: "inside_trailing_run", plain: 10, want: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markupOffset(segs, tt.plain))
		})
	}
}

func TestEngine_Find_SkipsInlineMarkup(t *testing.T) {
	ctx := context.Background()
	prof := &profile.Profile{
		Name: "numbers",
		Checks: []rule.Rule{
			{Order: 1, Enabled: true, Name: "digits", Pattern: `\d+`, Replacement: "N"},
		},
	}
	units := []xliff.TransUnit{
		{ID: "tu-1", Target: `Se <x id="4"/> etter 10 stk`},
	}

	result, err := New().Find(ctx, prof, "f.xlf", units)
	require.NoError(t, err)

	// the "4" inside the tag attribute must not match
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "10", result.Matches[0].Match)

	// offsets point into the markup-bearing target text
	assert.Equal(t, 21, result.Matches[0].Start)
	assert.Equal(t, 23, result.Matches[0].End)
}

func TestEngine_Replace_PreservesInlineMarkup(t *testing.T) {
	ctx := context.Background()
	prof := &profile.Profile{
		Name: "spacing",
		Checks: []rule.Rule{
			{Order: 1, Enabled: true, Name: "collapse_spaces", Pattern: " {2,}", Replacement: " "},
		},
	}
	units := []xliff.TransUnit{
		{ID: "tu-1", Target: `Pris:  10 <b>kr</b>  i dag`},
	}

	edited, result, err := New().Replace(ctx, prof, units)
	require.NoError(t, err)

	assert.Equal(t, `Pris: 10 <b>kr</b> i dag`, edited[0].Target)
	assert.Equal(t, 2, result.TotalReplacements)
	assert.Equal(t, 1, result.ModifiedUnits)
}

func TestEngine_Replace_NeverRewritesTags(t *testing.T) {
	ctx := context.Background()
	prof := &profile.Profile{
		Name: "aggressive",
		Checks: []rule.Rule{
			{Order: 1, Enabled: true, Name: "digits", Pattern: `\d+`, Replacement: "N"},
		},
	}
	units := []xliff.TransUnit{
		{ID: "tu-1", Target: `<g id="1">10</g>`},
	}

	edited, result, err := New().Replace(ctx, prof, units)
	require.NoError(t, err)

	// only the text between the tags changes, the id attribute survives
	assert.Equal(t, `<g id="1">N</g>`, edited[0].Target)
	assert.Equal(t, 1, result.TotalReplacements)
}
