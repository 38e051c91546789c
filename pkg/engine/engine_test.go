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

func testProfile() *profile.Profile {
	return &profile.Profile{
		Name: "test",
		Checks: []rule.Rule{
			{Order: 1, Enabled: true, Name: "collapse_spaces", Pattern: "  +", Replacement: " ", Category: "Tegnsetting"},
			{Order: 2, Enabled: true, Name: "trim_leading", Pattern: "^ ", Replacement: ""},
			{Order: 3, Enabled: false, Name: "disabled", Pattern: "hello", Replacement: "goodbye"},
		},
	}
}

func testUnits() []xliff.TransUnit {
	return []xliff.TransUnit{
		{ID: "tu-1", Source: "  hello", Target: "  hello"},
		{ID: "tu-2", Source: "clean", Target: "clean"},
		{ID: "tu-3", Source: "Price: 10  EUR", Target: "Pris: 10  EUR"},
	}
}

func TestEngine_Find(t *testing.T) {
	ctx := context.Background()
	eng := New(WithWorkers(4))

	result, err := eng.Find(ctx, testProfile(), "sample.xlf", testUnits())
	require.NoError(t, err)

	assert.Equal(t, "test", result.ProfileName)
	assert.Equal(t, "sample.xlf", result.File)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, len(result.Matches), result.TotalMatches)

	// tu-1: one "  " run and one leading space; tu-3: one "  " run.
	// the disabled check contributes nothing even though "hello" occurs.
	require.Len(t, result.Matches, 3)

	// unit order first, then check order within a unit
	assert.Equal(t, "tu-1", result.Matches[0].UnitID)
	assert.Equal(t, "collapse_spaces", result.Matches[0].CheckName)
	assert.Equal(t, "tu-1", result.Matches[1].UnitID)
	assert.Equal(t, "trim_leading", result.Matches[1].CheckName)
	assert.Equal(t, "tu-3", result.Matches[2].UnitID)
	assert.Equal(t, "collapse_spaces", result.Matches[2].CheckName)

	m := result.Matches[2]
	assert.Equal(t, "Pris: 10  EUR", m.Target)
	assert.Equal(t, "  ", m.Match)
	assert.Equal(t, 8, m.Start)
	assert.Equal(t, 10, m.End)
	assert.Equal(t, "Tegnsetting", m.Category)
	assert.Equal(t, "  +", m.Pattern)
	assert.Equal(t, " ", m.Replacement)
}

func TestEngine_Find_Deterministic(t *testing.T) {
	ctx := context.Background()
	eng := New(WithWorkers(8))

	first, err := eng.Find(ctx, testProfile(), "sample.xlf", testUnits())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := eng.Find(ctx, testProfile(), "sample.xlf", testUnits())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEngine_Find_InvalidPatternDiagnostic(t *testing.T) {
	ctx := context.Background()
	prof := &profile.Profile{
		Name: "broken",
		Checks: []rule.Rule{
			{Order: 1, Enabled: true, Name: "bad", Pattern: "[unclosed"},
			{Order: 2, Enabled: true, Name: "good", Pattern: "x", Replacement: "y"},
		},
	}

	result, err := New().Find(ctx, prof, "f.xlf", []xliff.TransUnit{{ID: "tu-1", Target: "xx"}})
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "bad", result.Diagnostics[0].CheckName)
	assert.Equal(t, 1, result.Diagnostics[0].CheckOrder)

	var patternErr *rule.InvalidPatternError
	require.ErrorAs(t, result.Diagnostics[0].Err, &patternErr)

	// the good check still ran
	assert.Equal(t, 2, result.TotalMatches)
}

func TestEngine_Replace(t *testing.T) {
	ctx := context.Background()
	units := testUnits()

	edited, result, err := New(WithWorkers(2)).Replace(ctx, testProfile(), units)
	require.NoError(t, err)

	// checks compose in order: collapse first, then the leading-space trim
	// sees the collapsed text
	assert.Equal(t, "hello", edited[0].Target)
	assert.Equal(t, "clean", edited[1].Target)
	assert.Equal(t, "Pris: 10 EUR", edited[2].Target)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.ModifiedUnits)
	assert.Equal(t, 3, result.TotalReplacements)

	// input units are untouched
	assert.Equal(t, "  hello", units[0].Target)
}

func TestEngine_Replace_NoMatches(t *testing.T) {
	ctx := context.Background()
	units := []xliff.TransUnit{{ID: "tu-1", Target: "already clean"}}

	edited, result, err := New().Replace(ctx, testProfile(), units)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Zero(t, result.ModifiedUnits)
	assert.Zero(t, result.TotalReplacements)
	assert.Equal(t, units[0].Target, edited[0].Target)
}

func TestEngine_Replace_SourceNeverTouched(t *testing.T) {
	ctx := context.Background()
	units := []xliff.TransUnit{{ID: "tu-1", Source: "a  b", Target: "a  b"}}

	edited, _, err := New().Replace(ctx, testProfile(), units)
	require.NoError(t, err)

	assert.Equal(t, "a b", edited[0].Target)
	assert.Equal(t, "a  b", edited[0].Source)
}
