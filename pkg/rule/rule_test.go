package rule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiled_FindMatches(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		text string
		want []Match
	}{
		{
			name: "simple_match",
			rule: Rule{Pattern: "  +"},
			text: "Price: 10  EUR",
			want: []Match{{Start: 9, End: 11, Text: "  "}},
		},
		{
			name: "multiple_matches",
			rule: Rule{Pattern: `\d+`},
			text: "10 and 20",
			want: []Match{
				{Start: 0, End: 2, Text: "10"},
				{Start: 7, End: 9, Text: "20"},
			},
		},
		{
			name: "no_match",
			rule: Rule{Pattern: "xyz"},
			text: "Price: 10  EUR",
			want: nil,
		},
		{
			name: "empty_pattern_matches_nothing",
			rule: Rule{Pattern: ""},
			text: "anything at all",
			want: nil,
		},
		{
			name: "case_insensitive_by_default",
			rule: Rule{Pattern: "eur"},
			text: "Price: 10 EUR",
			want: []Match{{Start: 10, End: 13, Text: "EUR"}},
		},
		{
			name: "case_sensitive_when_set",
			rule: Rule{Pattern: "eur", CaseSensitive: true},
			text: "Price: 10 EUR",
			want: nil,
		},
		{
			name: "offsets_are_rune_offsets",
			rule: Rule{Pattern: `\d+`},
			text: "pris på 10 kr", // å is two bytes
			want: []Match{{Start: 8, End: 10, Text: "10"}},
		},
		{
			name: "exclusion_suppresses_same_span",
			rule: Rule{Pattern: `\d{4}`, ExcludePattern: `19\d{2}|20\d{2}`},
			text: "in 1999 there were 3500 cases",
			want: []Match{{Start: 19, End: 23, Text: "3500"}},
		},
		{
			name: "exclusion_suppresses_intersecting_span",
			rule: Rule{Pattern: `\d+`, ExcludePattern: `\d+ kr`},
			text: "10 kr and 20 units",
			want: []Match{{Start: 10, End: 12, Text: "20"}},
		},
		{
			name: "exclusion_in_other_context_does_not_suppress",
			rule: Rule{Pattern: "10", ExcludePattern: "EUR"},
			text: "10 NOK is not EUR",
			want: []Match{{Start: 0, End: 2, Text: "10"}},
		},
		{
			name: "empty_exclusion_suppresses_nothing",
			rule: Rule{Pattern: "10", ExcludePattern: ""},
			text: "10 NOK",
			want: []Match{{Start: 0, End: 2, Text: "10"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.rule.Compile()
			require.NoError(t, err)

			got := c.FindMatches(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompiled_ReplaceAll(t *testing.T) {
	tests := []struct {
		name      string
		rule      Rule
		text      string
		want      string
		wantCount int
	}{
		{
			name:      "collapse_double_spaces",
			rule:      Rule{Pattern: "  +", Replacement: " "},
			text:      "Price: 10  EUR",
			want:      "Price: 10 EUR",
			wantCount: 1,
		},
		{
			name:      "empty_replacement_deletes",
			rule:      Rule{Pattern: "^ +", Replacement: ""},
			text:      "  hello",
			want:      "hello",
			wantCount: 1,
		},
		{
			name:      "capture_group_reference",
			rule:      Rule{Pattern: `(\d+) kr`, Replacement: "kr $1"},
			text:      "costs 10 kr today",
			want:      "costs kr 10 today",
			wantCount: 1,
		},
		{
			name:      "excluded_span_left_alone",
			rule:      Rule{Pattern: `\d{4}`, Replacement: "N", ExcludePattern: `19\d{2}`},
			text:      "1999 and 3500",
			want:      "1999 and N",
			wantCount: 1,
		},
		{
			name:      "no_match_returns_input",
			rule:      Rule{Pattern: "xyz", Replacement: "abc"},
			text:      "hello",
			want:      "hello",
			wantCount: 0,
		},
		{
			name:      "empty_pattern_is_noop",
			rule:      Rule{Pattern: "", Replacement: "abc"},
			text:      "hello",
			want:      "hello",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.rule.Compile()
			require.NoError(t, err)

			got, count := c.ReplaceAll(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

// Rules compose in declared order: a leading-space trim declared after a
// space-collapse still sees the collapse's output.
func TestRules_ComposeInOrder(t *testing.T) {
	collapse := Rule{Order: 1, Pattern: "  +", Replacement: " "}
	trim := Rule{Order: 2, Pattern: "^ ", Replacement: ""}

	text := "  hello"
	for _, r := range []Rule{collapse, trim} {
		c, err := r.Compile()
		require.NoError(t, err)
		text, _ = c.ReplaceAll(text)
	}

	assert.Equal(t, "hello", text)
}

func TestRule_Compile_InvalidPattern(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{
			name: "invalid_main_pattern",
			rule: Rule{Name: "bad", Pattern: "[unclosed"},
		},
		{
			name: "invalid_exclude_pattern",
			rule: Rule{Name: "bad_exclude", Pattern: "ok", ExcludePattern: "(?P<"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rule.Compile()
			require.Error(t, err)

			var patternErr *InvalidPatternError
			require.ErrorAs(t, err, &patternErr)
			assert.Equal(t, tt.rule.Name, patternErr.Rule)
		})
	}
}

func ExampleCompiled_ReplaceAll() {
	r := Rule{Pattern: `(\d+)\s*EUR`, Replacement: "€$1"}
	c, _ := r.Compile()

	out, n := c.ReplaceAll("the fee is 10 EUR")
	fmt.Println(out, n)
	// Output: the fee is €10 1
}
