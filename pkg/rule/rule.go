package rule

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Rule is a single configured check: a pattern, an optional replacement, an
// optional exclusion pattern, and matching options. Rules live inside a
// profile and are executed in ascending Order.
type Rule struct {
	// Order defines execution and report sequencing within a profile
	Order int

	// Enabled rules are executed; disabled rules contribute nothing
	Enabled bool

	// Name is a short display name for the check
	Name string

	// Description explains what the check looks for
	Description string

	// Category is a free-text grouping label
	Category string

	// Pattern is the regular expression source text. Empty means no-op.
	Pattern string

	// Replacement is the replacement template, may contain $1-style
	// back-references
	Replacement string

	// CaseSensitive controls matching mode only, never the text's case
	CaseSensitive bool

	// ExcludePattern suppresses matches that intersect its own matches.
	// Empty means no exclusion.
	ExcludePattern string
}

// Match is one accepted occurrence of a rule's pattern in a text. Start and
// End are rune offsets into the text the rule was evaluated against.
type Match struct {
	Start int
	End   int
	Text  string
}

// InvalidPatternError reports a rule whose pattern (or exclusion pattern)
// failed to compile. It is rule-level: the caller skips the rule and keeps
// going.
type InvalidPatternError struct {
	Rule    string
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("rule %q: invalid pattern %q: %v", e.Rule, e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Compiled is a rule with its patterns compiled. Compiled values are
// immutable and safe for concurrent use.
type Compiled struct {
	Rule Rule

	re      *regexp.Regexp // nil when Pattern is empty
	exclude *regexp.Regexp // nil when ExcludePattern is empty
}

// Compile compiles the rule's pattern and exclusion pattern, honoring the
// case-sensitivity flag. A rule with an empty pattern compiles to a no-op,
// not an error.
func (r Rule) Compile() (*Compiled, error) {
	c := &Compiled{Rule: r}

	if r.Pattern != "" {
		re, err := regexp.Compile(r.flagged(r.Pattern))
		if err != nil {
			return nil, &InvalidPatternError{Rule: r.Name, Pattern: r.Pattern, Err: err}
		}
		c.re = re
	}

	if r.ExcludePattern != "" {
		re, err := regexp.Compile(r.flagged(r.ExcludePattern))
		if err != nil {
			return nil, &InvalidPatternError{Rule: r.Name, Pattern: r.ExcludePattern, Err: err}
		}
		c.exclude = re
	}

	return c, nil
}

// flagged prepends the case-insensitivity flag when the rule is not case
// sensitive.
func (r Rule) flagged(pattern string) string {
	if r.CaseSensitive {
		return pattern
	}
	return "(?i)" + pattern
}

// IsNoop reports whether the rule can never match (empty pattern).
func (c *Compiled) IsNoop() bool {
	return c.re == nil
}

// FindMatches returns the ordered, non-overlapping matches of the rule's
// pattern in text, with matches intersecting any exclusion-pattern match
// discarded. Exclusion is evaluated once against the full text, not against
// the matched substrings.
func (c *Compiled) FindMatches(text string) []Match {
	if c.re == nil {
		return nil
	}

	spans := c.re.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return nil
	}
	excluded := c.exclusionSpans(text)

	var matches []Match
	// Spans arrive in ascending order, so rune offsets can be computed
	// with a single forward cursor.
	bytePos, runePos := 0, 0
	for _, span := range spans {
		if intersectsAny(span[0], span[1], excluded) {
			continue
		}
		runePos += utf8.RuneCountInString(text[bytePos:span[0]])
		bytePos = span[0]
		width := utf8.RuneCountInString(text[span[0]:span[1]])
		matches = append(matches, Match{
			Start: runePos,
			End:   runePos + width,
			Text:  text[span[0]:span[1]],
		})
	}
	return matches
}

// ReplaceAll replaces every accepted match in text with the rule's
// replacement template, expanding back-references against the captured
// groups of each match. It returns the new text and the number of spans
// replaced.
func (c *Compiled) ReplaceAll(text string) (string, int) {
	if c.re == nil {
		return text, 0
	}

	spans := c.re.FindAllStringSubmatchIndex(text, -1)
	if len(spans) == 0 {
		return text, 0
	}
	excluded := c.exclusionSpans(text)

	var out []byte
	last, count := 0, 0
	for _, span := range spans {
		if intersectsAny(span[0], span[1], excluded) {
			continue
		}
		out = append(out, text[last:span[0]]...)
		out = c.re.ExpandString(out, c.Rule.Replacement, text, span)
		last = span[1]
		count++
	}
	if count == 0 {
		return text, 0
	}
	out = append(out, text[last:]...)
	return string(out), count
}

// exclusionSpans returns the byte spans of the exclusion pattern in text.
func (c *Compiled) exclusionSpans(text string) [][]int {
	if c.exclude == nil {
		return nil
	}
	return c.exclude.FindAllStringIndex(text, -1)
}

// intersectsAny reports whether [start,end) overlaps any of the spans.
func intersectsAny(start, end int, spans [][]int) bool {
	for _, s := range spans {
		if start < s[1] && s[0] < end {
			return true
		}
	}
	return false
}
