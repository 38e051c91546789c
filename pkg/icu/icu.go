// Package icu checks that ICU MessageFormat structure survives translation.
// The checks compare a target segment against its source: keywords, category
// names, variable names, braces and plural hashes must all carry over intact
// even though the surrounding prose changes.
package icu

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	icuPattern      = regexp.MustCompile(`(?i)\{[^}]+,\s*(plural|select|selectordinal)`)
	icuLikePattern  = regexp.MustCompile(`(?i)\{[^}]+,\s*\w+,.*?\w+\s*\{`)
	variablePattern = regexp.MustCompile(`\{(\w+)\s*,`)

	icuKeywords      = []string{"plural", "select", "selectordinal"}
	categoryKeywords = []string{"zero", "one", "two", "few", "many", "other"}
)

// HasSyntax reports whether text looks like it carries ICU MessageFormat
// structure. The looser second pattern also catches segments where a keyword
// was (wrongly) translated, so they still get validated.
func HasSyntax(text string) bool {
	return icuPattern.MatchString(text) || icuLikePattern.MatchString(text)
}

// ValidateSegment compares target against source and returns one message per
// detected problem. An empty target yields no errors.
func ValidateSegment(source, target string) []string {
	if target == "" {
		return nil
	}

	var errs []string

	for _, keyword := range icuKeywords {
		re := regexp.MustCompile(`(?i)\{[^}]+,\s*` + keyword + `\b`)
		sn := len(re.FindAllString(source, -1))
		tn := len(re.FindAllString(target, -1))
		switch {
		case sn > 0 && tn == 0:
			errs = append(errs, fmt.Sprintf("ICU keyword %q is missing or incorrectly translated in target (must remain as %q)", keyword, keyword))
		case sn != tn:
			errs = append(errs, fmt.Sprintf("ICU keyword %q count mismatch (source: %d, target: %d)", keyword, sn, tn))
		}
	}

	for _, category := range categoryKeywords {
		re := regexp.MustCompile(`\b` + category + `\s*\{`)
		sn := len(re.FindAllString(source, -1))
		tn := len(re.FindAllString(target, -1))
		switch {
		case sn > 0 && tn == 0:
			errs = append(errs, fmt.Sprintf("category %q is missing or incorrectly translated in target (must remain as %q)", category, category))
		case sn != tn:
			errs = append(errs, fmt.Sprintf("category %q count mismatch (source: %d, target: %d)", category, sn, tn))
		}
	}

	sourceOpen := strings.Count(source, "{")
	sourceClose := strings.Count(source, "}")
	targetOpen := strings.Count(target, "{")
	targetClose := strings.Count(target, "}")
	switch {
	case targetOpen > targetClose:
		errs = append(errs, fmt.Sprintf("missing %d closing brace(s) } in target", targetOpen-targetClose))
	case targetClose > targetOpen:
		errs = append(errs, fmt.Sprintf("missing %d opening brace(s) { in target", targetClose-targetOpen))
	case targetOpen != sourceOpen || targetClose != sourceClose:
		errs = append(errs, fmt.Sprintf("brace count differs from source (source: %d pairs, target: %d pairs)", sourceOpen, targetOpen))
	}

	sourceVars := variableNames(source)
	targetVars := variableNames(target)
	if len(sourceVars) > 0 && len(targetVars) > 0 {
		if changed := missingNames(sourceVars, targetVars); len(changed) > 0 {
			errs = append(errs, fmt.Sprintf("variable name(s) changed: %s (should not be translated)", strings.Join(changed, ", ")))
		}
	}
	if len(sourceVars) != len(targetVars) {
		errs = append(errs, "variable/comma pattern mismatch (check commas after variable names)")
	}

	if strings.Contains(source, "offset:") && !strings.Contains(target, "offset:") {
		errs = append(errs, `"offset:" is missing in target`)
	}

	sourceHash := strings.Count(source, "#")
	targetHash := strings.Count(target, "#")
	if sourceHash > 0 && sourceHash != targetHash {
		errs = append(errs, fmt.Sprintf("hash (#) count mismatch (source: %d, target: %d)", sourceHash, targetHash))
	}

	return errs
}

// Suggestions builds a single fix-hint line for a failing segment, or ""
// when there is nothing actionable to say.
func Suggestions(source, target string) string {
	var hints []string

	sourceVars := variableNames(source)
	targetVars := variableNames(target)
	if len(sourceVars) > 0 && len(targetVars) > 0 {
		if changed := missingNames(sourceVars, targetVars); len(changed) > 0 {
			hints = append(hints, fmt.Sprintf("variable names must match source: %s", strings.Join(changed, ", ")))
		}
	}

	for _, keyword := range icuKeywords {
		if strings.Contains(source, keyword) && !strings.Contains(target, keyword) {
			hints = append(hints, fmt.Sprintf("restore ICU keyword: %q (not translated)", keyword))
		}
	}

	for _, category := range categoryKeywords {
		re := regexp.MustCompile(`\b` + category + `\s*\{`)
		if re.MatchString(source) && !re.MatchString(target) {
			hints = append(hints, fmt.Sprintf("restore category keyword: %q (not translated)", category))
		}
	}

	if strings.Contains(source, "offset:") && !strings.Contains(target, "offset:") {
		hints = append(hints, `restore "offset:" (not translated)`)
	}

	targetOpen := strings.Count(target, "{")
	targetClose := strings.Count(target, "}")
	switch {
	case targetOpen > targetClose:
		hints = append(hints, fmt.Sprintf("add %d closing brace(s) }", targetOpen-targetClose))
	case targetClose > targetOpen:
		hints = append(hints, fmt.Sprintf("add %d opening brace(s) {", targetClose-targetOpen))
	}

	sourceHash := strings.Count(source, "#")
	targetHash := strings.Count(target, "#")
	if sourceHash > targetHash {
		hints = append(hints, fmt.Sprintf("restore %d hash symbol(s) #", sourceHash-targetHash))
	}

	return strings.Join(hints, " • ")
}

func variableNames(text string) []string {
	var names []string
	for _, m := range variablePattern.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}

// missingNames returns the names in a that never appear in b, sorted.
func missingNames(a, b []string) []string {
	have := map[string]bool{}
	for _, name := range b {
		have[name] = true
	}

	seen := map[string]bool{}
	var missing []string
	for _, name := range a {
		if !have[name] && !seen[name] {
			missing = append(missing, name)
			seen[name] = true
		}
	}
	sort.Strings(missing)
	return missing
}
