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

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hnorjordet/xliff-regex-tool/pkg/profile"
	"github.com/hnorjordet/xliff-regex-tool/pkg/rule"
	"github.com/hnorjordet/xliff-regex-tool/pkg/xliff"
)

// Engine runs a profile's checks over a batch of translation units. Units
// are independent of each other, so they may be processed concurrently;
// checks within one unit are strictly sequential because each check sees the
// previous check's output. Results always come back in unit order, never in
// completion order.
type Engine struct {
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many units are processed concurrently. Values below
// one fall back to sequential processing.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New creates an Engine. Without options, units are processed sequentially.
func New(opts ...Option) *Engine {
	e := &Engine{workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// compile compiles the profile's enabled checks in ascending order. Checks
// that fail to compile become diagnostics; the rest of the batch proceeds
// without them.
func compile(ctx context.Context, p *profile.Profile) ([]*rule.Compiled, []Diagnostic) {
	logger := zerolog.Ctx(ctx)

	var compiled []*rule.Compiled
	var diags []Diagnostic
	for _, check := range p.EnabledChecks() {
		c, err := check.Compile()
		if err != nil {
			logger.Warn().Str("check", check.Name).Err(err).Msg("skipping check with invalid pattern")
			diags = append(diags, Diagnostic{
				CheckName:  check.Name,
				CheckOrder: check.Order,
				Err:        err,
				Message:    err.Error(),
			})
			continue
		}
		compiled = append(compiled, c)
	}
	return compiled, diags
}

// Find evaluates every enabled check against every unit's target text and
// reports each accepted match. Inline markup is excluded from matching.
// Find never mutates the units. The result is byte-for-byte reproducible
// for the same profile and units.
func (e *Engine) Find(ctx context.Context, p *profile.Profile, source string, units []xliff.TransUnit) (*FindResult, error) {
	compiled, diags := compile(ctx, p)

	perUnit := make([][]MatchReport, len(units))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range units {
		i := i
		g.Go(func() error {
			perUnit[i] = findInUnit(units[i], compiled)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &FindResult{
		ProfileName: p.Name,
		File:        source,
		Diagnostics: diags,
	}
	for _, reports := range perUnit {
		result.Matches = append(result.Matches, reports...)
	}
	result.TotalMatches = len(result.Matches)
	return result, nil
}

// findInUnit matches over the unit's plain text, with inline markup cut out
// so patterns never hit tag names or attributes. Reported offsets are mapped
// back into the markup-bearing target text.
func findInUnit(u xliff.TransUnit, compiled []*rule.Compiled) []MatchReport {
	if u.Target == "" {
		return nil
	}

	segs := splitMarkup(u.Target)
	plain := plainText(segs)

	var reports []MatchReport
	for _, c := range compiled {
		for _, m := range c.FindMatches(plain) {
			reports = append(reports, MatchReport{
				UnitID:      u.ID,
				CheckName:   c.Rule.Name,
				CheckOrder:  c.Rule.Order,
				Category:    c.Rule.Category,
				Description: c.Rule.Description,
				Source:      u.Source,
				Target:      u.Target,
				Match:       m.Text,
				Start:       markupOffset(segs, m.Start),
				End:         markupOffset(segs, m.End),
				Pattern:     c.Rule.Pattern,
				Replacement: c.Rule.Replacement,
			})
		}
	}
	return reports
}

// Replace applies every enabled check to every unit, in check order, each
// check reading the previous check's output for that unit. The input slice
// is never touched: the mutated units come back as a fresh slice together
// with the tally, and the caller persists them. A unit counts as modified
// when its final text differs from its original text.
func (e *Engine) Replace(ctx context.Context, p *profile.Profile, units []xliff.TransUnit) ([]xliff.TransUnit, *ReplaceResult, error) {
	compiled, diags := compile(ctx, p)

	out := make([]xliff.TransUnit, len(units))
	copy(out, units)
	counts := make([]int, len(units))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range out {
		i := i
		g.Go(func() error {
			out[i].Target, counts[i] = replaceInUnit(out[i].Target, compiled)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	result := &ReplaceResult{Diagnostics: diags}
	for i := range out {
		result.TotalReplacements += counts[i]
		if out[i].Target != units[i].Target {
			result.ModifiedUnits++
		}
	}
	result.Success = result.TotalReplacements > 0

	zerolog.Ctx(ctx).Debug().
		Int("modified_units", result.ModifiedUnits).
		Int("total_replacements", result.TotalReplacements).
		Msg("replace run complete")

	return out, result, nil
}

// replaceInUnit applies the checks to each plain-text run between inline
// markup. The markup itself is never rewritten, and a pattern cannot match
// across a tag boundary.
func replaceInUnit(text string, compiled []*rule.Compiled) (string, int) {
	if text == "" {
		return text, 0
	}

	segs := splitMarkup(text)
	total := 0
	for _, c := range compiled {
		for i := range segs {
			if segs[i].tag {
				continue
			}
			var n int
			segs[i].text, n = c.ReplaceAll(segs[i].text)
			total += n
		}
	}
	return joinSegments(segs), total
}
