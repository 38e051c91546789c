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
	"sort"
	"time"

	"github.com/hnorjordet/xliff-regex-tool/pkg/rule"
)

// Profile is a named, ordered collection of checks plus descriptive
// metadata. Checks are always consulted in ascending Order regardless of
// storage order; ties keep declaration order.
type Profile struct {
	Name        string
	Description string
	Language    string

	// Created and Modified are day-aligned epoch seconds
	Created  int64
	Modified int64

	Checks []rule.Rule
}

// SortChecks re-sorts the checks ascending by Order. The sort is stable so
// duplicate order values keep their declaration sequence.
func (p *Profile) SortChecks() {
	sort.SliceStable(p.Checks, func(i, j int) bool {
		return p.Checks[i].Order < p.Checks[j].Order
	})
}

// EnabledChecks returns the enabled checks in ascending Order.
func (p *Profile) EnabledChecks() []rule.Rule {
	sorted := make([]rule.Rule, len(p.Checks))
	copy(sorted, p.Checks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	var enabled []rule.Rule
	for _, c := range sorted {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	return enabled
}

// Touch sets the modified timestamp (and the created timestamp when unset)
// to the current day-aligned epoch second. Save never does this implicitly;
// authoring flows call Touch before saving.
func (p *Profile) Touch(now time.Time) {
	day := now.Unix() / 86400 * 86400
	if p.Created == 0 {
		p.Created = day
	}
	p.Modified = day
}
