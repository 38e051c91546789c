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

// MatchReport is one located, non-excluded occurrence of a check's pattern
// in one unit. Start and End are rune offsets into the unit's target text as
// that check saw it, before any mutation by the check.
type MatchReport struct {
	UnitID      string `json:"tu_id"`
	CheckName   string `json:"check_name"`
	CheckOrder  int    `json:"check_order"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Match       string `json:"match"`
	Start       int    `json:"match_start"`
	End         int    `json:"match_end"`
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// Diagnostic records a check that could not be evaluated. The batch keeps
// running; the failure is carried in the result instead of aborting it.
type Diagnostic struct {
	CheckName  string `json:"check_name"`
	CheckOrder int    `json:"check_order"`
	Err        error  `json:"-"`
	Message    string `json:"message"`
}

// FindResult aggregates a find run. Matches are ordered by unit, then by
// check order within a unit. TotalMatches always equals len(Matches).
type FindResult struct {
	ProfileName  string        `json:"profile_name"`
	File         string        `json:"file"`
	TotalMatches int           `json:"total_matches"`
	Matches      []MatchReport `json:"matches"`
	Diagnostics  []Diagnostic  `json:"diagnostics,omitempty"`
}

// ReplaceResult aggregates a replace run. ModifiedUnits counts units whose
// text changed; TotalReplacements counts individual replaced spans, so it is
// always >= ModifiedUnits.
type ReplaceResult struct {
	Success           bool         `json:"success"`
	ModifiedUnits     int          `json:"modified_units"`
	TotalReplacements int          `json:"total_replacements"`
	OutputPath        string       `json:"output_path"`
	Diagnostics       []Diagnostic `json:"diagnostics,omitempty"`
}
