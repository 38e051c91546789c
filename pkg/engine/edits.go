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
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hnorjordet/xliff-regex-tool/pkg/xliff"
)

// Edit sets a unit's target text verbatim, bypassing the pattern pipeline.
// This is how externally reviewed corrections come back into the document.
type Edit struct {
	ID     string `json:"id"`
	Target string `json:"target"`
}

// UnknownUnitsError reports edits whose unit ids were not present in the
// batch. The edits that did match have still been applied.
type UnknownUnitsError struct {
	IDs []string
}

func (e *UnknownUnitsError) Error() string {
	return fmt.Sprintf("unknown unit ids: %s", strings.Join(e.IDs, ", "))
}

// ApplyEdits overwrites unit targets from a list of direct edits. Later
// edits for the same id win. The returned slice is a copy; the input units
// are never mutated. If any edit names an id that is not in the batch, the
// remaining edits are still applied and an *UnknownUnitsError is returned
// alongside the edited units.
func ApplyEdits(ctx context.Context, units []xliff.TransUnit, edits []Edit) ([]xliff.TransUnit, int, error) {
	index := make(map[string]int, len(units))
	for i, u := range units {
		index[u.ID] = i
	}

	out := make([]xliff.TransUnit, len(units))
	copy(out, units)

	modified := map[string]bool{}
	var unknown []string
	for _, edit := range edits {
		i, ok := index[edit.ID]
		if !ok {
			unknown = append(unknown, edit.ID)
			continue
		}
		if out[i].Target != edit.Target {
			out[i].Target = edit.Target
			modified[edit.ID] = true
		}
	}

	zerolog.Ctx(ctx).Debug().
		Int("edits", len(edits)).
		Int("modified", len(modified)).
		Int("unknown", len(unknown)).
		Msg("applied direct edits")

	if len(unknown) > 0 {
		return out, len(modified), &UnknownUnitsError{IDs: unknown}
	}
	return out, len(modified), nil
}
