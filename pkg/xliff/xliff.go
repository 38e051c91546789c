package xliff

import (
	"context"
)

// TransUnit is one unit of translatable text. Source and Target hold the
// segment content with inline markup preserved as raw text. Metadata is an
// opaque bag of trans-unit attributes; the engine never inspects it.
type TransUnit struct {
	ID       string
	Source   string
	Target   string
	Metadata map[string]string
}

// Stats summarizes a batch of translation units.
type Stats struct {
	TotalUnits   int `json:"total_units"`
	Translated   int `json:"translated"`
	Untranslated int `json:"untranslated"`
}

// Store supplies the units to process and persists the result. The engine
// only ever sees the unit sequence; parsing and serialization of the
// underlying document stay behind this interface.
type Store interface {
	// List returns the units in document order.
	List(ctx context.Context) ([]TransUnit, error)

	// Persist writes the units back and returns the output location.
	Persist(ctx context.Context, units []TransUnit) (string, error)
}

// Summarize computes batch statistics over a unit sequence. A unit counts
// as translated when its target has any non-blank content.
func Summarize(units []TransUnit) Stats {
	s := Stats{TotalUnits: len(units)}
	for _, u := range units {
		if isBlank(u.Target) {
			s.Untranslated++
		} else {
			s.Translated++
		}
	}
	return s
}

func isBlank(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
