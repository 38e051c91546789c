package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hnorjordet/xliff-regex-tool/pkg/rule"
)

func TestProfile_SortChecks(t *testing.T) {
	p := &Profile{
		Checks: []rule.Rule{
			{Order: 3, Name: "third"},
			{Order: 1, Name: "first"},
			{Order: 2, Name: "second"},
			{Order: 1, Name: "first_bis"},
		},
	}

	p.SortChecks()

	names := make([]string, len(p.Checks))
	for i, c := range p.Checks {
		names[i] = c.Name
	}
	// stable: equal orders keep their relative position
	assert.Equal(t, []string{"first", "first_bis", "second", "third"}, names)
}

func TestProfile_EnabledChecks(t *testing.T) {
	p := &Profile{
		Checks: []rule.Rule{
			{Order: 1, Name: "on", Enabled: true},
			{Order: 2, Name: "off", Enabled: false},
			{Order: 3, Name: "on_too", Enabled: true},
		},
	}

	enabled := p.EnabledChecks()
	assert.Len(t, enabled, 2)
	assert.Equal(t, "on", enabled[0].Name)
	assert.Equal(t, "on_too", enabled[1].Name)
}

func TestProfile_Touch(t *testing.T) {
	p := &Profile{Created: 100}

	now := time.Date(2025, 3, 15, 13, 45, 12, 0, time.UTC)
	p.Touch(now)

	// day-aligned: truncated to midnight UTC
	want := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, want, p.Modified)
	assert.EqualValues(t, 100, p.Created, "created must not move")
	assert.Zero(t, p.Modified%86400)
}
