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

package library

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	lib := Default()

	var names []string
	for _, c := range lib.Categories {
		names = append(names, c.Name)
		assert.Empty(t, c.Entries)
	}
	assert.Equal(t, []string{
		"Tegnsetting",
		"Harde mellomrom",
		"Tall/tallformatering",
		"Spesialtegn",
	}, names)
	assert.Zero(t, lib.Len())
}

func TestLibrary_Add(t *testing.T) {
	lib := &Library{}

	lib.Add("Tegnsetting", Entry{ID: NewID(), Name: "a", Pattern: "a"})
	lib.Add("Tegnsetting", Entry{ID: NewID(), Name: "b", Pattern: "b"})
	lib.Add("Spesialtegn", Entry{ID: NewID(), Name: "c", Pattern: "c"})

	require.Len(t, lib.Categories, 2)
	assert.Equal(t, 3, lib.Len())

	cat := lib.FindCategory("Tegnsetting")
	require.NotNil(t, cat)
	assert.Len(t, cat.Entries, 2)

	assert.Nil(t, lib.FindCategory("missing"))
}

func TestNewID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewID())
}
