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
	"github.com/google/uuid"
)

// 🧩 Entry is one reusable pattern/replacement snippet
type Entry struct {
	ID          string // Unique id, generated when absent at import
	Name        string // Display name
	Description string // What the snippet is for
	Pattern     string // Regular expression source text
	Replace     string // Replacement text
	Category    string // Name of the owning category
}

// 📂 Category is a named group of entries
type Category struct {
	Name    string
	Entries []Entry
}

// 📚 Library is the persistent catalog of snippets, partitioned into an
// ordered sequence of categories. Duplicate category names are legal and
// must be preserved, never merged.
type Library struct {
	Categories []Category
}

// 🏭 Default returns the starter library used when no document exists yet:
// a fixed set of empty, named categories.
func Default() *Library {
	return &Library{
		Categories: []Category{
			{Name: "Tegnsetting"},
			{Name: "Harde mellomrom"},
			{Name: "Tall/tallformatering"},
			{Name: "Spesialtegn"},
		},
	}
}

// 🔑 NewID generates an id for entries that arrive without one. All import
// paths share this single strategy.
func NewID() string {
	return uuid.NewString()
}

// 🔍 FindCategory returns the first category with the given name, or nil.
func (l *Library) FindCategory(name string) *Category {
	for i := range l.Categories {
		if l.Categories[i].Name == name {
			return &l.Categories[i]
		}
	}
	return nil
}

// ➕ Add appends an entry to the named category, creating the category when
// it does not exist yet.
func (l *Library) Add(category string, e Entry) {
	if e.ID == "" {
		e.ID = NewID()
	}
	e.Category = category

	if c := l.FindCategory(category); c != nil {
		c.Entries = append(c.Entries, e)
		return
	}
	l.Categories = append(l.Categories, Category{Name: category, Entries: []Entry{e}})
}

// 🧮 Len returns the total number of entries across all categories.
func (l *Library) Len() int {
	n := 0
	for _, c := range l.Categories {
		n += len(c.Entries)
	}
	return n
}
