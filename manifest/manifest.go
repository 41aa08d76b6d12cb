// seehuhn.de/go/notofonts - build web fonts and CSS for multi-language UIs
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package manifest keeps the list of known font families, together with
// the locations of their source files.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("notofonts.manifest")
}

// Weight is a font weight, as used in CSS.
type Weight int

// These are the weights used for every font family.
const (
	Regular Weight = 400
	Bold    Weight = 700
)

// Weights lists the weights of every font family, in the order in which
// they are processed.
var Weights = []Weight{Regular, Bold}

func (w Weight) String() string {
	return strconv.Itoa(int(w))
}

// IsBold returns true for the bold weight.
func (w Weight) IsBold() bool {
	return w == Bold
}

// Entry describes one font family.
type Entry struct {
	Name    string `json:"name"`
	Regular string `json:"regular"`
	Bold    string `json:"bold"`
}

// URL returns the source location of the given weight.
func (e Entry) URL(w Weight) string {
	if w == Bold {
		return e.Bold
	}
	return e.Regular
}

// Manifest is an ordered list of font families.
type Manifest struct {
	Entries []Entry
}

// ErrNotFound is returned when no font families are found at a
// git reference.
var ErrNotFound = errors.New("no font families found")

// Load reads a manifest from a JSON file.
func Load(fname string) (*Manifest, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	err = json.Unmarshal(data, &m.Entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}

	seen := make(map[string]bool, len(m.Entries))
	for i, e := range m.Entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%s: entry %d has no name", fname, i)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("%s: duplicate entry %q", fname, e.Name)
		}
		seen[e.Name] = true
	}
	return m, nil
}

// Save writes the manifest to a JSON file.
func (m *Manifest) Save(fname string) error {
	data, err := json.MarshalIndent(m.Entries, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(fname, data, 0o644)
}

// Families returns the names of all font families, in manifest order.
func (m *Manifest) Families() []string {
	res := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		res[i] = e.Name
	}
	return res
}

// SourcePath returns the location of a downloaded source font.
func SourcePath(dir, family string, w Weight) string {
	suffix := "-Regular.ttf"
	if w == Bold {
		suffix = "-Bold.ttf"
	}
	return filepath.Join(dir, family+suffix)
}
