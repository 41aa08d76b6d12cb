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

// Package priority determines the order in which font families are
// searched for glyphs.
//
// Many fonts contain overlapping sets of glyphs.  A fixed search order
// avoids loading unrelated font files for a single glyph, and makes sure
// that the same version of a glyph is used everywhere.
package priority

import (
	"golang.org/x/exp/slices"

	"seehuhn.de/go/notofonts/langinfo"
)

// Resolver computes font priority lists.  Results are cached per default
// font.  A Resolver is not safe for concurrent use.
type Resolver struct {
	latin     string
	languages []langinfo.Language
	families  []string

	cache map[string][]string
}

// New returns a Resolver.  The latin font is searched right after the
// default font, followed by the default fonts of all languages and then
// by the remaining families, in the given order.
func New(latin string, languages []langinfo.Language, families []string) *Resolver {
	return &Resolver{
		latin:     latin,
		languages: languages,
		families:  families,
		cache:     make(map[string][]string),
	}
}

// Fonts returns the font families to search, for a language with the
// given default font.  The returned slice must not be modified.
func (r *Resolver) Fonts(defaultFont string) []string {
	if res, ok := r.cache[defaultFont]; ok {
		return res
	}

	res := []string{defaultFont}
	add := func(name string) {
		if !slices.Contains(res, name) {
			res = append(res, name)
		}
	}
	add(r.latin)
	for _, l := range r.languages {
		add(l.DefaultFont)
	}
	for _, name := range r.families {
		add(name)
	}

	r.cache[defaultFont] = res
	return res
}

// Reset clears the cache.
func (r *Resolver) Reset() {
	clear(r.cache)
}
