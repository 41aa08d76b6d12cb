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

// Package coverage keeps track of the characters covered by font files.
package coverage

import (
	"seehuhn.de/go/notofonts/engine"
	"seehuhn.de/go/notofonts/unirange"
)

// Tracker returns the characters mapped by font files.  Results are
// cached by file name.  A Tracker is not safe for concurrent use.
type Tracker struct {
	e     engine.Engine
	cache map[string]unirange.Set
}

// New returns a Tracker which uses e to load fonts.
func New(e engine.Engine) *Tracker {
	return &Tracker{
		e:     e,
		cache: make(map[string]unirange.Set),
	}
}

// Glyphs returns the set of characters mapped by the font in the given
// file.  The returned set must not be modified.
func (t *Tracker) Glyphs(fname string) (unirange.Set, error) {
	if res, ok := t.cache[fname]; ok {
		return res, nil
	}
	f, err := t.e.Load(fname)
	if err != nil {
		return nil, err
	}
	res := t.e.GlyphCoverage(f)
	t.cache[fname] = res
	return res, nil
}

// Forget removes the cache entry for one file.
func (t *Tracker) Forget(fname string) {
	delete(t.cache, fname)
}

// Reset clears the cache.
func (t *Tracker) Reset() {
	clear(t.cache)
}
