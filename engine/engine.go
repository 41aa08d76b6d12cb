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

// Package engine defines the font operations needed to build web fonts,
// and provides an implementation based on seehuhn.de/go/sfnt.
package engine

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"

	"seehuhn.de/go/notofonts/unirange"
)

func tracer() tracing.Trace {
	return tracing.Select("notofonts.engine")
}

// Engine loads, subsets, merges and writes fonts.
type Engine interface {
	// Load reads a font file.
	Load(fname string) (Font, error)

	// Subset returns a new font which contains only the glyphs required
	// to render text.  The original font is not modified.
	Subset(f Font, text string) (Font, error)

	// Merge combines the glyphs of several fonts into one font.
	// If more than one font maps a character, the first one wins.
	Merge(fonts []Font) (Font, error)

	// GlyphCoverage returns the set of characters mapped by any of the
	// character maps of the font.
	GlyphCoverage(f Font) unirange.Set

	// UnitsPerEm returns the size of the em square in font design units.
	UnitsPerEm(f Font) int

	// Save writes the font to a file, in WOFF format.
	Save(f Font, fname string) error
}

// Font is a font handle returned by an Engine.
type Font interface {
	Outlines() Outlines
}

// Outlines describes how glyph outlines are stored in a font.
type Outlines int

// These are the supported outline formats.
const (
	TrueType Outlines = iota + 1 // "glyf" table
	CFF                          // "CFF " table
)

func (o Outlines) String() string {
	switch o {
	case TrueType:
		return "TrueType"
	case CFF:
		return "CFF"
	default:
		return "unknown"
	}
}

var (
	// ErrIncompatible is returned when fonts cannot be merged.
	ErrIncompatible = errors.New("fonts cannot be merged")

	// ErrForeignFont is returned when a Font handle was created by a
	// different engine.
	ErrForeignFont = errors.New("font handle belongs to a different engine")
)
