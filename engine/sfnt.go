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

package engine

import (
	"bytes"
	"fmt"
	"os"

	tdfont "github.com/tdewolff/font"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/notofonts/unirange"
	"seehuhn.de/go/notofonts/woff"
)

// SFNT is an Engine for TrueType and OpenType fonts.
//
// WOFF and WOFF2 files can be loaded, fonts are always saved as WOFF.
type SFNT struct{}

var _ Engine = SFNT{}

// sfntFont is the Font handle used by the SFNT engine.
type sfntFont struct {
	*sfnt.Font
}

func (f *sfntFont) Outlines() Outlines {
	switch {
	case f.IsGlyf():
		return TrueType
	case f.IsCFF():
		return CFF
	default:
		return 0
	}
}

// Wrap returns a Font handle for an in-memory font.
func Wrap(f *sfnt.Font) Font {
	return &sfntFont{f}
}

// Unwrap returns the font underlying a handle created by the SFNT engine.
func Unwrap(f Font) (*sfnt.Font, error) {
	sf, ok := f.(*sfntFont)
	if !ok || sf == nil || sf.Font == nil {
		return nil, ErrForeignFont
	}
	return sf.Font, nil
}

// Load implements the Engine interface.
func (SFNT) Load(fname string) (Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Decode(data, fname)
}

// Decode parses font data in sfnt, WOFF or WOFF2 format.
// The name is only used in error messages.
func Decode(data []byte, name string) (Font, error) {
	if woff.IsWOFF(data) {
		var err error
		data, err = tdfont.ToSFNT(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &sfntFont{f}, nil
}

// Subset implements the Engine interface.
//
// The subset contains the .notdef glyph, the glyphs mapped to the runes
// of text, and all glyphs used as components by these.  The GDEF, GSUB and
// GPOS tables are subsetted as well, and glyphs which substitutions can
// produce from the selected glyphs (for example ligatures) are kept.
// Runes which are not mapped by the font are ignored.
func (SFNT) Subset(f Font, text string) (Font, error) {
	orig, err := Unwrap(f)
	if err != nil {
		return nil, err
	}
	subtable, err := orig.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}

	glyphs := []glyph.ID{0}
	newGid := map[glyph.ID]glyph.ID{0: 0}
	codes := make(map[rune]glyph.ID)
	for _, r := range unirange.FromString(text).Sorted() {
		gid := subtable.Lookup(r)
		if gid == 0 || int(gid) >= orig.NumGlyphs() {
			continue
		}
		newID, seen := newGid[gid]
		if !seen {
			newID = glyph.ID(len(glyphs))
			newGid[gid] = newID
			glyphs = append(glyphs, gid)
		}
		codes[r] = newID
	}

	clone := orig.Clone()
	clone.CMapTable = nil
	// The requested glyphs come first in the subset, in order.
	res := clone.Subset(glyphs)
	res.CMapTable = makeCMap(codes)

	tracer().Debugf("subset %s: %d of %d glyphs for %d characters",
		orig.FamilyName, res.NumGlyphs(), orig.NumGlyphs(), len(codes))
	return &sfntFont{res}, nil
}

// GlyphCoverage implements the Engine interface.
func (SFNT) GlyphCoverage(f Font) unirange.Set {
	sf, err := Unwrap(f)
	if err != nil {
		return unirange.Set{}
	}
	return coverage(sf.CMapTable)
}

// UnitsPerEm implements the Engine interface.
func (SFNT) UnitsPerEm(f Font) int {
	sf, err := Unwrap(f)
	if err != nil {
		return 0
	}
	return int(sf.UnitsPerEm)
}

// Save implements the Engine interface.
func (SFNT) Save(f Font, fname string) error {
	sf, err := Unwrap(f)
	if err != nil {
		return err
	}
	data, err := EncodeWOFF(sf)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return os.WriteFile(fname, data, 0o644)
}

// EncodeWOFF returns the font in WOFF format.
func EncodeWOFF(f *sfnt.Font) ([]byte, error) {
	buf := &bytes.Buffer{}
	_, err := f.Write(buf)
	if err != nil {
		return nil, err
	}
	return woff.Encode(buf.Bytes())
}
