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

// Package debug provides small fonts for use in unit tests.
package debug

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// MakeFont creates a TrueType font with the glyphs for the characters
// in text, taken from the Go fonts.  Characters not covered by the Go
// fonts are silently dropped.
//
// The font claims to use the given number of units per em, the glyph
// outlines are not rescaled.
func MakeFont(family, text string, bold bool, unitsPerEm uint16) *sfnt.Font {
	data := goregular.TTF
	if bold {
		data = gobold.TTF
	}
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}

	fontCMap, err := info.CMapTable.GetBest()
	if err != nil {
		panic(err)
	}

	includeGid := []glyph.ID{0}
	newGid := map[glyph.ID]glyph.ID{0: 0}
	cmap := cmap.Format4{}
	for _, r := range text {
		if r > 0xFFFE {
			continue
		}
		gid := fontCMap.Lookup(r)
		if gid == 0 {
			continue
		}
		if _, seen := newGid[gid]; !seen {
			newGid[gid] = glyph.ID(len(includeGid))
			includeGid = append(includeGid, gid)
		}
		cmap[uint16(r)] = newGid[gid]
	}

	info.CMapTable = nil
	info.Gdef = nil
	info.Gsub = nil
	info.Gpos = nil
	res := info.Subset(includeGid)

	res.FamilyName = family
	res.UnitsPerEm = unitsPerEm
	res.InstallCMap(cmap)
	return res
}

// MakeCFFFont creates a CFF-based font where every character of text is
// drawn as a rectangle.
func MakeCFFFont(family, text string, unitsPerEm uint16) *sfnt.Font {
	outlines := &cff.Outlines{
		Private: []*type1.PrivateDict{
			{
				BlueScale: 0.039625,
				BlueShift: 7,
				BlueFuzz:  1,
			},
		},
		FDSelect: func(glyph.ID) int {
			return 0
		},
	}
	outlines.Glyphs = append(outlines.Glyphs, cff.NewGlyph(".notdef", 500))

	cmap := cmap.Format4{}
	for _, r := range text {
		if r > 0xFFFE {
			continue
		}
		if _, seen := cmap[uint16(r)]; seen {
			continue
		}
		g := cff.NewGlyph(fmt.Sprintf("uni%04X", r), 600)
		g.MoveTo(50, 0)
		g.LineTo(550, 0)
		g.LineTo(550, 700)
		g.LineTo(50, 700)
		cmap[uint16(r)] = glyph.ID(len(outlines.Glyphs))
		outlines.Glyphs = append(outlines.Glyphs, g)
	}

	q := 1 / float64(unitsPerEm)
	res := &sfnt.Font{
		FamilyName: family,
		IsRegular:  true,
		UnitsPerEm: unitsPerEm,
		FontMatrix: [6]float64{q, 0, 0, q, 0, 0},
		Ascent:     800,
		Descent:    -200,
		CapHeight:  700,
		XHeight:    500,
		Outlines:   outlines,
	}
	res.InstallCMap(cmap)
	return res
}

// WriteFile writes f in sfnt format.
func WriteFile(f *sfnt.Font, fname string) error {
	buf := &bytes.Buffer{}
	_, err := f.Write(buf)
	if err != nil {
		return err
	}
	return os.WriteFile(fname, buf.Bytes(), 0o644)
}
