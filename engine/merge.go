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
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/maxp"

	"seehuhn.de/go/notofonts/unirange"
)

// Merge implements the Engine interface.
//
// All fonts must use the same outline format and the same unitsPerEm value.
// The .notdef glyph and all font-wide information are taken from the first
// font.  TrueType hinting tables and the layout tables (GDEF, GSUB, GPOS)
// are taken from the first font as well, since its glyph IDs are unchanged.
// Several CFF fonts are combined into one CID-keyed font.
func (SFNT) Merge(fonts []Font) (Font, error) {
	if len(fonts) == 0 {
		return nil, errors.New("no fonts to merge")
	}
	ff := make([]*sfnt.Font, len(fonts))
	for i, f := range fonts {
		sf, err := Unwrap(f)
		if err != nil {
			return nil, err
		}
		ff[i] = sf
	}
	if len(ff) == 1 {
		return &sfntFont{ff[0].Clone()}, nil
	}

	kind := fonts[0].Outlines()
	for i, f := range ff[1:] {
		if f.UnitsPerEm != ff[0].UnitsPerEm {
			return nil, fmt.Errorf("font %d: unitsPerEm %d != %d: %w",
				i+1, f.UnitsPerEm, ff[0].UnitsPerEm, ErrIncompatible)
		}
		if k := fonts[i+1].Outlines(); k != kind {
			return nil, fmt.Errorf("font %d: %s outlines != %s: %w",
				i+1, k, kind, ErrIncompatible)
		}
	}

	total := 1
	for _, f := range ff {
		total += f.NumGlyphs() - 1
	}
	if total > math.MaxUint16 {
		return nil, fmt.Errorf("merged font would have %d glyphs: %w", total, ErrIncompatible)
	}

	m := &merger{}
	res := ff[0].Clone()
	switch kind {
	case TrueType:
		res.Outlines = m.mergeGlyf(ff)
	case CFF:
		res.Outlines = m.mergeCFF(ff)
	default:
		return nil, fmt.Errorf("unsupported outlines: %w", ErrIncompatible)
	}
	res.CMapTable = makeCMap(m.mergeCMaps(ff))

	tracer().Debugf("merged %d fonts into %d glyphs", len(ff), res.NumGlyphs())
	return &sfntFont{res}, nil
}

// merger keeps track of the glyph renumbering while fonts are merged.
type merger struct {
	// newGid[i] maps the glyph IDs of font i to glyph IDs in the result.
	newGid []map[glyph.ID]glyph.ID
}

// renumber allocates glyph IDs for the glyphs of every font.
// The .notdef glyph of every font after the first is mapped to the
// .notdef glyph of the first font.
func (m *merger) renumber(ff []*sfnt.Font) {
	m.newGid = make([]map[glyph.ID]glyph.ID, len(ff))
	next := 0
	for i, f := range ff {
		gidMap := map[glyph.ID]glyph.ID{0: 0}
		start := 1
		if i == 0 {
			start = 0
		}
		for gid := start; gid < f.NumGlyphs(); gid++ {
			gidMap[glyph.ID(gid)] = glyph.ID(next)
			next++
		}
		m.newGid[i] = gidMap
	}
}

// skip returns the number of leading glyphs of font i which are not
// copied into the result.
func skip(i int) int {
	if i == 0 {
		return 0
	}
	return 1
}

func (m *merger) mergeGlyf(ff []*sfnt.Font) *glyf.Outlines {
	m.renumber(ff)

	first := ff[0].Outlines.(*glyf.Outlines)
	res := &glyf.Outlines{
		Tables: first.Tables,
		Maxp:   first.Maxp,
	}

	keepNames := true
	for _, f := range ff {
		if len(f.Outlines.(*glyf.Outlines).Names) == 0 {
			keepNames = false
		}
	}
	names := &nameAllocator{seen: map[string]int{}}

	for i, f := range ff {
		o := f.Outlines.(*glyf.Outlines)
		for gid := skip(i); gid < len(o.Glyphs); gid++ {
			res.Glyphs = append(res.Glyphs, o.Glyphs[gid].FixComponents(m.newGid[i]))

			var w funit.Int16
			if gid < len(o.Widths) {
				w = o.Widths[gid]
			}
			res.Widths = append(res.Widths, w)

			if keepNames {
				var name string
				if gid < len(o.Names) {
					name = o.Names[gid]
				}
				res.Names = append(res.Names, names.get(name))
			}
		}
		if i > 0 {
			res.Maxp = maxMaxp(res.Maxp, o.Maxp)
		}
	}
	return res
}

// maxMaxp returns the field-wise maximum of two maxp records.
func maxMaxp(a, b *maxp.TTFInfo) *maxp.TTFInfo {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &maxp.TTFInfo{
		MaxPoints:             max(a.MaxPoints, b.MaxPoints),
		MaxContours:           max(a.MaxContours, b.MaxContours),
		MaxCompositePoints:    max(a.MaxCompositePoints, b.MaxCompositePoints),
		MaxCompositeContours:  max(a.MaxCompositeContours, b.MaxCompositeContours),
		MaxZones:              max(a.MaxZones, b.MaxZones),
		MaxTwilightPoints:     max(a.MaxTwilightPoints, b.MaxTwilightPoints),
		MaxStorage:            max(a.MaxStorage, b.MaxStorage),
		MaxFunctionDefs:       max(a.MaxFunctionDefs, b.MaxFunctionDefs),
		MaxInstructionDefs:    max(a.MaxInstructionDefs, b.MaxInstructionDefs),
		MaxStackElements:      max(a.MaxStackElements, b.MaxStackElements),
		MaxSizeOfInstructions: max(a.MaxSizeOfInstructions, b.MaxSizeOfInstructions),
		MaxComponentElements:  max(a.MaxComponentElements, b.MaxComponentElements),
		MaxComponentDepth:     max(a.MaxComponentDepth, b.MaxComponentDepth),
	}
}

// mergeCFF combines CFF outlines into a CID-keyed font, with one private
// dictionary for every private dictionary of the input fonts.
func (m *merger) mergeCFF(ff []*sfnt.Font) *cff.Outlines {
	m.renumber(ff)

	first := ff[0].Outlines.(*cff.Outlines)
	res := &cff.Outlines{
		ROS: first.ROS,
	}
	if res.ROS == nil {
		res.ROS = &cid.SystemInfo{
			Registry: "Adobe",
			Ordering: "Identity",
		}
	}

	var fdIdx []int
	for i, f := range ff {
		o := f.Outlines.(*cff.Outlines)
		base := len(res.Private)
		res.Private = append(res.Private, o.Private...)
		for j := range o.Private {
			fm := matrix.Matrix{1, 0, 0, 1, 0, 0}
			if o.IsCIDKeyed() && j < len(o.FontMatrices) {
				fm = o.FontMatrices[j]
			}
			res.FontMatrices = append(res.FontMatrices, fm)
		}

		for gid := skip(i); gid < len(o.Glyphs); gid++ {
			res.Glyphs = append(res.Glyphs, o.Glyphs[gid])
			fd := 0
			if o.FDSelect != nil {
				fd = o.FDSelect(glyph.ID(gid))
			}
			fdIdx = append(fdIdx, base+fd)
		}
	}
	if len(res.Private) == 0 {
		res.Private = []*type1.PrivateDict{{}}
		res.FontMatrices = []matrix.Matrix{{1, 0, 0, 1, 0, 0}}
	}

	res.FDSelect = func(gid glyph.ID) int {
		if int(gid) < len(fdIdx) {
			return fdIdx[gid]
		}
		return 0
	}
	res.GIDToCID = make([]cid.CID, len(res.Glyphs))
	for gid := range res.GIDToCID {
		res.GIDToCID[gid] = cid.CID(gid)
	}
	return res
}

// mergeCMaps returns the combined character mapping of all fonts, using
// the new glyph IDs.  Characters mapped by several fonts are assigned to
// the first of these fonts.
func (m *merger) mergeCMaps(ff []*sfnt.Font) map[rune]glyph.ID {
	res := make(map[rune]glyph.ID)
	for i, f := range ff {
		subtable, err := f.CMapTable.GetBest()
		if err != nil {
			tracer().Infof("font %d (%s) has no usable cmap: %v", i, f.FamilyName, err)
			continue
		}
		codes := unirange.Set{}
		gids := make(map[rune]glyph.ID)
		mapped(subtable, func(r rune, gid glyph.ID) {
			codes[r] = struct{}{}
			gids[r] = gid
		})
		for _, r := range codes.Sorted() {
			if _, done := res[r]; done {
				continue
			}
			newGid, ok := m.newGid[i][gids[r]]
			if !ok || newGid == 0 {
				continue
			}
			res[r] = newGid
		}
	}
	return res
}

// nameAllocator makes glyph names unique, by appending "#1", "#2", ...
// to repeated names.
type nameAllocator struct {
	seen map[string]int
}

func (a *nameAllocator) get(name string) string {
	if name == "" {
		return ""
	}
	n, dup := a.seen[name]
	a.seen[name] = n + 1
	if !dup {
		return name
	}
	for {
		cand := fmt.Sprintf("%s#%d", name, n)
		if _, taken := a.seen[cand]; !taken {
			a.seen[cand] = 1
			return cand
		}
		n++
	}
}
