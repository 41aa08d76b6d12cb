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
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/notofonts/unirange"
)

var (
	keyBMP     = cmap.Key{PlatformID: 3, EncodingID: 1}
	keyUnicode = cmap.Key{PlatformID: 3, EncodingID: 10}
)

// makeCMap builds a cmap table for the given mapping.  A format 4
// subtable is always included, a format 12 subtable is added if
// characters outside the BMP are mapped.
func makeCMap(codes map[rune]glyph.ID) cmap.Table {
	bmp := cmap.Format4{}
	needFull := false
	for r, gid := range codes {
		if r < 0xFFFF {
			bmp[uint16(r)] = gid
		} else {
			needFull = true
		}
	}

	table := cmap.Table{
		keyBMP: bmp.Encode(0),
	}
	if needFull {
		full := cmap.Format12{}
		for r, gid := range codes {
			full[uint32(r)] = gid
		}
		table[keyUnicode] = full.Encode(0)
	}
	return table
}

// coverage returns the union of the characters mapped by all subtables
// of a cmap table.  Subtables which cannot be decoded are ignored.
func coverage(table cmap.Table) unirange.Set {
	res := unirange.Set{}
	for key, data := range table {
		if len(data) < 2 || !knownFormat[uint16(data[0])<<8|uint16(data[1])] {
			continue
		}
		subtable, err := table.Get(key)
		if err != nil {
			tracer().Debugf("skipping cmap subtable %v: %v", key, err)
			continue
		}
		mapped(subtable, func(r rune, _ glyph.ID) {
			res[r] = struct{}{}
		})
	}
	return res
}

// knownFormat lists the cmap subtable formats which map single
// characters to glyphs.
var knownFormat = map[uint16]bool{
	0: true, 2: true, 4: true, 6: true, 10: true, 12: true, 13: true,
}

// mapped calls yield for every character mapped by the subtable to a
// glyph other than .notdef.
func mapped(subtable cmap.Subtable, yield func(rune, glyph.ID)) {
	switch s := subtable.(type) {
	case cmap.Format4:
		for code, gid := range s {
			if gid != 0 {
				yield(rune(code), gid)
			}
		}
	case cmap.Format12:
		for code, gid := range s {
			if gid != 0 {
				yield(rune(code), gid)
			}
		}
	case *cmap.Format0:
		for code, gid := range s.Data {
			if gid != 0 {
				yield(rune(code), glyph.ID(gid))
			}
		}
	default:
		low, high := subtable.CodeRange()
		if low < 0 {
			low = 0
		}
		if high > 0x10FFFF {
			high = 0x10FFFF
		}
		for r := low; r <= high; r++ {
			if gid := subtable.Lookup(r); gid != 0 {
				yield(r, gid)
			}
		}
	}
}
