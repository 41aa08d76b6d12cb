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

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	tdfont "github.com/tdewolff/font"
	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt/header"

	"seehuhn.de/go/notofonts/engine"
	"seehuhn.de/go/notofonts/unirange"
	"seehuhn.de/go/notofonts/woff"
)

type infoCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Font files (TrueType, OpenType, WOFF or WOFF2)."`

	out io.Writer `kong:"-"`
}

func (c *infoCmd) Run(g *Globals) error {
	e := engine.SFNT{}
	for _, fname := range c.Files {
		data, err := os.ReadFile(fname)
		if err != nil {
			return err
		}
		if woff.IsWOFF(data) {
			data, err = tdfont.ToSFNT(data)
			if err != nil {
				return fmt.Errorf("%s: %w", fname, err)
			}
		}
		f, err := engine.Decode(data, fname)
		if err != nil {
			return err
		}
		sf, err := engine.Unwrap(f)
		if err != nil {
			return err
		}
		info, err := header.Read(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%s: %w", fname, err)
		}

		glyphs := e.GlyphCoverage(f)
		fmt.Fprintln(c.out, fname+":", f.Outlines(), "font")
		fmt.Fprintln(c.out, "  FamilyName:", sf.FamilyName)
		fmt.Fprintln(c.out, "  UnitsPerEm:", sf.UnitsPerEm)
		fmt.Fprintln(c.out, "  Glyphs:", sf.NumGlyphs())
		fmt.Fprintln(c.out, "  Characters:", glyphs.Len())
		if glyphs.Len() > 0 {
			fmt.Fprintln(c.out, "  unicode-range:", unirange.Format(glyphs))
		}

		names := maps.Keys(info.Toc)
		sort.Slice(names, func(i, j int) bool {
			return info.Toc[names[i]].Offset < info.Toc[names[j]].Offset
		})
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "  name | offset | length")
		fmt.Fprintln(c.out, "  -----+--------+-------")
		for _, name := range names {
			fmt.Fprintf(c.out, "  %4s | %6d | %6d\n", name, info.Toc[name].Offset, info.Toc[name].Length)
		}
		fmt.Fprintln(c.out)
	}
	return nil
}
