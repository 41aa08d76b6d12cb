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

package generate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/notofonts/fontcss"
	"seehuhn.de/go/notofonts/langinfo"
	"seehuhn.de/go/notofonts/manifest"
	"seehuhn.de/go/notofonts/unirange"
)

// FullFonts converts all source fonts to WOFF and writes the "modern" and
// "basic" CSS files for every language.
func (b *Builder) FullFonts() error {
	if b.Manifest == nil {
		return errors.New("no font manifest")
	}
	tracer().Infof("generating full fonts...")

	err := b.CleanUp(ScopeFull)
	if err != nil {
		return err
	}

	for _, family := range b.Manifest.Families() {
		for _, w := range manifest.Weights {
			err := b.writeFullFont(family, w)
			if err != nil {
				return err
			}
		}
	}

	for _, l := range b.Languages {
		err := b.writeModernCSS(l)
		if err != nil {
			return err
		}
		err = b.writeBasicCSS(l)
		if err != nil {
			return err
		}
	}

	tracer().Infof("finished generating full fonts")
	return nil
}

func (b *Builder) writeFullFont(family string, w manifest.Weight) error {
	src := manifest.SourcePath(b.SourceDir, family, w)
	if _, err := os.Stat(src); err != nil {
		tracer().Errorf("%q not found", src)
	}
	f, err := b.Engine.Load(src)
	if err != nil {
		return err
	}
	out := b.woffPath(scoped(ScopeFull, family), w)
	tracer().Infof("writing %s", out)
	return b.Engine.Save(f, out)
}

// fullFontFace returns the CSS for one full font, claiming all characters
// of the font except for the ones in omit.  The result is empty if no
// characters remain.
func (b *Builder) fullFontFace(family string, w manifest.Weight, omit unirange.Set) (string, error) {
	fname := b.woffPath(scoped(ScopeFull, family), w)
	glyphs, err := b.coverage().Glyphs(fname)
	if err != nil {
		return "", err
	}
	if omit != nil {
		glyphs = glyphs.Subtract(omit)
	}
	if glyphs.Len() == 0 {
		return "", nil
	}
	return fontcss.FontFace(ScopeFull, filepath.Base(fname), w.IsBold(), unirange.Format(glyphs)), nil
}

// writeModernCSS lists all full fonts in priority order.  Every character
// is claimed by the first font which contains it, so that browsers never
// download a font for characters already covered by an earlier one.
func (b *Builder) writeModernCSS(l langinfo.Language) error {
	buf := &strings.Builder{}
	buf.WriteString(fontcss.Header)

	previous := unirange.Set{}
	for _, family := range b.priorities().Fonts(l.DefaultFont) {
		for _, w := range manifest.Weights {
			face, err := b.fullFontFace(family, w, previous)
			if err != nil {
				return err
			}
			buf.WriteString(face)
		}

		// The bold variant is assumed to cover the same characters.
		glyphs, err := b.coverage().Glyphs(b.woffPath(scoped(ScopeFull, family), manifest.Regular))
		if err != nil {
			return err
		}
		previous.Union(glyphs)
	}

	return b.writeCSS(scoped(ScopeFull, l.Code)+".modern.css", buf.String())
}

// writeBasicCSS references only the default font of the language, for
// browsers without support for unicode-range.
func (b *Builder) writeBasicCSS(l langinfo.Language) error {
	buf := &strings.Builder{}
	buf.WriteString(fontcss.Header)
	for _, w := range manifest.Weights {
		face, err := b.fullFontFace(l.DefaultFont, w, nil)
		if err != nil {
			return err
		}
		buf.WriteString(face)
	}
	return b.writeCSS(scoped(ScopeFull, l.Code)+".basic.css", buf.String())
}

func (b *Builder) writeCSS(name, body string) error {
	fname := filepath.Join(b.OutputDir, name)
	tracer().Infof("writing %s", fname)
	err := os.WriteFile(fname, []byte(body), 0o644)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
