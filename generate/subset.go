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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/notofonts/engine"
	"seehuhn.de/go/notofonts/fontcss"
	"seehuhn.de/go/notofonts/langinfo"
	"seehuhn.de/go/notofonts/manifest"
	"seehuhn.de/go/notofonts/unirange"
)

// MergeUnitsPerEm is the only em size accepted for merging.  Most Noto
// fonts use this value.
const MergeUnitsPerEm = 1000

// SubsetResult lists the font families considered by SubsetAndMerge.
type SubsetResult struct {
	// Used lists the families included in the merged fonts, in priority
	// order.
	Used []string

	// Skipped lists the families which could not be merged.
	Skipped []string
}

// SubsetAndMerge writes a regular and a bold font which can render text.
// Families are taken in priority order for the given default font, and
// the search stops once every character of text is covered by a full
// regular font already used.
//
// The full fonts must have been generated before.
func (b *Builder) SubsetAndMerge(text, defaultFont, regPath, boldPath string) (*SubsetResult, error) {
	remaining := unirange.FromString(text)
	res := &SubsetResult{}

	var regSubsets, boldSubsets []engine.Font
	var outlines engine.Outlines
	for _, family := range b.priorities().Fonts(defaultFont) {
		fullReg := b.woffPath(scoped(ScopeFull, family), manifest.Regular)
		fullBold := b.woffPath(scoped(ScopeFull, family), manifest.Bold)
		reg, err := b.subsetFont(fullReg, text)
		if err != nil {
			return nil, err
		}
		bold, err := b.subsetFont(fullBold, text)
		if err != nil {
			return nil, err
		}

		if outlines == 0 {
			outlines = reg.Outlines()
		}
		if !b.canMerge(reg, outlines) || !b.canMerge(bold, outlines) {
			tracer().Infof("skipping %s: cannot be merged", family)
			res.Skipped = append(res.Skipped, family)
			if len(res.Used) == 0 {
				outlines = 0
			}
			continue
		}

		regSubsets = append(regSubsets, reg)
		boldSubsets = append(boldSubsets, bold)
		res.Used = append(res.Used, family)

		glyphs, err := b.coverage().Glyphs(fullReg)
		if err != nil {
			return nil, err
		}
		remaining = remaining.Subtract(glyphs)
		if remaining.Len() == 0 {
			break
		}
	}
	if len(res.Used) == 0 {
		return res, fmt.Errorf("%s: %w", defaultFont, engine.ErrIncompatible)
	}

	err := b.mergeFonts(regSubsets, regPath)
	if err != nil {
		return res, err
	}
	err = b.mergeFonts(boldSubsets, boldPath)
	if err != nil {
		return res, err
	}
	return res, nil
}

func (b *Builder) subsetFont(fname, text string) (engine.Font, error) {
	if _, err := os.Stat(fname); err != nil {
		tracer().Errorf("%q not found", fname)
	}
	f, err := b.Engine.Load(fname)
	if err != nil {
		return nil, err
	}
	return b.Engine.Subset(f, text)
}

func (b *Builder) canMerge(f engine.Font, outlines engine.Outlines) bool {
	return b.Engine.UnitsPerEm(f) == MergeUnitsPerEm && f.Outlines() == outlines
}

func (b *Builder) mergeFonts(fonts []engine.Font, fname string) error {
	merged, err := b.Engine.Merge(fonts)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	err = b.Engine.Save(merged, fname)
	if err != nil {
		return err
	}
	b.coverage().Forget(fname)
	tracer().Infof("created %s", fname)
	return nil
}

// SubsetFonts generates the common subset and one subset for every
// language, and embeds them into CSS files.  The full fonts must have
// been generated before.
func (b *Builder) SubsetFonts() error {
	tracer().Infof("generating subset fonts...")

	err := b.CleanUp(ScopeCommon)
	if err != nil {
		return err
	}
	err = b.CleanUp(ScopeSubset)
	if err != nil {
		return err
	}

	text := langinfo.Text(langinfo.CommonStrings(b.Languages))
	res, err := b.SubsetAndMerge(text, b.latin(),
		b.woffPath(ScopeCommon, manifest.Regular),
		b.woffPath(ScopeCommon, manifest.Bold))
	if err != nil {
		return err
	}
	b.logResult(ScopeCommon, res)

	for _, l := range b.Languages {
		tracer().Infof("generating subset for %s", l.EnglishName)
		strs, err := b.languageStrings(l)
		if err != nil {
			return err
		}
		name := scoped(ScopeSubset, l.Code)
		res, err := b.SubsetAndMerge(langinfo.Text(strs), l.DefaultFont,
			b.woffPath(name, manifest.Regular),
			b.woffPath(name, manifest.Bold))
		if err != nil {
			return err
		}
		b.logResult(name, res)
	}

	err = b.InlineCSS(ScopeCommon, ScopeCommon)
	if err != nil {
		return err
	}
	for _, l := range b.Languages {
		err = b.InlineCSS(scoped(ScopeSubset, l.Code), ScopeSubset)
		if err != nil {
			return err
		}
	}

	tracer().Infof("subsets created")
	return nil
}

func (b *Builder) logResult(name string, res *SubsetResult) {
	tracer().Debugf("%s: used %s", name, strings.Join(res.Used, ", "))
	if len(res.Skipped) > 0 {
		tracer().Infof("%s: skipped %s", name, strings.Join(res.Skipped, ", "))
	}
}

// languageStrings collects the user interface strings of a language from
// all locale roots.
func (b *Builder) languageStrings(l langinfo.Language) ([]string, error) {
	var res []string
	for _, root := range b.LocaleDirs {
		strs, err := langinfo.Strings(langinfo.LocaleDir(root, l), l)
		if err != nil {
			return nil, err
		}
		res = append(res, strs...)
	}
	return res, nil
}

// InlineCSS writes <name>.css, which embeds the regular and bold fonts
// <name>.400.woff and <name>.700.woff as data URIs.  The font files are
// removed afterwards.
func (b *Builder) InlineCSS(name, family string) error {
	buf := &strings.Builder{}
	buf.WriteString(fontcss.Header)

	var fnames []string
	for _, w := range manifest.Weights {
		fname := b.woffPath(name, w)
		data, err := os.ReadFile(fname)
		if err != nil {
			return err
		}
		glyphs, err := b.coverage().Glyphs(fname)
		if err != nil {
			return err
		}
		if glyphs.Len() > 0 {
			buf.WriteString(fontcss.FontFace(family, fontcss.DataURI(data),
				w.IsBold(), unirange.Format(glyphs)))
		}
		fnames = append(fnames, fname)
	}

	err := b.writeCSS(name+".css", buf.String())
	if err != nil {
		return err
	}

	for _, fname := range fnames {
		err = os.Remove(fname)
		if err != nil {
			return err
		}
		b.coverage().Forget(fname)
		tracer().Debugf("removed %s", filepath.Base(fname))
	}
	return nil
}
