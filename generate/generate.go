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

// Package generate writes the web fonts and the CSS files which reference
// them.
//
// Three kinds of output are produced:
//
//   - Full fonts (scope "noto-full"): every source font converted to WOFF,
//     together with per-language CSS files which split the Unicode range
//     between the fonts in priority order.
//   - Common subsets (scope "noto-common"): one merged font covering
//     symbols, ASCII and the names of all languages.
//   - Language subsets (scope "noto-subset"): one merged font per
//     language, covering the user interface strings of that language.
//
// Subset fonts are embedded into their CSS files as data URIs.
package generate

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/npillmayer/schuko/tracing"

	"seehuhn.de/go/notofonts/coverage"
	"seehuhn.de/go/notofonts/engine"
	"seehuhn.de/go/notofonts/langinfo"
	"seehuhn.de/go/notofonts/manifest"
	"seehuhn.de/go/notofonts/priority"
)

func tracer() tracing.Trace {
	return tracing.Select("notofonts.generate")
}

// Output scopes.  Every generated file name starts with one of these.
const (
	ScopeFull   = "noto-full"
	ScopeSubset = "noto-subset"
	ScopeCommon = "noto-common"
)

// DefaultLatinFont is the font family searched right after the default
// font of a language.
const DefaultLatinFont = "NotoSans"

// Builder holds the configuration and the caches for generating fonts.
// A Builder is not safe for concurrent use.
type Builder struct {
	// Engine is used to load, subset, merge and save fonts.
	Engine engine.Engine

	// OutputDir receives all generated files.
	OutputDir string

	// SourceDir holds the downloaded source fonts.
	SourceDir string

	Manifest  *manifest.Manifest
	Languages []langinfo.Language

	// LocaleDirs lists the roots of the message catalogs.  The strings
	// for a language are collected from all of them, in order.
	LocaleDirs []string

	// Latin is the font family searched after the default font.  If this
	// is empty, DefaultLatinFont is used.
	Latin string

	prio *priority.Resolver
	cov  *coverage.Tracker
}

// Reset discards the font priority and glyph coverage caches.  This must
// be called when files are changed outside the Builder, or when the
// manifest, the languages or the Latin font are changed.
func (b *Builder) Reset() {
	b.prio = nil
	b.cov = nil
}

func (b *Builder) latin() string {
	if b.Latin == "" {
		return DefaultLatinFont
	}
	return b.Latin
}

func (b *Builder) priorities() *priority.Resolver {
	if b.prio == nil {
		var families []string
		if b.Manifest != nil {
			families = b.Manifest.Families()
		}
		b.prio = priority.New(b.latin(), b.Languages, families)
	}
	return b.prio
}

func (b *Builder) coverage() *coverage.Tracker {
	if b.cov == nil {
		b.cov = coverage.New(b.Engine)
	}
	return b.cov
}

// woffPath returns the location of the output font with the given base
// name and weight.
func (b *Builder) woffPath(name string, w manifest.Weight) string {
	return filepath.Join(b.OutputDir, name+"."+w.String()+".woff")
}

func scoped(scope, name string) string {
	return scope + "." + name
}

// CleanUp deletes all generated files which belong to the given scope.
// The output directory is created if needed.
func (b *Builder) CleanUp(scope string) error {
	err := os.MkdirAll(b.OutputDir, 0o755)
	if err != nil {
		return err
	}
	cssPat := regexp.MustCompile(`^` + regexp.QuoteMeta(scope) + `.*?\.css`)
	woffPat := regexp.MustCompile(`^` + regexp.QuoteMeta(scope) + `.*?\.woff`)

	entries, err := os.ReadDir(b.OutputDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if !cssPat.MatchString(name) && !woffPat.MatchString(name) {
			continue
		}
		fname := filepath.Join(b.OutputDir, name)
		err = os.Remove(fname)
		if err != nil {
			return err
		}
		if b.cov != nil {
			b.cov.Forget(fname)
		}
		tracer().Debugf("removed %s", fname)
	}
	return nil
}
