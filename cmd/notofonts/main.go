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

// Notofonts builds the web fonts and CSS files for a multi-language user
// interface from the Noto font sources.
//
// Browsers with support for the unicode-range descriptor get the full
// fonts, split into disjoint ranges, and only download what the displayed
// text needs.  Older browsers get the full fonts for the default font of
// the selected language.  Both get small subset fonts, inlined into the
// CSS, which cover the user interface text.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"

	"seehuhn.de/go/notofonts/engine"
	"seehuhn.de/go/notofonts/fontcss"
	"seehuhn.de/go/notofonts/generate"
	"seehuhn.de/go/notofonts/langinfo"
	"seehuhn.de/go/notofonts/manifest"
)

func tracer() tracing.Trace {
	return tracing.Select("notofonts.cmd")
}

// tracerKeys lists all tracers used by the program.
var tracerKeys = []string{
	"notofonts.cmd",
	"notofonts.engine",
	"notofonts.generate",
	"notofonts.langinfo",
	"notofonts.manifest",
}

// Globals holds the flags shared by all commands.
type Globals struct {
	OutputDir string   `type:"path" default:"kolibri/core/static/assets/fonts" env:"NOTOFONTS_OUTPUT_DIR" help:"Directory for the generated fonts and CSS files."`
	SourceDir string   `type:"path" default:"build_tools/i18n/noto_source" env:"NOTOFONTS_SOURCE_DIR" help:"Directory for the downloaded source fonts."`
	Manifest  string   `type:"path" default:"build_tools/i18n/fonts_manifest.json" env:"NOTOFONTS_MANIFEST" help:"Font manifest file."`
	Languages string   `type:"path" default:"kolibri/locale/language_info.json" env:"NOTOFONTS_LANGUAGES" help:"Language info file."`
	LocaleDir []string `type:"path" default:"kolibri/locale,kolibri/locale/perseus" env:"NOTOFONTS_LOCALE_DIR" help:"Roots of the message catalogs."`
	LatinFont string   `default:"NotoSans" env:"NOTOFONTS_LATIN_FONT" help:"Font family searched after the default font."`
	Trace     string   `enum:"Debug,Info,Error" default:"Info" env:"NOTOFONTS_TRACE" help:"Trace level (Debug, Info or Error)."`
	Log       string   `enum:"go,logrus" default:"go" env:"NOTOFONTS_LOG" help:"Log backend (go or logrus)."`

	ctx context.Context `kong:"-"`
}

type cli struct {
	Globals

	UpdateFontManifest  updateCmd   `cmd:"" help:"Update the manifest from the Noto fonts repository."`
	DownloadSourceFonts downloadCmd `cmd:"" help:"Download the source fonts listed in the manifest."`
	GenerateFullFonts   fullCmd     `cmd:"" help:"Generate full fonts and their CSS files."`
	GenerateSubsetFonts subsetCmd   `cmd:"" help:"Generate subset fonts based on the application text."`
	VerifyCSS           verifyCmd   `cmd:"" name:"verify-css" help:"Check that the full font CSS files claim disjoint ranges."`
	FontInfo            infoCmd     `cmd:"" help:"Show information about font files."`
}

type updateCmd struct {
	Ref string `arg:"" help:"Git reference, e.g. a commit or a tag."`
	API string `default:"https://api.github.com/repos/googlefonts/noto-fonts" env:"NOTOFONTS_API_URL" help:"GitHub API URL of the repository."`
	Raw string `default:"https://raw.githubusercontent.com/googlefonts/noto-fonts" env:"NOTOFONTS_RAW_URL" help:"Base URL for raw file downloads."`
}

func (c *updateCmd) Run(g *Globals) error {
	repo := manifest.Repository{API: c.API, Raw: c.Raw}
	m, err := repo.Update(g.ctx, http.DefaultClient, c.Ref)
	if err != nil {
		return err
	}
	tracer().Infof("writing %s", g.Manifest)
	return m.Save(g.Manifest)
}

type downloadCmd struct {
	Force bool `help:"Download files even if they exist."`
}

func (c *downloadCmd) Run(g *Globals) error {
	m, err := manifest.Load(g.Manifest)
	if err != nil {
		return err
	}
	return m.Download(g.ctx, http.DefaultClient, g.SourceDir, c.Force)
}

type fullCmd struct{}

func (c *fullCmd) Run(g *Globals) error {
	b, err := g.builder()
	if err != nil {
		return err
	}
	return b.FullFonts()
}

type subsetCmd struct{}

func (c *subsetCmd) Run(g *Globals) error {
	b, err := g.builder()
	if err != nil {
		return err
	}
	return b.SubsetFonts()
}

type verifyCmd struct{}

func (c *verifyCmd) Run(g *Globals) error {
	pattern := filepath.Join(g.OutputDir, generate.ScopeFull+".*.modern.css")
	fnames, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(fnames) == 0 {
		return fmt.Errorf("no files match %s", pattern)
	}
	sort.Strings(fnames)

	var errs []error
	for _, fname := range fnames {
		data, err := os.ReadFile(fname)
		if err != nil {
			return err
		}
		faces, err := fontcss.Parse(string(data))
		if err == nil {
			err = fontcss.Verify(faces)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(fname), err))
			continue
		}
		tracer().Infof("%s: %d font faces ok", filepath.Base(fname), len(faces))
	}
	return errors.Join(errs...)
}

func (g *Globals) builder() (*generate.Builder, error) {
	m, err := manifest.Load(g.Manifest)
	if err != nil {
		return nil, err
	}
	languages, err := langinfo.Load(g.Languages)
	if err != nil {
		return nil, err
	}
	return &generate.Builder{
		Engine:     engine.SFNT{},
		OutputDir:  g.OutputDir,
		SourceDir:  g.SourceDir,
		Manifest:   m,
		Languages:  languages,
		LocaleDirs: g.LocaleDir,
		Latin:      g.LatinFont,
	}, nil
}

// configureTracing selects the log backend and sets the trace level of
// all tracers.
func configureTracing(g *Globals) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": g.Log,
	}
	for _, key := range tracerKeys {
		conf["trace."+key] = g.Trace
	}
	err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true))
	if err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// exitStatus is used to unwind from kong's exit hook.
type exitStatus int

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (status int) {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("notofonts"),
		kong.Description("Build web fonts and CSS files from the Noto font sources."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitStatus(code)) }),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	defer func() {
		if r := recover(); r != nil {
			code, ok := r.(exitStatus)
			if !ok {
				panic(r)
			}
			status = int(code)
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		var perr *kong.ParseError
		if errors.As(err, &perr) && perr.Context.Selected() == nil {
			// no command, or an unknown one
			if len(args) > 0 {
				fmt.Fprintln(stderr, "unknown command")
			}
			perr.Context.PrintUsage(false)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	c.Globals.ctx = ctx
	c.FontInfo.out = stdout
	err = configureTracing(&c.Globals)
	if err != nil {
		fmt.Fprintln(stderr, "error configuring tracing:", err)
		return 1
	}

	err = kctx.Run(&c.Globals)
	if err != nil {
		tracer().Errorf("%v", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(status)
}
