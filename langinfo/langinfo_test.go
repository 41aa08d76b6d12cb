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

package langinfo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToLocale(t *testing.T) {
	cases := map[string]string{
		"en":      "en",
		"pt-br":   "pt_BR",
		"PT-BR":   "pt_BR",
		"zh-hans": "zh_Hans",
		"es-419":  "es_419",
		"fr-fr":   "fr_FR",
	}
	for in, want := range cases {
		if got := ToLocale(in); got != want {
			t.Errorf("ToLocale(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "languages.json")
	data := `[
		{"intl_code": "en", "language_name": "English", "english_name": "English", "default_font": "NotoSans"},
		{"intl_code": "ar", "language_name": "العربيّة", "english_name": "Arabic", "default_font": "NotoSansArabic"}
	]`
	err := os.WriteFile(fname, []byte(data), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Load(fname)
	if err != nil {
		t.Fatal(err)
	}
	want := []Language{
		{Code: "en", Name: "English", EnglishName: "English", DefaultFont: "NotoSans"},
		{Code: "ar", Name: "العربيّة", EnglishName: "Arabic", DefaultFont: "NotoSansArabic"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	err = os.WriteFile(fname, []byte(`[{"intl_code": "en"}]`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Load(fname); err == nil {
		t.Error("missing default font not detected")
	}
}

func TestStrings(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.json":   `{"x": "Größe", "a": "Hello, world!"}`,
		"a.json":   `{"k": "déjà-vu"}`,
		"notes.po": `ignored`,
	}
	for name, body := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644)
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := Strings(dir, Language{Code: "de"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"déjà vu", "DÉJÀ VU",
		"Hello  world ", "HELLO  WORLD ",
		"Größe", "GRÖSSE",
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}

	again, err := Strings(dir, Language{Code: "de"})
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != len(got) {
		t.Errorf("second call returned %d strings, want %d", len(again), len(got))
	}

	if _, err := Strings(filepath.Join(dir, "missing"), Language{Code: "de"}); err == nil {
		t.Error("missing directory not reported")
	}
}

func TestStringsTurkish(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "m.json"), []byte(`{"a": "istanbul"}`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Strings(dir, Language{Code: "tr"})
	if err != nil {
		t.Fatal(err)
	}
	if got[1] != "İSTANBUL" {
		t.Errorf("got %q", got[1])
	}
}

func TestCommonStrings(t *testing.T) {
	langs := []Language{
		{Code: "en", Name: "English", EnglishName: "English"},
		{Code: "fr-fr", Name: "Français", EnglishName: "French"},
	}
	text := Text(CommonStrings(langs))
	for _, s := range []string{"\x00", "©", "—", "›", "~", "A", "z", "Français", "FRANÇAIS", "FRENCH"} {
		if !strings.Contains(text, s) {
			t.Errorf("missing %q", s)
		}
	}

	// the result must not share storage between calls
	a := CommonStrings(langs)
	a[0] = "changed"
	b := CommonStrings(langs)
	if b[0] != "\x00" {
		t.Error("CommonStrings results share storage")
	}
}
