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

// Package langinfo describes the languages supported by an application,
// and collects the user interface strings used for each language.
package langinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func tracer() tracing.Trace {
	return tracing.Select("notofonts.langinfo")
}

// Language describes one supported language.
type Language struct {
	// Code is the international language code, e.g. "pt-br".
	Code string `json:"intl_code"`

	// Name is the name of the language in the language itself.
	Name string `json:"language_name"`

	// EnglishName is the English name of the language.
	EnglishName string `json:"english_name"`

	// DefaultFont is the font family used by default for the language.
	DefaultFont string `json:"default_font"`
}

// Tag returns the BCP 47 tag of the language.
// Undetermined is returned for unknown codes.
func (l Language) Tag() language.Tag {
	tag, err := language.Parse(l.Code)
	if err != nil {
		return language.Und
	}
	return tag
}

// Load reads a list of languages from a JSON file.
func Load(fname string) ([]Language, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	var res []Language
	err = json.Unmarshal(data, &res)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	for i, l := range res {
		if l.Code == "" || l.DefaultFont == "" {
			return nil, fmt.Errorf("%s: entry %d: missing code or default font", fname, i)
		}
	}
	return res, nil
}

// ToLocale converts a language code like "pt-br" into a locale name
// like "pt_BR".  Region subtags longer than two letters are title-cased,
// so that "zh-hans" becomes "zh_Hans".
func ToLocale(code string) string {
	lang, country, found := strings.Cut(code, "-")
	if !found {
		return strings.ToLower(code)
	}
	lang = strings.ToLower(lang)
	country = strings.ToLower(country)
	if len(country) > 2 {
		country = strings.ToUpper(country[:1]) + country[1:]
	} else {
		country = strings.ToUpper(country)
	}
	return lang + "_" + country
}

// LocaleDir returns the directory holding the message files for a
// language, below the given locale root.
func LocaleDir(root string, l Language) string {
	return filepath.Join(root, ToLocale(l.Code), "LC_MESSAGES")
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_]`)

// Strings returns the user interface strings found in the JSON message
// files in dir.  Every non-word character is replaced by a space, and
// every string is followed by its upper-case form.
//
// Each JSON file must contain an object mapping message IDs to strings.
// Files are read in lexical order, messages in order of their IDs.
func Strings(dir string, l Language) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	upper := cases.Upper(l.Tag())
	var res []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		fname := filepath.Join(dir, name)
		data, err := os.ReadFile(fname)
		if err != nil {
			return nil, err
		}
		var messages map[string]string
		err = json.Unmarshal(data, &messages)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fname, err)
		}

		keys := maps.Keys(messages)
		slices.Sort(keys)
		for _, key := range keys {
			s := nonWord.ReplaceAllString(messages[key], " ")
			res = append(res, s, upper.String(s))
		}
		tracer().Debugf("%s: %d messages", fname, len(messages))
	}
	return res, nil
}

// commonSymbols are characters used directly in untranslated UI text.
var commonSymbols = []string{
	"\x00",
	"©",
	"–", // en dash
	"—", // em dash
	"…",
	"‘",
	"’",
	"“",
	"”",
	"•",
	"→",
	"›",
}

// CommonStrings returns text which is useful for all languages: symbols,
// the printable ASCII characters, and the names of all languages (to
// display a language switcher), both as given and in upper case.
func CommonStrings(languages []Language) []string {
	res := slices.Clone(commonSymbols)
	for c := rune(32); c < 127; c++ {
		res = append(res, string(c))
	}
	for _, l := range languages {
		upper := cases.Upper(l.Tag())
		english := cases.Upper(language.English)
		res = append(res,
			l.Name, upper.String(l.Name),
			l.EnglishName, english.String(l.EnglishName))
	}
	return res
}

// Text joins strings into a single text, separated by spaces.
func Text(ss []string) string {
	return strings.Join(ss, " ")
}
