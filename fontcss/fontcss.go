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

// Package fontcss writes and checks @font-face rules.
package fontcss

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"seehuhn.de/go/notofonts/unirange"
)

// Header is written at the start of every generated CSS file.
const Header = `
/*
 * This is an auto-generated file, so any manual edits will be overridden.
 *
 * To regenerate, see instructions here:
 *   https://kolibri-dev.readthedocs.io/en/develop/references/i18n.html
 *
 * This file was generated by cmd/notofonts
 */
`

const fontFace = `
@font-face {
  font-family: '%s';
  src: url('%s') format('woff');
  font-style: normal;
  font-weight: %s;
  unicode-range: %s;
  font-display: swap;
}
`

// FontFace returns a @font-face rule for a WOFF font.
func FontFace(family, url string, bold bool, unicodes string) string {
	return fmt.Sprintf(fontFace, family, url, weightName(bold), unicodes)
}

func weightName(bold bool) string {
	if bold {
		return "bold"
	}
	return "normal"
}

// DataURI returns a data URI containing a WOFF font.
func DataURI(woff []byte) string {
	return "data:application/x-font-woff;charset=utf-8;base64," +
		base64.StdEncoding.EncodeToString(woff)
}

// Face describes one @font-face rule.
type Face struct {
	Family   string
	Src      string
	Bold     bool
	Unicodes unirange.Set
}

// Parse extracts the @font-face rules from a style sheet.
func Parse(text string) ([]*Face, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}

	var res []*Face
	for _, rule := range sheet.Rules {
		if rule.Kind != css.AtRule || rule.Name != "@font-face" {
			continue
		}
		face := &Face{}
		for _, decl := range rule.Declarations {
			value := strings.TrimSpace(decl.Value)
			switch decl.Property {
			case "font-family":
				face.Family = strings.Trim(value, `'"`)
			case "src":
				face.Src = srcURL(value)
			case "font-weight":
				face.Bold = value == "bold" || value == "700"
			case "unicode-range":
				face.Unicodes, err = unirange.Parse(value)
				if err != nil {
					return nil, err
				}
			}
		}
		res = append(res, face)
	}
	return res, nil
}

// srcURL returns the argument of the first url() in a src descriptor,
// without quotes.  If there is no url(), the value is returned unchanged.
func srcURL(value string) string {
	start := strings.Index(value, "url(")
	if start < 0 {
		return value
	}
	rest := value[start+len("url("):]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return value
	}
	return strings.Trim(strings.TrimSpace(rest[:end]), `'"`)
}

// Verify checks that no two faces of the same family and weight claim
// the same character.
func Verify(faces []*Face) error {
	type key struct {
		family string
		bold   bool
	}
	claimed := make(map[key]map[rune]int)
	for i, face := range faces {
		k := key{face.Family, face.Bold}
		owner := claimed[k]
		if owner == nil {
			owner = make(map[rune]int)
			claimed[k] = owner
		}
		for _, r := range face.Unicodes.Sorted() {
			if j, taken := owner[r]; taken {
				return fmt.Errorf("U+%04X is claimed by faces %d and %d (%s, %s)",
					r, j, i, face.Family, weightName(face.Bold))
			}
			owner[r] = i
		}
	}
	return nil
}
