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

package priority

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/notofonts/langinfo"
)

func TestFonts(t *testing.T) {
	languages := []langinfo.Language{
		{Code: "a", DefaultFont: "A"},
		{Code: "b", DefaultFont: "B"},
	}
	families := []string{"A", "B", "Latin", "C"}
	r := New("Latin", languages, families)

	cases := []struct {
		defaultFont string
		want        []string
	}{
		{"A", []string{"A", "Latin", "B", "C"}},
		{"B", []string{"B", "Latin", "A", "C"}},
		{"Latin", []string{"Latin", "A", "B", "C"}},
		{"C", []string{"C", "Latin", "A", "B"}},
		{"Unknown", []string{"Unknown", "Latin", "A", "B", "C"}},
	}
	for _, test := range cases {
		got := r.Fonts(test.defaultFont)
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("%s: (-want +got):\n%s", test.defaultFont, d)
		}
	}
}

func TestProperties(t *testing.T) {
	languages := []langinfo.Language{
		{Code: "en", DefaultFont: "NotoSans"},
		{Code: "ar", DefaultFont: "NotoSansArabic"},
		{Code: "fa", DefaultFont: "NotoSansArabic"},
		{Code: "hi", DefaultFont: "NotoSansDevanagari"},
	}
	families := []string{
		"NotoSansArabic", "NotoSansBengali", "NotoSans", "NotoSansDevanagari",
		"NotoSansEthiopic",
	}
	r := New("NotoSans", languages, families)

	for _, defaultFont := range append(families, "Other") {
		got := r.Fonts(defaultFont)
		if got[0] != defaultFont {
			t.Errorf("%s: first entry is %s", defaultFont, got[0])
		}
		seen := map[string]bool{}
		for _, name := range got {
			if seen[name] {
				t.Errorf("%s: duplicate entry %s", defaultFont, name)
			}
			seen[name] = true
		}
		for _, name := range families {
			if !seen[name] {
				t.Errorf("%s: missing family %s", defaultFont, name)
			}
		}

		// the result is stable
		if d := cmp.Diff(got, r.Fonts(defaultFont)); d != "" {
			t.Errorf("%s: result changed (-first +second):\n%s", defaultFont, d)
		}
	}
}

func TestReset(t *testing.T) {
	families := []string{"A", "B"}
	r := New("A", nil, families)
	first := r.Fonts("B")

	r.families = append(r.families, "C")
	if d := cmp.Diff(first, r.Fonts("B")); d != "" {
		t.Errorf("cached result changed:\n%s", d)
	}

	r.Reset()
	want := []string{"B", "A", "C"}
	if d := cmp.Diff(want, r.Fonts("B")); d != "" {
		t.Errorf("after reset (-want +got):\n%s", d)
	}
}
