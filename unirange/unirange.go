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

// Package unirange implements sets of Unicode code points and their
// representation as CSS unicode-range values.
package unirange

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Set is a set of Unicode code points.
type Set map[rune]struct{}

// FromString returns the set of runes occurring in s.
func FromString(s string) Set {
	res := Set{}
	res.AddString(s)
	return res
}

// Add adds the given code points to the set.
func (s Set) Add(rr ...rune) {
	for _, r := range rr {
		s[r] = struct{}{}
	}
}

// AddString adds all runes of str to the set.
func (s Set) AddString(str string) {
	for _, r := range str {
		s[r] = struct{}{}
	}
}

// Has returns true if r is in the set.
func (s Set) Has(r rune) bool {
	_, ok := s[r]
	return ok
}

// Len returns the number of code points in the set.
func (s Set) Len() int {
	return len(s)
}

// Union adds all elements of other to s.
func (s Set) Union(other Set) {
	for r := range other {
		s[r] = struct{}{}
	}
}

// Subtract returns a new set, containing the elements of s which are not
// in other.
func (s Set) Subtract(other Set) Set {
	res := make(Set, len(s))
	for r := range s {
		if _, ok := other[r]; !ok {
			res[r] = struct{}{}
		}
	}
	return res
}

// Clone returns a copy of the set.
func (s Set) Clone() Set {
	res := make(Set, len(s))
	maps.Copy(res, s)
	return res
}

// Sorted returns the elements of the set in increasing order.
func (s Set) Sorted() []rune {
	keys := maps.Keys(s)
	slices.Sort(keys)
	return keys
}

// Range is a half-open interval [Start, End) of code points.
type Range struct {
	Start, End rune
}

// String returns the CSS form of the range, e.g. "U+41-43" or "U+5A".
func (r Range) String() string {
	if r.End-r.Start == 1 {
		return "U+" + fmtCode(r.Start)
	}
	return "U+" + fmtCode(r.Start) + "-" + fmtCode(r.End-1)
}

func fmtCode(r rune) string {
	return strings.ToUpper(strconv.FormatInt(int64(r), 16))
}

// Ranges returns the maximal runs of consecutive code points in s, in
// increasing order.  The result is nil if s is empty.
func Ranges(s Set) []Range {
	if len(s) == 0 {
		return nil
	}
	codes := s.Sorted()

	var res []Range
	cur := Range{Start: codes[0], End: codes[0] + 1}
	for _, c := range codes[1:] {
		if c == cur.End {
			cur.End++
			continue
		}
		res = append(res, cur)
		cur = Range{Start: c, End: c + 1}
	}
	res = append(res, cur)
	return res
}

// Format renders the set as the value of a CSS unicode-range descriptor.
func Format(s Set) string {
	ranges := Ranges(s)
	tokens := make([]string, len(ranges))
	for i, r := range ranges {
		tokens[i] = r.String()
	}
	return strings.Join(tokens, ",")
}

// Parse reads the value of a CSS unicode-range descriptor.
//
// Tokens have the forms "U+41", "U+41-5A" and "U+4??".
func Parse(value string) (Set, error) {
	res := Set{}
	for _, tok := range strings.Split(value, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		r, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		for c := r.Start; c < r.End; c++ {
			res[c] = struct{}{}
		}
	}
	return res, nil
}

func parseToken(tok string) (Range, error) {
	if len(tok) < 3 || (tok[0] != 'U' && tok[0] != 'u') || tok[1] != '+' {
		return Range{}, fmt.Errorf("unirange: invalid token %q", tok)
	}
	body := tok[2:]

	if strings.HasSuffix(body, "?") {
		lo := strings.ReplaceAll(body, "?", "0")
		hi := strings.ReplaceAll(body, "?", "F")
		start, err1 := parseHex(lo)
		end, err2 := parseHex(hi)
		if err1 != nil || err2 != nil {
			return Range{}, fmt.Errorf("unirange: invalid token %q", tok)
		}
		return Range{Start: start, End: end + 1}, nil
	}

	first, last, isRange := strings.Cut(body, "-")
	start, err := parseHex(first)
	if err != nil {
		return Range{}, fmt.Errorf("unirange: invalid token %q", tok)
	}
	end := start
	if isRange {
		end, err = parseHex(last)
		if err != nil {
			return Range{}, fmt.Errorf("unirange: invalid token %q", tok)
		}
	}
	if end < start {
		return Range{}, fmt.Errorf("unirange: empty range %q", tok)
	}
	return Range{Start: start, End: end + 1}, nil
}

func parseHex(s string) (rune, error) {
	if len(s) == 0 || len(s) > 6 {
		return 0, strconv.ErrSyntax
	}
	x, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	if x > 0x10FFFF {
		return 0, strconv.ErrRange
	}
	return rune(x), nil
}
