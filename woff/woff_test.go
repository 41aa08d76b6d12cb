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

package woff

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tdewolff/font"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/sfnt/header"
)

func TestEncodeHeader(t *testing.T) {
	data, err := Encode(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	if !IsWOFF(data) {
		t.Fatal("missing signature")
	}
	if l := binary.BigEndian.Uint32(data[8:12]); int(l) != len(data) {
		t.Errorf("length field %d, file size %d", l, len(data))
	}
	if len(data)%4 != 0 {
		t.Errorf("file size %d is not a multiple of 4", len(data))
	}

	info, err := header.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	if flavor := binary.BigEndian.Uint32(data[4:8]); flavor != info.ScalerType {
		t.Errorf("flavor %08x, want %08x", flavor, info.ScalerType)
	}
	numTables := int(binary.BigEndian.Uint16(data[12:14]))
	if numTables != len(info.Toc) {
		t.Errorf("%d tables, want %d", numTables, len(info.Toc))
	}

	var prev string
	for i := 0; i < numTables; i++ {
		entry := data[headerSize+i*dirEntrySize:]
		tag := string(entry[:4])
		if tag <= prev {
			t.Errorf("table %q after %q", tag, prev)
		}
		prev = tag
		offset := binary.BigEndian.Uint32(entry[4:8])
		if offset%4 != 0 {
			t.Errorf("table %q at unaligned offset %d", tag, offset)
		}
		compLength := binary.BigEndian.Uint32(entry[8:12])
		origLength := binary.BigEndian.Uint32(entry[12:16])
		if compLength > origLength {
			t.Errorf("table %q: compressed %d > original %d", tag, compLength, origLength)
		}
	}

	if len(data) >= len(goregular.TTF) {
		t.Errorf("no compression: %d >= %d", len(data), len(goregular.TTF))
	}
}

func TestRoundTrip(t *testing.T) {
	data, err := Encode(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := font.ToSFNT(data)
	if err != nil {
		t.Fatal(err)
	}

	want := readTables(t, goregular.TTF)
	got := readTables(t, decoded)
	for _, tables := range []map[string][]byte{want, got} {
		if head := tables["head"]; len(head) >= 12 {
			copy(head[8:12], []byte{0, 0, 0, 0})
		}
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("tables differ (-want +got):\n%s", d)
	}
}

func TestChecksum(t *testing.T) {
	cases := []struct {
		tag  string
		data []byte
		want uint32
	}{
		{"test", []byte{0, 0, 0, 1, 0, 0, 0, 2}, 3},
		{"test", []byte{1}, 0x01000000},
		{"test", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 2}, 1},
		{"head", []byte{0, 0, 0, 1, 0, 0, 0, 0, 9, 9, 9, 9}, 1},
	}
	for _, test := range cases {
		got := tableChecksum(test.tag, test.data)
		if got != test.want {
			t.Errorf("%q %v: got %08x, want %08x", test.tag, test.data, got, test.want)
		}
	}
}

func readTables(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	r := bytes.NewReader(data)
	info, err := header.Read(r)
	if err != nil {
		t.Fatal(err)
	}
	res := make(map[string][]byte)
	for tag := range info.Toc {
		body, err := info.ReadTableBytes(r, tag)
		if err != nil {
			t.Fatal(err)
		}
		res[tag] = bytes.Clone(body)
	}
	return res
}
