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

// Package woff writes fonts in the WOFF 1.0 format.
//
// See https://www.w3.org/TR/WOFF/ for the file format.
package woff

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/sfnt/header"
)

const (
	headerSize   = 44
	dirEntrySize = 20
)

// Signature is the magic number at the start of every WOFF file.
const Signature = 0x774F4646 // "wOFF"

// IsWOFF reports whether data starts with the WOFF or WOFF2 signature.
func IsWOFF(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	sig := string(data[:4])
	return sig == "wOFF" || sig == "wOF2"
}

type table struct {
	tag      string
	orig     []byte
	comp     []byte
	checksum uint32
}

// Encode converts a font in sfnt format (TrueType or OpenType) to WOFF.
//
// Tables are compressed individually with zlib, except where compression
// does not reduce their size.
func Encode(sfnt []byte) ([]byte, error) {
	r := bytes.NewReader(sfnt)
	info, err := header.Read(r)
	if err != nil {
		return nil, err
	}
	if len(info.Toc) == 0 {
		return nil, errors.New("woff: font has no tables")
	}

	tags := maps.Keys(info.Toc)
	slices.Sort(tags)

	tables := make([]*table, len(tags))
	totalSfntSize := 12 + 16*uint32(len(tags))
	for i, tag := range tags {
		data, err := info.ReadTableBytes(r, tag)
		if err != nil {
			return nil, fmt.Errorf("woff: reading %q table: %w", tag, err)
		}
		comp, err := compress(data)
		if err != nil {
			return nil, err
		}
		tables[i] = &table{
			tag:      tag,
			orig:     data,
			comp:     comp,
			checksum: tableChecksum(tag, data),
		}
		totalSfntSize += pad4(uint32(len(data)))
	}

	dataStart := uint32(headerSize + dirEntrySize*len(tables))
	dir := make([]byte, 0, dirEntrySize*len(tables))
	body := make([]byte, 0, totalSfntSize)
	for _, t := range tables {
		dir = append(dir, t.tag...)
		dir = binary.BigEndian.AppendUint32(dir, dataStart+uint32(len(body)))
		dir = binary.BigEndian.AppendUint32(dir, uint32(len(t.comp)))
		dir = binary.BigEndian.AppendUint32(dir, uint32(len(t.orig)))
		dir = binary.BigEndian.AppendUint32(dir, t.checksum)

		body = append(body, t.comp...)
		for len(body)%4 != 0 {
			body = append(body, 0)
		}
	}

	total := headerSize + len(dir) + len(body)
	res := make([]byte, 0, total)
	res = binary.BigEndian.AppendUint32(res, Signature)
	res = binary.BigEndian.AppendUint32(res, info.ScalerType)
	res = binary.BigEndian.AppendUint32(res, uint32(total))
	res = binary.BigEndian.AppendUint16(res, uint16(len(tables)))
	res = binary.BigEndian.AppendUint16(res, 0) // reserved
	res = binary.BigEndian.AppendUint32(res, totalSfntSize)
	res = binary.BigEndian.AppendUint16(res, 1) // majorVersion
	res = binary.BigEndian.AppendUint16(res, 0) // minorVersion
	for i := 0; i < 5; i++ {
		// metaOffset, metaLength, metaOrigLength, privOffset, privLength
		res = binary.BigEndian.AppendUint32(res, 0)
	}
	res = append(res, dir...)
	res = append(res, body...)
	return res, nil
}

func compress(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	_, err = w.Write(data)
	if err != nil {
		return nil, err
	}
	err = w.Close()
	if err != nil {
		return nil, err
	}
	if buf.Len() >= len(data) {
		return data, nil
	}
	return buf.Bytes(), nil
}

// tableChecksum computes the sfnt checksum of a table.  For the "head"
// table the checkSumAdjustment field is treated as zero.
func tableChecksum(tag string, data []byte) uint32 {
	if tag == "head" && len(data) >= 12 {
		data = slices.Clone(data)
		copy(data[8:12], []byte{0, 0, 0, 0})
	}

	var sum uint32
	n := len(data) / 4 * 4
	for i := 0; i < n; i += 4 {
		sum += binary.BigEndian.Uint32(data[i:])
	}
	if n < len(data) {
		var last [4]byte
		copy(last[:], data[n:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

func pad4(x uint32) uint32 {
	return (x + 3) &^ 3
}
