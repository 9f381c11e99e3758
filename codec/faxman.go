// Copyright (c) 2025 The clownacy-go Authors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of lzss.
//
// lzss is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// lzss is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with lzss.  If not, see <https://www.gnu.org/licenses/>.

package codec

import (
	"fmt"

	"github.com/clownacy-go/lzss/bitio"
	"github.com/clownacy-go/lzss/internal/membuf"
	"github.com/clownacy-go/lzss/internal/parser"
	"github.com/clownacy-go/lzss/ioadapter"
)

// Faxman is Saxman's sibling format: the same ring-buffer match shape,
// but with an 8-bit length field (one extra byte per match, no 18-byte
// ceiling) in exchange for a smaller, byte-granular dictionary window,
// and a zero-filled dictionary rather than Saxman's space-filled one —
// §4.6 names both fillers as format conventions, and Faxman's binary
// (non-text) ROM payloads are the 0x00 side of that split.
const (
	faxmanDictionarySize = 0x800
	faxmanMaxMatchLength = 256
	faxmanFillerByte     = 0x00
)

type faxmanCost struct{}

func (faxmanCost) Literal() uint { return 1 + 8 }

func (faxmanCost) Match(distance, length int) uint {
	if distance < 1 || distance > faxmanDictionarySize || length < 2 || length > faxmanMaxMatchLength {
		return 0
	}
	return 1 + 8 + 8 + 8
}

// CompressFaxman encodes data as a Faxman stream with a BE16
// uncompressed-size header.
func CompressFaxman(data []byte) ([]byte, error) {
	matches, err := parser.Compress(data, 1, faxmanMaxMatchLength, faxmanDictionarySize, faxmanCost{}, nil)
	if err != nil {
		return nil, err
	}

	buf := membuf.New(256)
	out := ioadapter.NewBufferWriter(buf)
	if err := out.WriteBE16(uint16(len(data))); err != nil {
		return nil, err
	}

	desc := bitio.NewWriter(out, bitio.WidthByte, bitio.TimingBeforePush, bitio.PositionLow, bitio.EndianBig)

	pos := 0
	for _, m := range matches {
		if err := faxmanEmit(desc, out, data, m, pos); err != nil {
			return nil, err
		}
		pos += m.Length
	}
	if err := desc.Flush(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func faxmanEmit(desc *bitio.Writer, out ioadapter.WriteSeeker, data []byte, m parser.Match, pos int) error {
	if m.Source < 0 {
		if err := desc.Push(1); err != nil {
			return err
		}
		return out.Write(data[m.Destination])
	}

	distance := m.Destination - m.Source
	length := m.Length
	if distance < 1 || distance > faxmanDictionarySize || length < 2 || length > faxmanMaxMatchLength {
		return fmt.Errorf("%w: Faxman match distance %d length %d out of range", ErrInvalidInput, distance, length)
	}

	if err := desc.Push(0); err != nil {
		return err
	}

	ringIndex := mod(pos-distance, faxmanDictionarySize)
	if err := out.Write(byte(ringIndex & 0xFF)); err != nil {
		return err
	}
	if err := out.Write(byte(ringIndex >> 8 & 0x7)); err != nil {
		return err
	}
	return out.Write(byte(length - 2))
}

// DecompressFaxman reverses CompressFaxman.
func DecompressFaxman(data []byte) ([]byte, error) {
	in := ioadapter.NewBufferReader(data)
	size, err := in.ReadBE16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading Faxman header: %v", ErrTruncated, err)
	}

	desc := bitio.NewReader(in, bitio.WidthByte, bitio.PositionLow, bitio.EndianBig)
	sink := NewBufferSink()

	for len(sink.Bytes()) < int(size) {
		bit, err := desc.Pop()
		if err != nil {
			return nil, fmt.Errorf("%w: reading descriptor bit: %v", ErrTruncated, err)
		}

		if bit != 0 {
			b, err := in.Read()
			if err != nil {
				return nil, fmt.Errorf("%w: reading literal: %v", ErrTruncated, err)
			}
			if err := sink.WriteLiteral(b); err != nil {
				return nil, err
			}
			continue
		}

		b0, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
		}
		b1, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
		}
		lengthByte, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
		}

		ringIndex := int(b0) | int(b1&0x7)<<8
		length := int(lengthByte) + 2
		pos := len(sink.Bytes())
		distance := mod(pos-ringIndex, faxmanDictionarySize)
		if distance == 0 {
			distance = faxmanDictionarySize
		}

		// Ring slots not yet written since the start of output hold the
		// filler byte.
		for length > 0 && distance > len(sink.Bytes()) {
			if err := sink.WriteLiteral(faxmanFillerByte); err != nil {
				return nil, err
			}
			length--
		}
		if length == 0 {
			continue
		}
		if err := sink.Copy(distance, length); err != nil {
			return nil, err
		}
	}

	return sink.Bytes(), nil
}

// ModuledFaxmanCompress/ModuledFaxmanDecompress apply the §4.7 chunking
// wrapper.
func ModuledFaxmanCompress(data []byte, moduleSize int) ([]byte, error) {
	compress, _ := Moduled(CompressFaxman, DecompressFaxman, moduleSize, 2)
	return compress(data)
}

func ModuledFaxmanDecompress(data []byte, moduleSize int) ([]byte, error) {
	_, decompress := Moduled(CompressFaxman, DecompressFaxman, moduleSize, 2)
	return decompress(data)
}
