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

// Rage packs a match into a single 16-bit word: the low 13 bits are a
// Rocket-style ring-buffer position, the high 3 bits are length-2 in
// [0,6]; a value of 7 there escapes to an extra length byte. This
// keeps every match to exactly 2 or 3 bytes, trading Rocket's wider
// 6-bit inline count (and 0x400 window) for a deeper 0x2000 window at
// the cost of a shorter inline count range.
const (
	rageDictionarySize      = 0x2000
	rageShortMaxMatchLength = 8
	rageMaxMatchLength      = 256
)

type rageCost struct{}

func (rageCost) Literal() uint { return 1 + 8 }

func (rageCost) Match(distance, length int) uint {
	if distance < 1 || distance > rageDictionarySize || length < 2 || length > rageMaxMatchLength {
		return 0
	}
	if length <= rageShortMaxMatchLength {
		return 1 + 16
	}
	return 1 + 16 + 8
}

// CompressRage encodes data as a Rage stream with a BE16
// uncompressed-size header.
func CompressRage(data []byte) ([]byte, error) {
	matches, err := parser.Compress(data, 1, rageMaxMatchLength, rageDictionarySize, rageCost{}, nil)
	if err != nil {
		return nil, err
	}

	buf := membuf.New(256)
	out := ioadapter.NewBufferWriter(buf)
	if err := out.WriteBE16(uint16(len(data))); err != nil {
		return nil, err
	}

	desc := bitio.NewWriter(out, bitio.WidthWord, bitio.TimingBeforePush, bitio.PositionLow, bitio.EndianLittle)

	pos := 0
	for _, m := range matches {
		if err := rageEmit(desc, out, data, m, pos); err != nil {
			return nil, err
		}
		pos += m.Length
	}
	if err := desc.Flush(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func rageEmit(desc *bitio.Writer, out ioadapter.WriteSeeker, data []byte, m parser.Match, pos int) error {
	if m.Source < 0 {
		if err := desc.Push(1); err != nil {
			return err
		}
		return out.Write(data[m.Destination])
	}

	distance := m.Destination - m.Source
	length := m.Length
	if distance < 1 || distance > rageDictionarySize || length < 2 || length > rageMaxMatchLength {
		return fmt.Errorf("%w: Rage match distance %d length %d out of range", ErrInvalidInput, distance, length)
	}

	if err := desc.Push(0); err != nil {
		return err
	}

	ringIndex := mod(pos-distance, rageDictionarySize)

	if length <= rageShortMaxMatchLength {
		word := uint16(length-2)<<13 | uint16(ringIndex)
		return out.WriteLE16(word)
	}

	word := uint16(0x7)<<13 | uint16(ringIndex)
	if err := out.WriteLE16(word); err != nil {
		return err
	}
	return out.Write(byte(length - 1))
}

// DecompressRage reverses CompressRage.
func DecompressRage(data []byte) ([]byte, error) {
	in := ioadapter.NewBufferReader(data)
	size, err := in.ReadBE16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading Rage header: %v", ErrTruncated, err)
	}

	desc := bitio.NewReader(in, bitio.WidthWord, bitio.PositionLow, bitio.EndianLittle)
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

		word, err := in.ReadLE16()
		if err != nil {
			return nil, fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
		}

		ringIndex := int(word & 0x1FFF)
		nibble := int(word >> 13)
		pos := len(sink.Bytes())
		distance := mod(pos-ringIndex, rageDictionarySize)
		if distance == 0 {
			distance = rageDictionarySize
		}

		var length int
		if nibble == 0x7 {
			lengthByte, err := in.Read()
			if err != nil {
				return nil, fmt.Errorf("%w: reading extended match length: %v", ErrTruncated, err)
			}
			length = int(lengthByte) + 1
		} else {
			length = nibble + 2
		}

		if err := sink.Copy(distance, length); err != nil {
			return nil, err
		}
	}

	return sink.Bytes(), nil
}

// ModuledRageCompress/ModuledRageDecompress apply the §4.7 chunking
// wrapper.
func ModuledRageCompress(data []byte, moduleSize int) ([]byte, error) {
	compress, _ := Moduled(CompressRage, DecompressRage, moduleSize, 2)
	return compress(data)
}

func ModuledRageDecompress(data []byte, moduleSize int) ([]byte, error) {
	_, decompress := Moduled(CompressRage, DecompressRage, moduleSize, 2)
	return decompress(data)
}
