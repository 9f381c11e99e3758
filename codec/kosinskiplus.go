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

// Kosinski+ revises Kosinski's length encoding: rather than splitting
// matches into an inline 2-bit-length sub-encoding and a full 2-3 byte
// encoding, every match always carries the same 2-byte distance/length
// shape (dropping the inline case entirely), and the descriptor chunks
// at byte (not word) granularity. This is the "revised length encoding"
// §6's format table credits it with: one fewer special case than
// Kosinski, at the cost of 1 extra payload byte on what Kosinski would
// have encoded as an inline match.
const (
	kosinskiPlusMaxDistance    = 0x2000
	kosinskiPlusShortMaxLen    = 8
	kosinskiPlusMaxMatchLength = 256
)

type kosinskiPlusCost struct{}

func (kosinskiPlusCost) Literal() uint { return 1 + 8 }

func (kosinskiPlusCost) Match(distance, length int) uint {
	if distance < 1 || distance > kosinskiPlusMaxDistance || length < 2 || length > kosinskiPlusMaxMatchLength {
		return 0
	}
	if length <= kosinskiPlusShortMaxLen {
		return 1 + 16
	}
	return 1 + 16 + 8
}

// CompressKosinskiPlus encodes data as a Kosinski+ stream.
func CompressKosinskiPlus(data []byte) ([]byte, error) {
	matches, err := parser.Compress(data, 1, kosinskiPlusMaxMatchLength, kosinskiPlusMaxDistance, kosinskiPlusCost{}, nil)
	if err != nil {
		return nil, err
	}

	buf := membuf.New(256)
	out := ioadapter.NewBufferWriter(buf)
	if err := out.WriteBE16(uint16(len(data))); err != nil {
		return nil, err
	}

	desc := bitio.NewWriter(out, bitio.WidthByte, bitio.TimingBeforePush, bitio.PositionLow, bitio.EndianBig)

	for _, m := range matches {
		if err := kosinskiPlusEmit(desc, out, data, m); err != nil {
			return nil, err
		}
	}
	if err := desc.Flush(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func kosinskiPlusEmit(desc *bitio.Writer, out ioadapter.WriteSeeker, data []byte, m parser.Match) error {
	if m.Source < 0 {
		if err := desc.Push(1); err != nil {
			return err
		}
		return out.Write(data[m.Destination])
	}

	distance := m.Destination - m.Source
	length := m.Length
	if distance < 1 || distance > kosinskiPlusMaxDistance || length < 2 || length > kosinskiPlusMaxMatchLength {
		return fmt.Errorf("%w: Kosinski+ match distance %d length %d out of range", ErrInvalidInput, distance, length)
	}

	if err := desc.Push(0); err != nil {
		return err
	}

	raw := kosinskiPlusMaxDistance - distance
	lb := byte(raw & 0xFF)
	hbTop := byte(raw >> 5 & 0xF8)

	if length <= kosinskiPlusShortMaxLen {
		if err := out.Write(lb); err != nil {
			return err
		}
		return out.Write(hbTop | byte(length-2))
	}

	if err := out.Write(lb); err != nil {
		return err
	}
	if err := out.Write(hbTop | 0x7); err != nil {
		return err
	}
	return out.Write(byte(length - 1))
}

// DecompressKosinskiPlus reverses CompressKosinskiPlus.
func DecompressKosinskiPlus(data []byte) ([]byte, error) {
	in := ioadapter.NewBufferReader(data)
	size, err := in.ReadBE16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading Kosinski+ header: %v", ErrTruncated, err)
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

		lb, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
		}
		hb, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
		}

		raw := int(hb&0xF8)<<5 | int(lb)
		distance := kosinskiPlusMaxDistance - raw
		nibble := int(hb & 0x7)

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

// ModuledKosinskiPlusCompress/ModuledKosinskiPlusDecompress apply the
// §4.7 chunking wrapper.
func ModuledKosinskiPlusCompress(data []byte, moduleSize int) ([]byte, error) {
	compress, _ := Moduled(CompressKosinskiPlus, DecompressKosinskiPlus, moduleSize, 2)
	return compress(data)
}

func ModuledKosinskiPlusDecompress(data []byte, moduleSize int) ([]byte, error) {
	_, decompress := Moduled(CompressKosinskiPlus, DecompressKosinskiPlus, moduleSize, 2)
	return decompress(data)
}
