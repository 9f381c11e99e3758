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

// Kosinski descriptor bits are popped from a 16-bit, little-endian,
// low-bit-first word (two plain bytes, each consumed LSB to MSB, which
// is what PositionLow/EndianLittle gives on a WidthWord chunk). A
// literal is flagged by bit 1. A match is flagged by bit 0, and is then
// disambiguated by a second descriptor bit:
//
//   - inline (1 payload byte): two more descriptor bits give length-2 in
//     [0,3] (so length in [2,5]); the single payload byte gives
//     distance as 0x100 minus the byte (so distance in [1,256]).
//   - full (2-3 payload bytes): two payload bytes LB, HB. The low 3 bits of HB
//     give length-2 in [0,6] (length in [2,8]); a value of 7 there
//     escapes to an extra length byte (length = that byte + 1, i.e. up
//     to 256). distance is 0x2000 minus the 13-bit value packed across
//     HB's top 5 bits and LB (so distance in [1,0x2000]).
//
// This is reconstructed from the public description of the format (no
// Kosinski source file survived into original_source/), so a BE16
// uncompressed-size header is added for unambiguous standalone
// round-tripping, where the historical format instead relies on an
// externally-known size.
const (
	kosinskiMaxDistance     = 0x2000
	kosinskiInlineMaxDist   = 0x100
	kosinskiInlineMaxLen    = 5
	kosinskiFullShortMaxLen = 8
	kosinskiMaxMatchLength  = 256
)

type kosinskiCost struct{}

func (kosinskiCost) Literal() uint { return 1 + 8 }

func (kosinskiCost) Match(distance, length int) uint {
	switch {
	case length >= 2 && length <= kosinskiInlineMaxLen && distance >= 1 && distance <= kosinskiInlineMaxDist:
		return 2 + 2 + 8
	case length >= 2 && length <= kosinskiFullShortMaxLen && distance >= 1 && distance <= kosinskiMaxDistance:
		return 2 + 16
	case length > kosinskiFullShortMaxLen && length <= kosinskiMaxMatchLength && distance >= 1 && distance <= kosinskiMaxDistance:
		return 2 + 16 + 8
	default:
		return 0
	}
}

// CompressKosinski encodes data as a Kosinski stream.
func CompressKosinski(data []byte) ([]byte, error) {
	matches, err := parser.Compress(data, 1, kosinskiMaxMatchLength, kosinskiMaxDistance, kosinskiCost{}, nil)
	if err != nil {
		return nil, err
	}

	buf := membuf.New(256)
	out := ioadapter.NewBufferWriter(buf)
	if err := out.WriteBE16(uint16(len(data))); err != nil {
		return nil, err
	}

	desc := bitio.NewWriter(out, bitio.WidthWord, bitio.TimingBeforePush, bitio.PositionLow, bitio.EndianLittle)

	for _, m := range matches {
		if err := kosinskiEmit(desc, out, data, m); err != nil {
			return nil, err
		}
	}
	if err := desc.Flush(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func kosinskiEmit(desc *bitio.Writer, out ioadapter.WriteSeeker, data []byte, m parser.Match) error {
	if m.Source < 0 {
		if err := desc.Push(1); err != nil {
			return err
		}
		return out.Write(data[m.Destination])
	}

	distance := m.Destination - m.Source
	length := m.Length

	if err := desc.Push(0); err != nil {
		return err
	}

	if length <= kosinskiInlineMaxLen && distance <= kosinskiInlineMaxDist {
		if err := desc.Push(0); err != nil {
			return err
		}
		count := length - 2
		if err := desc.Push(uint(count >> 1 & 1)); err != nil {
			return err
		}
		if err := desc.Push(uint(count & 1)); err != nil {
			return err
		}
		return out.Write(byte(kosinskiInlineMaxDist - distance))
	}

	if err := desc.Push(1); err != nil {
		return err
	}

	raw := kosinskiMaxDistance - distance
	lb := byte(raw & 0xFF)
	hbTop := byte(raw >> 5 & 0xF8)

	if length <= kosinskiFullShortMaxLen {
		if err := out.Write(lb); err != nil {
			return err
		}
		return out.Write(hbTop | byte(length-2))
	}

	if length > kosinskiMaxMatchLength {
		return fmt.Errorf("%w: Kosinski match length %d exceeds the 256-byte cap", ErrInvalidInput, length)
	}
	if err := out.Write(lb); err != nil {
		return err
	}
	if err := out.Write(hbTop | 0x7); err != nil {
		return err
	}
	return out.Write(byte(length - 1))
}

// DecompressKosinski reverses CompressKosinski.
func DecompressKosinski(data []byte) ([]byte, error) {
	in := ioadapter.NewBufferReader(data)
	size, err := in.ReadBE16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading Kosinski header: %v", ErrTruncated, err)
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

		sub, err := desc.Pop()
		if err != nil {
			return nil, fmt.Errorf("%w: reading descriptor bit: %v", ErrTruncated, err)
		}

		if sub == 0 {
			hi, err := desc.Pop()
			if err != nil {
				return nil, fmt.Errorf("%w: reading descriptor bit: %v", ErrTruncated, err)
			}
			lo, err := desc.Pop()
			if err != nil {
				return nil, fmt.Errorf("%w: reading descriptor bit: %v", ErrTruncated, err)
			}
			b, err := in.Read()
			if err != nil {
				return nil, fmt.Errorf("%w: reading inline match: %v", ErrTruncated, err)
			}
			length := int(hi)<<1 | int(lo) + 2
			distance := kosinskiInlineMaxDist - int(b)
			if err := sink.Copy(distance, length); err != nil {
				return nil, err
			}
			continue
		}

		lb, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading full match: %v", ErrTruncated, err)
		}
		hb, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading full match: %v", ErrTruncated, err)
		}

		raw := int(hb&0xF8)<<5 | int(lb)
		distance := kosinskiMaxDistance - raw
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

// ModuledKosinskiCompress/ModuledKosinskiDecompress apply the §4.7
// chunking wrapper.
func ModuledKosinskiCompress(data []byte, moduleSize int) ([]byte, error) {
	compress, _ := Moduled(CompressKosinski, DecompressKosinski, moduleSize, 2)
	return compress(data)
}

func ModuledKosinskiDecompress(data []byte, moduleSize int) ([]byte, error) {
	_, decompress := Moduled(CompressKosinski, DecompressKosinski, moduleSize, 2)
	return decompress(data)
}
