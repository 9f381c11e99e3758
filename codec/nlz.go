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

// NLZ's four match sub-encodings, in the priority order the cost
// function and the emitter both walk:
//
//	A: length in [2,4],   distance <= 0x40              -> 1 byte
//	B: length in [5,259], distance <= 0x40              -> 2 bytes
//	C: length in [2,16],  distance <= 0x1000            -> 2 bytes
//	D: length in [17,272],distance <= 0x1000            -> 3 bytes
//
// This corrects a distance-packing truncation bug present in the
// upstream macro this format is grounded on (the high nibble of a
// 12-bit distance was shifted the wrong direction before being written
// to a byte-wide sink, silently losing it) the same way this corpus's
// own design notes call out and fix the Comper decompressor's
// copy-paste defect rather than reproducing it. C's length field uses
// nibble value 0xF as an escape to D instead of a fixed descriptor-bit
// pattern, so the two never collide.
const (
	nlzMaxShortDistance = 0x40
	nlzMaxDistance       = 0x1000
	nlzMaxMatchLength    = 272
)

type nlzCost struct{}

func (nlzCost) Literal() uint { return 1 + 8 }

func (nlzCost) Match(distance, length int) uint {
	switch {
	case length >= 2 && length <= 4 && distance <= nlzMaxShortDistance:
		return 2 + 8
	case length >= 5 && length <= 259 && distance <= nlzMaxShortDistance:
		return 2 + 8 + 8
	case length >= 2 && length <= 16:
		return 2 + 16
	case length >= 17 && length <= nlzMaxMatchLength:
		return 2 + 16 + 8
	default:
		return 0
	}
}

// CompressNLZ encodes data as an NLZ stream: a big-endian uncompressed
// size header, an optimal literal/match token sequence, and a
// terminator match.
func CompressNLZ(data []byte) ([]byte, error) {
	matches, err := parser.Compress(data, 1, nlzMaxMatchLength, nlzMaxDistance, nlzCost{}, nil)
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
		if err := nlzEmit(desc, out, data, m); err != nil {
			return nil, err
		}
	}

	// Terminator: shaped like sub-encoding B, with a distance/length
	// pair ("max short distance", length 4) that real matches never
	// need to use since every input byte is already covered by the
	// tokens above — the output-length counter stops decoding before
	// these trailing bytes are ever read as a token.
	if err := desc.Push(1); err != nil {
		return nil, err
	}
	if err := desc.Push(0); err != nil {
		return nil, err
	}
	if err := out.Write(0xFC); err != nil {
		return nil, err
	}
	if err := out.Write(0x00); err != nil {
		return nil, err
	}

	if err := desc.Flush(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func nlzEmit(desc *bitio.Writer, out ioadapter.WriteSeeker, data []byte, m parser.Match) error {
	if m.Source < 0 {
		if err := desc.Push(0); err != nil {
			return err
		}
		return out.Write(data[m.Destination])
	}

	distance := m.Destination - m.Source
	length := m.Length

	if err := desc.Push(1); err != nil {
		return err
	}

	switch {
	case length <= 4 && distance <= nlzMaxShortDistance:
		if err := desc.Push(0); err != nil {
			return err
		}
		return out.Write(byte((distance-1)&0x3F)<<2 | byte(length-1))

	case length <= 259 && distance <= nlzMaxShortDistance:
		if err := desc.Push(0); err != nil {
			return err
		}
		if err := out.Write(byte((distance-1)&0x3F) << 2); err != nil {
			return err
		}
		return out.Write(byte(length - 4))

	case length <= 16:
		if err := desc.Push(1); err != nil {
			return err
		}
		hi := byte((distance - 1) >> 8 & 0xF)
		if err := out.Write(hi<<4 | byte(length-2)); err != nil {
			return err
		}
		return out.Write(byte((distance - 1) & 0xFF))

	case length <= nlzMaxMatchLength:
		if err := desc.Push(1); err != nil {
			return err
		}
		hi := byte((distance - 1) >> 8 & 0xF)
		if err := out.Write(hi<<4 | 0xF); err != nil {
			return err
		}
		if err := out.Write(byte((distance - 1) & 0xFF)); err != nil {
			return err
		}
		return out.Write(byte(length - 17))

	default:
		return fmt.Errorf("%w: match length %d distance %d is not representable in NLZ", ErrInvalidInput, length, distance)
	}
}

// DecompressNLZ reverses CompressNLZ.
func DecompressNLZ(data []byte) ([]byte, error) {
	in := ioadapter.NewBufferReader(data)
	size, err := in.ReadBE16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading NLZ header: %v", ErrTruncated, err)
	}

	desc := bitio.NewReader(in, bitio.WidthByte, bitio.PositionLow, bitio.EndianBig)
	sink := NewBufferSink()

	for len(sink.Bytes()) < int(size) {
		matchBit, err := desc.Pop()
		if err != nil {
			return nil, fmt.Errorf("%w: reading descriptor bit: %v", ErrTruncated, err)
		}
		if matchBit == 0 {
			b, err := in.Read()
			if err != nil {
				return nil, fmt.Errorf("%w: reading literal: %v", ErrTruncated, err)
			}
			if err := sink.WriteLiteral(b); err != nil {
				return nil, err
			}
			continue
		}

		longBit, err := desc.Pop()
		if err != nil {
			return nil, fmt.Errorf("%w: reading descriptor bit: %v", ErrTruncated, err)
		}

		if longBit == 0 {
			b0, err := in.Read()
			if err != nil {
				return nil, fmt.Errorf("%w: reading short match: %v", ErrTruncated, err)
			}
			distance := int(b0>>2&0x3F) + 1
			low2 := int(b0 & 0x3)
			if low2 != 0 {
				if err := sink.Copy(distance, low2+1); err != nil {
					return nil, err
				}
				continue
			}
			lengthByte, err := in.Read()
			if err != nil {
				return nil, fmt.Errorf("%w: reading short match length: %v", ErrTruncated, err)
			}
			if err := sink.Copy(distance, int(lengthByte)+4); err != nil {
				return nil, err
			}
			continue
		}

		b0, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading long match: %v", ErrTruncated, err)
		}
		b1, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading long match: %v", ErrTruncated, err)
		}
		distance := int(b0>>4&0xF)<<8 | int(b1)
		distance++
		nibble := int(b0 & 0xF)
		if nibble != 0xF {
			if err := sink.Copy(distance, nibble+2); err != nil {
				return nil, err
			}
			continue
		}
		lengthByte, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading long match length: %v", ErrTruncated, err)
		}
		if err := sink.Copy(distance, int(lengthByte)+17); err != nil {
			return nil, err
		}
	}

	return sink.Bytes(), nil
}

// ModuledNLZCompress/ModuledNLZDecompress wrap CompressNLZ/DecompressNLZ
// in the §4.7 moduled chunking scheme, generalized below to every
// format as codec.Moduled.
func ModuledNLZCompress(data []byte, moduleSize, alignment int) ([]byte, error) {
	compress, _ := Moduled(CompressNLZ, DecompressNLZ, moduleSize, alignment)
	return compress(data)
}

func ModuledNLZDecompress(data []byte, moduleSize, alignment int) ([]byte, error) {
	_, decompress := Moduled(CompressNLZ, DecompressNLZ, moduleSize, alignment)
	return decompress(data)
}
