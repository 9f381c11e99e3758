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

// Comper operates on 16-bit values, not bytes: decompressors/comper.h's
// macro body is the reconstruction target here, not the misleadingly
// named CLOWNLZSS_SAXMAN_DECOMPRESS wrapper it was invoked through (see
// §9's design note) — a literal is a 2-byte word, and a match's offset
// and count bytes are each pre-multiplied/post-multiplied by 2, so both
// distance and length are counted in words by this package and
// converted to bytes only at the wire boundary.
//
// A count byte of 0 is the terminator, which is why real matches only
// ever carry a count byte in [1,255] (length in words in [2,256]).
const (
	comperMaxDistanceWords = 256
	comperMaxLengthWords   = 256
)

type comperCost struct{}

func (comperCost) Literal() uint { return 1 + 16 }

func (comperCost) Match(distance, length int) uint {
	if distance < 1 || distance > comperMaxDistanceWords || length < 2 || length > comperMaxLengthWords {
		return 0
	}
	return 1 + 8 + 8
}

// CompressComper encodes data as a Comper stream. len(data) must be
// even: Comper has no notion of a half-word literal.
func CompressComper(data []byte) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: Comper input length %d is not a multiple of 2", ErrInvalidInput, len(data))
	}

	matches, err := parser.Compress(data, 2, comperMaxLengthWords, comperMaxDistanceWords, comperCost{}, nil)
	if err != nil {
		return nil, err
	}

	buf := membuf.New(256)
	out := ioadapter.NewBufferWriter(buf)
	desc := bitio.NewWriter(out, bitio.WidthWord, bitio.TimingBeforePush, bitio.PositionHigh, bitio.EndianBig)

	for _, m := range matches {
		if err := comperEmit(desc, out, data, m); err != nil {
			return nil, err
		}
	}

	// Terminator: a match descriptor bit with a zero count byte, which
	// is otherwise unreachable since real matches always carry a count
	// byte of at least 1.
	if err := desc.Push(1); err != nil {
		return nil, err
	}
	if err := out.Write(0x00); err != nil {
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

func comperEmit(desc *bitio.Writer, out ioadapter.WriteSeeker, data []byte, m parser.Match) error {
	if m.Source < 0 {
		if err := desc.Push(0); err != nil {
			return err
		}
		off := m.Destination * 2
		if err := out.Write(data[off]); err != nil {
			return err
		}
		return out.Write(data[off+1])
	}

	distanceWords := m.Destination - m.Source
	lengthWords := m.Length
	if distanceWords < 1 || distanceWords > comperMaxDistanceWords || lengthWords < 2 || lengthWords > comperMaxLengthWords {
		return fmt.Errorf("%w: Comper match distance %d length %d out of range", ErrInvalidInput, distanceWords, lengthWords)
	}

	if err := desc.Push(1); err != nil {
		return err
	}
	if err := out.Write(byte(comperMaxDistanceWords - distanceWords)); err != nil {
		return err
	}
	return out.Write(byte(lengthWords - 1))
}

// DecompressComper reverses CompressComper. There is no size header in
// this format: decoding runs until the terminator match is read.
func DecompressComper(data []byte) ([]byte, error) {
	in := ioadapter.NewBufferReader(data)
	desc := bitio.NewReader(in, bitio.WidthWord, bitio.PositionHigh, bitio.EndianBig)
	sink := NewBufferSink()

	for {
		bit, err := desc.Pop()
		if err != nil {
			return nil, fmt.Errorf("%w: reading descriptor bit: %v", ErrTruncated, err)
		}

		if bit == 0 {
			hi, err := in.Read()
			if err != nil {
				return nil, fmt.Errorf("%w: reading literal: %v", ErrTruncated, err)
			}
			lo, err := in.Read()
			if err != nil {
				return nil, fmt.Errorf("%w: reading literal: %v", ErrTruncated, err)
			}
			if err := sink.WriteLiteral(hi); err != nil {
				return nil, err
			}
			if err := sink.WriteLiteral(lo); err != nil {
				return nil, err
			}
			continue
		}

		offsetByte, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
		}
		countByte, err := in.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
		}

		if countByte == 0 {
			break
		}

		distance := (comperMaxDistanceWords - int(offsetByte)) * 2
		length := (int(countByte) + 1) * 2
		if err := sink.Copy(distance, length); err != nil {
			return nil, err
		}
	}

	return sink.Bytes(), nil
}

// ModuledComperCompress/ModuledComperDecompress apply the §4.7 chunking
// wrapper, alignment 2 bytes to keep every module's module-size field
// (and the next module's start) word-aligned like Comper's payload.
func ModuledComperCompress(data []byte, moduleSize int) ([]byte, error) {
	compress, _ := Moduled(CompressComper, DecompressComper, moduleSize, 2)
	return compress(data)
}

func ModuledComperDecompress(data []byte, moduleSize int) ([]byte, error) {
	_, decompress := Moduled(CompressComper, DecompressComper, moduleSize, 2)
	return decompress(data)
}
