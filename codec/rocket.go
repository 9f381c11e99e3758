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

// Rocket is grounded directly on decompressors/rocket.h: a 0x400-byte
// ring-buffer dictionary addressed by a 16-bit word whose low 10 bits
// hold (dictionary_index - 0x40) mod 0x400 and whose high 6 bits hold
// count-1. A descriptor bit of 1 means literal, 0 means match — the
// opposite convention from NLZ, kept as rocket.h has it rather than
// normalized, since each format's descriptor polarity is its own.
const (
	rocketDictionarySize = 0x400
	rocketMaxMatchLength = 0x40
)

type rocketCost struct{}

func (rocketCost) Literal() uint { return 1 + 8 }

func (rocketCost) Match(distance, length int) uint {
	if distance < 1 || distance > rocketDictionarySize || length < 1 || length > rocketMaxMatchLength {
		return 0
	}
	return 1 + 16
}

// CompressRocket encodes data as a Rocket stream: BE16 uncompressed size,
// BE16 compressed payload size, then the token stream.
func CompressRocket(data []byte) ([]byte, error) {
	matches, err := parser.Compress(data, 1, rocketMaxMatchLength, rocketDictionarySize, rocketCost{}, nil)
	if err != nil {
		return nil, err
	}

	buf := membuf.New(256)
	out := ioadapter.NewBufferWriter(buf)
	if err := out.WriteBE16(uint16(len(data))); err != nil {
		return nil, err
	}

	compressedSizeAt := out.Tell()
	if err := out.WriteBE16(0); err != nil {
		return nil, err
	}
	payloadStart := out.Tell()

	desc := bitio.NewWriter(out, bitio.WidthWord, bitio.TimingBeforePush, bitio.PositionLow, bitio.EndianBig)

	pos := 0
	for _, m := range matches {
		if err := rocketEmit(desc, out, data, m, pos); err != nil {
			return nil, err
		}
		pos += m.Length
	}
	if err := desc.Flush(); err != nil {
		return nil, err
	}

	payloadEnd := out.Tell()
	here := out.Tell()
	out.Seek(compressedSizeAt)
	if err := out.WriteBE16(uint16(payloadEnd - payloadStart)); err != nil {
		return nil, err
	}
	out.Seek(here)

	return out.Bytes(), nil
}

func rocketEmit(desc *bitio.Writer, out ioadapter.WriteSeeker, data []byte, m parser.Match, pos int) error {
	if m.Source < 0 {
		if err := desc.Push(1); err != nil {
			return err
		}
		return out.Write(data[m.Destination])
	}

	distance := m.Destination - m.Source
	length := m.Length
	if distance < 1 || distance > rocketDictionarySize || length < 1 || length > rocketMaxMatchLength {
		return fmt.Errorf("%w: Rocket match distance %d length %d out of range", ErrInvalidInput, distance, length)
	}

	if err := desc.Push(0); err != nil {
		return err
	}

	dictionaryIndex := mod(pos-distance, rocketDictionarySize)
	low10 := mod(dictionaryIndex-0x40, rocketDictionarySize)
	word := uint16(length-1)<<10 | uint16(low10)
	return out.WriteBE16(word)
}

func mod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

// DecompressRocket reverses CompressRocket.
func DecompressRocket(data []byte) ([]byte, error) {
	in := ioadapter.NewBufferReader(data)
	uncompressedSize, err := in.ReadBE16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading Rocket header: %v", ErrTruncated, err)
	}
	compressedSize, err := in.ReadBE16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading Rocket header: %v", ErrTruncated, err)
	}

	inputStart := in.Tell()
	desc := bitio.NewReader(in, bitio.WidthWord, bitio.PositionLow, bitio.EndianBig)
	sink := NewBufferSink()

	for in.Distance(inputStart) < int64(compressedSize) && len(sink.Bytes()) < int(uncompressedSize) {
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

		word, err := in.ReadBE16()
		if err != nil {
			return nil, fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
		}

		dictionaryIndex := mod(int(word)+0x40, rocketDictionarySize)
		count := int(word>>10) + 1
		pos := len(sink.Bytes())
		distance := mod(pos-dictionaryIndex-1, rocketDictionarySize) + 1

		if err := sink.Copy(distance, count); err != nil {
			return nil, err
		}
	}

	return sink.Bytes(), nil
}

// ModuledRocketCompress/ModuledRocketDecompress apply the §4.7 chunking
// wrapper to Rocket, alignment 2 bytes as Rocket's own header fields are
// all 16-bit.
func ModuledRocketCompress(data []byte, moduleSize int) ([]byte, error) {
	compress, _ := Moduled(CompressRocket, DecompressRocket, moduleSize, 2)
	return compress(data)
}

func ModuledRocketDecompress(data []byte, moduleSize int) ([]byte, error) {
	_, decompress := Moduled(CompressRocket, DecompressRocket, moduleSize, 2)
	return decompress(data)
}
