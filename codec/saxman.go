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

// Saxman is the classic Okumura-style ring-buffer LZSS that
// decompressors/common.h's mirroring trick ("a lovely little trick...
// borrowed from Okumura's LZSS decompressor") is written against: a
// 0x1000-byte dictionary, 12-bit ring position, 4-bit length field
// (length-3, so length in [3,18]). The dictionary's pre-fill byte is
// the 0x20 (space) §4.6 names as the conventional filler for text-era
// formats.
const (
	saxmanDictionarySize = 0x1000
	saxmanMaxMatchLength = 18
	saxmanFillerByte     = 0x20
)

type saxmanCost struct{}

func (saxmanCost) Literal() uint { return 1 + 8 }

func (saxmanCost) Match(distance, length int) uint {
	if distance < 1 || distance > saxmanDictionarySize || length < 3 || length > saxmanMaxMatchLength {
		return 0
	}
	return 1 + 16
}

// CompressSaxman encodes data as a Saxman stream with a BE16
// uncompressed-size header.
func CompressSaxman(data []byte) ([]byte, error) {
	payload, err := saxmanCompressBody(data)
	if err != nil {
		return nil, err
	}

	buf := membuf.New(256)
	out := ioadapter.NewBufferWriter(buf)
	if err := out.WriteBE16(uint16(len(data))); err != nil {
		return nil, err
	}
	for _, b := range payload {
		if err := out.Write(b); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

// DecompressSaxman reverses CompressSaxman.
func DecompressSaxman(data []byte) ([]byte, error) {
	in := ioadapter.NewBufferReader(data)
	size, err := in.ReadBE16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading Saxman header: %v", ErrTruncated, err)
	}
	return saxmanDecompressBody(in, int(size))
}

// CompressSaxmanNoHeader is CompressSaxman without the size header: the
// caller is expected to already know (or not need) the uncompressed
// size, and decoding instead runs until the input is exhausted.
func CompressSaxmanNoHeader(data []byte) ([]byte, error) {
	return saxmanCompressBody(data)
}

// DecompressSaxmanNoHeader reverses CompressSaxmanNoHeader, decoding
// until the compressed buffer is consumed rather than until a
// header-declared byte count is reached. Any error while decoding a
// token (such as zero pad bits read as a match whose payload bytes are
// missing) also ends decoding: the bytes decoded so far are returned
// with a nil error, and an empty input decodes to an empty result.
func DecompressSaxmanNoHeader(data []byte) ([]byte, error) {
	in := ioadapter.NewBufferReader(data)
	return saxmanDecompressUntilEOF(in)
}

func saxmanCompressBody(data []byte) ([]byte, error) {
	matches, err := parser.Compress(data, 1, saxmanMaxMatchLength, saxmanDictionarySize, saxmanCost{}, nil)
	if err != nil {
		return nil, err
	}

	buf := membuf.New(256)
	out := ioadapter.NewBufferWriter(buf)
	desc := bitio.NewWriter(out, bitio.WidthByte, bitio.TimingBeforePush, bitio.PositionLow, bitio.EndianBig)

	pos := 0
	for _, m := range matches {
		if err := saxmanEmit(desc, out, data, m, pos); err != nil {
			return nil, err
		}
		pos += m.Length
	}
	if err := desc.Flush(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func saxmanEmit(desc *bitio.Writer, out ioadapter.WriteSeeker, data []byte, m parser.Match, pos int) error {
	if m.Source < 0 {
		if err := desc.Push(1); err != nil {
			return err
		}
		return out.Write(data[m.Destination])
	}

	distance := m.Destination - m.Source
	length := m.Length
	if distance < 1 || distance > saxmanDictionarySize || length < 3 || length > saxmanMaxMatchLength {
		return fmt.Errorf("%w: Saxman match distance %d length %d out of range", ErrInvalidInput, distance, length)
	}

	if err := desc.Push(0); err != nil {
		return err
	}

	ringIndex := mod(pos-distance, saxmanDictionarySize)
	if err := out.Write(byte(ringIndex & 0xFF)); err != nil {
		return err
	}
	return out.Write(byte(ringIndex>>8&0xF) | byte(length-3)<<4)
}

func saxmanDecompressBody(in *ioadapter.BufferReader, size int) ([]byte, error) {
	desc := bitio.NewReader(in, bitio.WidthByte, bitio.PositionLow, bitio.EndianBig)
	sink := NewBufferSink()

	for len(sink.Bytes()) < size {
		if err := saxmanStep(desc, in, sink); err != nil {
			return nil, err
		}
	}
	return sink.Bytes(), nil
}

func saxmanDecompressUntilEOF(in *ioadapter.BufferReader) ([]byte, error) {
	desc := bitio.NewReader(in, bitio.WidthByte, bitio.PositionLow, bitio.EndianBig)
	sink := NewBufferSink()

	for !in.AtEnd() {
		if err := saxmanStep(desc, in, sink); err != nil {
			break
		}
	}
	return sink.Bytes(), nil
}

func saxmanStep(desc *bitio.Reader, in *ioadapter.BufferReader, sink *BufferSink) error {
	bit, err := desc.Pop()
	if err != nil {
		return fmt.Errorf("%w: reading descriptor bit: %v", ErrTruncated, err)
	}

	if bit != 0 {
		b, err := in.Read()
		if err != nil {
			return fmt.Errorf("%w: reading literal: %v", ErrTruncated, err)
		}
		return sink.WriteLiteral(b)
	}

	b0, err := in.Read()
	if err != nil {
		return fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
	}
	b1, err := in.Read()
	if err != nil {
		return fmt.Errorf("%w: reading match: %v", ErrTruncated, err)
	}

	ringIndex := int(b0) | int(b1&0xF)<<8
	length := int(b1>>4) + 3
	pos := len(sink.Bytes())
	distance := mod(pos-ringIndex, saxmanDictionarySize)
	if distance == 0 {
		distance = saxmanDictionarySize
	}

	// Ring slots not yet written since the start of output hold the
	// filler byte.
	for length > 0 && distance > len(sink.Bytes()) {
		if err := sink.WriteLiteral(saxmanFillerByte); err != nil {
			return err
		}
		length--
	}
	if length == 0 {
		return nil
	}
	return sink.Copy(distance, length)
}

// ModuledSaxmanCompress/ModuledSaxmanDecompress apply the §4.7 chunking
// wrapper.
func ModuledSaxmanCompress(data []byte, moduleSize int) ([]byte, error) {
	compress, _ := Moduled(CompressSaxman, DecompressSaxman, moduleSize, 2)
	return compress(data)
}

func ModuledSaxmanDecompress(data []byte, moduleSize int) ([]byte, error) {
	_, decompress := Moduled(CompressSaxman, DecompressSaxman, moduleSize, 2)
	return decompress(data)
}
