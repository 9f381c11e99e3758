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

// Package bitio packs and unpacks the single-bit descriptor stream every
// format interleaves with its literal/match payload bytes. It has no
// equivalent of clownlzss's BitField C++ template: width, timing,
// position and endianness are runtime fields on one Writer/Reader pair
// instead of compile-time parameters, since Go has no template
// monomorphization to exploit and a handful of branches per Push/Pop
// call is immaterial next to the per-byte I/O they sit beside.
package bitio

import (
	"github.com/clownacy-go/lzss/ioadapter"
)

// Width is the size, in bits, of one descriptor chunk.
type Width int

const (
	WidthByte Width = 8
	WidthWord Width = 16
)

// Timing controls when a chunk's bytes reach the output.
type Timing int

const (
	// TimingBeforePush reserves the chunk's bytes in the output the
	// moment the first bit of a new chunk is pushed, then backpatches
	// them (via Seek) once the chunk fills or Flush is called.
	TimingBeforePush Timing = iota
	// TimingAfterFill never seeks backward: the chunk accumulates
	// in memory and is appended to the output only once full.
	TimingAfterFill
)

// Position controls where a newly pushed/popped bit lands in the chunk.
type Position int

const (
	// PositionLow fills the chunk starting at bit 0, each subsequent
	// bit occupying the next-higher position.
	PositionLow Position = iota
	// PositionHigh fills the chunk starting at its most significant
	// bit, each subsequent bit occupying the next-lower position.
	PositionHigh
)

// Endian controls the byte order a multi-byte chunk is written/read in.
type Endian int

const (
	EndianBig Endian = iota
	EndianLittle
)

// Writer accumulates descriptor bits and flushes them to an
// ioadapter.WriteSeeker in chunks of a fixed width.
type Writer struct {
	out    ioadapter.WriteSeeker
	width  Width
	timing Timing
	pos    Position
	endian Endian

	chunk      uint32
	filled     int
	reservedAt int64
}

// NewWriter creates a descriptor-bit writer over out.
func NewWriter(out ioadapter.WriteSeeker, width Width, timing Timing, pos Position, endian Endian) *Writer {
	return &Writer{out: out, width: width, timing: timing, pos: pos, endian: endian}
}

// Push packs the low bit of bit into the current chunk, flushing the
// chunk to out once it fills.
func (w *Writer) Push(bit uint) error {
	if w.filled == 0 && w.timing == TimingBeforePush {
		w.reservedAt = w.out.Tell()
		if err := w.reserve(); err != nil {
			return err
		}
	}

	bit &= 1
	if w.pos == PositionHigh {
		w.chunk = (w.chunk << 1) | uint32(bit)
	} else {
		w.chunk |= uint32(bit) << uint(w.filled)
	}
	w.filled++

	if w.filled == int(w.width) {
		return w.flush()
	}
	return nil
}

func (w *Writer) reserve() error {
	switch w.width {
	case WidthWord:
		return w.out.WriteBE16(0)
	default:
		return w.out.Write(0)
	}
}

func (w *Writer) flush() error {
	chunk := w.chunk
	w.chunk = 0
	w.filled = 0

	if w.timing == TimingBeforePush {
		here := w.out.Tell()
		w.out.Seek(w.reservedAt)
		if err := w.writeChunk(chunk); err != nil {
			return err
		}
		w.out.Seek(here)
		return nil
	}

	return w.writeChunk(chunk)
}

func (w *Writer) writeChunk(chunk uint32) error {
	if w.width == WidthWord {
		if w.endian == EndianLittle {
			return w.out.WriteLE16(uint16(chunk))
		}
		return w.out.WriteBE16(uint16(chunk))
	}
	return w.out.Write(byte(chunk))
}

// Flush pads the in-progress chunk with zero bits and emits it, if any
// bits have been pushed since the last full chunk. It is a no-op when
// called on a chunk boundary.
func (w *Writer) Flush() error {
	if w.filled == 0 {
		return nil
	}

	for w.filled < int(w.width) {
		if w.pos == PositionHigh {
			w.chunk <<= 1
		}
		w.filled++
	}

	if w.timing == TimingBeforePush {
		here := w.out.Tell()
		w.out.Seek(w.reservedAt)
		chunk := w.chunk
		w.chunk, w.filled = 0, 0
		if err := w.writeChunk(chunk); err != nil {
			return err
		}
		w.out.Seek(here)
		return nil
	}

	chunk := w.chunk
	w.chunk, w.filled = 0, 0
	return w.writeChunk(chunk)
}

// Reader unpacks descriptor bits from an ioadapter.ReadSeeker in chunks
// of a fixed width, pulling a new chunk in whenever the current one is
// exhausted.
type Reader struct {
	in     ioadapter.ReadSeeker
	width  Width
	pos    Position
	endian Endian

	chunk    uint32
	consumed int
}

// NewReader creates a descriptor-bit reader over in.
func NewReader(in ioadapter.ReadSeeker, width Width, pos Position, endian Endian) *Reader {
	return &Reader{in: in, width: width, pos: pos, endian: endian}
}

// Pop returns the next descriptor bit (0 or 1), pulling in a fresh chunk
// from the underlying reader whenever the previous one is exhausted.
func (r *Reader) Pop() (uint, error) {
	if r.consumed == 0 {
		chunk, err := r.readChunk()
		if err != nil {
			return 0, err
		}
		r.chunk = chunk
	}

	var bit uint
	if r.pos == PositionHigh {
		bit = uint((r.chunk >> uint(int(r.width)-1-r.consumed)) & 1)
	} else {
		bit = uint((r.chunk >> uint(r.consumed)) & 1)
	}

	r.consumed++
	if r.consumed == int(r.width) {
		r.consumed = 0
	}
	return bit, nil
}

func (r *Reader) readChunk() (uint32, error) {
	if r.width == WidthWord {
		var v uint16
		var err error
		if r.endian == EndianLittle {
			v, err = r.in.ReadLE16()
		} else {
			v, err = r.in.ReadBE16()
		}
		return uint32(v), err
	}
	v, err := r.in.Read()
	return uint32(v), err
}
