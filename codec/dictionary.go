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

import "io"

// Sink is the decompressor-output abstraction every format decodes a
// token stream into: a place to deposit literal bytes and to copy
// length bytes from distance back.
type Sink interface {
	WriteLiteral(b byte) error
	Copy(distance, length int) error
}

// BufferSink accumulates decompressed output in memory. Copy is a
// trivial forward byte-by-byte copy: since the destination slice grows
// by exactly one element per iteration, a self-overlapping copy
// (distance < length) naturally reproduces a repeating run, the same
// way the iterator-backed specialization of DecompressorOutput does.
type BufferSink struct {
	out []byte
}

// NewBufferSink creates an empty BufferSink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

func (s *BufferSink) WriteLiteral(b byte) error {
	s.out = append(s.out, b)
	return nil
}

func (s *BufferSink) Copy(distance, length int) error {
	if distance <= 0 || distance > len(s.out) {
		return ErrInvalidInput
	}
	for i := 0; i < length; i++ {
		s.out = append(s.out, s.out[len(s.out)-distance])
	}
	return nil
}

// Bytes returns the bytes written so far.
func (s *BufferSink) Bytes() []byte {
	return s.out
}

// StreamSink writes decompressed output directly to an io.Writer,
// keeping only a dictionarySize-byte circular buffer of history instead
// of the whole output in memory.
//
// decompressors/common.h's ostream-backed DecompressorOutput specialization
// oversizes its window by maximumCopyLength-1 bytes and mirrors the wrapped
// prefix into the tail so a copy can be served by one contiguous memcpy
// instead of a wraparound-aware loop. Go's bounds-checked slices gain
// nothing from that trick, so this keeps the window sized to exactly
// dictionarySize and reads through it with an explicit modulo instead —
// behaviorally identical, without the second buffer to keep in sync.
type StreamSink struct {
	w        io.Writer
	ring     []byte
	pos      int
	dictSize int
}

// NewStreamSink creates a StreamSink writing to w, with a dictionarySize
// window pre-filled with filler (the format's conventional padding byte,
// so that a match referencing before the start of real output reads a
// deterministic value instead of garbage).
func NewStreamSink(w io.Writer, dictionarySize int, filler byte) *StreamSink {
	ring := make([]byte, dictionarySize)
	for i := range ring {
		ring[i] = filler
	}
	return &StreamSink{w: w, ring: ring, dictSize: dictionarySize}
}

func (s *StreamSink) store(b byte) {
	s.ring[s.pos] = b
	s.pos++
	if s.pos == s.dictSize {
		s.pos = 0
	}
}

func (s *StreamSink) WriteLiteral(b byte) error {
	if _, err := s.w.Write([]byte{b}); err != nil {
		return err
	}
	s.store(b)
	return nil
}

func (s *StreamSink) Copy(distance, length int) error {
	if distance <= 0 || distance > s.dictSize {
		return ErrInvalidInput
	}

	read := s.pos - distance
	for read < 0 {
		read += s.dictSize
	}

	for i := 0; i < length; i++ {
		b := s.ring[read]
		if _, err := s.w.Write([]byte{b}); err != nil {
			return err
		}
		s.store(b)
		read++
		if read == s.dictSize {
			read = 0
		}
	}
	return nil
}
