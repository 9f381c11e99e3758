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

// Package ioadapter provides the byte-oriented I/O adapters that every
// codec reads and writes through: a buffer-backed random-access variant
// and a stream-backed variant behind the same two interfaces, so a codec
// written against ReadSeeker/WriteSeeker never needs to know which one
// it was handed.
package ioadapter

import (
	"errors"
	"io"

	"github.com/clownacy-go/lzss/internal/membuf"
)

// ErrSeekUnsupported describes a stream adapter whose underlying
// io.Reader/io.Writer does not also implement io.Seeker. Seek has no
// error result and ignores the request in that case, so no function in
// this package returns this error.
var ErrSeekUnsupported = errors.New("ioadapter: underlying stream is not seekable")

// ReadSeeker is the read side of the byte I/O contract every decompressor
// is written against.
type ReadSeeker interface {
	Read() (byte, error)
	ReadBE16() (uint16, error)
	ReadLE16() (uint16, error)
	Tell() int64
	Seek(pos int64)
	Distance(from int64) int64
}

// WriteSeeker is the write side of the byte I/O contract every compressor
// is written against.
type WriteSeeker interface {
	Write(b byte) error
	WriteBE16(v uint16) error
	WriteLE16(v uint16) error
	Fill(b byte, count int) error
	Tell() int64
	Seek(pos int64)
	Distance(from int64) int64
}

// BufferReader is a random-access ReadSeeker over an in-memory slice.
type BufferReader struct {
	data []byte
	pos  int64
}

// NewBufferReader wraps data for random-access reading.
func NewBufferReader(data []byte) *BufferReader {
	return &BufferReader{data: data}
}

func (r *BufferReader) Read() (byte, error) {
	if r.pos < 0 || r.pos >= int64(len(r.data)) {
		return 0, io.ErrUnexpectedEOF
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *BufferReader) ReadBE16() (uint16, error) {
	hi, err := r.Read()
	if err != nil {
		return 0, err
	}
	lo, err := r.Read()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (r *BufferReader) ReadLE16() (uint16, error) {
	lo, err := r.Read()
	if err != nil {
		return 0, err
	}
	hi, err := r.Read()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (r *BufferReader) Tell() int64 { return r.pos }

func (r *BufferReader) Seek(pos int64) { r.pos = pos }

func (r *BufferReader) Distance(from int64) int64 { return r.pos - from }

// AtEnd reports whether every byte of the backing slice has been read.
// Unlike NewLengthBoundedReader, this reflects the buffer's own extent,
// not an externally imposed sub-range.
func (r *BufferReader) AtEnd() bool { return r.pos >= int64(len(r.data)) }

// BufferWriter is a random-access WriteSeeker over a membuf.Buffer. Writes
// at a position before the buffer's current length overwrite in place
// (this is how a reserved header field gets backpatched); writes at or
// past it append and grow the buffer.
type BufferWriter struct {
	buf *membuf.Buffer
	pos int64
}

// NewBufferWriter wraps buf for random-access writing, starting at buf's
// current length.
func NewBufferWriter(buf *membuf.Buffer) *BufferWriter {
	return &BufferWriter{buf: buf, pos: int64(buf.Len())}
}

func (w *BufferWriter) Write(b byte) error {
	if w.pos < int64(w.buf.Len()) {
		w.buf.SetAt(int(w.pos), b)
	} else if err := w.buf.WriteByte(b); err != nil {
		return err
	}
	w.pos++
	return nil
}

func (w *BufferWriter) WriteBE16(v uint16) error {
	if err := w.Write(byte(v >> 8)); err != nil {
		return err
	}
	return w.Write(byte(v))
}

func (w *BufferWriter) WriteLE16(v uint16) error {
	if err := w.Write(byte(v)); err != nil {
		return err
	}
	return w.Write(byte(v >> 8))
}

func (w *BufferWriter) Fill(b byte, count int) error {
	for i := 0; i < count; i++ {
		if err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

func (w *BufferWriter) Tell() int64 { return w.pos }

func (w *BufferWriter) Seek(pos int64) { w.pos = pos }

func (w *BufferWriter) Distance(from int64) int64 { return w.pos - from }

// Bytes returns the buffer's current contents.
func (w *BufferWriter) Bytes() []byte { return w.buf.Bytes() }
