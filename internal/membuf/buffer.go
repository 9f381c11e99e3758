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

// Package membuf implements the growable byte sink every compressor writes
// its output into, grounded on clownlzss's MemoryStream (memory_stream.c).
package membuf

// defaultGrowth is used when a non-positive growth increment is requested,
// which would otherwise make ensureCapacity divide by zero (growth 0) or
// compute a capacity below the bytes it must hold (negative growth).
const defaultGrowth = 256

// Buffer is a growable byte sink. Unlike MemoryStream's malloc/realloc pair,
// there is no explicit destroy: Go's garbage collector reclaims the backing
// array once the last reference to it (including slices returned by Bytes)
// is gone.
type Buffer struct {
	data   []byte
	growth int
}

// New creates an empty Buffer that grows its backing array by growth bytes
// (rounded up) whenever it runs out of capacity.
func New(growth int) *Buffer {
	return &Buffer{growth: normalizeGrowth(growth)}
}

// NewWithBacking creates a Buffer over caller-supplied backing storage,
// treating it as already containing len(backing) bytes of content.
func NewWithBacking(backing []byte, growth int) *Buffer {
	return &Buffer{data: backing, growth: normalizeGrowth(growth)}
}

func normalizeGrowth(growth int) int {
	if growth <= 0 {
		return defaultGrowth
	}
	return growth
}

// ensureCapacity grows the backing array, if needed, to at least needed
// bytes, rounding up to the next multiple of the growth increment — the
// same policy as MemoryStream_WriteBytes, never a geometric multiplier.
func (b *Buffer) ensureCapacity(needed int) {
	if needed <= cap(b.data) {
		return
	}

	newCap := needed + b.growth - (needed % b.growth)
	newData := make([]byte, len(b.data), newCap)
	copy(newData, b.data)
	b.data = newData
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(v byte) error {
	b.ensureCapacity(len(b.data) + 1)
	b.data = append(b.data, v)
	return nil
}

// Write appends p in its entirety.
func (b *Buffer) Write(p []byte) (int, error) {
	b.ensureCapacity(len(b.data) + len(p))
	b.data = append(b.data, p...)
	return len(p), nil
}

// SetAt overwrites the byte already written at pos. pos must be < Len();
// this is how the bit-field packer and per-format headers backpatch a
// reserved field once its final value is known.
func (b *Buffer) SetAt(pos int, v byte) {
	b.data[pos] = v
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the backing slice. The caller owns the returned slice from
// this point on; further writes to the Buffer may or may not be visible
// through it, mirroring MemoryStream_GetBuffer's pointer handoff.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}
