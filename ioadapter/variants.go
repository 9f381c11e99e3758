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

package ioadapter

// LengthBoundedReader adds an explicit end-of-region check to a
// ReadSeeker, for formats whose module/sub-chunk size is known up front
// independently of any in-band terminator.
type LengthBoundedReader struct {
	ReadSeeker
	end int64
}

// NewLengthBoundedReader wraps r, treating the next length bytes (from
// r's current position) as the bounded region.
func NewLengthBoundedReader(r ReadSeeker, length int64) *LengthBoundedReader {
	return &LengthBoundedReader{ReadSeeker: r, end: r.Tell() + length}
}

// AtEnd reports whether the bounded region has been fully consumed.
func (l *LengthBoundedReader) AtEnd() bool {
	return l.Tell() >= l.end
}

// SeparatePositionReader maintains an independent cursor over a shared
// ReadSeeker, saving and restoring the shared cursor around every
// operation. This is how a decoder reads a sub-header embedded at a
// fixed offset without disturbing the main descriptor-interleaved
// read position.
type SeparatePositionReader struct {
	shared ReadSeeker
	pos    int64
}

// NewSeparatePositionReader creates a cursor over shared starting at
// shared's current position.
func NewSeparatePositionReader(shared ReadSeeker) *SeparatePositionReader {
	return &SeparatePositionReader{shared: shared, pos: shared.Tell()}
}

func (s *SeparatePositionReader) with(f func() error) error {
	saved := s.shared.Tell()
	s.shared.Seek(s.pos)
	err := f()
	s.pos = s.shared.Tell()
	s.shared.Seek(saved)
	return err
}

func (s *SeparatePositionReader) Read() (byte, error) {
	var v byte
	err := s.with(func() error {
		var readErr error
		v, readErr = s.shared.Read()
		return readErr
	})
	return v, err
}

func (s *SeparatePositionReader) ReadBE16() (uint16, error) {
	var v uint16
	err := s.with(func() error {
		var readErr error
		v, readErr = s.shared.ReadBE16()
		return readErr
	})
	return v, err
}

func (s *SeparatePositionReader) ReadLE16() (uint16, error) {
	var v uint16
	err := s.with(func() error {
		var readErr error
		v, readErr = s.shared.ReadLE16()
		return readErr
	})
	return v, err
}

func (s *SeparatePositionReader) Tell() int64 { return s.pos }

func (s *SeparatePositionReader) Seek(pos int64) { s.pos = pos }

func (s *SeparatePositionReader) Distance(from int64) int64 { return s.pos - from }
