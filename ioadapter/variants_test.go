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

package ioadapter_test

import (
	"testing"

	"github.com/clownacy-go/lzss/ioadapter"
)

func TestLengthBoundedReaderAtEnd(t *testing.T) {
	t.Parallel()

	r := ioadapter.NewBufferReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	bounded := ioadapter.NewLengthBoundedReader(r, 3)

	for i := 0; i < 3; i++ {
		if bounded.AtEnd() {
			t.Fatalf("AtEnd() = true after %d bytes, want false", i)
		}
		if _, err := bounded.Read(); err != nil {
			t.Fatalf("Read() at index %d: %v", i, err)
		}
	}

	if !bounded.AtEnd() {
		t.Error("AtEnd() = false after consuming the full bounded region, want true")
	}

	// The underlying reader is untouched beyond the bound: a second
	// LengthBoundedReader starting where the first left off can still
	// read the remaining bytes.
	rest := ioadapter.NewLengthBoundedReader(r, 2)
	b, err := rest.Read()
	if err != nil || b != 0x04 {
		t.Fatalf("Read() past bound = %d, %v, want 0x04, nil", b, err)
	}
}

func TestSeparatePositionReaderDoesNotDisturbSharedCursor(t *testing.T) {
	t.Parallel()

	shared := ioadapter.NewBufferReader([]byte{0x10, 0x20, 0x30, 0x40, 0x50, 0x60})

	// Advance the shared cursor to simulate a descriptor-interleaved read
	// already in progress.
	if _, err := shared.Read(); err != nil {
		t.Fatalf("priming Read: %v", err)
	}
	primedPos := shared.Tell()

	side := ioadapter.NewSeparatePositionReader(shared)
	side.Seek(4)

	b, err := side.Read()
	if err != nil || b != 0x50 {
		t.Fatalf("side.Read() = %d, %v, want 0x50, nil", b, err)
	}

	if shared.Tell() != primedPos {
		t.Errorf("shared cursor moved to %d, want unchanged at %d", shared.Tell(), primedPos)
	}

	if side.Tell() != 5 {
		t.Errorf("side.Tell() = %d, want 5", side.Tell())
	}

	// The shared cursor can still continue exactly where it left off.
	b, err = shared.Read()
	if err != nil || b != 0x20 {
		t.Fatalf("shared.Read() after side read = %d, %v, want 0x20, nil", b, err)
	}
}

func TestSeparatePositionReaderWideReads(t *testing.T) {
	t.Parallel()

	shared := ioadapter.NewBufferReader([]byte{0x00, 0x01, 0x02, 0xAB, 0xCD, 0xEF, 0x12})
	side := ioadapter.NewSeparatePositionReader(shared)
	side.Seek(3)

	be16, err := side.ReadBE16()
	if err != nil || be16 != 0xABCD {
		t.Fatalf("ReadBE16() = %#x, %v, want 0xABCD, nil", be16, err)
	}

	le16, err := side.ReadLE16()
	if err != nil || le16 != 0x12EF {
		t.Fatalf("ReadLE16() = %#x, %v, want 0x12EF, nil", le16, err)
	}

	if d := side.Distance(3); d != 4 {
		t.Errorf("Distance(3) = %d, want 4", d)
	}
}
