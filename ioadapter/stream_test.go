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
	"bytes"
	"testing"

	"github.com/clownacy-go/lzss/ioadapter"
)

func TestStreamReaderSequentialReads(t *testing.T) {
	t.Parallel()

	r := ioadapter.NewStreamReader(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05}))

	b, err := r.Read()
	if err != nil || b != 0x01 {
		t.Fatalf("Read() = %d, %v, want 0x01, nil", b, err)
	}

	be16, err := r.ReadBE16()
	if err != nil || be16 != 0x0203 {
		t.Fatalf("ReadBE16() = %#x, %v, want 0x0203, nil", be16, err)
	}

	le16, err := r.ReadLE16()
	if err != nil || le16 != 0x0504 {
		t.Fatalf("ReadLE16() = %#x, %v, want 0x0504, nil", le16, err)
	}

	if r.Tell() != 5 {
		t.Errorf("Tell() = %d, want 5", r.Tell())
	}
}

func TestStreamReaderSeekOverSeekableReader(t *testing.T) {
	t.Parallel()

	r := ioadapter.NewStreamReader(bytes.NewReader([]byte{0xAA, 0xBB, 0xCC}))

	r.Seek(2)
	if r.Tell() != 2 {
		t.Fatalf("Tell() after Seek = %d, want 2", r.Tell())
	}

	b, err := r.Read()
	if err != nil || b != 0xCC {
		t.Fatalf("Read() after Seek = %d, %v, want 0xCC, nil", b, err)
	}
}

func TestStreamReaderSeekOverNonSeekableReaderIsNoop(t *testing.T) {
	t.Parallel()

	// A plain bytes.Buffer has no Seek method, so Seek must be ignored
	// rather than panic or silently corrupt the position counter.
	r := ioadapter.NewStreamReader(bytes.NewBuffer([]byte{0x11, 0x22, 0x33}))

	r.Seek(2)
	if r.Tell() != 0 {
		t.Fatalf("Tell() after unsupported Seek = %d, want 0 (unchanged)", r.Tell())
	}

	b, err := r.Read()
	if err != nil || b != 0x11 {
		t.Fatalf("Read() after unsupported Seek = %d, %v, want 0x11, nil", b, err)
	}
}

func TestStreamWriterSequentialWrites(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ioadapter.NewStreamWriter(&buf)

	if err := w.Write(0x7F); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.WriteBE16(0x1234); err != nil {
		t.Fatalf("WriteBE16: %v", err)
	}
	if err := w.WriteLE16(0x5678); err != nil {
		t.Fatalf("WriteLE16: %v", err)
	}
	if err := w.Fill(0x00, 3); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	want := []byte{0x7F, 0x12, 0x34, 0x78, 0x56, 0x00, 0x00, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %X, want %X", buf.Bytes(), want)
	}
	if w.Tell() != int64(len(want)) {
		t.Errorf("Tell() = %d, want %d", w.Tell(), len(want))
	}
}

func TestStreamWriterDistance(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ioadapter.NewStreamWriter(&buf)

	_ = w.Fill(0, 10)
	if d := w.Distance(4); d != 6 {
		t.Errorf("Distance(4) = %d, want 6", d)
	}
}
