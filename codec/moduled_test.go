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
	"bytes"
	"math/rand"
	"testing"
)

// TestModuledNLZThreeChunks mirrors §8 scenario 6: module size 0x1000
// over an input of length 0x3000 must produce exactly three
// independently decodable chunks whose concatenation equals the input.
func TestModuledNLZThreeChunks(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(0xBEEF))
	input := make([]byte, 0x3000)
	rng.Read(input)

	const moduleSize = 0x1000

	compressed, err := ModuledNLZCompress(input, moduleSize, 1)
	if err != nil {
		t.Fatalf("ModuledNLZCompress: %v", err)
	}

	// Walk the moduled header by hand to count chunks, independent of
	// ModuledNLZDecompress, so a bug in one does not mask a bug in the
	// other.
	if len(compressed) < 2 {
		t.Fatalf("compressed output too short: %d bytes", len(compressed))
	}
	totalSize := int(compressed[0])<<8 | int(compressed[1])
	if totalSize != len(input) {
		t.Fatalf("total size header = %d, want %d", totalSize, len(input))
	}

	offset := 2
	chunkCount := 0
	for offset < len(compressed) {
		if offset+2 > len(compressed) {
			t.Fatalf("truncated chunk length field at offset %d", offset)
		}
		chunkLen := int(compressed[offset])<<8 | int(compressed[offset+1])
		offset += 2 + chunkLen
		chunkCount++
	}

	if chunkCount != 3 {
		t.Fatalf("chunk count = %d, want 3", chunkCount)
	}

	decompressed, err := ModuledNLZDecompress(compressed, moduleSize, 1)
	if err != nil {
		t.Fatalf("ModuledNLZDecompress: %v", err)
	}
	if !bytes.Equal(decompressed, input) {
		t.Fatal("moduled round trip mismatch")
	}
}

// TestModuledGenericRoundTrip exercises Moduled against every format's
// Compress/Decompress pair with an input spanning several modules and
// a trailing short one.
func TestModuledGenericRoundTrip(t *testing.T) {
	t.Parallel()

	for _, f := range roundtripFormats {
		f := f
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewSource(0x5EED))
			input := make([]byte, 0x2800)
			rng.Read(input)
			if f.evenLengthOnly && len(input)%2 != 0 {
				input = append(input, 0x00)
			}

			compress, decompress := Moduled(f.compress, f.decompress, 0x1000, 2)

			compressed, err := compress(input)
			if err != nil {
				t.Fatalf("Moduled compress: %v", err)
			}

			decompressed, err := decompress(compressed)
			if err != nil {
				t.Fatalf("Moduled decompress: %v", err)
			}

			if !bytes.Equal(decompressed, input) {
				t.Fatal("moduled round trip mismatch")
			}
		})
	}
}
