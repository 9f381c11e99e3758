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

// roundtripFormats lists every registered format's Compress/Decompress
// pair, independent of the name-keyed registry (so these tests don't
// depend on registry.go's init order).
var roundtripFormats = []struct {
	name       string
	compress   CompressFunc
	decompress DecompressFunc
	// evenLengthOnly is set for formats (Comper) whose value width is
	// wider than one byte.
	evenLengthOnly bool
}{
	{"nlz", CompressNLZ, DecompressNLZ, false},
	{"comper", CompressComper, DecompressComper, true},
	{"faxman", CompressFaxman, DecompressFaxman, false},
	{"kosinski", CompressKosinski, DecompressKosinski, false},
	{"kosinskiplus", CompressKosinskiPlus, DecompressKosinskiPlus, false},
	{"rage", CompressRage, DecompressRage, false},
	{"rocket", CompressRocket, DecompressRocket, false},
	{"saxman", CompressSaxman, DecompressSaxman, false},
	{"saxman-no-header", CompressSaxmanNoHeader, DecompressSaxmanNoHeader, false},
}

// TestRoundTripBoundaries covers §8's boundary cases for every format:
// empty input, a single byte, and an all-identical run longer than any
// format's maximum match length (forcing overlapping matches).
func TestRoundTripBoundaries(t *testing.T) {
	t.Parallel()

	for _, f := range roundtripFormats {
		f := f
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()

			inputs := [][]byte{
				{},
				{0x41},
				bytes.Repeat([]byte{0xAB}, 600),
			}

			for _, input := range inputs {
				if f.evenLengthOnly && len(input)%2 != 0 {
					input = append(input, 0x00)
				}

				compressed, err := f.compress(input)
				if err != nil {
					t.Fatalf("Compress(len=%d): %v", len(input), err)
				}

				decompressed, err := f.decompress(compressed)
				if err != nil {
					t.Fatalf("Decompress(len=%d): %v", len(input), err)
				}

				if !bytes.Equal(decompressed, input) {
					t.Fatalf("round trip mismatch for len=%d input", len(input))
				}
			}
		})
	}
}

// TestRoundTripPseudorandom mirrors §8 scenario 5: round-trip of
// pseudorandom inputs of several lengths, with a fixed seed so failures
// are reproducible.
func TestRoundTripPseudorandom(t *testing.T) {
	t.Parallel()

	lengths := []int{0, 1, 2, 16, 4096}

	for _, f := range roundtripFormats {
		f := f
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewSource(0xC10A4))

			for _, length := range lengths {
				l := length
				if f.evenLengthOnly && l%2 != 0 {
					l++
				}

				input := make([]byte, l)
				rng.Read(input)

				compressed, err := f.compress(input)
				if err != nil {
					t.Fatalf("Compress(len=%d): %v", l, err)
				}

				decompressed, err := f.decompress(compressed)
				if err != nil {
					t.Fatalf("Decompress(len=%d): %v", l, err)
				}

				if !bytes.Equal(decompressed, input) {
					t.Fatalf("round trip mismatch for len=%d pseudorandom input", l)
				}
			}
		})
	}
}

// TestRoundTripRealisticData exercises repetitive, text-like, and mixed
// data so every format's match finder actually emits back-references
// rather than only literals.
func TestRoundTripRealisticData(t *testing.T) {
	t.Parallel()

	base := []byte("the quick brown fox jumps over the lazy dog; the quick brown fox jumps over the lazy dog again")

	for _, f := range roundtripFormats {
		f := f
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()

			input := append([]byte(nil), base...)
			if f.evenLengthOnly && len(input)%2 != 0 {
				input = append(input, 0x00)
			}

			compressed, err := f.compress(input)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}

			decompressed, err := f.decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}

			if !bytes.Equal(decompressed, input) {
				t.Fatalf("round trip mismatch:\n got  %q\n want %q", decompressed, input)
			}
		})
	}
}
