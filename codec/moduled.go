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

	"github.com/clownacy-go/lzss/internal/membuf"
	"github.com/clownacy-go/lzss/ioadapter"
)

// Moduled wraps a format's Compress/Decompress pair so oversized input is
// split into independently-compressed moduleSize chunks, each padded to
// alignment, generalizing the single NLZ instantiation of this wrapper
// (ModuledNLZCompress) to every format in this package.
//
// Wire shape: a big-endian total-uncompressed-size header, then, per
// chunk, a big-endian compressed-chunk-size field followed by that many
// compressed bytes, padded with zero bytes up to the next alignment
// boundary.
func Moduled(compress CompressFunc, decompress DecompressFunc, moduleSize, alignment int) (CompressFunc, DecompressFunc) {
	moduledCompress := func(data []byte) ([]byte, error) {
		if len(data) > 0xFFFF {
			return nil, fmt.Errorf("%w: moduled input of %d bytes exceeds the 16-bit size header", ErrInvalidInput, len(data))
		}

		buf := membuf.New(512)
		out := ioadapter.NewBufferWriter(buf)
		if err := out.WriteBE16(uint16(len(data))); err != nil {
			return nil, err
		}

		for offset := 0; offset < len(data); offset += moduleSize {
			end := offset + moduleSize
			if end > len(data) {
				end = len(data)
			}

			compressed, err := compress(data[offset:end])
			if err != nil {
				return nil, err
			}
			if len(compressed) > 0xFFFF {
				return nil, fmt.Errorf("%w: compressed module of %d bytes exceeds the 16-bit size header", ErrInvalidInput, len(compressed))
			}

			if err := out.WriteBE16(uint16(len(compressed))); err != nil {
				return nil, err
			}
			for _, b := range compressed {
				if err := out.Write(b); err != nil {
					return nil, err
				}
			}

			if alignment > 1 {
				pad := (alignment - int(out.Tell())%alignment) % alignment
				if err := out.Fill(0, pad); err != nil {
					return nil, err
				}
			}
		}

		return out.Bytes(), nil
	}

	moduledDecompress := func(data []byte) ([]byte, error) {
		in := ioadapter.NewBufferReader(data)
		totalSize, err := in.ReadBE16()
		if err != nil {
			return nil, fmt.Errorf("%w: reading moduled header: %v", ErrTruncated, err)
		}

		result := make([]byte, 0, totalSize)
		for len(result) < int(totalSize) {
			chunkLen, err := in.ReadBE16()
			if err != nil {
				return nil, fmt.Errorf("%w: reading module length: %v", ErrTruncated, err)
			}

			start := in.Tell()
			if start+int64(chunkLen) > int64(len(data)) {
				return nil, ErrTruncated
			}
			chunkBytes := data[start : start+int64(chunkLen)]

			decompressed, err := decompress(chunkBytes)
			if err != nil {
				return nil, err
			}
			result = append(result, decompressed...)

			pos := start + int64(chunkLen)
			if alignment > 1 {
				pad := (int64(alignment) - pos%int64(alignment)) % int64(alignment)
				pos += pad
			}
			in.Seek(pos)
		}

		return result, nil
	}

	return moduledCompress, moduledDecompress
}
