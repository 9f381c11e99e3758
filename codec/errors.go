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

import "errors"

// ErrTruncated is returned by a Decompress function when the input ends
// before a complete token could be read.
var ErrTruncated = errors.New("codec: compressed input is truncated")

// ErrInvalidInput is returned when data cannot possibly be this format's
// output, independent of truncation (e.g. a value-width mismatch).
var ErrInvalidInput = errors.New("codec: input is not valid for this format")

// ErrUnsupportedFormat is returned by Lookup when no codec is registered
// under the requested name.
var ErrUnsupportedFormat = errors.New("codec: unsupported format")
