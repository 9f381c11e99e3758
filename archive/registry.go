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

package archive

import (
	"sort"
	"strings"
	"sync"
)

// Backend bundles a container format's extension with the function that
// opens it. Each backend file registers itself from an init function,
// the same way package codec resolves a compression format by name
// instead of switching on it inline.
type Backend struct {
	Extension string
	Open      func(path string) (Archive, error)
}

var (
	backendsMu sync.RWMutex
	backends   = map[string]Backend{}
)

// RegisterBackend adds (or replaces) the backend for the given
// lowercase extension, including the leading dot (e.g. ".zip").
func RegisterBackend(b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[b.Extension] = b
}

func lookupBackend(ext string) (Backend, bool) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[strings.ToLower(ext)]
	return b, ok
}

// BackendExtensions returns every registered container extension,
// sorted for stable output.
func BackendExtensions() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	exts := make([]string, 0, len(backends))
	for ext := range backends {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
