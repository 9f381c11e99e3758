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
	"sort"
	"sync"
)

// CompressFunc and DecompressFunc are the shape every format's
// Compress/Decompress pair implements.
type CompressFunc func(data []byte) ([]byte, error)
type DecompressFunc func(data []byte) ([]byte, error)

// Format bundles a name with its compressor/decompressor pair, as
// resolved by name from the registry. Nothing in this package ever
// infers a Format from the bytes of a compressed stream; the registry
// exists purely to resolve a name the caller already knows, e.g. a CLI
// flag.
type Format struct {
	Name       string
	Compress   CompressFunc
	Decompress DecompressFunc
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Format{}
)

// Register adds (or replaces) a format under the given name. It is
// typically called from an init function in each format's file.
func Register(f Format) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[f.Name] = f
}

// Lookup resolves name to a registered Format.
func Lookup(name string) (Format, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[name]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// Names returns every registered format name, sorted for stable CLI
// output.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(Format{Name: "nlz", Compress: CompressNLZ, Decompress: DecompressNLZ})
	Register(Format{Name: "comper", Compress: CompressComper, Decompress: DecompressComper})
	Register(Format{Name: "faxman", Compress: CompressFaxman, Decompress: DecompressFaxman})
	Register(Format{Name: "kosinski", Compress: CompressKosinski, Decompress: DecompressKosinski})
	Register(Format{Name: "kosinskiplus", Compress: CompressKosinskiPlus, Decompress: DecompressKosinskiPlus})
	Register(Format{Name: "rage", Compress: CompressRage, Decompress: DecompressRage})
	Register(Format{Name: "rocket", Compress: CompressRocket, Decompress: DecompressRocket})
	Register(Format{Name: "saxman", Compress: CompressSaxman, Decompress: DecompressSaxman})
	Register(Format{Name: "saxman-no-header", Compress: CompressSaxmanNoHeader, Decompress: DecompressSaxmanNoHeader})
}
