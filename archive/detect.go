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
	"fmt"
	"path/filepath"
	"strings"
)

// romFamily names a cartridge platform and the file extensions its dumps
// carry, grouped the way package codec groups a compression algorithm
// with the name it's registered under: -archive batch mode doesn't care
// which platform a ROM belongs to, only that Extensions identifies
// binary cartridge data worth handing to a codec, but keeping the
// platform name attached makes Families() useful as a standalone report
// (lzsstool's -list-platforms prints it) instead of being flattened into
// an anonymous set at load time.
type romFamily struct {
	Platform   string
	Extensions []string
}

var romFamilies = []romFamily{
	{"Game Boy / Game Boy Color", []string{".gb", ".gbc"}},
	{"Game Boy Advance", []string{".gba", ".srl"}},
	{"Nintendo 64", []string{".n64", ".z64", ".v64", ".ndd"}},
	{"NES", []string{".nes", ".fds", ".unf", ".nez"}},
	{"SNES", []string{".sfc", ".smc", ".swc"}},
	{"Genesis / Mega Drive", []string{".gen", ".md", ".smd"}},
}

// compressibleExtensions is romFamilies flattened to a lookup set, built
// once at package init instead of re-scanning romFamilies on every
// IsCompressibleFile call.
var compressibleExtensions = func() map[string]bool {
	exts := map[string]bool{}
	for _, family := range romFamilies {
		for _, ext := range family.Extensions {
			exts[ext] = true
		}
	}
	return exts
}()

// Families returns the recognized ROM platform names, for lzsstool's
// -list-platforms.
func Families() []string {
	names := make([]string, 0, len(romFamilies))
	for _, family := range romFamilies {
		names = append(names, family.Platform)
	}
	return names
}

// IsCompressibleFile checks if a filename has a recognized ROM extension.
func IsCompressibleFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return compressibleExtensions[ext]
}

// DetectCompressibleFile finds the first ROM file in an archive.
// It scans the archive's file list and returns the path to the first file
// with a recognized extension.
func DetectCompressibleFile(arc Archive) (string, error) {
	files, err := arc.List()
	if err != nil {
		return "", fmt.Errorf("list archive files: %w", err)
	}

	for _, file := range files {
		if IsCompressibleFile(file.Name) {
			return file.Name, nil
		}
	}

	return "", NoCompressibleFilesError{Archive: "archive"}
}
