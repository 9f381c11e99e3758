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

// Command lzsstool compresses and decompresses retro-game ROM data using
// the formats registered in package codec.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"

	"github.com/clownacy-go/lzss/archive"
	"github.com/clownacy-go/lzss/codec"
)

const appVersion = "0.1.0"

func main() {
	os.Exit(run(afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr))
}

// run implements the CLI against an injectable afero.Fs so tests can drive
// it with afero.NewMemMapFs() instead of touching disk.
func run(fs afero.Fs, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("lzsstool", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		inputPath     = flags.String("i", "", "input file path (not used with -archive, -list-formats, -list-platforms or -version)")
		outputPath    = flags.String("o", "", "output file path, or output directory with -archive")
		format        = flags.String("format", "", "codec name (see -list-formats)")
		decompress    = flags.Bool("d", false, "decompress instead of compress")
		moduleSize    = flags.String("module", "", "split into moduleSize-byte chunks (e.g. 0x1000); omit to disable")
		archivePath   = flags.String("archive", "", "batch mode: compress every recognized ROM in this .zip/.7z/.rar")
		listFormats   = flags.Bool("list-formats", false, "print registered codec names and exit")
		listPlatforms = flags.Bool("list-platforms", false, "print ROM platforms -archive/-i recognize and exit")
		version       = flags.Bool("version", false, "print version and exit")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s -i <file> -o <file> -format <name> [options]\n\n", flags.Name())
		fmt.Fprintf(stderr, "Compresses or decompresses retro-game ROM data.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  %s -i in.bin -o out.lzss -format nlz\n", flags.Name())
		fmt.Fprintf(stderr, "  %s -d -i out.lzss -o roundtrip.bin -format nlz\n", flags.Name())
		fmt.Fprintf(stderr, "  %s -i in.bin -o out.lzss -format kosinski -module 0x1000\n", flags.Name())
		fmt.Fprintf(stderr, "  %s -archive game.zip -o outdir -format kosinski\n", flags.Name())
		fmt.Fprintf(stderr, "  %s -list-platforms\n", flags.Name())
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "lzsstool version %s\n", appVersion)
		return 0
	}

	if *listFormats {
		for _, name := range codec.Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	if *listPlatforms {
		for _, name := range archive.Families() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	if *format == "" {
		fmt.Fprintln(stderr, "Error: -format is required")
		flags.Usage()
		return 1
	}

	f, err := codec.Lookup(*format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var module int64
	if *moduleSize != "" {
		module, err = strconv.ParseInt(*moduleSize, 0, 32)
		if err != nil {
			fmt.Fprintf(stderr, "Error: invalid -module value %q: %v\n", *moduleSize, err)
			return 1
		}
	}

	compress, decomp := f.Compress, f.Decompress
	if module > 0 {
		compress, decomp = codec.Moduled(f.Compress, f.Decompress, int(module), 1)
	}

	if *archivePath != "" {
		if *outputPath == "" {
			fmt.Fprintln(stderr, "Error: -o (output directory) is required with -archive")
			return 1
		}
		if err := runArchive(fs, *archivePath, *outputPath, compress, decomp, *decompress); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(stderr, "Error: -i and -o are required")
		flags.Usage()
		return 1
	}

	if err := runSingleFile(fs, *inputPath, *outputPath, compress, decomp, *decompress); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// runSingleFile resolves -i through package archive's MiSTer-style
// archive.zip/internal/path splitting when present, falling back to a
// plain afero-backed file read.
func runSingleFile(fs afero.Fs, inputPath, outputPath string, compress codec.CompressFunc, decompress codec.DecompressFunc, doDecompress bool) error {
	data, err := readInput(fs, inputPath)
	if err != nil {
		return err
	}

	result, err := transform(data, compress, decompress, doDecompress)
	if err != nil {
		return fmt.Errorf("process %s: %w", inputPath, err)
	}

	return afero.WriteFile(fs, outputPath, result, 0o644)
}

// readInput reads inputPath, resolving an embedded archive reference
// (e.g. "roms.zip/internal/rom.bin") via package archive, and otherwise
// reading the plain file through fs.
func readInput(fs afero.Fs, inputPath string) ([]byte, error) {
	parsed, err := archive.ParsePath(inputPath)
	if err != nil {
		return nil, fmt.Errorf("parse input path: %w", err)
	}
	if parsed == nil {
		return afero.ReadFile(fs, inputPath)
	}

	arc, err := archive.Open(parsed.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", parsed.ArchivePath, err)
	}
	defer func() { _ = arc.Close() }()

	internalPath := parsed.InternalPath
	if internalPath == "" {
		internalPath, err = archive.DetectCompressibleFile(arc)
		if err != nil {
			return nil, err
		}
	}

	reader, _, err := arc.Open(internalPath)
	if err != nil {
		return nil, fmt.Errorf("open %s in %s: %w", internalPath, parsed.ArchivePath, err)
	}
	defer func() { _ = reader.Close() }()

	return io.ReadAll(reader)
}

// runArchive walks every recognized ROM member of an archive and writes
// one compressed (or decompressed) file per member into outputDir.
func runArchive(fs afero.Fs, archivePath, outputDir string, compress codec.CompressFunc, decompress codec.DecompressFunc, doDecompress bool) error {
	arc, err := archive.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer func() { _ = arc.Close() }()

	files, err := arc.List()
	if err != nil {
		return fmt.Errorf("list archive %s: %w", archivePath, err)
	}

	if err := fs.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outputDir, err)
	}

	matched := 0
	for _, file := range files {
		if !archive.IsCompressibleFile(file.Name) {
			continue
		}
		matched++

		reader, _, err := arc.Open(file.Name)
		if err != nil {
			return fmt.Errorf("open %s in archive: %w", file.Name, err)
		}
		data, err := io.ReadAll(reader)
		_ = reader.Close()
		if err != nil {
			return fmt.Errorf("read %s from archive: %w", file.Name, err)
		}

		result, err := transform(data, compress, decompress, doDecompress)
		if err != nil {
			return fmt.Errorf("process %s: %w", file.Name, err)
		}

		outPath := filepath.Join(outputDir, filepath.Base(file.Name)+outputSuffix(doDecompress))
		if err := afero.WriteFile(fs, outPath, result, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}

	if matched == 0 {
		return archive.NoCompressibleFilesError{Archive: archivePath}
	}

	return nil
}

func transform(data []byte, compress codec.CompressFunc, decompress codec.DecompressFunc, doDecompress bool) ([]byte, error) {
	if doDecompress {
		return decompress(data)
	}
	return compress(data)
}

func outputSuffix(doDecompress bool) string {
	if doDecompress {
		return ".bin"
	}
	return ".lzss"
}
