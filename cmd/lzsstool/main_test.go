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

package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(afero.NewMemMapFs(), []string{"-version"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), appVersion) {
		t.Errorf("stdout = %q, want it to contain %q", stdout.String(), appVersion)
	}
}

func TestRunListFormats(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(afero.NewMemMapFs(), []string{"-list-formats"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	for _, want := range []string{"nlz", "comper", "kosinski", "saxman-no-header"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout = %q, want it to contain %q", stdout.String(), want)
		}
	}
}

func TestRunListPlatforms(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(afero.NewMemMapFs(), []string{"-list-platforms"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "Game Boy Advance") {
		t.Errorf("stdout = %q, want it to contain %q", stdout.String(), "Game Boy Advance")
	}
}

func TestRunCompressDecompressRoundTrip(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "in.bin", []byte("hello hello hello world"), 0o644); err != nil {
		t.Fatalf("seed input file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run(fs, []string{"-i", "in.bin", "-o", "out.lzss", "-format", "nlz"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("compress exit code = %d, stderr = %s", code, stderr.String())
	}

	code = run(fs, []string{"-d", "-i", "out.lzss", "-o", "roundtrip.bin", "-format", "nlz"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("decompress exit code = %d, stderr = %s", code, stderr.String())
	}

	got, err := afero.ReadFile(fs, "roundtrip.bin")
	if err != nil {
		t.Fatalf("read round-tripped file: %v", err)
	}
	if string(got) != "hello hello hello world" {
		t.Errorf("got %q, want %q", got, "hello hello hello world")
	}
}

func TestRunCompressWithModule(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	input := bytes.Repeat([]byte("ABCDEFGH"), 600) // spans several 0x1000 modules
	if err := afero.WriteFile(fs, "in.bin", input, 0o644); err != nil {
		t.Fatalf("seed input file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run(fs, []string{"-i", "in.bin", "-o", "out.lzss", "-format", "nlz", "-module", "0x1000"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("compress exit code = %d, stderr = %s", code, stderr.String())
	}

	code = run(fs, []string{"-d", "-i", "out.lzss", "-o", "roundtrip.bin", "-format", "nlz", "-module", "0x1000"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("decompress exit code = %d, stderr = %s", code, stderr.String())
	}

	got, err := afero.ReadFile(fs, "roundtrip.bin")
	if err != nil {
		t.Fatalf("read round-tripped file: %v", err)
	}
	if !bytes.Equal(got, input) {
		t.Error("moduled round trip mismatch")
	}
}

func TestRunMissingFormat(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(afero.NewMemMapFs(), []string{"-i", "in.bin", "-o", "out.lzss"}, &stdout, &stderr)

	if code == 0 {
		t.Fatal("expected a nonzero exit code when -format is omitted")
	}
	if !strings.Contains(stderr.String(), "-format") {
		t.Errorf("stderr = %q, want it to mention -format", stderr.String())
	}
}

func TestRunUnknownFormat(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "in.bin", []byte("x"), 0o644); err != nil {
		t.Fatalf("seed input file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run(fs, []string{"-i", "in.bin", "-o", "out.lzss", "-format", "bogus"}, &stdout, &stderr)

	if code == 0 {
		t.Fatal("expected a nonzero exit code for an unknown format")
	}
}

// createTestZIP creates a real ZIP file on disk, since archive.Open backs
// onto archive/zip.OpenReader rather than an afero.Fs.
func createTestZIP(t *testing.T, dir, name string, files map[string][]byte) string {
	t.Helper()

	zipPath := filepath.Join(dir, name)
	file, err := os.Create(zipPath) //nolint:gosec // test helper, path built from t.TempDir()
	if err != nil {
		t.Fatalf("create zip file: %v", err)
	}
	defer func() { _ = file.Close() }()

	writer := zip.NewWriter(file)
	for filename, content := range files {
		fileWriter, err := writer.Create(filename)
		if err != nil {
			t.Fatalf("create file in zip: %v", err)
		}
		if _, err := fileWriter.Write(content); err != nil {
			t.Fatalf("write file content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	return zipPath
}

func TestRunArchiveBatchMode(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	zipPath := createTestZIP(t, tmpDir, "roms.zip", map[string][]byte{
		"readme.txt": []byte("not a rom"),
		"game.gba":   bytes.Repeat([]byte("ROMDATA"), 40),
		"game2.sfc":  bytes.Repeat([]byte("MOREROM"), 40),
	})

	fs := afero.NewMemMapFs()
	var stdout, stderr bytes.Buffer
	code := run(fs, []string{"-archive", zipPath, "-o", "out", "-format", "nlz"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("archive batch mode exit code = %d, stderr = %s", code, stderr.String())
	}

	for _, want := range []string{"out/game.gba.lzss", "out/game2.sfc.lzss"} {
		ok, err := afero.Exists(fs, want)
		if err != nil {
			t.Fatalf("check %s: %v", want, err)
		}
		if !ok {
			t.Errorf("expected output file %s to exist", want)
		}
	}

	ok, err := afero.Exists(fs, "out/readme.txt.lzss")
	if err != nil {
		t.Fatalf("check readme output: %v", err)
	}
	if ok {
		t.Error("non-ROM archive member should not have been compressed")
	}
}

func TestRunArchiveNoMatches(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	zipPath := createTestZIP(t, tmpDir, "empty.zip", map[string][]byte{
		"readme.txt": []byte("nothing compressible here"),
	})

	fs := afero.NewMemMapFs()
	var stdout, stderr bytes.Buffer
	code := run(fs, []string{"-archive", zipPath, "-o", "out", "-format", "nlz"}, &stdout, &stderr)

	if code == 0 {
		t.Fatal("expected a nonzero exit code when the archive has no recognized ROM files")
	}
}
