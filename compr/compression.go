// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package compr opens input streams that may be
// compressed, wrapping third-party decompressors
// behind a name.
package compr

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// ByExtension returns the name of the algorithm
// suggested by the extension of path, or ""
// for an uncompressed file.
func ByExtension(path string) string {
	switch filepath.Ext(path) {
	case ".zst", ".zstd":
		return "zstd"
	case ".s2":
		return "s2"
	default:
		return ""
	}
}

// Decompression returns a reader producing the
// decompressed contents of r. The name "" means
// r is not compressed. Closing the result does
// not close r.
func Decompression(name string, r io.Reader) (io.ReadCloser, error) {
	switch name {
	case "zstd":
		z, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return z.IOReadCloser(), nil
	case "s2":
		return io.NopCloser(s2.NewReader(r)), nil
	case "":
		return io.NopCloser(r), nil
	default:
		return nil, fmt.Errorf("compr: unknown compression %q", name)
	}
}

type file struct {
	io.ReadCloser
	f *os.File
}

func (f *file) Close() error {
	err := f.ReadCloser.Close()
	if ferr := f.f.Close(); err == nil {
		err = ferr
	}
	return err
}

// Open opens path for reading and decompresses
// it according to ByExtension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := Decompression(ByExtension(path), f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &file{ReadCloser: rc, f: f}, nil
}
