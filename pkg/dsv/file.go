// Package dsv provides path-opening convenience wrappers.
package dsv

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// ReadFile reads the DSV file at path into a Table using default options.
// Compressed files are decompressed transparently based on the file
// extension: .gz, .bz2, .zst, and .xz are recognized.
func ReadFile(path string) (*Table, error) {
	return ReadFileWithOptions(path, DefaultReaderOptions())
}

// ReadFileWithOptions reads the DSV file at path into a Table with custom
// options, decompressing by file extension as ReadFile does.
func ReadFileWithOptions(path string, opts ReaderOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, closer, err := decompressedReader(f, path)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer()
	}

	return ReadWithOptions(r, opts)
}

// decompressedReader wraps f with a decompressor chosen by path extension.
// The returned closer, if non-nil, releases decompressor resources; the
// caller still closes the file itself.
func decompressedReader(f *os.File, path string) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip reader: %w", err)
		}
		return gz, func() { gz.Close() }, nil
	case ".bz2":
		return bzip2.NewReader(f), nil, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("open zstd reader: %w", err)
		}
		return zr, zr.Close, nil
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("open xz reader: %w", err)
		}
		return xr, nil, nil
	default:
		return f, nil, nil
	}
}
