// Package utils holds helpers shared by the command line and the
// emulator packages.
package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// MaxFileSize bounds the decompressed size of a loaded file. Nothing that
// fits in the 16-bit address space comes close to it.
const MaxFileSize = 8 << 20

var (
	// ErrEmptyArchive is returned when an archive holds no files.
	ErrEmptyArchive = errors.New("utils: archive contains no files")
	// ErrTooLarge is returned when a file decompresses to more than
	// MaxFileSize bytes.
	ErrTooLarge = errors.New("utils: file too large")
)

// preferredExtensions are picked first when an archive holds more than
// one file.
var preferredExtensions = []string{".gb", ".gbc", ".bin", ".rom"}

// LoadFile loads the given file and performs decompression if necessary.
// The compression is determined by the file extension: .gz, .zst, .xz,
// .lz4, .br, .zip and .7z are supported, anything else is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	data, err = Decompress(filename, data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}
	return data, nil
}

// Decompress decompresses data according to the extension of name.
func Decompress(name string, data []byte) ([]byte, error) {
	var (
		decoder io.Reader
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zst":
		var d *zstd.Decoder
		d, err = zstd.NewReader(bytes.NewReader(data))
		if err == nil {
			defer d.Close()
			decoder = d
		}
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".lz4":
		decoder = lz4.NewReader(bytes.NewReader(data))
	case ".br":
		decoder = brotli.NewReader(bytes.NewReader(data))
	case ".zip":
		decoder, err = openZip(data)
	case ".7z":
		decoder, err = open7z(data)
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}
	if closer, ok := decoder.(io.Closer); ok {
		defer closer.Close()
	}

	// read one byte past the limit to detect oversized files
	out, err := io.ReadAll(io.LimitReader(decoder, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxFileSize {
		return nil, ErrTooLarge
	}
	return out, nil
}

// pick returns the index of the file to extract from an archive, or -1
// when the archive holds no regular files.
func pick(names []string, dirs []bool) int {
	first := -1
	for i, name := range names {
		if dirs[i] {
			continue
		}
		if first == -1 {
			first = i
		}
		for _, ext := range preferredExtensions {
			if strings.EqualFold(filepath.Ext(name), ext) {
				return i
			}
		}
	}
	return first
}

func openZip(data []byte) (io.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	names, dirs := make([]string, len(r.File)), make([]bool, len(r.File))
	for i, f := range r.File {
		names[i], dirs[i] = f.Name, f.FileInfo().IsDir()
	}
	i := pick(names, dirs)
	if i < 0 {
		return nil, ErrEmptyArchive
	}
	return r.File[i].Open()
}

func open7z(data []byte) (io.Reader, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	names, dirs := make([]string, len(r.File)), make([]bool, len(r.File))
	for i, f := range r.File {
		names[i], dirs[i] = f.Name, f.FileInfo().IsDir()
	}
	i := pick(names, dirs)
	if i < 0 {
		return nil, ErrEmptyArchive
	}
	return r.File[i].Open()
}
