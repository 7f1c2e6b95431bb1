// Package stream opens plain or compressed files behind ordinary io
// interfaces. The codec is chosen from the file extension: ".zst" selects
// zstd and ".lz4" selects lz4 frames; anything else is passed through.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies the compression applied to a stream.
type Codec int

const (
	None Codec = iota
	Zstd
	LZ4
)

// String returns the codec name.
func (c Codec) String() string {
	switch c {
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CodecFor returns the codec implied by the extension of path.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// NewReader wraps r with a decompressor for codec.
func NewReader(r io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// NewWriter wraps w with a compressor for codec. Closing the returned
// writer flushes the compressor but does not close w.
func NewWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Open opens path for reading, decompressing it when its extension names a codec.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := NewReader(bufio.NewReader(file), CodecFor(path))
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return &fileReader{ReadCloser: rc, file: file}, nil
}

type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (f *fileReader) Close() error {
	err := f.ReadCloser.Close()
	if cerr := f.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Create creates path for writing, compressing output when its extension
// names a codec. Close must be called to flush buffered data.
func Create(path string) (io.WriteCloser, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(file)
	wc, err := NewWriter(buf, CodecFor(path))
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return &fileWriter{WriteCloser: wc, buf: buf, file: file}, nil
}

type fileWriter struct {
	io.WriteCloser
	buf  *bufio.Writer
	file *os.File
}

func (f *fileWriter) Close() error {
	err := f.WriteCloser.Close()
	if ferr := f.buf.Flush(); err == nil {
		err = ferr
	}
	if cerr := f.file.Close(); err == nil {
		err = cerr
	}
	return err
}
