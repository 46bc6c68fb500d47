package gfa

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/gfaidx/errs"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Open opens a GFA file for sequential reading. Gzip-compressed files are detected by
// their magic bytes and decompressed transparently.
//
// Offsets read through a decompressing reader refer to the decompressed stream and
// cannot be used to seek in the file, so index building uses plain files only (see
// IsCompressed).
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.WrapIO("open", path, err)
	}

	br := bufio.NewReader(f)
	if !isGzip(br) {
		return &readCloser{Reader: br, closers: []io.Closer{f}}, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		_ = f.Close()
		return nil, errs.WrapIO("gunzip", path, err)
	}

	return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
}

// IsCompressed reports whether the file at path starts with the gzip magic bytes.
func IsCompressed(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errs.WrapIO("open", path, err)
	}
	defer f.Close()

	return isGzip(bufio.NewReaderSize(f, 16)), nil
}

func isGzip(br *bufio.Reader) bool {
	head, _ := br.Peek(len(gzipMagic))
	return bytes.Equal(head, gzipMagic)
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
