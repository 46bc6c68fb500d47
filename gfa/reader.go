package gfa

import (
	"bufio"
	"errors"
	"io"

	"github.com/arloliu/gfaidx/internal/pool"
)

const readerBufferSize = 256 * 1024

// Line is one line of a GFA stream.
//
// Text excludes the trailing "\n" or "\r\n" and is only valid until the next call to
// LineReader.Next. Offset is the byte position of the first byte of the line and
// Number is its 1-based line number.
type Line struct {
	Text   []byte
	Offset int64
	Number int
}

// Span returns the byte range of the line's text.
func (l Line) Span() Span {
	return Span{Offset: l.Offset, Length: uint32(len(l.Text))} //nolint:gosec
}

// LineReader reads lines while keeping an exact running byte cursor, so the Offset of
// every Line can later be used to seek straight back to it.
//
// Note: LineReader is NOT thread-safe.
type LineReader struct {
	r      *bufio.Reader
	offset int64
	number int
	buf    *pool.ByteBuffer
}

// NewLineReader wraps r. Lines of any length are supported.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		r:   bufio.NewReaderSize(r, readerBufferSize),
		buf: pool.GetLineBuffer(),
	}
}

// Next returns the next line, or io.EOF once the stream is exhausted. A final line
// without a terminator is returned like any other.
func (lr *LineReader) Next() (Line, error) {
	chunk, err := lr.r.ReadSlice('\n')

	raw := chunk
	if errors.Is(err, bufio.ErrBufferFull) {
		// The line is longer than the bufio buffer: assemble it in our own buffer.
		lr.buf.Reset()
		_, _ = lr.buf.Write(chunk)
		for errors.Is(err, bufio.ErrBufferFull) {
			chunk, err = lr.r.ReadSlice('\n')
			lr.buf.Grow(len(chunk))
			_, _ = lr.buf.Write(chunk)
		}
		raw = lr.buf.Bytes()
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return Line{}, err
	}
	if len(raw) == 0 {
		return Line{}, io.EOF
	}

	line := Line{
		Text:   trimEOL(raw),
		Offset: lr.offset,
		Number: lr.number + 1,
	}
	lr.offset += int64(len(raw))
	lr.number++

	return line, nil
}

// Offset returns the number of bytes consumed so far, which is the offset of the next line.
func (lr *LineReader) Offset() int64 {
	return lr.offset
}

// Close releases the reader's buffer. It does not close the underlying reader.
func (lr *LineReader) Close() {
	if lr.buf != nil {
		pool.PutLineBuffer(lr.buf)
		lr.buf = nil
	}
}

func trimEOL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}

	return b
}
