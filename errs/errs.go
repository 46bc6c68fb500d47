// Package errs defines the sentinel errors shared by the gfaidx packages.
//
// Callers match on these with errors.Is; the packages that return them wrap them
// with context (line numbers, byte offsets, names) using fmt.Errorf and %w, or in
// typed errors such as gfa.ParseError and index.BuildError that implement Unwrap.
package errs

import (
	"errors"
	"fmt"
)

// Record parsing errors.
var (
	// ErrMalformedRecord is returned when a record line has too few fields or an unparsable field.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrMissingLength is returned when a segment has a '*' sequence and no LN:i tag.
	ErrMissingLength = errors.New("segment has no sequence and no LN tag")
	// ErrMalformedStep is returned when a path or walk step cannot be parsed.
	ErrMalformedStep = errors.New("malformed path step")
	// ErrInvalidOrientation is returned when an orientation is neither '+' nor '-'.
	ErrInvalidOrientation = errors.New("invalid orientation")
)

// Graph and build errors.
var (
	// ErrDuplicateName is returned when two segments, or two paths, share a name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrUndefinedSegment is returned when a path step references a segment that does not exist.
	ErrUndefinedSegment = errors.New("undefined segment")
	// ErrInvalidIndexType is returned for an empty or unknown index type selection.
	ErrInvalidIndexType = errors.New("invalid index type")
	// ErrLineTooLong is returned when a record line does not fit the index's u32 byte length.
	ErrLineTooLong = errors.New("record line too long")
	// ErrNameTooLong is returned when a name does not fit the index's u16 length prefix.
	ErrNameTooLong = errors.New("name too long")
	// ErrCompressedSource is returned when an index build is asked to read a gzip source;
	// byte offsets into a compressed stream cannot be used for random access.
	ErrCompressedSource = errors.New("compressed source cannot be indexed")
)

// Index file errors. All of them are fatal to loading.
var (
	ErrBadMagic            = errors.New("bad index magic")
	ErrUnsupportedVersion  = errors.New("unsupported index version")
	ErrTruncated           = errors.New("truncated index")
	ErrChecksumMismatch    = errors.New("index checksum mismatch")
	ErrInvalidHeaderFlags  = errors.New("invalid index header flags")
	ErrInvalidCompression  = errors.New("invalid compression type")
	ErrTrailingIndexData   = errors.New("trailing data after index body")
	ErrInvalidPositionData = errors.New("invalid position entries")
)

// ErrIndexNotBuilt is returned by queries that need a sub-index the index was built without.
var ErrIndexNotBuilt = errors.New("index type not built")

// ErrStaleIndex is advisory: the source file fingerprint differs from the one stored
// in the index. Queries still proceed.
var ErrStaleIndex = errors.New("stale index")

// IOError marks a disk I/O failure so callers can tell it apart from format errors.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps err in an IOError. It returns nil when err is nil.
func WrapIO(op, path string, err error) error {
	if err == nil {
		return nil
	}

	return &IOError{Op: op, Path: path, Err: err}
}

// IsIO reports whether err is, or wraps, an IOError.
func IsIO(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
