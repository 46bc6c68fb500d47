package index

import (
	"fmt"
	"os"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/internal/hash"
)

// FingerprintFile computes the fingerprint of the file at path.
func FingerprintFile(path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, errs.WrapIO("open", path, err)
	}
	defer f.Close()

	return fingerprint(f, path)
}

func fingerprint(f *os.File, path string) (Fingerprint, error) {
	fi, err := f.Stat()
	if err != nil {
		return Fingerprint{}, errs.WrapIO("stat", path, err)
	}

	head, _, err := hash.Head(f, hash.HeadSize)
	if err != nil {
		return Fingerprint{}, errs.WrapIO("read", path, err)
	}

	return Fingerprint{
		Size:     uint64(fi.Size()), //nolint: gosec
		ModTime:  fi.ModTime().UnixNano(),
		HeadHash: head,
	}, nil
}

// CheckSource compares the file at path with the fingerprint stored in idx.
//
// A mismatch returns an error wrapping errs.ErrStaleIndex. It is advisory: offsets may
// no longer point at the right lines, but nothing stops the caller from querying.
func (idx *Index) CheckSource(path string) error {
	fp, err := FingerprintFile(path)
	if err != nil {
		return err
	}

	switch {
	case fp.Size != idx.Source.Size:
		return fmt.Errorf("%w: %s is %d bytes, index was built from %d bytes",
			errs.ErrStaleIndex, path, fp.Size, idx.Source.Size)
	case fp.HeadHash != idx.Source.HeadHash:
		return fmt.Errorf("%w: %s content differs from the indexed file", errs.ErrStaleIndex, path)
	case fp.ModTime != idx.Source.ModTime:
		return fmt.Errorf("%w: %s was modified after indexing", errs.ErrStaleIndex, path)
	}

	return nil
}
