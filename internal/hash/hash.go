// Package hash wraps xxHash64 for index checksums and source fingerprints.
package hash

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// HeadSize is the number of leading source bytes covered by a fingerprint head hash.
const HeadSize = 64 * 1024

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Head computes the xxHash64 of the first limit bytes of r, or of all of r when it
// is shorter. It returns the hash and the number of bytes consumed.
func Head(r io.Reader, limit int64) (uint64, int64, error) {
	d := xxhash.New()
	n, err := io.Copy(d, io.LimitReader(r, limit))
	if err != nil {
		return 0, n, err
	}

	return d.Sum64(), n, nil
}
