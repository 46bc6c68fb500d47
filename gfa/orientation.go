package gfa

import (
	"fmt"

	"github.com/arloliu/gfaidx/errs"
)

// Orientation is the strand a segment is traversed on.
type Orientation uint8

const (
	Forward Orientation = 0 // Forward is written as '+' (or '>' in walks).
	Reverse Orientation = 1 // Reverse is written as '-' (or '<' in walks).
)

// ParseOrientation parses '+' or '-'.
func ParseOrientation(c byte) (Orientation, error) {
	switch c {
	case '+':
		return Forward, nil
	case '-':
		return Reverse, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidOrientation, c)
	}
}

// Valid reports whether o is Forward or Reverse.
func (o Orientation) Valid() bool {
	return o == Forward || o == Reverse
}

func (o Orientation) String() string {
	switch o {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	default:
		return "?"
	}
}

// MarshalText implements encoding.TextMarshaler so orientations render as "+"/"-".
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidOrientation, uint8(o))
	}

	return []byte(o.String()), nil
}
