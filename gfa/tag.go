package gfa

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/arloliu/gfaidx/errs"
)

// Tag is an optional field, normally TAG:TYPE:VALUE.
type Tag struct {
	Name  string // e.g. "LN"
	Type  byte   // one of A i f Z J H B, or 0 for an untyped key:value field
	Value string
}

func (t Tag) String() string {
	if t.Type == 0 {
		return t.Name + ":" + t.Value
	}

	return t.Name + ":" + string(t.Type) + ":" + t.Value
}

// Int returns the value of an integer ('i') tag.
func (t Tag) Int() (int64, error) {
	if t.Type != 'i' {
		return 0, fmt.Errorf("%w: tag %s is type %c, not i", errs.ErrMalformedRecord, t.Name, t.Type)
	}

	v, err := strconv.ParseInt(t.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: tag %s: %v", errs.ErrMalformedRecord, t.Name, err)
	}

	return v, nil
}

// FindTag returns the first tag called name.
func FindTag(tags []Tag, name string) (Tag, bool) {
	for _, t := range tags {
		if t.Name == name {
			return t, true
		}
	}

	return Tag{}, false
}

// parseTag reads one optional field. TAG:TYPE:VALUE with a known type gives a typed
// tag; any other key:value field is kept untyped (Type 0) with everything after the
// first ':' as its value. Fields without ':' are dropped.
func parseTag(field []byte) (Tag, bool) {
	if len(field) >= 5 && field[2] == ':' && field[4] == ':' {
		switch field[3] {
		case 'A', 'i', 'f', 'Z', 'J', 'H', 'B':
			return Tag{
				Name:  string(field[:2]),
				Type:  field[3],
				Value: string(field[5:]),
			}, true
		}
	}

	key, value, ok := bytes.Cut(field, []byte{':'})
	if !ok {
		return Tag{}, false
	}

	return Tag{Name: string(key), Value: string(value)}, true
}

func parseTags(fields [][]byte) []Tag {
	if len(fields) == 0 {
		return nil
	}

	tags := make([]Tag, 0, len(fields))
	for _, f := range fields {
		if tag, ok := parseTag(f); ok {
			tags = append(tags, tag)
		}
	}

	return tags
}
