package gfa

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/arloliu/gfaidx/errs"
	"github.com/arloliu/gfaidx/section"
)

// Parser turns record lines into Records.
//
// The zero value keeps nothing beyond what index building needs: segment sequences
// are measured but not copied. Set KeepSequence to retain them.
type Parser struct {
	// KeepSequence copies segment sequences into Segment.Sequence.
	KeepSequence bool
}

var defaultParser = Parser{KeepSequence: true}

// ParseLine parses one record line with sequences kept. text must not include the
// line terminator; offset is the position of the line in its source file.
func ParseLine(text []byte, offset int64) (Record, error) {
	return defaultParser.ParseLine(text, offset)
}

// ParseLine parses one record line. See the package-level ParseLine.
func (p Parser) ParseLine(text []byte, offset int64) (Record, error) {
	if uint64(len(text)) > section.MaxByteLen {
		return nil, newParseError(text, offset, "", errs.ErrLineTooLong)
	}
	span := Span{Offset: offset, Length: uint32(len(text))} //nolint:gosec

	body := bytes.TrimRight(text, " \t\r")
	if len(body) == 0 {
		return &Skipped{Loc: span}, nil
	}

	// A record letter must be followed by a tab (or be the whole line).
	if len(body) > 1 && body[1] != '\t' {
		return &Skipped{Type: body[0], Loc: span}, nil
	}

	fields := bytes.Split(body, []byte{'\t'})

	var (
		rec Record
		err error
	)

	switch body[0] {
	case 'H':
		rec, err = parseHeader(fields, span)
	case 'S':
		rec, err = p.parseSegment(fields, span)
	case 'L':
		rec, err = parseLink(fields, span)
	case 'P':
		rec, err = parsePath(fields, span)
	case 'W':
		rec, err = parseWalk(fields, span)
	default:
		return &Skipped{Type: body[0], Loc: span}, nil
	}

	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Offset = offset
			pe.Raw = rawSnippet(text)

			return nil, pe
		}

		return nil, newParseError(text, offset, "", err)
	}

	return rec, nil
}

func fieldError(field string, err error) *ParseError {
	return &ParseError{Field: field, Err: err}
}

func requireFields(fields [][]byte, n int, kind string) error {
	if len(fields) < n {
		return fieldError("", fmt.Errorf("%w: %s record needs at least %d fields, got %d",
			errs.ErrMalformedRecord, kind, n, len(fields)))
	}

	return nil
}

func parseName(field []byte, what string) (string, error) {
	if len(field) == 0 {
		return "", fieldError(what, fmt.Errorf("%w: empty %s", errs.ErrMalformedRecord, what))
	}

	return string(field), nil
}

func parseHeader(fields [][]byte, span Span) (*Header, error) {
	tags := parseTags(fields[1:])

	h := &Header{Tags: tags, Loc: span}
	if vn, ok := FindTag(tags, "VN"); ok {
		h.Version = vn.Value
	}

	return h, nil
}

func (p Parser) parseSegment(fields [][]byte, span Span) (*Segment, error) {
	if err := requireFields(fields, 3, "segment"); err != nil {
		return nil, err
	}

	name, err := parseName(fields[1], "name")
	if err != nil {
		return nil, err
	}

	tags := parseTags(fields[3:])

	seg := &Segment{Name: name, Tags: tags, Loc: span}
	seq := fields[2]

	switch {
	case len(seq) == 1 && seq[0] == '*':
		ln, ok := FindTag(tags, "LN")
		if !ok {
			return nil, fieldError("sequence", fmt.Errorf("%w: segment %q", errs.ErrMissingLength, name))
		}
		n, err := ln.Int()
		if err != nil {
			return nil, fieldError("LN", err)
		}
		if n < 0 {
			return nil, fieldError("LN", fmt.Errorf("%w: negative length %d", errs.ErrMalformedRecord, n))
		}
		seg.Length = uint64(n)
	case len(seq) == 0:
		return nil, fieldError("sequence", fmt.Errorf("%w: empty sequence field", errs.ErrMalformedRecord))
	default:
		seg.Length = uint64(len(seq))
		if p.KeepSequence {
			seg.Sequence = string(seq)
		}
	}

	return seg, nil
}

func parseLink(fields [][]byte, span Span) (*Link, error) {
	if err := requireFields(fields, 6, "link"); err != nil {
		return nil, err
	}

	from, err := parseName(fields[1], "from")
	if err != nil {
		return nil, err
	}
	fromOrient, err := parseOrientationField(fields[2], "from_orient")
	if err != nil {
		return nil, err
	}
	to, err := parseName(fields[3], "to")
	if err != nil {
		return nil, err
	}
	toOrient, err := parseOrientationField(fields[4], "to_orient")
	if err != nil {
		return nil, err
	}

	tags := parseTags(fields[6:])

	return &Link{
		From:       from,
		FromOrient: fromOrient,
		To:         to,
		ToOrient:   toOrient,
		Overlap:    string(fields[5]),
		Tags:       tags,
		Loc:        span,
	}, nil
}

func parseOrientationField(field []byte, what string) (Orientation, error) {
	if len(field) != 1 {
		return 0, fieldError(what, fmt.Errorf("%w: %q", errs.ErrInvalidOrientation, field))
	}

	o, err := ParseOrientation(field[0])
	if err != nil {
		return 0, fieldError(what, err)
	}

	return o, nil
}

func parsePath(fields [][]byte, span Span) (*Path, error) {
	if err := requireFields(fields, 3, "path"); err != nil {
		return nil, err
	}

	name, err := parseName(fields[1], "name")
	if err != nil {
		return nil, err
	}

	steps, err := parseSteps(fields[2])
	if err != nil {
		return nil, err
	}

	path := &Path{Name: name, Steps: steps, Loc: span}

	if len(fields) > 3 {
		if ov := fields[3]; len(ov) > 0 && !(len(ov) == 1 && ov[0] == '*') {
			for _, o := range bytes.Split(ov, []byte{','}) {
				path.Overlaps = append(path.Overlaps, string(o))
			}
		}
		path.Tags = parseTags(fields[4:])
	}

	return path, nil
}

// parseSteps parses "s1+,s2-,s3+". Empty tokens are ignored.
func parseSteps(field []byte) ([]Step, error) {
	steps := make([]Step, 0, bytes.Count(field, []byte{','})+1)

	for _, tok := range bytes.Split(field, []byte{','}) {
		tok = bytes.TrimSpace(tok)
		if len(tok) == 0 {
			continue
		}

		last := tok[len(tok)-1]
		if len(tok) < 2 || (last != '+' && last != '-') {
			return nil, fieldError("steps", fmt.Errorf("%w: %q needs a segment name and +/-", errs.ErrMalformedStep, tok))
		}

		o, _ := ParseOrientation(last)
		steps = append(steps, Step{Segment: string(tok[:len(tok)-1]), Orientation: o})
	}

	return steps, nil
}

func parseWalk(fields [][]byte, span Span) (*Walk, error) {
	if err := requireFields(fields, 7, "walk"); err != nil {
		return nil, err
	}

	sample, err := parseName(fields[1], "sample")
	if err != nil {
		return nil, err
	}

	hap, err := strconv.ParseUint(string(fields[2]), 10, 64)
	if err != nil {
		return nil, fieldError("haplotype", fmt.Errorf("%w: %v", errs.ErrMalformedRecord, err))
	}

	seqID, err := parseName(fields[3], "seq_id")
	if err != nil {
		return nil, err
	}

	start, err := parseOptionalCoord(fields[4], "seq_start")
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalCoord(fields[5], "seq_end")
	if err != nil {
		return nil, err
	}

	steps, err := parseWalkSteps(fields[6])
	if err != nil {
		return nil, err
	}

	tags := parseTags(fields[7:])

	return &Walk{
		Sample:    sample,
		Haplotype: hap,
		SeqID:     seqID,
		SeqStart:  start,
		SeqEnd:    end,
		Steps:     steps,
		Tags:      tags,
		Loc:       span,
	}, nil
}

func parseOptionalCoord(field []byte, what string) (int64, error) {
	if len(field) == 1 && field[0] == '*' {
		return -1, nil
	}

	v, err := strconv.ParseInt(string(field), 10, 64)
	if err != nil || v < 0 {
		return 0, fieldError(what, fmt.Errorf("%w: %q is not a coordinate", errs.ErrMalformedRecord, field))
	}

	return v, nil
}

// parseWalkSteps parses ">s1<s2>s3".
func parseWalkSteps(field []byte) ([]Step, error) {
	if len(field) == 0 || (field[0] != '>' && field[0] != '<') {
		return nil, fieldError("walk", fmt.Errorf("%w: walk %q must start with > or <", errs.ErrMalformedStep, field))
	}

	steps := make([]Step, 0, bytes.Count(field, []byte{'>'})+bytes.Count(field, []byte{'<'}))

	for i := 0; i < len(field); {
		o := Forward
		if field[i] == '<' {
			o = Reverse
		}

		j := i + 1
		for j < len(field) && field[j] != '>' && field[j] != '<' {
			j++
		}

		if j == i+1 {
			return nil, fieldError("walk", fmt.Errorf("%w: empty segment name at byte %d", errs.ErrMalformedStep, i))
		}

		steps = append(steps, Step{Segment: string(field[i+1 : j]), Orientation: o})
		i = j
	}

	return steps, nil
}
