// Package httprange parses HTTP style byte range expressions into window bounds.
package httprange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

type Unit string

const (
	UnitBytes Unit = "bytes"
)

//nolint:gochecknoglobals
var (
	reg   = regexp.MustCompile(`^(?P<unit>\w+)=(?P<start>(?:\d+)?)\s*-\s*(?P<end>(?:\d+)?)$`)
	unit  = reg.SubexpIndex("unit")
	start = reg.SubexpIndex("start")
	end   = reg.SubexpIndex("end")
)

var (
	ErrInvalidRange = errors.New("invalid range")
	ErrUnknownUnit  = errors.New("unknown range")
)

// Range is an inclusive byte range within a stream.
type Range struct {
	Start, End, Length int64 // bytes
	Partial            bool
}

// Window returns the exclusive [start, end) bounds of the range.
func (r Range) Window() (int64, int64) {
	return r.Start, r.Start + r.Length
}

// Parse parses expressions like "bytes=10-19", "bytes=10-" and "bytes=-5"
// against a stream of fullLength bytes. An empty or unrecognised expression
// selects the whole stream.
func Parse(in string, fullLength int64) (Range, error) {
	parts := reg.FindStringSubmatch(in)
	if len(parts)-1 != reg.NumSubexp() {
		return Range{0, max(fullLength-1, 0), fullLength, false}, nil
	}

	switch unit := parts[unit]; Unit(unit) {
	case UnitBytes:
	default:
		return Range{}, fmt.Errorf("%q: %w", unit, ErrUnknownUnit)
	}

	startStr, endStr := parts[start], parts[end]
	if startStr == "" && endStr == "" {
		return Range{}, fmt.Errorf("%q: %w", in, ErrInvalidRange)
	}

	// suffix range, the last n bytes
	if startStr == "" {
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return Range{}, fmt.Errorf("parse suffix: %w", ErrInvalidRange)
		}
		n = min(n, fullLength)
		return Range{fullLength - n, fullLength - 1, n, n < fullLength}, nil
	}

	rstart, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return Range{}, fmt.Errorf("parse start: %w", ErrInvalidRange)
	}
	if rstart > fullLength || (rstart == fullLength && fullLength > 0) {
		return Range{}, fmt.Errorf("start %d of %d: %w", rstart, fullLength, ErrInvalidRange)
	}

	rend := fullLength - 1
	if endStr != "" {
		if rend, err = strconv.ParseInt(endStr, 10, 64); err != nil {
			return Range{}, fmt.Errorf("parse end: %w", ErrInvalidRange)
		}
		if rend < rstart {
			return Range{}, fmt.Errorf("end %d before start %d: %w", rend, rstart, ErrInvalidRange)
		}
		rend = min(rend, fullLength-1)
	}
	if fullLength == 0 {
		return Range{0, 0, 0, false}, nil
	}

	length := rend - rstart + 1
	return Range{rstart, rend, length, length < fullLength}, nil
}
