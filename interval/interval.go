package interval

import (
	"fmt"
	"math"
)

// PosType is the type used to represent interval coordinates.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// DefaultMaxPos is the default upper bound on any coordinate handed to the set
// operations.  It comfortably covers the largest human chromosome.
const DefaultMaxPos PosType = 512 << 20

// Interval is a 0-based half-open interval [Start, End).
type Interval struct {
	Start PosType
	End   PosType
}

// New returns the interval [start, end), or an InvalidInterval error if the
// interval would be empty or negative.
func New(start, end PosType) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if start < 0 || end <= start {
		return Interval{}, newError(InvalidInterval, "%v: end must exceed a nonnegative start", iv)
	}
	return iv, nil
}

// Len returns the number of positions covered by the interval.
func (iv Interval) Len() int {
	return int(iv.End - iv.Start)
}

// Overlaps returns whether iv and other share at least one position.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// String formats the interval as [start, end).
func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Start, iv.End)
}

// TotalLen returns the sum of the interval lengths.  Overlapping positions
// are counted once per interval.
func TotalLen(ivs []Interval) int {
	n := 0
	for _, iv := range ivs {
		n += iv.Len()
	}
	return n
}

// Check verifies that iv is nonempty, starts in [0, maxPos), and ends at or
// before maxPos.
func Check(iv Interval, maxPos PosType) error {
	if iv.End <= iv.Start {
		return newError(InvalidInterval, "%v: end must exceed start", iv)
	}
	if iv.Start < 0 || iv.End > maxPos {
		return newError(CoordinateBound, "%v: start must lie in [0, %d) and end must not exceed %d", iv, maxPos, maxPos)
	}
	return nil
}

func checkAll(ivs []Interval, maxPos PosType) error {
	if maxPos <= 0 {
		return newError(CoordinateBound, "nonpositive coordinate bound %d", maxPos)
	}
	for _, iv := range ivs {
		if err := Check(iv, maxPos); err != nil {
			return err
		}
	}
	return nil
}

// span returns the smallest interval containing every element of ivs, which
// must be nonempty.
func span(ivs []Interval) Interval {
	s := ivs[0]
	for _, iv := range ivs[1:] {
		if iv.Start < s.Start {
			s.Start = iv.Start
		}
		if iv.End > s.End {
			s.End = iv.End
		}
	}
	return s
}

// Span returns the smallest interval containing every element of ivs.  It
// returns a DegenerateInput error when ivs is empty.
func Span(ivs []Interval) (Interval, error) {
	if len(ivs) == 0 {
		return Interval{}, newError(DegenerateInput, "span of an empty interval list")
	}
	return span(ivs), nil
}

// ErrorKind classifies the failures reported by this package.
type ErrorKind int

const (
	// InvalidInterval means an interval with End <= Start was encountered.
	InvalidInterval ErrorKind = iota + 1
	// CoordinateBound means a start fell outside [0, maxPos) or an end
	// exceeded maxPos.
	CoordinateBound
	// DegenerateInput means an operation was handed input it has no defined
	// result for, e.g. the complement of nothing.
	DegenerateInput
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInterval:
		return "invalid interval"
	case CoordinateBound:
		return "coordinate out of bounds"
	case DegenerateInput:
		return "degenerate input"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the error type returned by this package.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return "interval: " + e.Kind.String() + ": " + e.Msg
}
