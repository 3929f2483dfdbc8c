package genefeat

import (
	"errors"
	"fmt"

	"github.com/grailbio/genefeat/interval"
)

// Kind classifies the errors reported by this package.
type Kind int

const (
	// ConfigurationError means an option had an unrecognized value.  It is
	// reported before any record is processed.
	ConfigurationError Kind = iota + 1
	// InvalidInterval means a record carried an interval with end <= start.
	InvalidInterval
	// CoordinateBound means a record carried a coordinate outside
	// [0, Opts.MaxPos).
	CoordinateBound
	// DegenerateInput means a group could not be finalized, e.g. because
	// frame correction would shrink a CDS interval to nothing.
	DegenerateInput
	// InconsistentGroup means two records of one group disagreed on
	// chromosome or strand.  Only reported when Opts.Strict is set.
	InconsistentGroup
)

func (k Kind) String() string {
	switch k {
	case ConfigurationError:
		return "configuration error"
	case InvalidInterval:
		return "invalid interval"
	case CoordinateBound:
		return "coordinate out of bounds"
	case DegenerateInput:
		return "degenerate input"
	case InconsistentGroup:
		return "inconsistent group"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the error type returned by this package.  Group is empty for
// errors that are not specific to one group.
type Error struct {
	Kind  Kind
	Group string
	Msg   string
	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	msg := "genefeat: " + e.Kind.String()
	if e.Group != "" {
		msg += " in group " + e.Group
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// IsKind returns whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func configError(format string, args ...interface{}) error {
	return &Error{Kind: ConfigurationError, Msg: fmt.Sprintf(format, args...)}
}

// groupError attaches a group key to an error coming out of package interval,
// translating its kind.
func groupError(group string, err error) error {
	if ge, ok := err.(*Error); ok {
		e := *ge
		e.Group = group
		return &e
	}
	kind := DegenerateInput
	var ie *interval.Error
	if errors.As(err, &ie) {
		switch ie.Kind {
		case interval.InvalidInterval:
			kind = InvalidInterval
		case interval.CoordinateBound:
			kind = CoordinateBound
		}
	}
	return &Error{Kind: kind, Group: group, Err: err}
}
