package processing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid record")
	// ErrInvalidRange matches every *InvalidRangeError via errors.Is.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrUnknownPolicy is returned for player policies other than roster/participation.
	ErrUnknownPolicy = errors.New("unknown player match policy")
)

// ValidationError describes the first raw record that failed validation in a batch.
type ValidationError struct {
	Kind     Kind
	Index    int
	RecordID string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s record #%d", e.Kind, e.Index)
	if e.RecordID != "" {
		fmt.Fprintf(&b, " (id %s)", e.RecordID)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

// Is lets callers test with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// InvalidRangeError is returned when a date range starts after it ends.
type InvalidRangeError struct {
	Start timeutil.Date
	End   timeutil.Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("start date must be earlier than or equal to end date (start=%s, end=%s)", e.Start, e.End)
}

// Is lets callers test with errors.Is(err, ErrInvalidRange).
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}
