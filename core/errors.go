package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPayload is returned before any scanning when the merge input is incomplete.
	ErrInvalidPayload = errors.New("invalid merge payload")
	// ErrAnchorNotFound means no anchor carries the requested logical index.
	ErrAnchorNotFound = errors.New("anchor not found")
	// ErrAnchorAmbiguous means more than one anchor carries the requested logical index.
	ErrAnchorAmbiguous = errors.New("anchor ambiguous")
)

// Axis names the anchor role a lookup was performed for.
type Axis string

const (
	AxisRow    Axis = "row"
	AxisColumn Axis = "column"
)

// AnchorError describes a failed anchor lookup for one value item.
type AnchorError struct {
	Axis    Axis
	Index   int // logical index searched for
	Item    int // position of the value item in the input
	Matches int
	Err     error
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("item %d: %s anchor for logical index %d: %v (matches: %d)", e.Item, e.Axis, e.Index, e.Err, e.Matches)
}

func (e *AnchorError) Unwrap() error {
	return e.Err
}

func invalidPayload(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}
