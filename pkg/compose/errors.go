package compose

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange: a boundary, length or selection outside the composed space.
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnsupportedEdit: an edit that cannot be applied without touching part content.
	ErrUnsupportedEdit = errors.New("unsupported edit")
	// ErrIntegrity: shifted boundaries went negative or the layout lost its bijection.
	ErrIntegrity = errors.New("structural integrity violation")

	ErrUnknownPart   = errors.New("unknown part")
	ErrDuplicatePart = errors.New("duplicate part id")
)

// EditError is returned by every rejected edit. The editor state is unchanged
// whenever one is returned.
type EditError struct {
	Op     string
	Kind   error
	Reason string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Reason)
}

func (e *EditError) Unwrap() error {
	return e.Kind
}

func editErr(op string, kind error, format string, args ...any) error {
	return &EditError{Op: op, Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
