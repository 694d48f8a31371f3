package maplib

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingImage means the description names no atlas or it could not be opened
	ErrMissingImage = errors.New("missing image")
	// ErrMalformedDescription means the description could not be interpreted
	ErrMalformedDescription = errors.New("malformed description")
	// ErrDimensionMismatch means layers disagree with each other or with width/height
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrUnreadable means the description file could not be read
	ErrUnreadable = errors.New("unreadable description")

	// ErrUnknownTileCode is matched by *UnknownTileCodeError
	ErrUnknownTileCode = errors.New("unknown tile code")
	// ErrOutOfBounds is returned by grid accessors given coordinates outside the grid
	ErrOutOfBounds = errors.New("out of bounds")
)

// LoadError describes why a map could not be loaded
type LoadError struct {
	Path string // description file, empty when built from memory
	Kind error  // one of the Err* load kinds above
	Err  error  // underlying cause, may be nil
}

func (e *LoadError) Error() string {
	msg := e.Kind.Error()
	switch {
	case e.Err == nil:
	case errors.Is(e.Err, e.Kind):
		msg = e.Err.Error()
	default:
		msg += ": " + e.Err.Error()
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	return msg
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func loadErr(kind error, format string, args ...any) *LoadError {
	return &LoadError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// UnknownTileCodeError reports a grid cell whose code has no registry entry.
// Layer, Row and Col are -1 when the code was looked up outside a grid.
type UnknownTileCodeError struct {
	Code  int
	Layer int
	Row   int
	Col   int
}

func (e *UnknownTileCodeError) Error() string {
	if e.Layer < 0 {
		return fmt.Sprintf("unknown tile code %d", e.Code)
	}
	return fmt.Sprintf("unknown tile code %d at layer %d row %d col %d", e.Code, e.Layer, e.Row, e.Col)
}

func (e *UnknownTileCodeError) Is(target error) bool {
	return target == ErrUnknownTileCode
}
