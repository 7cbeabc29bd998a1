package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupported marks contract or mock values the checker has no mapping for.
var ErrUnsupported = errors.New("unsupported")

// UnsupportedError names the unsupported value and what kind of value it is
// (method, format, type).
type UnsupportedError struct {
	Kind  string
	Value string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s '%s'", e.Kind, e.Value)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}
