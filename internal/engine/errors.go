package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrNoOccupant        = errors.New("no piece on square")
	ErrInvalidMove       = errors.New("invalid move string")
	ErrInvalidLayout     = errors.New("invalid layout")
	ErrGameEnded         = errors.New("game has ended")
	ErrTurnInProgress    = errors.New("turn already in progress")
)

// LayoutError reports the placement entry that could not be parsed or placed.
type LayoutError struct {
	Entry  string
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%v: %q: %s", ErrInvalidLayout, e.Entry, e.Reason)
}

func (e *LayoutError) Unwrap() error {
	return ErrInvalidLayout
}
