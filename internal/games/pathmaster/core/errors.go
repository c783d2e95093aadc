package core

import (
	"errors"
	"fmt"
)

// Move rejection reasons. They are wrapped in a MoveError.
var (
	ErrNotAdjacent    = errors.New("not adjacent")
	ErrAlreadyVisited = errors.New("already visited")
	ErrOutOfBounds    = errors.New("out of bounds")
)

// ErrGameOver is returned when a move is attempted after End was reached.
var ErrGameOver = errors.New("game already over")

// ErrInvalidGridSize is wrapped in a ConfigError when a grid is requested
// with fewer than MinGridSize rows.
var ErrInvalidGridSize = errors.New("invalid grid size")

// Persistence failure kinds. They are wrapped in a PersistenceError.
var (
	ErrCorrupt    = errors.New("corrupt save")
	ErrUnreadable = errors.New("unreadable save")
)

// MoveError reports a rejected move. The state is unchanged when it is returned.
type MoveError struct {
	Reason error
	From   Coord
	To     Coord
}

func (e MoveError) Error() string {
	return fmt.Sprintf("invalid move %s -> %s: %v", e.From, e.To, e.Reason)
}

// Unwrap allows errors.Is(err, ErrNotAdjacent) and friends.
func (e MoveError) Unwrap() error {
	return e.Reason
}

// IsInvalidMove reports whether err is a rejected move (not a finished game).
func IsInvalidMove(err error) bool {
	var me MoveError
	return errors.As(err, &me)
}

// ConfigError reports an invalid generation parameter.
type ConfigError struct {
	Reason error
	Detail string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v: %s", e.Reason, e.Detail)
}

func (e ConfigError) Unwrap() error {
	return e.Reason
}

// PersistenceError reports a snapshot that could not be read or trusted.
type PersistenceError struct {
	Kind error // ErrCorrupt or ErrUnreadable
	Err  error
}

func (e PersistenceError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e PersistenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Corrupt builds a PersistenceError of kind ErrCorrupt.
func Corrupt(format string, args ...any) error {
	return PersistenceError{Kind: ErrCorrupt, Err: fmt.Errorf(format, args...)}
}

// ErrorMessage returns the player-facing message for a move error.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrGameOver):
		return "The game is over. Press R to restart."
	case errors.Is(err, ErrNotAdjacent):
		return "You can only move to adjacent fields!"
	case errors.Is(err, ErrAlreadyVisited):
		return "You have already visited that field!"
	case errors.Is(err, ErrOutOfBounds):
		return "That field is outside the board!"
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
