// Package boarderr provides the sentinel errors and error types shared by the
// board controller, its legality strategies and the rule-engine adapters.
// Callers classify failures with errors.Is() and errors.As().
package boarderr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes surfaced by the public API.
var (
	// ErrInvalidSquare indicates a coordinate string outside a1..h8.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidFEN indicates a malformed position descriptor.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move rejected by the active legality strategy.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidState indicates an operation issued in a state that cannot
	// accept it, such as choosing a promotion with none pending.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidPromotion indicates a promotion kind outside queen, rook,
	// bishop and knight.
	ErrInvalidPromotion = errors.New("invalid promotion piece")

	// ErrPromotionRequired indicates a move that cannot complete until a
	// promotion kind is supplied.
	ErrPromotionRequired = errors.New("promotion choice required")

	// ErrEngineFailure indicates the external rule engine failed or returned
	// data the adapter could not interpret.
	ErrEngineFailure = errors.New("rule engine failure")

	// ErrInvalidConfig indicates configuration values rejected by validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// EngineError wraps a rule-engine failure with the operation that raised it.
// It matches ErrEngineFailure under errors.Is() regardless of the underlying
// cause, so controller code can downgrade any engine trouble in one place.
type EngineError struct {
	Op  string // adapter operation, e.g. "apply move"
	Err error  // the underlying engine error, if any
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("engine: %s", e.Op)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

func (e *EngineError) Is(target error) bool {
	return target == ErrEngineFailure
}

// Wrap adds context to an error while keeping the underlying error visible
// to errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while keeping the underlying
// error visible to errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
