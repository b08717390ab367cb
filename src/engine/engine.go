// Package engine declares the contract the board expects from an
// external chess rule engine. The board never re-implements move
// legality; full-validation mode delegates every rules question to an
// Engine and survives whatever the engine does, including failing.
package engine

import (
	"github.com/DawiQ/dawikk-chessboard/src/base"
)

// Engine is a stateful position holder with rules knowledge.
// Implementations live in subpackages; the board only ever sees this
// interface.
type Engine interface {
	// SetPositionFEN replaces the engine position from a descriptor.
	SetPositionFEN(fen string) error

	// FEN exports the current engine position.
	FEN() string

	// ActiveSide reports whose turn it is in the engine position.
	ActiveSide() base.Side

	// LegalTargets lists the squares reachable by a legal move from the
	// given square. Empty for empty squares and for pieces of the side
	// not to move.
	LegalTargets(from base.Square) ([]base.Square, error)

	// ApplyMove plays the intent and returns the new position
	// descriptor. A move that cannot complete without a promotion kind
	// fails with boarderr.ErrPromotionRequired and leaves the position
	// untouched; any other rejection reports why without mutating.
	ApplyMove(intent base.MoveIntent) (string, error)
}
