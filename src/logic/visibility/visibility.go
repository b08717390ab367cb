// Package visibility decides which occupied squares a blindfold hides.
// Masking is a pure presentation question: piece data stays intact in
// the snapshot, renderers just get told what not to draw.
package visibility

import "github.com/DawiQ/dawikk-chessboard/src/base"

type Policy struct {
	Enabled bool
	Hidden  base.HiddenSquares
}

// Reveal shows everything.
func Reveal() Policy {
	return Policy{}
}

// Blindfold hides every occupied square.
func Blindfold() Policy {
	return Policy{Enabled: true, Hidden: base.HideAll()}
}

// HideOnly hides the given squares when they are occupied.
func HideOnly(sqs ...base.Square) Policy {
	return Policy{Enabled: true, Hidden: base.HideSet(sqs...)}
}

// Masked reports whether the square's piece is hidden from the viewer.
// Empty squares are never masked, whatever the policy says.
func Masked(sq base.Square, occupied bool, pol Policy) bool {
	if !pol.Enabled || !occupied || !sq.Valid() {
		return false
	}
	return pol.Hidden.Contains(sq)
}

// MaskedSet collects every masked square of the snapshot, in board
// order, for the overlay projection.
func MaskedSet(snap base.Snapshot, pol Policy) []base.Square {
	if !pol.Enabled {
		return nil
	}
	var masked []base.Square
	for sq := base.Square(0); sq < 64; sq++ {
		if Masked(sq, snap.Occupied(sq), pol) {
			masked = append(masked, sq)
		}
	}
	return masked
}
