// Package legality defines the pluggable move-admission strategies.
// The board decides WHEN to ask; a strategy decides WHAT is allowed:
// everything under full rule validation, or almost anything under the
// free-placement bypass. Swapping strategies never changes the
// selection protocol.
package legality

import (
	"github.com/DawiQ/dawikk-chessboard/src/base"
)

// Outcome is a strategy's answer to a proposed move. Promotion means
// the move is admissible but cannot complete until a promotion kind is
// chosen; nothing has been applied yet in that case.
type Outcome struct {
	Accepted  bool
	Promotion bool
	Position  base.Position // the applied position, valid only when Accepted
}

type Strategy interface {
	// SetPosition resets the strategy to a freshly imported position.
	SetPosition(pos base.Position) error

	// ReachableTargets lists the destinations worth offering for the
	// square. It must not mutate the snapshot it reads.
	ReachableTargets(from base.Square, snap base.Snapshot) []base.Square

	// Propose evaluates the intent against the snapshot. Only an
	// accepted outcome carries a new position.
	Propose(intent base.MoveIntent, snap base.Snapshot) (Outcome, error)
}
