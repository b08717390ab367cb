package legality

import (
	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/boarderr"
)

// BypassStrategy admits any geometrically sane move: source occupied,
// both squares on the board, source distinct from target. It never
// consults or tracks whose turn it is, so the same side may move twice
// and captures of either color are allowed. Promotion still gates on
// the farthest rank so a pawn never silently stays a pawn.
//
// The descriptor fields of the imported position (side to move,
// castling, counters) are carried through untouched for re-export;
// bypass play never interprets them.
type BypassStrategy struct {
	meta base.Position
}

func NewBypass() *BypassStrategy {
	return &BypassStrategy{meta: base.Position{EnPassant: base.NoSquare, Fullmove: 1}}
}

func (s *BypassStrategy) SetPosition(pos base.Position) error {
	s.meta = pos
	return nil
}

func (s *BypassStrategy) ReachableTargets(from base.Square, snap base.Snapshot) []base.Square {
	if !snap.Occupied(from) {
		return nil
	}
	targets := make([]base.Square, 0, 63)
	for sq := base.Square(0); sq < 64; sq++ {
		if sq != from {
			targets = append(targets, sq)
		}
	}
	return targets
}

func (s *BypassStrategy) Propose(intent base.MoveIntent, snap base.Snapshot) (Outcome, error) {
	if !intent.From.Valid() || !intent.To.Valid() || intent.From == intent.To {
		return Outcome{}, boarderr.Wrapf(boarderr.ErrIllegalMove, "%s", intent)
	}
	moving := snap.At(intent.From)
	if moving.IsEmpty() {
		return Outcome{}, boarderr.Wrapf(boarderr.ErrIllegalMove, "no piece on %s", intent.From)
	}

	if base.PawnPromotes(moving, intent.To) {
		if intent.Promotion == base.NoKind {
			return Outcome{Promotion: true}, nil
		}
		moving = base.Piece{Kind: intent.Promotion, Side: moving.Side}
	}

	next := s.meta
	next.Snap = snap
	next.Snap.Put(intent.To, moving)
	next.Snap.Put(intent.From, base.Piece{})
	s.meta = next
	return Outcome{Accepted: true, Position: next}, nil
}
