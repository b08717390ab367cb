package legality

import (
	"errors"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/boarderr"
	"github.com/DawiQ/dawikk-chessboard/src/engine"
	"github.com/DawiQ/dawikk-chessboard/src/logic/convert/convfen"
)

// RuleStrategy delegates every legality question to an external rule
// engine. It owns no chess knowledge of its own: targets, turn order,
// promotion detection and the resulting position all come from the
// engine.
type RuleStrategy struct {
	eng engine.Engine
}

func NewRuleStrategy(eng engine.Engine) *RuleStrategy {
	return &RuleStrategy{eng: eng}
}

func (s *RuleStrategy) SetPosition(pos base.Position) error {
	return s.eng.SetPositionFEN(convfen.ConvertPositionToFEN(pos))
}

func (s *RuleStrategy) ReachableTargets(from base.Square, snap base.Snapshot) []base.Square {
	if !snap.Occupied(from) {
		return nil
	}
	targets, err := s.eng.LegalTargets(from)
	if err != nil {
		// a failing engine offers no moves; the board stays usable
		return nil
	}
	return targets
}

func (s *RuleStrategy) Propose(intent base.MoveIntent, snap base.Snapshot) (Outcome, error) {
	fen, err := s.eng.ApplyMove(intent)
	if err != nil {
		if errors.Is(err, boarderr.ErrPromotionRequired) {
			return Outcome{Promotion: true}, nil
		}
		return Outcome{}, err
	}
	pos, err := convfen.ConvertFENToPosition(fen)
	if err != nil {
		return Outcome{}, &boarderr.EngineError{Op: "read position", Err: err}
	}
	return Outcome{Accepted: true, Position: *pos}, nil
}
