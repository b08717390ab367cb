package legality

import (
	"errors"
	"testing"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/boarderr"
	"github.com/DawiQ/dawikk-chessboard/src/engine/notnil"
	"github.com/DawiQ/dawikk-chessboard/src/logic/convert/convfen"
	"github.com/DawiQ/dawikk-chessboard/src/testutil"
)

func sq(t *testing.T, s string) base.Square {
	t.Helper()
	v, err := base.ParseSquare(s)
	if err != nil {
		t.Fatalf("bad square %q: %v", s, err)
	}
	return v
}

func position(t *testing.T, fen string) base.Position {
	t.Helper()
	pos, err := convfen.ConvertFENToPosition(fen)
	if err != nil {
		t.Fatalf("bad FEN %q: %v", fen, err)
	}
	return *pos
}

// stubEngine lets the tests inject engine behavior, including failures.
type stubEngine struct {
	fen       string
	targets   []base.Square
	targetErr error
	applyFEN  string
	applyErr  error
}

func (e *stubEngine) SetPositionFEN(fen string) error { e.fen = fen; return nil }
func (e *stubEngine) FEN() string                     { return e.fen }
func (e *stubEngine) ActiveSide() base.Side           { return base.White }
func (e *stubEngine) LegalTargets(base.Square) ([]base.Square, error) {
	return e.targets, e.targetErr
}
func (e *stubEngine) ApplyMove(base.MoveIntent) (string, error) {
	return e.applyFEN, e.applyErr
}

func TestRuleStrategyDelegatesTargets(t *testing.T) {
	start := position(t, base.StartFEN)
	s := NewRuleStrategy(notnil.New())
	testutil.AssertNoError(t, s.SetPosition(start))

	testutil.AssertEqual(t, s.ReachableTargets(sq(t, "e2"), start.Snap),
		[]base.Square{sq(t, "e3"), sq(t, "e4")})

	// strategy filters empty squares before asking the engine
	testutil.AssertEqual(t, len(s.ReachableTargets(sq(t, "e4"), start.Snap)), 0)

	// wrong side gets nothing back from the engine
	testutil.AssertEqual(t, len(s.ReachableTargets(sq(t, "e7"), start.Snap)), 0)
}

func TestRuleStrategyPropose(t *testing.T) {
	start := position(t, base.StartFEN)
	s := NewRuleStrategy(notnil.New())
	testutil.AssertNoError(t, s.SetPosition(start))

	out, err := s.Propose(base.MoveIntent{From: sq(t, "e2"), To: sq(t, "e4")}, start.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.Accepted)
	testutil.AssertTrue(t, out.Position.Snap.Occupied(sq(t, "e4")), "pawn arrived on e4")
	testutil.AssertFalse(t, out.Position.Snap.Occupied(sq(t, "e2")), "e2 vacated")
	testutil.AssertEqual(t, out.Position.SideToMove, base.Black)

	_, err = s.Propose(base.MoveIntent{From: sq(t, "d7"), To: sq(t, "d5")}, out.Position.Snap)
	testutil.AssertNoError(t, err)
}

func TestRuleStrategyProposeRejects(t *testing.T) {
	start := position(t, base.StartFEN)
	s := NewRuleStrategy(notnil.New())
	testutil.AssertNoError(t, s.SetPosition(start))

	_, err := s.Propose(base.MoveIntent{From: sq(t, "e2"), To: sq(t, "e5")}, start.Snap)
	testutil.AssertErrorIs(t, err, boarderr.ErrIllegalMove)
}

func TestRuleStrategyPromotionGate(t *testing.T) {
	fen := "8/4P3/8/8/8/8/8/K6k w - - 0 1"
	pos := position(t, fen)
	s := NewRuleStrategy(notnil.New())
	testutil.AssertNoError(t, s.SetPosition(pos))

	intent := base.MoveIntent{From: sq(t, "e7"), To: sq(t, "e8")}
	out, err := s.Propose(intent, pos.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, out.Accepted)
	testutil.AssertTrue(t, out.Promotion, "missing kind raises the promotion gate")

	intent.Promotion = base.Rook
	out, err = s.Propose(intent, pos.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.Accepted)
	testutil.AssertEqual(t, out.Position.Snap.At(sq(t, "e8")),
		base.Piece{Kind: base.Rook, Side: base.White})
}

func TestRuleStrategyEngineFailurePassesThrough(t *testing.T) {
	stub := &stubEngine{applyErr: &boarderr.EngineError{Op: "apply move", Err: errors.New("boom")}}
	s := NewRuleStrategy(stub)
	start := position(t, base.StartFEN)

	_, err := s.Propose(base.MoveIntent{From: sq(t, "e2"), To: sq(t, "e4")}, start.Snap)
	testutil.AssertErrorIs(t, err, boarderr.ErrEngineFailure)
}

func TestRuleStrategyMalformedEngineData(t *testing.T) {
	stub := &stubEngine{applyFEN: "garbage"}
	s := NewRuleStrategy(stub)
	start := position(t, base.StartFEN)

	_, err := s.Propose(base.MoveIntent{From: sq(t, "e2"), To: sq(t, "e4")}, start.Snap)
	testutil.AssertErrorIs(t, err, boarderr.ErrEngineFailure)
}

func TestRuleStrategyTargetErrorMeansNoTargets(t *testing.T) {
	stub := &stubEngine{targetErr: &boarderr.EngineError{Op: "legal targets"}}
	s := NewRuleStrategy(stub)
	start := position(t, base.StartFEN)

	testutil.AssertEqual(t, len(s.ReachableTargets(sq(t, "e2"), start.Snap)), 0)
}

func TestBypassTargets(t *testing.T) {
	start := position(t, base.StartFEN)
	s := NewBypass()
	testutil.AssertNoError(t, s.SetPosition(start))

	targets := s.ReachableTargets(sq(t, "e2"), start.Snap)
	testutil.AssertEqual(t, len(targets), 63, "every other square is reachable")
	for _, target := range targets {
		if target == sq(t, "e2") {
			t.Fatal("source square must not be its own target")
		}
	}

	testutil.AssertEqual(t, len(s.ReachableTargets(sq(t, "e4"), start.Snap)), 0,
		"empty squares offer nothing")
}

// Bypass must not care about turn order: White moving twice in a row is
// fine, and so is a Black piece moving while the descriptor says White.
func TestBypassIgnoresTurnOrder(t *testing.T) {
	start := position(t, base.StartFEN)
	s := NewBypass()
	testutil.AssertNoError(t, s.SetPosition(start))

	out, err := s.Propose(base.MoveIntent{From: sq(t, "e2"), To: sq(t, "e4")}, start.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.Accepted)

	out, err = s.Propose(base.MoveIntent{From: sq(t, "d2"), To: sq(t, "d4")}, out.Position.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.Accepted, "second white move in a row")

	out, err = s.Propose(base.MoveIntent{From: sq(t, "e7"), To: sq(t, "e5")}, out.Position.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.Accepted, "black moves while descriptor says white")
}

func TestBypassRejectsNonsense(t *testing.T) {
	start := position(t, base.StartFEN)
	s := NewBypass()

	_, err := s.Propose(base.MoveIntent{From: sq(t, "e4"), To: sq(t, "e5")}, start.Snap)
	testutil.AssertErrorIs(t, err, boarderr.ErrIllegalMove, "empty source")

	_, err = s.Propose(base.MoveIntent{From: sq(t, "e2"), To: sq(t, "e2")}, start.Snap)
	testutil.AssertErrorIs(t, err, boarderr.ErrIllegalMove, "zero displacement")

	_, err = s.Propose(base.MoveIntent{From: base.NoSquare, To: sq(t, "e2")}, start.Snap)
	testutil.AssertErrorIs(t, err, boarderr.ErrIllegalMove, "off-board source")
}

func TestBypassPromotionHeuristic(t *testing.T) {
	pos := position(t, "8/4P3/8/8/8/8/4p3/K6k w - - 0 1")
	s := NewBypass()
	testutil.AssertNoError(t, s.SetPosition(pos))

	// white pawn to the top rank
	out, err := s.Propose(base.MoveIntent{From: sq(t, "e7"), To: sq(t, "e8")}, pos.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.Promotion)

	out, err = s.Propose(base.MoveIntent{From: sq(t, "e7"), To: sq(t, "e8"), Promotion: base.Queen}, pos.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.Accepted)
	testutil.AssertEqual(t, out.Position.Snap.At(sq(t, "e8")),
		base.Piece{Kind: base.Queen, Side: base.White})

	// black pawn to the bottom rank, regardless of the side to move
	out, err = s.Propose(base.MoveIntent{From: sq(t, "e2"), To: sq(t, "e1")}, pos.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.Promotion)

	// white pawn moving to rank 1 is no promotion
	out, err = s.Propose(base.MoveIntent{From: sq(t, "e7"), To: sq(t, "e6")}, pos.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.Accepted)
	testutil.AssertFalse(t, out.Promotion)
}

func TestBypassCarriesDescriptorThrough(t *testing.T) {
	pos := position(t, "4k3/8/8/8/8/8/8/4K3 b kq - 7 21")
	s := NewBypass()
	testutil.AssertNoError(t, s.SetPosition(pos))

	out, err := s.Propose(base.MoveIntent{From: sq(t, "e1"), To: sq(t, "d1")}, pos.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, convfen.ConvertPositionToFEN(out.Position),
		"4k3/8/8/8/8/8/8/3K4 b kq - 7 21")
}

func TestBypassAllowsCapturingOwnPiece(t *testing.T) {
	start := position(t, base.StartFEN)
	s := NewBypass()
	testutil.AssertNoError(t, s.SetPosition(start))

	out, err := s.Propose(base.MoveIntent{From: sq(t, "a1"), To: sq(t, "a2")}, start.Snap)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, out.Accepted)
	testutil.AssertEqual(t, out.Position.Snap.At(sq(t, "a2")),
		base.Piece{Kind: base.Rook, Side: base.White})
	testutil.AssertFalse(t, out.Position.Snap.Occupied(sq(t, "a1")))
}
