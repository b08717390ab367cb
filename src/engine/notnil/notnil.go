// Package notnil adapts github.com/notnil/chess to the engine contract.
package notnil

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/boarderr"
)

// Adapter owns a chess.Game and answers the rules questions the board
// delegates. The game advances only through ApplyMove.
type Adapter struct {
	game *chess.Game
}

// New starts from the classic initial position.
func New() *Adapter {
	return &Adapter{game: chess.NewGame(chess.UseNotation(chess.UCINotation{}))}
}

// NewFromFEN starts from a position descriptor.
func NewFromFEN(fen string) (*Adapter, error) {
	a := New()
	if err := a.SetPositionFEN(fen); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Adapter) SetPositionFEN(fen string) error {
	opt, err := chess.FEN(fen)
	if err != nil {
		return &boarderr.EngineError{Op: "set position", Err: err}
	}
	a.game = chess.NewGame(opt, chess.UseNotation(chess.UCINotation{}))
	return nil
}

func (a *Adapter) FEN() string {
	return a.game.Position().String()
}

func (a *Adapter) ActiveSide() base.Side {
	if a.game.Position().Turn() == chess.Black {
		return base.Black
	}
	return base.White
}

func (a *Adapter) LegalTargets(from base.Square) ([]base.Square, error) {
	if !from.Valid() {
		return nil, nil
	}
	src := toChessSquare(from)
	seen := make(map[base.Square]bool)
	var targets []base.Square
	for _, mv := range a.game.ValidMoves() {
		if mv.S1() != src {
			continue
		}
		// promotion variants repeat the destination
		sq := fromChessSquare(mv.S2())
		if !seen[sq] {
			seen[sq] = true
			targets = append(targets, sq)
		}
	}
	return targets, nil
}

func (a *Adapter) ApplyMove(intent base.MoveIntent) (string, error) {
	from := toChessSquare(intent.From)
	to := toChessSquare(intent.To)

	var chosen *chess.Move
	needsPromotion := false
	for _, mv := range a.game.ValidMoves() {
		if mv.S1() != from || mv.S2() != to {
			continue
		}
		if mv.Promo() == chess.NoPieceType {
			if intent.Promotion == base.NoKind {
				chosen = mv
				break
			}
			continue
		}
		if intent.Promotion == base.NoKind {
			needsPromotion = true
			continue
		}
		if mv.Promo() == toChessPieceType(intent.Promotion) {
			chosen = mv
			break
		}
	}

	if chosen == nil {
		if needsPromotion {
			return "", boarderr.Wrapf(boarderr.ErrPromotionRequired, "%s", intent)
		}
		return "", boarderr.Wrapf(boarderr.ErrIllegalMove, "%s", intent)
	}
	if err := a.game.Move(chosen); err != nil {
		// a move from ValidMoves refused: engine state is suspect
		return "", &boarderr.EngineError{Op: "apply move", Err: err}
	}
	return a.FEN(), nil
}

// Result describes the game state for status lines: "checkmate",
// "stalemate", a decided outcome with its method, or "in play".
func (a *Adapter) Result() string {
	switch a.game.Position().Status() {
	case chess.Checkmate:
		return "checkmate"
	case chess.Stalemate:
		return "stalemate"
	}
	if a.game.Outcome() != chess.NoOutcome {
		return fmt.Sprintf("%v (%v)", a.game.Outcome(), a.game.Method())
	}
	return "in play"
}

func toChessSquare(sq base.Square) chess.Square {
	return chess.Square(sq)
}

func fromChessSquare(sq chess.Square) base.Square {
	return base.Square(sq)
}

func toChessPieceType(k base.PieceKind) chess.PieceType {
	switch k {
	case base.Queen:
		return chess.Queen
	case base.Rook:
		return chess.Rook
	case base.Bishop:
		return chess.Bishop
	case base.Knight:
		return chess.Knight
	default:
		return chess.NoPieceType
	}
}
