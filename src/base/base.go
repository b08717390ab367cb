package base

import (
	"fmt"
	"strings"

	"github.com/DawiQ/dawikk-chessboard/src/boarderr"
)

// Forsyth–Edwards Notation
const StartFEN string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Square indexes the board rank-major: a1=0, b1=1, ..., h8=63.
// The order never changes with orientation; presentation mapping is
// the coords package's job.
type Square int8

// NoSquare marks "no square selected" and absent en-passant targets.
const NoSquare Square = -1

func NewSquare(file, rank int) (Square, bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, false
	}
	return Square(rank*8 + file), true
}

func (s Square) Valid() bool {
	return s >= 0 && s < 64
}

// File returns 0..7 for files a..h.
func (s Square) File() int {
	return int(s) % 8
}

// Rank returns 0..7 for ranks 1..8.
func (s Square) Rank() int {
	return int(s) / 8
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte(s.File()) + 'a', byte(s.Rank()) + '1'})
}

// ParseSquare converts "a1".."h8" to a Square.
func ParseSquare(pos string) (Square, error) {
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return NoSquare, boarderr.Wrapf(boarderr.ErrInvalidSquare, "%q", pos)
	}
	return Square(int(pos[1]-'1')*8 + int(pos[0]-'a')), nil
}

func (s Square) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, boarderr.Wrapf(boarderr.ErrInvalidSquare, "index %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}

type Side uint8

const (
	NoSide Side = iota
	White
	Black
)

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

func (s Side) Other() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoSide
	}
}

type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// ParsePieceKind accepts the full lowercase name or the single
// English letter ("n" and "knight" both mean knight).
func ParsePieceKind(name string) (PieceKind, error) {
	switch strings.ToLower(name) {
	case "pawn", "p":
		return Pawn, nil
	case "knight", "n":
		return Knight, nil
	case "bishop", "b":
		return Bishop, nil
	case "rook", "r":
		return Rook, nil
	case "queen", "q":
		return Queen, nil
	case "king", "k":
		return King, nil
	default:
		return NoKind, fmt.Errorf("unknown piece kind %q", name)
	}
}

// Piece is an occupant of a square. The zero value marks an empty
// square; it is never conflated with a hidden piece, which is a
// visibility concern.
type Piece struct {
	Kind PieceKind
	Side Side
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Rune returns the FEN letter for the piece, '.' when empty.
func (p Piece) Rune() rune {
	var r rune
	switch p.Kind {
	case Pawn:
		r = 'p'
	case Knight:
		r = 'n'
	case Bishop:
		r = 'b'
	case Rook:
		r = 'r'
	case Queen:
		r = 'q'
	case King:
		r = 'k'
	default:
		return '.'
	}
	if p.Side == White {
		return r - 'a' + 'A'
	}
	return r
}

// PieceFromRune converts a FEN letter to a Piece. Unknown runes give
// the empty piece.
func PieceFromRune(r rune) Piece {
	switch r {
	case 'P':
		return Piece{Pawn, White}
	case 'N':
		return Piece{Knight, White}
	case 'B':
		return Piece{Bishop, White}
	case 'R':
		return Piece{Rook, White}
	case 'Q':
		return Piece{Queen, White}
	case 'K':
		return Piece{King, White}
	case 'p':
		return Piece{Pawn, Black}
	case 'n':
		return Piece{Knight, Black}
	case 'b':
		return Piece{Bishop, Black}
	case 'r':
		return Piece{Rook, Black}
	case 'q':
		return Piece{Queen, Black}
	case 'k':
		return Piece{King, Black}
	default:
		return Piece{}
	}
}

// Snapshot is the canonical mailbox. It is a value type: assignment
// copies, so read-only views handed to renderers are naturally
// isolated from later transitions.
type Snapshot [64]Piece

func (s *Snapshot) At(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return s[sq]
}

func (s *Snapshot) Put(sq Square, p Piece) {
	if !sq.Valid() {
		return
	}
	s[sq] = p
}

func (s *Snapshot) Occupied(sq Square) bool {
	return !s.At(sq).IsEmpty()
}

type Castling struct {
	WK bool
	WQ bool
	BK bool
	BQ bool
}

func (c Castling) String() string {
	var b strings.Builder
	if c.WK {
		b.WriteByte('K')
	}
	if c.WQ {
		b.WriteByte('Q')
	}
	if c.BK {
		b.WriteByte('k')
	}
	if c.BQ {
		b.WriteByte('q')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// Position is a snapshot plus the descriptor fields a FEN carries.
// Bypass-mode play never interprets anything beyond Snap, but keeps
// the rest so the position can be re-exported unchanged.
type Position struct {
	Snap       Snapshot
	SideToMove Side
	Castling   Castling
	EnPassant  Square
	Halfmove   int
	Fullmove   int
}

// MoveIntent is a move as proposed by the controller: source, target
// and the promotion kind when one has been chosen.
type MoveIntent struct {
	From      Square
	To        Square
	Promotion PieceKind
}

func (m MoveIntent) String() string {
	if m.Promotion == NoKind {
		return m.From.String() + m.To.String()
	}
	return m.From.String() + m.To.String() + string(Piece{Kind: m.Promotion, Side: Black}.Rune())
}

// MoveRecord is the last committed move, kept for presentation.
type MoveRecord struct {
	From Square
	To   Square
}

// Displacement is a gesture offset in presentation rows and columns,
// positive DRow moving down the rendered board.
type Displacement struct {
	DRow int
	DCol int
}

type Orientation uint8

const (
	WhiteBottom Orientation = iota
	BlackBottom
)

func (o Orientation) String() string {
	if o == BlackBottom {
		return "black"
	}
	return "white"
}

func (o Orientation) Other() Orientation {
	if o == BlackBottom {
		return WhiteBottom
	}
	return BlackBottom
}

func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white", "":
		*o = WhiteBottom
	case "black":
		*o = BlackBottom
	default:
		return fmt.Errorf("unknown orientation %q", string(text))
	}
	return nil
}

// HiddenSquares selects which occupied squares a blindfold hides:
// everything, or an explicit set.
type HiddenSquares struct {
	All     bool
	Squares map[Square]struct{}
}

func HideAll() HiddenSquares {
	return HiddenSquares{All: true}
}

func HideSet(sqs ...Square) HiddenSquares {
	h := HiddenSquares{Squares: make(map[Square]struct{}, len(sqs))}
	for _, sq := range sqs {
		if sq.Valid() {
			h.Squares[sq] = struct{}{}
		}
	}
	return h
}

func (h HiddenSquares) Contains(sq Square) bool {
	if h.All {
		return true
	}
	_, ok := h.Squares[sq]
	return ok
}

func (h HiddenSquares) Empty() bool {
	return !h.All && len(h.Squares) == 0
}

// PromotionRank is the farthest rank for the side, where a pawn must
// promote.
func PromotionRank(s Side) int {
	if s == Black {
		return 0
	}
	return 7
}

// PawnPromotes reports whether moving p to the target square completes
// a promotion. It looks only at the piece and the geometry, so it
// serves bypass mode where no rule engine is consulted.
func PawnPromotes(p Piece, to Square) bool {
	if p.Kind != Pawn || !to.Valid() {
		return false
	}
	return to.Rank() == PromotionRank(p.Side)
}
