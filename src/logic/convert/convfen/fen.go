package convfen

import (
	"strconv"
	"strings"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/boarderr"
)

// ConvertPositionToFEN renders the position as a FEN descriptor. Fields
// the board never interpreted (castling, en-passant, counters) come back
// out exactly as they were parsed in.
func ConvertPositionToFEN(pos base.Position) string {
	// pieces
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := pos.Snap[rank*8+file]
			if pc.IsEmpty() {
				empty++
			} else {
				if empty > 0 {
					b.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				b.WriteRune(pc.Rune())
			}
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	// side to move
	if pos.SideToMove == base.Black {
		b.WriteString(" b ")
	} else {
		b.WriteString(" w ")
	}

	// castling
	b.WriteString(pos.Castling.String() + " ")

	// en-passant
	if !pos.EnPassant.Valid() {
		b.WriteString("- ")
	} else {
		b.WriteString(pos.EnPassant.String() + " ")
	}

	// counters
	b.WriteString(strconv.Itoa(pos.Halfmove) + " ")
	b.WriteString(strconv.Itoa(pos.Fullmove))

	return b.String()
}

// ConvertFENToPosition parses a FEN descriptor. The counter fields are
// optional; everything else is validated field by field.
func ConvertFENToPosition(fen string) (*base.Position, error) {
	pos := &base.Position{EnPassant: base.NoSquare, Fullmove: 1}

	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, boarderr.Wrapf(boarderr.ErrInvalidFEN, "expected at least 4 fields, got %d", len(parts))
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, boarderr.Wrapf(boarderr.ErrInvalidFEN, "expected 8 ranks, got %d", len(ranks))
	}

	// pieces
	for r := 0; r < 8; r++ {
		row := ranks[r]
		count := 0
		for _, ch := range row {
			if count >= 8 {
				return nil, boarderr.Wrapf(boarderr.ErrInvalidFEN, "rank %d overflows", 8-r)
			}
			if ch >= '1' && ch <= '8' {
				empty := int(ch - '0')
				if count+empty > 8 {
					return nil, boarderr.Wrapf(boarderr.ErrInvalidFEN, "rank %d overflows", 8-r)
				}
				count += empty
			} else {
				pc := base.PieceFromRune(ch)
				if pc.IsEmpty() {
					return nil, boarderr.Wrapf(boarderr.ErrInvalidFEN, "unknown piece %q", ch)
				}
				pos.Snap[(7-r)*8+count] = pc
				count++
			}
		}
		if count != 8 {
			return nil, boarderr.Wrapf(boarderr.ErrInvalidFEN, "rank %d has %d files", 8-r, count)
		}
	}

	// side to move
	switch parts[1] {
	case "w":
		pos.SideToMove = base.White
	case "b":
		pos.SideToMove = base.Black
	default:
		return nil, boarderr.Wrapf(boarderr.ErrInvalidFEN, "bad side to move %q", parts[1])
	}

	// castling
	cast := parts[2]
	if cast != "-" {
		pos.Castling.WK = strings.Contains(cast, "K")
		pos.Castling.WQ = strings.Contains(cast, "Q")
		pos.Castling.BK = strings.Contains(cast, "k")
		pos.Castling.BQ = strings.Contains(cast, "q")
	}

	// en-passant
	ep := parts[3]
	if ep != "-" {
		sq, err := base.ParseSquare(ep)
		if err != nil {
			return nil, boarderr.Wrapf(boarderr.ErrInvalidFEN, "bad en-passant %q", ep)
		}
		pos.EnPassant = sq
	}

	// halfmove
	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return nil, boarderr.Wrapf(boarderr.ErrInvalidFEN, "bad halfmove %q", parts[4])
		}
		pos.Halfmove = n
	}

	// fullmove
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, boarderr.Wrapf(boarderr.ErrInvalidFEN, "bad fullmove %q", parts[5])
		}
		pos.Fullmove = n
	}

	return pos, nil
}
