// Package coords maps between canonical squares and presentation
// positions. Canonical order is rank-major from White's side (a1=0);
// presentation rows count from the top of the rendered board, so the
// mapping depends on orientation and nothing else here does.
package coords

import "github.com/DawiQ/dawikk-chessboard/src/base"

// ToPresentation converts a square to a rendered row and column.
// Row 0 is the top row. With WhiteBottom, a1 maps to (7,0); with
// BlackBottom the board is rotated 180 degrees, so a1 maps to (0,7).
func ToPresentation(sq base.Square, o base.Orientation) (row, col int) {
	if o == base.BlackBottom {
		return sq.Rank(), 7 - sq.File()
	}
	return 7 - sq.Rank(), sq.File()
}

// SquareAt is the inverse of ToPresentation. It reports false for
// positions outside the 8x8 grid.
func SquareAt(row, col int, o base.Orientation) (base.Square, bool) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return base.NoSquare, false
	}
	if o == base.BlackBottom {
		return base.NewSquare(7-col, row)
	}
	return base.NewSquare(col, 7-row)
}

// Resolve applies a view-space displacement to a square: the gesture
// sources report drags in rendered rows and columns, and the target
// square they land on depends on orientation.
func Resolve(from base.Square, d base.Displacement, o base.Orientation) (base.Square, bool) {
	if !from.Valid() {
		return base.NoSquare, false
	}
	row, col := ToPresentation(from, o)
	return SquareAt(row+d.DRow, col+d.DCol, o)
}

// PresentView lays the snapshot out in rendered order, [row][col] with
// row 0 at the top. Renderers iterate it directly.
func PresentView(snap base.Snapshot, o base.Orientation) [8][8]base.Piece {
	var view [8][8]base.Piece
	for sq := base.Square(0); sq < 64; sq++ {
		row, col := ToPresentation(sq, o)
		view[row][col] = snap[sq]
	}
	return view
}
