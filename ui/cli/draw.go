package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/logic/coords"
	"github.com/DawiQ/dawikk-chessboard/src/overlay"
)

// square paints, one per marker kind; marker precedence is decided in
// paintFor, not here
var (
	paintLight    = color.New(color.FgBlack, color.BgWhite)
	paintDark     = color.New(color.FgHiWhite, color.BgHiBlack)
	paintCursor   = color.New(color.FgBlack, color.BgHiMagenta)
	paintSelected = color.New(color.FgBlack, color.BgHiCyan)
	paintHover    = color.New(color.FgBlack, color.BgCyan)
	paintTarget   = color.New(color.FgBlack, color.BgHiBlue)
	paintHint     = color.New(color.FgBlack, color.BgHiGreen)
	paintLastMove = color.New(color.FgBlack, color.BgHiYellow)
	paintCustom   = color.New(color.FgBlack, color.BgRed)
)

var (
	whiteGlyphs = map[base.PieceKind]string{
		base.King: "♔", base.Queen: "♕", base.Rook: "♖",
		base.Bishop: "♗", base.Knight: "♘", base.Pawn: "♙",
	}
	blackGlyphs = map[base.PieceKind]string{
		base.King: "♚", base.Queen: "♛", base.Rook: "♜",
		base.Bishop: "♝", base.Knight: "♞", base.Pawn: "♟",
	}
)

func pieceGlyph(p base.Piece) string {
	if p.IsEmpty() {
		return " "
	}
	if p.Side == base.White {
		return whiteGlyphs[p.Kind]
	}
	return blackGlyphs[p.Kind]
}

func paintFor(o overlay.Overlay, sq base.Square, row, col int, cursor base.Square) *color.Color {
	switch {
	case sq == cursor:
		return paintCursor
	case o.IsSelected(sq):
		return paintSelected
	case sq == o.Hover && o.Hover != base.NoSquare:
		return paintHover
	case o.IsTarget(sq):
		return paintTarget
	case sq == o.Hint:
		return paintHint
	case o.IsLastMove(sq):
		return paintLastMove
	case o.Custom[sq] != "":
		return paintCustom
	case (row+col)%2 == 0:
		return paintLight
	default:
		return paintDark
	}
}

func fileLabels(o base.Orientation) string {
	if o == base.BlackBottom {
		return "   h  g  f  e  d  c  b  a"
	}
	return "   a  b  c  d  e  f  g  h"
}

func rankLabel(row int, o base.Orientation) int {
	if o == base.BlackBottom {
		return row + 1
	}
	return 8 - row
}

// Render prints the projected board. The cursor square belongs to the
// terminal driver, not to the controller, so it arrives separately;
// pass NoSquare when there is none.
func Render(w io.Writer, o overlay.Overlay, cursor base.Square) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, fileLabels(o.Orientation))
	for row := 0; row < 8; row++ {
		label := rankLabel(row, o.Orientation)
		fmt.Fprintf(w, "%d ", label)
		for col := 0; col < 8; col++ {
			sq, _ := coords.SquareAt(row, col, o.Orientation)
			g := pieceGlyph(o.Board[row][col])
			if o.IsMasked(sq) {
				g = "?"
			}
			if g == " " && o.IsTarget(sq) {
				g = "·"
			}
			paintFor(o, sq, row, col, cursor).Fprintf(w, " %s ", g)
		}
		fmt.Fprintf(w, " %d\n", label)
	}
	fmt.Fprintln(w, fileLabels(o.Orientation))
	if len(o.Arrows) > 0 {
		fmt.Fprintf(w, "arrows: %s\n", formatArrows(o.Arrows))
	}
	fmt.Fprintln(w)
}

func formatArrows(arrows []overlay.Arrow) string {
	parts := make([]string, len(arrows))
	for i, a := range arrows {
		if a.Kind != base.NoKind {
			parts[i] = fmt.Sprintf("%v-%v (%v)", a.From, a.To, a.Kind)
		} else {
			parts[i] = fmt.Sprintf("%v-%v", a.From, a.To)
		}
	}
	return strings.Join(parts, ", ")
}
