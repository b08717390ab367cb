package coords

import (
	"math"

	"github.com/DawiQ/dawikk-chessboard/src/base"
)

// headInset shortens the final arrow leg by this fraction of a square
// so the head never overdraws the piece on the target square.
const headInset = 0.25

type Point struct {
	X float64
	Y float64
}

type Segment struct {
	A Point
	B Point
}

// Path is arrow geometry in board pixels: one segment for a straight
// arrow, two for a knight elbow.
type Path struct {
	Segments []Segment
}

// ArrowPath computes the drawable geometry for an annotation arrow on a
// square board of boardPx pixels. A knight hint bends the arrow through
// an elbow; the first leg follows the axis with the larger displacement,
// and an exact diagonal falls back to horizontal-first. Reports false
// for degenerate input instead of guessing.
func ArrowPath(from, to base.Square, kind base.PieceKind, boardPx int, o base.Orientation) (Path, bool) {
	if !from.Valid() || !to.Valid() || from == to || boardPx <= 0 {
		return Path{}, false
	}

	sq := float64(boardPx) / 8
	a := center(from, sq, o)
	b := center(to, sq, o)
	inset := headInset * sq

	if kind == base.Knight {
		elbow := Point{X: b.X, Y: a.Y}
		if dy, dx := math.Abs(b.Y-a.Y), math.Abs(b.X-a.X); dy > dx {
			elbow = Point{X: a.X, Y: b.Y}
		}
		return Path{Segments: []Segment{
			{A: a, B: elbow},
			{A: elbow, B: shorten(elbow, b, inset)},
		}}, true
	}

	return Path{Segments: []Segment{{A: a, B: shorten(a, b, inset)}}}, true
}

func center(sq base.Square, sqSize float64, o base.Orientation) Point {
	row, col := ToPresentation(sq, o)
	return Point{
		X: (float64(col) + 0.5) * sqSize,
		Y: (float64(row) + 0.5) * sqSize,
	}
}

// shorten moves b toward a by the given distance, leaving degenerate
// segments alone.
func shorten(a, b Point, by float64) Point {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length <= by {
		return b
	}
	scale := (length - by) / length
	return Point{X: a.X + dx*scale, Y: a.Y + dy*scale}
}
