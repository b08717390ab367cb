package coords

import (
	"testing"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/testutil"
)

// boardPx 80 gives a 10px square, so centers land on x5 coordinates and
// the head inset is exactly 2.5.
const testBoardPx = 80

func TestArrowPathStraight(t *testing.T) {
	path, ok := ArrowPath(sq(t, "e2"), sq(t, "e4"), base.NoKind, testBoardPx, base.WhiteBottom)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, path, Path{Segments: []Segment{
		{A: Point{X: 45, Y: 65}, B: Point{X: 45, Y: 47.5}},
	}})
}

func TestArrowPathStraightFlipped(t *testing.T) {
	path, ok := ArrowPath(sq(t, "e2"), sq(t, "e4"), base.NoKind, testBoardPx, base.BlackBottom)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, path, Path{Segments: []Segment{
		{A: Point{X: 35, Y: 15}, B: Point{X: 35, Y: 32.5}},
	}})
}

func TestArrowPathKnightElbow(t *testing.T) {
	path, ok := ArrowPath(sq(t, "g1"), sq(t, "f3"), base.Knight, testBoardPx, base.WhiteBottom)
	testutil.AssertTrue(t, ok)
	// two ranks up, one file over: the long leg runs first
	testutil.AssertEqual(t, path, Path{Segments: []Segment{
		{A: Point{X: 65, Y: 75}, B: Point{X: 65, Y: 55}},
		{A: Point{X: 65, Y: 55}, B: Point{X: 57.5, Y: 55}},
	}})
}

func TestArrowPathKnightTieBreaksHorizontal(t *testing.T) {
	path, ok := ArrowPath(sq(t, "e4"), sq(t, "g6"), base.Knight, testBoardPx, base.WhiteBottom)
	testutil.AssertTrue(t, ok)
	if len(path.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(path.Segments))
	}
	first := path.Segments[0]
	if first.A.Y != first.B.Y {
		t.Errorf("diagonal tie should start horizontal, got %+v", first)
	}
	testutil.AssertEqual(t, first, Segment{A: Point{X: 45, Y: 45}, B: Point{X: 65, Y: 45}})
}

func TestArrowPathQueenHintStaysStraight(t *testing.T) {
	path, ok := ArrowPath(sq(t, "d1"), sq(t, "h5"), base.Queen, testBoardPx, base.WhiteBottom)
	testutil.AssertTrue(t, ok)
	if len(path.Segments) != 1 {
		t.Errorf("non-knight hints draw one segment, got %d", len(path.Segments))
	}
}

func TestArrowPathDegenerate(t *testing.T) {
	e4 := sq(t, "e4")
	if _, ok := ArrowPath(e4, e4, base.NoKind, testBoardPx, base.WhiteBottom); ok {
		t.Error("zero-length arrow should not produce geometry")
	}
	if _, ok := ArrowPath(base.NoSquare, e4, base.NoKind, testBoardPx, base.WhiteBottom); ok {
		t.Error("invalid source should not produce geometry")
	}
	if _, ok := ArrowPath(e4, sq(t, "e5"), base.NoKind, 0, base.WhiteBottom); ok {
		t.Error("non-positive board size should not produce geometry")
	}
}
