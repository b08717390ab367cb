package coords

import (
	"testing"

	"github.com/DawiQ/dawikk-chessboard/src/base"
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

func TestToPresentationCorners(t *testing.T) {
	tests := []struct {
		square   string
		o        base.Orientation
		row, col int
	}{
		{"a1", base.WhiteBottom, 7, 0},
		{"h1", base.WhiteBottom, 7, 7},
		{"a8", base.WhiteBottom, 0, 0},
		{"h8", base.WhiteBottom, 0, 7},
		{"a1", base.BlackBottom, 0, 7},
		{"h1", base.BlackBottom, 0, 0},
		{"a8", base.BlackBottom, 7, 7},
		{"h8", base.BlackBottom, 7, 0},
		{"e2", base.WhiteBottom, 6, 4},
		{"e2", base.BlackBottom, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.square+"/"+tt.o.String(), func(t *testing.T) {
			row, col := ToPresentation(sq(t, tt.square), tt.o)
			if row != tt.row || col != tt.col {
				t.Errorf("ToPresentation(%s, %v) = (%d,%d), want (%d,%d)",
					tt.square, tt.o, row, col, tt.row, tt.col)
			}
		})
	}
}

func TestRoundTripAllSquares(t *testing.T) {
	for _, o := range []base.Orientation{base.WhiteBottom, base.BlackBottom} {
		for s := base.Square(0); s < 64; s++ {
			row, col := ToPresentation(s, o)
			back, ok := SquareAt(row, col, o)
			if !ok || back != s {
				t.Fatalf("round trip %v under %v: got %v, ok=%v", s, o, back, ok)
			}
		}
	}
}

// Flipping the board is a 180 degree rotation: any square rendered at
// some position with BlackBottom sits where its point-mirror sits with
// WhiteBottom.
func TestOrientationSymmetry(t *testing.T) {
	for s := base.Square(0); s < 64; s++ {
		mirror, _ := base.NewSquare(7-s.File(), 7-s.Rank())
		fr, fc := ToPresentation(s, base.BlackBottom)
		wr, wc := ToPresentation(mirror, base.WhiteBottom)
		if fr != wr || fc != wc {
			t.Fatalf("%v flipped = (%d,%d), mirror %v unflipped = (%d,%d)", s, fr, fc, mirror, wr, wc)
		}
	}
}

func TestSquareAtBounds(t *testing.T) {
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {9, 9}} {
		if _, ok := SquareAt(rc[0], rc[1], base.WhiteBottom); ok {
			t.Errorf("SquareAt(%d,%d) should be out of bounds", rc[0], rc[1])
		}
	}
}

func TestResolveFollowsOrientation(t *testing.T) {
	up2 := base.Displacement{DRow: -2}

	got, ok := Resolve(sq(t, "e2"), up2, base.WhiteBottom)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, got, sq(t, "e4"), "upward drag, white at the bottom")

	got, ok = Resolve(sq(t, "e4"), up2, base.BlackBottom)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, got, sq(t, "e2"), "same gesture flipped runs down the ranks")

	_, ok = Resolve(sq(t, "e2"), base.Displacement{DRow: 3}, base.WhiteBottom)
	testutil.AssertFalse(t, ok, "dragging below the board resolves nowhere")

	_, ok = Resolve(base.NoSquare, up2, base.WhiteBottom)
	testutil.AssertFalse(t, ok)
}

func TestPresentView(t *testing.T) {
	pos, err := convfen.ConvertFENToPosition(base.StartFEN)
	testutil.AssertNoError(t, err)

	white := PresentView(pos.Snap, base.WhiteBottom)
	testutil.AssertEqual(t, white[7][4], base.Piece{Kind: base.King, Side: base.White}, "e1 at bottom row")
	testutil.AssertEqual(t, white[0][3], base.Piece{Kind: base.Queen, Side: base.Black}, "d8 at top row")

	black := PresentView(pos.Snap, base.BlackBottom)
	testutil.AssertEqual(t, black[0][3], base.Piece{Kind: base.King, Side: base.White}, "e1 on top when flipped")
	testutil.AssertEqual(t, black[7][4], base.Piece{Kind: base.Queen, Side: base.Black}, "d8 at bottom when flipped")
}
