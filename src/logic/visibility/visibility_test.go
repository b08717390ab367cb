package visibility

import (
	"testing"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/logic/convert/convfen"
	"github.com/DawiQ/dawikk-chessboard/src/testutil"
)

func TestMasked(t *testing.T) {
	e4, _ := base.ParseSquare("e4")
	d5, _ := base.ParseSquare("d5")

	tests := []struct {
		name     string
		sq       base.Square
		occupied bool
		pol      Policy
		want     bool
	}{
		{"disabled policy", e4, true, Reveal(), false},
		{"blindfold occupied", e4, true, Blindfold(), true},
		{"blindfold empty square", e4, false, Blindfold(), false},
		{"explicit set hit", e4, true, HideOnly(e4), true},
		{"explicit set miss", d5, true, HideOnly(e4), false},
		{"explicit set empty square", e4, false, HideOnly(e4), false},
		{"invalid square", base.NoSquare, true, Blindfold(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Masked(tt.sq, tt.occupied, tt.pol); got != tt.want {
				t.Errorf("Masked(%v, %v) = %v, want %v", tt.sq, tt.occupied, got, tt.want)
			}
		})
	}
}

// Masking must never report an empty square, no matter how the hidden
// set is built.
func TestMaskedNeverOnEmptySquares(t *testing.T) {
	pos, err := convfen.ConvertFENToPosition("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	testutil.AssertNoError(t, err)

	for _, pol := range []Policy{Blindfold(), HideOnly(mustSq(t, "e1"), mustSq(t, "e4"))} {
		for _, sq := range MaskedSet(pos.Snap, pol) {
			if !pos.Snap.Occupied(sq) {
				t.Errorf("masked set contains empty square %v", sq)
			}
		}
	}
}

func TestMaskedSet(t *testing.T) {
	pos, err := convfen.ConvertFENToPosition("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, MaskedSet(pos.Snap, Blindfold()),
		[]base.Square{mustSq(t, "e1"), mustSq(t, "e8")})
	testutil.AssertEqual(t, MaskedSet(pos.Snap, HideOnly(mustSq(t, "e8"))),
		[]base.Square{mustSq(t, "e8")})
	if got := MaskedSet(pos.Snap, Reveal()); got != nil {
		t.Errorf("reveal-all should mask nothing, got %v", got)
	}
}

func mustSq(t *testing.T, s string) base.Square {
	t.Helper()
	sq, err := base.ParseSquare(s)
	if err != nil {
		t.Fatalf("bad square %q: %v", s, err)
	}
	return sq
}
