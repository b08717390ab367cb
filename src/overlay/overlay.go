// Package overlay is the projection the presentation layer consumes:
// pre-chewed marker state in presentation order, free of controller
// internals. Renderers iterate it; they never reach back into the
// board for decisions.
package overlay

import (
	"fmt"
	"strings"
	"time"

	"github.com/DawiQ/dawikk-chessboard/src/base"
)

// Arrow is a parsed annotation arrow. Kind is a rendering hint only: a
// knight bends the drawn arrow, everything else stays straight.
type Arrow struct {
	From base.Square
	To   base.Square
	Kind base.PieceKind
}

// Overlay is one consistent view of the board for rendering. Board is
// already laid out in presentation order for the carried orientation.
type Overlay struct {
	Board       [8][8]base.Piece
	Orientation base.Orientation
	Selected    base.Square // NoSquare when nothing is selected
	Targets     []base.Square
	LastMove    *base.MoveRecord
	Promotion   *base.MoveRecord // pending promotion move, if any
	Hint        base.Square      // NoSquare when no hint is live
	HintTTL     time.Duration    // remaining hint lifetime, for redraw scheduling
	Hover       base.Square      // square under an active drag, NoSquare otherwise
	Custom      map[base.Square]string
	Arrows      []Arrow
	Masked      []base.Square
}

func (o Overlay) IsSelected(sq base.Square) bool {
	return o.Selected != base.NoSquare && o.Selected == sq
}

func (o Overlay) IsTarget(sq base.Square) bool {
	for _, target := range o.Targets {
		if target == sq {
			return true
		}
	}
	return false
}

func (o Overlay) IsLastMove(sq base.Square) bool {
	return o.LastMove != nil && (o.LastMove.From == sq || o.LastMove.To == sq)
}

func (o Overlay) IsMasked(sq base.Square) bool {
	for _, masked := range o.Masked {
		if masked == sq {
			return true
		}
	}
	return false
}

// ParseArrow reads an annotation like "e2e4" or "Ng1f3". An optional
// leading piece letter becomes the bend hint; the squares must be
// distinct.
func ParseArrow(s string) (Arrow, error) {
	var arrow Arrow
	raw := strings.TrimSpace(s)

	if len(raw) == 5 {
		kind, err := base.ParsePieceKind(string(raw[0]))
		if err != nil {
			return arrow, fmt.Errorf("arrow %q: %v", s, err)
		}
		arrow.Kind = kind
		raw = raw[1:]
	}
	if len(raw) != 4 {
		return arrow, fmt.Errorf("arrow %q: expected <from><to> squares", s)
	}

	from, err := base.ParseSquare(raw[:2])
	if err != nil {
		return arrow, fmt.Errorf("arrow %q: %v", s, err)
	}
	to, err := base.ParseSquare(raw[2:])
	if err != nil {
		return arrow, fmt.Errorf("arrow %q: %v", s, err)
	}
	if from == to {
		return arrow, fmt.Errorf("arrow %q: zero length", s)
	}

	arrow.From = from
	arrow.To = to
	return arrow, nil
}

// ParseHighlights converts a square->tint map keyed by algebraic
// strings, skipping malformed keys. The second result lists what was
// dropped so the caller can log it.
func ParseHighlights(raw map[string]string) (map[base.Square]string, []string) {
	if len(raw) == 0 {
		return nil, nil
	}
	parsed := make(map[base.Square]string, len(raw))
	var dropped []string
	for key, tint := range raw {
		sq, err := base.ParseSquare(key)
		if err != nil {
			dropped = append(dropped, key)
			continue
		}
		parsed[sq] = tint
	}
	if len(parsed) == 0 {
		parsed = nil
	}
	return parsed, dropped
}
