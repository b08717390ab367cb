package src

import (
	"errors"
	"fmt"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/boarderr"
	"github.com/DawiQ/dawikk-chessboard/src/logic/coords"
	"github.com/DawiQ/dawikk-chessboard/src/logic/visibility"
)

// ActivateSquare feeds one tap into the selection machine. The square
// arrives in algebraic form; anything else is rejected before the
// machine sees it.
func (b *Board) ActivateSquare(square string) error {
	sq, err := base.ParseSquare(square)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.activate(sq)
	return nil
}

func (b *Board) activate(sq base.Square) {
	if b.redirectMasked(sq) {
		return
	}
	switch b.state {
	case StatePromotion:
		// The open promotion choice blocks the board, like a modal.
		b.logger.Debugf("tap on %v ignored while promotion pending", sq)
	case StateSelected:
		b.activateSelected(sq)
	default:
		b.trySelect(sq)
	}
}

// activateSelected resolves a tap while a piece is held: the selected
// square toggles off, another eligible piece takes the selection over,
// a reachable square becomes a move, anything else drops the selection.
func (b *Board) activateSelected(sq base.Square) {
	switch {
	case sq == b.selected:
		b.logger.Debugf("deselect %v", sq)
		b.clearSelection()
	case b.trySelect(sq):
	case b.inTargets(sq):
		b.proposeMove(sq)
	default:
		b.logger.Debugf("tap on %v matches nothing, dropping selection", sq)
		b.clearSelection()
		b.emitInvalid(SignalInvalidMove)
	}
}

// redirectMasked consumes input aimed at a hidden occupied square and
// turns it into a reveal request. The machine state stays untouched.
func (b *Board) redirectMasked(sq base.Square) bool {
	if !visibility.Masked(sq, b.pos.Snap.Occupied(sq), b.pol) {
		return false
	}
	b.logger.Debugf("reveal request for masked %v", sq)
	if b.events.Reveal != nil {
		b.events.Reveal(sq)
	}
	return true
}

// trySelect promotes sq to the selected piece when it is eligible: an
// occupied square inside the restriction set with at least one
// reachable target. It reports whether the selection changed.
func (b *Board) trySelect(sq base.Square) bool {
	if !b.cfg.Allows(sq) {
		b.logger.Debugf("square %v outside the restriction set", sq)
		return false
	}
	if !b.pos.Snap.Occupied(sq) {
		return false
	}
	targets := b.allowedTargets(sq)
	if len(targets) == 0 {
		b.logger.Debugf("no reachable targets from %v", sq)
		return false
	}
	b.state = StateSelected
	b.selected = sq
	b.targets = targets
	b.logger.Debugf("selected %v, %d targets", sq, len(targets))
	return true
}

func (b *Board) allowedTargets(from base.Square) []base.Square {
	raw := b.strategy.ReachableTargets(from, b.pos.Snap)
	if len(raw) == 0 {
		return nil
	}
	targets := make([]base.Square, 0, len(raw))
	for _, t := range raw {
		if b.cfg.Allows(t) {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return nil
	}
	return targets
}

func (b *Board) inTargets(sq base.Square) bool {
	for _, t := range b.targets {
		if t == sq {
			return true
		}
	}
	return false
}

// proposeMove runs the commit pipeline for the current selection. The
// debounce window guards this entry and only this entry; a promotion
// choice made later must never be swallowed by it.
func (b *Board) proposeMove(to base.Square) {
	if d := b.cfg.Debounce(); d > 0 && b.now().Sub(b.lastCommit) < d {
		b.logger.Debugf("proposal %v%v inside debounce window, dropped", b.selected, to)
		return
	}
	intent := base.MoveIntent{From: b.selected, To: to}
	out, err := b.strategy.Propose(intent, b.pos.Snap)
	if err != nil {
		if errors.Is(err, boarderr.ErrEngineFailure) {
			b.logger.Errorf("engine failed on %v: %v", intent, err)
		} else {
			b.logger.Infof("rejected %v: %v", intent, err)
		}
		b.clearSelection()
		b.emitInvalid(SignalInvalidMove)
		return
	}
	if out.Promotion {
		b.state = StatePromotion
		b.pendingFrom = intent.From
		b.pendingTo = intent.To
		b.selected = base.NoSquare
		b.targets = nil
		b.logger.Debugf("promotion pending for %v", intent)
		if b.events.PromotionPending != nil {
			b.events.PromotionPending(intent.From, intent.To)
		}
		return
	}
	b.commit(intent, out.Position)
}

func (b *Board) commit(intent base.MoveIntent, next base.Position) {
	b.pos = next
	rec := base.MoveRecord{From: intent.From, To: intent.To}
	b.lastMove = &rec
	b.clearSelection()
	b.hintSq = base.NoSquare
	b.lastCommit = b.now()
	b.logger.Infof("move committed: %v", intent)
	if b.events.MoveCommitted != nil {
		b.events.MoveCommitted(rec)
	}
}

// ChoosePromotion resolves a gated promotion with the chosen piece
// kind, by name or letter. Outside the promotion phase it fails with
// ErrInvalidState; a kind a pawn cannot become leaves the choice open.
func (b *Board) ChoosePromotion(kind string) error {
	k, perr := base.ParsePieceKind(kind)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StatePromotion {
		return fmt.Errorf("%w: no promotion pending", boarderr.ErrInvalidState)
	}
	if perr != nil || !promotable(k) {
		return fmt.Errorf("%w: %q", boarderr.ErrInvalidPromotion, kind)
	}

	intent := base.MoveIntent{From: b.pendingFrom, To: b.pendingTo, Promotion: k}
	out, err := b.strategy.Propose(intent, b.pos.Snap)
	if err != nil || !out.Accepted {
		if err == nil {
			err = fmt.Errorf("%w: promotion not accepted", boarderr.ErrIllegalMove)
		}
		b.logger.Errorf("promotion %v failed: %v", intent, err)
		b.clearSelection()
		b.emitInvalid(SignalInvalidMove)
		return err
	}
	b.commit(intent, out.Position)
	return nil
}

func promotable(k base.PieceKind) bool {
	switch k {
	case base.Queen, base.Rook, base.Bishop, base.Knight:
		return true
	}
	return false
}

// BeginDrag lifts the piece on the given square. An ineligible square
// simply does not lift and the machine stays as it was.
func (b *Board) BeginDrag(square string) error {
	sq, err := base.ParseSquare(square)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.redirectMasked(sq) {
		return nil
	}
	if b.state == StatePromotion {
		b.logger.Debugf("drag from %v ignored while promotion pending", sq)
		return nil
	}
	if !b.trySelect(sq) {
		return nil
	}
	b.dragging = true
	b.dragFrom = sq
	b.dragOver = sq
	return nil
}

// UpdateDrag tracks the square currently under the dragged piece. The
// square may be empty when the source only knows the displacement from
// the origin.
func (b *Board) UpdateDrag(square string, d base.Displacement) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.dragging {
		b.logger.Debugf("drag update without an active drag, ignored")
		return nil
	}
	over, err := b.resolveDrop(square, d)
	if err != nil {
		return err
	}
	b.dragOver = over
	return nil
}

// EndDrag releases the dragged piece. The over-square wins when the
// source names one; otherwise the displacement from the origin decides.
// A release off the board or on an unreachable square aborts the drag
// with an invalid-drop signal; settling back on the origin is a plain
// deselect.
func (b *Board) EndDrag(square string, d base.Displacement) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.dragging {
		b.logger.Debugf("drag end without an active drag, ignored")
		return nil
	}
	from := b.dragFrom
	target, err := b.resolveDrop(square, d)
	b.cancelDrag()
	if err != nil {
		b.abortDrag(from)
		return err
	}
	switch {
	case target == base.NoSquare:
		b.abortDrag(from)
	case target == from:
		b.logger.Debugf("drag settled back on %v", from)
		b.clearSelection()
	case b.inTargets(target):
		b.proposeMove(target)
	default:
		b.abortDrag(from)
	}
	return nil
}

func (b *Board) resolveDrop(square string, d base.Displacement) (base.Square, error) {
	if square != "" {
		return base.ParseSquare(square)
	}
	sq, ok := coords.Resolve(b.dragFrom, d, b.cfg.Orientation)
	if !ok {
		return base.NoSquare, nil
	}
	return sq, nil
}

func (b *Board) abortDrag(from base.Square) {
	b.logger.Debugf("drag from %v aborted", from)
	b.clearSelection()
	b.emitInvalid(SignalInvalidDrop)
}
