// Package src holds the board interaction controller: one state
// machine that turns taps and drags from any input source into the
// move protocol, with legality delegated to a pluggable strategy.
package src

import (
	"sync"
	"time"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/config"
	"github.com/DawiQ/dawikk-chessboard/src/engine"
	"github.com/DawiQ/dawikk-chessboard/src/engine/notnil"
	"github.com/DawiQ/dawikk-chessboard/src/logic/convert/convfen"
	"github.com/DawiQ/dawikk-chessboard/src/logic/coords"
	"github.com/DawiQ/dawikk-chessboard/src/logic/legality"
	"github.com/DawiQ/dawikk-chessboard/src/logic/visibility"
	"github.com/DawiQ/dawikk-chessboard/src/logx"
	"github.com/DawiQ/dawikk-chessboard/src/overlay"
)

// Signal classifies rejected input so presentation can pick short or
// long failure feedback.
type Signal uint8

const (
	// SignalInvalidMove: a proposed move the strategy refused, or a tap
	// on a square that is neither selectable nor reachable.
	SignalInvalidMove Signal = iota
	// SignalInvalidDrop: a drag released outside the board or on an
	// unreachable square.
	SignalInvalidDrop
)

func (s Signal) String() string {
	if s == SignalInvalidDrop {
		return "invalid drop"
	}
	return "invalid move"
}

// Events are optional hooks fired synchronously inside the transition
// that caused them. Handlers must not call back into the Board from the
// same goroutine; hand the work to your own event loop instead.
type Events struct {
	MoveCommitted    func(base.MoveRecord)
	PromotionPending func(from, to base.Square)
	Invalid          func(Signal)
	Reveal           func(base.Square)
}

// State is the selection machine's current phase.
type State uint8

const (
	StateIdle State = iota
	StateSelected
	StatePromotion
)

func (s State) String() string {
	switch s {
	case StateSelected:
		return "piece selected"
	case StatePromotion:
		return "promotion pending"
	default:
		return "idle"
	}
}

// Board reconciles tap and drag input into selections and committed
// moves. Every public method is a single synchronous transition; the
// mutex makes stray cross-goroutine use safe, and readers always get
// value copies.
type Board struct {
	mu     sync.Mutex
	cfg    config.Config
	pol    visibility.Policy
	logger logx.Logger
	events Events

	eng      engine.Engine
	strategy legality.Strategy

	pos   base.Position
	state State

	selected base.Square
	targets  []base.Square

	pendingFrom base.Square
	pendingTo   base.Square

	dragging bool
	dragFrom base.Square
	dragOver base.Square

	lastMove *base.MoveRecord

	hintSq    base.Square
	hintUntil time.Time

	custom map[base.Square]string
	arrows []overlay.Arrow

	lastCommit time.Time
	now        func() time.Time
}

type Option func(*Board)

// WithEngine plugs a rule engine other than the built-in adapter.
func WithEngine(e engine.Engine) Option {
	return func(b *Board) { b.eng = e }
}

// WithEvents registers the presentation hooks.
func WithEvents(ev Events) Option {
	return func(b *Board) { b.events = ev }
}

// WithClock substitutes the time source driving debounce and hint
// expiry.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// NewBoard validates the configuration, loads the starting position and
// hands back a board in the idle state.
func NewBoard(cfg config.Config, logger logx.Logger, opts ...Option) (*Board, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logx.Nop()
	}

	b := &Board{
		cfg:      cfg,
		logger:   logger,
		selected: base.NoSquare,
		dragFrom: base.NoSquare,
		dragOver: base.NoSquare,
		hintSq:   base.NoSquare,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.eng == nil {
		b.eng = notnil.New()
	}
	b.pol = policyFor(cfg)
	b.strategy = b.strategyFor(cfg.Legality)

	if err := b.loadFEN(cfg.FEN, false); err != nil {
		return nil, err
	}
	b.logger.Debugf("board ready: mode=%s orientation=%s blindfold=%v",
		cfg.Legality, cfg.Orientation, cfg.Blindfold.Enabled)
	return b, nil
}

func policyFor(cfg config.Config) visibility.Policy {
	return visibility.Policy{Enabled: cfg.Blindfold.Enabled, Hidden: cfg.Blindfold.HiddenSet()}
}

func (b *Board) strategyFor(mode config.LegalityMode) legality.Strategy {
	if mode == config.ModeBypass {
		return legality.NewBypass()
	}
	return legality.NewRuleStrategy(b.eng)
}

// SetPosition replaces the whole position from a FEN descriptor. The
// selection always resets; the last-move marker survives only when
// asked to.
func (b *Board) SetPosition(fen string, preserveLastMove bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger.Debugf("set position: %v", fen)
	return b.loadFEN(fen, preserveLastMove)
}

// loadFEN is called under the lock (or before the board escapes the
// constructor).
func (b *Board) loadFEN(fen string, preserveLastMove bool) error {
	pos, err := convfen.ConvertFENToPosition(fen)
	if err != nil {
		return err
	}
	if err := b.strategy.SetPosition(*pos); err != nil {
		return err
	}
	b.pos = *pos
	b.clearSelection()
	b.cancelDrag()
	b.hintSq = base.NoSquare
	if !preserveLastMove {
		b.lastMove = nil
	}
	return nil
}

// Reconfigure swaps orientation, legality mode, blindfold policy and
// restriction at runtime. The position stays; the selection does not.
// The FEN field of the new configuration is ignored here, SetPosition
// owns position changes.
func (b *Board) Reconfigure(cfg config.Config) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	cfg.FEN = b.cfg.FEN
	if cfg.Legality != b.cfg.Legality {
		next := b.strategyFor(cfg.Legality)
		if err := next.SetPosition(b.pos); err != nil {
			b.logger.Errorf("reconfigure: strategy rejected position: %v", err)
			return err
		}
		b.strategy = next
	}
	b.cfg = cfg
	b.pol = policyFor(cfg)
	b.clearSelection()
	b.cancelDrag()
	b.logger.Infof("reconfigured: mode=%s orientation=%s blindfold=%v",
		cfg.Legality, cfg.Orientation, cfg.Blindfold.Enabled)
	return nil
}

// HighlightSquare shows the transient hint marker. A new hint replaces
// the previous one, deadline included; it never touches the selection.
func (b *Board) HighlightSquare(square string) error {
	sq, err := base.ParseSquare(square)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hintSq = sq
	b.hintUntil = b.now().Add(b.cfg.HintDuration())
	b.logger.Debugf("hint on %v", sq)
	return nil
}

// ClearHighlight drops the hint marker early.
func (b *Board) ClearHighlight() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hintSq = base.NoSquare
}

// SetArrows replaces the annotation arrows. Malformed entries are
// dropped silently; rendering never blocks on a bad annotation.
func (b *Board) SetArrows(raw []string) {
	parsed := make([]overlay.Arrow, 0, len(raw))
	for _, entry := range raw {
		arrow, err := overlay.ParseArrow(entry)
		if err != nil {
			b.logger.Debugf("dropping arrow: %v", err)
			continue
		}
		parsed = append(parsed, arrow)
	}
	if len(parsed) == 0 {
		parsed = nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.arrows = parsed
}

// SetCustomHighlights replaces the external square tint map. Malformed
// keys are dropped silently.
func (b *Board) SetCustomHighlights(raw map[string]string) {
	parsed, dropped := overlay.ParseHighlights(raw)
	for _, key := range dropped {
		b.logger.Debugf("dropping highlight %q", key)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.custom = parsed
}

// State reports the current phase of the selection machine.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Snapshot returns a copy of the canonical board contents.
func (b *Board) Snapshot() base.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pos.Snap
}

// FEN exports the current position descriptor.
func (b *Board) FEN() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return convfen.ConvertPositionToFEN(b.pos)
}

// ActiveSide reports the side to move carried by the position. Bypass
// mode carries it without ever consulting it.
func (b *Board) ActiveSide() base.Side {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pos.SideToMove
}

// LastMove returns a copy of the last committed move, or nil.
func (b *Board) LastMove() *base.MoveRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastMove == nil {
		return nil
	}
	rec := *b.lastMove
	return &rec
}

// Selection returns the selected square and a copy of its reachable
// targets. Idle and promotion phases report no selection.
func (b *Board) Selection() (base.Square, []base.Square) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateSelected {
		return base.NoSquare, nil
	}
	targets := make([]base.Square, len(b.targets))
	copy(targets, b.targets)
	return b.selected, targets
}

// PendingPromotion reports the gated move while a promotion choice is
// open.
func (b *Board) PendingPromotion() (from, to base.Square, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StatePromotion {
		return base.NoSquare, base.NoSquare, false
	}
	return b.pendingFrom, b.pendingTo, true
}

// Projection assembles one consistent overlay for rendering. The hint
// is expired lazily here, so a dead hint never reaches a renderer.
func (b *Board) Projection() overlay.Overlay {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if b.hintSq != base.NoSquare && !now.Before(b.hintUntil) {
		b.logger.Debugf("hint on %v expired", b.hintSq)
		b.hintSq = base.NoSquare
	}

	o := overlay.Overlay{
		Board:       coords.PresentView(b.pos.Snap, b.cfg.Orientation),
		Orientation: b.cfg.Orientation,
		Selected:    base.NoSquare,
		Hint:        b.hintSq,
		Hover:       base.NoSquare,
		Masked:      visibility.MaskedSet(b.pos.Snap, b.pol),
	}
	if b.hintSq != base.NoSquare {
		o.HintTTL = b.hintUntil.Sub(now)
	}
	if b.dragging {
		o.Hover = b.dragOver
	}
	if b.state == StateSelected {
		o.Selected = b.selected
		o.Targets = make([]base.Square, len(b.targets))
		copy(o.Targets, b.targets)
	}
	if b.state == StatePromotion {
		o.Promotion = &base.MoveRecord{From: b.pendingFrom, To: b.pendingTo}
	}
	if b.lastMove != nil {
		rec := *b.lastMove
		o.LastMove = &rec
	}
	if len(b.custom) > 0 {
		o.Custom = make(map[base.Square]string, len(b.custom))
		for sq, tint := range b.custom {
			o.Custom[sq] = tint
		}
	}
	if len(b.arrows) > 0 {
		o.Arrows = make([]overlay.Arrow, len(b.arrows))
		copy(o.Arrows, b.arrows)
	}
	return o
}

func (b *Board) clearSelection() {
	b.state = StateIdle
	b.selected = base.NoSquare
	b.targets = nil
	b.pendingFrom = base.NoSquare
	b.pendingTo = base.NoSquare
}

func (b *Board) cancelDrag() {
	b.dragging = false
	b.dragFrom = base.NoSquare
	b.dragOver = base.NoSquare
}

func (b *Board) emitInvalid(s Signal) {
	if b.events.Invalid != nil {
		b.events.Invalid(s)
	}
}
