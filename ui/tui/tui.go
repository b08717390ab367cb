// Package tui renders a board session with tview: the table cursor is
// the tap source, a modal collects promotion choices.
package tui

import (
	"fmt"
	"strings"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"

	"github.com/DawiQ/dawikk-chessboard/src"
	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/config"
	"github.com/DawiQ/dawikk-chessboard/src/engine/notnil"
	"github.com/DawiQ/dawikk-chessboard/src/logic/coords"
	"github.com/DawiQ/dawikk-chessboard/src/logx"
	"github.com/DawiQ/dawikk-chessboard/src/overlay"
)

var glyphs = map[base.Piece]string{
	{Kind: base.King, Side: base.White}:   "♔",
	{Kind: base.Queen, Side: base.White}:  "♕",
	{Kind: base.Rook, Side: base.White}:   "♖",
	{Kind: base.Bishop, Side: base.White}: "♗",
	{Kind: base.Knight, Side: base.White}: "♘",
	{Kind: base.Pawn, Side: base.White}:   "♙",
	{Kind: base.King, Side: base.Black}:   "♚",
	{Kind: base.Queen, Side: base.Black}:  "♛",
	{Kind: base.Rook, Side: base.Black}:   "♜",
	{Kind: base.Bishop, Side: base.Black}: "♝",
	{Kind: base.Knight, Side: base.Black}: "♞",
	{Kind: base.Pawn, Side: base.Black}:   "♟",
}

func glyphFor(p base.Piece) string {
	if p.IsEmpty() {
		return " "
	}
	return glyphs[p]
}

type App struct {
	board  *src.Board
	eng    *notnil.Adapter
	logger logx.Logger
	cfg    config.Config
	theme  Theme
	name   string

	app    *tview.Application
	table  *tview.Table
	status *tview.TextView
	msg    *tview.TextView
	layout *tview.Grid

	reveals   []base.Square
	hintTimer *time.Timer
}

func New(cfg config.Config, logger logx.Logger) (*App, error) {
	a := &App{
		eng:    notnil.New(),
		logger: logger,
		cfg:    cfg,
		theme:  ThemeBasic,
		name:   petname.Generate(2, "-"),
		app:    tview.NewApplication(),
		table:  tview.NewTable(),
		status: tview.NewTextView(),
		msg:    tview.NewTextView(),
	}
	b, err := src.NewBoard(cfg, logger,
		src.WithEngine(a.eng),
		src.WithEvents(src.Events{
			MoveCommitted:    a.onCommit,
			PromotionPending: a.onPromotion,
			Invalid:          a.onInvalid,
			Reveal:           a.onReveal,
		}))
	if err != nil {
		return nil, err
	}
	a.board = b

	a.status.SetBorder(true)
	a.status.SetTitle(" board ")
	a.msg.SetTextColor(a.theme.Msg)

	a.layout = tview.NewGrid().
		SetRows(-1, 12, 2, -1).
		SetColumns(-1, 30, 28, -1).
		AddItem(a.table, 1, 1, 1, 1, 0, 0, true).
		AddItem(a.status, 1, 2, 1, 1, 0, 0, false).
		AddItem(a.msg, 2, 1, 1, 2, 0, 0, false)

	a.initTable()
	logger.Infof("tui session %s (%s)", a.name, uuid.New())
	return a, nil
}

func (a *App) Run() error {
	return a.app.SetRoot(a.layout, true).SetFocus(a.table).Run()
}

// Handlers fire inside board transitions; they only touch widget text
// or record work for later, never the board itself.

func (a *App) onCommit(rec base.MoveRecord) {
	a.msg.SetText(fmt.Sprintf("move: %v%v", rec.From, rec.To))
}

func (a *App) onPromotion(from, to base.Square) {
	a.showPromotionModal(from, to)
}

func (a *App) onInvalid(sig src.Signal) {
	a.msg.SetText(sig.String())
}

func (a *App) onReveal(sq base.Square) {
	a.reveals = append(a.reveals, sq)
}

func (a *App) initTable() {
	a.render()
	a.table.SetSelectable(true, true)
	a.table.Select(6, 5)
	a.table.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			a.app.Stop()
		}
	}).SetSelectedFunc(func(row, col int) {
		sq, ok := a.squareAt(row, col)
		if !ok {
			return
		}
		if err := a.board.ActivateSquare(sq.String()); err != nil {
			a.msg.SetText(fmt.Sprintf("error: %v", err))
		}
		a.flushReveals()
		a.render()
	})
	a.table.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() != tcell.KeyRune {
			return ev
		}
		switch ev.Rune() {
		case 'q':
			a.app.Stop()
		case 'f':
			next := a.cfg
			next.Orientation = next.Orientation.Other()
			a.reconfigure(next)
		case 'b':
			next := a.cfg
			if next.Blindfold.Enabled {
				next.Blindfold = config.Blindfold{}
			} else {
				next.Blindfold = config.Blindfold{Enabled: true, HideAll: true}
			}
			a.reconfigure(next)
		case 'm':
			next := a.cfg
			if next.Legality == config.ModeBypass {
				next.Legality = config.ModeFull
			} else {
				next.Legality = config.ModeBypass
			}
			a.reconfigure(next)
		case 't':
			row, col := a.table.GetSelection()
			if sq, ok := a.squareAt(row, col); ok {
				if err := a.board.HighlightSquare(sq.String()); err == nil {
					a.render()
				}
			}
		case 'c':
			a.board.ClearHighlight()
			a.board.SetArrows(nil)
			a.board.SetCustomHighlights(nil)
			a.render()
		default:
			return ev
		}
		return nil
	})
}

func (a *App) squareAt(row, col int) (base.Square, bool) {
	// column 0 carries the rank labels
	return coords.SquareAt(row, col-1, a.cfg.Orientation)
}

func (a *App) reconfigure(next config.Config) {
	if err := a.board.Reconfigure(next); err != nil {
		a.msg.SetText(fmt.Sprintf("error: %v", err))
		return
	}
	a.cfg = next
	a.render()
}

func (a *App) flushReveals() {
	if len(a.reveals) == 0 {
		return
	}
	snap := a.board.Snapshot()
	parts := make([]string, len(a.reveals))
	for i, sq := range a.reveals {
		parts[i] = fmt.Sprintf("%v holds %s", sq, glyphFor(snap.At(sq)))
	}
	a.msg.SetText("peek: " + strings.Join(parts, ", "))
	a.reveals = a.reveals[:0]
}

func (a *App) render() {
	o := a.board.Projection()
	for row := 0; row <= 8; row++ {
		for col := 0; col <= 8; col++ {
			if col == 0 && row != 8 { // rank labels
				cell := tview.NewTableCell(fmt.Sprintf("%d", rankLabel(row, o.Orientation))).
					SetTextColor(a.theme.Label).
					SetAlign(tview.AlignCenter).
					SetSelectable(false)
				a.table.SetCell(row, col, cell)
				continue
			}
			if row == 8 && col > 0 { // file labels
				cell := tview.NewTableCell(" " + fileLabel(col-1, o.Orientation)).
					SetTextColor(a.theme.Label).
					SetAlign(tview.AlignCenter).
					SetSelectable(false)
				a.table.SetCell(row, col, cell)
				continue
			}
			if row == 8 && col == 0 {
				a.table.SetCell(row, col, tview.NewTableCell(" ").SetSelectable(false))
				continue
			}

			sq, _ := coords.SquareAt(row, col-1, o.Orientation)
			p := o.Board[row][col-1]
			text := " " + glyphFor(p)
			if o.IsMasked(sq) {
				text = " ?"
			} else if p.IsEmpty() && o.IsTarget(sq) {
				text = " ·"
			}
			fg := a.theme.White
			if p.Side == base.Black {
				fg = a.theme.Black
			}
			cell := tview.NewTableCell(text).
				SetAlign(tview.AlignCenter).
				SetTextColor(fg).
				SetBackgroundColor(a.squareColor(o, sq, row, col-1))
			a.table.SetCell(row, col, cell)
		}
	}
	a.renderStatus()
	a.scheduleHintRedraw(o.HintTTL)
}

func (a *App) squareColor(o overlay.Overlay, sq base.Square, row, col int) tcell.Color {
	switch {
	case o.IsSelected(sq):
		return a.theme.SquareSelected
	case o.Hover != base.NoSquare && sq == o.Hover:
		return a.theme.SquareHover
	case o.IsTarget(sq):
		return a.theme.SquareTarget
	case sq == o.Hint:
		return a.theme.SquareHint
	case o.IsLastMove(sq):
		return a.theme.SquareLastMove
	case o.Custom[sq] != "":
		return a.customColor(o.Custom[sq])
	case (row+col)%2 == 0:
		return a.theme.SquareLight
	default:
		return a.theme.SquareDark
	}
}

// customColor maps an external tint name through tcell's palette; an
// unknown name falls back to the theme tint instead of rendering black.
func (a *App) customColor(name string) tcell.Color {
	if c := tcell.GetColor(name); c != tcell.ColorDefault {
		return c
	}
	return a.theme.SquareCustom
}

func (a *App) renderStatus() {
	var sb strings.Builder
	fmt.Fprintf(&sb, " session: %s\n\n", a.name)
	fmt.Fprintf(&sb, " turn:  %v\n", a.board.ActiveSide())
	fmt.Fprintf(&sb, " state: %v\n", a.board.State())
	fmt.Fprintf(&sb, " mode:  %s\n", a.cfg.Legality)
	fmt.Fprintf(&sb, " view:  %v\n", a.cfg.Orientation)
	if a.cfg.Legality == config.ModeFull {
		fmt.Fprintf(&sb, " game:  %s\n", a.eng.Result())
	}
	if last := a.board.LastMove(); last != nil {
		fmt.Fprintf(&sb, " last:  %v%v\n", last.From, last.To)
	}
	fmt.Fprintf(&sb, "\n f flip  b blindfold\n m mode  t hint\n c clear  q quit\n")
	a.status.SetText(sb.String())
}

// showPromotionModal raises the choice dialog. The selection arrives in
// a later event-loop pass, so calling back into the board there is safe.
func (a *App) showPromotionModal(from, to base.Square) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Promote %v%v to:", from, to)).
		AddButtons([]string{"queen", "rook", "bishop", "knight"}).
		SetDoneFunc(func(_ int, label string) {
			if err := a.board.ChoosePromotion(label); err != nil {
				a.msg.SetText(fmt.Sprintf("error: %v", err))
			}
			a.app.SetRoot(a.layout, true).SetFocus(a.table)
			a.render()
		})
	a.app.SetRoot(modal, true).SetFocus(modal)
}

// scheduleHintRedraw queues one redraw for just after the hint deadline
// so the marker disappears without user input.
func (a *App) scheduleHintRedraw(ttl time.Duration) {
	if a.hintTimer != nil {
		a.hintTimer.Stop()
		a.hintTimer = nil
	}
	if ttl <= 0 {
		return
	}
	a.hintTimer = time.AfterFunc(ttl+10*time.Millisecond, func() {
		a.app.QueueUpdateDraw(func() {
			a.render()
		})
	})
}

func rankLabel(row int, o base.Orientation) int {
	if o == base.BlackBottom {
		return row + 1
	}
	return 8 - row
}

func fileLabel(col int, o base.Orientation) string {
	files := "abcdefgh"
	if o == base.BlackBottom {
		return string(files[7-col])
	}
	return string(files[col])
}
