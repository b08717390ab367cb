// Package cli drives a board session on a terminal: a cursor-driven
// raw mode and a plain line mode for dumb terminals and pipes.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/DawiQ/dawikk-chessboard/src"
	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/boarderr"
	"github.com/DawiQ/dawikk-chessboard/src/config"
	"github.com/DawiQ/dawikk-chessboard/src/engine/notnil"
	"github.com/DawiQ/dawikk-chessboard/src/logic/coords"
	"github.com/DawiQ/dawikk-chessboard/src/logx"
)

type Session struct {
	board  *src.Board
	eng    *notnil.Adapter
	logger logx.Logger
	cfg    config.Config
	name   string

	in     *os.File
	out    io.Writer
	cursor base.Square

	reveals []base.Square
}

func NewSession(cfg config.Config, logger logx.Logger) (*Session, error) {
	s := &Session{
		eng:    notnil.New(),
		logger: logger,
		cfg:    cfg,
		name:   petname.Generate(2, "-"),
		in:     os.Stdin,
		out:    os.Stdout,
		cursor: base.NoSquare,
	}
	b, err := src.NewBoard(cfg, logger,
		src.WithEngine(s.eng),
		src.WithEvents(src.Events{
			MoveCommitted:    s.onCommit,
			PromotionPending: s.onPromotion,
			Invalid:          s.onInvalid,
			Reveal:           s.onReveal,
		}))
	if err != nil {
		return nil, err
	}
	s.board = b
	logger.Infof("cli session %s (%s)", s.name, uuid.New())
	return s, nil
}

// Handlers fire inside board transitions; they only print or record,
// the board is queried again once the call returns.

func (s *Session) onCommit(rec base.MoveRecord) {
	fmt.Fprintf(s.out, "\nmove: %v%v\n", rec.From, rec.To)
}

func (s *Session) onPromotion(from, to base.Square) {
	fmt.Fprintf(s.out, "\npromotion: %v%v needs a piece kind\n", from, to)
}

func (s *Session) onInvalid(sig src.Signal) {
	fmt.Fprintf(s.out, "\n%v\n", sig)
}

func (s *Session) onReveal(sq base.Square) {
	s.reveals = append(s.reveals, sq)
}

// raw processing
// - arrow keys move the cursor, Enter on an empty line taps it
// - type a square, a move pair or a command and press Enter
// - q or Ctrl+C to exit
// - redraw board after every action
func (s *Session) Run() error {
	fd := int(s.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return s.RunLineMode()
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	r := bufio.NewReader(s.in)
	var inputBuf strings.Builder
	chooser := func() string {
		fmt.Fprint(s.out, "\npromote to [q/r/b/n]: ")
		c, err := r.ReadByte()
		if err != nil {
			return ""
		}
		fmt.Fprintf(s.out, "%c\n", c)
		return string(c)
	}

	s.cursor = s.defaultCursor()
	s.redraw()
	fmt.Fprintln(s.out, "Arrows move the cursor, Enter taps it. Type a square or command and press Enter, 'h' for help, 'q' to quit.")

	for {
		c, err := r.ReadByte()
		if err != nil {
			return err
		}

		if c == 3 { // Ctrl+C
			fmt.Fprintln(s.out, "\nInterrupted")
			return nil
		}
		if c == 0x1b { // escape sequence, possible arrow key
			c1, err := r.ReadByte()
			if err != nil {
				continue
			}
			c2, err := r.ReadByte()
			if err != nil {
				continue
			}
			if c1 == '[' {
				switch c2 {
				case 'A': // up
					s.moveCursor(-1, 0)
				case 'B': // down
					s.moveCursor(1, 0)
				case 'D': // left
					s.moveCursor(0, -1)
				case 'C': // right
					s.moveCursor(0, 1)
				}
			}
			continue
		}

		if c == '\r' || c == '\n' {
			line := strings.TrimSpace(inputBuf.String())
			inputBuf.Reset()
			if line == "" {
				s.tap(s.cursor, chooser)
				if s.finished() {
					return nil
				}
				continue
			}
			if line == "q" || line == "Q" || line == "quit" {
				fmt.Fprintln(s.out, "\nQuitting")
				return nil
			}
			s.dispatch(line, chooser)
			if s.finished() {
				return nil
			}
			continue
		}

		// printable chars: append to buffer and echo
		if c >= 32 && c <= 126 {
			inputBuf.WriteByte(c)
			fmt.Fprintf(s.out, "%c", c)
			continue
		}
		// other keys ignored
	}
}

// RunLineMode is the fallback for terminals without raw mode and for
// piped input.
func (s *Session) RunLineMode() error {
	scanner := bufio.NewScanner(s.in)
	chooser := func() string {
		fmt.Fprint(s.out, "promote to (queen/rook/bishop/knight): ")
		if !scanner.Scan() {
			return ""
		}
		return strings.TrimSpace(scanner.Text())
	}

	s.redraw()
	fmt.Fprintln(s.out, "Enter a square to tap it (e2), a pair to move (e2e4), 'h' for help, 'q' to quit.")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "Q" || line == "quit" {
			return nil
		}
		s.dispatch(line, chooser)
		if s.finished() {
			return nil
		}
	}
	return scanner.Err()
}

func (s *Session) dispatch(line string, chooser func() string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	if sq, err := base.ParseSquare(cmd); err == nil && len(args) == 0 {
		s.tap(sq, chooser)
		return
	}
	if len(cmd) == 4 && len(args) == 0 {
		from, errF := base.ParseSquare(cmd[:2])
		to, errT := base.ParseSquare(cmd[2:])
		if errF == nil && errT == nil {
			s.tap(from, chooser)
			s.tap(to, chooser)
			return
		}
	}

	switch cmd {
	case "h", "help":
		s.printHelp()
	case "fen":
		fmt.Fprintf(s.out, "FEN: %s\n", s.board.FEN())
	case "reset":
		fen := base.StartFEN
		if len(args) > 0 {
			fen = strings.Join(args, " ")
		}
		if err := s.board.SetPosition(fen, false); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			return
		}
		s.redraw()
	case "flip":
		next := s.cfg
		next.Orientation = next.Orientation.Other()
		s.reconfigure(next)
	case "mode":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: mode full|bypass")
			return
		}
		next := s.cfg
		next.Legality = config.LegalityMode(args[0])
		s.reconfigure(next)
	case "blindfold":
		next := s.cfg
		switch {
		case len(args) == 0 || args[0] == "on":
			next.Blindfold = config.Blindfold{Enabled: true, HideAll: true}
		case args[0] == "off":
			next.Blindfold = config.Blindfold{}
		default:
			hidden, err := config.ParseSquares(args[0])
			if err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
				return
			}
			next.Blindfold = config.Blindfold{Enabled: true, Hidden: hidden}
		}
		s.reconfigure(next)
	case "hint":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: hint <square>")
			return
		}
		if err := s.board.HighlightSquare(args[0]); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			return
		}
		s.redraw()
	case "arrows":
		s.board.SetArrows(args)
		s.redraw()
	case "mark":
		marks := make(map[string]string, len(args))
		for _, arg := range args {
			kv := strings.SplitN(arg, "=", 2)
			if len(kv) == 2 {
				marks[kv[0]] = kv[1]
			}
		}
		s.board.SetCustomHighlights(marks)
		s.redraw()
	case "clear":
		s.board.ClearHighlight()
		s.board.SetArrows(nil)
		s.board.SetCustomHighlights(nil)
		s.redraw()
	default:
		fmt.Fprintf(s.out, "unknown command: %s\n", cmd)
	}
}

func (s *Session) tap(sq base.Square, chooser func() string) {
	if sq == base.NoSquare {
		return
	}
	if err := s.board.ActivateSquare(sq.String()); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.flushReveals()
	for s.board.State() == src.StatePromotion {
		kind := chooser()
		if kind == "" {
			break
		}
		if err := s.board.ChoosePromotion(kind); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			if errors.Is(err, boarderr.ErrInvalidPromotion) {
				continue
			}
			break
		}
	}
	s.redraw()
}

func (s *Session) reconfigure(next config.Config) {
	if err := s.board.Reconfigure(next); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.cfg = next
	if s.cursor != base.NoSquare {
		s.cursor = s.defaultCursor()
	}
	s.redraw()
}

func (s *Session) moveCursor(drow, dcol int) {
	if s.cursor == base.NoSquare {
		s.cursor = s.defaultCursor()
	}
	if next, ok := coords.Resolve(s.cursor, base.Displacement{DRow: drow, DCol: dcol}, s.cfg.Orientation); ok {
		s.cursor = next
	}
	s.redraw()
}

// defaultCursor starts at the bottom-center of the view, wherever that
// lands for the orientation.
func (s *Session) defaultCursor() base.Square {
	sq, _ := coords.SquareAt(6, 4, s.cfg.Orientation)
	return sq
}

func (s *Session) flushReveals() {
	if len(s.reveals) == 0 {
		return
	}
	snap := s.board.Snapshot()
	for _, sq := range s.reveals {
		fmt.Fprintf(s.out, "peek: %v holds %s\n", sq, pieceGlyph(snap.At(sq)))
	}
	s.reveals = s.reveals[:0]
}

func (s *Session) redraw() {
	Render(s.out, s.board.Projection(), s.cursor)
	s.printStatus()
}

func (s *Session) printStatus() {
	fmt.Fprintf(s.out, "FEN: %s\n", s.board.FEN())
	fmt.Fprintf(s.out, "Turn: %v  State: %v\n", s.board.ActiveSide(), s.board.State())
	if s.cfg.Legality == config.ModeFull {
		fmt.Fprintf(s.out, "Status: %s\n", s.eng.Result())
	}
}

func (s *Session) printHelp() {
	fmt.Fprint(s.out, `
commands:
  e2           tap a square
  e2e4         tap the pair
  hint <sq>    transient highlight
  arrows a b   replace annotation arrows (e2e4, Ng1f3)
  mark sq=col  tint squares
  clear        drop hint, arrows and tints
  flip         rotate the view
  mode m       full or bypass
  blindfold x  on, off or a square list (e1,d1)
  reset [fen]  load a position
  fen          print the position
  q            quit
`)
}

func (s *Session) finished() bool {
	if s.cfg.Legality != config.ModeFull {
		return false
	}
	r := s.eng.Result()
	return r == "checkmate" || r == "stalemate"
}
