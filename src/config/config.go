// Package config carries the board's explicit configuration. Nothing
// here is ambient: the board receives a Config at construction and again
// on reconfiguration, and validates it both times. Front ends may load
// the same struct from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/boarderr"
)

const DefaultFile = "chessboard.json"

type LegalityMode string

const (
	ModeFull   LegalityMode = "full"
	ModeBypass LegalityMode = "bypass"
)

type Blindfold struct {
	Enabled bool          `json:"enabled"`
	HideAll bool          `json:"hide_all"`
	Hidden  []base.Square `json:"hidden,omitempty"`
}

// HiddenSet resolves the blindfold selection: HideAll wins over the
// explicit list.
func (b Blindfold) HiddenSet() base.HiddenSquares {
	if b.HideAll {
		return base.HideAll()
	}
	return base.HideSet(b.Hidden...)
}

type Config struct {
	FEN         string           `json:"fen"`                   // starting position descriptor
	Legality    LegalityMode     `json:"legality"`              // full/bypass
	Orientation base.Orientation `json:"orientation"`           // white/black at the bottom
	Blindfold   Blindfold        `json:"blindfold"`             //
	RestrictTo  []base.Square    `json:"restrict_to,omitempty"` // selectable squares, empty = all
	DebounceMs  int              `json:"debounce_ms"`           // minimum interval between commits
	HintMs      int              `json:"hint_ms"`               // transient highlight lifetime
	Debug       bool             `json:"debug"`                 // true/false
}

func Default() Config {
	return Config{
		FEN:         base.StartFEN,
		Legality:    ModeFull,
		Orientation: base.WhiteBottom,
		DebounceMs:  150,
		HintMs:      3000,
	}
}

// NewFileConfig loads the file, falling back to defaults when it does
// not exist. Loaded values get the same correction pass as defaults.
func NewFileConfig(file string) (*Config, error) {
	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		def := Default()
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	conf, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer conf.Close()

	dec := json.NewDecoder(conf)
	var c Config
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config: %s", err)
	}
	c.ApplyDefaults()

	return &c, nil
}

func (c *Config) Save(file string) error {
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, jsonData, 0644)
}

// ApplyDefaults corrects soft problems in place: unset or nonsensical
// values fall back to the default rather than failing.
func (c *Config) ApplyDefaults() {
	def := Default()
	if c.FEN == "" {
		c.FEN = def.FEN
	}
	if c.Legality == "" {
		c.Legality = def.Legality
	}
	if c.DebounceMs <= 0 {
		c.DebounceMs = def.DebounceMs
	}
	if c.HintMs <= 0 {
		c.HintMs = def.HintMs
	}
}

// Validate rejects hard problems. Every finding is reported, not just
// the first one.
func (c Config) Validate() error {
	var errs *multierror.Error
	switch c.Legality {
	case ModeFull, ModeBypass:
	default:
		errs = multierror.Append(errs, fmt.Errorf("unknown legality mode %q", c.Legality))
	}
	if c.Orientation != base.WhiteBottom && c.Orientation != base.BlackBottom {
		errs = multierror.Append(errs, fmt.Errorf("unknown orientation %d", c.Orientation))
	}
	if c.DebounceMs < 0 {
		errs = multierror.Append(errs, fmt.Errorf("negative debounce interval %d", c.DebounceMs))
	}
	if c.HintMs < 0 {
		errs = multierror.Append(errs, fmt.Errorf("negative hint duration %d", c.HintMs))
	}
	for _, sq := range c.RestrictTo {
		if !sq.Valid() {
			errs = multierror.Append(errs, fmt.Errorf("restricted square %d off the board", int(sq)))
		}
	}
	for _, sq := range c.Blindfold.Hidden {
		if !sq.Valid() {
			errs = multierror.Append(errs, fmt.Errorf("hidden square %d off the board", int(sq)))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %s", boarderr.ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

func (c Config) HintDuration() time.Duration {
	return time.Duration(c.HintMs) * time.Millisecond
}

// ParseSquares reads a comma-separated square list like "e1,d1".
// Empty entries are skipped.
func ParseSquares(raw string) ([]base.Square, error) {
	parts := strings.Split(raw, ",")
	out := make([]base.Square, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sq, err := base.ParseSquare(part)
		if err != nil {
			return nil, err
		}
		out = append(out, sq)
	}
	return out, nil
}

// Allows reports whether the square passes the restriction list. An
// empty list allows every square.
func (c Config) Allows(sq base.Square) bool {
	if len(c.RestrictTo) == 0 {
		return true
	}
	for _, allowed := range c.RestrictTo {
		if allowed == sq {
			return true
		}
	}
	return false
}
