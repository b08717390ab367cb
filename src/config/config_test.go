package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/boarderr"
	"github.com/DawiQ/dawikk-chessboard/src/testutil"
)

func TestDefault(t *testing.T) {
	c := Default()
	testutil.AssertEqual(t, c.FEN, base.StartFEN)
	testutil.AssertEqual(t, c.Legality, ModeFull)
	testutil.AssertEqual(t, c.Orientation, base.WhiteBottom)
	testutil.AssertEqual(t, c.Debounce(), 150*time.Millisecond)
	testutil.AssertEqual(t, c.HintDuration(), 3*time.Second)
	testutil.AssertNoError(t, c.Validate())
}

func TestApplyDefaults(t *testing.T) {
	c := Config{DebounceMs: -5}
	c.ApplyDefaults()
	testutil.AssertEqual(t, c.Legality, ModeFull)
	testutil.AssertEqual(t, c.DebounceMs, 150)
	testutil.AssertEqual(t, c.HintMs, 3000)
	testutil.AssertEqual(t, c.FEN, base.StartFEN)

	kept := Config{FEN: "8/8/8/8/8/8/8/8 w - - 0 1", Legality: ModeBypass, DebounceMs: 10, HintMs: 50}
	kept.ApplyDefaults()
	testutil.AssertEqual(t, kept.Legality, ModeBypass)
	testutil.AssertEqual(t, kept.DebounceMs, 10)
	testutil.AssertEqual(t, kept.HintMs, 50)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default ok", func(c *Config) {}, false},
		{"bypass ok", func(c *Config) { c.Legality = ModeBypass }, false},
		{"unknown mode", func(c *Config) { c.Legality = "anarchy" }, true},
		{"bad orientation", func(c *Config) { c.Orientation = 9 }, true},
		{"negative debounce", func(c *Config) { c.DebounceMs = -1 }, true},
		{"negative hint", func(c *Config) { c.HintMs = -1 }, true},
		{"bad restricted square", func(c *Config) { c.RestrictTo = []base.Square{99} }, true},
		{"bad hidden square", func(c *Config) { c.Blindfold.Hidden = []base.Square{-2} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, boarderr.ErrInvalidConfig)
			} else {
				testutil.AssertNoError(t, err)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	c := Default()
	c.Legality = "anarchy"
	c.DebounceMs = -1
	err := c.Validate()
	testutil.AssertErrorIs(t, err, boarderr.ErrInvalidConfig)
	msg := err.Error()
	testutil.AssertTrue(t, strings.Contains(msg, "legality"), "mode finding reported")
	testutil.AssertTrue(t, strings.Contains(msg, "debounce"), "interval finding reported")
}

func TestHiddenSet(t *testing.T) {
	e4, _ := base.ParseSquare("e4")
	d5, _ := base.ParseSquare("d5")

	all := Blindfold{Enabled: true, HideAll: true}.HiddenSet()
	testutil.AssertTrue(t, all.Contains(e4))

	set := Blindfold{Enabled: true, Hidden: []base.Square{e4}}.HiddenSet()
	testutil.AssertTrue(t, set.Contains(e4))
	testutil.AssertFalse(t, set.Contains(d5))
}

func TestAllows(t *testing.T) {
	e2, _ := base.ParseSquare("e2")
	e4, _ := base.ParseSquare("e4")
	d5, _ := base.ParseSquare("d5")

	open := Default()
	testutil.AssertTrue(t, open.Allows(d5))

	limited := Default()
	limited.RestrictTo = []base.Square{e2, e4}
	testutil.AssertTrue(t, limited.Allows(e2))
	testutil.AssertFalse(t, limited.Allows(d5))
}

func TestParseSquares(t *testing.T) {
	e2, _ := base.ParseSquare("e2")
	d4, _ := base.ParseSquare("d4")

	got, err := ParseSquares("e2, d4")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, []base.Square{e2, d4})

	_, err = ParseSquares("e2,zz")
	testutil.AssertErrorIs(t, err, boarderr.ErrInvalidSquare)

	got, err = ParseSquares("")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got), 0)
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "chessboard.json")

	c := Default()
	c.Legality = ModeBypass
	c.Orientation = base.BlackBottom
	e4, _ := base.ParseSquare("e4")
	c.Blindfold = Blindfold{Enabled: true, Hidden: []base.Square{e4}}
	c.RestrictTo = []base.Square{e4}
	testutil.AssertNoError(t, c.Save(file))

	loaded, err := NewFileConfig(file)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *loaded, c)
}

func TestNewFileConfigMissingFile(t *testing.T) {
	loaded, err := NewFileConfig(filepath.Join(t.TempDir(), "nope.json"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *loaded, Default())
}

func TestNewFileConfigBadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "broken.json")
	testutil.AssertNoError(t, os.WriteFile(file, []byte("{"), 0644))

	_, err := NewFileConfig(file)
	testutil.AssertError(t, err)
}
