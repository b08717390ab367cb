package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/DawiQ/dawikk-chessboard/src/base"
	"github.com/DawiQ/dawikk-chessboard/src/config"
	"github.com/DawiQ/dawikk-chessboard/src/logx"
	clic "github.com/DawiQ/dawikk-chessboard/ui/cli"
	"github.com/DawiQ/dawikk-chessboard/ui/tui"
)

const logfile string = "chessboard.log"

func GetLogger(file *os.File, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		c.Bool("debug"),
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

// buildConfig merges the optional config file with flag overrides.
func buildConfig(c *cli.Command) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.NewFileConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	if fen := c.String("fen"); fen != "" {
		cfg.FEN = fen
	}
	if c.Bool("bypass") {
		cfg.Legality = config.ModeBypass
	}
	if c.Bool("flipped") {
		cfg.Orientation = base.BlackBottom
	}
	if c.Bool("blindfold") {
		cfg.Blindfold = config.Blindfold{Enabled: true, HideAll: true}
	}
	if raw := c.String("hidden"); raw != "" {
		hidden, err := config.ParseSquares(raw)
		if err != nil {
			return cfg, err
		}
		cfg.Blindfold = config.Blindfold{Enabled: true, Hidden: hidden}
	}
	if raw := c.String("restrict"); raw != "" {
		restrict, err := config.ParseSquares(raw)
		if err != nil {
			return cfg, err
		}
		cfg.RestrictTo = restrict
	}
	if ms := c.Int("debounce-ms"); ms > 0 {
		cfg.DebounceMs = int(ms)
	}
	if ms := c.Int("hint-ms"); ms > 0 {
		cfg.HintMs = int(ms)
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	return cfg, nil
}

func RunTUI(c *cli.Command) error {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Printf("error open logfile: %v", err)
		return nil
	}
	defer file.Close()
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	app, err := tui.New(cfg, GetLogger(file, c))
	if err != nil {
		return err
	}
	return app.Run()
}

func RunCLI(c *cli.Command) error {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Printf("error open logfile: %v", err)
		return nil
	}
	defer file.Close()
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	s, err := clic.NewSession(cfg, GetLogger(file, c))
	if err != nil {
		return err
	}
	if c.Bool("line") {
		return s.RunLineMode()
	}
	return s.Run()
}

func RunBoard() error {
	ff := &cli.StringFlag{
		Name:  "fen",
		Usage: "starting position in FEN",
	}
	cff := &cli.StringFlag{
		Name:  "config",
		Usage: "path to a JSON config file",
	}
	bf := &cli.BoolFlag{
		Name:  "bypass",
		Usage: "accept any move without consulting the rules",
	}
	flf := &cli.BoolFlag{
		Name:  "flipped",
		Usage: "render with black at the bottom",
	}
	blf := &cli.BoolFlag{
		Name:  "blindfold",
		Usage: "hide every piece",
	}
	hf := &cli.StringFlag{
		Name:  "hidden",
		Usage: "comma-separated squares to hide (e1,d1)",
	}
	rf := &cli.StringFlag{
		Name:  "restrict",
		Usage: "comma-separated squares open to interaction",
	}
	dbf := &cli.IntFlag{
		Name:  "debounce-ms",
		Usage: "minimum interval between commits",
	}
	hmf := &cli.IntFlag{
		Name:  "hint-ms",
		Usage: "hint highlight lifetime",
	}
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "enable debug mod",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "logger level",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding",
	}
	lnf := &cli.BoolFlag{
		Name:  "line",
		Usage: "plain line mode, no raw terminal",
	}
	shared := []cli.Flag{ff, cff, bf, flf, blf, hf, rf, dbf, hmf, df, lf, cf}
	cliff := append([]cli.Flag{lnf}, shared...)

	return (&cli.Command{
		Name:  "chessboard",
		Usage: "interactive chessboard",
		Flags: shared,
		Commands: []*cli.Command{
			{
				Name:  "tui",
				Flags: shared,
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := RunTUI(c); err != nil {
						fmt.Printf("error tui: %v\n", err)
					}
					return nil
				},
			},
			{
				Name:  "cli",
				Flags: cliff,
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := RunCLI(c); err != nil {
						fmt.Printf("error cli: %v\n", err)
					}
					return nil
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := RunTUI(c); err != nil {
				fmt.Printf("error tui: %v\n", err)
			}
			return nil
		},
	}).Run(context.Background(), os.Args)
}
