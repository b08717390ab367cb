package tui

import "github.com/gdamore/tcell/v2"

// Theme colors the board widget. Stick to the terminal safe palette,
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg
type Theme struct {
	SquareDark     tcell.Color
	SquareLight    tcell.Color
	SquareSelected tcell.Color
	SquareTarget   tcell.Color
	SquareHover    tcell.Color
	SquareHint     tcell.Color
	SquareLastMove tcell.Color
	SquareCustom   tcell.Color
	White          tcell.Color
	Black          tcell.Color
	Label          tcell.Color
	Msg            tcell.Color
}

// ThemeBasic is the default theme.
var ThemeBasic = Theme{
	SquareDark:     tcell.Color188,
	SquareLight:    tcell.Color230,
	SquareSelected: tcell.Color226,
	SquareTarget:   tcell.Color122,
	SquareHover:    tcell.Color45,
	SquareHint:     tcell.Color223,
	SquareLastMove: tcell.Color186,
	SquareCustom:   tcell.Color218,
	White:          tcell.Color232,
	Black:          tcell.Color232,
	Label:          tcell.Color247,
	Msg:            tcell.Color160,
}
