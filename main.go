package main

import (
	"fmt"

	"github.com/DawiQ/dawikk-chessboard/ui"
)

func main() {
	if err := ui.RunBoard(); err != nil {
		fmt.Println(err)
	}
}
