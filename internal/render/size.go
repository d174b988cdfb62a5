package render

import (
	"os"

	"github.com/charmbracelet/x/term"
)

const (
	fallbackColumns = 80
	fallbackRows    = 24
)

// TerminalSize reports the size of the terminal attached to f, or 80x24 when
// f is not a terminal.
func TerminalSize(f *os.File) (columns, rows int) {
	if f == nil || !term.IsTerminal(f.Fd()) {
		return fallbackColumns, fallbackRows
	}
	w, h, err := term.GetSize(f.Fd())
	if err != nil || w <= 0 || h <= 0 {
		return fallbackColumns, fallbackRows
	}
	return w, h
}

// Dimensions resolves configured dimensions against the terminal. Zero
// values take the terminal size, with margin rows held back from the
// height.
func Dimensions(f *os.File, columns, rows, margin int) (int, int) {
	if columns > 0 && rows > 0 {
		return columns, rows
	}
	w, h := TerminalSize(f)
	if columns <= 0 {
		columns = w
	}
	if rows <= 0 {
		rows = h - margin
		if rows < 1 {
			rows = 1
		}
	}
	return columns, rows
}
