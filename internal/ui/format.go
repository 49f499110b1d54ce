package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color roles for CLI output. Piped output stays plain.
var (
	slotHeader = color.New(color.FgCyan, color.Bold)
	courseText = color.New(color.FgWhite)
	detailText = color.New(color.Faint)
	warnText   = color.New(color.FgYellow)
	okText     = color.New(color.FgGreen)
)

func init() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
}
