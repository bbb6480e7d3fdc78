package display

import (
	"fmt"
	"os"

	"github.com/backmassage/binframe/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Cyan)
	}
	fmt.Fprint(os.Stdout, ` ____  _       _____
| __ )(_)_ __ |  ___| __ __ _ _ __ ___   ___
|  _ \| | '_ \| |_ | '__/ _`+"`"+` | '_ `+"`"+` _ \ / _ \
| |_) | | | | |  _|| | | (_| | | | | | |  __/
|____/|_|_| |_|_|  |_|  \__,_|_| |_| |_|\___|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
