package display

import (
	"fmt"
	"io"

	"github.com/backmassage/ffxrename/internal/term"
)

const banner = `  __  __
 / _|/ _|_  ___ __ ___ _ __   __ _ _ __ ___   ___
| |_| |_\ \/ / '__/ _ \ '_ \ / _` + "`" + ` | '_ ` + "`" + ` _ \ / _ \
|  _|  _|>  <| | |  __/ | | | (_| | | | | | |  __/
|_| |_| /_/\_\_|  \___|_| |_|\__,_|_| |_| |_|\___|`

// PrintBanner prints the ASCII art banner; Magenta when colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, term.Magenta.Render(banner))
}
