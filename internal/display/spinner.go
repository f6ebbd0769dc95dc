package display

import (
	"os"

	"github.com/charmbracelet/huh/spinner"

	"github.com/backmassage/ffxrename/internal/term"
)

// RunWithSpinner runs action while a spinner with title animates.
// When stdout is not a terminal the action simply runs.
func RunWithSpinner(title string, action func() error) error {
	if !term.IsTerminal(os.Stdout) {
		return action()
	}

	var actionErr error
	spinErr := spinner.New().
		Title(title).
		Action(func() {
			actionErr = action()
		}).
		Run()

	if spinErr != nil {
		return spinErr
	}
	return actionErr
}
