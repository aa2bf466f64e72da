package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	boldGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
	boldYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	boldRed    = color.New(color.FgRed, color.Bold).SprintFunc()
)

// console writes prefixed status lines to err so stdout stays clean for csv
// and json output.
type console struct {
	err io.Writer
}

func (c console) info(format string, a ...interface{}) {
	fmt.Fprint(c.err, pterm.Info.Sprintfln(format, a...))
}

func (c console) warning(format string, a ...interface{}) {
	fmt.Fprint(c.err, pterm.Warning.Sprintfln(format, a...))
}

func (c console) failure(format string, a ...interface{}) {
	fmt.Fprint(c.err, pterm.Error.Sprintfln(format, a...))
}

func (c console) success(format string, a ...interface{}) {
	fmt.Fprint(c.err, pterm.Success.Sprintfln(format, a...))
}
