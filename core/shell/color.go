package shell

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/mattn/go-isatty"
)

// ColorBoldRed is used for error reports.
var ColorBoldRed = []color.Attribute{color.FgRed, color.Bold}

// ColorPrinter decides whether reports are colorized.
type ColorPrinter struct {
	// Mode is one of config.ColorAlways, config.ColorAuto or config.ColorNever.
	Mode string
	// Out is checked for a terminal in auto mode.
	Out io.Writer
}

type fdWriter interface {
	Fd() uintptr
}

func (c *ColorPrinter) ShouldColor() bool {
	if c == nil {
		return false
	}

	switch c.Mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		f, ok := vos.UnwrapWriter(c.Out).(fdWriter)
		return ok && isatty.IsTerminal(f.Fd())
	}
}

// Sprintf formats the string with the given color attributes if coloring is
// enabled.
func (c *ColorPrinter) Sprintf(attrs []color.Attribute, format string, a ...interface{}) string {
	if !c.ShouldColor() {
		return fmt.Sprintf(format, a...)
	}

	clr := color.New(attrs...)
	clr.EnableColor()
	return clr.Sprintf(format, a...)
}
