package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"sysyc/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <unit>: <SEV> <CODE>: <Message> (node #N)
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	sevColor := map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgCyan),
	}
	codeColor := color.New(color.Bold)
	for _, c := range sevColor {
		setColor(c, opts.Color)
	}
	setColor(codeColor, opts.Color)

	for _, d := range bag.Items() {
		unit := displayPath(d.Unit, opts.PathMode)
		if unit != "" {
			unit += ": "
		}
		sev := d.Severity.String()
		if c, ok := sevColor[d.Severity]; ok {
			sev = c.Sprint(sev)
		}
		line := fmt.Sprintf("%s%s %s: %s", unit, sev, codeColor.Sprint(d.Code.ID()), d.Message)
		if d.Node != 0 {
			line += fmt.Sprintf(" (node #%d)", d.Node)
		}
		if opts.ShowTitle {
			line += fmt.Sprintf(" [%s]", d.Code.Title())
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func setColor(c *color.Color, on bool) {
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

func displayPath(path string, mode PathMode) string {
	if path == "" {
		return ""
	}
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	return path
}
