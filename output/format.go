package output

import (
	"github.com/logrusorgru/aurora"
)

type Palette struct {
	Warning   aurora.Color
	Highlight aurora.Color
}

var defaultPalette = Palette{
	Warning:   aurora.RedFg,
	Highlight: aurora.GreenFg,
}

type formatter struct {
	aurora  aurora.Aurora
	palette *Palette
}

func newFormatter(enableColor bool) *formatter {
	return &formatter{
		aurora:  aurora.NewAurora(enableColor),
		palette: &defaultPalette,
	}
}

// warn renders text the way destination failures are reported.
func (f *formatter) warn(text string) string {
	return f.aurora.Colorize(text, f.palette.Warning).String()
}

// highlight renders durations.
func (f *formatter) highlight(text string) string {
	return f.aurora.Colorize(text, f.palette.Highlight).String()
}
