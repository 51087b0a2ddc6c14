package cli

import (
	"os"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/locator"
)

// ANSI escape sequences.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// colorsEnabled is false under NO_COLOR, when stdout is not a terminal,
// or after --no-ansi.
var colorsEnabled = stdoutIsTerminal()

func stdoutIsTerminal() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func color(c string) string {
	if !colorsEnabled {
		return ""
	}
	return c
}

// coverageColor grades resource-id coverage: green from 80%, yellow
// from 50%, red below.
func coverageColor(pct float64) string {
	switch {
	case pct >= 80:
		return colorGreen
	case pct >= 50:
		return colorYellow
	default:
		return colorRed
	}
}

func tierColor(r locator.Reliability) string {
	switch r {
	case locator.VeryHigh, locator.High:
		return colorGreen
	case locator.Medium:
		return colorYellow
	default:
		return colorGray
	}
}
