package cli

import (
	"errors"
	"path/filepath"
	"time"
)

const defaultReportsDir = "./reports"

// resolveOutputDir picks the report directory for analyze --output. Each
// run gets its own timestamped folder under output unless flatten asks
// for output itself.
func resolveOutputDir(output string, flatten bool) (string, error) {
	switch {
	case flatten && output == "":
		return "", errors.New("--flatten requires --output to be specified")
	case flatten:
		return filepath.Clean(output), nil
	case output == "":
		output = defaultReportsDir
	}
	return filepath.Join(output, time.Now().Format("2006-01-02_15-04-05")), nil
}
