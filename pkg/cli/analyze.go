package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/locator"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/report"
)

var analyzeCommand = &cli.Command{
	Name:      "analyze",
	Usage:     "Analyze a hierarchy dump and suggest locators",
	ArgsUsage: "<file | - | url>",
	Description: `Analyze a UIAutomator hierarchy and print the summary.

Formats:
  json    Full summary (default)
  yaml    Full summary as YAML
  status  Summary enriched with examples, as served by GET /status
  text    Human-readable digest
  html    Single-page HTML report

Examples:
  locator-advisor analyze window_dump.xml
  locator-advisor analyze --format text --top 3 window_dump.xml
  locator-advisor analyze --output ./reports window_dump.xml`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: json, yaml, status, text, html",
			Value:   "json",
		},
		&cli.IntFlag{
			Name:  "top",
			Usage: "Suggestions shown per element in status, text and html output (default: config exampleLimit)",
		},
		&cli.BoolFlag{
			Name:  "no-duplicates",
			Usage: "Skip suggestions for elements whose resource-id is shared",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Parallel workers (default: config workers or GOMAXPROCS)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Also write summary.json and report.html into <dir>/<timestamp>",
		},
		&cli.BoolFlag{
			Name:  "flatten",
			Usage: "Write --output files directly into <dir> without a timestamp folder",
		},
	},
	Action: runAnalyze,
}

func runAnalyze(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	format := c.String("format")
	switch format {
	case "json", "yaml", "status", "text", "html":
	default:
		return fmt.Errorf("unknown format %q (json, yaml, status, text, html)", format)
	}

	outputDir := ""
	if c.IsSet("output") || c.Bool("flatten") {
		outputDir, err = resolveOutputDir(c.String("output"), c.Bool("flatten"))
		if err != nil {
			return err
		}
	}

	xmlText, err := readDocument(c, cfg)
	if err != nil {
		return err
	}

	opts := analyzer.DefaultOptions()
	if cfg.Analysis.Workers > 0 {
		opts.Workers = cfg.Analysis.Workers
	}
	if c.IsSet("workers") {
		opts.Workers = c.Int("workers")
	}
	opts.IncludeDuplicateIDs = cfg.Analysis.IncludeDuplicateIDs && !c.Bool("no-duplicates")

	summary, err := analyzer.New(opts).Analyze(c.Context, xmlText)
	if err != nil {
		return err
	}

	top := cfg.Analysis.ExampleLimit
	if c.IsSet("top") {
		top = c.Int("top")
	}

	if err := writeSummary(c.App.Writer, summary, format, top); err != nil {
		return err
	}

	if outputDir != "" {
		if err := report.WriteDir(outputDir, summary, report.HTMLConfig{Top: top}); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(c.App.ErrWriter, "%sReport written to %s%s\n", color(colorGreen), outputDir, color(colorReset))
	}
	return nil
}

func writeSummary(w io.Writer, s *analyzer.Summary, format string, top int) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case "status":
		return writeIndentedJSON(w, report.BuildStatus(s, top))
	case "text":
		printHeader(w, s)
		return report.WriteText(w, s, top)
	case "html":
		return report.WriteHTML(w, s, report.HTMLConfig{Top: top})
	default:
		return writeIndentedJSON(w, s)
	}
}

func writeIndentedJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printHeader prints a colored coverage line and tier counts above the
// text digest.
func printHeader(w io.Writer, s *analyzer.Summary) {
	coverage := 0.0
	if s.TotalElements > 0 {
		coverage = float64(s.ElementsWithResourceID) * 100 / float64(s.TotalElements)
	}

	fmt.Fprintf(w, "%s%sResource-id coverage: %.1f%%%s", color(colorBold), color(coverageColor(coverage)), coverage, color(colorReset))
	if len(s.RiskyElements) > 0 {
		fmt.Fprintf(w, "  %s%d risky%s", color(colorRed), len(s.RiskyElements), color(colorReset))
	}
	fmt.Fprintln(w)

	counts := map[locator.Reliability]int{
		locator.VeryHigh: s.Reliability.VeryHigh,
		locator.High:     s.Reliability.High,
		locator.Medium:   s.Reliability.Medium,
		locator.Low:      s.Reliability.Low,
	}
	for _, tier := range locator.Tiers {
		fmt.Fprintf(w, "%s%s=%d%s ", color(tierColor(tier)), tier, counts[tier], color(colorReset))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)
}
