// Package cli provides the command-line interface for locator-advisor.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/config"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config.yaml (default: <home>/config.yaml)",
		EnvVars: []string{"LOCATOR_CONFIG"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"LOCATOR_VERBOSE"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Write logs to this file instead of stderr",
		EnvVars: []string{"LOCATOR_LOG_FILE"},
	},
	&cli.BoolFlag{
		Name:  "no-ansi",
		Usage: "Disable ANSI colors",
	},
}

// Execute runs the CLI.
func Execute() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "locator-advisor",
		Usage:   "Suggest robust XPath locators for Android UI hierarchies",
		Version: Version,
		Description: `locator-advisor reads a UIAutomator hierarchy dump, reports resource-id
coverage and proposes ranked XPath locators for elements that cannot be
addressed by resource-id alone.

Examples:
  locator-advisor analyze window_dump.xml
  locator-advisor analyze --format text --top 3 window_dump.xml
  adb exec-out uiautomator dump /dev/tty | locator-advisor analyze -
  locator-advisor hierarchy --compact window_dump.xml
  LOCATOR_AUTH_TOKEN=secret locator-advisor serve --port 3000`,
		Flags:  GlobalFlags,
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			serveCommand,
			analyzeCommand,
			hierarchyCommand,
		},
	}
}

// setup initializes logging and colors from the global flags.
func setup(c *cli.Context) error {
	if c.Bool("no-ansi") {
		colorsEnabled = false
	}

	if path := c.String("log-file"); path != "" {
		if err := logger.Init(path); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	} else {
		logger.InitWriter(c.App.ErrWriter)
	}
	logger.SetVerbose(c.Bool("verbose"))
	return nil
}

func teardown(c *cli.Context) error {
	logger.Close()
	return nil
}

// loadConfig reads --config (or config.yaml in the home directory),
// applies LOCATOR_* environment overrides and then the global flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(config.GetHome())
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.ApplyEnv()
	if c.IsSet("verbose") {
		cfg.Log.Verbose = c.Bool("verbose")
	}
	if c.IsSet("log-file") {
		cfg.Log.File = c.String("log-file")
	} else if cfg.Log.File != "" {
		if err := logger.Init(cfg.Log.File); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	logger.SetVerbose(cfg.Log.Verbose)
	return cfg, nil
}
