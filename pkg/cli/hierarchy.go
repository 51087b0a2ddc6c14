package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/hierarchy"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/report"
)

var hierarchyCommand = &cli.Command{
	Name:      "hierarchy",
	Usage:     "Print the flattened node list of a hierarchy dump",
	ArgsUsage: "<file | - | url>",
	Description: `Print every node with its absolute XPath in JSON or CSV format.

Examples:
  locator-advisor hierarchy window_dump.xml
  locator-advisor hierarchy --compact window_dump.xml`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "Output in CSV format",
		},
	},
	Action: runHierarchy,
}

func runHierarchy(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	xmlText, err := readDocument(c, cfg)
	if err != nil {
		return err
	}

	nodes, err := hierarchy.Build(xmlText)
	if err != nil {
		return err
	}

	if c.Bool("compact") {
		return report.WriteNodesCSV(c.App.Writer, nodes)
	}
	return writeIndentedJSON(c.App.Writer, nodes)
}
