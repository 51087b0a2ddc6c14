package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/config"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/source"
)

// readDocument loads the hierarchy named by the first argument: a file
// path, "-" for stdin, or an http(s)/data: URL.
func readDocument(c *cli.Context, cfg *config.Config) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one hierarchy file (or - for stdin)")
	}
	arg := c.Args().First()

	switch {
	case arg == "-":
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil

	case isRemote(arg):
		fetcher := source.NewFetcher(source.Options{
			Timeout:     cfg.Fetch.Timeout,
			MaxRetries:  cfg.Fetch.MaxRetries,
			MaxBodySize: cfg.Fetch.MaxBodySize,
		})
		ctx := c.Context
		if ctx == nil {
			ctx = context.Background()
		}
		return fetcher.FetchDocument(ctx, arg)

	default:
		data, err := os.ReadFile(arg) //#nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("read %s: %w", arg, err)
		}
		return string(data), nil
	}
}

func isRemote(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") || source.IsDataURL(arg)
}
