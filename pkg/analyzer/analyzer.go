// Package analyzer builds the per-document summary: resource-id coverage,
// focus counts and ranked locator suggestions for every node that cannot
// be addressed by its resource-id alone.
package analyzer

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/hierarchy"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/locator"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/logger"
)

// Options controls an Analyzer.
type Options struct {
	// Workers bounds concurrent per-node evaluation. <= 0 uses GOMAXPROCS.
	Workers int
	// IncludeDuplicateIDs also suggests locators for nodes whose
	// resource-id is shared with other nodes.
	IncludeDuplicateIDs bool
}

// DefaultOptions returns the options used by AnalyzeHierarchy.
func DefaultOptions() Options {
	return Options{
		Workers:             runtime.GOMAXPROCS(0),
		IncludeDuplicateIDs: true,
	}
}

// Analyzer turns hierarchy XML into a Summary. It holds no per-document
// state and may be shared between goroutines.
type Analyzer struct {
	opts Options
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Analyzer{opts: opts}
}

// AnalyzeHierarchy analyzes one document with DefaultOptions.
func AnalyzeHierarchy(xmlText string) (*Summary, error) {
	return New(DefaultOptions()).Analyze(context.Background(), xmlText)
}

// Analyze parses xmlText and builds its Summary. Malformed input returns
// core.ErrMalformedDocument; empty input returns a zero Summary.
func (a *Analyzer) Analyze(ctx context.Context, xmlText string) (*Summary, error) {
	start := time.Now()

	nodes, err := hierarchy.Build(xmlText)
	if err != nil {
		logger.Warn("Hierarchy parse failed: %v", err)
		return nil, err
	}

	suggestions, err := a.suggestAll(ctx, nodes)
	if err != nil {
		return nil, err
	}

	summary := aggregate(nodes, suggestions)
	logger.Debug("Analyzed %d nodes (%d without resource-id, %d suggestions) in %v",
		summary.TotalElements, summary.ElementsWithoutResourceID, summary.Reliability.Total, time.Since(start))
	return summary, nil
}

// suggestAll runs the engine for every node that needs suggestions. Each
// result lands in its own slot, so output order never depends on
// scheduling.
func (a *Analyzer) suggestAll(ctx context.Context, nodes hierarchy.NodeList) ([][]locator.Suggestion, error) {
	results := make([][]locator.Suggestion, len(nodes))
	if len(nodes) == 0 {
		return results, nil
	}

	engine := locator.NewEngine(nodes)
	shared := sharedResourceIDs(nodes)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)
	for i, n := range nodes {
		rid := n.ResourceID()
		if rid != "" && !(a.opts.IncludeDuplicateIDs && shared[rid]) {
			continue
		}
		i, n := i, n // per-iteration copies (go directive is 1.21)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = engine.Suggest(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// sharedResourceIDs returns the resource-ids carried by two or more nodes.
func sharedResourceIDs(nodes hierarchy.NodeList) map[string]bool {
	counts := make(map[string]int)
	for _, n := range nodes {
		if rid := n.ResourceID(); rid != "" {
			counts[rid]++
		}
	}
	shared := make(map[string]bool)
	for rid, c := range counts {
		if c > 1 {
			shared[rid] = true
		}
	}
	return shared
}

func aggregate(nodes hierarchy.NodeList, suggestions [][]locator.Suggestion) *Summary {
	s := &Summary{
		TotalElements:            len(nodes),
		WithResourceIDDetails:    []Detail{},
		MissingResourceIDDetails: []Detail{},
		RiskyElements:            []RiskyElement{},
	}

	for i, n := range nodes {
		d := detailFor(n, suggestions[i])
		s.Reliability.Add(d.Suggestions)
		if len(d.Suggestions) > 0 {
			s.ElementsWithSuggestedXPaths++
		}

		if n.ResourceID() != "" {
			s.ElementsWithResourceID++
			s.WithResourceIDDetails = append(s.WithResourceIDDetails, d)
		} else {
			s.ElementsWithoutResourceID++
			s.MissingResourceIDDetails = append(s.MissingResourceIDDetails, d)
			if locator.IsRisky(n, d.Suggestions) {
				s.RiskyElements = append(s.RiskyElements, RiskyElement{
					Path:   n.Path,
					Class:  n.Value(hierarchy.AttrClass),
					Bounds: n.Value(hierarchy.AttrBounds),
				})
			}
		}

		if n.IsTrue(hierarchy.AttrFocused) {
			s.ElementsFocused++
		} else {
			s.ElementsNotFocused++
		}
		if n.IsTrue(hierarchy.AttrClickable) {
			s.ElementsClickable++
		}
	}

	return s
}

func detailFor(n *hierarchy.Node, suggestions []locator.Suggestion) Detail {
	d := Detail{
		Path:       n.Path,
		ResourceID: n.ResourceID(),
		Bounds:     n.Value(hierarchy.AttrBounds),
		Text:       n.Value(hierarchy.AttrText),
		Focused:    n.Value(hierarchy.AttrFocused),
	}
	if len(suggestions) > 0 {
		d.Suggestions = suggestions
	}
	return d
}
