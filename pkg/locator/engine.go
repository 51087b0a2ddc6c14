package locator

import (
	"sort"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/hierarchy"
)

// containerClasses are layout types treated as scoping ancestors.
var containerClasses = map[string]bool{
	"ScrollView":       true,
	"LinearLayout":     true,
	"FrameLayout":      true,
	"RelativeLayout":   true,
	"ConstraintLayout": true,
	"GridView":         true,
	"RecyclerView":     true,
}

// Lookup bounds for label discovery.
const (
	siblingMaxDepthDelta = 3
	siblingMaxMatches    = 5
	contextMaxDepthDelta = 2
	contextMaxMatches    = 3
	contextMinTextLen    = 4
)

// IsContainer reports whether n is one of the scoping layout types.
func IsContainer(n *hierarchy.Node) bool {
	return containerClasses[n.ClassName()]
}

// strategy produces candidates for one target. Strategies never fail;
// when nothing applies they return nil.
type strategy func(e *Engine, target *hierarchy.Node) []Suggestion

// strategies run in this order; the order is the tie-break for ranking.
var strategies = []strategy{
	exactText,
	normalizedText,
	resourceIDText,
	parentScoped,
	siblingRelative,
	attributeCombination,
	contextBased,
	scopedUnderContainer,
	indexedWithResourceID,
	indexedByTag,
	parentChildIndexed,
}

// Engine evaluates the strategy catalog against one immutable node list.
// It is safe for concurrent use once built.
type Engine struct {
	nodes  hierarchy.NodeList
	byPath map[string]int
	byTag  map[string][]*hierarchy.Node
}

// NewEngine indexes nodes for suggestion lookups. The list is not copied
// and must not be modified afterwards.
func NewEngine(nodes hierarchy.NodeList) *Engine {
	e := &Engine{
		nodes:  nodes,
		byPath: make(map[string]int, len(nodes)),
		byTag:  make(map[string][]*hierarchy.Node),
	}
	for i, n := range nodes {
		e.byPath[n.Path] = i
		e.byTag[n.Tag] = append(e.byTag[n.Tag], n)
	}
	return e
}

// Suggest runs every strategy for target and returns the ranked result.
func (e *Engine) Suggest(target *hierarchy.Node) []Suggestion {
	var out []Suggestion
	for _, s := range strategies {
		out = append(out, s(e, target)...)
	}
	Rank(out)
	return out
}

// position returns the document-order index of n, or -1.
func (e *Engine) position(n *hierarchy.Node) int {
	if i, ok := e.byPath[n.Path]; ok {
		return i
	}
	return -1
}

// ancestors returns the ancestors of n present in the list, root first.
func (e *Engine) ancestors(n *hierarchy.Node) []*hierarchy.Node {
	var out []*hierarchy.Node
	for i := 1; i < len(n.Path); i++ {
		if n.Path[i] != '/' {
			continue
		}
		if idx, ok := e.byPath[n.Path[:i]]; ok {
			out = append(out, e.nodes[idx])
		}
	}
	return out
}

// containers returns the container ancestors of n, root first.
func (e *Engine) containers(n *hierarchy.Node) []*hierarchy.Node {
	var out []*hierarchy.Node
	for _, a := range e.ancestors(n) {
		if IsContainer(a) {
			out = append(out, a)
		}
	}
	return out
}

// filter returns the nodes of tag accepted by keep, in document order.
func (e *Engine) filter(tag string, keep func(*hierarchy.Node) bool) []*hierarchy.Node {
	var out []*hierarchy.Node
	for _, n := range e.byTag[tag] {
		if keep == nil || keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// labels finds nodes with non-empty text near target: within maxDelta
// path-depth levels and with the target inside their parent's subtree, so
// that "label/ancestor::*[1]//target" resolves. The closest labels win the
// cap: same-parent siblings first, then labels under ever shallower
// ancestors, document order within each level.
func (e *Engine) labels(target *hierarchy.Node, maxDelta, limit int, accept func(*hierarchy.Node) bool) []*hierarchy.Node {
	var out []*hierarchy.Node
	depth := target.Depth()
	for _, n := range e.nodes {
		if n.Path == target.Path || n.Text() == "" {
			continue
		}
		if abs(n.Depth()-depth) > maxDelta {
			continue
		}
		parent := n.ParentPath()
		if parent == "" || !target.IsDescendantOf(parent) || target.IsDescendantOf(n.Path) {
			continue
		}
		if accept != nil && !accept(n) {
			continue
		}
		out = append(out, n)
	}

	// A deeper label hangs off a nearer common ancestor.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Depth() > out[j].Depth()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// rank returns the 1-based position of target within group, or 0.
func rank(group []*hierarchy.Node, target *hierarchy.Node) int {
	for i, n := range group {
		if n.Path == target.Path {
			return i + 1
		}
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
