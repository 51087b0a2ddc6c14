package locator

import (
	"fmt"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/hierarchy"
)

// scopedUnderContainer disambiguates a target whose tag+text or
// tag+resource-id is shared with other nodes. It walks container
// ancestors nearest first and emits the first scope that resolves to the
// target alone, counting every container with the same tag and id.
func scopedUnderContainer(e *Engine, target *hierarchy.Node) []Suggestion {
	text, rid := target.Text(), target.ResourceID()
	if text == "" && rid == "" {
		return nil
	}

	same := func(n *hierarchy.Node) bool {
		return (rid == "" || n.ResourceID() == rid) && (text == "" || n.Text() == text)
	}
	if len(e.filter(target.Tag, same)) < 2 {
		return nil
	}

	var preds []string
	if rid != "" {
		preds = append(preds, attrEq(hierarchy.AttrResourceID, rid))
	}
	if text != "" {
		preds = append(preds, attrEq(hierarchy.AttrText, text))
	}

	containers := e.containers(target)
	for i := len(containers) - 1; i >= 0; i-- {
		c := containers[i]
		cid := c.ResourceID()
		if cid == "" {
			continue
		}

		scopes := e.filter(c.Tag, func(n *hierarchy.Node) bool { return n.ResourceID() == cid })
		matches := e.filter(target.Tag, func(n *hierarchy.Node) bool {
			if !same(n) {
				return false
			}
			for _, s := range scopes {
				if n.IsDescendantOf(s.Path) {
					return true
				}
			}
			return false
		})
		if len(matches) != 1 || matches[0].Path != target.Path {
			continue
		}

		return []Suggestion{{
			Kind:        KindScopedUnderContainer,
			Expression:  step(c.Tag, attrEq(hierarchy.AttrResourceID, cid)) + step(target.Tag, preds...),
			Description: fmt.Sprintf("Unique within %s container %q", c.ClassName(), cid),
			Reliability: High,
		}}
	}
	return nil
}

func indexedWithResourceID(e *Engine, target *hierarchy.Node) []Suggestion {
	rid := target.ResourceID()
	if rid == "" {
		return nil
	}

	group := e.filter(target.Tag, func(n *hierarchy.Node) bool { return n.ResourceID() == rid })
	n := rank(group, target)
	if len(group) < 2 || n == 0 {
		return nil
	}
	return []Suggestion{{
		Kind:        KindIndexedWithResourceID,
		Expression:  indexed(step(target.Tag, attrEq(hierarchy.AttrResourceID, rid)), n),
		Description: fmt.Sprintf("Indexed element with resource-id (%d of %d)", n, len(group)),
		Reliability: Medium,
	}}
}

func indexedByTag(e *Engine, target *hierarchy.Node) []Suggestion {
	group := e.filter(target.Tag, nil)
	n := rank(group, target)
	if len(group) < 2 || n == 0 {
		return nil
	}
	return []Suggestion{{
		Kind:        KindIndexedByTag,
		Expression:  indexed(step(target.Tag), n),
		Description: fmt.Sprintf("Indexed element by tag (%d of %d)", n, len(group)),
		Reliability: Low,
	}}
}

func parentChildIndexed(e *Engine, target *hierarchy.Node) []Suggestion {
	var out []Suggestion
	for _, c := range e.containers(target) {
		group := e.filter(target.Tag, func(n *hierarchy.Node) bool { return n.IsDescendantOf(c.Path) })
		n := rank(group, target)
		if len(group) < 2 || n == 0 {
			continue
		}
		out = append(out, Suggestion{
			Kind:        KindParentChildIndexed,
			Expression:  indexed(c.Path+step(target.Tag), n),
			Description: fmt.Sprintf("Indexed within %s container (%d of %d)", c.ClassName(), n, len(group)),
			Reliability: Medium,
		})
	}
	return out
}
