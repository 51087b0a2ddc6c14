package locator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/hierarchy"
)

// combinationAttrs are the attributes joined by attributeCombination, in
// preference order.
var combinationAttrs = []string{
	hierarchy.AttrResourceID,
	hierarchy.AttrClass,
	hierarchy.AttrPackage,
	hierarchy.AttrClickable,
	hierarchy.AttrEnabled,
}

func exactText(_ *Engine, target *hierarchy.Node) []Suggestion {
	text := target.Text()
	if text == "" {
		return nil
	}
	return []Suggestion{{
		Kind:        KindExactText,
		Expression:  step(target.Tag, attrEq(hierarchy.AttrText, text)),
		Description: fmt.Sprintf("Direct match by exact text %q", text),
		Reliability: High,
	}}
}

func normalizedText(_ *Engine, target *hierarchy.Node) []Suggestion {
	text := target.Text()
	if text == "" {
		return nil
	}
	return []Suggestion{{
		Kind:        KindNormalizeSpace,
		Expression:  step(target.Tag, "normalize-space(.)="+Literal(text)),
		Description: "Using normalize-space for whitespace safety",
		Reliability: High,
	}}
}

func resourceIDText(_ *Engine, target *hierarchy.Node) []Suggestion {
	text, rid := target.Text(), target.ResourceID()
	if text == "" || rid == "" {
		return nil
	}
	return []Suggestion{{
		Kind:        KindResourceIDText,
		Expression:  step(target.Tag, attrEq(hierarchy.AttrResourceID, rid), attrEq(hierarchy.AttrText, text)),
		Description: "Combined resource-id and text match",
		Reliability: VeryHigh,
	}}
}

func parentScoped(e *Engine, target *hierarchy.Node) []Suggestion {
	text := target.Text()
	if text == "" {
		return nil
	}

	var out []Suggestion
	for _, c := range e.containers(target) {
		cid := c.ResourceID()
		if cid == "" {
			continue
		}
		out = append(out, Suggestion{
			Kind:        KindParentScoped,
			Expression:  step(c.Tag, attrEq(hierarchy.AttrResourceID, cid)) + step(target.Tag, attrEq(hierarchy.AttrText, text)),
			Description: fmt.Sprintf("Scoped under %s container %q", c.ClassName(), cid),
			Reliability: High,
		})
	}
	return out
}

func siblingRelative(e *Engine, target *hierarchy.Node) []Suggestion {
	text := target.Text()
	if text == "" {
		return nil
	}

	var out []Suggestion
	targetPos := e.position(target)
	for _, label := range e.labels(target, siblingMaxDepthDelta, siblingMaxMatches, nil) {
		labelText := label.Text()
		anchor := step(label.Tag, attrEq(hierarchy.AttrText, labelText))

		if label.ParentPath() == target.ParentPath() {
			axis := "following-sibling"
			if e.position(label) > targetPos {
				axis = "preceding-sibling"
			}
			out = append(out, Suggestion{
				Kind:        KindSiblingRelative,
				Expression:  anchor + "/" + axis + "::" + target.Tag + "[" + attrEq(hierarchy.AttrText, text) + "]",
				Description: fmt.Sprintf("Relative to %q label", labelText),
				Reliability: Medium,
			})
		}

		out = append(out, Suggestion{
			Kind:        KindSiblingAncestor,
			Expression:  anchor + "/ancestor::*[1]" + step(target.Tag, attrEq(hierarchy.AttrText, text)),
			Description: fmt.Sprintf("Relative to %q within same ancestor", labelText),
			Reliability: Medium,
		})
	}
	return out
}

func attributeCombination(_ *Engine, target *hierarchy.Node) []Suggestion {
	text := target.Text()
	if text == "" {
		return nil
	}

	var preds, names []string
	for _, attr := range combinationAttrs {
		if v := target.Value(attr); v != "" {
			preds = append(preds, attrEq(attr, v))
			names = append(names, attr)
		}
	}
	if len(preds) == 0 {
		return nil
	}
	preds = append(preds, attrEq(hierarchy.AttrText, text))
	names = append(names, hierarchy.AttrText)

	return []Suggestion{{
		Kind:        KindAttributeCombination,
		Expression:  step(target.Tag, preds...),
		Description: "Combination of " + strings.Join(names, ", ") + " attributes",
		Reliability: High,
	}}
}

func contextBased(e *Engine, target *hierarchy.Node) []Suggestion {
	text := target.Text()
	if text == "" {
		return nil
	}

	var out []Suggestion
	for _, c := range e.labels(target, contextMaxDepthDelta, contextMaxMatches, isDescriptive) {
		ctxText := c.Text()
		out = append(out, Suggestion{
			Kind:        KindContextBased,
			Expression:  step(c.Tag, "contains(@text,"+Literal(ctxText)+")") + "/ancestor::*[1]" + step(target.Tag, attrEq(hierarchy.AttrText, text)),
			Description: fmt.Sprintf("Located through nearby context %q", ctxText),
			Reliability: Medium,
		})
	}
	return out
}

// isDescriptive accepts labels worth anchoring on: longer than three
// characters and not just a number.
func isDescriptive(n *hierarchy.Node) bool {
	text := n.Text()
	return utf8.RuneCountInString(text) >= contextMinTextLen && !isNumeric(text)
}

// isNumeric reports whether s is only digits with optional sign and
// grouping or decimal separators ("1,250", "-3.5").
func isNumeric(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',' || r == ' ':
		case (r == '-' || r == '+') && i == 0:
		default:
			return false
		}
	}
	return digits > 0
}
