// Package locator proposes alternative XPath locators for UI hierarchy
// nodes that lack a usable resource-id.
//
// A fixed battery of strategies runs against the full node list; each
// contributes zero or more Suggestions tagged with a reliability tier.
// The combined list is stable-sorted by tier, so strategies that tie keep
// their generation order.
package locator

import (
	"sort"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/hierarchy"
)

// Kind identifies the strategy that produced a suggestion.
type Kind string

// Strategy kinds, in generation order.
const (
	KindExactText             Kind = "exact_text"
	KindNormalizeSpace        Kind = "normalize_space"
	KindResourceIDText        Kind = "resource_id_text"
	KindParentScoped          Kind = "parent_scoped"
	KindSiblingRelative       Kind = "sibling_relative"
	KindSiblingAncestor       Kind = "sibling_ancestor"
	KindAttributeCombination  Kind = "attribute_combination"
	KindContextBased          Kind = "context_based"
	KindScopedUnderContainer  Kind = "scoped_under_container"
	KindIndexedWithResourceID Kind = "indexed_with_resource_id"
	KindIndexedByTag          Kind = "indexed_by_tag"
	KindParentChildIndexed    Kind = "parent_child_indexed"
)

// Reliability is the confidence tier of a suggestion.
type Reliability string

// Reliability tiers, strongest first.
const (
	VeryHigh Reliability = "very_high"
	High     Reliability = "high"
	Medium   Reliability = "medium"
	Low      Reliability = "low"
)

// Tiers lists every reliability tier, strongest first.
var Tiers = []Reliability{VeryHigh, High, Medium, Low}

// Weight returns the ordinal of the tier (very_high=4 ... low=1, unknown=0).
func (r Reliability) Weight() int {
	switch r {
	case VeryHigh:
		return 4
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r is as strong as other.
func (r Reliability) AtLeast(other Reliability) bool {
	return r.Weight() >= other.Weight()
}

// Suggestion is one candidate locator for a node.
type Suggestion struct {
	Kind        Kind        `json:"type" yaml:"type"`
	Expression  string      `json:"xpath" yaml:"xpath"`
	Description string      `json:"description" yaml:"description"`
	Reliability Reliability `json:"reliability" yaml:"reliability"`
}

// Rank sorts suggestions by reliability, strongest first. The sort is
// stable: equal tiers keep generation order.
func Rank(suggestions []Suggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Reliability.Weight() > suggestions[j].Reliability.Weight()
	})
}

// Top returns at most k leading suggestions; k <= 0 means all.
func Top(suggestions []Suggestion, k int) []Suggestion {
	if k <= 0 || len(suggestions) <= k {
		return suggestions
	}
	return suggestions[:k]
}

// IsRisky reports whether a node is clickable but cannot be located
// reliably: no resource-id, no text and nothing at high or better.
func IsRisky(n *hierarchy.Node, suggestions []Suggestion) bool {
	if !n.IsTrue(hierarchy.AttrClickable) || n.ResourceID() != "" || n.Text() != "" {
		return false
	}
	for _, s := range suggestions {
		if s.Reliability.AtLeast(High) {
			return false
		}
	}
	return true
}
