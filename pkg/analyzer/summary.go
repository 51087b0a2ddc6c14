package analyzer

import "github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/locator"

// Summary is the analysis result for one hierarchy document.
type Summary struct {
	TotalElements               int `json:"total_elements" yaml:"total_elements"`
	ElementsWithResourceID      int `json:"elements_with_resource_id" yaml:"elements_with_resource_id"`
	ElementsWithoutResourceID   int `json:"elements_without_resource_id" yaml:"elements_without_resource_id"`
	ElementsFocused             int `json:"elements_focused" yaml:"elements_focused"`
	ElementsNotFocused          int `json:"elements_not_focused" yaml:"elements_not_focused"`
	ElementsClickable           int `json:"elements_clickable" yaml:"elements_clickable"`
	ElementsWithSuggestedXPaths int `json:"elements_with_suggested_xpaths" yaml:"elements_with_suggested_xpaths"`

	WithResourceIDDetails    []Detail `json:"with_resource_id_details" yaml:"with_resource_id_details"`
	MissingResourceIDDetails []Detail `json:"missing_resource_id_details" yaml:"missing_resource_id_details"`

	Reliability   Histogram      `json:"reliability_histogram" yaml:"reliability_histogram"`
	RiskyElements []RiskyElement `json:"risky_elements" yaml:"risky_elements"`
}

// Detail describes one node. Optional fields are omitted when the node
// does not carry the attribute.
type Detail struct {
	Path        string               `json:"xpath" yaml:"xpath"`
	ResourceID  string               `json:"resource_id,omitempty" yaml:"resource_id,omitempty"`
	Bounds      string               `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Text        string               `json:"text,omitempty" yaml:"text,omitempty"`
	Focused     string               `json:"focused,omitempty" yaml:"focused,omitempty"`
	Suggestions []locator.Suggestion `json:"suggested_xpaths,omitempty" yaml:"suggested_xpaths,omitempty"`
}

// Histogram counts generated suggestions per reliability tier.
type Histogram struct {
	VeryHigh int `json:"very_high" yaml:"very_high"`
	High     int `json:"high" yaml:"high"`
	Medium   int `json:"medium" yaml:"medium"`
	Low      int `json:"low" yaml:"low"`
	Total    int `json:"total" yaml:"total"`
}

// Add counts every suggestion in list.
func (h *Histogram) Add(list []locator.Suggestion) {
	for _, s := range list {
		switch s.Reliability {
		case locator.VeryHigh:
			h.VeryHigh++
		case locator.High:
			h.High++
		case locator.Medium:
			h.Medium++
		case locator.Low:
			h.Low++
		}
		h.Total++
	}
}

// RiskyElement is a clickable node that no strong locator can reach.
type RiskyElement struct {
	Path   string `json:"xpath" yaml:"xpath"`
	Class  string `json:"class,omitempty" yaml:"class,omitempty"`
	Bounds string `json:"bounds,omitempty" yaml:"bounds,omitempty"`
}
