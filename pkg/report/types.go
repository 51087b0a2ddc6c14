// Package report shapes analysis results for API responses and CLI output.
//
// Outputs:
//   - StatusData: the enriched /status payload (summary plus examples)
//   - text: a plain-text digest for terminals
//   - CSV: one row per hierarchy node
//   - HTML: a single self-contained page
//   - report directory: summary.json + report.html written atomically
package report

import (
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/locator"
)

// DefaultExampleLimit is the number of suggestions kept per example.
const DefaultExampleLimit = 5

// Placeholders used in examples when a node has no text or resource-id.
const (
	NoText       = "No text"
	NoResourceID = "No resource-id"
)

// ============================================================================
// STATUS PAYLOAD
// ============================================================================

// StatusData is the summary enriched with ready-to-display examples.
type StatusData struct {
	analyzer.Summary `yaml:",inline"`

	SuggestedXPathExamples       []Example         `json:"suggested_xpath_examples" yaml:"suggested_xpath_examples"`
	MissingResourceIDDetailsFull []FullDetail      `json:"missing_resource_id_details_full" yaml:"missing_resource_id_details_full"`
	ElementsWithDuplicates       []analyzer.Detail `json:"elements_with_duplicates" yaml:"elements_with_duplicates"`
	SuggestionStatistics         Statistics        `json:"suggestion_statistics" yaml:"suggestion_statistics"`
}

// Example is a node without resource-id together with its strongest
// suggestions.
type Example struct {
	OriginalXPath string               `json:"original_xpath" yaml:"original_xpath"`
	Text          string               `json:"text" yaml:"text"`
	ResourceID    string               `json:"resource_id" yaml:"resource_id"`
	Suggestions   []locator.Suggestion `json:"suggested_xpaths" yaml:"suggested_xpaths"`
}

// FullDetail lists every suggestion for a node without resource-id.
// Missing values are empty strings rather than omitted.
type FullDetail struct {
	ActualXPath string               `json:"actual_xpath" yaml:"actual_xpath"`
	Text        string               `json:"text" yaml:"text"`
	ResourceID  string               `json:"resource_id" yaml:"resource_id"`
	Suggestions []locator.Suggestion `json:"suggested_xpaths" yaml:"suggested_xpaths"`
}

// Statistics counts suggestions generated for nodes without resource-id.
type Statistics struct {
	TotalSuggestionsGenerated int `json:"total_suggestions_generated" yaml:"total_suggestions_generated"`
	VeryHighReliability       int `json:"very_high_reliability" yaml:"very_high_reliability"`
	HighReliability           int `json:"high_reliability" yaml:"high_reliability"`
	MediumReliability         int `json:"medium_reliability" yaml:"medium_reliability"`
	LowReliability            int `json:"low_reliability" yaml:"low_reliability"`
}
