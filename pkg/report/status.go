package report

import (
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/locator"
)

// BuildStatus derives the status payload from a summary. Examples keep at
// most top suggestions each; top <= 0 means DefaultExampleLimit.
func BuildStatus(s *analyzer.Summary, top int) *StatusData {
	if top <= 0 {
		top = DefaultExampleLimit
	}

	data := &StatusData{
		Summary:                      *s,
		SuggestedXPathExamples:       []Example{},
		MissingResourceIDDetailsFull: make([]FullDetail, 0, len(s.MissingResourceIDDetails)),
		ElementsWithDuplicates:       []analyzer.Detail{},
	}

	for _, d := range s.MissingResourceIDDetails {
		if len(d.Suggestions) > 0 {
			data.SuggestedXPathExamples = append(data.SuggestedXPathExamples, Example{
				OriginalXPath: d.Path,
				Text:          orDefault(d.Text, NoText),
				ResourceID:    orDefault(d.ResourceID, NoResourceID),
				Suggestions:   locator.Top(d.Suggestions, top),
			})
		}

		suggestions := d.Suggestions
		if suggestions == nil {
			suggestions = []locator.Suggestion{}
		}
		data.MissingResourceIDDetailsFull = append(data.MissingResourceIDDetailsFull, FullDetail{
			ActualXPath: d.Path,
			Text:        d.Text,
			ResourceID:  d.ResourceID,
			Suggestions: suggestions,
		})

		data.SuggestionStatistics.add(d.Suggestions)
	}

	for _, d := range s.WithResourceIDDetails {
		if len(d.Suggestions) > 0 {
			data.ElementsWithDuplicates = append(data.ElementsWithDuplicates, d)
		}
	}

	return data
}

func (st *Statistics) add(list []locator.Suggestion) {
	for _, s := range list {
		st.TotalSuggestionsGenerated++
		switch s.Reliability {
		case locator.VeryHigh:
			st.VeryHighReliability++
		case locator.High:
			st.HighReliability++
		case locator.Medium:
			st.MediumReliability++
		case locator.Low:
			st.LowReliability++
		}
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
