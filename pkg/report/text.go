package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
)

// WriteText writes a plain-text digest of s. Each node without
// resource-id that has suggestions is listed with its top suggestions.
func WriteText(w io.Writer, s *analyzer.Summary, top int) error {
	if top <= 0 {
		top = DefaultExampleLimit
	}
	data := BuildStatus(s, top)

	var b strings.Builder
	fmt.Fprintf(&b, "Elements:              %d\n", s.TotalElements)
	fmt.Fprintf(&b, "  with resource-id:    %d\n", s.ElementsWithResourceID)
	fmt.Fprintf(&b, "  without resource-id: %d\n", s.ElementsWithoutResourceID)
	fmt.Fprintf(&b, "  focused:             %d\n", s.ElementsFocused)
	fmt.Fprintf(&b, "  clickable:           %d\n", s.ElementsClickable)
	fmt.Fprintf(&b, "  with suggestions:    %d\n", s.ElementsWithSuggestedXPaths)
	fmt.Fprintf(&b, "Suggestions:           %d (very_high %d, high %d, medium %d, low %d)\n",
		s.Reliability.Total, s.Reliability.VeryHigh, s.Reliability.High, s.Reliability.Medium, s.Reliability.Low)

	if len(data.SuggestedXPathExamples) > 0 {
		b.WriteString("\nSuggested XPaths\n")
		for i, ex := range data.SuggestedXPathExamples {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, ex.OriginalXPath)
			fmt.Fprintf(&b, "   text: %s\n", ex.Text)
			for _, sg := range ex.Suggestions {
				fmt.Fprintf(&b, "   [%-9s] %s\n", sg.Reliability, sg.Expression)
			}
		}
	}

	if len(data.ElementsWithDuplicates) > 0 {
		b.WriteString("\nDuplicate resource-ids\n")
		for _, d := range data.ElementsWithDuplicates {
			fmt.Fprintf(&b, "\n%s (%s)\n", d.Path, d.ResourceID)
			for _, sg := range d.Suggestions {
				fmt.Fprintf(&b, "   [%-9s] %s\n", sg.Reliability, sg.Expression)
			}
		}
	}

	if len(s.RiskyElements) > 0 {
		b.WriteString("\nRisky elements (clickable, no reliable locator)\n")
		for _, r := range s.RiskyElements {
			fmt.Fprintf(&b, "   %s %s %s\n", r.Path, r.Class, r.Bounds)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
