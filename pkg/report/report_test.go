package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/hierarchy"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/locator"
)

func sugg(kind locator.Kind, expr string, r locator.Reliability) locator.Suggestion {
	return locator.Suggestion{Kind: kind, Expression: expr, Description: string(kind), Reliability: r}
}

func sampleSummary() *analyzer.Summary {
	many := []locator.Suggestion{
		sugg(locator.KindExactText, "//TextView[@text='Data']", locator.High),
		sugg(locator.KindNormalizeSpace, "//TextView[normalize-space(@text)='Data']", locator.High),
		sugg(locator.KindParentScoped, "//LinearLayout//TextView[@text='Data']", locator.High),
		sugg(locator.KindContextBased, "//TextView[@text='Plans']/..//TextView[@text='Data']", locator.Medium),
		sugg(locator.KindIndexedByTag, "(//TextView)[2]", locator.Low),
		sugg(locator.KindParentChildIndexed, "(//LinearLayout[1]//TextView)[2]", locator.Low),
	}
	dup := []locator.Suggestion{
		sugg(locator.KindResourceIDText, "//Button[@resource-id='buy' and @text='Buy']", locator.VeryHigh),
	}

	return &analyzer.Summary{
		TotalElements:               4,
		ElementsWithResourceID:      2,
		ElementsWithoutResourceID:   2,
		ElementsNotFocused:          4,
		ElementsWithSuggestedXPaths: 2,
		WithResourceIDDetails: []analyzer.Detail{
			{Path: "/hierarchy[1]/Button[1]", ResourceID: "buy", Text: "Buy", Suggestions: dup},
			{Path: "/hierarchy[1]/TextView[1]", ResourceID: "title", Text: "Plans"},
		},
		MissingResourceIDDetails: []analyzer.Detail{
			{Path: "/hierarchy[1]/TextView[2]", Text: "Data", Suggestions: many},
			{Path: "/hierarchy[1]"},
		},
		Reliability:   analyzer.Histogram{VeryHigh: 1, High: 3, Medium: 1, Low: 2, Total: 7},
		RiskyElements: []analyzer.RiskyElement{{Path: "/hierarchy[1]/ImageView[1]", Class: "android.widget.ImageView"}},
	}
}

func TestBuildStatus_Examples(t *testing.T) {
	data := BuildStatus(sampleSummary(), 3)

	if len(data.SuggestedXPathExamples) != 1 {
		t.Fatalf("expected 1 example, got %d", len(data.SuggestedXPathExamples))
	}
	ex := data.SuggestedXPathExamples[0]
	if ex.OriginalXPath != "/hierarchy[1]/TextView[2]" {
		t.Errorf("OriginalXPath = %q", ex.OriginalXPath)
	}
	if ex.Text != "Data" {
		t.Errorf("Text = %q, want Data", ex.Text)
	}
	if ex.ResourceID != NoResourceID {
		t.Errorf("ResourceID = %q, want %q", ex.ResourceID, NoResourceID)
	}
	if len(ex.Suggestions) != 3 {
		t.Errorf("expected 3 suggestions, got %d", len(ex.Suggestions))
	}
}

func TestBuildStatus_DefaultTop(t *testing.T) {
	data := BuildStatus(sampleSummary(), 0)

	if got := len(data.SuggestedXPathExamples[0].Suggestions); got != DefaultExampleLimit {
		t.Errorf("expected %d suggestions, got %d", DefaultExampleLimit, got)
	}
}

func TestBuildStatus_NoTextPlaceholder(t *testing.T) {
	s := sampleSummary()
	s.MissingResourceIDDetails[0].Text = ""

	data := BuildStatus(s, 5)
	if data.SuggestedXPathExamples[0].Text != NoText {
		t.Errorf("Text = %q, want %q", data.SuggestedXPathExamples[0].Text, NoText)
	}
	// Full details keep the empty string
	if data.MissingResourceIDDetailsFull[0].Text != "" {
		t.Errorf("full detail Text = %q, want empty", data.MissingResourceIDDetailsFull[0].Text)
	}
}

func TestBuildStatus_FullDetails(t *testing.T) {
	data := BuildStatus(sampleSummary(), 2)

	if len(data.MissingResourceIDDetailsFull) != 2 {
		t.Fatalf("expected 2 full details, got %d", len(data.MissingResourceIDDetailsFull))
	}
	first := data.MissingResourceIDDetailsFull[0]
	if len(first.Suggestions) != 6 {
		t.Errorf("full details must keep all suggestions, got %d", len(first.Suggestions))
	}
	second := data.MissingResourceIDDetailsFull[1]
	if second.Suggestions == nil {
		t.Error("expected empty, non-nil suggestions")
	}
	if second.ActualXPath != "/hierarchy[1]" || second.ResourceID != "" {
		t.Errorf("unexpected detail %+v", second)
	}
}

func TestBuildStatus_Duplicates(t *testing.T) {
	data := BuildStatus(sampleSummary(), 5)

	if len(data.ElementsWithDuplicates) != 1 {
		t.Fatalf("expected 1 duplicate element, got %d", len(data.ElementsWithDuplicates))
	}
	if data.ElementsWithDuplicates[0].ResourceID != "buy" {
		t.Errorf("unexpected duplicate %+v", data.ElementsWithDuplicates[0])
	}
}

func TestBuildStatus_Statistics(t *testing.T) {
	st := BuildStatus(sampleSummary(), 5).SuggestionStatistics

	want := Statistics{
		TotalSuggestionsGenerated: 6,
		HighReliability:           3,
		MediumReliability:         1,
		LowReliability:            2,
	}
	if st != want {
		t.Errorf("statistics = %+v, want %+v", st, want)
	}
}

func TestBuildStatus_EmptySummary(t *testing.T) {
	data := BuildStatus(&analyzer.Summary{}, 5)

	out, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"suggested_xpath_examples":[]`, `"missing_resource_id_details_full":[]`, `"elements_with_duplicates":[]`} {
		if !strings.Contains(string(out), key) {
			t.Errorf("expected %s in %s", key, out)
		}
	}
}

func TestStatusData_JSONFlattensSummary(t *testing.T) {
	out, err := json.Marshal(BuildStatus(sampleSummary(), 5))
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"total_elements", "elements_with_suggested_xpaths", "suggestion_statistics", "missing_resource_id_details"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
	if _, ok := m["Summary"]; ok {
		t.Error("summary should be flattened")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleSummary(), 2); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Elements:              4",
		"/hierarchy[1]/TextView[2]",
		"//TextView[@text='Data']",
		"Duplicate resource-ids",
		"Risky elements",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	// Only top 2 of the example suggestions are printed
	if strings.Contains(out, "(//TextView)[2]") {
		t.Errorf("expected suggestions trimmed to top 2:\n%s", out)
	}
}

func TestWriteNodesCSV(t *testing.T) {
	nodes, err := hierarchy.Build(`<hierarchy><node resource-id="a" text="Hi, there" clickable="true" bounds="[0,100][200,300]"/><node/></hierarchy>`)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteNodesCSV(&buf, nodes); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "xpath" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[2][0] != "/hierarchy[1]/node[1]" || rows[2][2] != "a" || rows[2][3] != "Hi, there" || rows[2][7] != "true" {
		t.Errorf("unexpected row %v", rows[2])
	}
	if rows[2][6] != "100,200" {
		t.Errorf("center = %q, want 100,200", rows[2][6])
	}
	if rows[3][6] != "" {
		t.Errorf("center without bounds = %q, want empty", rows[3][6])
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, sampleSummary(), HTMLConfig{Title: "Plans <screen>"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "Plans &lt;screen&gt;") {
		t.Error("expected escaped title")
	}
	if !strings.Contains(out, "50.0%") {
		t.Error("expected coverage 50.0%")
	}
	if !strings.Contains(out, "tier-very_high") {
		t.Error("expected duplicate suggestion tier class")
	}
}

func TestWriteHTML_DefaultTitle(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, &analyzer.Summary{}, HTMLConfig{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<title>Locator Report</title>") {
		t.Error("expected default title")
	}
}

func TestWriteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	if err := WriteDir(dir, sampleSummary(), HTMLConfig{}); err != nil {
		t.Fatalf("WriteDir failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, HTMLFile)); err != nil {
		t.Errorf("expected %s: %v", HTMLFile, err)
	}

	data, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	if err != nil {
		t.Fatalf("expected %s: %v", SummaryFile, err)
	}
	var s analyzer.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("invalid %s: %v", SummaryFile, err)
	}
	if s.TotalElements != 4 || len(s.MissingResourceIDDetails) != 2 {
		t.Errorf("unexpected summary %+v", s)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}
