package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
)

// HTMLConfig contains configuration for HTML report generation.
type HTMLConfig struct {
	Title string // Report title (default: "Locator Report")
	Top   int    // Suggestions shown per element (default: DefaultExampleLimit)
}

// HTMLData contains all data needed for the HTML template.
type HTMLData struct {
	Title       string
	GeneratedAt string
	Status      *StatusData
	Coverage    float64 // Percent of elements with a resource-id
}

// WriteHTML renders s as a single HTML page.
func WriteHTML(w io.Writer, s *analyzer.Summary, cfg HTMLConfig) error {
	if cfg.Title == "" {
		cfg.Title = "Locator Report"
	}

	data := HTMLData{
		Title:       cfg.Title,
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Status:      BuildStatus(s, cfg.Top),
	}
	if s.TotalElements > 0 {
		data.Coverage = float64(s.ElementsWithResourceID) * 100 / float64(s.TotalElements)
	}

	html, err := renderHTML(data)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	_, err = io.WriteString(w, html)
	return err
}

func renderHTML(data HTMLData) (string, error) {
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        :root {
            --bg-primary: #ffffff;
            --bg-secondary: #f9fafb;
            --text-primary: #000000;
            --text-muted: rgb(107, 114, 128);
            --border-color: #e5e7eb;
            --very-high: #16a34a;
            --high: #22c55e;
            --medium: #eab308;
            --low: #ef4444;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; color: var(--text-primary); background: var(--bg-secondary); padding: 24px; }
        h1 { font-size: 22px; margin-bottom: 4px; }
        h2 { font-size: 16px; margin: 24px 0 8px; }
        .muted { color: var(--text-muted); font-size: 13px; }
        .cards { display: flex; gap: 12px; flex-wrap: wrap; margin-top: 16px; }
        .card { background: var(--bg-primary); border: 1px solid var(--border-color); border-radius: 8px; padding: 12px 16px; min-width: 140px; }
        .card .value { font-size: 20px; font-weight: 600; }
        table { width: 100%; border-collapse: collapse; background: var(--bg-primary); border: 1px solid var(--border-color); }
        th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid var(--border-color); font-size: 13px; vertical-align: top; }
        code { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 12px; }
        .tier { font-weight: 600; }
        .tier-very_high { color: var(--very-high); }
        .tier-high { color: var(--high); }
        .tier-medium { color: var(--medium); }
        .tier-low { color: var(--low); }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <div class="muted">Generated {{.GeneratedAt}}</div>

    <div class="cards">
        <div class="card"><div class="muted">Elements</div><div class="value">{{.Status.TotalElements}}</div></div>
        <div class="card"><div class="muted">With resource-id</div><div class="value">{{.Status.ElementsWithResourceID}}</div></div>
        <div class="card"><div class="muted">Without resource-id</div><div class="value">{{.Status.ElementsWithoutResourceID}}</div></div>
        <div class="card"><div class="muted">Coverage</div><div class="value">{{printf "%.1f" .Coverage}}%</div></div>
        <div class="card"><div class="muted">Clickable</div><div class="value">{{.Status.ElementsClickable}}</div></div>
        <div class="card"><div class="muted">Suggestions</div><div class="value">{{.Status.Reliability.Total}}</div></div>
    </div>

    {{if .Status.SuggestedXPathExamples}}
    <h2>Suggested XPaths</h2>
    <table>
        <tr><th>Element</th><th>Text</th><th>Suggestions</th></tr>
        {{range .Status.SuggestedXPathExamples}}
        <tr>
            <td><code>{{.OriginalXPath}}</code></td>
            <td>{{.Text}}</td>
            <td>{{range .Suggestions}}<div><span class="tier tier-{{.Reliability}}">{{.Reliability}}</span> <code>{{.Expression}}</code></div>{{end}}</td>
        </tr>
        {{end}}
    </table>
    {{end}}

    {{if .Status.ElementsWithDuplicates}}
    <h2>Duplicate resource-ids</h2>
    <table>
        <tr><th>Element</th><th>Resource-id</th><th>Suggestions</th></tr>
        {{range .Status.ElementsWithDuplicates}}
        <tr>
            <td><code>{{.Path}}</code></td>
            <td>{{.ResourceID}}</td>
            <td>{{range .Suggestions}}<div><span class="tier tier-{{.Reliability}}">{{.Reliability}}</span> <code>{{.Expression}}</code></div>{{end}}</td>
        </tr>
        {{end}}
    </table>
    {{end}}

    {{if .Status.RiskyElements}}
    <h2>Risky elements</h2>
    <table>
        <tr><th>Element</th><th>Class</th><th>Bounds</th></tr>
        {{range .Status.RiskyElements}}
        <tr><td><code>{{.Path}}</code></td><td>{{.Class}}</td><td>{{.Bounds}}</td></tr>
        {{end}}
    </table>
    {{end}}
</body>
</html>
`
