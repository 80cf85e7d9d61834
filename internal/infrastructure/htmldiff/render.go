package htmldiff

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
)

var pageTemplate = template.Must(template.New("diff").Funcs(template.FuncMap{
	"marker": func(lineType string) string {
		switch lineType {
		case reproducibility.DiffAdded:
			return "+"
		case reproducibility.DiffRemoved:
			return "-"
		default:
			return " "
		}
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #24292f; }
.summary { margin-bottom: 1.5em; }
table.hunk { border-collapse: collapse; width: 100%; margin-bottom: 1.5em; font-family: monospace; font-size: 13px; }
tr.header td { background: #ddf4ff; color: #57606a; padding: 4px 8px; }
td.num { width: 1%; min-width: 3em; text-align: right; color: #8c959f; padding: 0 8px; user-select: none; }
td.text { white-space: pre-wrap; padding: 0 8px; }
tr.added { background: #e6ffec; }
tr.removed { background: #ffebe9; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- with .Diff}}
{{- if or .BaseExecutionID .HeadExecutionID}}
<p>Base execution <code>{{.BaseExecutionID}}</code>, head execution <code>{{.HeadExecutionID}}</code></p>
{{- end}}
{{- if .Identical}}
<p class="summary">The outputs are identical.</p>
{{- else}}
<p class="summary">{{.Added}} blocks added, {{.Removed}} blocks removed.</p>
{{- end}}
{{- range .Hunks}}
<table class="hunk">
<tr class="header"><td colspan="3">@@ -{{.OldStart}},{{.OldCount}} +{{.NewStart}},{{.NewCount}} @@</td></tr>
{{- range .Lines}}
<tr class="{{.Type}}"><td class="num">{{if .OldLine}}{{.OldLine}}{{end}}</td><td class="num">{{if .NewLine}}{{.NewLine}}{{end}}</td><td class="text">{{marker .Type}} {{.Content}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- end}}
</body>
</html>
`))

// RenderHTML renders diff as a standalone page. All output text is escaped.
func (e *engine) RenderHTML(diff *reproducibility.OutputDiff, title string) ([]byte, error) {
	return RenderHTML(diff, title)
}

// RenderHTML renders diff as a standalone page. All output text is escaped.
func RenderHTML(diff *reproducibility.OutputDiff, title string) ([]byte, error) {
	if title == "" {
		title = "Output diff"
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title string
		Diff  *reproducibility.OutputDiff
	}{Title: title, Diff: diff})
	if err != nil {
		return nil, fmt.Errorf("failed to render diff: %w", err)
	}
	return buf.Bytes(), nil
}
