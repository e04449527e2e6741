// Package renderer turns a report model into a standalone HTML document
// and manages the report files on disk.
package renderer

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"techpulse/internal/observability/metrics"
	"techpulse/internal/usecase/report"
)

//go:embed report.gohtml
var reportTemplate string

// filename timestamps sort lexicographically
const timestampLayout = "20060102_150405"

// HTMLRenderer renders reports with an embedded template and writes them
// under a configured output directory.
type HTMLRenderer struct {
	tmpl      *template.Template
	outputDir string
	prefix    string
}

// NewHTMLRenderer parses the embedded template. outputDir is created
// lazily on the first Save.
func NewHTMLRenderer(outputDir, prefix string) (*HTMLRenderer, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"score": func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"date": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl, outputDir: outputDir, prefix: prefix}, nil
}

// Render produces the HTML document for a report.
func (r *HTMLRenderer) Render(rep *report.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, rep); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	metrics.RecordReportRendered("html")
	return buf.Bytes(), nil
}

// Save renders the report and writes it to a timestamped file,
// "{prefix}_{YYYYMMDD_HHMMSS}.html", creating the output directory if
// needed. It returns the path of the written file.
func (r *HTMLRenderer) Save(rep *report.Report) (string, error) {
	data, err := r.Render(rep)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", r.outputDir, err)
	}

	name := fmt.Sprintf("%s_%s.html", r.prefix, rep.GeneratedAt.Format(timestampLayout))
	path := filepath.Join(r.outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}

// LatestReport returns the most recently modified HTML report in the
// output directory, or an empty string when there is none.
func (r *HTMLRenderer) LatestReport() (string, error) {
	matches, err := filepath.Glob(filepath.Join(r.outputDir, "*.html"))
	if err != nil {
		return "", fmt.Errorf("scan output directory: %w", err)
	}

	var latest string
	var latestMod time.Time
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = path
			latestMod = info.ModTime()
		}
	}
	return latest, nil
}
