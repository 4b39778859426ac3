package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace} .critical{color:#b00} .high{color:#c60}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>karpeslop report <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Files: %d &nbsp; Issues: %d &nbsp; Unique findings: %d</p>",
		run.Files, len(run.Issues), len(run.Consolidated))
	fmt.Fprintf(f, "<p><b>Slop score</b>: total=%d &nbsp; utility=%d &nbsp; quality=%d &nbsp; style=%d <span class='dim'>(lower is better)</span></p>",
		run.Score.Total, run.Score.Utility, run.Score.Quality, run.Score.Style)
	if run.Quiet {
		fmt.Fprint(f, "<p class='dim'>Quiet mode: test files limited to logging findings.</p>")
	}

	// Severity counts
	counts := map[string]int{}
	for _, c := range run.Consolidated {
		counts[c.Severity]++
	}
	fmt.Fprintf(f, "<p class='dim'>critical: %d &nbsp; high: %d &nbsp; medium: %d &nbsp; low: %d</p>",
		counts[ir.SeverityCritical], counts[ir.SeverityHigh], counts[ir.SeverityMedium], counts[ir.SeverityLow])

	// All consolidated findings
	if len(run.Consolidated) > 0 {
		fmt.Fprint(f, "<h2>Findings</h2><table><tr><th>Severity</th><th>Rule</th><th>File</th><th>Locations</th><th>Match</th><th>Message</th></tr>")
		for _, c := range run.Consolidated {
			fmt.Fprintf(f, "<tr><td class='%s'>%s</td><td>%s</td><td class='mono'>%s</td><td class='mono'>%s</td><td class='mono'>%s</td><td>%s</td></tr>",
				html.EscapeString(c.Severity),
				html.EscapeString(c.Severity),
				html.EscapeString(c.RuleID),
				html.EscapeString(c.File),
				html.EscapeString(strings.Join(c.Locations, ", ")),
				html.EscapeString(truncate(c.Match, 60)),
				html.EscapeString(c.Message),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>Findings</h2><p class='dim'>Clean: nothing matched.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
