package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

type diffPayload struct {
	BaseID  string        `json:"base_id"`
	HeadID  string        `json:"head_id"`
	Summary diffSummary   `json:"summary"`
	New     []diffFinding `json:"new"`
	Fixed   []diffFinding `json:"fixed"`
	Changed []diffChanged `json:"changed"`
	Score   diffScore     `json:"score"`
}

type diffSummary struct {
	NewCount     int `json:"new"`
	FixedCount   int `json:"fixed"`
	ChangedCount int `json:"changed"`
}

type diffFinding struct {
	RuleID    string   `json:"rule_id"`
	File      string   `json:"file"`
	Severity  string   `json:"severity,omitempty"`
	Message   string   `json:"message,omitempty"`
	Locations []string `json:"locations,omitempty"`
}

type diffChanged struct {
	Key     string      `json:"key"`
	Base    diffFinding `json:"base"`
	Head    diffFinding `json:"head"`
	Changed []string    `json:"fields_changed"`
}

type diffScore struct {
	Base  ir.ScoreBreakdown `json:"base"`
	Head  ir.ScoreBreakdown `json:"head"`
	Delta int               `json:"delta"`
}

// WriteDiffJSON compares two runs by consolidated finding identity
// (rule + file + match) and reports what appeared, what went away, and what
// changed severity or occurrence count.
func WriteDiffJSON(baseID, headID, outDir string, base, head *ir.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	bm := map[string]ir.ConsolidatedIssue{}
	hm := map[string]ir.ConsolidatedIssue{}
	for _, c := range base.Consolidated {
		bm[keyOf(c)] = c
	}
	for _, c := range head.Consolidated {
		hm[keyOf(c)] = c
	}

	var p diffPayload
	p.BaseID, p.HeadID = baseID, headID
	p.Score = diffScore{
		Base:  base.Score,
		Head:  head.Score,
		Delta: head.Score.Total - base.Score.Total,
	}

	for _, hc := range head.Consolidated {
		k := keyOf(hc)
		bc, ok := bm[k]
		if !ok {
			p.New = append(p.New, asDiffFinding(hc))
			continue
		}
		var fields []string
		if bc.Severity != hc.Severity {
			fields = append(fields, "severity")
		}
		if len(bc.Locations) != len(hc.Locations) {
			fields = append(fields, "occurrences")
		}
		if len(fields) > 0 {
			p.Changed = append(p.Changed, diffChanged{
				Key:     k,
				Base:    asDiffFinding(bc),
				Head:    asDiffFinding(hc),
				Changed: fields,
			})
		}
	}
	for _, bc := range base.Consolidated {
		if _, ok := hm[keyOf(bc)]; !ok {
			p.Fixed = append(p.Fixed, asDiffFinding(bc))
		}
	}
	p.Summary = diffSummary{
		NewCount:     len(p.New),
		FixedCount:   len(p.Fixed),
		ChangedCount: len(p.Changed),
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return path, nil
}

func keyOf(c ir.ConsolidatedIssue) string {
	return strings.Join([]string{c.RuleID, c.File, c.Match}, "|")
}

func asDiffFinding(c ir.ConsolidatedIssue) diffFinding {
	return diffFinding{
		RuleID:    c.RuleID,
		File:      c.File,
		Severity:  c.Severity,
		Message:   c.Message,
		Locations: c.Locations,
	}
}
