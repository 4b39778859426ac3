package engine

import (
	"fmt"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

type consolidateKey struct {
	ruleID   string
	file     string
	match    string
	message  string
	severity string
}

// Consolidate groups issues by (rule, file, match, message, severity),
// keeping first-seen order for both the groups and each group's locations.
// No occurrence is dropped or duplicated: the location counts across all
// groups always sum to len(issues).
func Consolidate(issues []ir.Issue) []ir.ConsolidatedIssue {
	var out []ir.ConsolidatedIssue
	index := make(map[consolidateKey]int)

	for _, is := range issues {
		k := consolidateKey{
			ruleID:   is.RuleID,
			file:     is.File,
			match:    is.Match,
			message:  is.Message,
			severity: is.Severity,
		}
		loc := fmt.Sprintf("%d:%d", is.Line, is.Column)
		if i, ok := index[k]; ok {
			out[i].Locations = append(out[i].Locations, loc)
			continue
		}
		index[k] = len(out)
		out = append(out, ir.ConsolidatedIssue{
			RuleID:    is.RuleID,
			File:      is.File,
			Match:     is.Match,
			Message:   is.Message,
			Severity:  is.Severity,
			Locations: []string{loc},
		})
	}
	return out
}
