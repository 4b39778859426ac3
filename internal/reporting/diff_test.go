package reporting

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

func consolidated(rule, file, match, sev string, locs ...string) ir.ConsolidatedIssue {
	return ir.ConsolidatedIssue{
		RuleID:    rule,
		File:      file,
		Match:     match,
		Message:   "m",
		Severity:  sev,
		Locations: locs,
	}
}

func TestWriteDiffJSON(t *testing.T) {
	base := &ir.Run{
		ID: "run-base",
		Consolidated: []ir.ConsolidatedIssue{
			consolidated("permissive-type-usage", "a.ts", ": any", ir.SeverityHigh, "3:11"),
			consolidated("production-console-log", "a.ts", "console.log(", ir.SeverityLow, "9:1"),
			consolidated("var-declaration", "b.ts", "var x", ir.SeverityLow, "1:1"),
		},
		Score: ir.ScoreBreakdown{Style: 8, Total: 8},
	}
	head := &ir.Run{
		ID: "run-head",
		Consolidated: []ir.ConsolidatedIssue{
			// unchanged
			consolidated("production-console-log", "a.ts", "console.log(", ir.SeverityLow, "9:1"),
			// more occurrences now
			consolidated("permissive-type-usage", "a.ts", ": any", ir.SeverityHigh, "3:11", "14:5"),
			// brand new
			consolidated("empty-catch-block", "a.ts", "catch {}", ir.SeverityHigh, "20:3"),
		},
		Score: ir.ScoreBreakdown{Style: 12, Total: 12},
	}

	dir := t.TempDir()
	path, err := WriteDiffJSON("run-base", "run-head", dir, base, head)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var p diffPayload
	require.NoError(t, json.Unmarshal(b, &p))

	assert.Equal(t, "run-base", p.BaseID)
	assert.Equal(t, "run-head", p.HeadID)

	require.Len(t, p.New, 1)
	assert.Equal(t, "empty-catch-block", p.New[0].RuleID)

	require.Len(t, p.Fixed, 1)
	assert.Equal(t, "var-declaration", p.Fixed[0].RuleID)

	require.Len(t, p.Changed, 1)
	assert.Equal(t, "permissive-type-usage|a.ts|: any", p.Changed[0].Key)
	assert.Equal(t, []string{"occurrences"}, p.Changed[0].Changed)

	assert.Equal(t, diffSummary{NewCount: 1, FixedCount: 1, ChangedCount: 1}, p.Summary)
	assert.Equal(t, 4, p.Score.Delta)
}

func TestWriteDiffJSON_IdenticalRuns(t *testing.T) {
	run := &ir.Run{
		ID: "run-x",
		Consolidated: []ir.ConsolidatedIssue{
			consolidated("var-declaration", "b.ts", "var x", ir.SeverityLow, "1:1"),
		},
		Score: ir.ScoreBreakdown{Style: 1, Total: 1},
	}
	path, err := WriteDiffJSON("run-x", "run-x", t.TempDir(), run, run)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var p diffPayload
	require.NoError(t, json.Unmarshal(b, &p))

	assert.Empty(t, p.New)
	assert.Empty(t, p.Fixed)
	assert.Empty(t, p.Changed)
	assert.Equal(t, 0, p.Score.Delta)
}

func TestWriteDiffJSON_SeverityChange(t *testing.T) {
	base := &ir.Run{Consolidated: []ir.ConsolidatedIssue{
		consolidated("production-console-log", "a.ts", "console.log(", ir.SeverityLow, "9:1"),
	}}
	head := &ir.Run{Consolidated: []ir.ConsolidatedIssue{
		consolidated("production-console-log", "a.ts", "console.log(", ir.SeverityMedium, "9:1"),
	}}
	path, err := WriteDiffJSON("b", "h", t.TempDir(), base, head)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var p diffPayload
	require.NoError(t, json.Unmarshal(b, &p))
	require.Len(t, p.Changed, 1)
	assert.Equal(t, []string{"severity"}, p.Changed[0].Changed)
}
