package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

func issue(rule, file string, line, col int) ir.Issue {
	return ir.Issue{
		RuleID:   rule,
		File:     file,
		Line:     line,
		Column:   col,
		Match:    ": any",
		Message:  "msg",
		Severity: ir.SeverityHigh,
	}
}

func TestConsolidate_GroupsIdenticalFindings(t *testing.T) {
	issues := []ir.Issue{
		issue(RulePermissiveType, "a.ts", 3, 11),
		issue(RulePermissiveType, "a.ts", 9, 5),
		issue(RulePermissiveType, "b.ts", 1, 1),
	}
	out := Consolidate(issues)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"3:11", "9:5"}, out[0].Locations)
	assert.Equal(t, "a.ts", out[0].File)
	assert.Equal(t, []string{"1:1"}, out[1].Locations)
}

func TestConsolidate_PreservesFirstSeenOrder(t *testing.T) {
	issues := []ir.Issue{
		issue(RuleUnsafeCast, "a.ts", 1, 1),
		issue(RulePermissiveType, "a.ts", 2, 1),
		issue(RuleUnsafeCast, "a.ts", 3, 1),
	}
	out := Consolidate(issues)
	require.Len(t, out, 2)
	assert.Equal(t, RuleUnsafeCast, out[0].RuleID)
	assert.Equal(t, RulePermissiveType, out[1].RuleID)
}

func TestConsolidate_DifferingSeverityStaysSeparate(t *testing.T) {
	a := issue(RulePermissiveType, "a.ts", 1, 1)
	b := issue(RulePermissiveType, "a.ts", 2, 1)
	b.Severity = ir.SeverityLow
	out := Consolidate([]ir.Issue{a, b})
	assert.Len(t, out, 2)
}

func TestConsolidate_LocationCountsSumToInput(t *testing.T) {
	var issues []ir.Issue
	for i := 1; i <= 7; i++ {
		issues = append(issues, issue(RulePermissiveType, "a.ts", i, 1))
	}
	issues = append(issues, issue(RuleVarDecl, "a.ts", 2, 1))

	total := 0
	for _, c := range Consolidate(issues) {
		total += len(c.Locations)
	}
	assert.Equal(t, len(issues), total)
}

func TestConsolidate_EmptyInput(t *testing.T) {
	assert.Empty(t, Consolidate(nil))
}
