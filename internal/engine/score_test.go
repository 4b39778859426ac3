package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

func scoredIssue(ruleID string) ir.Issue {
	return ir.Issue{RuleID: ruleID, File: "a.ts", Line: 1, Column: 1, Severity: ir.SeverityHigh}
}

func TestClassifyAxis(t *testing.T) {
	tests := []struct {
		ruleID string
		want   axis
	}{
		{RuleHallucinatedImport, axisQuality},
		{RulePlaceholderImpl, axisQuality},
		{RuleAssumptionComment, axisQuality},
		{RuleRedundantComment, axisUtility},
		{RuleBoilerplateComment, axisUtility},
		{RulePermissiveType, axisStyle},
		{RuleProductionLog, axisStyle},
		{RuleNestedControl, axisStyle},
		{"team-banned-comment-style", axisUtility},
		{"team-custom", axisStyle},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyAxis(tt.ruleID), tt.ruleID)
	}
}

func TestScore_WeightsAndAxes(t *testing.T) {
	s := Score([]ir.Issue{
		scoredIssue(RuleHallucinatedImport), // quality, 10
		scoredIssue(RulePermissiveType),     // style, 5
		scoredIssue(RuleProductionLog),      // style, 2
		scoredIssue(RuleRedundantComment),   // utility, default 3
	})
	assert.Equal(t, 10, s.Quality)
	assert.Equal(t, 7, s.Style)
	assert.Equal(t, 3, s.Utility)
	assert.Equal(t, 20, s.Total)
}

func TestScore_UnknownRuleTakesDefaultWeight(t *testing.T) {
	s := Score([]ir.Issue{scoredIssue("team-no-moment")})
	assert.Equal(t, defaultWeight, s.Style)
	assert.Equal(t, defaultWeight, s.Total)
}

func TestScore_OrderIndependent(t *testing.T) {
	issues := []ir.Issue{
		scoredIssue(RuleHallucinatedImport),
		scoredIssue(RuleRedundantComment),
		scoredIssue(RuleVarDecl),
		scoredIssue(RuleEmptyCatch),
	}
	forward := Score(issues)

	reversed := make([]ir.Issue, len(issues))
	for i, is := range issues {
		reversed[len(issues)-1-i] = is
	}
	assert.Equal(t, forward, Score(reversed))
}

func TestScore_Empty(t *testing.T) {
	assert.Equal(t, ir.ScoreBreakdown{}, Score(nil))
}
