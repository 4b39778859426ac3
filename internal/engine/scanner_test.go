package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLine_ColumnsAreOneBased(t *testing.T) {
	rs, err := Build(nil)
	require.NoError(t, err)

	ms := scanLine("const data: any = {};", rs.Rules(), 0)
	require.Len(t, ms, 1)
	assert.Equal(t, RulePermissiveType, ms[0].ruleID)
	assert.Equal(t, 11, ms[0].col)
	assert.Equal(t, ": any", ms[0].text)
}

func TestScanLine_MultipleMatchesLeftToRight(t *testing.T) {
	rs, err := Build(nil)
	require.NoError(t, err)

	ms := scanLine("const a: any = x as any;", rs.Rules(), 0)
	require.Len(t, ms, 2)
	// registry order first, then left-to-right within a rule
	assert.Equal(t, RulePermissiveType, ms[0].ruleID)
	assert.Equal(t, RuleUnsafeCast, ms[1].ruleID)
	assert.Less(t, ms[0].col, ms[1].col)
}

func TestScanLine_NoStateLeaksBetweenLines(t *testing.T) {
	rs, err := Build(nil)
	require.NoError(t, err)

	// Same line scanned twice must yield identical results; a stateful
	// matcher would exhaust its iteration on the first pass.
	first := scanLine("let a: any, b: any;", rs.Rules(), 0)
	second := scanLine("let a: any, b: any;", rs.Rules(), 1)
	require.Len(t, first, 2)
	require.Len(t, second, 2)
	for i := range first {
		assert.Equal(t, first[i].col, second[i].col)
		assert.Equal(t, first[i].text, second[i].text)
	}
}

func TestScanLine_SkipsSyntheticRules(t *testing.T) {
	rs, err := Build(nil)
	require.NoError(t, err)

	for _, m := range scanLine("if (a) { if (b) { } }", rs.Rules(), 0) {
		assert.NotEqual(t, RuleNestedControl, m.ruleID, "nested-control issues come from the nesting pass only")
	}
}
