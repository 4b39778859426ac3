package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

func TestBuild_BuiltinsOnly(t *testing.T) {
	rs, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, len(builtinRules), rs.Len())

	r, ok := rs.Get(RulePermissiveType)
	require.True(t, ok)
	assert.Equal(t, ir.SeverityHigh, r.Severity)

	r, ok = rs.Get(RuleHallucinatedImport)
	require.True(t, ok)
	assert.Equal(t, ir.SeverityCritical, r.Severity)
}

func TestBuild_CustomRulesAppendInOrder(t *testing.T) {
	cfg := &Config{
		CustomRules: []CustomRule{
			{ID: "team-no-moment", Pattern: `from ['"]moment['"]`, Message: "moment.js is banned", Severity: "medium"},
			{ID: "team-no-alert", Pattern: `\balert\s*\(`, Message: "no alert()", Severity: "low"},
		},
	}
	rs, err := Build(cfg)
	require.NoError(t, err)
	require.Equal(t, len(builtinRules)+2, rs.Len())

	rules := rs.Rules()
	assert.Equal(t, "team-no-moment", rules[len(builtinRules)].ID)
	assert.Equal(t, "team-no-alert", rules[len(builtinRules)+1].ID)
}

func TestBuild_SeverityOverride(t *testing.T) {
	cfg := &Config{
		SeverityOverrides: map[string]string{
			RulePermissiveType: "low",
			"not-a-real-rule":  "critical", // unknown ids are ignored
		},
	}
	rs, err := Build(cfg)
	require.NoError(t, err)
	r, _ := rs.Get(RulePermissiveType)
	assert.Equal(t, ir.SeverityLow, r.Severity)
}

func TestBuild_OverrideDoesNotMutateBuiltins(t *testing.T) {
	cfg := &Config{SeverityOverrides: map[string]string{RulePermissiveType: "low"}}
	_, err := Build(cfg)
	require.NoError(t, err)

	rs, err := Build(nil)
	require.NoError(t, err)
	r, _ := rs.Get(RulePermissiveType)
	assert.Equal(t, ir.SeverityHigh, r.Severity, "a previous run's override leaked into the builtin table")
}

func TestBuild_RejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name    string
		rule    CustomRule
		wantMsg string
	}{
		{"missing id", CustomRule{Pattern: "x", Message: "m", Severity: "low"}, "missing required field: id"},
		{"missing pattern", CustomRule{ID: "r", Message: "m", Severity: "low"}, "missing required field: pattern"},
		{"missing message", CustomRule{ID: "r", Pattern: "x", Severity: "low"}, "missing required field: message"},
		{"missing severity", CustomRule{ID: "r", Pattern: "x", Message: "m"}, "missing required field: severity"},
		{"bad severity", CustomRule{ID: "r", Pattern: "x", Message: "m", Severity: "apocalyptic"}, "unrecognized severity"},
		{"bad pattern", CustomRule{ID: "r", Pattern: "(unclosed", Message: "m", Severity: "low"}, "pattern does not compile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CustomRules: []CustomRule{
				{ID: "good", Pattern: "ok", Message: "fine", Severity: "low"},
				tt.rule,
			}}
			_, err := Build(cfg)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, 1, verr.Index)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestBuild_RejectsBadOverrideSeverity(t *testing.T) {
	cfg := &Config{SeverityOverrides: map[string]string{RuleVarDecl: "whatever"}}
	_, err := Build(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized severity")
}

func TestBuild_RejectsDuplicateID(t *testing.T) {
	cfg := &Config{CustomRules: []CustomRule{
		{ID: RulePermissiveType, Pattern: "x", Message: "m", Severity: "low"},
	}}
	_, err := Build(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate rule id")
}
