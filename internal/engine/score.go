package engine

import (
	"strings"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

// Per-rule contribution to the slop score. Rules not listed here weigh
// defaultWeight. Custom rules always take the default.
var ruleWeights = map[string]int{
	RuleHallucinatedImport:   10,
	RuleHallucinatedHook:     10,
	RulePermissiveType:       5,
	RuleUnsafeCast:           5,
	RuleEmptyCatch:           5,
	RulePlaceholderImpl:      5,
	RuleMissingErrorHandling: 4,
	RuleTSSuppression:        4,
	RuleProductionLog:        2,
	RuleVarDecl:              1,
	RuleDividerComment:       1,
}

const defaultWeight = 3

var (
	qualityMarkers = []string{"hallucinat", "placeholder", "assum"}
	utilityMarkers = []string{"comment", "redundan", "boilerplate"}
)

// Score maps issues onto the three axes. Classification is by rule-id
// substring: hallucination/placeholder/assumption rules measure quality,
// comment/redundancy/boilerplate rules measure utility, everything else is
// style. Accumulation is commutative, so issue order never matters.
func Score(issues []ir.Issue) ir.ScoreBreakdown {
	var s ir.ScoreBreakdown
	for _, is := range issues {
		w, ok := ruleWeights[is.RuleID]
		if !ok {
			w = defaultWeight
		}
		switch classifyAxis(is.RuleID) {
		case axisQuality:
			s.Quality += w
		case axisUtility:
			s.Utility += w
		default:
			s.Style += w
		}
	}
	s.Total = s.Utility + s.Quality + s.Style
	return s
}

type axis int

const (
	axisStyle axis = iota
	axisQuality
	axisUtility
)

func classifyAxis(ruleID string) axis {
	id := strings.ToLower(ruleID)
	for _, m := range qualityMarkers {
		if strings.Contains(id, m) {
			return axisQuality
		}
	}
	for _, m := range utilityMarkers {
		if strings.Contains(id, m) {
			return axisUtility
		}
	}
	return axisStyle
}
