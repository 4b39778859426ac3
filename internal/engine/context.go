package engine

import (
	"path"
	"strings"
)

// fileContext carries everything the suppression chain needs to judge a
// raw match: the file's lines plus its path-derived categorization.
type fileContext struct {
	path   string
	lines  []string
	isTest bool
	isMock bool
	isDecl bool
	quiet  bool
}

func newFileContext(p string, lines []string, quiet bool) fileContext {
	return fileContext{
		path:   p,
		lines:  lines,
		isTest: isTestPath(p),
		isMock: isMockPath(p),
		isDecl: isDeclarationPath(p),
		quiet:  quiet,
	}
}

// permissiveTypeRules are the rules subject to the declaration-file
// exemption and the inline acknowledgment escape.
var permissiveTypeRules = map[string]bool{
	RulePermissiveType: true,
	RuleUnsafeCast:     true,
}

var ackMarkers = []string{"eslint-disable", "@ts-ignore", "@ts-expect-error"}

// accept runs the suppression chain in precedence order, short-circuiting
// on the first rejection. A match that survives becomes an Issue.
func accept(rule Rule, m rawMatch, fc fileContext) bool {
	// 1. File-category exemptions.
	if rule.SkipInTests && fc.isTest {
		return false
	}
	if rule.SkipInMocks && fc.isMock {
		return false
	}

	// 2. Declaration files carry no executable code.
	if permissiveTypeRules[rule.ID] && fc.isDecl {
		return false
	}

	// 3. Explicit acknowledgment on this or the previous line.
	if permissiveTypeRules[rule.ID] && hasAcknowledgment(fc.lines, m.lineIdx) {
		return false
	}

	// 4. Pattern-specific legitimate-use carve-outs.
	if legitimateUse(rule.ID, fc.lines[m.lineIdx]) {
		return false
	}

	// 5. Scope heuristics.
	if rule.ID == RuleMissingErrorHandling && callIsHandled(fc.lines, m.lineIdx) {
		return false
	}
	if rule.ID == RuleProductionLog && inGuardedScope(fc.lines, m.lineIdx) {
		return false
	}

	// 6. Quiet mode narrows test files to the logging rule only.
	if fc.quiet && fc.isTest && rule.ID != RuleProductionLog {
		return false
	}

	return true
}

// hasAcknowledgment checks the match line and the line directly above for
// an inline opt-in marker.
func hasAcknowledgment(lines []string, idx int) bool {
	for _, marker := range ackMarkers {
		if strings.Contains(lines[idx], marker) {
			return true
		}
		if idx > 0 && strings.Contains(lines[idx-1], marker) {
			return true
		}
	}
	return false
}

// legitimateUse holds the narrow per-rule carve-outs. These are textual
// containment checks, not semantic ones; missing a slop line here is an
// accepted trade-off.
func legitimateUse(ruleID, line string) bool {
	switch ruleID {
	case RulePermissiveType, RuleUnsafeCast:
		// Test-framework matches-any helper.
		if strings.Contains(line, "expect.any(") {
			return true
		}
		// Spread-with-cast idiom: ...(props as any).
		if strings.Contains(line, "...(") && strings.Contains(line, "as any)") {
			return true
		}
		// JSON parsing and response-shape contexts are untyped by nature.
		if strings.Contains(line, "JSON.parse") || strings.Contains(line, ".json()") {
			return true
		}
		// Dynamic index access through a cast.
		if strings.Contains(line, "as any)[") {
			return true
		}
		// Already the safe two-step form.
		if strings.Contains(line, "as unknown as") {
			return true
		}
	}
	return false
}

// Path categorization by convention. Comparisons are done on a
// slash-normalized, lowercased path.

func isTestPath(p string) bool {
	lp := normPath(p)
	if strings.Contains(lp, ".test.") || strings.Contains(lp, ".spec.") {
		return true
	}
	return hasSegment(lp, "__tests__", "test", "tests")
}

func isMockPath(p string) bool {
	lp := normPath(p)
	if strings.Contains(lp, ".mock.") {
		return true
	}
	return hasSegment(lp, "__mocks__", "mocks", "mock")
}

func isDeclarationPath(p string) bool {
	return strings.HasSuffix(normPath(p), ".d.ts")
}

func normPath(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
}

func hasSegment(lp string, segs ...string) bool {
	for _, part := range strings.Split(path.Dir(lp), "/") {
		for _, s := range segs {
			if part == s {
				return true
			}
		}
	}
	return false
}
