package engine

import (
	"regexp"
	"strings"
)

// Best-effort scope detection without a parser. Both helpers read the raw
// line slice and trade recall for never building an AST; deeply nested
// closures and multi-statement chains can misclassify.

const (
	funcScanbackLines   = 20
	chainLookaheadLines = 5
	localWindowLines    = 2
)

var funcAnchorRe = regexp.MustCompile(`\bfunction\b|=>|\buse(Effect|Callback|Memo|State)\s*\(`)

// callIsHandled reports whether the call on lines[idx] appears to sit in a
// scope that handles failures: a try/catch somewhere in the enclosing
// function, or a .catch() chained onto the call itself.
func callIsHandled(lines []string, idx int) bool {
	start := findFunctionStart(lines, idx)
	if start >= 0 {
		end := findScopeEnd(lines, start)
		for i := start; i <= end; i++ {
			if hasGuardToken(lines[i]) {
				return true
			}
		}
	} else {
		// No boundable scope: fall back to a small local window.
		lo := max(0, idx-localWindowLines)
		hi := min(len(lines)-1, idx+localWindowLines)
		for i := lo; i <= hi; i++ {
			if hasGuardToken(lines[i]) {
				return true
			}
		}
	}

	// A chained expression may pick up its .catch() a few lines later.
	if isChainedExpression(lines[idx]) {
		for j := idx + 1; j <= idx+chainLookaheadLines && j < len(lines); j++ {
			if strings.Contains(lines[j], ".catch(") {
				return true
			}
			if statementTerminates(lines[j]) {
				break
			}
		}
	}
	return false
}

// findFunctionStart scans backward for a probable function opener: a
// function keyword, arrow, or hook declaration that also opens a scope.
func findFunctionStart(lines []string, idx int) int {
	for i := idx; i >= 0 && idx-i <= funcScanbackLines; i-- {
		l := lines[i]
		if funcAnchorRe.MatchString(l) && (strings.Contains(l, "{") || strings.Contains(l, "=>")) {
			return i
		}
	}
	return -1
}

// findScopeEnd tracks brace balance forward from start until depth returns
// to zero after first going positive. Falls back to the last line when the
// scope never closes (truncated or unbalanced input).
func findScopeEnd(lines []string, start int) int {
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		if depth > 0 {
			opened = true
		}
		if opened && depth <= 0 {
			return i
		}
	}
	return len(lines) - 1
}

func hasGuardToken(line string) bool {
	return strings.Contains(line, "try {") ||
		strings.Contains(line, "try{") ||
		strings.Contains(line, "catch")
}

// isChainedExpression: the call continues past this line, either via an
// explicit .then( or because the statement has no terminator yet.
func isChainedExpression(line string) bool {
	if strings.Contains(line, ".then(") {
		return true
	}
	t := strings.TrimSpace(line)
	return t != "" && !strings.HasSuffix(t, ";")
}

// statementTerminates: a semicolon line that is not a continuation.
func statementTerminates(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasSuffix(t, ";") && !strings.HasSuffix(t, ",;")
}

// inGuardedScope scans backward from lines[idx] tracking brace depth and
// returns true when an enclosing block was opened by a catch, or when depth
// closes back to zero past a catch opener. Used to keep logging inside
// error handlers off the report.
func inGuardedScope(lines []string, idx int) bool {
	depth := 0
	sawCatch := false
	for i := idx - 1; i >= 0; i-- {
		l := lines[i]
		if strings.Contains(l, "catch") && strings.Contains(l, "{") {
			sawCatch = true
		}
		depth += strings.Count(l, "}") - strings.Count(l, "{")
		if depth < 0 {
			// This line opened the block enclosing the target.
			if strings.Contains(l, "catch") {
				return true
			}
			depth = 0
			continue
		}
		if depth == 0 && sawCatch {
			return true
		}
	}
	return false
}
