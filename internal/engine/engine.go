// Package engine is the detection core: a declarative rule registry, a
// per-line matcher, context-aware suppression, text-heuristic scope
// analysis, consolidation, and weighted scoring. It is deliberately
// line/regex-based rather than AST-based, and performs no I/O: callers
// hand it (path, content) pairs and get findings and a score back.
package engine

import (
	"strings"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

// Result is everything one detection run produces.
type Result struct {
	Issues       []ir.Issue
	Consolidated []ir.ConsolidatedIssue
	Score        ir.ScoreBreakdown
}

// Detect runs the full pipeline over the given files. cfg may be nil
// (builtins only). Per-file results are independent; files are processed
// in the order given so output stays deterministic.
func Detect(files []ir.SourceFile, cfg *Config, quiet bool) (Result, error) {
	rs, err := Build(cfg)
	if err != nil {
		return Result{}, err
	}
	var all []ir.Issue
	for _, f := range files {
		all = append(all, ScanFile(f, rs, quiet)...)
	}
	return Result{
		Issues:       all,
		Consolidated: Consolidate(all),
		Score:        Score(all),
	}, nil
}

// ScanFile scans one file: every rule against every line, each candidate
// through the suppression chain, then the nesting pass appended. Pure with
// respect to the rule set; returns a fresh issue slice.
func ScanFile(f ir.SourceFile, rs *RuleSet, quiet bool) []ir.Issue {
	lines := strings.Split(f.Content, "\n")
	fc := newFileContext(f.Path, lines, quiet)

	var out []ir.Issue
	for i, line := range lines {
		for _, m := range scanLine(line, rs.rules, i) {
			rule, _ := rs.Get(m.ruleID)
			if !accept(rule, m, fc) {
				continue
			}
			out = append(out, ir.Issue{
				RuleID:   rule.ID,
				File:     f.Path,
				Line:     m.lineIdx + 1,
				Column:   m.col,
				Match:    m.text,
				Message:  rule.ComposedMessage(),
				Severity: rule.Severity,
			})
		}
	}

	// Independent nesting pass. Quiet mode silences it in test files like
	// every other non-logging rule.
	if nestRule, ok := rs.Get(RuleNestedControl); ok && !(quiet && fc.isTest) {
		for i, line := range lines {
			out = append(out, analyzeNesting(nestRule, f.Path, line, i)...)
		}
	}
	return out
}
