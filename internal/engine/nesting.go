package engine

import (
	"strings"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

// Nested-control heuristic: a blunt indentation/density proxy for nesting
// depth. It deliberately over-reports; consolidation and severity
// filtering downstream absorb the noise.

const (
	nestingIndentThreshold = 16
	tabWidth               = 4
)

// countControlOpeners counts if/for/while/switch openers on one line.
func countControlOpeners(line string) int {
	n := 0
	for _, kw := range []string{"if", "for", "while", "switch"} {
		n += countKeywordCalls(line, kw)
	}
	return n
}

// countKeywordCalls counts occurrences of `<kw> (`-style openers with word
// boundaries on both sides of the keyword.
func countKeywordCalls(line, kw string) int {
	n := 0
	for i := 0; ; {
		j := strings.Index(line[i:], kw)
		if j < 0 {
			break
		}
		pos := i + j
		i = pos + len(kw)
		if pos > 0 && isWordByte(line[pos-1]) {
			continue
		}
		rest := strings.TrimLeft(line[pos+len(kw):], " \t")
		if strings.HasPrefix(rest, "(") {
			n++
		}
	}
	return n
}

func isWordByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// analyzeNesting applies both triggers to one line and returns zero, one,
// or two issues. Both triggers firing for the same block from different
// lines is accepted behavior.
func analyzeNesting(rule Rule, file, line string, lineIdx int) []ir.Issue {
	var out []ir.Issue

	openers := countControlOpeners(line)
	indent := indentColumns(line)
	trimmed := strings.TrimSpace(line)
	isComment := strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*")

	// (a) Two or more control openers crammed onto one physical line.
	if openers > 1 {
		out = append(out, nestingIssue(rule, file, lineIdx, indent+1, trimmed))
	}

	// (b) Deep indentation plus a control opener: proxy for nesting depth.
	// Arrow markers are excluded so formatted lambda bodies stay quiet.
	if indent >= nestingIndentThreshold && openers > 0 && !isComment && !strings.Contains(line, "=>") {
		out = append(out, nestingIssue(rule, file, lineIdx, indent+1, trimmed))
	}

	return out
}

func nestingIssue(rule Rule, file string, lineIdx, col int, trimmed string) ir.Issue {
	if len(trimmed) > 80 {
		trimmed = trimmed[:80]
	}
	return ir.Issue{
		RuleID:   rule.ID,
		File:     file,
		Line:     lineIdx + 1,
		Column:   col,
		Match:    trimmed,
		Message:  rule.ComposedMessage(),
		Severity: rule.Severity,
	}
}

// indentColumns measures leading whitespace in columns (tab = 4).
func indentColumns(line string) int {
	cols := 0
	for _, r := range line {
		switch r {
		case ' ':
			cols++
		case '\t':
			cols += tabWidth
		default:
			return cols
		}
	}
	return cols
}
