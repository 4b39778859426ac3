package ir

import (
	"strings"
	"time"
)

const Version = "1.0"

// Severity levels, from worst to least interesting.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// SeverityRank maps a severity to a sortable rank (unknown → low).
func SeverityRank(sev string) int {
	switch strings.ToLower(strings.TrimSpace(sev)) {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// ValidSeverity reports whether sev is one of the four known levels.
func ValidSeverity(sev string) bool {
	switch strings.ToLower(strings.TrimSpace(sev)) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// SourceFile is one input to the engine: a path and its full content.
// The engine never touches the filesystem; discovery fills these in.
type SourceFile struct {
	Path    string `json:"path"`
	Content string `json:"-"`
}

// Issue is a single accepted match in one file.
type Issue struct {
	RuleID   string `json:"rule_id"`
	File     string `json:"file"`
	Line     int    `json:"line"`   // 1-based
	Column   int    `json:"column"` // 1-based
	Match    string `json:"match"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ConsolidatedIssue groups identical findings across occurrences.
// Locations holds "line:column" strings in discovery order.
type ConsolidatedIssue struct {
	RuleID    string   `json:"rule_id"`
	File      string   `json:"file"`
	Match     string   `json:"match"`
	Message   string   `json:"message"`
	Severity  string   `json:"severity"`
	Locations []string `json:"locations"`
}

// ScoreBreakdown is the weighted slop score across the three axes.
type ScoreBreakdown struct {
	Utility int `json:"utility"` // noise, boilerplate
	Quality int `json:"quality"` // hallucinations, unverified assumptions
	Style   int `json:"style"`   // taste, overconfidence
	Total   int `json:"total"`
}

// Run is the persisted/reported result of one analysis.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Source    string    `json:"source,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`
	Files     int       `json:"files"`
	Quiet     bool      `json:"quiet,omitempty"`

	Issues       []Issue             `json:"issues,omitempty"`
	Consolidated []ConsolidatedIssue `json:"consolidated,omitempty"`
	Score        ScoreBreakdown      `json:"score"`
}
