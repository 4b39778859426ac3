package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	scoreBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	severityStyles = map[string]lipgloss.Style{
		ir.SeverityCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		ir.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		ir.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		ir.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

// RenderConsole formats a run as a terminal summary: score box, severity
// rollup, and the consolidated findings grouped by file.
func RenderConsole(run *ir.Run) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("karpeslop %s", run.ID)))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("%d files scanned, %d issues, %d unique findings",
		run.Files, len(run.Issues), len(run.Consolidated))))
	sb.WriteString("\n\n")

	score := fmt.Sprintf("slop score  total %d\nutility %d · quality %d · style %d",
		run.Score.Total, run.Score.Utility, run.Score.Quality, run.Score.Style)
	sb.WriteString(scoreBox.Render(score))
	sb.WriteString("\n\n")

	if len(run.Consolidated) == 0 {
		sb.WriteString("Clean: nothing matched.\n")
		return sb.String()
	}

	// Group by file, preserving discovery order.
	byFile := map[string][]ir.ConsolidatedIssue{}
	var order []string
	for _, c := range run.Consolidated {
		if _, seen := byFile[c.File]; !seen {
			order = append(order, c.File)
		}
		byFile[c.File] = append(byFile[c.File], c)
	}

	for _, file := range order {
		sb.WriteString(titleStyle.Render(file))
		sb.WriteString("\n")
		items := byFile[file]
		sort.SliceStable(items, func(i, j int) bool {
			return ir.SeverityRank(items[i].Severity) > ir.SeverityRank(items[j].Severity)
		})
		for _, c := range items {
			sev, ok := severityStyles[c.Severity]
			if !ok {
				sev = dimStyle
			}
			sb.WriteString(fmt.Sprintf("  %s %s  %s\n",
				sev.Render(padSeverity(c.Severity)), c.RuleID, c.Message))
			sb.WriteString(dimStyle.Render(fmt.Sprintf("           at %s", strings.Join(c.Locations, ", "))))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func padSeverity(sev string) string {
	const width = 8
	if lipgloss.Width(sev) >= width {
		return sev
	}
	return sev + strings.Repeat(" ", width-lipgloss.Width(sev))
}
