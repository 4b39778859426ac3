package engine

// rawMatch is a candidate hit before the context filter has seen it.
// It never leaves the engine.
type rawMatch struct {
	ruleID  string
	lineIdx int // 0-based index into the file's line slice
	col     int // 1-based column of the match start
	text    string
}

// scanLine runs every pattern-bearing rule against one line. Rules are
// applied in registry order; matches within a rule are left to right.
// regexp.FindAllStringIndex carries no state between calls, so one line's
// iteration can never leak into the next.
func scanLine(line string, rules []Rule, lineIdx int) []rawMatch {
	var out []rawMatch
	for _, r := range rules {
		if r.Pattern == nil {
			continue
		}
		for _, loc := range r.Pattern.FindAllStringIndex(line, -1) {
			out = append(out, rawMatch{
				ruleID:  r.ID,
				lineIdx: lineIdx,
				col:     loc[0] + 1,
				text:    line[loc[0]:loc[1]],
			})
		}
	}
	return out
}
