package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

// Rule is one detection pattern plus its metadata. Pattern is nil for
// synthetic rules whose issues come from a dedicated pass instead of the
// line scanner (currently only complex-nested-control).
type Rule struct {
	ID          string
	Pattern     *regexp.Regexp
	Message     string
	Severity    string
	Description string
	Fix         string
	LearnMore   string
	SkipInTests bool
	SkipInMocks bool
}

// ComposedMessage is what ends up on the Issue: "<message> (<description>)".
func (r Rule) ComposedMessage() string {
	if r.Description == "" {
		return r.Message
	}
	return r.Message + " (" + r.Description + ")"
}

// CustomRule is a user-supplied rule before compilation. ID, Pattern,
// Message and Severity are mandatory; the rest is optional.
type CustomRule struct {
	ID          string `yaml:"id" json:"id"`
	Pattern     string `yaml:"pattern" json:"pattern"`
	Message     string `yaml:"message" json:"message"`
	Severity    string `yaml:"severity" json:"severity"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Fix         string `yaml:"fix,omitempty" json:"fix,omitempty"`
	LearnMore   string `yaml:"learn_more,omitempty" json:"learn_more,omitempty"`
}

// Config is the validated detection configuration handed to Build.
// IgnorePaths and Strict are consumed by the collaborators (discovery, CLI),
// not by the engine itself.
type Config struct {
	CustomRules       []CustomRule      `yaml:"rules,omitempty"`
	SeverityOverrides map[string]string `yaml:"severity_overrides,omitempty"`
	IgnorePaths       []string          `yaml:"ignore,omitempty"`
	Strict            bool              `yaml:"strict,omitempty"`
}

// ValidationError describes the first config violation found. The whole
// configuration is rejected; nothing is partially applied.
type ValidationError struct {
	Index  int    // index into the custom rule list, -1 for overrides
	RuleID string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("custom rule %d (id=%q): %s", e.Index, e.RuleID, e.Reason)
	}
	return fmt.Sprintf("severity override %q: %s", e.RuleID, e.Reason)
}

// RuleSet is the immutable, ordered set of active rules for one run.
type RuleSet struct {
	rules []Rule
	byID  map[string]int
}

// Rules returns the rules in registry order (builtins first, then custom
// rules in declaration order).
func (rs *RuleSet) Rules() []Rule { return rs.rules }

// Get looks a rule up by id.
func (rs *RuleSet) Get(id string) (Rule, bool) {
	idx, ok := rs.byID[id]
	if !ok {
		return Rule{}, false
	}
	return rs.rules[idx], true
}

// Len reports the number of active rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Build assembles the rule set: builtins, then validated custom rules, then
// severity overrides. Any invalid custom rule rejects the whole batch.
// Override ids that match no rule are ignored so configs can target rules
// shipped in a later version.
func Build(cfg *Config) (*RuleSet, error) {
	rs := &RuleSet{
		rules: make([]Rule, len(builtinRules)),
		byID:  make(map[string]int, len(builtinRules)),
	}
	copy(rs.rules, builtinRules)
	for i, r := range rs.rules {
		rs.byID[r.ID] = i
	}

	if cfg != nil {
		for i, cr := range cfg.CustomRules {
			r, err := compileCustom(i, cr)
			if err != nil {
				return nil, err
			}
			if _, dup := rs.byID[r.ID]; dup {
				return nil, &ValidationError{Index: i, RuleID: cr.ID, Reason: "duplicate rule id"}
			}
			rs.byID[r.ID] = len(rs.rules)
			rs.rules = append(rs.rules, r)
		}
		for id, sev := range cfg.SeverityOverrides {
			if !ir.ValidSeverity(sev) {
				return nil, &ValidationError{Index: -1, RuleID: id, Reason: fmt.Sprintf("unrecognized severity %q", sev)}
			}
			if idx, ok := rs.byID[id]; ok {
				rs.rules[idx].Severity = strings.ToLower(strings.TrimSpace(sev))
			}
		}
	}
	return rs, nil
}

func compileCustom(index int, cr CustomRule) (Rule, error) {
	if strings.TrimSpace(cr.ID) == "" {
		return Rule{}, &ValidationError{Index: index, RuleID: cr.ID, Reason: "missing required field: id"}
	}
	if cr.Pattern == "" {
		return Rule{}, &ValidationError{Index: index, RuleID: cr.ID, Reason: "missing required field: pattern"}
	}
	if cr.Message == "" {
		return Rule{}, &ValidationError{Index: index, RuleID: cr.ID, Reason: "missing required field: message"}
	}
	if cr.Severity == "" {
		return Rule{}, &ValidationError{Index: index, RuleID: cr.ID, Reason: "missing required field: severity"}
	}
	if !ir.ValidSeverity(cr.Severity) {
		return Rule{}, &ValidationError{Index: index, RuleID: cr.ID, Reason: fmt.Sprintf("unrecognized severity %q", cr.Severity)}
	}
	re, err := regexp.Compile(cr.Pattern)
	if err != nil {
		return Rule{}, &ValidationError{Index: index, RuleID: cr.ID, Reason: fmt.Sprintf("pattern does not compile: %v", err)}
	}
	return Rule{
		ID:          strings.TrimSpace(cr.ID),
		Pattern:     re,
		Message:     cr.Message,
		Severity:    strings.ToLower(strings.TrimSpace(cr.Severity)),
		Description: cr.Description,
		Fix:         cr.Fix,
		LearnMore:   cr.LearnMore,
	}, nil
}
