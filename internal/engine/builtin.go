package engine

import (
	"regexp"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

// Builtin rule ids. The score axis is derived from substrings of these ids
// (see score.go), so renaming one is a behavior change.
const (
	RulePermissiveType       = "permissive-type-usage"
	RuleUnsafeCast           = "unsafe-any-cast"
	RuleHallucinatedImport   = "hallucinated-framework-import"
	RuleHallucinatedHook     = "hallucinated-hook-import"
	RulePlaceholderImpl      = "placeholder-implementation"
	RulePlaceholderText      = "placeholder-lorem-text"
	RuleAssumptionComment    = "assumption-comment"
	RuleMissingErrorHandling = "missing-error-handling"
	RuleEmptyCatch           = "empty-catch-block"
	RuleProductionLog        = "production-console-log"
	RuleTSSuppression        = "ts-suppression-directive"
	RuleNonNullChain         = "non-null-assertion-chain"
	RuleVarDecl              = "var-declaration"
	RuleRedundantComment     = "redundant-comment"
	RuleBoilerplateComment   = "boilerplate-comment"
	RuleDividerComment       = "divider-comment-noise"
	RuleCommentedOutCode     = "commented-out-code"
	RuleNestedControl        = "complex-nested-control"
)

var builtinRules = []Rule{
	{
		ID:          RulePermissiveType,
		Pattern:     regexp.MustCompile(`:\s*any\b`),
		Message:     "Avoid the 'any' escape hatch",
		Severity:    ir.SeverityHigh,
		Description: "an untyped value disables checking for everything it touches",
		Fix:         "type the value, or use 'unknown' and narrow it",
		SkipInTests: true,
		SkipInMocks: true,
	},
	{
		ID:          RuleUnsafeCast,
		Pattern:     regexp.MustCompile(`\bas\s+any\b`),
		Message:     "Unsafe 'as any' cast",
		Severity:    ir.SeverityHigh,
		Description: "casting to any silently discards the real type",
		Fix:         "cast through a concrete interface, or 'as unknown as T' with a guard",
		SkipInTests: true,
		SkipInMocks: true,
	},
	{
		ID:          RuleHallucinatedImport,
		Pattern:     regexp.MustCompile(`import\s*\{[^}]*\b(useRouter|useNavigate|usePathname|useSearchParams|useParams|redirect|Link)\b[^}]*\}\s*from\s*['"]react['"]`),
		Message:     "Navigation symbol imported from 'react'",
		Severity:    ir.SeverityCritical,
		Description: "react does not export router hooks; this import will not resolve",
		Fix:         "import from 'next/navigation' (app router) or 'next/router' (pages router)",
	},
	{
		ID:          RuleHallucinatedHook,
		Pattern:     regexp.MustCompile(`import\s*\{[^}]*\buse(State|Effect|Memo|Callback|Ref|Context|Reducer)\b[^}]*\}\s*from\s*['"]next/(router|navigation)['"]`),
		Message:     "React hook imported from a next/* package",
		Severity:    ir.SeverityCritical,
		Description: "next/router and next/navigation do not export React state hooks",
		Fix:         "import React hooks from 'react'",
	},
	{
		ID:          RulePlaceholderImpl,
		Pattern:     regexp.MustCompile(`(?i)(//|/\*)\s*(todo:?\s*implement|implement\s+(this|me)\b|your\s+(code|logic)\s+here|rest\s+of\s+(the\s+)?(code|logic|function)|\.\.\.\s*existing\s+code)`),
		Message:     "Placeholder left where an implementation belongs",
		Severity:    ir.SeverityHigh,
		Description: "generated scaffolding that was never filled in",
	},
	{
		ID:          RulePlaceholderText,
		Pattern:     regexp.MustCompile(`(?i)lorem\s+ipsum`),
		Message:     "Lorem-ipsum placeholder text",
		Severity:    ir.SeverityMedium,
		Description: "filler copy shipped to users",
	},
	{
		ID:          RuleAssumptionComment,
		Pattern:     regexp.MustCompile(`(?i)//\s*(assuming\b|assumes?\s|this\s+should\s+work|should\s+be\s+fine|probably\s+(works|fine)|might\s+need\s)`),
		Message:     "Unverified assumption in a comment",
		Severity:    ir.SeverityMedium,
		Description: "the author guessed instead of checking",
	},
	{
		ID:          RuleMissingErrorHandling,
		Pattern:     regexp.MustCompile(`\bfetch\s*\(|\baxios\.(get|post|put|patch|delete|request)\s*\(|\baxios\s*\(`),
		Message:     "Network call without visible error handling",
		Severity:    ir.SeverityMedium,
		Description: "no try/catch or .catch() found around this call",
		Fix:         "wrap the call in try/catch or chain a .catch() handler",
		SkipInTests: true,
	},
	{
		ID:          RuleEmptyCatch,
		Pattern:     regexp.MustCompile(`catch\s*(\([^)]*\))?\s*\{\s*\}`),
		Message:     "Empty catch block swallows errors",
		Severity:    ir.SeverityHigh,
		Description: "failures vanish without a trace",
		Fix:         "log, rethrow, or surface the error to the caller",
	},
	{
		ID:          RuleProductionLog,
		Pattern:     regexp.MustCompile(`console\.(log|debug|info)\s*\(`),
		Message:     "console logging in production code",
		Severity:    ir.SeverityLow,
		Description: "debug output left behind",
		Fix:         "remove it, or route through a real logger",
	},
	{
		ID:          RuleTSSuppression,
		Pattern:     regexp.MustCompile(`@ts-(ignore|nocheck)\b`),
		Message:     "Type error suppressed instead of fixed",
		Severity:    ir.SeverityMedium,
		Description: "@ts-ignore hides the compiler's complaint without addressing it",
		Fix:         "prefer @ts-expect-error with an explanation, or fix the type",
		SkipInTests: true,
	},
	{
		ID:          RuleNonNullChain,
		Pattern:     regexp.MustCompile(`[\w)\]]!\.`),
		Message:     "Non-null assertion on a chained access",
		Severity:    ir.SeverityMedium,
		Description: "'!.' asserts presence the type system could not prove",
		SkipInTests: true,
	},
	{
		ID:          RuleVarDecl,
		Pattern:     regexp.MustCompile(`\bvar\s+[A-Za-z_$]`),
		Message:     "'var' declaration",
		Severity:    ir.SeverityLow,
		Description: "function-scoped var in modern code suggests pasted output",
		Fix:         "use const or let",
	},
	{
		ID:          RuleRedundantComment,
		Pattern:     regexp.MustCompile(`(?i)//\s*(increment\s|decrement\s|loop\s+(over|through)\s|set\s+the\s+\w+|return\s+the\s+result|initialize\s+\w+|declare\s+\w+)`),
		Message:     "Comment restates the code",
		Severity:    ir.SeverityLow,
		Description: "narration adds no information the next line lacks",
	},
	{
		ID:          RuleBoilerplateComment,
		Pattern:     regexp.MustCompile(`(?i)//\s*(this\s+(function|method|component|file)\s|helper\s+function\s+to\s|function\s+to\s)`),
		Message:     "Boilerplate doc comment",
		Severity:    ir.SeverityLow,
		Description: "template commentary typical of generated code",
	},
	{
		ID:          RuleDividerComment,
		Pattern:     regexp.MustCompile(`//\s*[-=*#]{8,}`),
		Message:     "Decorative divider comment",
		Severity:    ir.SeverityLow,
		Description: "banner noise",
	},
	{
		ID:          RuleCommentedOutCode,
		Pattern:     regexp.MustCompile(`^\s*//\s*(const\s|let\s|var\s|function\s|return\s|import\s|export\s|if\s*\()`),
		Message:     "Commented-out code",
		Severity:    ir.SeverityLow,
		Description: "dead code kept as a comment",
		Fix:         "delete it; version control remembers",
	},
	{
		// Synthetic: issues come from the nesting pass, not the line scanner.
		ID:          RuleNestedControl,
		Message:     "Deeply nested or compound control flow",
		Severity:    ir.SeverityMedium,
		Description: "control-structure density suggests missing extraction",
		Fix:         "extract a function or use early returns",
	},
}
