package cleaner

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Pattern is a structural rewrite applied to the whole text.
// Patterns run in ascending Priority; equal priorities keep declaration order.
type Pattern struct {
	// Name identifies the pattern in debug logs.
	Name string

	// Priority orders patterns. Lower values run first.
	Priority int

	// Expr is the expression to rewrite.
	Expr *regexp.Regexp

	// Replace is the template used when Rewrite is nil. It follows
	// regexp.Expand syntax (${1}).
	Replace string

	// Rewrite computes the replacement from the submatches when set.
	// groups[0] is the whole match.
	Rewrite func(groups []string) string
}

// Apply rewrites every match of the pattern in s.
func (p Pattern) Apply(s string) string {
	if p.Rewrite == nil {
		return p.Expr.ReplaceAllString(s, p.Replace)
	}
	return replaceSubmatchFunc(p.Expr, s, p.Rewrite)
}

// replaceSubmatchFunc is ReplaceAllStringFunc with access to submatches.
func replaceSubmatchFunc(re *regexp.Regexp, s string, fn func([]string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range matches {
		b.WriteString(s[last:loc[0]])
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(fn(groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// sortPatterns orders patterns by ascending priority, keeping declaration order on ties.
func sortPatterns(patterns []Pattern) {
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Priority < patterns[j].Priority
	})
}

// maxDroppedDecimal is the largest two-digit value read as a handicap with a
// dropped decimal point ("-22" is -2.2, "-78" is left alone).
const maxDroppedDecimal = 50

// DefaultPatterns returns the structural patterns for Golfzon scorecards.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Name:     "pipe-runs",
			Priority: 10,
			Expr:     regexp.MustCompile(`[|_]{2,}`),
			Replace:  " ",
		},
		{
			Name:     "edge-pipes",
			Priority: 10,
			Expr:     regexp.MustCompile(`(?m)^[|_ ]+|[|_ ]+$`),
			Replace:  "",
		},
		{
			// "[el Beachy" -> "Beachy": the player icon is read as a bracket
			// and up to two letters glued in front of the name.
			Name:     "icon-prefix",
			Priority: 20,
			Expr:     regexp.MustCompile(`\[[A-Za-z]{0,2} ?([A-Z])`),
			Replace:  "${1}",
		},
		{
			// "Boiciak/Tcdubs21" -> "Boiciak Tcdubs21"
			Name:     "slash-merge",
			Priority: 20,
			Expr:     regexp.MustCompile(`([A-Za-z0-9])/([A-Za-z])`),
			Replace:  "${1} ${2}",
		},
		{
			// "Tcdubs21" -> "Cdubs21": the row border is read as a capital T
			// in front of a lower-case name that cannot follow a T.
			Name:     "border-prefix",
			Priority: 30,
			Expr:     regexp.MustCompile(`\bT([bcdfgjkmnpqvxz])([a-z0-9]+)`),
			Rewrite: func(g []string) string {
				return strings.ToUpper(g[1]) + g[2]
			},
		},
		{
			Name:     "border-prefix-tl",
			Priority: 30,
			Expr:     regexp.MustCompile(`\bTl([A-Z][a-z])`),
			Replace:  "${1}",
		},
		{
			// "43+13)" -> "43(+13)"
			Name:     "split-delta",
			Priority: 40,
			Expr:     regexp.MustCompile(`\b(\d{2,3})([+-]\d{1,2})\)`),
			Replace:  "${1}(${2})",
		},
		{
			Name:     "double-open-paren",
			Priority: 40,
			Expr:     regexp.MustCompile(`\(\(+`),
			Replace:  "(",
		},
		{
			Name:     "double-close-paren",
			Priority: 40,
			Expr:     regexp.MustCompile(`\)\)+`),
			Replace:  ")",
		},
		{
			// "4347)" -> "43(+47)": the opening parenthesis and sign were lost.
			Name:     "merged-delta",
			Priority: 40,
			Expr:     regexp.MustCompile(`\b(\d{2})(\d{2})\)`),
			Replace:  "${1}(+${2})",
		},
		{
			// "-22" -> "-2.2" unless it sits inside a to-par parenthesis.
			Name:     "handicap-decimal",
			Priority: 50,
			Expr:     regexp.MustCompile(`(?m)(^|[^(\d.+\-])([+-])(\d)(\d)($|[^.\d)])`),
			Rewrite: func(g []string) string {
				v, err := strconv.Atoi(g[3] + g[4])
				if err != nil || v > maxDroppedDecimal {
					return g[0]
				}
				return g[1] + g[2] + g[3] + "." + g[4] + g[5]
			},
		},
		{
			// "4I(+5)" -> "41(+5)"
			Name:     "digit-capital-i",
			Priority: 60,
			Expr:     regexp.MustCompile(`(\d)I(\(|\b)`),
			Replace:  "${1}1${2}",
		},
		{
			// "16l1" -> "16.1"
			Name:     "digit-lower-l",
			Priority: 60,
			Expr:     regexp.MustCompile(`(\d)(?:l|iL)(\d)`),
			Replace:  "${1}.${2}",
		},
		{
			// "+iL.4" -> "+11.4"
			Name:     "signed-il",
			Priority: 60,
			Expr:     regexp.MustCompile(`([+-])[iI][lL]\.`),
			Replace:  "${1}11.",
		},
		{
			// "B42)" -> "42"
			Name:     "stray-b",
			Priority: 60,
			Expr:     regexp.MustCompile(`\bB(\d{2})\)`),
			Replace:  "${1}",
		},
	}
}
