package rules

import (
	"fmt"
	"sort"
	"strings"
)

// OutParam is the parameter name used for a hidden by-address return value.
const OutParam = "pOut"

// Rule maps a context chain to a pointer annotation. Match is ordered least
// specific first; its last element is applied to the innermost context.
type Rule struct {
	Match   []Matcher
	Pointer string
}

func (r Rule) String() string {
	parts := make([]string, len(r.Match))
	for i, m := range r.Match {
		parts[i] = m.String()
	}
	return fmt.Sprintf("[%s] -> %q", strings.Join(parts, ", "), r.Pointer)
}

// Matches walks the rule outward from ctx. Ancestors beyond the rule's
// length are unconstrained.
func (r Rule) Matches(ctx *Context) bool {
	for i := len(r.Match) - 1; i >= 0; i-- {
		if ctx == nil || !r.Match[i].Match(ctx.name) {
			return false
		}
		ctx = ctx.parent
	}
	return true
}

// Group holds the rules for base types accepted by Type.
type Group struct {
	Type  Matcher
	Rules []Rule
}

// Table groups rules by indirection depth. Groups and rules are tried in
// declared order; the first rule of an accepting group that matches wins.
type Table map[int][]Group

// Depths returns the table's depths in ascending order.
func (t Table) Depths() []int {
	depths := make([]int, 0, len(t))
	for d := range t {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	return depths
}

// Session resolves pointer annotations against a Table for one run and
// records which rules were used.
type Session struct {
	table Table
	used  map[int][][]bool

	misses int
}

func NewSession(t Table) *Session {
	used := make(map[int][][]bool, len(t))
	for depth, groups := range t {
		u := make([][]bool, len(groups))
		for i, g := range groups {
			u[i] = make([]bool, len(g.Rules))
		}
		used[depth] = u
	}
	return &Session{table: t, used: used}
}

// Fallback is the annotation used when no rule covers an occurrence.
func Fallback(depth int) string {
	return strings.Repeat("[*c]", depth)
}

// Pointers returns the annotation for depth pointer levels on base in ctx.
// When nothing matches it returns Fallback(depth) and false.
func (s *Session) Pointers(depth int, base string, ctx *Context) (string, bool) {
	if depth == 1 && alwaysSingle(ctx) {
		return "*", true
	}

	for gi, g := range s.table[depth] {
		if !g.Type.Match(base) {
			continue
		}
		for ri, r := range g.Rules {
			if r.Matches(ctx) {
				s.used[depth][gi][ri] = true
				return r.Pointer, true
			}
		}
		// A group with no matching rule falls through to the next
		// group that accepts base.
	}

	s.misses++
	return Fallback(depth), false
}

func alwaysSingle(ctx *Context) bool {
	switch ctx.kind {
	case KindTemplate:
		return true
	case KindParam:
		if ctx.name == "self" && ctx.parent.owner != "" {
			return true
		}
		return ctx.name == OutParam || ctx.udtPtr
	}
	return false
}

// Misses returns how many lookups fell back.
func (s *Session) Misses() int { return s.misses }

// Unused lists every rule that never matched, formatted as
// "[depth][type] rule".
func (s *Session) Unused() []string {
	var out []string
	for _, depth := range s.table.Depths() {
		for gi, g := range s.table[depth] {
			for ri, r := range g.Rules {
				if !s.used[depth][gi][ri] {
					out = append(out, fmt.Sprintf("[%d][%s] %s", depth, g.Type, r))
				}
			}
		}
	}
	return out
}
