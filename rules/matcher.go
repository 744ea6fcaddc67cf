package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher tests a single name: a context name or a base type name.
type Matcher interface {
	Match(name string) bool
	String() string
}

// Exact matches one literal name.
type Exact string

func (e Exact) Match(name string) bool { return string(e) == name }
func (e Exact) String() string         { return fmt.Sprintf("%q", string(e)) }

type always struct{}

func (always) Match(string) bool { return true }
func (always) String() string    { return "Always()" }

// Always matches every name, including the empty name of anonymous contexts.
func Always() Matcher { return always{} }

type not struct{ m Matcher }

func (n not) Match(name string) bool { return !n.m.Match(name) }
func (n not) String() string         { return "Not(" + n.m.String() + ")" }

func Not(m Matcher) Matcher { return not{m} }

type contains string

func (c contains) Match(name string) bool { return strings.Contains(name, string(c)) }
func (c contains) String() string         { return fmt.Sprintf("Contains(%q)", string(c)) }

func Contains(s string) Matcher { return contains(s) }

type startsWith string

func (s startsWith) Match(name string) bool { return strings.HasPrefix(name, string(s)) }
func (s startsWith) String() string         { return fmt.Sprintf("StartsWith(%q)", string(s)) }

func StartsWith(s string) Matcher { return startsWith(s) }

type endsWith string

func (e endsWith) Match(name string) bool { return strings.HasSuffix(name, string(e)) }
func (e endsWith) String() string         { return fmt.Sprintf("EndsWith(%q)", string(e)) }

func EndsWith(s string) Matcher { return endsWith(s) }

type pattern struct {
	re  *regexp.Regexp
	raw string
}

func (p pattern) Match(name string) bool { return p.re.MatchString(name) }
func (p pattern) String() string         { return fmt.Sprintf("Regex(%q)", p.raw) }

// Regex matches names the expression covers entirely. It panics if expr
// does not compile.
func Regex(expr string) Matcher {
	return pattern{re: regexp.MustCompile(`\A(?:` + expr + `)\z`), raw: expr}
}

// Path builds a matcher chain from literal names and Matchers, least
// specific first.
func Path(parts ...any) []Matcher {
	ms := make([]Matcher, len(parts))
	for i, p := range parts {
		switch v := p.(type) {
		case string:
			ms[i] = Exact(v)
		case Matcher:
			ms[i] = v
		default:
			panic(fmt.Sprintf("rules: unsupported matcher %T", p))
		}
	}
	return ms
}
