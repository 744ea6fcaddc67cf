package parser

import "strings"

// DeclKind distinguishes the three shapes a declarator can take.
type DeclKind int

const (
	DeclNamed DeclKind = iota
	DeclFuncPtr
	DeclUnion
)

// Decl is a parsed C declarator such as "const char* const[]" or
// "int(*)(ImGuiInputTextCallbackData* data)".
type Decl struct {
	Kind DeclKind

	// TrailingConst records a dropped top-level "const" qualifier.
	TrailingConst bool

	// Unbounded counts empty bracket groups. Dims holds fixed bracket
	// lengths left to right, unevaluated.
	Unbounded int
	Dims      []string

	// ArrayConst is set for "T const[N]".
	ArrayConst bool

	// Const is a leading pointee qualifier, Pointers the number of
	// trailing '*', and Base whatever remains.
	Const    bool
	Pointers int
	Base     string

	// Return and Params describe a function pointer; Members the fields of
	// an inline union.
	Return  *Decl
	Params  []Member
	Members []Member
}

// Member is a named declarator inside a function pointer parameter list or
// an inline aggregate.
type Member struct {
	Name     string
	Type     string
	Decl     *Decl
	Variadic bool
}

// ParseDecl parses one raw declarator. It never fails: text it does not
// understand ends up in Base.
func ParseDecl(text string) *Decl {
	d := &Decl{}
	t := strings.TrimSpace(text)

	if s, ok := cutConst(t); ok {
		t = s
		d.TrailingConst = true
	}

	for strings.HasSuffix(t, "]") {
		start := strings.LastIndex(t, "[")
		if start < 0 {
			break
		}
		length := strings.TrimSpace(t[start+1 : len(t)-1])
		t = strings.TrimSpace(t[:start])
		if length == "" {
			d.Unbounded++
			continue
		}
		d.Dims = append([]string{length}, d.Dims...)
	}

	if s, ok := cutConst(t); ok {
		t = s
		d.ArrayConst = true
	}

	switch {
	case strings.HasPrefix(t, "union"):
		d.Kind = DeclUnion
		d.Members = parseUnion(t)
		return d

	case strings.Contains(t, "(*)"):
		d.Kind = DeclFuncPtr
		idx := strings.Index(t, "(*)")
		d.Return = ParseDecl(t[:idx])
		d.Params = parseFuncParams(t[idx+len("(*)"):])
		return d
	}

	if strings.HasPrefix(t, "const ") {
		d.Const = true
		t = strings.TrimSpace(t[len("const "):])
	}

	for strings.HasSuffix(t, "*") {
		t = strings.TrimSpace(t[:len(t)-1])
		d.Pointers++
	}
	d.Base = t

	return d
}

// cutConst removes a trailing "const" token.
func cutConst(t string) (string, bool) {
	if !strings.HasSuffix(t, "const") {
		return t, false
	}
	rest := t[:len(t)-len("const")]
	if rest != "" && !strings.HasSuffix(rest, " ") && !strings.HasSuffix(rest, "*") {
		return t, false
	}
	return strings.TrimSpace(rest), true
}

func parseUnion(t string) []Member {
	open := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if open < 0 || end < open {
		return nil
	}

	var members []Member
	for _, m := range strings.Split(t[open+1:end], ";") {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		members = append(members, parseMember(m, false))
	}
	return members
}

func parseFuncParams(t string) []Member {
	t = strings.TrimSpace(t)
	t = strings.TrimPrefix(t, "(")
	t = strings.TrimSuffix(t, ")")
	t = strings.TrimSpace(t)
	if t == "" || t == "void" {
		return nil
	}

	var params []Member
	for _, p := range strings.Split(t, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		params = append(params, parseMember(p, true))
	}
	return params
}

// parseMember splits "type name" at the last space. For parameters, pointer
// sigils written against the name ("char **out") move back to the type.
func parseMember(m string, foldPointers bool) Member {
	if m == "..." {
		return Member{Name: "...", Type: "...", Variadic: true}
	}

	var name, typ string
	idx := strings.LastIndex(m, " ")
	switch {
	case idx < 0:
		typ = m
	case strings.HasSuffix(m, "*"):
		typ = m
	default:
		name = m[idx+1:]
		typ = strings.TrimSpace(m[:idx])
	}

	if foldPointers {
		for strings.HasPrefix(name, "*") {
			typ += "*"
			name = strings.TrimSpace(name[1:])
		}
	}

	return Member{Name: name, Type: typ, Decl: ParseDecl(typ)}
}
