package generator

import (
	"strings"
	"unicode"

	"github.com/ardanlabs/imgui-converter/parser"
	"github.com/ardanlabs/imgui-converter/rules"
)

// translate converts raw C declarator text to Zig type text.
func (g *Generator) translate(text string, ctx *rules.Context) string {
	return g.translateDecl(parser.ParseDecl(text), ctx)
}

func (g *Generator) translateDecl(d *parser.Decl, ctx *rules.Context) string {
	cb := g.conv.Callback
	if d.Kind == parser.DeclNamed && d.Base == cb.Type && d.Pointers == 0 && !d.Const &&
		len(d.Dims) == 0 && d.Unbounded == 0 && ctx.Name() == cb.Field {
		return cb.Annotation
	}

	switch d.Kind {
	case parser.DeclUnion:
		return g.translateUnion(d, ctx)
	case parser.DeclFuncPtr:
		return g.translateFuncPtr(d, ctx)
	}

	pointers := strings.Repeat("[*]", d.Unbounded)
	var arrays strings.Builder
	for _, dim := range d.Dims {
		arrays.WriteString("[" + g.conv.arrayLen(dim) + "]")
	}

	// Array parameters decay to a pointer to the array.
	if len(d.Dims) > 0 && ctx.Kind() == rules.KindParam {
		pointers = "*" + pointers
	}

	var out strings.Builder
	out.WriteString(pointers)
	if d.ArrayConst {
		out.WriteString("const")
	}

	base := d.Base
	depth := d.Pointers
	valueConst := d.Const

	if base == "void" {
		if depth == 0 {
			return "void"
		}
		// void* is an opaque byte type with its own entry in the name
		// table; it absorbs one level and the constness.
		base = "void*"
		if valueConst {
			base = "const void*"
		}
		depth--
		valueConst = false
	}

	if depth > 0 {
		ptr, ok := g.session.Pointers(depth, base, ctx)
		if !ok {
			g.report.UnresolvedPointers++
			g.log.Warn("no matching pointer rule",
				"context", ctx.String(), "type", strings.Repeat("*", depth)+base)
		}
		out.WriteString(ptr)
	}

	if valueConst && !strings.HasSuffix(out.String(), "const") &&
		!g.conv.ByValue[d.Base] && !g.constEmbedded(ctx) {
		out.WriteString("const")
	}

	flags := g.conv.isFlags(base)
	if depth > 0 && flags {
		spaceAfterWord(&out)
		out.WriteString("align(4) ")
	}

	out.WriteString(arrays.String())
	spaceAfterWord(&out)
	out.WriteString(g.typeName(base))

	if depth == 0 && flags {
		switch ctx.Kind() {
		case rules.KindParam:
			out.WriteString("Int")
		case rules.KindField:
			out.WriteString(" align(4)")
		}
	}

	return out.String()
}

func (g *Generator) constEmbedded(ctx *rules.Context) bool {
	p := ctx.Parent()
	return p != nil && g.conv.constEmbedded(p.Name(), ctx.Name())
}

// spaceAfterWord separates a trailing keyword such as "const" from the
// next token.
func spaceAfterWord(b *strings.Builder) {
	s := b.String()
	if s == "" {
		return
	}
	if r := rune(s[len(s)-1]); unicode.IsLetter(r) {
		b.WriteByte(' ')
	}
}

func (g *Generator) translateUnion(d *parser.Decl, ctx *rules.Context) string {
	anon := rules.Struct("", ctx)

	members := make([]string, 0, len(d.Members))
	for _, m := range d.Members {
		if m.Variadic {
			members = append(members, "...")
			continue
		}
		members = append(members, m.Name+": "+g.translateDecl(m.Decl, rules.Field(m.Name, anon)))
	}

	return "extern union { " + strings.Join(members, ", ") + " }"
}

func (g *Generator) translateFuncPtr(d *parser.Decl, ctx *rules.Context) string {
	fn := rules.Function("", "", ctx)
	ret := g.translateDecl(d.Return, rules.Param("return", fn, false))

	params := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		if p.Variadic {
			params = append(params, "...")
			continue
		}
		params = append(params, p.Name+": "+g.translateDecl(p.Decl, rules.Param(p.Name, fn, false)))
	}

	return "?*fn (" + strings.Join(params, ", ") + ") callconv(.C) " + ret
}

// typeName converts a C type name and reports names no convention covers.
func (g *Generator) typeName(name string) string {
	t, ok := g.conv.typeName(name)
	if !ok {
		g.report.UnknownTypes++
		g.log.Warn("unrecognized type name", "type", name)
	}
	return t
}
