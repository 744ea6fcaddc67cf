package rules

import "strings"

// Kind identifies the declaration a Context describes.
type Kind int

const (
	KindStruct Kind = iota + 1
	KindField
	KindFunction
	KindParam
	KindTemplate
	KindTypedef
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "Struct"
	case KindField:
		return "Field"
	case KindFunction:
		return "Function"
	case KindParam:
		return "Param"
	case KindTemplate:
		return "Template"
	case KindTypedef:
		return "Typedef"
	}
	return "Unknown"
}

// Context records where a type occurrence lives. Contexts form a
// singly-linked chain toward the root and are never mutated once built.
type Context struct {
	kind   Kind
	name   string
	parent *Context

	// owner is the struct a function is a method of.
	owner string

	// udtPtr marks a param that passes a user-defined aggregate by address.
	udtPtr bool
}

func Struct(name string, parent *Context) *Context {
	return &Context{kind: KindStruct, name: name, parent: parent}
}

// Field panics if parent is not a struct context.
func Field(name string, parent *Context) *Context {
	if parent == nil || parent.kind != KindStruct {
		panic("rules: field context requires a struct parent")
	}
	return &Context{kind: KindField, name: name, parent: parent}
}

func Function(name, owner string, parent *Context) *Context {
	return &Context{kind: KindFunction, name: name, owner: owner, parent: parent}
}

// Param panics if parent is not a function context.
func Param(name string, parent *Context, udtPtr bool) *Context {
	if parent == nil || parent.kind != KindFunction {
		panic("rules: param context requires a function parent")
	}
	return &Context{kind: KindParam, name: name, parent: parent, udtPtr: udtPtr}
}

func Template(name string, parent *Context) *Context {
	return &Context{kind: KindTemplate, name: name, parent: parent}
}

func Typedef(name string, parent *Context) *Context {
	return &Context{kind: KindTypedef, name: name, parent: parent}
}

func (c *Context) Kind() Kind       { return c.kind }
func (c *Context) Name() string     { return c.name }
func (c *Context) Parent() *Context { return c.parent }

// String renders the chain from the root, e.g. "Struct ImGuiIO Field Fonts".
func (c *Context) String() string {
	var parts []string
	for ctx := c; ctx != nil; ctx = ctx.parent {
		name := ctx.name
		if name == "" {
			name = "<anon>"
		}
		parts = append(parts, ctx.kind.String()+" "+name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}
