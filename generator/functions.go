package generator

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/imgui-converter/parser"
	"github.com/ardanlabs/imgui-converter/rules"
)

// vaList is the C variable-argument cursor type. No safe translation
// exists, so functions taking one are skipped.
const vaList = "va_list"

type param struct {
	name     string // emitted name
	typ      string // translated type
	udtPtr   bool
	variadic bool
	def      string
	hasDef   bool
}

// addFunctionSet keeps one overload per exported symbol. A variant marked
// canonical replaces the entry it was derived from; other marked variants
// are dropped.
func (g *Generator) addFunctionSet(set parser.FunctionSet) error {
	byName := newOrdered[parser.Function]()

	for _, fn := range set.Overloads {
		switch fn.NonUDT {
		case parser.NonUDTNone:
			if !byName.has(fn.OverloadName) {
				byName.set(fn.OverloadName, fn)
			}
		case parser.NonUDTCanonical:
			byName.set(strings.ReplaceAll(fn.OverloadName, "_nonUDT", ""), fn)
		}
	}

	for _, name := range byName.keys {
		fn := byName.vals[name]
		if fn.Templated {
			g.report.Skipped++
			g.log.Debug("skipping templated function", "function", fn.OverloadName)
			continue
		}
		if err := g.addFunction(name, fn); err != nil {
			return fmt.Errorf("function %s: %w", fn.OverloadName, err)
		}
	}

	return nil
}

// addFunction emits the raw extern declaration and the wrapper that is
// attached to the owning struct or to the root namespace.
func (g *Generator) addFunction(baseName string, fn parser.Function) error {
	rawName := fn.OverloadName
	fnCtx := rules.Function(rawName, fn.StructName, nil)

	known := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		known[p.Name] = true
	}
	for name := range fn.Defaults {
		if !known[name] {
			return fmt.Errorf("%w: default for unknown parameter %q", ErrSchema, name)
		}
	}

	retType := "void"
	switch {
	case fn.HasRet:
		retType = fn.Ret
	case fn.Constructor:
		retType = fn.StructName
	}

	var params []param
	variadic := false
	for _, p := range fn.Params {
		switch p.Type {
		case vaList:
			g.report.Skipped++
			g.log.Debug("skipping function with va_list", "function", rawName)
			return nil
		case "...":
			params = append(params, param{name: "...", typ: "...", variadic: true})
			variadic = true
			continue
		}

		zigType := g.translate(p.Type, rules.Param(p.Name, fnCtx, p.UDTPtr))
		def, hasDef := fn.Defaults[p.Name]
		params = append(params, param{
			name:   g.conv.paramName(p.Name),
			typ:    zigType,
			udtPtr: p.UDTPtr,
			def:    def,
			hasDef: hasDef,
		})
	}
	variadic = variadic || fn.Variadic

	zigRet := g.translate(retType, rules.Param("return", fnCtx, false))
	rawRet := zigRet
	if fn.Constructor {
		rawRet = "*" + zigRet
	}

	rawParams := make([]string, len(params))
	for i, p := range params {
		rawParams[i] = p.decl(p.typ)
	}
	g.raw = append(g.raw, fmt.Sprintf("    pub extern fn %s(%s) callconv(.C) %s;",
		rawName, strings.Join(rawParams, ", "), rawRet))

	declName, err := g.functionName(fn, baseName)
	if err != nil {
		return err
	}

	w := wrapper{
		name:    declName,
		rawName: rawName,
		ret:     rawRet,
	}

	if strings.HasSuffix(zigRet, "FlagsInt") {
		w.needsWrap = true
		w.ret = strings.TrimSuffix(zigRet, "Int")
		w.capture = "_retflags"
		w.returnExpr = w.ret + ".fromInt(_retflags)"
	}

	if fn.NonUDT == parser.NonUDTCanonical {
		if zigRet != "void" {
			return fmt.Errorf("%w: hidden output parameter on function returning %s", ErrSchema, zigRet)
		}
		if len(params) == 0 || params[0].name != rules.OutParam {
			return fmt.Errorf("%w: hidden output parameter %q missing", ErrSchema, rules.OutParam)
		}
		if !strings.HasPrefix(params[0].typ, "*") {
			return fmt.Errorf("%w: hidden output parameter is not a pointer: %s", ErrSchema, params[0].typ)
		}

		w.needsWrap = true
		w.ret = strings.TrimPrefix(params[0].typ, "*")
		w.before = append(w.before, "var out: "+w.ret+" = undefined;")
		w.pass = append(w.pass, "&out")
		w.returnExpr = "out"
		params = params[1:]
	}

	for _, p := range params {
		wrappedType, wrappedPass := p.typ, p.name

		switch {
		case p.variadic:
		case strings.HasSuffix(p.typ, "FlagsInt") && !strings.Contains(p.typ, "*"):
			w.needsWrap = true
			wrappedType = strings.Replace(p.typ, "FlagsInt", "Flags", 1)
			wrappedPass = p.name + ".toInt()"
		case p.udtPtr:
			w.needsWrap = true
			wrappedType = strings.TrimPrefix(strings.TrimPrefix(p.typ, "*"), "const ")
			wrappedPass = "&" + p.name
		}

		w.params = append(w.params, p.decl(wrappedType))
		w.pass = append(w.pass, wrappedPass)

		if p.hasDef {
			w.hasDefaults = true
			ctx := rules.Param(p.name, fnCtx, false)
			w.defaultPass = append(w.defaultPass, g.convertDefault(p.def, wrappedType, ctx))
		} else {
			w.defaultParams = append(w.defaultParams, p.decl(wrappedType))
			w.defaultPass = append(w.defaultPass, p.name)
		}
	}

	w.variadic = variadic
	lines := w.lines()

	if fn.StructName != "" {
		st, ok := g.structs.get(fn.StructName)
		if !ok {
			return fmt.Errorf("%w: method of undeclared struct %s", ErrSchema, fn.StructName)
		}
		st.methods = append(st.methods, "    "+strings.Join(lines, "\n    "))
		return nil
	}

	g.rootFunctions = append(g.rootFunctions, strings.Join(lines, "\n"))
	return nil
}

func (p param) decl(typ string) string {
	if p.variadic {
		return "..."
	}
	return p.name + ": " + typ
}

// functionName strips the owning struct or library prefix from a
// function's logical name.
func (g *Generator) functionName(fn parser.Function, baseName string) (string, error) {
	if fn.StructName != "" {
		name := strings.ReplaceAll(baseName, fn.StructName+"_", "")
		switch {
		case fn.Constructor:
			name = "init_" + name
		case fn.Destructor:
			name = strings.ReplaceAll(name, "destroy", "deinit")
		}
		return name, nil
	}

	if g.conv.KeepFunctionNames[baseName] {
		return baseName, nil
	}

	name, ok := strings.CutPrefix(baseName, g.conv.FunctionPrefix)
	if !ok {
		return "", fmt.Errorf("%w: free function %s lacks prefix %q", ErrSchema, baseName, g.conv.FunctionPrefix)
	}
	return name, nil
}

// wrapper is the high-level declaration of one function.
type wrapper struct {
	name    string
	rawName string
	ret     string

	needsWrap bool
	variadic  bool

	params     []string
	pass       []string
	before     []string
	capture    string
	returnExpr string

	hasDefaults   bool
	defaultParams []string
	defaultPass   []string
}

// lines renders the wrapper: an inline function when arguments or the
// result need marshaling, otherwise an alias of the raw symbol. Functions
// with defaults get a short overload and the full one is suffixed Ext.
func (w wrapper) lines() []string {
	name := w.name
	overload := w.hasDefaults && !w.variadic
	if overload {
		name += "Ext"
	}

	var out []string
	if w.needsWrap && !w.variadic {
		out = append(out, "pub inline fn "+name+"("+strings.Join(w.params, ", ")+") "+w.ret+" {")
		for _, b := range w.before {
			out = append(out, "    "+b)
		}

		call := "raw." + w.rawName + "(" + strings.Join(w.pass, ", ") + ");"
		switch {
		case w.returnExpr == "":
			out = append(out, "    return "+call)
		case w.capture == "":
			out = append(out, "    "+call, "    return "+w.returnExpr+";")
		default:
			out = append(out, "    const "+w.capture+" = "+call, "    return "+w.returnExpr+";")
		}
		out = append(out, "}")
	} else {
		out = append(out,
			"/// "+name+"("+strings.Join(w.params, ", ")+") "+w.ret,
			"pub const "+name+" = raw."+w.rawName+";",
		)
	}

	if overload {
		out = append(out,
			"pub inline fn "+w.name+"("+strings.Join(w.defaultParams, ", ")+") "+w.ret+" {",
			"    return @This()."+name+"("+strings.Join(w.defaultPass, ", ")+");",
			"}",
		)
	}

	return out
}
