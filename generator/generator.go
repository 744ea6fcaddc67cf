package generator

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardanlabs/imgui-converter/parser"
	"github.com/ardanlabs/imgui-converter/rules"
)

// Options configures a Generator. Zero values select the Dear ImGui rules
// and conventions and discard diagnostics.
type Options struct {
	Preamble    string
	Rules       rules.Table
	Conventions *Conventions
	Logger      *slog.Logger

	// Strict fails the run when any default argument could not be
	// converted. The full input is still processed first.
	Strict bool
}

// Report summarizes the diagnostics of the last run.
type Report struct {
	UnusedRules         []string
	UnresolvedPointers  int
	UnknownTypes        int
	UnconvertedDefaults []string
	Skipped             int
}

type Generator struct {
	md     *parser.Metadata
	opts   Options
	conv   Conventions
	table  rules.Table
	log    *slog.Logger
	report Report

	session *rules.Session

	opaque        *ordered[bool]
	typedefs      *ordered[string]
	bitsets       []string
	enums         []string
	structs       *ordered[*structure]
	rootFunctions []string
	raw           []string
}

func New(md *parser.Metadata, opts Options) *Generator {
	g := &Generator{
		md:    md,
		opts:  opts,
		table: opts.Rules,
		log:   opts.Logger,
	}

	if g.table == nil {
		g.table = rules.ImGui()
	}
	if opts.Conventions != nil {
		g.conv = *opts.Conventions
	} else {
		g.conv = ImGui()
	}
	if g.log == nil {
		g.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return g
}

// Report returns the diagnostics collected by the last call to Generate.
func (g *Generator) Report() Report {
	return g.report
}

// Generate runs the whole translation and returns the output text. Each
// call starts from a clean state, so repeated runs over the same metadata
// produce identical output.
func (g *Generator) Generate() (string, error) {
	g.reset()

	g.log.Info("translating", "phase", "typedefs", "count", len(g.md.Typedefs))
	for _, td := range g.md.Typedefs {
		g.addTypedef(td)
	}

	g.log.Info("translating", "phase", "enums", "count", len(g.md.Enums))
	for _, e := range g.md.Enums {
		name := strings.TrimSuffix(e.Name, "_")
		if g.conv.isFlags(name) {
			if err := g.addFlags(name, e.Values); err != nil {
				return "", err
			}
			continue
		}
		g.addEnum(name, e.Values)
	}

	g.log.Info("translating", "phase", "structs", "count", len(g.md.Structs))
	for _, s := range g.md.Structs {
		g.addStruct(s)
	}

	g.log.Info("translating", "phase", "functions", "count", len(g.md.Functions))
	for _, set := range g.md.Functions {
		if err := g.addFunctionSet(set); err != nil {
			return "", err
		}
	}

	g.report.UnusedRules = g.session.Unused()
	for _, r := range g.report.UnusedRules {
		g.log.Warn("unused rule", "rule", r)
	}

	g.log.Debug("translating", "phase", "assemble")
	var buf bytes.Buffer
	g.write(&buf)

	if g.opts.Strict && len(g.report.UnconvertedDefaults) > 0 {
		return "", fmt.Errorf("%w: %d default(s), first %s",
			ErrUnconvertibleDefault, len(g.report.UnconvertedDefaults), g.report.UnconvertedDefaults[0])
	}

	return buf.String(), nil
}

func (g *Generator) reset() {
	g.report = Report{}
	g.session = rules.NewSession(g.table)
	g.opaque = newOrdered[bool]()
	g.typedefs = newOrdered[string]()
	g.bitsets = nil
	g.enums = nil
	g.structs = newOrdered[*structure]()
	g.rootFunctions = nil
	g.raw = nil
}

// write assembles the output: preamble, opaque types, typedefs, flags,
// enums, structs with their methods, free functions, raw externs.
func (g *Generator) write(w io.Writer) {
	io.WriteString(w, g.opts.Preamble)

	for _, name := range g.opaque.keys {
		fmt.Fprintf(w, "pub const %s = opaque {};\n", g.typeName(name))
	}

	for _, name := range g.typedefs.keys {
		if g.conv.ExcludedTypedefs[name] {
			continue
		}
		fmt.Fprintf(w, "%s\n", g.typedefs.vals[name])
	}
	io.WriteString(w, "\n")

	for _, b := range g.bitsets {
		fmt.Fprintf(w, "%s\n\n", b)
	}

	for _, e := range g.enums {
		fmt.Fprintf(w, "%s\n\n", e)
	}

	for _, name := range g.structs.keys {
		if g.conv.ExcludedStructs[name] {
			continue
		}
		s := g.structs.vals[name]
		fmt.Fprintf(w, "pub const %s = extern struct {\n", s.name)
		fmt.Fprintf(w, "%s\n", strings.Join(s.fields, "\n"))
		for _, m := range s.methods {
			fmt.Fprintf(w, "\n%s\n", m)
		}
		io.WriteString(w, "};\n\n")
	}

	for _, f := range g.rootFunctions {
		fmt.Fprintf(w, "\n%s\n", f)
	}
	io.WriteString(w, "\n")

	io.WriteString(w, "pub const raw = struct {\n")
	for _, r := range g.raw {
		fmt.Fprintf(w, "%s\n", r)
	}
	io.WriteString(w, "};\n")
}

// ordered is a string-keyed map that remembers first insertion order.
// Re-setting a key keeps its position.
type ordered[V any] struct {
	keys []string
	vals map[string]V
}

func newOrdered[V any]() *ordered[V] {
	return &ordered[V]{vals: make(map[string]V)}
}

func (o *ordered[V]) set(key string, v V) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

func (o *ordered[V]) get(key string) (V, bool) {
	v, ok := o.vals[key]
	return v, ok
}

func (o *ordered[V]) has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

func (o *ordered[V]) remove(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			return
		}
	}
}
