package generator

import (
	"bytes"
	"fmt"
	"math/bits"
	"strings"
	"text/template"

	"github.com/ardanlabs/imgui-converter/parser"
	"github.com/ardanlabs/imgui-converter/rules"
)

// FlagBits is the number of slots in every flag set.
const FlagBits = 32

// structure is an emitted struct and the method wrappers attached to it.
type structure struct {
	name    string
	fields  []string
	methods []string
}

func (g *Generator) addTypedef(td parser.Typedef) {
	if _, ok := g.conv.TypeNames[td.Name]; ok {
		return
	}
	if g.conv.SkipTypedefs[td.Name] {
		return
	}

	def := strings.TrimSuffix(td.Definition, ";")

	// typedef struct Foo Foo; has no body to translate.
	if def == "struct "+td.Name {
		g.opaque.set(td.Name, true)
		return
	}

	zigName := g.typeName(td.Name)
	zigType := g.translate(def, rules.Typedef(td.Name, nil))
	g.typedefs.set(td.Name, "pub const "+zigName+" = "+zigType+";")
}

// flagSet is the model behind a packed-struct flags declaration.
type flagSet struct {
	Name    string
	Bits    [FlagBits]string
	Aliases []flagAlias
}

type flagAlias struct {
	Name string
	Bits []string
}

var flagsTmpl = template.Must(template.New("flags").Parse(
	`pub const {{.Name}}Int = FlagsInt;
pub const {{.Name}} = packed struct {
{{- range .Bits}}
    {{.}}: bool = false,
{{- end}}
{{- if .Aliases}}
{{range .Aliases}}
    pub const {{.Name}}: @This() = {{if .Bits}}.{ {{range $i, $b := .Bits}}{{if $i}}, {{end}}.{{$b}}=true{{end}} }{{else}}.{}{{end}};
{{- end}}
{{- end}}

    pub usingnamespace FlagsMixin(@This());
};`))

// addFlags emits a 32-slot bit structure.
func (g *Generator) addFlags(name string, values []parser.EnumValue) error {
	g.typedefs.remove(name)

	fs, err := g.flagSet(name, values)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := flagsTmpl.Execute(&buf, fs); err != nil {
		return fmt.Errorf("flags %s: %w", name, err)
	}
	g.bitsets = append(g.bitsets, buf.String())

	return nil
}

// flagSet assigns bit slots. Single-bit values claim their slot, first
// claim wins; everything else becomes an alias spelled with named bits.
func (g *Generator) flagSet(name string, values []parser.EnumValue) (flagSet, error) {
	zigRaw, ok := g.conv.FlagsTypes[name]
	if !ok {
		zigRaw = g.typeName(strings.TrimSuffix(name, "Flags"))
	}

	fs := flagSet{Name: zigRaw + "Flags"}

	type pending struct {
		name  string
		value int64
	}
	var aliases []pending

	for _, v := range values {
		member := strings.ReplaceAll(v.Name, name+"_", "")
		n := v.CalcValue

		if n != 0 && n&(n-1) == 0 {
			bit := bits.TrailingZeros64(uint64(n))
			if bit >= FlagBits {
				return flagSet{}, fmt.Errorf("%w: flags %s: %s sets bit %d", ErrSchema, name, v.Name, bit)
			}
			if fs.Bits[bit] == "" {
				fs.Bits[bit] = member
				continue
			}
		}
		aliases = append(aliases, pending{member, n})
	}

	for i := range fs.Bits {
		if fs.Bits[i] == "" {
			fs.Bits[i] = fmt.Sprintf("__reserved_bit_%02d", i)
		}
	}

	for _, a := range aliases {
		alias := flagAlias{Name: a.name}
		for i := 0; i < FlagBits; i++ {
			if a.value&(1<<i) != 0 {
				alias.Bits = append(alias.Bits, fs.Bits[i])
			}
		}
		fs.Aliases = append(fs.Aliases, alias)
	}

	return fs, nil
}

// sentinel reports whether an enum member is bookkeeping rather than a
// real case.
func sentinel(member string) bool {
	if member == "COUNT" {
		return true
	}
	for _, s := range []string{"_BEGIN", "_OFFSET", "_END", "_COUNT", "_SIZE"} {
		if strings.HasSuffix(member, s) {
			return true
		}
	}
	return false
}

// addEnum emits an open enum. Sentinel members become associated
// constants.
func (g *Generator) addEnum(name string, values []parser.EnumValue) {
	g.typedefs.remove(name)

	var buf bytes.Buffer
	var sentinels []string

	fmt.Fprintf(&buf, "pub const %s = enum (i32) {\n", g.typeName(name))
	for _, v := range values {
		if g.conv.SkipEnumMembers[v.Name] {
			continue
		}

		member := strings.ReplaceAll(v.Name, name+"_", "")
		if member != "" && member[0] >= '0' && member[0] <= '9' {
			member = `@"` + member + `"`
		}

		value := v.Value
		if strings.Contains(value, name) {
			value = strings.ReplaceAll(value, name+"_", "@This().")
		}

		if sentinel(member) {
			sentinels = append(sentinels, "    pub const "+member+" = "+value+";")
			continue
		}
		fmt.Fprintf(&buf, "    %s = %s,\n", member, value)
	}
	buf.WriteString("    _,\n")

	if len(sentinels) > 0 {
		buf.WriteString("\n" + strings.Join(sentinels, "\n") + "\n")
	}
	buf.WriteString("};")

	g.enums = append(g.enums, buf.String())
}

func (g *Generator) addStruct(s parser.Struct) {
	g.opaque.remove(s.Name)

	st := &structure{name: g.typeName(s.Name)}
	ctx := rules.Struct(s.Name, nil)

	for _, f := range s.Fields {
		name := f.Name
		var dims []string
		for strings.HasSuffix(name, "]") {
			start := strings.LastIndex(name, "[")
			if start < 0 {
				break
			}
			dims = append([]string{g.conv.arrayLen(name[start+1 : len(name)-1])}, dims...)
			name = name[:start]
		}

		zigType := g.translate(f.Type, rules.Field(name, ctx))
		if name == "" {
			name = "value"
		}

		var b strings.Builder
		b.WriteString("    " + name + ": ")
		for _, d := range dims {
			b.WriteString("[" + d + "]")
		}
		b.WriteString(zigType + ",")
		st.fields = append(st.fields, b.String())
	}

	g.structs.set(s.Name, st)
}
