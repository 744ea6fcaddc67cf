package generator

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardanlabs/imgui-converter/rules"
)

// namedDefaults maps C default expressions that need a per-type spelling.
var namedDefaults = map[string]map[string]string{
	"f32": {
		"FLT_MAX":  "FLT_MAX",
		"-FLT_MIN": "-FLT_MIN",
	},
	"u32": {
		"(((ImU32)(255)<<24)|((ImU32)(255)<<16)|((ImU32)(255)<<8)|((ImU32)(255)<<0))": "0xFFFFFFFF",
	},
	"MouseButton": {
		"0": ".Left",
		"1": ".Right",
	},
	"PopupFlags": {
		"1": ".{ .MouseButtonRight = true }",
	},
	"?*anyopaque": {
		"nullptr": "null",
	},
}

var intTypes = map[string]bool{"i32": true, "u32": true, "usize": true, "ID": true}

// vectors maps by-value vector types to their component names.
var vectors = map[string][]string{
	"Vec2": {"x", "y"},
	"Vec4": {"x", "y", "z", "w"},
}

// convertDefault turns a C default argument into a Zig expression of type
// typ. Expressions no rule covers pass through unchanged and are reported.
func (g *Generator) convertDefault(def, typ string, ctx *rules.Context) string {
	if v, ok := g.defaultValue(def, typ); ok {
		return v
	}

	g.report.UnconvertedDefaults = append(g.report.UnconvertedDefaults, ctx.String()+" = "+def)
	g.log.Warn("could not convert default value", "default", def, "type", typ, "context", ctx.String())
	return def
}

func (g *Generator) defaultValue(def, typ string) (string, bool) {
	if v, ok := namedDefaults[typ][def]; ok {
		return v, true
	}

	switch {
	case typ == "f32":
		f := strings.TrimPrefix(strings.TrimSuffix(def, "f"), "+")
		if finite(f) {
			return f, true
		}

	case typ == "f64":
		if finite(def) {
			return def, true
		}

	case intTypes[typ]:
		if def == "sizeof(float)" {
			return "@sizeOf(f32)", true
		}
		if _, err := strconv.Atoi(def); err == nil {
			return def, true
		}

	case typ == "bool":
		if def == "true" || def == "false" {
			return def, true
		}
	}

	if v, ok := g.vectorDefault(def, typ); ok {
		return v, true
	}

	if strings.HasPrefix(def, `"`) && strings.HasSuffix(def, `"`) {
		return def, true
	}

	nullable := strings.HasPrefix(typ, "?") || strings.HasPrefix(typ, "[*c]") || strings.HasSuffix(typ, "Callback")
	if nullable && (def == "0" || def == "NULL") {
		return "null", true
	}

	if strings.HasSuffix(typ, "Flags") && !strings.Contains(typ, "*") {
		if def == "0" {
			return ".{}", true
		}
		// A single named flag value of the same set refers to its alias on
		// the Zig type.
		if flagsName, member, ok := strings.Cut(def, "Flags_"); ok && identifier(member) {
			if name, _ := g.conv.typeName(flagsName + "Flags"); name == typ {
				return name + "." + member, true
			}
		}
	}

	return "", false
}

// vectorDefault converts "ImVec2(1,2)" or "(1,2)" for a Vec2 parameter to
// a struct literal, validating every component as f32.
func (g *Generator) vectorDefault(def, typ string) (string, bool) {
	base := strings.TrimPrefix(strings.TrimPrefix(typ, "*"), "const ")
	fields, ok := vectors[base]
	if !ok {
		return "", false
	}

	open := strings.Index(def, "(")
	end := strings.LastIndex(def, ")")
	if open < 0 || end < open {
		return "", false
	}
	if ctor := strings.TrimSpace(def[:open]); ctor != "" && ctor != "Im"+base {
		return "", false
	}

	items := strings.Split(def[open+1:end], ",")
	if len(items) != len(fields) {
		return "", false
	}

	parts := make([]string, len(items))
	for i, item := range items {
		v, ok := g.defaultValue(strings.TrimSpace(item), "f32")
		if !ok {
			return "", false
		}
		parts[i] = "." + fields[i] + "=" + v
	}

	return ".{" + strings.Join(parts, ",") + "}", true
}

// finite reports whether s is a number literal. NaN and infinities have no
// literal form in the output.
func finite(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func identifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}
