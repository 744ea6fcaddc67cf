package generator

import (
	"strconv"
	"strings"
)

// Conventions holds the naming tables of one binding. They are read-only
// for the duration of a run.
type Conventions struct {
	// TypeNames renames built-in and fixed-width scalar types.
	TypeNames map[string]string

	// VectorPrefix names the generic container family: VectorPrefix+"Elem"
	// becomes Vector(Elem) and VectorPrefix+"ElemPtr" Vector(?*Elem).
	VectorPrefix string

	// StripPrefixes are library prefixes removed from type names, tried in
	// order.
	StripPrefixes []string

	// FunctionPrefix is removed from free function names except those in
	// KeepFunctionNames.
	FunctionPrefix    string
	KeepFunctionNames map[string]bool

	// FlagsTypes are flag sets whose name does not end in "Flags".
	FlagsTypes map[string]string

	SkipTypedefs     map[string]bool
	SkipEnumMembers  map[string]bool
	ExcludedStructs  map[string]bool
	ExcludedTypedefs map[string]bool

	// ArrayLens resolves array lengths that follow no naming convention.
	ArrayLens map[string]string

	// ByValue are aggregates never given a const qualifier.
	ByValue map[string]bool

	// Callback replaces a callback typedef on one field with an opaque
	// pointer.
	Callback struct {
		Type, Field, Annotation string
	}

	// ConstEmbedded lists function/param pairs whose rule annotation
	// already carries const.
	ConstEmbedded [][2]string

	// Keywords maps parameter names that collide with target keywords.
	Keywords map[string]string
}

// ImGui returns the conventions for Dear ImGui bindings generated from
// cimgui metadata.
func ImGui() Conventions {
	c := Conventions{
		TypeNames: map[string]string{
			"int":                "i32",
			"unsigned int":       "u32",
			"unsigned long long": "u64",
			"short":              "i16",
			"unsigned short":     "u16",
			"float":              "f32",
			"double":             "f64",
			"void*":              "?*anyopaque",
			"const void*":        "?*const anyopaque",
			"bool":               "bool",
			"char":               "u8",
			"unsigned char":      "u8",
			"size_t":             "usize",
			"ImS8":               "i8",
			"ImS16":              "i16",
			"ImS32":              "i32",
			"ImS64":              "i64",
			"ImU8":               "u8",
			"ImU16":              "u16",
			"ImU32":              "u32",
			"ImU64":              "u64",
			"ImGuiCond":          "CondFlags",
			"FILE":               "anyopaque",
		},
		VectorPrefix:   "ImVector_",
		StripPrefixes:  []string{"ImGui", "Im"},
		FunctionPrefix: "ig",
		KeepFunctionNames: map[string]bool{
			"ImGuiFreeType_GetBuilderForFreeType": true,
			"ImGuiFreeType_SetAllocatorFunctions": true,
		},
		FlagsTypes: map[string]string{
			"ImGuiCond": "Cond",
		},
		SkipTypedefs: map[string]bool{
			"const_iterator": true,
			"iterator":       true,
			"value_type":     true,
		},
		SkipEnumMembers: map[string]bool{
			"ImGuiMod_None": true,
		},
		ExcludedStructs: map[string]bool{
			"ImVec2":  true,
			"ImVec4":  true,
			"ImColor": true,
		},
		ExcludedTypedefs: map[string]bool{
			"ImTextureID": true,
		},
		ArrayLens: map[string]string{
			"ImGuiKey_KeysData_SIZE": "Key.KeysData_SIZE",
		},
		ByValue: map[string]bool{
			"ImVec2": true,
			"ImVec4": true,
		},
		ConstEmbedded: [][2]string{
			{"igColorPicker4", "ref_col"},
		},
		Keywords: map[string]string{
			"type": "kind",
		},
	}
	c.Callback.Type = "ImDrawCallback"
	c.Callback.Field = "UserCallback"
	c.Callback.Annotation = "?*anyopaque"

	return c
}

// isFlags reports whether a C type name belongs to the bit-flags family.
func (c *Conventions) isFlags(name string) bool {
	if _, ok := c.FlagsTypes[name]; ok {
		return true
	}
	return strings.HasSuffix(name, "Flags")
}

// typeName converts a C type name. The second result is false when no
// convention applied and the name passed through unchanged.
func (c *Conventions) typeName(name string) (string, bool) {
	if t, ok := c.TypeNames[name]; ok {
		return t, true
	}

	if c.VectorPrefix != "" && strings.HasPrefix(name, c.VectorPrefix) {
		elem := strings.TrimPrefix(name, c.VectorPrefix)
		prefix := "Vector("
		if strings.HasSuffix(elem, "Ptr") {
			elem = strings.TrimSuffix(elem, "Ptr")
			prefix += "?*"
		}
		inner, ok := c.typeName(elem)
		return prefix + inner + ")", ok
	}

	for _, p := range c.StripPrefixes {
		if strings.HasPrefix(name, p) {
			return name[len(p):], true
		}
	}

	return name, false
}

// arrayLen converts a fixed array length. NAME_COUNT refers to the COUNT
// constant of the enum NAME.
func (c *Conventions) arrayLen(length string) string {
	if _, err := strconv.Atoi(length); err == nil {
		return length
	}

	if enum, ok := strings.CutSuffix(length, "_COUNT"); ok {
		name, _ := c.typeName(enum)
		return name + ".COUNT"
	}

	if l, ok := c.ArrayLens[length]; ok {
		return l
	}

	return length
}

func (c *Conventions) constEmbedded(fn, param string) bool {
	for _, p := range c.ConstEmbedded {
		if p[0] == fn && p[1] == param {
			return true
		}
	}
	return false
}

func (c *Conventions) paramName(name string) string {
	if k, ok := c.Keywords[name]; ok {
		return k
	}
	return name
}
