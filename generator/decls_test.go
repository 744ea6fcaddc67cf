package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/imgui-converter/parser"
)

func TestFlagSet(t *testing.T) {
	g := newTestGenerator(nil)

	values := []parser.EnumValue{
		{Name: "ImGuiTestFlags_None", Value: "0", CalcValue: 0},
		{Name: "ImGuiTestFlags_A", Value: "1 << 0", CalcValue: 1},
		{Name: "ImGuiTestFlags_B", Value: "1 << 1", CalcValue: 2},
		{Name: "ImGuiTestFlags_Again", Value: "1 << 0", CalcValue: 1},
		{Name: "ImGuiTestFlags_C", Value: "ImGuiTestFlags_A | ImGuiTestFlags_B", CalcValue: 3},
	}

	fs, err := g.flagSet("ImGuiTestFlags", values)
	if err != nil {
		t.Fatalf("flagSet: %v", err)
	}

	if fs.Name != "TestFlags" {
		t.Errorf("Name = %q, want TestFlags", fs.Name)
	}
	if fs.Bits[0] != "A" || fs.Bits[1] != "B" {
		t.Errorf("bits 0,1 = %q,%q, want A,B", fs.Bits[0], fs.Bits[1])
	}
	if fs.Bits[2] != "__reserved_bit_02" || fs.Bits[31] != "__reserved_bit_31" {
		t.Errorf("reserved bits = %q,%q", fs.Bits[2], fs.Bits[31])
	}

	want := []flagAlias{
		{Name: "None"},
		{Name: "Again", Bits: []string{"A"}},
		{Name: "C", Bits: []string{"A", "B"}},
	}
	if len(fs.Aliases) != len(want) {
		t.Fatalf("got %d aliases, want %d: %+v", len(fs.Aliases), len(want), fs.Aliases)
	}
	for i, a := range want {
		got := fs.Aliases[i]
		if got.Name != a.Name || strings.Join(got.Bits, ",") != strings.Join(a.Bits, ",") {
			t.Errorf("alias %d = %+v, want %+v", i, got, a)
		}
	}
}

func TestFlagSetBitOutOfRange(t *testing.T) {
	g := newTestGenerator(nil)

	values := []parser.EnumValue{
		{Name: "ImGuiWideFlags_High", Value: "1 << 32", CalcValue: 1 << 32},
	}

	if _, err := g.flagSet("ImGuiWideFlags", values); !errors.Is(err, ErrSchema) {
		t.Fatalf("err = %v, want ErrSchema", err)
	}
}

func TestAddFlags(t *testing.T) {
	g := newTestGenerator(nil)
	g.typedefs.set("ImGuiCond", "pub const Cond = i32;")

	values := []parser.EnumValue{
		{Name: "ImGuiCond_None", Value: "0", CalcValue: 0},
		{Name: "ImGuiCond_Always", Value: "1 << 0", CalcValue: 1},
		{Name: "ImGuiCond_Once", Value: "1 << 1", CalcValue: 2},
	}
	if err := g.addFlags("ImGuiCond", values); err != nil {
		t.Fatalf("addFlags: %v", err)
	}

	if g.typedefs.has("ImGuiCond") {
		t.Error("typedef of the flags type was not removed")
	}
	if len(g.bitsets) != 1 {
		t.Fatalf("got %d bitsets", len(g.bitsets))
	}
	out := g.bitsets[0]

	for _, want := range []string{
		"pub const CondFlagsInt = FlagsInt;\npub const CondFlags = packed struct {\n    Always: bool = false,\n    Once: bool = false,\n",
		"    __reserved_bit_31: bool = false,\n\n    pub const None: @This() = .{};\n\n    pub usingnamespace FlagsMixin(@This());\n};",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if n := strings.Count(out, ": bool = false,"); n != FlagBits {
		t.Errorf("got %d slots, want %d", n, FlagBits)
	}
}

func TestAddFlagsAliasLiteral(t *testing.T) {
	g := newTestGenerator(nil)

	values := []parser.EnumValue{
		{Name: "ImGuiTestFlags_A", CalcValue: 1},
		{Name: "ImGuiTestFlags_B", CalcValue: 2},
		{Name: "ImGuiTestFlags_AB", CalcValue: 3},
	}
	if err := g.addFlags("ImGuiTestFlags", values); err != nil {
		t.Fatalf("addFlags: %v", err)
	}

	want := "    pub const AB: @This() = .{ .A=true, .B=true };"
	if !strings.Contains(g.bitsets[0], want) {
		t.Errorf("output missing %q\n%s", want, g.bitsets[0])
	}
}

func TestAddEnum(t *testing.T) {
	g := newTestGenerator(nil)

	values := []parser.EnumValue{
		{Name: "ImGuiKey_None", Value: "0"},
		{Name: "ImGuiKey_0", Value: "536"},
		{Name: "ImGuiKey_NamedKey_BEGIN", Value: "512"},
		{Name: "ImGuiKey_NamedKey_END", Value: "652"},
		{Name: "ImGuiKey_NamedKey_COUNT", Value: "ImGuiKey_NamedKey_END - ImGuiKey_NamedKey_BEGIN"},
		{Name: "ImGuiMod_None", Value: "0"},
	}
	g.addEnum("ImGuiKey", values)

	want := `pub const Key = enum (i32) {
    None = 0,
    @"0" = 536,
    _,

    pub const NamedKey_BEGIN = 512;
    pub const NamedKey_END = 652;
    pub const NamedKey_COUNT = @This().NamedKey_END - @This().NamedKey_BEGIN;
};`
	if len(g.enums) != 1 || g.enums[0] != want {
		t.Errorf("got:\n%s\nwant:\n%s", strings.Join(g.enums, "\n"), want)
	}
}

func TestAddEnumWithoutSentinels(t *testing.T) {
	g := newTestGenerator(nil)

	g.addEnum("ImGuiDir", []parser.EnumValue{
		{Name: "ImGuiDir_None", Value: "-1"},
		{Name: "ImGuiDir_Left", Value: "0"},
	})

	want := "pub const Dir = enum (i32) {\n    None = -1,\n    Left = 0,\n    _,\n};"
	if g.enums[0] != want {
		t.Errorf("got:\n%s\nwant:\n%s", g.enums[0], want)
	}
}

func TestAddTypedef(t *testing.T) {
	g := newTestGenerator(nil)

	for _, td := range []parser.Typedef{
		{Name: "ImGuiContext", Definition: "struct ImGuiContext"},
		{Name: "ImGuiID", Definition: "unsigned int"},
		{Name: "ImU32", Definition: "unsigned int"},
		{Name: "iterator", Definition: "value_type*"},
		{Name: "ImGuiInputTextCallback", Definition: "int(*)(ImGuiInputTextCallbackData* data);"},
	} {
		g.addTypedef(td)
	}

	if !g.opaque.has("ImGuiContext") {
		t.Error("ImGuiContext is not opaque")
	}

	wantKeys := []string{"ImGuiID", "ImGuiInputTextCallback"}
	if strings.Join(g.typedefs.keys, ",") != strings.Join(wantKeys, ",") {
		t.Fatalf("typedefs = %v, want %v", g.typedefs.keys, wantKeys)
	}

	if got, _ := g.typedefs.get("ImGuiID"); got != "pub const ID = u32;" {
		t.Errorf("ImGuiID = %q", got)
	}
	want := "pub const InputTextCallback = ?*fn (data: ?*InputTextCallbackData) callconv(.C) i32;"
	if got, _ := g.typedefs.get("ImGuiInputTextCallback"); got != want {
		t.Errorf("ImGuiInputTextCallback = %q, want %q", got, want)
	}
}

func TestAddStruct(t *testing.T) {
	g := newTestGenerator(nil)
	g.addTypedef(parser.Typedef{Name: "ImGuiStyle", Definition: "struct ImGuiStyle"})

	g.addStruct(parser.Struct{
		Name: "ImGuiStyle",
		Fields: []parser.StructField{
			{Name: "Alpha", Type: "float"},
			{Name: "WindowPadding", Type: "ImVec2"},
			{Name: "Colors[ImGuiCol_COUNT]", Type: "ImVec4"},
			{Name: "", Type: "union { int val_i; float val_f;}"},
		},
	})

	if g.opaque.has("ImGuiStyle") {
		t.Error("declared struct is still opaque")
	}

	st, ok := g.structs.get("ImGuiStyle")
	if !ok {
		t.Fatal("struct not recorded")
	}
	if st.name != "Style" {
		t.Errorf("name = %q", st.name)
	}

	want := []string{
		"    Alpha: f32,",
		"    WindowPadding: Vec2,",
		"    Colors: [Col.COUNT]Vec4,",
		"    value: extern union { val_i: i32, val_f: f32 },",
	}
	if strings.Join(st.fields, "\n") != strings.Join(want, "\n") {
		t.Errorf("fields:\n%s\nwant:\n%s", strings.Join(st.fields, "\n"), strings.Join(want, "\n"))
	}
}
