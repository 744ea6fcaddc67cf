package generator

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardanlabs/imgui-converter/parser"
)

func loadTestdata(t *testing.T) (*parser.Metadata, string) {
	t.Helper()

	read := func(name string) []byte {
		data, err := os.ReadFile(filepath.Join("..", "testdata", "imgui", name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		return data
	}

	md, err := parser.Parse(parser.Documents{
		Typedefs:        read("typedefs_dict.json"),
		StructsAndEnums: read("structs_and_enums.json"),
		Commands:        read("definitions.json"),
	})
	if err != nil {
		t.Fatalf("parsing testdata: %v", err)
	}

	return md, string(read("preamble.zig"))
}

func TestGenerate(t *testing.T) {
	md, preamble := loadTestdata(t)

	gen := New(md, Options{Preamble: preamble})
	out, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.HasPrefix(out, preamble) {
		t.Error("output does not start with the preamble")
	}

	contains := []string{
		"pub const DrawList = opaque {};\npub const Context = opaque {};\npub const InputTextCallbackData = opaque {};\n",
		"pub const DrawCallback = ?*fn (parent_list: ?*const DrawList, cmd: ?*const DrawCmd) callconv(.C) void;",
		"pub const ID = u32;",
		"pub const InputTextCallback = ?*fn (data: ?*InputTextCallbackData) callconv(.C) i32;",
		"pub const CondFlagsInt = FlagsInt;",
		"    pub const NoDecoration: @This() = .{ .NoTitleBar=true, .NoResize=true, .NoMove=true };",
		"pub const Dir = enum (i32) {\n    None = -1,\n    Left = 0,\n    Right = 1,\n    Up = 2,\n    Down = 3,\n    _,\n\n    pub const COUNT = 4;\n};",
		"pub const DrawCmd = extern struct {\n    ClipRect: Vec4,\n    TextureId: TextureID,\n    VtxOffset: u32,\n    UserCallback: ?*anyopaque,\n    UserCallbackData: ?*anyopaque,\n};",
		"pub const TextFilter = extern struct {\n    InputBuf: [256]u8,\n    Filters: Vector(TextRange),\n    CountGrep: i32,\n\n    /// DrawExt(",
		"    pub inline fn Draw(self: *TextFilter) bool {\n        return @This().DrawExt(self, \"Filter(inc,-exc)\", 0.0);\n    }",
		"    pub inline fn init_ImGuiTextFilter() *TextFilter {",
		"    pub const deinit = raw.ImGuiTextFilter_destroy;",
		"pub inline fn Begin(name: ?[*:0]const u8) bool {\n    return @This().BeginExt(name, null, .{});\n}",
		"/// End() void\npub const End = raw.igEnd;",
		"pub inline fn GetCursorPos() Vec2 {",
		"pub inline fn SetNextWindowPosExt(pos: Vec2, cond: CondFlags, pivot: Vec2) void {\n    return raw.igSetNextWindowPos(pos, cond.toInt(), pivot);\n}",
		"pub inline fn SetNextWindowPos(pos: Vec2) void {\n    return @This().SetNextWindowPosExt(pos, .{}, .{.x=0,.y=0});\n}",
		"pub const Text = raw.igText;",
		"pub const raw = struct {\n    pub extern fn ImGuiTextFilter_Draw(self: *TextFilter, label: ?[*:0]const u8, width: f32) callconv(.C) bool;\n",
		"    pub extern fn igGetCursorPos_nonUDT(pOut: *Vec2) callconv(.C) void;\n",
	}
	for _, want := range contains {
		if !strings.Contains(out, want) {
			t.Errorf("output missing:\n%s", want)
		}
	}

	absent := []string{
		"pub const Dir = i32;",
		"pub const WindowFlags = i32;",
		"pub const DrawCmd = opaque",
		"igTextV",
		"igGetCursorPos_nonUDT2",
		"pub extern fn igGetCursorPos(",
		"[*c]",
	}
	for _, s := range absent {
		if strings.Contains(out, s) {
			t.Errorf("output contains %q", s)
		}
	}

	if n := strings.Count(out, "pub const Vec2 = extern struct"); n != 1 {
		t.Errorf("Vec2 declared %d times, want only the preamble's", n)
	}

	order := []string{
		"opaque {};",
		"pub const CondFlags = packed struct",
		"pub const WindowFlags = packed struct",
		"pub const Dir = enum",
		"pub const DrawCmd = extern struct",
		"pub const TextFilter = extern struct",
		"pub inline fn BeginExt",
		"pub inline fn SetNextWindowPosExt",
		"pub const raw = struct",
	}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		if i <= last {
			t.Errorf("%q out of order (at %d, previous at %d)", s, i, last)
		}
		last = i
	}

	rep := gen.Report()
	if rep.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", rep.Skipped)
	}
	if rep.UnresolvedPointers != 0 || rep.UnknownTypes != 0 || len(rep.UnconvertedDefaults) != 0 {
		t.Errorf("unexpected diagnostics: %+v", rep)
	}
}

func TestGenerateIsRepeatable(t *testing.T) {
	md, preamble := loadTestdata(t)
	gen := New(md, Options{Preamble: preamble})

	first, err := gen.Generate()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	firstReport := gen.Report()

	second, err := gen.Generate()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first != second {
		t.Error("second run produced different output")
	}
	if !slices.Equal(firstReport.UnusedRules, gen.Report().UnusedRules) {
		t.Error("second run reported different unused rules")
	}
}

func TestGenerateUnusedRules(t *testing.T) {
	md, _ := loadTestdata(t)
	gen := New(md, Options{})

	if _, err := gen.Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	unused := gen.Report().UnusedRules

	want := `[2][Always()] ["ImFont_CalcTextSizeA", "remaining"] -> "?*?[*:0]"`
	if !slices.Contains(unused, want) {
		t.Errorf("unused rules do not include %s", want)
	}

	// Rules exercised by the testdata must not be reported.
	for _, used := range []string{`[EndsWith("label")]`, `[Contains("name")]`, `["fmt"]`} {
		for _, u := range unused {
			if strings.Contains(u, used) {
				t.Errorf("used rule reported unused: %s", u)
			}
		}
	}
}

func TestGenerateStrict(t *testing.T) {
	md, _ := loadTestdata(t)
	md.Functions = append(md.Functions, parser.FunctionSet{
		Name: "igPushID",
		Overloads: []parser.Function{{
			OverloadName: "igPushID_Int",
			Params:       []parser.FunctionParam{{Name: "int_id", Type: "int"}},
			Defaults:     map[string]string{"int_id": "~0"},
		}},
	})

	lenient := New(md, Options{})
	out, err := lenient.Generate()
	if err != nil {
		t.Fatalf("lenient run: %v", err)
	}
	if !strings.Contains(out, "return @This().PushID_IntExt(~0);") {
		t.Error("unconverted default was not passed through")
	}
	if got := lenient.Report().UnconvertedDefaults; len(got) != 1 {
		t.Errorf("UnconvertedDefaults = %v, want one entry", got)
	}

	strict := New(md, Options{Strict: true})
	if _, err := strict.Generate(); !errors.Is(err, ErrUnconvertibleDefault) {
		t.Fatalf("strict run err = %v, want ErrUnconvertibleDefault", err)
	}
	if got := strict.Report().UnconvertedDefaults; len(got) != 1 {
		t.Errorf("strict run stopped early: %v", got)
	}
}

func TestGenerateSchemaError(t *testing.T) {
	md, _ := loadTestdata(t)
	md.Functions = append(md.Functions, parser.FunctionSet{
		Name: "ImGuiStorage_Clear",
		Overloads: []parser.Function{{
			OverloadName: "ImGuiStorage_Clear",
			StructName:   "ImGuiStorage",
			Params:       []parser.FunctionParam{{Name: "self", Type: "ImGuiStorage*"}},
		}},
	})

	if _, err := New(md, Options{}).Generate(); !errors.Is(err, ErrSchema) {
		t.Fatalf("err = %v, want ErrSchema", err)
	}
}
