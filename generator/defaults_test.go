package generator

import (
	"strings"
	"testing"

	"github.com/ardanlabs/imgui-converter/rules"
)

func TestConvertDefault(t *testing.T) {
	tests := []struct {
		def  string
		typ  string
		want string
	}{
		{"0.0f", "f32", "0.0"},
		{"1.0f", "f32", "1.0"},
		{"+360.0f", "f32", "360.0"},
		{"-1", "f32", "-1"},
		{"FLT_MAX", "f32", "FLT_MAX"},
		{"-FLT_MIN", "f32", "-FLT_MIN"},
		{"0.5", "f64", "0.5"},
		{"-1", "i32", "-1"},
		{"0", "ID", "0"},
		{"sizeof(float)", "usize", "@sizeOf(f32)"},
		{"(((ImU32)(255)<<24)|((ImU32)(255)<<16)|((ImU32)(255)<<8)|((ImU32)(255)<<0))", "u32", "0xFFFFFFFF"},
		{"true", "bool", "true"},
		{"false", "bool", "false"},
		{"ImVec2(0,0)", "Vec2", ".{.x=0,.y=0}"},
		{"ImVec2(-FLT_MIN,0)", "Vec2", ".{.x=-FLT_MIN,.y=0}"},
		{"(1,2)", "Vec2", ".{.x=1,.y=2}"},
		{"ImVec4(0,0,0,0)", "Vec4", ".{.x=0,.y=0,.z=0,.w=0}"},
		{"ImVec2(0,0)", "*const Vec2", ".{.x=0,.y=0}"},
		{`"%.3f"`, "?[*:0]const u8", `"%.3f"`},
		{"NULL", "?[*:0]const u8", "null"},
		{"0", "?*anyopaque", "null"},
		{"nullptr", "?*anyopaque", "null"},
		{"NULL", "InputTextCallback", "null"},
		{"0", "MouseButton", ".Left"},
		{"1", "MouseButton", ".Right"},
		{"1", "PopupFlags", ".{ .MouseButtonRight = true }"},
		{"0", "WindowFlags", ".{}"},
		{"ImGuiPopupFlags_MouseButtonRight", "PopupFlags", "PopupFlags.MouseButtonRight"},
		{"ImDrawCornerFlags_All", "DrawCornerFlags", "DrawCornerFlags.All"},
	}

	fn := rules.Function("igTest", "", nil)
	for _, tt := range tests {
		t.Run(tt.def+"/"+tt.typ, func(t *testing.T) {
			g := newTestGenerator(nil)
			got := g.convertDefault(tt.def, tt.typ, rules.Param("arg", fn, false))
			if got != tt.want {
				t.Errorf("convertDefault(%q, %q) = %q, want %q", tt.def, tt.typ, got, tt.want)
			}
			if len(g.report.UnconvertedDefaults) != 0 {
				t.Errorf("unexpected diagnostic: %v", g.report.UnconvertedDefaults)
			}
		})
	}
}

func TestConvertDefaultPassThrough(t *testing.T) {
	tests := []struct {
		def string
		typ string
	}{
		{"ImVec2(1,2,3)", "Vec2"},
		{"ImVec4(0,0)", "Vec4"},
		{"ImVec2(a,b)", "Vec2"},
		{"~0", "i32"},
		{"maybe", "bool"},
		{"1", "WindowFlags"},
		{"NULL", "i32"},
		{"ImGuiWindowFlags_NoTitleBar|ImGuiWindowFlags_NoResize", "WindowFlags"},
		{"ImGuiTreeNodeFlags_Leaf", "WindowFlags"},
		{"nan", "f32"},
		{"Inf", "f64"},
		{"-infinity", "f32"},
	}

	fn := rules.Function("igTest", "", nil)
	for _, tt := range tests {
		t.Run(tt.def+"/"+tt.typ, func(t *testing.T) {
			g := newTestGenerator(nil)
			if got := g.convertDefault(tt.def, tt.typ, rules.Param("arg", fn, false)); got != tt.def {
				t.Errorf("got %q, want the input unchanged", got)
			}

			diags := g.report.UnconvertedDefaults
			if len(diags) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(diags))
			}
			if want := "Function igTest Param arg = " + tt.def; diags[0] != want {
				t.Errorf("diagnostic = %q, want %q", diags[0], want)
			}
		})
	}
}

func TestVectorDefaultRejectsOtherConstructor(t *testing.T) {
	g := newTestGenerator(nil)

	if _, ok := g.vectorDefault("ImVec4(0,0)", "Vec2"); ok {
		t.Error("ImVec4 constructor accepted for Vec2")
	}
	if v, ok := g.vectorDefault(" ( 1 , 2 ) ", "Vec2"); !ok || !strings.HasPrefix(v, ".{") {
		t.Errorf("spaced literal = %q, %v", v, ok)
	}
}
