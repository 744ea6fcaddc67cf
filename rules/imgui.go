package rules

// ImGui returns the pointer rules for the Dear ImGui API as exposed by
// cimgui. A rule like Path("format") matches any field or param named
// format; Path("igBeginCombo", "preview_value") only matches that param of
// that function.
func ImGui() Table {
	return Table{
		1: {
			{Exact("char"), []Rule{
				{Path("ImGuiTextFilter_ImGuiTextFilter", "default_filter"), "?[*:0]"},
				{Path("igInputTextWithHint", "hint"), "?[*:0]"},
				{Path("igSetClipboardText", "text"), "?[*:0]"},
				{Path("igBeginCombo", "preview_value"), "?[*:0]"},
				{Path("igCombo_Str_arr", "items"), "[*:0]"},
				{Path("igListBox_Str_arr", "items"), "[*:0]"},
				{Path("igColumns", "id"), "?[*:0]"},
				{Path("ImGuiTextBuffer_append", "str"), "?[*]"},

				{Path("GetClipboardTextFn", "", "return"), "?[*:0]"},
				{Path("SetClipboardTextFn", "", "text"), "?[*:0]"},

				{Path("ImFont_CalcWordWrapPositionA", "return"), "?[*]"},
				{Path("igSaveIniSettingsToMemory", "return"), "?[*:0]"},
				{Path("ImGuiTextBuffer_begin", "return"), "[*]"},
				{Path("ImGuiTextBuffer_end", "return"), "[*]"},
				{Path("ImGuiTextBuffer_c_str", "return"), "[*:0]"},
				{Path("igGetClipboardText", "return"), "?[*:0]"},
				{Path("igGetVersion", "return"), "?[*:0]"},

				{Path(EndsWith("Name"), "return"), "?[*:0]"},

				{Path("type"), "?[*:0]"},

				{Path("compressed_font_data_base85"), "?[*]"},
				{Path("items_separated_by_zeros"), "?[*]"},
				{Path("text"), "?[*]"},
				{Path("fmt"), "?[*:0]"},
				{Path("prefix"), "?[*:0]"},
				{Path("shortcut"), "?[*:0]"},
				{Path("overlay"), "?[*:0]"},
				{Path("overlay_text"), "?[*:0]"},
				{Path("buf"), "?[*]"},
				{Path("Buf"), "?[*]"},

				{Path(EndsWith("id")), "?[*:0]"},
				{Path(EndsWith("label")), "?[*:0]"},
				{Path(EndsWith("str")), "?[*:0]"},
				{Path(Contains("format")), "?[*:0]"},
				{Path(Contains("name")), "?[*:0]"},
				{Path(Contains("Name")), "?[*:0]"},
				{Path(Contains("begin")), "?[*]"},
				{Path(Contains("end")), "?[*]"},
				{Path(EndsWith("data")), "?[*]"},
				{Path(EndsWith("FnStrPtr"), "getter", "", "return"), "?[*:0]"},

				{Path("ImGuiTextRange", Always()), "?[*]"},
				{Path("ImGuiTextRange_ImGuiTextRange_Str", Always()), "?[*]"},
			}},
			{Always(), []Rule{
				{Path(Regex("ImGuiStorage_Get.*Ref"), "return"), "?*"},
			}},
			{Exact("float"), []Rule{
				{Path("igColorPicker4", "ref_col"), "?*const[4]"},
				{Path(Regex("out_[rgbhsv]")), "*"},
			}},
			{Exact("int"), []Rule{
				{Path("out_bytes_per_pixel"), "?*"},
				{Path("current_item"), "?*"},
				{Path("igCheckboxFlags_IntPtr", "flags"), "*"},
			}},
			{Exact("unsigned int"), []Rule{
				{Path("igCheckboxFlags_UintPtr", "flags"), "*"},
			}},
			{Exact("size_t"), []Rule{
				{Path("igSaveIniSettingsToMemory", "out_ini_size"), "?*"},
			}},
			{Exact("ImWchar"), []Rule{
				{Path("ranges"), "?[*:0]"},
				{Path("return"), "?[*:0]"},
				{Path("glyph_ranges"), "?[*:0]"},
				{Path("GlyphRanges"), "?[*:0]"},
			}},
			{Exact("ImFontAtlas"), []Rule{
				{Path(EndsWith("Atlas")), "?*"},
				{Path(EndsWith("atlas")), "?*"},
				{Path("ImGuiIO", "Fonts"), "?*"},
			}},
			{Exact("ImVec2"), []Rule{
				{Path("igIsMousePosValid", "mouse_pos"), "?*"},
				{Path("points"), "?[*]"},
			}},
			{Exact("ImGuiTableColumnSortSpecs"), []Rule{
				{Path("ImGuiTableSortSpecs", "Specs"), "?[*]"},
			}},
			{Exact("ImGuiWindowClass"), []Rule{
				{Path("window_class"), "?*"},
			}},
			{StartsWith("Im"), []Rule{
				{Path(EndsWith("Ptr")), "?[*]"},
				{Path("igGetIO", "return"), "*"},
				{Path("igGetDrawData", "return"), "*"},
				{Path(Not(EndsWith("s"))), "?*"},
			}},
			{Always(), []Rule{
				{Path(StartsWith("TexPixels")), "?[*]"},
				{Path(StartsWith("p_")), "?*"},
				{Path(StartsWith("v")), "*"},
				{Path(StartsWith("out_")), "*"},
			}},
		},
		2: {
			{Always(), []Rule{
				{Path(StartsWith("ImFontAtlas_GetTexData"), "out_pixels"), "*?[*]"},
				{Path("ImFont_CalcTextSizeA", "remaining"), "?*?[*:0]"},
			}},
		},
	}
}
