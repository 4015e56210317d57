package llmstyle

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func testResolver(debug io.Writer) *StyleResolver {
	styles := DefaultStyles()
	styles["style_shadow"] = mustStyle("bold").WithTransform(ColorTransform{AdjustBrightness: 0.5})
	return NewStyleResolver(DefaultMapping(), styles, debug)
}

func TestResolveSimpleStyle(t *testing.T) {
	r := testResolver(nil)
	cs := r.Resolve("style_header1", TerminalDefault)
	if !cs.Attrs.Has(AttrBold) || !cs.Attrs.Has(AttrUnderline) {
		t.Fatalf("attrs = %v", cs.Attrs)
	}
	if !cs.HasForeground || cs.Foreground.Name != "bright_blue" {
		t.Fatalf("foreground = %+v", cs.Foreground)
	}
}

func TestResolveAttributeOnlyStyleInherits(t *testing.T) {
	r := testResolver(nil)
	cs := r.Resolve("style_inline_bold", TerminalDefault)
	if cs.HasForeground {
		t.Fatalf("bold-only style should not carry a color: %+v", cs)
	}
	if !cs.Attrs.Has(AttrBold) {
		t.Fatal("bold attribute lost")
	}
}

func TestResolveBackground(t *testing.T) {
	r := testResolver(nil)
	cs := r.Resolve("style_inline_code", TerminalDefault)
	if !cs.HasBackground || cs.Background.Name != "grey30" {
		t.Fatalf("background = %+v", cs)
	}
}

func TestResolveUnknownStyleInherits(t *testing.T) {
	var debug bytes.Buffer
	r := NewStyleResolver(DefaultMapping(), DefaultStyles(), &debug)
	cs := r.Resolve("style_nonexistent", TerminalDefault)
	if cs.HasForeground || cs.Attrs != 0 {
		t.Fatalf("unknown style should be empty: %+v", cs)
	}
	if !strings.Contains(debug.String(), "unknown style") {
		t.Fatalf("no diagnostic: %q", debug.String())
	}
}

func TestResolveTransformedStyle(t *testing.T) {
	r := testResolver(nil)
	base := RGB(0x80, 0x80, 0x80)
	cs := r.Resolve("style_shadow", base)
	if !cs.HasForeground {
		t.Fatal("transformed style should yield a color")
	}
	if cs.Foreground.R >= base.R {
		t.Fatalf("halved brightness did not darken: %s", cs.Foreground.Hex())
	}
	if !cs.Attrs.Has(AttrBold) {
		t.Fatal("attributes lost in transform")
	}
}

func TestTransformedStyleDegradesWithoutBase(t *testing.T) {
	r := testResolver(nil)
	got := r.Resolve("style_shadow", TerminalDefault)
	plain := r.Resolve("style_inline_bold", TerminalDefault)
	if got.HasForeground {
		t.Fatalf("degraded transform should be attributes only: %+v", got)
	}
	if got.Attrs != plain.Attrs {
		t.Fatalf("attrs = %v, want %v", got.Attrs, plain.Attrs)
	}
}

func TestTransformDoesNotCompound(t *testing.T) {
	r := testResolver(nil)
	base := RGB(0x80, 0x80, 0x80)
	once := r.Resolve("style_shadow", base)
	again := r.Resolve("style_shadow", base)
	if once.Foreground != again.Foreground {
		t.Fatalf("same base produced different colors: %s vs %s",
			once.Foreground.Hex(), again.Foreground.Hex())
	}
}

func TestTargetFallsBackToDefaultText(t *testing.T) {
	r := testResolver(nil)
	if got := r.Target("no_such_rule"); got.StyleName != "style_default" {
		t.Fatalf("target = %+v", got)
	}
	if got := r.Target(RuleHeader1); got.StyleName != "style_header1" {
		t.Fatalf("target = %+v", got)
	}
}

func TestListLevelStyle(t *testing.T) {
	r := testResolver(nil)
	tests := []struct {
		depth int
		want  string
	}{
		{0, "style_list_level0"},
		{1, "style_list_level1"},
		{3, "style_list_level3"},
		// Depth 4 has no entry; falls back to level 0.
		{4, "style_list_level0"},
		// Depth 11 wraps mod 10 to level 1.
		{11, "style_list_level1"},
	}
	for _, tt := range tests {
		if got := r.ListLevelStyle("style_list_level", tt.depth); got != tt.want {
			t.Errorf("depth %d = %s, want %s", tt.depth, got, tt.want)
		}
	}
}
