package llmstyle

import (
	"bytes"
	"strings"
	"testing"
)

func defaultDetector() *Detector {
	return NewDetector(CompileRules(DefaultRules(), nil))
}

func TestClassifyBlockPriority(t *testing.T) {
	det := defaultDetector()
	tests := []struct {
		line string
		rule string
	}{
		{"```go", RuleCodeFence},
		{"  ```", RuleCodeFence},
		{"# Title", RuleHeader1},
		{"## Section", RuleHeader2},
		{"### Sub", RuleHeader3},
		{"**1. Overview**", RuleHeaderNumbered},
		{"> quoted", RuleBlockquote},
		{"---", RuleHorizontalRule},
		{"___", RuleHorizontalRule},
		{"- item", RuleListBullet},
		{"  * nested", RuleListBullet},
		{"2. second", RuleListNumbered},
		{"Status: ready", RuleKeyValue},
	}
	for _, tt := range tests {
		cls, ok := det.ClassifyBlock(tt.line)
		if !ok {
			t.Errorf("ClassifyBlock(%q) matched nothing, want %s", tt.line, tt.rule)
			continue
		}
		if cls.Rule != tt.rule {
			t.Errorf("ClassifyBlock(%q) = %s, want %s", tt.line, cls.Rule, tt.rule)
		}
	}
}

func TestClassifyBlockPlainText(t *testing.T) {
	det := defaultDetector()
	if cls, ok := det.ClassifyBlock("just some prose"); ok {
		t.Fatalf("expected no match, got %s", cls.Rule)
	}
}

func TestClassifyBlockCaptures(t *testing.T) {
	det := defaultDetector()
	cls, ok := det.ClassifyBlock("```python")
	if !ok || cls.Rule != RuleCodeFence {
		t.Fatalf("fence not classified: %+v", cls)
	}
	if len(cls.Captures) < 2 || cls.Captures[1] != "python" {
		t.Fatalf("language capture = %v, want python", cls.Captures)
	}

	cls, ok = det.ClassifyBlock("  - hello")
	if !ok || cls.Rule != RuleListBullet {
		t.Fatalf("list not classified: %+v", cls)
	}
	if cls.Captures[1] != "  " || cls.Captures[2] != "hello" {
		t.Fatalf("list captures = %v", cls.Captures)
	}
}

func TestCompileRulesDropsInvalidPattern(t *testing.T) {
	var debug bytes.Buffer
	rules := append(DefaultRules(), DetectionRule{
		Name:    "broken",
		Pattern: "([unclosed",
		Scope:   ScopeBlock,
	})
	det := NewDetector(CompileRules(rules, &debug))
	if !strings.Contains(debug.String(), `dropping rule "broken"`) {
		t.Fatalf("no diagnostic for dropped rule: %q", debug.String())
	}
	// Remaining rules stay live.
	if _, ok := det.ClassifyBlock("# still works"); !ok {
		t.Fatal("classification broken after dropping a rule")
	}
}

func TestCompileRulesExtraRulesAfterDefaults(t *testing.T) {
	rules := append(DefaultRules(), DetectionRule{
		Name:    "shout_line",
		Pattern: `^[A-Z !]+$`,
		Scope:   ScopeBlock,
	})
	det := NewDetector(CompileRules(rules, nil))
	cls, ok := det.ClassifyBlock("HELLO WORLD")
	if !ok || cls.Rule != "shout_line" {
		t.Fatalf("custom rule did not match: %+v ok=%v", cls, ok)
	}
	// Defaults keep priority over extras.
	cls, _ = det.ClassifyBlock("# HEADING")
	if cls.Rule != RuleHeader1 {
		t.Fatalf("extra rule outranked header: %s", cls.Rule)
	}
}

func TestFindInlineLeftmostWins(t *testing.T) {
	det := defaultDetector()
	matches := det.FindInline("a *i* then **b**")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(matches), matches)
	}
	if matches[0].Rule != RuleInlineItalicStar || matches[0].Content != "i" {
		t.Errorf("first match = %+v", matches[0])
	}
	if matches[1].Rule != RuleInlineBoldStar || matches[1].Content != "b" {
		t.Errorf("second match = %+v", matches[1])
	}
}

func TestFindInlineTieBreaksByPriority(t *testing.T) {
	det := defaultDetector()
	// Both bold and italic match at offset 0; bold is higher priority.
	matches := det.FindInline("**strong**")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Rule != RuleInlineBoldStar || matches[0].Content != "strong" {
		t.Fatalf("match = %+v", matches[0])
	}
}

func TestFindInlineCodeBeatsBold(t *testing.T) {
	det := defaultDetector()
	matches := det.FindInline("`**literal**`")
	if len(matches) != 1 || matches[0].Rule != RuleInlineCode {
		t.Fatalf("matches = %+v", matches)
	}
	if matches[0].Content != "**literal**" {
		t.Fatalf("content = %q", matches[0].Content)
	}
}

func TestFindInlineLinkCaptures(t *testing.T) {
	det := defaultDetector()
	matches := det.FindInline("see [docs](https://example.com) please")
	if len(matches) != 1 {
		t.Fatalf("got %d matches", len(matches))
	}
	m := matches[0]
	if m.Rule != RuleInlineLink || m.Content != "docs" || m.Target != "https://example.com" {
		t.Fatalf("match = %+v", m)
	}
}

func TestFindInlineResumesAfterMatch(t *testing.T) {
	det := defaultDetector()
	matches := det.FindInline("`a` and `b`")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Content != "a" || matches[1].Content != "b" {
		t.Fatalf("matches = %+v", matches)
	}
	if matches[1].Start <= matches[0].End-1 {
		t.Fatalf("second match overlaps first: %+v", matches)
	}
}
