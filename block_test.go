package llmstyle

import (
	"strings"
	"testing"
)

func parseLines(t *testing.T, input string) *Document {
	t.Helper()
	machine := NewBlockStateMachine(defaultDetector(), 0, nil)
	for _, line := range strings.Split(input, "\n") {
		machine.Feed(line)
	}
	return machine.Finish()
}

func nonBlank(doc *Document) []*Block {
	var out []*Block
	for _, b := range doc.Blocks {
		if b.Kind != BlockBlank {
			out = append(out, b)
		}
	}
	return out
}

func TestFenceCapturesVerbatim(t *testing.T) {
	doc := parseLines(t, "```go\nfunc main() {}\n# not a header\n```\nafter")
	blocks := nonBlank(doc)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	fence := blocks[0]
	if fence.Kind != BlockCodeFence || fence.Lang != "go" {
		t.Fatalf("fence = %+v", fence)
	}
	want := []string{"func main() {}", "# not a header"}
	if len(fence.RawLines) != 2 || fence.RawLines[0] != want[0] || fence.RawLines[1] != want[1] {
		t.Fatalf("fence lines = %v, want %v", fence.RawLines, want)
	}
	if blocks[1].Kind != BlockParagraph {
		t.Fatalf("trailing text lost: %+v", blocks[1])
	}
}

func TestUnterminatedFenceKeepsLines(t *testing.T) {
	doc := parseLines(t, "before\n```\nline one\nline two")
	blocks := nonBlank(doc)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	fence := blocks[1]
	if fence.Kind != BlockCodeFence {
		t.Fatalf("second block = %+v", fence)
	}
	if len(fence.RawLines) != 2 || fence.RawLines[0] != "line one" || fence.RawLines[1] != "line two" {
		t.Fatalf("fence lines dropped or duplicated: %v", fence.RawLines)
	}
}

func TestParagraphMergesPlainLines(t *testing.T) {
	doc := parseLines(t, "first line\nsecond line\n\nnew paragraph")
	blocks := nonBlank(doc)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if len(blocks[0].RawLines) != 2 {
		t.Fatalf("first paragraph lines = %v", blocks[0].RawLines)
	}
	if len(blocks[1].RawLines) != 1 || blocks[1].RawLines[0] != "new paragraph" {
		t.Fatalf("second paragraph = %v", blocks[1].RawLines)
	}
}

func TestBlockquoteMergesAndStripsMarker(t *testing.T) {
	doc := parseLines(t, "> first\n> second\nplain")
	blocks := nonBlank(doc)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	quote := blocks[0]
	if quote.Kind != BlockBlockquote {
		t.Fatalf("quote = %+v", quote)
	}
	if len(quote.RawLines) != 2 || quote.RawLines[0] != "first" || quote.RawLines[1] != "second" {
		t.Fatalf("quote lines = %v", quote.RawLines)
	}
}

func TestHeaderLevels(t *testing.T) {
	doc := parseLines(t, "# One\n## Two\n### Three")
	blocks := nonBlank(doc)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	for i, want := range []int{1, 2, 3} {
		if blocks[i].Kind != BlockHeader || blocks[i].Level != want {
			t.Errorf("block %d = kind %v level %d, want header level %d", i, blocks[i].Kind, blocks[i].Level, want)
		}
	}
	if blocks[0].RawLines[0] != "One" {
		t.Errorf("header text = %q, want marker stripped", blocks[0].RawLines[0])
	}
}

func TestNumberedHeader(t *testing.T) {
	doc := parseLines(t, "**2. Design**")
	blocks := nonBlank(doc)
	if len(blocks) != 1 || blocks[0].Kind != BlockHeader || blocks[0].Rule != RuleHeaderNumbered {
		t.Fatalf("blocks = %+v", blocks)
	}
	if blocks[0].RawLines[0] != "2. Design" {
		t.Fatalf("header text = %q", blocks[0].RawLines[0])
	}
}

func TestListNestingDepths(t *testing.T) {
	doc := parseLines(t, "- top\n  - mid\n    - deep")
	blocks := nonBlank(doc)
	if len(blocks) != 1 {
		t.Fatalf("got %d top-level blocks, want 1", len(blocks))
	}
	top := blocks[0]
	if top.Kind != BlockListItem || top.Depth != 0 {
		t.Fatalf("top = %+v", top)
	}
	if len(top.Children) != 1 {
		t.Fatalf("top children = %d", len(top.Children))
	}
	mid := top.Children[0]
	if mid.Depth != 1 || len(mid.Children) != 1 {
		t.Fatalf("mid = %+v", mid)
	}
	if deep := mid.Children[0]; deep.Depth != 2 || deep.RawLines[0] != "deep" {
		t.Fatalf("deep = %+v", deep)
	}
}

func TestListOverIndentClamps(t *testing.T) {
	// Jumping from depth 0 straight to eight spaces clamps to depth 1.
	doc := parseLines(t, "- top\n        - way too deep")
	blocks := nonBlank(doc)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	child := blocks[0].Children
	if len(child) != 1 || child[0].Depth != 1 {
		t.Fatalf("children = %+v", child)
	}
}

func TestListOutdentPopsToMatchingDepth(t *testing.T) {
	doc := parseLines(t, "- a\n  - b\n- c")
	blocks := nonBlank(doc)
	if len(blocks) != 2 {
		t.Fatalf("got %d top-level items, want 2", len(blocks))
	}
	if blocks[1].Depth != 0 || blocks[1].RawLines[0] != "c" {
		t.Fatalf("outdented item = %+v", blocks[1])
	}
}

func TestMixedMarkersAreSiblings(t *testing.T) {
	// Switching bullet flavor at the same depth stays at that depth.
	doc := parseLines(t, "- a\n1. b")
	blocks := nonBlank(doc)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Ordered || !blocks[1].Ordered {
		t.Fatalf("ordered flags = %v %v", blocks[0].Ordered, blocks[1].Ordered)
	}
	if blocks[1].Depth != 0 {
		t.Fatalf("numbered sibling depth = %d", blocks[1].Depth)
	}
}

func TestBlankLineClosesListContext(t *testing.T) {
	doc := parseLines(t, "- a\n\n  - b")
	blocks := nonBlank(doc)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	// The second item starts a fresh list; its indentation clamps to 0.
	if blocks[1].Depth != 0 {
		t.Fatalf("depth after blank = %d", blocks[1].Depth)
	}
}

func TestBlankLinesPreserved(t *testing.T) {
	doc := parseLines(t, "a\n\n\nb")
	blanks := 0
	for _, b := range doc.Blocks {
		if b.Kind == BlockBlank {
			blanks++
		}
	}
	if blanks != 2 {
		t.Fatalf("got %d blank blocks, want 2", blanks)
	}
}

func TestKeyValueLineClassified(t *testing.T) {
	doc := parseLines(t, "Status: all good")
	blocks := nonBlank(doc)
	if len(blocks) != 1 || blocks[0].Rule != RuleKeyValue {
		t.Fatalf("blocks = %+v", blocks[0])
	}
}

func TestKeyValueDoesNotMergeWithParagraph(t *testing.T) {
	doc := parseLines(t, "prose line\nStatus: ready\nmore prose")
	blocks := nonBlank(doc)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3: %+v", len(blocks), blocks)
	}
	if blocks[1].Rule != RuleKeyValue {
		t.Fatalf("middle block = %+v", blocks[1])
	}
}

func TestHorizontalRule(t *testing.T) {
	doc := parseLines(t, "above\n---\nbelow")
	blocks := nonBlank(doc)
	if len(blocks) != 3 || blocks[1].Kind != BlockThematicBreak {
		t.Fatalf("blocks = %+v", blocks)
	}
}

func TestFinishResetsMachine(t *testing.T) {
	machine := NewBlockStateMachine(defaultDetector(), 0, nil)
	machine.Feed("# one")
	first := machine.Finish()
	machine.Feed("# two")
	second := machine.Finish()
	if len(first.Blocks) != 1 || len(second.Blocks) != 1 {
		t.Fatalf("documents leaked state: %d then %d", len(first.Blocks), len(second.Blocks))
	}
	if second.Blocks[0].RawLines[0] != "two" {
		t.Fatalf("second doc = %v", second.Blocks[0].RawLines)
	}
}
