package llmstyle

import "testing"

func filterAll(lines []string) []string {
	var f frontMatterFilter
	var out []string
	for _, line := range lines {
		out = append(out, f.Feed(line)...)
	}
	out = append(out, f.Finish()...)
	return out
}

func TestFrontMatterStripped(t *testing.T) {
	got := filterAll([]string{"---", "title: Doc", "draft: true", "---", "# Body"})
	if len(got) != 1 || got[0] != "# Body" {
		t.Fatalf("got %q", got)
	}
}

func TestFrontMatterAfterLeadingBlanks(t *testing.T) {
	got := filterAll([]string{"", "---", "key: val", "---", "text"})
	if len(got) != 2 || got[0] != "" || got[1] != "text" {
		t.Fatalf("got %q", got)
	}
}

func TestFrontMatterDotsTerminator(t *testing.T) {
	got := filterAll([]string{"---", "key: val", "...", "text"})
	if len(got) != 1 || got[0] != "text" {
		t.Fatalf("got %q", got)
	}
}

func TestNoFrontMatterPassthrough(t *testing.T) {
	in := []string{"# Title", "---", "text"}
	got := filterAll(in)
	if len(got) != len(in) {
		t.Fatalf("got %q", got)
	}
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("got %q, want %q", got, in)
		}
	}
}

func TestUnclosedFrontMatterReplayed(t *testing.T) {
	got := filterAll([]string{"---", "not front matter", "just text"})
	want := []string{"---", "not front matter", "just text"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestLaterDashesNotFrontMatter(t *testing.T) {
	got := filterAll([]string{"text", "---", "more"})
	if len(got) != 3 {
		t.Fatalf("horizontal rule swallowed: %q", got)
	}
}
