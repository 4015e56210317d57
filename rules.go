package llmstyle

import (
	"fmt"
	"io"
	"regexp"
	"sort"
)

// RuleScope distinguishes line-level rules from inline-run rules.
type RuleScope uint8

const (
	// ScopeBlock rules classify whole lines.
	ScopeBlock RuleScope = iota
	// ScopeInline rules match runs inside a line of text.
	ScopeInline
)

// Well-known rule names. Custom rule sets may define additional rules;
// these names carry special classification priority or span semantics.
const (
	RuleCodeFence      = "code_block_fence"
	RuleBlockquote     = "blockquote_start"
	RuleHeaderNumbered = "header_numbered"
	RuleHeader1        = "header1"
	RuleHeader2        = "header2"
	RuleHeader3        = "header3"
	RuleHorizontalRule = "horizontal_rule"
	RuleListBullet     = "list_item_bullet"
	RuleListNumbered   = "list_item_numbered"
	RuleKeyValue       = "key_value_colon"

	RuleInlineCode        = "inline_code"
	RuleInlineBoldStar    = "inline_bold_star"
	RuleInlineBoldUnder   = "inline_bold_under"
	RuleInlineItalicStar  = "inline_italic_star"
	RuleInlineItalicUnder = "inline_italic_under"
	RuleInlineLink        = "inline_link"

	// MappingDefaultText is the mandatory fallback mapping entry for
	// unclassified text. It has no detection pattern of its own.
	MappingDefaultText = "default_text"
)

// blockPriority is the fixed classification order for well-known block
// rules: fence before headers, headers before quote markers, quote
// markers before thematic breaks and list markers. First match wins.
var blockPriority = []string{
	RuleCodeFence,
	RuleHeaderNumbered,
	RuleHeader1,
	RuleHeader2,
	RuleHeader3,
	RuleBlockquote,
	RuleHorizontalRule,
	RuleListBullet,
	RuleListNumbered,
}

// inlinePriority breaks ties when two inline rules match at the same
// position: code spans win over bold, bold over links, links over italic.
var inlinePriority = []string{
	RuleInlineCode,
	RuleInlineBoldStar,
	RuleInlineBoldUnder,
	RuleInlineLink,
	RuleInlineItalicStar,
	RuleInlineItalicUnder,
}

// DetectionRule is one named pattern of a rule set, prior to compilation.
type DetectionRule struct {
	Name    string
	Pattern string
	Scope   RuleScope
}

type compiledRule struct {
	name string
	re   *regexp.Regexp
}

// RuleSet holds the compiled detection rules in classification order.
// A RuleSet is read-only after CompileRules returns.
type RuleSet struct {
	block  []compiledRule
	inline []compiledRule
}

// CompileRules compiles raw detection rules into a RuleSet. A rule whose
// pattern does not compile is dropped and reported on debug; the
// remaining rules stay live. Well-known block rules classify in their
// fixed priority order, any extra block rules follow in name order.
func CompileRules(rules []DetectionRule, debug io.Writer) *RuleSet {
	byName := make(map[string]compiledRule, len(rules))
	var extras []string
	inlineOrder := make([]string, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			if debug != nil {
				fmt.Fprintf(debug, "llm-style: dropping rule %q: %v\n", rule.Name, err)
			}
			continue
		}
		byName[rule.Name] = compiledRule{name: rule.Name, re: re}
		if rule.Scope == ScopeInline {
			inlineOrder = append(inlineOrder, rule.Name)
			continue
		}
		if !isPriorityRule(rule.Name) {
			extras = append(extras, rule.Name)
		}
	}
	sort.Strings(extras)

	set := &RuleSet{}
	for _, name := range blockPriority {
		if rule, ok := byName[name]; ok {
			set.block = append(set.block, rule)
		}
	}
	for _, name := range extras {
		set.block = append(set.block, byName[name])
	}
	for _, name := range inlinePriority {
		if rule, ok := byName[name]; ok {
			set.inline = append(set.inline, rule)
			delete(byName, name)
		}
	}
	for _, name := range inlineOrder {
		if rule, ok := byName[name]; ok {
			set.inline = append(set.inline, rule)
		}
	}
	return set
}

func isPriorityRule(name string) bool {
	for _, p := range blockPriority {
		if p == name {
			return true
		}
	}
	return false
}

// Classification is the result of matching one block rule against a line.
// Captures holds the submatches; Captures[0] is the full match.
type Classification struct {
	Rule     string
	Captures []string
}

// InlineMatch is one matched inline run. Content is the first capture
// group (the text between the delimiters); Target is the second capture
// group when present (link destination).
type InlineMatch struct {
	Rule    string
	Start   int
	End     int
	Raw     string
	Content string
	Target  string
}

// Detector applies a RuleSet to lines and text runs.
type Detector struct {
	rules *RuleSet
}

// NewDetector returns a Detector over a compiled rule set.
func NewDetector(rules *RuleSet) *Detector {
	return &Detector{rules: rules}
}

// ClassifyBlock matches a line against the block rules in priority order
// and returns the first match. The second return is false when no rule
// matches; callers treat such lines as plain text under default_text.
func (d *Detector) ClassifyBlock(line string) (Classification, bool) {
	for _, rule := range d.rules.block {
		m := rule.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return Classification{Rule: rule.name, Captures: m}, true
	}
	return Classification{}, false
}

// FindInline scans a text run left to right and returns the ordered,
// non-overlapping inline matches. Once a run is matched, scanning resumes
// after its end; of two matches starting at the same position, the rule
// earlier in the set wins.
func (d *Detector) FindInline(text string) []InlineMatch {
	var out []InlineMatch
	offset := 0
	for offset < len(text) {
		best := -1
		var bestIdx []int
		for i, rule := range d.rules.inline {
			idx := rule.re.FindStringSubmatchIndex(text[offset:])
			if idx == nil {
				continue
			}
			if best == -1 || idx[0] < bestIdx[0] {
				best = i
				bestIdx = idx
			}
		}
		if best == -1 {
			break
		}
		rule := d.rules.inline[best]
		match := InlineMatch{
			Rule:  rule.name,
			Start: offset + bestIdx[0],
			End:   offset + bestIdx[1],
			Raw:   text[offset+bestIdx[0] : offset+bestIdx[1]],
		}
		match.Content = match.Raw
		if len(bestIdx) >= 4 && bestIdx[2] >= 0 {
			match.Content = text[offset+bestIdx[2] : offset+bestIdx[3]]
		}
		if len(bestIdx) >= 6 && bestIdx[4] >= 0 {
			match.Target = text[offset+bestIdx[4] : offset+bestIdx[5]]
		}
		out = append(out, match)
		if bestIdx[1] == bestIdx[0] {
			offset++
			continue
		}
		offset = match.End
	}
	return out
}

// DefaultRules returns the built-in detection rules. They favor the
// Markdown-ish constructs language models actually emit, including
// **1. Title** pseudo-headers.
func DefaultRules() []DetectionRule {
	return []DetectionRule{
		{Name: RuleCodeFence, Pattern: "^\\s*```(\\w*)", Scope: ScopeBlock},
		{Name: RuleBlockquote, Pattern: `^\s*>`, Scope: ScopeBlock},
		{Name: RuleHeaderNumbered, Pattern: `^\*\*(\d+)\.\s+(.*?)\*\*$`, Scope: ScopeBlock},
		{Name: RuleHeader1, Pattern: `^#\s+(.*)`, Scope: ScopeBlock},
		{Name: RuleHeader2, Pattern: `^##\s+(.*)`, Scope: ScopeBlock},
		{Name: RuleHeader3, Pattern: `^###\s+(.*)`, Scope: ScopeBlock},
		{Name: RuleListBullet, Pattern: `^(\s*)[-*+]\s+(.*)`, Scope: ScopeBlock},
		{Name: RuleListNumbered, Pattern: `^(\s*)\d+\.\s+(.*)`, Scope: ScopeBlock},
		{Name: RuleHorizontalRule, Pattern: `^\s*([-*_]){3,}\s*$`, Scope: ScopeBlock},
		{Name: RuleKeyValue, Pattern: `^\s*([\w\s-]+?)\s*:\s+(.*)`, Scope: ScopeBlock},

		{Name: RuleInlineCode, Pattern: "`(.*?)`", Scope: ScopeInline},
		{Name: RuleInlineBoldStar, Pattern: `\*\*(.*?)\*\*`, Scope: ScopeInline},
		{Name: RuleInlineBoldUnder, Pattern: `__(.*?)__`, Scope: ScopeInline},
		{Name: RuleInlineItalicStar, Pattern: `\*(.*?)\*`, Scope: ScopeInline},
		{Name: RuleInlineItalicUnder, Pattern: `_(.*?)_`, Scope: ScopeInline},
		{Name: RuleInlineLink, Pattern: `\[([^\]]*)\]\(([^\s)]*)\)`, Scope: ScopeInline},
	}
}
