package llmstyle

import (
	"io"
	"strings"
)

// BlockKind identifies the structural role of a Block.
type BlockKind uint8

const (
	// BlockParagraph is plain (or single-rule classified) text.
	BlockParagraph BlockKind = iota
	// BlockHeader is a header line; Level carries 1..6.
	BlockHeader
	// BlockBlockquote is a run of merged quote lines.
	BlockBlockquote
	// BlockCodeFence is verbatim fenced content; Lang carries the hint.
	BlockCodeFence
	// BlockListItem is one list item; Depth and Ordered describe it.
	BlockListItem
	// BlockThematicBreak is a horizontal rule.
	BlockThematicBreak
	// BlockBlank is a blank input line, preserved for vertical rhythm.
	BlockBlank
)

// Block is one node of the document tree. A Block exclusively owns its
// children; nesting is a pure tree.
type Block struct {
	Kind     BlockKind
	Rule     string
	Level    int
	Lang     string
	Ordered  bool
	Depth    int
	RawLines []string
	Children []*Block
}

// Document is the ordered sequence of top-level blocks for one input.
type Document struct {
	Blocks []*Block
}

// BlockStateMachine assembles per-line classifications into a Document.
// Feed never errors: malformed indentation and unterminated fences
// degrade to the nearest sensible structure, input is never lost.
type BlockStateMachine struct {
	det        *Detector
	indentUnit int
	debug      io.Writer

	doc   Document
	fence *Block
	quote *Block
	para  *Block
	// listStack[i] is the open list item at depth i.
	listStack []*Block
}

// DefaultIndentUnit is the number of leading spaces per list nesting level.
const DefaultIndentUnit = 2

// NewBlockStateMachine returns a machine using the given detector.
// indentUnit <= 0 falls back to DefaultIndentUnit.
func NewBlockStateMachine(det *Detector, indentUnit int, debug io.Writer) *BlockStateMachine {
	if indentUnit <= 0 {
		indentUnit = DefaultIndentUnit
	}
	return &BlockStateMachine{det: det, indentUnit: indentUnit, debug: debug}
}

// Feed consumes the next input line.
func (m *BlockStateMachine) Feed(line string) {
	if m.fence != nil {
		if cls, ok := m.det.ClassifyBlock(line); ok && cls.Rule == RuleCodeFence {
			m.fence = nil
			return
		}
		m.fence.RawLines = append(m.fence.RawLines, line)
		return
	}

	if strings.TrimSpace(line) == "" {
		m.closeAll()
		m.doc.Blocks = append(m.doc.Blocks, &Block{Kind: BlockBlank})
		return
	}

	cls, ok := m.det.ClassifyBlock(line)
	if !ok {
		m.classifyText(MappingDefaultText, line)
		return
	}

	switch cls.Rule {
	case RuleCodeFence:
		m.closeQuote()
		m.closePara()
		lang := ""
		if len(cls.Captures) > 1 {
			lang = cls.Captures[1]
		}
		block := &Block{Kind: BlockCodeFence, Rule: "code_block", Lang: lang}
		m.attach(block)
		m.fence = block
	case RuleBlockquote:
		m.closePara()
		m.closeLists()
		if m.quote == nil {
			m.quote = &Block{Kind: BlockBlockquote, Rule: "blockquote"}
			m.doc.Blocks = append(m.doc.Blocks, m.quote)
		}
		m.quote.RawLines = append(m.quote.RawLines, stripQuoteMarker(line))
	case RuleHeaderNumbered:
		m.closeAll()
		text := line
		if len(cls.Captures) > 2 {
			text = cls.Captures[1] + ". " + cls.Captures[2]
		}
		m.doc.Blocks = append(m.doc.Blocks, &Block{
			Kind: BlockHeader, Rule: cls.Rule, RawLines: []string{text},
		})
	case RuleHeader1, RuleHeader2, RuleHeader3:
		m.closeAll()
		level := int(cls.Rule[len(cls.Rule)-1] - '0')
		text := line
		if len(cls.Captures) > 1 {
			text = cls.Captures[1]
		}
		m.doc.Blocks = append(m.doc.Blocks, &Block{
			Kind: BlockHeader, Rule: cls.Rule, Level: level, RawLines: []string{text},
		})
	case RuleHorizontalRule:
		m.closeAll()
		m.doc.Blocks = append(m.doc.Blocks, &Block{Kind: BlockThematicBreak, Rule: cls.Rule})
	case RuleListBullet, RuleListNumbered:
		m.closeQuote()
		m.closePara()
		m.feedListItem(cls)
	default:
		m.classifyText(cls.Rule, line)
	}
}

// Finish closes all remaining open contexts and returns the Document.
// An unterminated code fence is implicitly closed; its accumulated lines
// are kept.
func (m *BlockStateMachine) Finish() *Document {
	m.fence = nil
	m.closeAll()
	doc := m.doc
	m.doc = Document{}
	return &doc
}

func (m *BlockStateMachine) feedListItem(cls Classification) {
	indent, content := "", ""
	if len(cls.Captures) > 2 {
		indent = cls.Captures[1]
		content = cls.Captures[2]
	}
	ordered := cls.Rule == RuleListNumbered
	depth := len(expandTabs(indent)) / m.indentUnit
	// One push per level: over-indented items clamp to one level below
	// the current top, anything shallower pops to the matching depth.
	if depth > len(m.listStack) {
		depth = len(m.listStack)
	}
	m.listStack = m.listStack[:depth]

	item := &Block{
		Kind:     BlockListItem,
		Rule:     cls.Rule,
		Ordered:  ordered,
		Depth:    depth,
		RawLines: []string{content},
	}
	if depth == 0 {
		m.doc.Blocks = append(m.doc.Blocks, item)
	} else {
		parent := m.listStack[depth-1]
		parent.Children = append(parent.Children, item)
	}
	m.listStack = append(m.listStack, item)
}

func (m *BlockStateMachine) classifyText(rule, line string) {
	m.closeQuote()
	m.closeLists()
	if rule == MappingDefaultText && m.para != nil {
		m.para.RawLines = append(m.para.RawLines, line)
		return
	}
	m.closePara()
	block := &Block{Kind: BlockParagraph, Rule: rule, RawLines: []string{line}}
	m.doc.Blocks = append(m.doc.Blocks, block)
	if rule == MappingDefaultText {
		m.para = block
	}
}

func (m *BlockStateMachine) attach(block *Block) {
	m.closeLists()
	m.doc.Blocks = append(m.doc.Blocks, block)
}

func (m *BlockStateMachine) closeAll() {
	m.closeQuote()
	m.closePara()
	m.closeLists()
}

func (m *BlockStateMachine) closeQuote() { m.quote = nil }
func (m *BlockStateMachine) closePara()  { m.para = nil }
func (m *BlockStateMachine) closeLists() { m.listStack = m.listStack[:0] }

// stripQuoteMarker removes the leading "> " marker (one level) from a
// quote line, keeping the rest verbatim.
func stripQuoteMarker(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i < len(line) && line[i] == '>' {
		i++
		if i < len(line) && line[i] == ' ' {
			i++
		}
	}
	return line[i:]
}

func expandTabs(indent string) string {
	if !strings.ContainsRune(indent, '\t') {
		return indent
	}
	return strings.ReplaceAll(indent, "\t", "    ")
}
