package llmstyle

import (
	"io"
	"strings"
)

// RenderUnitKind discriminates the Compositor's output primitives.
type RenderUnitKind uint8

const (
	// UnitLine is one styled text line, optionally guide-prefixed.
	UnitLine RenderUnitKind = iota
	// UnitPanel is a bordered box wrapping nested content.
	UnitPanel
	// UnitRule is a full-width horizontal rule.
	UnitRule
	// UnitBlank is an empty output line.
	UnitBlank
)

// StyledSegment is a run of text under one concrete style. Link, when
// set, is an OSC 8 hyperlink target.
type StyledSegment struct {
	Text  string
	Style ConcreteStyle
	Link  string
}

// Panel is the payload of a UnitPanel render unit. Raw, when non-nil,
// holds pre-styled content lines (syntax highlighter output) that the
// renderer must emit verbatim instead of styling Lines.
type Panel struct {
	Title      string
	TitleStyle ConcreteStyle
	Border     ConcreteStyle
	Padding    [2]int
	Lines      []RenderUnit
	Raw        []string
}

// RenderUnit is the Compositor's output primitive: a styled line, a
// panel, a rule, or a blank. The renderer consumes the ordered sequence.
type RenderUnit struct {
	Kind       RenderUnitKind
	Guide      string
	GuideStyle ConcreteStyle
	RuleStyle  ConcreteStyle
	Segments   []StyledSegment
	Panel      *Panel
}

// Highlighter is the optional syntax-highlighting collaborator for
// code-fence content. Highlight returns pre-styled lines and true, or
// false when the language is unsupported.
type Highlighter interface {
	Highlight(code, lang string) ([]string, bool)
}

// Compositor walks a Document and resolves every block and span to
// render units.
type Compositor struct {
	resolver    *StyleResolver
	inline      *InlineResolver
	highlighter Highlighter
	debug       io.Writer
}

// NewCompositor builds a Compositor. highlighter and debug may be nil.
func NewCompositor(resolver *StyleResolver, inline *InlineResolver, highlighter Highlighter, debug io.Writer) *Compositor {
	return &Compositor{resolver: resolver, inline: inline, highlighter: highlighter, debug: debug}
}

// Compose produces the ordered render units for a document. Input
// order is preserved exactly; nothing is dropped or reordered.
func (c *Compositor) Compose(doc *Document) []RenderUnit {
	var units []RenderUnit
	for i := 0; i < len(doc.Blocks); i++ {
		block := doc.Blocks[i]
		if block.Kind != BlockListItem {
			units = c.composeBlock(units, block)
			continue
		}
		// Consecutive top-level list items form one tree; the run end
		// decides which item gets the corner connector.
		j := i
		for j+1 < len(doc.Blocks) && doc.Blocks[j+1].Kind == BlockListItem {
			j++
		}
		for k := i; k <= j; k++ {
			units = c.composeList(units, doc.Blocks[k], nil, k == j)
		}
		i = j
	}
	return units
}

func (c *Compositor) composeBlock(units []RenderUnit, block *Block) []RenderUnit {
	switch block.Kind {
	case BlockBlank:
		return append(units, RenderUnit{Kind: UnitBlank})
	case BlockThematicBreak:
		style := c.resolver.Resolve(c.resolver.Target(block.Rule).StyleName, TerminalDefault)
		return append(units, RenderUnit{Kind: UnitRule, RuleStyle: style})
	case BlockHeader:
		return append(units, c.textLines(block, c.blockStyle(block))...)
	case BlockParagraph:
		return append(units, c.textLines(block, c.blockStyle(block))...)
	case BlockBlockquote:
		return append(units, c.composeQuote(block))
	case BlockCodeFence:
		return append(units, c.composeFence(block))
	case BlockListItem:
		return c.composeList(units, block, nil, true)
	default:
		return units
	}
}

func (c *Compositor) blockStyle(block *Block) ConcreteStyle {
	return c.resolver.Resolve(c.resolver.Target(block.Rule).StyleName, TerminalDefault)
}

// textLines resolves a block's raw lines to styled line units, running
// inline resolution over each line.
func (c *Compositor) textLines(block *Block, base ConcreteStyle) []RenderUnit {
	units := make([]RenderUnit, 0, len(block.RawLines))
	for _, line := range block.RawLines {
		units = append(units, RenderUnit{Kind: UnitLine, Segments: c.lineSegments(line, base)})
	}
	return units
}

func (c *Compositor) lineSegments(line string, base ConcreteStyle) []StyledSegment {
	spans := c.inline.Resolve(line)
	if len(spans) == 0 {
		return nil
	}
	baseColor := TerminalDefault
	if base.HasForeground {
		baseColor = base.Foreground
	}
	segments := make([]StyledSegment, 0, len(spans))
	for _, sp := range spans {
		seg := StyledSegment{Text: sp.Text, Style: base}
		if sp.Kind == SpanLink {
			seg.Link = sp.Target
		}
		if sp.Rule != "" {
			inline := c.resolver.Resolve(c.inlineStyleName(sp), baseColor)
			seg.Style = overlay(base, inline)
		}
		segments = append(segments, seg)
	}
	return segments
}

// inlineStyleName picks the style table entry for a span: an explicit
// mapping entry for the rule wins, otherwise the conventional name for
// the span's kind.
func (c *Compositor) inlineStyleName(sp Span) string {
	if t, ok := c.resolver.mapping[sp.Rule]; ok && t.StyleName != "" {
		return t.StyleName
	}
	switch sp.Kind {
	case SpanCode:
		return "style_inline_code"
	case SpanBold:
		return "style_inline_bold"
	case SpanItalic:
		return "style_inline_italic"
	case SpanLink:
		return "style_inline_link"
	default:
		return ""
	}
}

func (c *Compositor) composeQuote(block *Block) RenderUnit {
	cfg := blockConfigFor(c.resolver.Target("blockquote"))
	content := c.resolver.Resolve(cfg.ContentStyle, TerminalDefault)
	panel := &Panel{
		Border:  c.resolver.Resolve(cfg.BorderStyle, TerminalDefault),
		Padding: cfg.Padding,
	}
	for _, line := range block.RawLines {
		panel.Lines = append(panel.Lines, RenderUnit{Kind: UnitLine, Segments: c.lineSegments(line, content)})
	}
	return RenderUnit{Kind: UnitPanel, Panel: panel}
}

// composeFence wraps fence content in a panel. Content is verbatim:
// inline rules never run inside a fence. The highlighter gets first
// shot; on unsupported languages the lines pass through unstyled.
func (c *Compositor) composeFence(block *Block) RenderUnit {
	cfg := blockConfigFor(c.resolver.Target("code_block"))
	panel := &Panel{
		Title:      block.Lang,
		TitleStyle: c.resolver.Resolve(cfg.TitleStyle, TerminalDefault),
		Border:     c.resolver.Resolve(cfg.BorderStyle, TerminalDefault),
		Padding:    cfg.Padding,
	}
	if c.highlighter != nil && block.Lang != "" {
		if lines, ok := c.highlighter.Highlight(strings.Join(block.RawLines, "\n"), block.Lang); ok {
			panel.Raw = lines
			return RenderUnit{Kind: UnitPanel, Panel: panel}
		}
	}
	for _, line := range block.RawLines {
		panel.Lines = append(panel.Lines, RenderUnit{
			Kind:     UnitLine,
			Segments: []StyledSegment{{Text: line}},
		})
	}
	return RenderUnit{Kind: UnitPanel, Panel: panel}
}

// composeList emits a list item and its children as guide-prefixed
// lines. ancestors records, per enclosing depth, whether that ancestor
// was the last sibling, which picks the continuation column glyph.
func (c *Compositor) composeList(units []RenderUnit, block *Block, ancestors []bool, last bool) []RenderUnit {
	guideCfg := blockConfigFor(c.resolver.Target("list_block"))
	guideStyle := c.resolver.Resolve(guideCfg.GuideStyle, TerminalDefault)

	target := c.resolver.Target(block.Rule)
	styleName := c.resolver.ListLevelStyle(target.StyleName, block.Depth)
	itemStyle := c.resolver.Resolve(styleName, TerminalDefault)

	guide := guidePrefix(ancestors, last)
	for i, line := range block.RawLines {
		prefix := guide
		if i > 0 {
			prefix = continuationPrefix(ancestors, last)
		}
		units = append(units, RenderUnit{
			Kind:       UnitLine,
			Guide:      prefix,
			GuideStyle: guideStyle,
			Segments:   c.lineSegments(line, itemStyle),
		})
	}
	childAncestors := append(append([]bool(nil), ancestors...), last)
	for i, child := range block.Children {
		units = c.composeList(units, child, childAncestors, i == len(block.Children)-1)
	}
	return units
}

func guidePrefix(ancestors []bool, last bool) string {
	var b strings.Builder
	for _, wasLast := range ancestors {
		if wasLast {
			b.WriteString("   ")
		} else {
			b.WriteString("│  ")
		}
	}
	if last {
		b.WriteString("└─ ")
	} else {
		b.WriteString("├─ ")
	}
	return b.String()
}

func continuationPrefix(ancestors []bool, last bool) string {
	var b strings.Builder
	for _, wasLast := range ancestors {
		if wasLast {
			b.WriteString("   ")
		} else {
			b.WriteString("│  ")
		}
	}
	if last {
		b.WriteString("   ")
	} else {
		b.WriteString("│  ")
	}
	return b.String()
}

func overlay(base, top ConcreteStyle) ConcreteStyle {
	out := base
	out.Attrs |= top.Attrs
	if top.HasForeground {
		out.Foreground = top.Foreground
		out.HasForeground = true
	}
	if top.HasBackground {
		out.Background = top.Background
		out.HasBackground = true
	}
	return out
}

func blockConfigFor(t MappingTarget) BlockConfig {
	if t.Block != nil {
		return *t.Block
	}
	return BlockConfig{}
}
