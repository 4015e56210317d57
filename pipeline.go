package llmstyle

import (
	"bufio"
	"fmt"
	"io"
)

// RenderRequest configures Render. Nil Rules, Mapping, or Styles fall
// back to the built-in defaults.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Rules   []DetectionRule
	Mapping Mapping
	Styles  StyleTable
	Options []RenderOption
}

// ParseRequest configures Parse.
type ParseRequest struct {
	Reader  io.Reader
	Rules   []DetectionRule
	Options []RenderOption
}

// Render styles loosely Markdown-like text from a stream and writes
// the result. Structural and per-line failures are absorbed; the only
// errors are nil endpoints, a mapping without default_text, and I/O.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := applyOptions(req.Options)

	mapping := req.Mapping
	if mapping == nil {
		mapping = DefaultMapping()
	}
	if _, ok := mapping[MappingDefaultText]; !ok {
		return fmt.Errorf("render: mapping has no %s entry", MappingDefaultText)
	}
	styles := req.Styles
	if styles == nil {
		styles = DefaultStyles()
	}

	det := NewDetector(CompileRules(rulesOrDefault(req.Rules), cfg.debug))
	doc, err := parseWith(det, req.Reader, cfg)
	if err != nil {
		return err
	}

	inline := NewInlineResolver(det, cfg.keepMarkup)
	resolver := NewStyleResolver(mapping, styles, cfg.debug)
	comp := NewCompositor(resolver, inline, highlighterFor(cfg, mapping), cfg.debug)
	units := comp.Compose(doc)

	return NewRenderer(req.Writer, req.Width, cfg.osc8).RenderUnits(units)
}

// Parse classifies a stream into a Document without rendering it.
func Parse(req ParseRequest) (*Document, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("parse: reader is nil")
	}
	cfg := applyOptions(req.Options)
	det := NewDetector(CompileRules(rulesOrDefault(req.Rules), cfg.debug))
	return parseWith(det, req.Reader, cfg)
}

func parseWith(det *Detector, r io.Reader, cfg renderConfig) (*Document, error) {
	machine := NewBlockStateMachine(det, cfg.indentUnit, cfg.debug)
	var fm frontMatterFilter

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		for _, line := range fm.Feed(scanner.Text()) {
			machine.Feed(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse: read input: %w", err)
	}
	for _, line := range fm.Finish() {
		machine.Feed(line)
	}
	return machine.Finish(), nil
}

func applyOptions(opts []RenderOption) renderConfig {
	var cfg renderConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func rulesOrDefault(rules []DetectionRule) []DetectionRule {
	if rules == nil {
		return DefaultRules()
	}
	return rules
}

// highlighterFor falls back to a chroma highlighter when the code
// block mapping names a syntax theme and no collaborator was supplied.
func highlighterFor(cfg renderConfig, mapping Mapping) Highlighter {
	if cfg.highlighter != nil {
		return cfg.highlighter
	}
	if t, ok := mapping["code_block"]; ok && t.Block != nil && t.Block.SyntaxTheme != "" {
		return NewChromaHighlighter(t.Block.SyntaxTheme)
	}
	return nil
}

// mustStyle parses a built-in style string, panicking on programmer
// error in the default tables.
func mustStyle(s string) StyleDefinition {
	def, err := ParseStyle(s)
	if err != nil {
		panic(err)
	}
	return def
}

// DefaultMapping returns the built-in rule-to-target mapping.
func DefaultMapping() Mapping {
	return Mapping{
		"code_block": {Block: &BlockConfig{
			Panel:       true,
			BorderStyle: "style_code_panel_border",
			TitleStyle:  "style_code_panel_title",
			SyntaxTheme: "monokai",
		}},
		"blockquote": {Block: &BlockConfig{
			Panel:        true,
			BorderStyle:  "style_quote_panel_border",
			ContentStyle: "style_blockquote_content",
		}},
		"list_block": {Block: &BlockConfig{
			Tree:       true,
			GuideStyle: "style_list_guide",
		}},
		RuleHeaderNumbered: {StyleName: "style_header_numbered"},
		RuleHeader1:        {StyleName: "style_header1"},
		RuleHeader2:        {StyleName: "style_header2"},
		RuleHeader3:        {StyleName: "style_header3"},
		RuleHorizontalRule: {StyleName: "style_hr"},
		RuleKeyValue:       {StyleName: "style_key_value_line"},
		RuleListBullet:     {StyleName: "style_list_level"},
		RuleListNumbered:   {StyleName: "style_list_level"},
		MappingDefaultText: {StyleName: "style_default"},
	}
}

// DefaultStyles returns the built-in style table.
func DefaultStyles() StyleTable {
	return StyleTable{
		"style_code_panel_border":  mustStyle("dim blue"),
		"style_code_panel_title":   mustStyle("italic blue"),
		"style_quote_panel_border": mustStyle("dim yellow"),
		"style_blockquote_content": mustStyle("italic yellow"),
		"style_list_guide":         mustStyle("dim cyan"),

		"style_header_numbered": mustStyle("bold magenta"),
		"style_header1":         mustStyle("bold bright_blue underline"),
		"style_header2":         mustStyle("bold blue"),
		"style_header3":         mustStyle("bold cyan"),
		"style_hr":              mustStyle("dim"),
		"style_key_value_line":  mustStyle("default"),

		"style_list_level0": mustStyle("green"),
		"style_list_level1": mustStyle("light_sea_green"),
		"style_list_level2": mustStyle("medium_spring_green"),
		"style_list_level3": mustStyle("spring_green1"),

		"style_inline_bold":   mustStyle("bold"),
		"style_inline_italic": mustStyle("italic"),
		"style_inline_code":   mustStyle("bright_black on grey30"),

		"style_default": mustStyle("tan"),
	}
}
