package llmstyle

import "strings"

// SpanKind identifies the semantic role of an inline Span.
type SpanKind uint8

const (
	SpanPlain SpanKind = iota
	SpanCode
	SpanBold
	SpanItalic
	SpanLink
)

// Span is one run of text with a single inline classification. Spans
// for one line are contiguous and non-overlapping; concatenating the
// Raw of every span reproduces the input line exactly.
type Span struct {
	Kind SpanKind
	// Rule is the inline rule that produced the span, empty for plain text.
	Rule string
	// Raw is the span as it appeared in the input, markers included.
	Raw string
	// Text is the content with markers stripped.
	Text string
	// Target is the link destination for SpanLink spans.
	Target string
}

// InlineResolver splits lines into styled spans using a Detector's
// inline rules. Inline resolution never nests: the leftmost match wins
// and scanning resumes after it.
type InlineResolver struct {
	det        *Detector
	keepMarkup bool
}

// NewInlineResolver returns a resolver over det's inline rules. When
// keepMarkup is true, spans keep their source markers in Text.
func NewInlineResolver(det *Detector, keepMarkup bool) *InlineResolver {
	return &InlineResolver{det: det, keepMarkup: keepMarkup}
}

// Resolve splits text into spans. Text with no inline matches yields a
// single plain span; an empty string yields no spans.
func (r *InlineResolver) Resolve(text string) []Span {
	if text == "" {
		return nil
	}
	matches := r.det.FindInline(text)
	if len(matches) == 0 {
		return []Span{{Kind: SpanPlain, Raw: text, Text: text}}
	}
	spans := make([]Span, 0, 2*len(matches)+1)
	pos := 0
	for _, mt := range matches {
		if mt.Start > pos {
			gap := text[pos:mt.Start]
			spans = append(spans, Span{Kind: SpanPlain, Raw: gap, Text: gap})
		}
		spans = append(spans, r.spanFor(mt))
		pos = mt.End
	}
	if pos < len(text) {
		tail := text[pos:]
		spans = append(spans, Span{Kind: SpanPlain, Raw: tail, Text: tail})
	}
	return spans
}

func (r *InlineResolver) spanFor(mt InlineMatch) Span {
	sp := Span{Rule: mt.Rule, Raw: mt.Raw, Text: mt.Content, Target: mt.Target}
	switch {
	case mt.Rule == RuleInlineCode:
		sp.Kind = SpanCode
	case mt.Rule == RuleInlineLink:
		sp.Kind = SpanLink
	case strings.HasPrefix(mt.Rule, "inline_bold"):
		sp.Kind = SpanBold
	case strings.HasPrefix(mt.Rule, "inline_italic"):
		sp.Kind = SpanItalic
	default:
		// Unknown inline rules style by name but render their raw text.
		sp.Kind = SpanPlain
		sp.Text = mt.Raw
	}
	if r.keepMarkup {
		sp.Text = mt.Raw
	}
	return sp
}
