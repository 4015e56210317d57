package llmstyle

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ChromaHighlighter highlights code-fence content with chroma's
// terminal formatter. The zero value uses chroma's fallback style.
type ChromaHighlighter struct {
	// Theme is a chroma style name ("monokai", "github"). Unknown names
	// fall back to chroma's default.
	Theme string
}

// NewChromaHighlighter returns a highlighter using the named theme.
func NewChromaHighlighter(theme string) *ChromaHighlighter {
	return &ChromaHighlighter{Theme: theme}
}

// Highlight renders code as ANSI-styled lines. It reports false for
// unknown languages so callers can fall back to plain text.
func (h *ChromaHighlighter) Highlight(code, lang string) ([]string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, false
	}
	lexer = chroma.Coalesce(lexer)
	style := styles.Get(h.Theme)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return nil, false
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, false
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return nil, false
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return strings.Split(out, "\n"), true
}
