package llmstyle

import "io"

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	osc8        bool
	keepMarkup  bool
	indentUnit  int
	debug       io.Writer
	highlighter Highlighter
}

// WithOSC8 enables or disables OSC 8 hyperlinks.
func WithOSC8(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.osc8 = enabled
	}
}

// WithKeepMarkup keeps the source delimiter characters (asterisks,
// backticks, underscores) visible in styled output.
func WithKeepMarkup(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.keepMarkup = enabled
	}
}

// WithIndentUnit sets the number of leading spaces per list nesting
// level. Values below one keep the default.
func WithIndentUnit(spaces int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.indentUnit = spaces
	}
}

// WithDebug directs per-line diagnostic messages (dropped rules,
// skipped transforms) to w. Diagnostics never interrupt rendering.
func WithDebug(w io.Writer) RenderOption {
	return func(cfg *renderConfig) {
		cfg.debug = w
	}
}

// WithHighlighter sets the syntax-highlighting collaborator for
// code-fence content. Nil disables highlighting.
func WithHighlighter(h Highlighter) RenderOption {
	return func(cfg *renderConfig) {
		cfg.highlighter = h
	}
}
