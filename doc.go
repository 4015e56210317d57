// Package llmstyle styles loosely structured, Markdown-like text for
// terminal display.
//
// The input does not have to be valid Markdown: headers, emphasis, code
// fences, blockquotes and nested lists are recognized on a best-effort
// basis, which makes the package suitable for piping raw language-model
// output through. Classification is rule-driven: an ordered set of
// regular-expression rules maps lines (and inline runs) to named
// classifications, a block state machine assembles the classified lines
// into a document tree, and a style table maps rule names to concrete
// render styles. Styles are plain color/attribute strings or colorimetric
// transforms (brightness, saturation, hue shift) applied relative to a
// base color in HSL space.
//
// Core properties:
//   - Single pass over input lines; output order equals input order
//   - Malformed input degrades, it never aborts the pipeline
//   - Code fence content passes through verbatim (no inline styling)
//   - Rules, mapping and styles are loaded once and held immutably
//
// Example:
//
//	reader := strings.NewReader("# Hello\nSome **bold** text.\n")
//	err := llmstyle.Render(llmstyle.RenderRequest{
//		Reader: reader,
//		Writer: os.Stdout,
//		Width:  80,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Rendering can be customized with Options such as WithKeepMarkup or
// WithOSC8 hyperlink support.
package llmstyle
