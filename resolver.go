package llmstyle

import (
	"fmt"
	"io"
	"strconv"
)

// BlockConfig describes panel or tree rendering for a structural block.
// Field values are style table names.
type BlockConfig struct {
	Panel        bool
	Tree         bool
	BorderStyle  string
	TitleStyle   string
	ContentStyle string
	GuideStyle   string
	SyntaxTheme  string
	// Padding is horizontal and vertical cell padding inside a panel.
	Padding [2]int
}

// MappingTarget is one mapping table entry: either a style name or a
// block configuration, never both.
type MappingTarget struct {
	StyleName string
	Block     *BlockConfig
}

// Mapping maps rule names to render targets. A "default_text" entry is
// required; the core assumes the config loader enforced that.
type Mapping map[string]MappingTarget

// StyleTable maps style names to parsed definitions.
type StyleTable map[string]StyleDefinition

// StyleResolver resolves mapping and style references to concrete
// styles. Unknown references and failed transforms degrade, they never
// error.
type StyleResolver struct {
	mapping Mapping
	styles  StyleTable
	debug   io.Writer
}

// NewStyleResolver builds a resolver over the given tables. debug may
// be nil.
func NewStyleResolver(mapping Mapping, styles StyleTable, debug io.Writer) *StyleResolver {
	return &StyleResolver{mapping: mapping, styles: styles, debug: debug}
}

// Resolve turns a style name plus an optional base color into a
// concrete style. A transformed definition converts base to HSL and
// adjusts it; when base has no RGB representation the transform is
// skipped and only the attributes survive. Unknown names resolve to
// the inherit-everything style.
func (r *StyleResolver) Resolve(name string, base Color) ConcreteStyle {
	def, ok := r.styles[name]
	if !ok {
		if r.debug != nil && name != "" {
			fmt.Fprintf(r.debug, "llm-style: unknown style %q, inheriting\n", name)
		}
		return ConcreteStyle{}
	}
	return r.resolveDef(def, base)
}

func (r *StyleResolver) resolveDef(def StyleDefinition, base Color) ConcreteStyle {
	cs := ConcreteStyle{
		Foreground:    def.Foreground,
		HasForeground: def.HasForeground,
		Background:    def.Background,
		HasBackground: def.HasBackground,
		Attrs:         def.Attrs,
	}
	if def.Transform == nil {
		return cs
	}
	transformed, ok := def.Transform.Apply(base)
	if !ok {
		if r.debug != nil {
			fmt.Fprintln(r.debug, "llm-style: base color not convertible, transform skipped")
		}
		return cs
	}
	cs.Foreground = transformed
	cs.HasForeground = true
	return cs
}

// Target returns the mapping entry for a rule name, falling back to
// the default_text entry.
func (r *StyleResolver) Target(rule string) MappingTarget {
	if t, ok := r.mapping[rule]; ok {
		return t
	}
	return r.mapping[MappingDefaultText]
}

// ListLevelStyle returns the style name for a list item at the given
// depth. The mapping names a base ("style_list_level"); the per-depth
// entry is base plus the depth digit, wrapping every ten levels, with
// the level-zero entry as fallback.
func (r *StyleResolver) ListLevelStyle(base string, depth int) string {
	if depth < 0 {
		depth = 0
	}
	name := base + strconv.Itoa(depth%10)
	if _, ok := r.styles[name]; ok {
		return name
	}
	return base + "0"
}

// DefaultTextStyle resolves the mandatory fallback style.
func (r *StyleResolver) DefaultTextStyle() ConcreteStyle {
	return r.Resolve(r.Target(MappingDefaultText).StyleName, TerminalDefault)
}
