package llmstyle

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
)

// defaultRuleWidth is the horizontal rule width when no terminal width
// is known.
const defaultRuleWidth = 80

// Renderer draws render units to an output stream as ANSI text. All
// conversion from the neutral Color union to terminal colors happens
// here and nowhere earlier in the pipeline.
type Renderer struct {
	w     io.Writer
	width int
	osc8  bool
}

// NewRenderer returns a renderer writing to w. width <= 0 disables
// wrapping and panel sizing.
func NewRenderer(w io.Writer, width int, osc8 bool) *Renderer {
	return &Renderer{w: w, width: width, osc8: osc8}
}

// RenderUnits draws the ordered unit sequence.
func (r *Renderer) RenderUnits(units []RenderUnit) error {
	for _, unit := range units {
		if err := r.renderUnit(unit); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderUnit(unit RenderUnit) error {
	switch unit.Kind {
	case UnitBlank:
		_, err := fmt.Fprintln(r.w)
		return err
	case UnitRule:
		width := r.width
		if width <= 0 {
			width = defaultRuleWidth
		}
		line := lipglossStyle(unit.RuleStyle).Render(strings.Repeat("─", width))
		_, err := fmt.Fprintln(r.w, line)
		return err
	case UnitPanel:
		return r.renderPanel(unit.Panel)
	default:
		_, err := fmt.Fprintln(r.w, r.lineString(unit))
		return err
	}
}

// lineString renders one UnitLine to a single ANSI string.
func (r *Renderer) lineString(unit RenderUnit) string {
	var b strings.Builder
	if unit.Guide != "" {
		b.WriteString(lipglossStyle(unit.GuideStyle).Render(unit.Guide))
	}
	for _, seg := range unit.Segments {
		text := lipglossStyle(seg.Style).Render(seg.Text)
		if seg.Link != "" && r.osc8 {
			text = osc8Link(seg.Link, text)
		}
		b.WriteString(text)
	}
	line := b.String()
	if r.width > 0 && unit.Guide == "" {
		line = wordwrap.String(line, r.width)
	}
	return line
}

func (r *Renderer) renderPanel(p *Panel) error {
	content := p.Raw
	if content == nil {
		content = make([]string, 0, len(p.Lines))
		for _, unit := range p.Lines {
			content = append(content, r.lineString(unit))
		}
	}

	hpad, vpad := p.Padding[0], p.Padding[1]
	if hpad <= 0 {
		hpad = 1
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipglossColor(p.Border.Foreground)).
		Padding(vpad, hpad)
	if r.width > 2 {
		box = box.Width(r.width - 2)
	}
	rendered := box.Render(strings.Join(content, "\n"))
	lines := strings.Split(rendered, "\n")
	if p.Title != "" && len(lines) > 0 {
		if top, ok := titledBorder(p, ansi.PrintableRuneWidth(lines[0])); ok {
			lines[0] = top
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

// titledBorder rebuilds a panel's top border with the title embedded,
// mirroring the total width of the untitled border line.
func titledBorder(p *Panel, width int) (string, bool) {
	border := lipglossStyle(p.Border)
	title := lipglossStyle(p.TitleStyle).Render(" " + p.Title + " ")
	rest := width - 3 - ansi.PrintableRuneWidth(title)
	if rest < 0 {
		return "", false
	}
	return border.Render("╭─") + title + border.Render(strings.Repeat("─", rest)+"╮"), true
}

// lipglossStyle converts a concrete style to a lipgloss style.
func lipglossStyle(cs ConcreteStyle) lipgloss.Style {
	sty := lipgloss.NewStyle()
	if cs.HasForeground {
		sty = sty.Foreground(lipglossColor(cs.Foreground))
	}
	if cs.HasBackground {
		sty = sty.Background(lipglossColor(cs.Background))
	}
	if cs.Attrs.Has(AttrBold) {
		sty = sty.Bold(true)
	}
	if cs.Attrs.Has(AttrItalic) {
		sty = sty.Italic(true)
	}
	if cs.Attrs.Has(AttrUnderline) {
		sty = sty.Underline(true)
	}
	if cs.Attrs.Has(AttrDim) {
		sty = sty.Faint(true)
	}
	if cs.Attrs.Has(AttrStrikethrough) {
		sty = sty.Strikethrough(true)
	}
	if cs.Attrs.Has(AttrReverse) {
		sty = sty.Reverse(true)
	}
	return sty
}

func lipglossColor(c Color) lipgloss.TerminalColor {
	switch c.Model {
	case ColorRGB:
		return lipgloss.Color(c.Hex())
	case ColorNamed, ColorIndexed:
		return lipgloss.Color(strconv.Itoa(int(c.Index)))
	default:
		return lipgloss.NoColor{}
	}
}
