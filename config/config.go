// Package config loads the detection, mapping, and style tables from a
// JSON config directory, seeding it with defaults on first run. The
// core pipeline receives only the already-validated tables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	llmstyle "github.com/gagin/llm-style"
)

// ErrMissingDefaultText reports a mapping table without the mandatory
// default_text entry.
var ErrMissingDefaultText = errors.New("mapping has no default_text entry")

const (
	detectionFile = "detection.json"
	mappingFile   = "mapping.json"
	stylesFile    = "styles.json"
)

// Config holds the three loaded tables, ready for the pipeline.
type Config struct {
	Rules   []llmstyle.DetectionRule
	Mapping llmstyle.Mapping
	Styles  llmstyle.StyleTable
}

// DefaultDir returns the per-user config directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "llm-style"), nil
}

// Load reads the config tables from dir, creating the directory and
// any missing file with defaults first. Unparseable JSON and a missing
// default_text mapping are fatal; individually bad entries are dropped
// with a note on debug. debug may be nil.
func Load(dir string, debug io.Writer) (*Config, error) {
	dir, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("config: create %s: %w", dir, err)
	}

	var rawRules map[string]string
	if err := loadOrCreate(filepath.Join(dir, detectionFile), defaultDetection, &rawRules); err != nil {
		return nil, err
	}
	var rawMapping map[string]json.RawMessage
	if err := loadOrCreate(filepath.Join(dir, mappingFile), defaultMapping, &rawMapping); err != nil {
		return nil, err
	}
	var rawStyles map[string]json.RawMessage
	if err := loadOrCreate(filepath.Join(dir, stylesFile), defaultStyles, &rawStyles); err != nil {
		return nil, err
	}

	cfg := &Config{
		Rules:   parseRules(rawRules),
		Mapping: llmstyle.Mapping{},
		Styles:  llmstyle.StyleTable{},
	}
	for name, raw := range rawStyles {
		def, err := parseStyleEntry(raw)
		if err != nil {
			if debug != nil {
				fmt.Fprintf(debug, "llm-style: dropping style %q: %v\n", name, err)
			}
			continue
		}
		cfg.Styles[name] = def
	}
	for rule, raw := range rawMapping {
		target, err := parseMappingEntry(raw)
		if err != nil {
			if debug != nil {
				fmt.Fprintf(debug, "llm-style: dropping mapping for %q: %v\n", rule, err)
			}
			continue
		}
		cfg.Mapping[rule] = target
	}

	def, ok := cfg.Mapping[llmstyle.MappingDefaultText]
	if !ok {
		return nil, fmt.Errorf("config: %s: %w", mappingFile, ErrMissingDefaultText)
	}
	if _, ok := cfg.Styles[def.StyleName]; !ok {
		return nil, fmt.Errorf("config: %s style %q not defined in %s", llmstyle.MappingDefaultText, def.StyleName, stylesFile)
	}
	return cfg, nil
}

func expandHome(dir string) (string, error) {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: resolve home dir: %w", err)
		}
		return filepath.Join(home, dir[1:]), nil
	}
	return dir, nil
}

// loadOrCreate reads one JSON file into out, writing defaultContent
// first when the file does not exist.
func loadOrCreate(path string, defaultContent any, out any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		data, err = json.MarshalIndent(defaultContent, "", "  ")
		if err != nil {
			return fmt.Errorf("config: encode defaults for %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("config: write %s: %w", path, err)
		}
	} else if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: invalid JSON in %s: %w", path, err)
	}
	return nil
}

// parseRules splits the flat name-to-pattern table into scoped rules.
// The "inline_" name prefix marks inline scope, as in the default table.
func parseRules(raw map[string]string) []llmstyle.DetectionRule {
	rules := make([]llmstyle.DetectionRule, 0, len(raw))
	for name, pattern := range raw {
		scope := llmstyle.ScopeBlock
		if strings.HasPrefix(name, "inline_") {
			scope = llmstyle.ScopeInline
		}
		rules = append(rules, llmstyle.DetectionRule{Name: name, Pattern: pattern, Scope: scope})
	}
	return rules
}

// styleObject is the on-disk form of a transformed style.
type styleObject struct {
	Attributes string         `json:"attributes"`
	Transform  *transformJSON `json:"transform,omitempty"`
}

type transformJSON struct {
	AdjustBrightness float64 `json:"adjust_brightness,omitempty"`
	AdjustSaturation float64 `json:"adjust_saturation,omitempty"`
	ShiftHue         float64 `json:"shift_hue,omitempty"`
}

// parseStyleEntry accepts either a plain style string or an object with
// attributes and an optional HSL transform.
func parseStyleEntry(raw json.RawMessage) (llmstyle.StyleDefinition, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return llmstyle.ParseStyle(s)
	}
	var obj styleObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return llmstyle.StyleDefinition{}, fmt.Errorf("neither string nor object: %w", err)
	}
	def, err := llmstyle.ParseStyle(obj.Attributes)
	if err != nil {
		return llmstyle.StyleDefinition{}, err
	}
	if obj.Transform != nil {
		def = def.WithTransform(llmstyle.ColorTransform{
			AdjustBrightness: obj.Transform.AdjustBrightness,
			AdjustSaturation: obj.Transform.AdjustSaturation,
			ShiftHue:         obj.Transform.ShiftHue,
		})
	}
	return def, nil
}

// blockObject is the on-disk form of a block configuration entry.
type blockObject struct {
	PanelBorderStyle string `json:"panel_border_style,omitempty"`
	PanelTitleStyle  string `json:"panel_title_style,omitempty"`
	ContentStyle     string `json:"content_style,omitempty"`
	GuideStyle       string `json:"guide_style,omitempty"`
	SyntaxTheme      string `json:"syntax_theme,omitempty"`
	PanelPadding     []int  `json:"panel_padding,omitempty"`
}

// parseMappingEntry accepts either a style name or a block
// configuration object.
func parseMappingEntry(raw json.RawMessage) (llmstyle.MappingTarget, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return llmstyle.MappingTarget{StyleName: name}, nil
	}
	var obj blockObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return llmstyle.MappingTarget{}, fmt.Errorf("neither string nor object: %w", err)
	}
	bc := &llmstyle.BlockConfig{
		Panel:        obj.PanelBorderStyle != "",
		Tree:         obj.GuideStyle != "",
		BorderStyle:  obj.PanelBorderStyle,
		TitleStyle:   obj.PanelTitleStyle,
		ContentStyle: obj.ContentStyle,
		GuideStyle:   obj.GuideStyle,
		SyntaxTheme:  obj.SyntaxTheme,
	}
	if len(obj.PanelPadding) == 2 {
		bc.Padding = [2]int{obj.PanelPadding[0], obj.PanelPadding[1]}
	}
	return llmstyle.MappingTarget{Block: bc}, nil
}

var defaultDetection = map[string]string{
	"code_block_fence":    "^\\s*```(\\w*)",
	"blockquote_start":    `^\s*>`,
	"header_numbered":     `^\*\*(\d+)\.\s+(.*?)\*\*$`,
	"header1":             `^#\s+(.*)`,
	"header2":             `^##\s+(.*)`,
	"header3":             `^###\s+(.*)`,
	"list_item_bullet":    `^(\s*)[-*+]\s+(.*)`,
	"list_item_numbered":  `^(\s*)\d+\.\s+(.*)`,
	"horizontal_rule":     `^\s*([-*_]){3,}\s*$`,
	"key_value_colon":     `^\s*([\w\s-]+?)\s*:\s+(.*)`,
	"inline_code":         "`(.*?)`",
	"inline_bold_star":    `\*\*(.*?)\*\*`,
	"inline_bold_under":   `__(.*?)__`,
	"inline_italic_star":  `\*(.*?)\*`,
	"inline_italic_under": `_(.*?)_`,
	"inline_link":         `\[([^\]]*)\]\(([^\s)]*)\)`,
}

var defaultMapping = map[string]any{
	"code_block": map[string]any{
		"panel_border_style": "style_code_panel_border",
		"panel_title_style":  "style_code_panel_title",
		"syntax_theme":       "monokai",
	},
	"blockquote": map[string]any{
		"panel_border_style": "style_quote_panel_border",
		"content_style":      "style_blockquote_content",
	},
	"list_block": map[string]any{
		"guide_style": "style_list_guide",
	},
	"header_numbered":    "style_header_numbered",
	"header1":            "style_header1",
	"header2":            "style_header2",
	"header3":            "style_header3",
	"horizontal_rule":    "style_hr",
	"key_value_colon":    "style_key_value_line",
	"list_item_bullet":   "style_list_level",
	"list_item_numbered": "style_list_level",
	"default_text":       "style_default",
}

var defaultStyles = map[string]any{
	"style_code_panel_border":  "dim blue",
	"style_code_panel_title":   "italic blue",
	"style_quote_panel_border": "dim yellow",
	"style_blockquote_content": "italic yellow",
	"style_list_guide":         "dim cyan",
	"style_header_numbered":    "bold magenta",
	"style_header1":            "bold bright_blue underline",
	"style_header2":            "bold blue",
	"style_header3":            "bold cyan",
	"style_hr":                 "dim",
	"style_key_value_line":     "default",
	"style_list_level0":        "green",
	"style_list_level1":        "light_sea_green",
	"style_list_level2":        "medium_spring_green",
	"style_list_level3":        "spring_green1",
	"style_inline_bold":        "bold",
	"style_inline_italic":      "italic",
	"style_inline_code":        "bright_black on grey30",
	"style_default":            "tan",
}
