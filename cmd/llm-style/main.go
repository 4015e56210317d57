package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	llmstyle "github.com/gagin/llm-style"
	"github.com/gagin/llm-style/config"
)

const defaultWidth = 80

func main() {
	var (
		configDir   string
		debug       bool
		keepMarkup  bool
		widthFlag   int
		osc8Flag    string
		indentWidth int
		outPath     string
	)

	flags := pflag.NewFlagSet("llm-style", pflag.ExitOnError)
	flags.StringVar(&configDir, "config-dir", "~/.config/llm-style", "Config directory (created with defaults on first run)")
	flags.BoolVar(&debug, "debug", false, "Print diagnostic messages to stderr")
	flags.BoolVar(&keepMarkup, "keep-markup", false, "Keep markup characters (asterisks, backticks) in styled output")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&osc8Flag, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.IntVar(&indentWidth, "indent-width", llmstyle.DefaultIndentUnit, "Spaces per list nesting level")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: llm-style [flags] [files...]")
		fmt.Fprintln(os.Stderr, "\nStyles Markdown-ish LLM output for the terminal.")
		fmt.Fprintln(os.Stderr, "If no file is provided, text is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	var debugW io.Writer
	if debug {
		debugW = os.Stderr
	}

	cfg, err := config.Load(configDir, debugW)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	input, err := readInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if err := llmstyle.ValidateInput(input); err != nil {
		fmt.Fprintf(os.Stderr, "refusing input: %v\n", err)
		os.Exit(1)
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	osc8, err := resolveOSC8(osc8Flag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --osc8 %q: %v\n", osc8Flag, err)
		os.Exit(2)
	}

	if err := llmstyle.Render(llmstyle.RenderRequest{
		Reader:  bytes.NewReader(input),
		Writer:  writer,
		Width:   resolveWidth(widthFlag),
		Rules:   cfg.Rules,
		Mapping: cfg.Mapping,
		Styles:  cfg.Styles,
		Options: []llmstyle.RenderOption{
			llmstyle.WithOSC8(osc8),
			llmstyle.WithKeepMarkup(keepMarkup),
			llmstyle.WithIndentUnit(indentWidth),
			llmstyle.WithDebug(debugW),
		},
	}); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

// readInputs concatenates the named files, or reads stdin when no file
// is given. Running interactively with no input is an error, not a hang.
func readInputs(args []string) ([]byte, error) {
	if len(args) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("stdin is a terminal; pipe text in or name input files")
		}
		return io.ReadAll(os.Stdin)
	}
	var buf bytes.Buffer
	for _, arg := range args {
		data, err := os.ReadFile(normalizePath(arg))
		if err != nil {
			return nil, err
		}
		buf.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return defaultWidth
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return llmstyle.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
