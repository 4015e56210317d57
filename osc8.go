package llmstyle

import (
	"os"
	"strconv"
	"strings"
)

const (
	osc8Prefix = "\x1b]8;;"
	osc8Close  = "\x1b]8;;\x1b\\"
)

// osc8Link wraps text in an OSC 8 hyperlink escape sequence.
func osc8Link(target, text string) string {
	return osc8Prefix + target + "\x1b\\" + text + osc8Close
}

// DetectOSC8Support returns true if the current environment likely
// supports OSC 8 hyperlinks. Setting OSC8=0 forces it off.
func DetectOSC8Support() bool {
	if os.Getenv("OSC8") == "0" {
		return false
	}
	switch {
	case os.Getenv("DOMTERM") != "":
		return true
	case os.Getenv("WT_SESSION") != "":
		return true
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "vscode":
		return true
	}
	if strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty") {
		return true
	}
	if vte := os.Getenv("VTE_VERSION"); vte != "" {
		if n, err := strconv.Atoi(vte); err == nil && n >= 5000 {
			return true
		}
	}
	return false
}
