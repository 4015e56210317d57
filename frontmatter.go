package llmstyle

import "strings"

// frontMatterFilter drops a leading YAML front matter section ("---"
// delimited) from the line stream. Anything after the closing fence
// passes through untouched; input that never closes the section is
// replayed in full once the probe limit is reached.
type frontMatterFilter struct {
	state   fmState
	pending []string
}

type fmState uint8

const (
	fmProbing fmState = iota
	fmInside
	fmDone
)

const maxFrontMatterLines = 128

// Feed offers one line to the filter and returns the lines to process
// now. While a potential front matter section is open, lines are held
// back; they are replayed if the section turns out not to be one.
func (f *frontMatterFilter) Feed(line string) []string {
	switch f.state {
	case fmDone:
		return []string{line}
	case fmProbing:
		if strings.TrimSpace(line) == "" {
			return []string{line}
		}
		if strings.TrimRight(line, " \t") == "---" {
			f.state = fmInside
			f.pending = append(f.pending, line)
			return nil
		}
		f.state = fmDone
		return []string{line}
	default: // fmInside
		f.pending = append(f.pending, line)
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "---" || trimmed == "..." {
			f.state = fmDone
			f.pending = nil
			return nil
		}
		if len(f.pending) > maxFrontMatterLines {
			return f.flush()
		}
		return nil
	}
}

// Finish returns any held-back lines when input ends with the section
// still open.
func (f *frontMatterFilter) Finish() []string {
	if f.state == fmInside {
		return f.flush()
	}
	return nil
}

func (f *frontMatterFilter) flush() []string {
	f.state = fmDone
	lines := f.pending
	f.pending = nil
	return lines
}
