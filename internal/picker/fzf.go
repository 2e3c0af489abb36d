package picker

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// currentSuffix annotates the active item on fzf's input. It is stripped
// from the returned line by exact literal match.
const currentSuffix = " (current)"

// fzf exit codes: 1 means no match, 130 means interrupted (Esc / Ctrl-C).
// Both are cancellation, not failure.
const (
	fzfExitNoMatch   = 1
	fzfExitInterrupt = 130
)

// FzfSelector delegates selection to an external fzf process. It is a
// drop-in substitute for the built-in picker.
type FzfSelector struct {
	Path string
}

// Pick implements Selector by feeding items to fzf on stdin, one per line,
// with the header set to title and the current item annotated.
func (f *FzfSelector) Pick(items []string, title, current string) (string, bool, error) {
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, dimStyle.Render("no items to select from"))
		return "", false, nil
	}

	cmd := exec.Command(f.Path, "--header", title, "--layout", "reverse", "--height", "40%")
	cmd.Stdin = strings.NewReader(annotateCurrent(items, current))
	cmd.Stderr = os.Stderr

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			switch exitErr.ExitCode() {
			case fzfExitNoMatch, fzfExitInterrupt:
				return "", false, nil
			}
		}
		return "", false, fmt.Errorf("fzf: %w", err)
	}

	line := strings.TrimRight(out.String(), "\n")
	if line == "" {
		return "", false, nil
	}
	return stripCurrent(line), true, nil
}

// annotateCurrent joins items into fzf input lines, suffixing the current
// item with its marker.
func annotateCurrent(items []string, current string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item)
		if current != "" && item == current {
			b.WriteString(currentSuffix)
		}
		b.WriteRune('\n')
	}
	return b.String()
}

// stripCurrent removes the current-item marker from a selected line.
func stripCurrent(line string) string {
	return strings.TrimSuffix(line, currentSuffix)
}
