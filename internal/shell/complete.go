package shell

import "github.com/runger/kubesh/internal/fuzzy"

// Complete returns completion suggestions for a partial word, best match
// first. It is the non-interactive counterpart of the picker and is wired
// to the CLI's shell-completion hooks.
func Complete(partial string, candidates []string) []string {
	return fuzzy.Match(partial, candidates)
}

// Resolve picks the best candidate for arg. The top-ranked match wins;
// ties at the top rank fall back to input order, matching completion
// behavior. ok is false when nothing matches.
func Resolve(arg string, candidates []string) (string, bool) {
	matched := fuzzy.Match(arg, candidates)
	if len(matched) == 0 {
		return "", false
	}
	return matched[0], true
}
