package shell

import "github.com/google/shlex"

// maxAliasDepth bounds chained alias expansion so a cycle cannot hang the
// shell.
const maxAliasDepth = 10

// Aliases maps a first token to its replacement text. Replacements may be
// multi-word and may themselves begin with another alias.
type Aliases map[string]string

// Expand rewrites the leading token of tokens through the alias table.
// Expansion repeats while the new leading token is itself an alias, up to
// maxAliasDepth. Replacement text is shell-tokenized; an unparsable
// replacement leaves the tokens untouched.
func (a Aliases) Expand(tokens []string) []string {
	for depth := 0; depth < maxAliasDepth; depth++ {
		if len(tokens) == 0 {
			return tokens
		}
		replacement, ok := a[tokens[0]]
		if !ok {
			return tokens
		}
		head, err := shlex.Split(replacement)
		if err != nil || len(head) == 0 {
			return tokens
		}
		// A self-referential alias (k -> kubectl, kubectl -> ...) expands
		// once and stops when the head token no longer changes.
		if head[0] == tokens[0] {
			return append(head, tokens[1:]...)
		}
		tokens = append(head, tokens[1:]...)
	}
	return tokens
}
