package shell

import "strings"

// Tokenize splits a line on single spaces after trimming it and drops empty
// tokens, so runs of spaces collapse. There is no quoting or escaping and tabs
// inside a line are not separators.
func Tokenize(line string) []string {
	var tokens []string
	for _, tok := range strings.Split(strings.TrimSpace(line), " ") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
