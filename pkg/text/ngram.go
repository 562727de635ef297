package text

import "strings"

// NGrams returns the contiguous n-token windows of tokens, joined with a
// single space. n <= 1 returns the tokens unchanged; a stream shorter
// than n yields nothing.
func NGrams(tokens []string, n int) []string {
	if n <= 1 {
		return tokens
	}
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

// Bigrams returns adjacent token pairs. Convenience wrapper over NGrams
// used by the co-occurrence view.
func Bigrams(tokens []string) []string {
	return NGrams(tokens, 2)
}
