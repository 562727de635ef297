package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TokenizerOptions configures normalization during tokenization.
type TokenizerOptions struct {
	// FoldMarks strips combining marks so "étude" and "etude" become the
	// same token. Useful for accented literary corpora.
	FoldMarks bool

	// KeepDigits retains numeric runs as tokens. Off by default since
	// page and line numbers dominate literary texts.
	KeepDigits bool
}

// Tokenizer splits text into lowercase, NFC-normalized word tokens.
type Tokenizer struct {
	opts   TokenizerOptions
	folder transform.Transformer
}

// NewTokenizer creates a tokenizer with the given options.
func NewTokenizer(opts TokenizerOptions) *Tokenizer {
	t := &Tokenizer{opts: opts}
	if opts.FoldMarks {
		// Decompose, drop the combining marks, recompose.
		t.folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}
	return t
}

// Tokenize returns the word tokens of s in document order.
// Apostrophes inside a word are kept ("don't" is one token); all other
// punctuation separates tokens.
func (t *Tokenizer) Tokenize(s string) []string {
	s = norm.NFC.String(s)
	if t.folder != nil {
		if folded, _, err := transform.String(t.folder, s); err == nil {
			s = folded
		}
	}
	s = strings.ToLower(s)

	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, strings.Trim(cur.String(), "'"))
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			cur.WriteRune(r)
		case unicode.IsDigit(r) && t.opts.KeepDigits:
			cur.WriteRune(r)
		case r == '\'' && cur.Len() > 0:
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	// Trimming apostrophes can leave empties ("'" alone).
	out := tokens[:0]
	for _, tok := range tokens {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
