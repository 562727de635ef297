package text

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Lemmatizer maps inflected forms to head words using a lookup table,
// with a light suffix-stripping fallback for forms the table misses.
// A nil *Lemmatizer is valid and acts as the identity.
type Lemmatizer struct {
	table map[string]string
}

// NewLemmatizer creates a lemmatizer from a form → lemma table.
// The table may be nil; the suffix fallback still applies.
func NewLemmatizer(table map[string]string) *Lemmatizer {
	return &Lemmatizer{table: table}
}

// LoadLemmaTable reads a tab- or space-separated "form lemma" file,
// one pair per line. Blank lines and lines starting with '#' are skipped.
func LoadLemmaTable(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lemma table %s: %w", path, err)
	}
	defer f.Close()

	table := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		table[strings.ToLower(fields[0])] = strings.ToLower(fields[1])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lemma table %s: %w", path, err)
	}
	return table, nil
}

// Lemma returns the head word for a token.
func (l *Lemmatizer) Lemma(token string) string {
	if l == nil {
		return token
	}
	if lemma, ok := l.table[token]; ok {
		return lemma
	}
	return stripSuffix(token)
}

// Apply lemmatizes every token in place-order.
func (l *Lemmatizer) Apply(tokens []string) []string {
	if l == nil {
		return tokens
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = l.Lemma(t)
	}
	return out
}

// stripSuffix applies a few conservative English suffix rules. It never
// shortens a word below three runes so short words pass through intact.
func stripSuffix(w string) string {
	rules := []struct{ suffix, repl string }{
		{"sses", "ss"},
		{"ies", "y"},
		{"ing", ""},
		{"ed", ""},
		{"s", ""},
	}
	for _, r := range rules {
		if r.suffix == "s" && strings.HasSuffix(w, "ss") {
			continue
		}
		if strings.HasSuffix(w, r.suffix) {
			stem := w[:len(w)-len(r.suffix)] + r.repl
			if len([]rune(stem)) >= 3 {
				return stem
			}
			return w
		}
	}
	return w
}
