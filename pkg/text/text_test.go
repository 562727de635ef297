package text

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer(TokenizerOptions{})

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "basic",
			input: "Sing, O goddess!",
			want:  []string{"sing", "o", "goddess"},
		},
		{
			name:  "apostrophe inside word",
			input: "don't stop",
			want:  []string{"don't", "stop"},
		},
		{
			name:  "leading and trailing quotes trimmed",
			input: "'tis the hour",
			want:  []string{"tis", "the", "hour"},
		},
		{
			name:  "digits dropped by default",
			input: "book 12 line 304",
			want:  []string{"book", "line"},
		},
		{
			name:  "empty",
			input: "  ... !!",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeKeepDigits(t *testing.T) {
	tok := NewTokenizer(TokenizerOptions{KeepDigits: true})
	got := tok.Tokenize("book 12")
	want := []string{"book", "12"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeFoldMarks(t *testing.T) {
	folded := NewTokenizer(TokenizerOptions{FoldMarks: true})
	plain := NewTokenizer(TokenizerOptions{})

	got := folded.Tokenize("étude café")
	want := []string{"etude", "cafe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("folded = %v, want %v", got, want)
	}

	// Without folding, the accents survive.
	got = plain.Tokenize("étude")
	if got[0] != "étude" {
		t.Errorf("plain = %v, want étude", got)
	}
}

func TestStopwords(t *testing.T) {
	sw := NewStopwords("goddess")

	if !sw.IsStopword("the") {
		t.Error("built-in list should contain 'the'")
	}
	if !sw.IsStopword("goddess") {
		t.Error("extra word should be filtered")
	}
	if sw.IsStopword("achilles") {
		t.Error("'achilles' should pass")
	}

	got := sw.Filter([]string{"sing", "the", "goddess", "of", "achilles"})
	want := []string{"sing", "achilles"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %v, want %v", got, want)
	}
}

func TestStopwordsFromList(t *testing.T) {
	sw := NewStopwordsFromList([]string{"Sing"})
	if sw.IsStopword("the") {
		t.Error("list-only filter should not contain built-ins")
	}
	if !sw.IsStopword("sing") {
		t.Error("list words should be lowercased")
	}
}

func TestLemmatizer(t *testing.T) {
	lem := NewLemmatizer(map[string]string{"sang": "sing", "sung": "sing"})

	tests := []struct {
		in   string
		want string
	}{
		{"sang", "sing"},     // table hit
		{"sung", "sing"},     // table hit
		{"running", "runn"},  // suffix fallback
		{"horses", "horse"},  // suffix fallback
		{"cities", "city"},   // ies rule
		{"classes", "class"}, // sses rule
		{"class", "class"},   // ss guard
		{"is", "is"},         // too short to strip
		{"wine", "wine"},     // untouched
	}
	for _, tt := range tests {
		if got := lem.Lemma(tt.in); got != tt.want {
			t.Errorf("Lemma(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLemmatizerNil(t *testing.T) {
	var lem *Lemmatizer
	if got := lem.Lemma("running"); got != "running" {
		t.Errorf("nil lemmatizer should be identity, got %q", got)
	}
	in := []string{"a", "b"}
	if got := lem.Apply(in); !reflect.DeepEqual(got, in) {
		t.Errorf("nil Apply = %v", got)
	}
}

func TestLoadLemmaTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lemmas.tsv")
	content := "# comment\nsang\tsing\nSUNG sing\n\nbad_line\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadLemmaTable(path)
	if err != nil {
		t.Fatalf("LoadLemmaTable error: %v", err)
	}
	if table["sang"] != "sing" || table["sung"] != "sing" {
		t.Errorf("table = %v", table)
	}
	if len(table) != 2 {
		t.Errorf("len(table) = %d, want 2 (comments and bad lines skipped)", len(table))
	}
}

func TestNGrams(t *testing.T) {
	tokens := []string{"wine", "dark", "sea"}

	got := NGrams(tokens, 2)
	want := []string{"wine dark", "dark sea"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NGrams(2) = %v, want %v", got, want)
	}

	if got := NGrams(tokens, 1); !reflect.DeepEqual(got, tokens) {
		t.Errorf("NGrams(1) should be identity, got %v", got)
	}
	if got := NGrams(tokens, 4); got != nil {
		t.Errorf("NGrams longer than stream should be nil, got %v", got)
	}
	if got := Bigrams(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("Bigrams = %v", got)
	}
}
