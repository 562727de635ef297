package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lexcloud/lexcloud/pkg/errors"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "iliad.txt", "sing goddess")

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if doc.Name != "iliad" {
		t.Errorf("Name = %q, want %q", doc.Name, "iliad")
	}
	if doc.Text != "sing goddess" {
		t.Errorf("Text = %q", doc.Text)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "second")
	writeFile(t, dir, "a.txt", "first")

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	// Directory expansion sorts by file name.
	if got := strings.Join(c.Names(), ","); got != "a,b" {
		t.Errorf("Names = %s, want a,b", got)
	}
}

func TestLoadGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.txt", "x")
	writeFile(t, dir, "two.txt", "y")
	writeFile(t, dir, "ignored.md", "z")

	c, err := Load(filepath.Join(dir, "*.txt"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(c.Docs) != 2 {
		t.Errorf("len(Docs) = %d, want 2", len(c.Docs))
	}
}

func TestLoadGlobNoMatch(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "*.txt"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadNoPaths(t *testing.T) {
	_, err := Load()
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("code = %q, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestFromReader(t *testing.T) {
	c, err := FromReader("stdin", strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("FromReader error: %v", err)
	}
	if len(c.Docs) != 1 || c.Docs[0].Text != "hello world" {
		t.Errorf("unexpected corpus: %+v", c)
	}
}

func TestHashStable(t *testing.T) {
	a := &Corpus{Docs: []Document{{Name: "d", Text: "t"}}}
	b := &Corpus{Docs: []Document{{Name: "d", Text: "t"}}}
	if a.Hash() != b.Hash() {
		t.Error("equal corpora should hash equal")
	}

	c := &Corpus{Docs: []Document{{Name: "d", Text: "u"}}}
	if a.Hash() == c.Hash() {
		t.Error("different text should change the hash")
	}
}
