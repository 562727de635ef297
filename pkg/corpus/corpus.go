package corpus

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lexcloud/lexcloud/pkg/cache"
	"github.com/lexcloud/lexcloud/pkg/errors"
)

// Document is one named unit of text.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Corpus is an ordered collection of documents.
type Corpus struct {
	Docs []Document `json:"docs"`
}

// Names returns the document names in corpus order.
func (c *Corpus) Names() []string {
	names := make([]string, len(c.Docs))
	for i, d := range c.Docs {
		names[i] = d.Name
	}
	return names
}

// Hash returns a stable content hash over all documents, suitable for
// cache keys. Name and text both contribute.
func (c *Corpus) Hash() string {
	var b strings.Builder
	for _, d := range c.Docs {
		fmt.Fprintf(&b, "%s\x00%s\x00", d.Name, d.Text)
	}
	return cache.Hash([]byte(b.String()))
}

// Add appends a document to the corpus.
func (c *Corpus) Add(name, text string) {
	c.Docs = append(c.Docs, Document{Name: name, Text: text})
}

// FromReader reads all text from r into a single-document corpus.
func FromReader(name string, r io.Reader) (*Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &Corpus{Docs: []Document{{Name: name, Text: string(data)}}}, nil
}

// LoadFile reads a single file as one document. The document name is the
// file's base name without extension.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Document{Name: docName(path), Text: string(data)}, nil
}

// Load builds a corpus from a list of paths. Each path may be a file, a
// directory (loaded non-recursively), or a glob pattern. Documents appear
// in the order the paths were given; directory and glob expansions are
// sorted for determinism.
func Load(paths ...string) (*Corpus, error) {
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input paths given")
	}

	c := &Corpus{}
	for _, p := range paths {
		files, err := expand(p)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			doc, err := LoadFile(f)
			if err != nil {
				return nil, err
			}
			c.Docs = append(c.Docs, doc)
		}
	}
	return c, nil
}

// expand resolves one path argument to a sorted list of regular files.
func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", path, err)
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			files = append(files, filepath.Join(path, e.Name()))
		}
		sort.Strings(files)
		if len(files) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "directory contains no files: %s", path)
		}
		return files, nil

	case err == nil:
		return []string{path}, nil

	default:
		// Not a plain file or directory; try it as a glob.
		matches, globErr := filepath.Glob(path)
		if globErr != nil {
			return nil, fmt.Errorf("bad pattern %s: %w", path, globErr)
		}
		if len(matches) == 0 {
			return nil, errors.New(errors.ErrCodeFileNotFound, "no files match: %s", path)
		}
		sort.Strings(matches)
		return matches, nil
	}
}

// docName derives a document name from a file path.
func docName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
