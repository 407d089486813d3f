// Package catalog holds the execution allow-list: the packages generated
// analysis code may import. Each package is registered as a tool in a
// tooldiscovery index so the prompt can carry full documentation for the
// packages most relevant to a question and a one-line summary for the rest.
//
// Contract:
//   - Concurrency: a Catalog is read-only after New and safe for concurrent use.
//   - Context: Describe honours cancellation before searching.
//   - Errors: New fails on duplicate or empty entries.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/search"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Namespace is the index namespace every allow-listed package lives in.
const Namespace = "sandbox"

// DefaultSearchLimit bounds how many packages Describe documents in full.
const DefaultSearchLimit = 3

var (
	// ErrDuplicatePackage is returned when two entries share a path or name.
	ErrDuplicatePackage = errors.New("duplicate package")

	// ErrInvalidEntry is returned for entries without a path or name.
	ErrInvalidEntry = errors.New("invalid catalog entry")
)

// Entry describes one allow-listed package.
type Entry struct {
	// Path is the import path generated code uses, e.g. "strings" or
	// "tableqa/frame".
	Path string

	// Name is the package identifier, e.g. "strings" or "frame".
	Name string

	Summary  string
	Notes    string
	Tags     []string
	Examples []Example
}

// Example is a short usage snippet.
type Example struct {
	Title string
	Code  string
}

// Catalog is an immutable allow-list backed by a searchable index.
type Catalog struct {
	entries map[string]Entry
	byName  map[string]string
	idx     index.Index
	docs    *tooldoc.InMemoryStore
}

// New builds a catalog from entries.
func New(entries ...Entry) (*Catalog, error) {
	idx := index.NewInMemoryIndex(index.IndexOptions{
		Searcher: search.NewBM25Searcher(search.BM25Config{}),
	})
	c := &Catalog{
		entries: make(map[string]Entry, len(entries)),
		byName:  make(map[string]string, len(entries)),
		idx:     idx,
		docs:    tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx}),
	}
	for _, e := range entries {
		if err := c.add(e); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(e Entry) error {
	if e.Path == "" || e.Name == "" {
		return fmt.Errorf("%w: path=%q name=%q", ErrInvalidEntry, e.Path, e.Name)
	}
	if _, ok := c.entries[e.Path]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePackage, e.Path)
	}
	if _, ok := c.byName[e.Name]; ok {
		return fmt.Errorf("%w: name %s", ErrDuplicatePackage, e.Name)
	}

	tool := model.Tool{
		Tool: mcp.Tool{
			Name:        e.Name,
			Description: e.Summary,
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"code": map[string]any{"type": "string"},
				},
			},
		},
		Namespace: Namespace,
		Tags:      append([]string{e.Name}, e.Tags...),
	}
	if err := c.idx.RegisterTool(tool, model.NewLocalBackend(e.Path)); err != nil {
		return fmt.Errorf("register %s: %w", e.Path, err)
	}

	doc := tooldoc.DocEntry{Summary: e.Summary, Notes: e.Notes}
	for _, ex := range e.Examples {
		doc.Examples = append(doc.Examples, tooldoc.ToolExample{
			Title: ex.Title,
			Args:  map[string]any{"code": ex.Code},
		})
	}
	if err := c.docs.RegisterDoc(toolID(e.Name), doc); err != nil {
		return fmt.Errorf("register docs for %s: %w", e.Path, err)
	}

	c.entries[e.Path] = e
	c.byName[e.Name] = e.Path
	return nil
}

func toolID(name string) string { return Namespace + ":" + name }

// Packages returns the allow-listed import paths, sorted.
func (c *Catalog) Packages() []string {
	out := make([]string, 0, len(c.entries))
	for p := range c.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Allowed reports whether path may be imported by generated code.
func (c *Catalog) Allowed(path string) bool {
	_, ok := c.entries[path]
	return ok
}

// Entry returns the entry registered for path.
func (c *Catalog) Entry(path string) (Entry, bool) {
	e, ok := c.entries[path]
	return e, ok
}

// Search returns the entries best matching query, most relevant first.
func (c *Catalog) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	hits, err := c.idx.Search(query, limit)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	out := make([]Entry, 0, len(hits))
	for _, h := range hits {
		if path, ok := c.byName[h.Name]; ok {
			out = append(out, c.entries[path])
		}
	}
	return out, nil
}

// Subset returns a new catalog holding only the given paths.
func (c *Catalog) Subset(paths ...string) (*Catalog, error) {
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		e, ok := c.entries[p]
		if !ok {
			return nil, fmt.Errorf("%w: no package %q", ErrInvalidEntry, p)
		}
		entries = append(entries, e)
	}
	return New(entries...)
}

// Describe renders the markdown section embedded in code prompts: every
// package with its summary, followed by notes and examples for the
// packages that best match question. limit <= 0 uses DefaultSearchLimit.
func (c *Catalog) Describe(ctx context.Context, question string, limit int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var b strings.Builder
	b.WriteString("Packages available to your code (already imported; importing anything else fails):\n\n")
	for _, p := range c.Packages() {
		e := c.entries[p]
		fmt.Fprintf(&b, "- `%s` (import %q): %s\n", e.Name, e.Path, e.Summary)
	}

	if strings.TrimSpace(question) == "" {
		return b.String(), nil
	}
	hits, err := c.idx.Search(question, limit)
	if err != nil {
		return "", fmt.Errorf("search catalog: %w", err)
	}
	for _, h := range hits {
		doc, err := c.docs.DescribeTool(h.ID, tooldoc.DetailFull)
		if err != nil {
			return "", fmt.Errorf("describe %s: %w", h.ID, err)
		}
		fmt.Fprintf(&b, "\n#### %s\n\n%s\n", h.Name, doc.Summary)
		if doc.Notes != "" {
			fmt.Fprintf(&b, "\n%s\n", doc.Notes)
		}
		examples, err := c.docs.ListExamples(h.ID, 2)
		if err != nil {
			return "", fmt.Errorf("examples for %s: %w", h.ID, err)
		}
		for _, ex := range examples {
			code, _ := ex.Args["code"].(string)
			fmt.Fprintf(&b, "\n%s:\n```go\n%s\n```\n", ex.Title, code)
		}
	}
	return b.String(), nil
}
