// Package catalog holds the brand -> models reference table used to recover
// brand, model and generation from listing titles.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one brand with its known models, in catalog order.
type Entry struct {
	Brand  string
	Models []string
}

// Catalog is an ordered, read-only brand table. Iteration order is the order
// of the source file and decides which brand wins when titles are ambiguous.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// New builds a Catalog from entries. Brand and model names are uppercased;
// a brand that appears twice is an error.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		brand := strings.ToUpper(strings.TrimSpace(e.Brand))
		if brand == "" {
			return nil, errors.New("catalog: empty brand name")
		}
		if _, dup := c.index[brand]; dup {
			return nil, fmt.Errorf("catalog: duplicate brand %q", brand)
		}
		models := make([]string, 0, len(e.Models))
		for _, m := range e.Models {
			m = strings.ToUpper(strings.TrimSpace(m))
			if m == "" {
				continue
			}
			models = append(models, m)
		}
		c.index[brand] = len(c.entries)
		c.entries = append(c.entries, Entry{Brand: brand, Models: models})
	}
	return c, nil
}

// Load reads a catalog file. JSON and YAML mappings of brand -> [models] are
// both accepted; key order in the file is preserved.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w (file %q)", err, path)
	}
	return c, nil
}

// Parse decodes a brand -> [models] mapping from r.
func Parse(r io.Reader) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog: empty document")
		}
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("catalog: expected a mapping at line %d", root.Line)
	}

	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var models []string
		if err := val.Decode(&models); err != nil {
			return nil, fmt.Errorf("catalog: models of %q (line %d): %w", key.Value, val.Line, err)
		}
		entries = append(entries, Entry{Brand: key.Value, Models: models})
	}
	return New(entries)
}

// Entries returns a copy of the catalog in iteration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		models := make([]string, len(e.Models))
		copy(models, e.Models)
		out[i] = Entry{Brand: e.Brand, Models: models}
	}
	return out
}

// Brands returns brand names in iteration order.
func (c *Catalog) Brands() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Brand
	}
	return out
}

// Models returns the models of brand, or nil when the brand is unknown.
func (c *Catalog) Models(brand string) []string {
	i, ok := c.index[strings.ToUpper(brand)]
	if !ok {
		return nil
	}
	return c.entries[i].Models
}

// Each calls fn for every brand in iteration order until fn returns false.
// The models slice must not be modified.
func (c *Catalog) Each(fn func(brand string, models []string) bool) {
	if c == nil {
		return
	}
	for _, e := range c.entries {
		if !fn(e.Brand, e.Models) {
			return
		}
	}
}

// Len is the number of brands.
func (c *Catalog) Len() int { return len(c.entries) }

// WriteJSON encodes the catalog as a JSON object whose key order matches
// the catalog order.
func (c *Catalog) WriteJSON(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range c.entries {
		key, err := json.Marshal(e.Brand)
		if err != nil {
			return fmt.Errorf("catalog: encode brand: %w", err)
		}
		models := e.Models
		if models == nil {
			models = []string{}
		}
		val, err := json.Marshal(models)
		if err != nil {
			return fmt.Errorf("catalog: encode models of %q: %w", e.Brand, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(c.entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// Save writes the catalog to path as JSON, creating parent directories.
func (c *Catalog) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("catalog: create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("catalog: create %q: %w", path, err)
	}
	if err := c.WriteJSON(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
