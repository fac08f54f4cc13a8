package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	menuSelector  = "div.dropdown__itemsWrapper"
	brandClass    = "dropdown__itemsWrapper__brand-name"
	modelClass    = "dropdown__itemsWrapper__model-name"
	entrySelector = "div." + brandClass + ", div." + modelClass
)

// FromHTML rebuilds a catalog from a saved marketplace home page. The brand
// menu lists a brand-name div followed by the model-name divs of that brand;
// each model-name div holds one label per model.
func FromHTML(r io.Reader) (*Catalog, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse html: %w", err)
	}

	menu := doc.Find(menuSelector).First()
	if menu.Length() == 0 {
		return nil, fmt.Errorf("catalog: no %s element in page", menuSelector)
	}

	var entries []Entry
	menu.Find(entrySelector).Each(func(_ int, s *goquery.Selection) {
		if s.HasClass(brandClass) {
			entries = append(entries, Entry{Brand: cleanText(s.Text())})
			return
		}
		// models listed before any brand have no owner
		if len(entries) == 0 {
			return
		}
		cur := &entries[len(entries)-1]
		s.Find("label").Each(func(_ int, l *goquery.Selection) {
			if name := cleanText(l.Text()); name != "" {
				cur.Models = append(cur.Models, name)
			}
		})
	})

	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog: brand menu is empty")
	}
	return New(entries)
}

// cleanText collapses runs of whitespace, NBSP included.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
