package services

import (
	"strings"

	"listing-cleaner/catalog"
)

// GenerationNA marks a title that ends right after the model name.
// It is a real string value, not a null.
const GenerationNA = "NA"

// Identity is the brand / model / generation triple recovered from a title.
type Identity struct {
	Brand      string
	Model      string
	Generation string
}

// DecomposeTitle finds the first catalog brand and model present in title.
//
// Brands and models are scanned in catalog order and the first pair that
// qualifies wins, so a model that is a prefix of another one listed later
// can shadow it. When the model is followed by a space, the generation is
// the title with "BRAND MODEL " removed; when the title is exactly
// "BRAND MODEL..." with nothing separating, the generation is GenerationNA.
func DecomposeTitle(title string, cat *catalog.Catalog) (Identity, bool) {
	var (
		id    Identity
		found bool
	)
	cat.Each(func(brand string, models []string) bool {
		if !strings.Contains(title, brand+" ") {
			return true
		}
		for _, model := range models {
			prefix := brand + " " + model
			if strings.Contains(title, model+" ") {
				id = Identity{
					Brand:      brand,
					Model:      model,
					Generation: strings.Replace(title, prefix+" ", "", 1),
				}
				found = true
				return false
			}
			if strings.Contains(title, model) && strings.HasPrefix(title, prefix) {
				id = Identity{Brand: brand, Model: model, Generation: GenerationNA}
				found = true
				return false
			}
		}
		return true
	})
	return id, found
}
