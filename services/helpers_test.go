package services

import (
	"testing"

	"listing-cleaner/catalog"
)

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func int32Ptr(n int32) *int32 { return &n }

func samePtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func mustCatalog(t *testing.T, entries ...catalog.Entry) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(entries)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

// testCatalog mirrors the head of the shipped catalog for the brands the
// fixtures use.
func testCatalog(t *testing.T) *catalog.Catalog {
	return mustCatalog(t,
		catalog.Entry{Brand: "CITROEN", Models: []string{"C1", "C3"}},
		catalog.Entry{Brand: "RENAULT", Models: []string{"CLIO", "CAPTUR"}},
		catalog.Entry{Brand: "PEUGEOT", Models: []string{"2008", "208"}},
		catalog.Entry{Brand: "TESLA", Models: []string{"MODEL 3"}},
	)
}
