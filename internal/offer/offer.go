// Package offer resolves offer data referenced by placeholders and creative
// copy predicates.
package offer

import (
	"regexp"
	"strings"
)

// CatalogItem is one purchasable item attached to an offer.
type CatalogItem struct {
	ID     string
	Title  string
	Price  string
	Copy   map[string]string
	Fields map[string]string
}

// Offer is the data shown at one position of a sequence.
type Offer struct {
	ID           string
	CreativeCopy map[string]string
	Attributes   map[string]string
	Catalog      []CatalogItem
	// ActiveCatalog indexes Catalog; out of range means no active item.
	ActiveCatalog int
}

// ActiveItem returns the active catalog item.
func (o Offer) ActiveItem() (CatalogItem, bool) {
	if o.ActiveCatalog < 0 || o.ActiveCatalog >= len(o.Catalog) {
		return CatalogItem{}, false
	}
	return o.Catalog[o.ActiveCatalog], true
}

// Set holds the offers of one tree, indexed by position.
type Set struct {
	offers []Offer
}

// NewSet creates a Set.
func NewSet(offers []Offer) *Set {
	return &Set{offers: offers}
}

// Len returns the number of offers.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.offers)
}

// At returns the offer at position.
func (s *Set) At(position *int) (Offer, bool) {
	if s == nil || position == nil || *position < 0 || *position >= len(s.offers) {
		return Offer{}, false
	}
	return s.offers[*position], true
}

// Placeholder resolves a dotted placeholder name for the offer at position.
// Supported roots are creativeCopy, attributes, catalogItem and offer.
func (s *Set) Placeholder(position *int, name string) (string, bool) {
	o, ok := s.At(position)
	if !ok {
		return "", false
	}
	root, key, _ := strings.Cut(name, ".")
	switch root {
	case "creativeCopy":
		return lookup(o.CreativeCopy, key)
	case "attributes":
		return lookup(o.Attributes, key)
	case "catalogItem":
		item, ok := o.ActiveItem()
		if !ok {
			return "", false
		}
		switch key {
		case "id":
			return item.ID, item.ID != ""
		case "title":
			return item.Title, item.Title != ""
		case "price":
			return item.Price, item.Price != ""
		}
		if v, ok := lookup(item.Fields, key); ok {
			return v, true
		}
		return lookup(item.Copy, key)
	case "offer":
		if key == "id" {
			return o.ID, o.ID != ""
		}
	}
	return "", false
}

// CreativeCopy returns the offer's copy stored under key.
func (s *Set) CreativeCopy(position *int, key string) (string, bool) {
	o, ok := s.At(position)
	if !ok {
		return "", false
	}
	return lookup(o.CreativeCopy, key)
}

// CatalogCopy returns the active catalog item's copy stored under key.
func (s *Set) CatalogCopy(position *int, key string) (string, bool) {
	o, ok := s.At(position)
	if !ok {
		return "", false
	}
	item, ok := o.ActiveItem()
	if !ok {
		return "", false
	}
	return lookup(item.Copy, key)
}

var placeholderPattern = regexp.MustCompile(`%\^([^%^|]+)(?:\|([^%^]*))?\^%`)

// Expand substitutes %^name^% and %^name|fallback^% references in text.
// Unresolved references without a fallback expand to nothing.
func (s *Set) Expand(text string, position *int) string {
	if !strings.Contains(text, "%^") {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := placeholderPattern.FindStringSubmatch(match)
		if v, ok := s.Placeholder(position, strings.TrimSpace(parts[1])); ok {
			return v
		}
		return parts[2]
	})
}

func lookup(m map[string]string, key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
