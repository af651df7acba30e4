package catalog

import (
	"slices"
	"strings"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

const (
	// SuggestLimit caps quick-search suggestions.
	SuggestLimit = 6

	// RelatedLimit caps related products on a detail page.
	RelatedLimit = 4

	// RecentLimit caps the recently viewed list.
	RecentLimit = 5
)

// filter returns the products for which keep is true, in catalog order.
func (c *Catalog) filter(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Limit truncates products to at most n entries. n <= 0 means no cap.
func Limit(products []domain.Product, n int) []domain.Product {
	if n > 0 && len(products) > n {
		return products[:n]
	}
	return products
}

// Discounted returns products selling below their original price.
func (c *Catalog) Discounted() []domain.Product {
	return c.filter(domain.Product.Discounted)
}

// InCategory returns the first n products of category in catalog order.
// The comparison is exact. n <= 0 returns every match.
func (c *Catalog) InCategory(category string, n int) []domain.Product {
	return Limit(c.filter(func(p domain.Product) bool {
		return p.Category == category
	}), n)
}

// CPUTerms splits a CPU tab label into match terms. The word "series" is
// noise in labels such as "Ryzen 5 Series" and is dropped.
func CPUTerms(tag string) []string {
	fields := strings.Fields(strings.ToLower(tag))
	terms := fields[:0]
	for _, f := range fields {
		if f != "series" {
			terms = append(terms, f)
		}
	}
	return terms
}

// matchCPU reports whether a single spec line contains every term.
func matchCPU(p domain.Product, terms []string) bool {
	for _, line := range p.SpecLines() {
		line = strings.ToLower(line)
		all := true
		for _, t := range terms {
			if !strings.Contains(line, t) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// ByCPUTag returns the first n products of category whose specs carry the
// CPU named by tag. Products with map-form specs never match.
func (c *Catalog) ByCPUTag(category, tag string, n int) []domain.Product {
	terms := CPUTerms(tag)
	return Limit(c.filter(func(p domain.Product) bool {
		return p.Category == category && matchCPU(p, terms)
	}), n)
}

// Resolve maps ids to products, keeping id order and dropping ids that are
// not in the catalog.
func (c *Catalog) Resolve(ids []int64) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.Lookup(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// PushRecent returns a new recently viewed list with id moved to the front,
// duplicates removed and at most limit entries. ids is not modified.
func PushRecent(ids []int64, id int64, limit int) []int64 {
	out := make([]int64, 0, len(ids)+1)
	out = append(out, id)
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return slices.Clip(out)
}

// Related returns up to n other products of the same brand. Unbranded
// products have no related products.
func (c *Catalog) Related(p domain.Product, n int) []domain.Product {
	if !p.Brand.Valid || p.Brand.String == "" {
		return make([]domain.Product, 0)
	}
	return Limit(c.filter(func(o domain.Product) bool {
		return o.ID != p.ID && o.Brand.Valid && o.Brand.String == p.Brand.String
	}), n)
}

// Suggest is the quick search: keyword and category token only, no price
// or stock restriction, catalog order, at most n results. A blank keyword
// yields no suggestions.
func (c *Catalog) Suggest(keyword string, n int) []domain.Product {
	if strings.TrimSpace(keyword) == "" {
		return make([]domain.Product, 0)
	}
	phrase, override := ParseKeyword(keyword)
	return Limit(c.filter(func(p domain.Product) bool {
		if override != "" && !strings.EqualFold(p.Category, override) {
			return false
		}
		return matchKeyword(p, phrase)
	}), n)
}
