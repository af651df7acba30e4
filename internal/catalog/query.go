package catalog

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

// SortKey selects the result order.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

// ParseSortKey maps a request value to a SortKey. The storefront's older
// select values are accepted as aliases; anything unknown is SortDefault.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price-asc", "price-low-high":
		return SortPriceAsc
	case "price-desc", "price-high-low":
		return SortPriceDesc
	case "name-asc":
		return SortNameAsc
	case "name-desc":
		return SortNameDesc
	default:
		return SortDefault
	}
}

// Query is a declarative product search. The zero value matches every
// priced product in catalog order.
type Query struct {
	Keyword     string
	MinPrice    decimal.Decimal
	MaxPrice    decimal.NullDecimal // invalid means unbounded
	Categories  []string
	Brands      []string // lowercase
	Usages      []string
	InStockOnly bool
	Sort        SortKey
}

// ParseKeyword splits a keyword into the effective search phrase and a
// category override. Tokens equal to a category tag are removed from the
// phrase; the last one becomes the override.
func ParseKeyword(keyword string) (phrase, override string) {
	tokens := strings.Fields(strings.ToLower(keyword))
	rest := tokens[:0]
	for _, t := range tokens {
		if domain.IsKnownCategory(t) {
			override = t
			continue
		}
		rest = append(rest, t)
	}
	return strings.Join(rest, " "), override
}

// matcher is a Query with its keyword already parsed.
type matcher struct {
	q        Query
	phrase   string
	override string
}

func newMatcher(q Query) matcher {
	phrase, override := ParseKeyword(q.Keyword)
	return matcher{q: q, phrase: phrase, override: override}
}

// Match reports whether p satisfies every predicate of q.
func Match(p domain.Product, q Query) bool {
	return newMatcher(q).match(p)
}

func (m matcher) match(p domain.Product) bool {
	return matchKeyword(p, m.phrase) &&
		m.matchPrice(p) &&
		m.matchCategory(p) &&
		m.matchBrand(p) &&
		m.matchUsage(p) &&
		(!m.q.InStockOnly || p.InStock())
}

// matchKeyword checks phrase against name, free-text specs and brand.
// phrase must already be lowercase.
func matchKeyword(p domain.Product, phrase string) bool {
	if phrase == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), phrase) {
		return true
	}
	if p.SpecsContain(phrase) {
		return true
	}
	return p.Brand.Valid && strings.Contains(strings.ToLower(p.Brand.String), phrase)
}

func (m matcher) matchPrice(p domain.Product) bool {
	if !p.Price.Valid {
		return false
	}
	if p.Price.Decimal.LessThan(m.q.MinPrice) {
		return false
	}
	return !m.q.MaxPrice.Valid || p.Price.Decimal.LessThanOrEqual(m.q.MaxPrice.Decimal)
}

func (m matcher) matchCategory(p domain.Product) bool {
	if m.override != "" {
		return strings.EqualFold(p.Category, m.override)
	}
	if len(m.q.Categories) == 0 {
		return true
	}
	return slices.Contains(m.q.Categories, p.Category)
}

func (m matcher) matchBrand(p domain.Product) bool {
	if len(m.q.Brands) == 0 {
		return true
	}
	if !p.Brand.Valid {
		return false
	}
	return slices.Contains(m.q.Brands, strings.ToLower(p.Brand.String))
}

func (m matcher) matchUsage(p domain.Product) bool {
	if len(m.q.Usages) == 0 {
		return true
	}
	if !p.Usage.Valid {
		return false
	}
	usage := strings.ToLower(p.Usage.String)
	for _, u := range m.q.Usages {
		if strings.Contains(usage, strings.ToLower(u)) {
			return true
		}
	}
	return false
}

// Search returns the products matching q in the order q.Sort selects.
// The result is never nil.
func (c *Catalog) Search(q Query) []domain.Product {
	m := newMatcher(q)
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if m.match(p) {
			out = append(out, p)
		}
	}
	c.Sort(out, q.Sort)
	return out
}
