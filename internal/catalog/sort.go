package catalog

import (
	"slices"

	"golang.org/x/text/collate"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

// Sort orders products in place by key. The sort is stable, so ties keep
// their relative order. Products without a price sort after priced ones in
// both price orders.
func (c *Catalog) Sort(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return comparePrice(a, b, false)
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return comparePrice(a, b, true)
		})
	case SortNameAsc, SortNameDesc:
		// Collators carry scratch buffers and are not safe to share.
		col := collate.New(c.lang)
		desc := key == SortNameDesc
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			if desc {
				return col.CompareString(b.Name, a.Name)
			}
			return col.CompareString(a.Name, b.Name)
		})
	}
}

func comparePrice(a, b domain.Product, desc bool) int {
	switch {
	case !a.Price.Valid && !b.Price.Valid:
		return 0
	case !a.Price.Valid:
		return 1
	case !b.Price.Valid:
		return -1
	}
	if desc {
		return b.Price.Decimal.Cmp(a.Price.Decimal)
	}
	return a.Price.Decimal.Cmp(b.Price.Decimal)
}
