// Package catalog is the product query engine: filtering, keyword search,
// sorting and the derived views every storefront page is built from.
//
// A Catalog is an immutable snapshot. Every method is a pure function of the
// snapshot and its arguments, so a Catalog may be shared freely between
// goroutines.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

// ErrMalformed is returned by Decode when the document is not a JSON array.
var ErrMalformed = errors.New("catalog: document is not a JSON array")

// Catalog is an ordered, read-only collection of products.
type Catalog struct {
	products []domain.Product
	index    map[int64]int
	lang     language.Tag
}

// New builds a catalog from products in catalog order. lang selects the
// collation used for name sorting. When ids repeat, lookups resolve to the
// first record.
func New(products []domain.Product, lang language.Tag) *Catalog {
	c := &Catalog{
		products: products,
		index:    make(map[int64]int, len(products)),
		lang:     lang,
	}
	for i, p := range products {
		if _, ok := c.index[p.ID]; !ok {
			c.index[p.ID] = i
		}
	}
	return c
}

// Empty returns a catalog with no products.
func Empty(lang language.Tag) *Catalog {
	return New(nil, lang)
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns a copy of every product in catalog order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id int64) (domain.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Language returns the collation language.
func (c *Catalog) Language() language.Tag { return c.lang }

// RecordError describes a catalog entry that could not be decoded.
type RecordError struct {
	Index int
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// Decode parses a catalog document: a JSON array of product records.
// Records that fail to decode are skipped and reported in the returned
// slice; the error is non-nil only when the document itself is unusable.
func Decode(data []byte) ([]domain.Product, []RecordError, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, nil, ErrMalformed
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	products := make([]domain.Product, 0, len(raw))
	var skipped []RecordError
	for i, r := range raw {
		var p domain.Product
		if err := json.Unmarshal(r, &p); err != nil {
			skipped = append(skipped, RecordError{Index: i, Err: err})
			continue
		}
		products = append(products, p)
	}
	return products, skipped, nil
}
