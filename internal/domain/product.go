package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Product is a read-only catalog record. Optional attributes use nullable
// pgtype and decimal values so that "absent" is distinguishable from a zero value; every
// filter treats an absent attribute as non-matching.
type Product struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	Category        string              `json:"category"`
	Brand           pgtype.Text         `json:"brand"`
	Price           decimal.NullDecimal `json:"price"`
	OriginalPrice   decimal.NullDecimal `json:"originalPrice"`
	Stock           int64               `json:"stock"`
	Specs           Specs               `json:"specs"`
	Images          ImageSet            `json:"image"`
	Usage           pgtype.Text         `json:"usage"`
	ScreenSize      pgtype.Float8       `json:"screenSize"`
	Storage         pgtype.Text         `json:"storage"`
	Description     string              `json:"description,omitempty"`
	LongDescription string              `json:"longDescription,omitempty"`
}

// LowStockThreshold is the stock level under which a product is flagged as
// nearly sold out.
const LowStockThreshold = 5

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.Stock > 0 }

// LowStock reports whether the product is available but nearly sold out.
func (p Product) LowStock() bool { return p.Stock > 0 && p.Stock < LowStockThreshold }

// Discounted reports whether the product sells below its original price.
func (p Product) Discounted() bool {
	return p.Price.Valid && p.OriginalPrice.Valid && p.Price.Decimal.LessThan(p.OriginalPrice.Decimal)
}

// DiscountPercent is the discount rounded to a whole percent, or 0 when the
// product is not discounted.
func (p Product) DiscountPercent() int64 {
	if !p.Discounted() || p.OriginalPrice.Decimal.IsZero() {
		return 0
	}
	orig := p.OriginalPrice.Decimal
	off := orig.Sub(p.Price.Decimal)
	return off.Div(orig).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// SpecLines returns the free-text spec lines, nil when the product has none.
func (p Product) SpecLines() []string {
	if p.Specs == nil {
		return nil
	}
	return p.Specs.Lines()
}

// SpecPairs returns the display pairs, nil when the product has no specs.
func (p Product) SpecPairs() []SpecPair {
	if p.Specs == nil {
		return nil
	}
	return p.Specs.Pairs()
}

// SpecsContain reports whether text occurs in a free-text spec line.
func (p Product) SpecsContain(text string) bool {
	return p.Specs != nil && p.Specs.Contains(text)
}

// UnmarshalJSON decodes a catalog record. Required fields (id, name,
// category) must be well-formed; optional fields that are missing or of the
// wrong type decode as absent.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              json.Number     `json:"id"`
		Name            string          `json:"name"`
		Category        string          `json:"category"`
		Brand           json.RawMessage `json:"brand"`
		Price           json.RawMessage `json:"price"`
		OriginalPrice   json.RawMessage `json:"originalPrice"`
		Stock           json.RawMessage `json:"stock"`
		Specs           json.RawMessage `json:"specs"`
		Image           json.RawMessage `json:"image"`
		Usage           json.RawMessage `json:"usage"`
		ScreenSize      json.RawMessage `json:"screenSize"`
		Storage         json.RawMessage `json:"storage"`
		Description     json.RawMessage `json:"description"`
		LongDescription json.RawMessage `json:"longDescription"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := raw.ID.Int64()
	if err != nil {
		return fmt.Errorf("product id %q: %w", raw.ID, err)
	}

	stock := decodeAmount(raw.Stock).Decimal.Round(0).IntPart()
	*p = Product{
		ID:              id,
		Name:            raw.Name,
		Category:        raw.Category,
		Brand:           decodeText(raw.Brand),
		Price:           decodeAmount(raw.Price),
		OriginalPrice:   decodeAmount(raw.OriginalPrice),
		Stock:           max(stock, 0),
		Specs:           DecodeSpecs(raw.Specs),
		Images:          decodeImages(raw.Image),
		Usage:           decodeText(raw.Usage),
		ScreenSize:      decodeFloat(raw.ScreenSize),
		Storage:         decodeText(raw.Storage),
		Description:     decodeText(raw.Description).String,
		LongDescription: decodeText(raw.LongDescription).String,
	}
	return nil
}

func decodeText(raw json.RawMessage) pgtype.Text {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// decodeAmount accepts any JSON number, or a numeric string, without losing
// precision.
func decodeAmount(raw json.RawMessage) decimal.NullDecimal {
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func decodeFloat(raw json.RawMessage) pgtype.Float8 {
	var f float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: f, Valid: true}
}

// ImageSet holds product image URLs; the first is the primary image.
type ImageSet []string

// Primary returns the first image, or fallback when there is none.
func (s ImageSet) Primary(fallback string) string {
	if len(s) == 0 || s[0] == "" {
		return fallback
	}
	return s[0]
}

// decodeImages accepts a single URL or a list of URLs.
func decodeImages(raw json.RawMessage) ImageSet {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if one == "" {
			return nil
		}
		return ImageSet{one}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return ImageSet(many)
	}
	return nil
}

// IsKnownCategory reports whether tag is one of CategoryTags.
func IsKnownCategory(tag string) bool {
	tag = strings.ToLower(tag)
	for _, c := range CategoryTags {
		if c == tag {
			return true
		}
	}
	return false
}

// CategoryTags are the category tags a search keyword may name directly.
var CategoryTags = []string{
	"laptop", "pc", "phone", "vga", "cpu", "mainboard", "ram",
	"ssd", "monitor", "mouse", "keyboard", "headset", "chair",
}
