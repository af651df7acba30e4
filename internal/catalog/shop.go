package catalog

import (
	"slices"
	"strings"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

// Shop page category chips.
const (
	ShopAll   = "all"
	ShopPC    = "pc"
	ShopPhone = "phone"
)

// Screen size chips. The boundary sits at 6.5 inches.
const (
	ScreenSmall = "small"
	ScreenLarge = "large"

	screenBoundary = 6.5
)

// ShopFilter is the chip state of the shop page. PC chips (CPU, VGA, RAM)
// apply to desktops and laptops; phone chips (Storage, Screen) apply to
// phones. Within a group any selected chip may match; an empty group does
// not restrict.
type ShopFilter struct {
	Category string
	CPU      []string
	VGA      []string
	RAM      []string
	Storage  []string
	Screen   []string
}

// Shop returns the products the shop page shows for f, in catalog order.
func (c *Catalog) Shop(f ShopFilter) []domain.Product {
	switch f.Category {
	case ShopPC:
		return c.filter(func(p domain.Product) bool {
			return isComputer(p) && f.matchPC(p)
		})
	case ShopPhone:
		return c.filter(func(p domain.Product) bool {
			return p.Category == "phone" && f.matchPhone(p)
		})
	default:
		return c.filter(func(p domain.Product) bool {
			switch {
			case p.Category == "phone":
				return f.matchPhone(p)
			case isComputer(p):
				return f.matchPC(p)
			default:
				return true
			}
		})
	}
}

func isComputer(p domain.Product) bool {
	return p.Category == "pc" || p.Category == "laptop"
}

func (f ShopFilter) matchPC(p domain.Product) bool {
	joined := strings.ToLower(strings.Join(p.SpecLines(), " "))
	return anyIn(joined, f.CPU) && anyIn(joined, f.VGA) && anyIn(joined, f.RAM)
}

// anyIn reports whether one of values occurs in text. An empty value set is
// unrestricted.
func anyIn(text string, values []string) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if strings.Contains(text, strings.ToLower(v)) {
			return true
		}
	}
	return false
}

func (f ShopFilter) matchPhone(p domain.Product) bool {
	if len(f.Storage) > 0 && (!p.Storage.Valid || !slices.Contains(f.Storage, p.Storage.String)) {
		return false
	}

	small := slices.Contains(f.Screen, ScreenSmall)
	large := slices.Contains(f.Screen, ScreenLarge)
	if small == large {
		// Neither or both selected.
		return true
	}
	if !p.ScreenSize.Valid || p.ScreenSize.Float64 <= 0 {
		return false
	}
	if small {
		return p.ScreenSize.Float64 < screenBoundary
	}
	return p.ScreenSize.Float64 >= screenBoundary
}
