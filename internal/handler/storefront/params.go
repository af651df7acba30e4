package storefront

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

// multiValue collects a parameter given repeatedly or comma separated.
func multiValue(values url.Values, key string) []string {
	var out []string
	for _, v := range values[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func lowered(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
	return values
}

// parseSearchQuery builds a catalog.Query from search page parameters.
func parseSearchQuery(values url.Values) (catalog.Query, error) {
	const op = "storefront.search"

	q := catalog.Query{
		Keyword:    strings.TrimSpace(values.Get("keyword")),
		Categories: multiValue(values, "category"),
		Brands:     lowered(multiValue(values, "brand")),
		Usages:     multiValue(values, "usage"),
		Sort:       catalog.ParseSortKey(values.Get("sort")),
	}

	var verr error
	if v := strings.TrimSpace(values.Get("minPrice")); v != "" {
		n, err := parseAmount(v)
		if err != nil {
			verr = domain.AddFieldError(verr, "minPrice", "Minimum price must be a non-negative number")
		} else {
			q.MinPrice = n
		}
	}
	if v := strings.TrimSpace(values.Get("maxPrice")); v != "" {
		n, err := parseAmount(v)
		if err != nil {
			verr = domain.AddFieldError(verr, "maxPrice", "Maximum price must be a non-negative number")
		} else {
			q.MaxPrice = decimal.NewNullDecimal(n)
		}
	}
	if v := strings.TrimSpace(values.Get("inStock")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			verr = domain.AddFieldError(verr, "inStock", "inStock must be true or false")
		}
		q.InStockOnly = b
	}

	if verr != nil {
		var ve *domain.ValidationError
		if errors.As(verr, &ve) {
			ve.Op = op
		}
		return catalog.Query{}, verr
	}
	return q, nil
}

var errNegativeAmount = errors.New("amount is negative")

// parseAmount reads a non-negative decimal amount such as "9.5".
func parseAmount(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errNegativeAmount
	}
	return d, nil
}

// parseShopFilter builds the shop page chip state.
func parseShopFilter(values url.Values) catalog.ShopFilter {
	category := strings.ToLower(strings.TrimSpace(values.Get("category")))
	if category == "" {
		category = catalog.ShopAll
	}
	return catalog.ShopFilter{
		Category: category,
		CPU:      multiValue(values, "cpu"),
		VGA:      multiValue(values, "vga"),
		RAM:      multiValue(values, "ram"),
		Storage:  multiValue(values, "storage"),
		Screen:   lowered(multiValue(values, "screen")),
	}
}

// parseID reads a positive integer path value.
func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Errorf(domain.EINVALID, "", "Invalid %s", name)
	}
	return id, nil
}

// decodeJSON reads a JSON request body into v. Unknown fields are rejected.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return domain.Errorf(domain.ETOOLARGE, "", "Request body too large")
		case errors.Is(err, io.EOF):
			return domain.Errorf(domain.EINVALID, "", "Request body is empty")
		default:
			return domain.WrapError(err, domain.EINVALID, "", "Request body is not valid JSON")
		}
	}
	return nil
}
