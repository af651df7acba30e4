package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/service"
)

func card(id int64, name string) service.ProductCard {
	return service.ProductCard{Product: domain.Product{ID: id, Name: name}}
}

func decodeList(t *testing.T, body []byte) listResponse {
	t.Helper()
	var got listResponse
	require.NoError(t, json.Unmarshal(body, &got))
	return got
}

func TestCatalogHandler_Home(t *testing.T) {
	var gotSession, gotTab string
	h := NewCatalogHandler(&mockCatalogService{
		homeFunc: func(ctx context.Context, sessionID, cpuTab string) (*service.HomePage, error) {
			gotSession, gotTab = sessionID, cpuTab
			return &service.HomePage{CPUTab: "Core i7", BestSelling: []service.ProductCard{card(3, "GVN Titan")}}, nil
		},
	})

	rec := serve("GET /api/home", h.Home, newRequest(http.MethodGet, "/api/home?cpu=Core+i7", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testSession, gotSession)
	assert.Equal(t, "Core i7", gotTab)

	var page service.HomePage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, "Core i7", page.CPUTab)
	require.Len(t, page.BestSelling, 1)
	assert.Equal(t, int64(3), page.BestSelling[0].ID)
}

func TestCatalogHandler_Shop(t *testing.T) {
	var got catalog.ShopFilter
	h := NewCatalogHandler(&mockCatalogService{
		shopFunc: func(ctx context.Context, filter catalog.ShopFilter) []service.ProductCard {
			got = filter
			return []service.ProductCard{card(1, "ROG")}
		},
	})

	rec := serve("GET /api/shop", h.Shop, newRequest(http.MethodGet, "/api/shop?category=PC&cpu=i5,i7&ram=16GB&screen=Large", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	want := catalog.ShopFilter{
		Category: catalog.ShopPC,
		CPU:      []string{"i5", "i7"},
		RAM:      []string{"16GB"},
		Screen:   []string{catalog.ScreenLarge},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, decodeList(t, rec.Body.Bytes()).Count)
}

func TestCatalogHandler_ShopDefaultsToAll(t *testing.T) {
	var got catalog.ShopFilter
	h := NewCatalogHandler(&mockCatalogService{
		shopFunc: func(ctx context.Context, filter catalog.ShopFilter) []service.ProductCard {
			got = filter
			return nil
		},
	})

	rec := serve("GET /api/shop", h.Shop, newRequest(http.MethodGet, "/api/shop", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, catalog.ShopAll, got.Category)
	assert.JSONEq(t, `{"products":[],"count":0}`, rec.Body.String())
}

func TestCatalogHandler_Search(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantQuery  catalog.Query
		wantFields []string
	}{
		{
			name:       "full query",
			target:     "/api/search?keyword=+rog+&category=laptop&brand=ASUS&brand=msi&usage=gaming&minPrice=9.5&maxPrice=30000000.75&inStock=true&sort=price-low-high",
			wantStatus: http.StatusOK,
			wantQuery: catalog.Query{
				Keyword:     "rog",
				MinPrice:    decimal.RequireFromString("9.5"),
				MaxPrice:    decimal.NewNullDecimal(decimal.RequireFromString("30000000.75")),
				Categories:  []string{"laptop"},
				Brands:      []string{"asus", "msi"},
				Usages:      []string{"gaming"},
				InStockOnly: true,
				Sort:        catalog.SortPriceAsc,
			},
		},
		{
			name:       "categories keep their case",
			target:     "/api/search?category=Laptop,pc_gvn",
			wantStatus: http.StatusOK,
			wantQuery:  catalog.Query{Categories: []string{"Laptop", "pc_gvn"}, Sort: catalog.SortDefault},
		},
		{
			name:       "empty query",
			target:     "/api/search",
			wantStatus: http.StatusOK,
			wantQuery:  catalog.Query{Sort: catalog.SortDefault},
		},
		{
			name:       "bad numbers",
			target:     "/api/search?minPrice=cheap&maxPrice=-5.5&inStock=maybe",
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"minPrice", "maxPrice", "inStock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got catalog.Query
			called := false
			h := NewCatalogHandler(&mockCatalogService{
				searchFunc: func(ctx context.Context, q catalog.Query) []service.ProductCard {
					called = true
					got = q
					return []service.ProductCard{}
				},
			})

			rec := serve("GET /api/search", h.Search, newRequest(http.MethodGet, tt.target, ""))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, called)
				var body struct {
					Error struct {
						Code   string            `json:"code"`
						Fields map[string]string `json:"fields"`
					} `json:"error"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, domain.EINVALID, body.Error.Code)
				for _, f := range tt.wantFields {
					assert.Contains(t, body.Error.Fields, f)
				}
				return
			}
			if diff := cmp.Diff(tt.wantQuery, got); diff != "" {
				t.Errorf("query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCatalogHandler_Suggest(t *testing.T) {
	var got string
	h := NewCatalogHandler(&mockCatalogService{
		suggestFunc: func(ctx context.Context, keyword string) []service.ProductCard {
			got = keyword
			return []service.ProductCard{card(1, "ROG"), card(2, "Zenbook")}
		},
	})

	rec := serve("GET /api/search/suggest", h.Suggest, newRequest(http.MethodGet, "/api/search/suggest?keyword=%20asus%20", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asus", got)
	assert.Equal(t, 2, decodeList(t, rec.Body.Bytes()).Count)
}

func TestCatalogHandler_Sales(t *testing.T) {
	h := NewCatalogHandler(&mockCatalogService{
		salesFunc: func(ctx context.Context) []service.ProductCard {
			return []service.ProductCard{card(1, "ROG")}
		},
	})

	rec := serve("GET /api/sales", h.Sales, newRequest(http.MethodGet, "/api/sales", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeList(t, rec.Body.Bytes())
	require.Len(t, got.Products, 1)
	assert.Equal(t, "ROG", got.Products[0].Name)
}

func TestCatalogHandler_Product(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{name: "found", target: "/api/products/1", wantStatus: http.StatusOK},
		{name: "unknown id", target: "/api/products/99", wantStatus: http.StatusNotFound},
		{name: "non numeric id", target: "/api/products/rog", wantStatus: http.StatusBadRequest},
		{name: "zero id", target: "/api/products/0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCatalogHandler(&mockCatalogService{
				productDetailFunc: func(ctx context.Context, sessionID string, id int64) (*service.ProductDetail, error) {
					assert.Equal(t, testSession, sessionID)
					if id != 1 {
						return nil, service.ErrProductNotFound
					}
					return &service.ProductDetail{Product: card(1, "ROG"), Gallery: []string{"rog-1.png"}}, nil
				},
			})

			rec := serve("GET /api/products/{id}", h.Product, newRequest(http.MethodGet, tt.target, ""))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"gallery":["rog-1.png"]`)
			}
		})
	}
}

func TestCatalogHandler_RecentlyViewed(t *testing.T) {
	h := NewCatalogHandler(&mockCatalogService{
		recentlyViewedFunc: func(ctx context.Context, sessionID string) ([]service.ProductCard, error) {
			return []service.ProductCard{card(5, "Dell monitor"), card(1, "ROG")}, nil
		},
	})

	rec := serve("GET /api/recently-viewed", h.RecentlyViewed, newRequest(http.MethodGet, "/api/recently-viewed", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeList(t, rec.Body.Bytes())
	require.Len(t, got.Products, 2)
	assert.Equal(t, int64(5), got.Products[0].ID)
}
