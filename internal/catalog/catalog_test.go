package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

const fixture = `[
	{"id": 1, "name": "ROG Laptop", "category": "laptop", "price": 20000000, "originalPrice": 25000000,
	 "brand": "Asus", "stock": 2, "specs": ["i7", "16GB"], "usage": "Gaming"},
	{"id": 2, "name": "Zen Phone", "category": "phone", "price": 8000000, "originalPrice": 8000000,
	 "brand": "Asus", "stock": 0, "specs": ["128GB"], "screenSize": 5.9, "storage": "128GB"},
	{"id": 3, "name": "Galaxy Ultra", "category": "phone", "price": 30000000, "originalPrice": 32000000,
	 "brand": "Samsung", "stock": 7, "specs": {"chip": "Snapdragon", "screenSize": "6.8 inch"},
	 "screenSize": 6.8, "storage": "256GB"},
	{"id": 4, "name": "GVN Titan", "category": "pc_gvn", "price": 25000000, "originalPrice": 27000000,
	 "brand": "GVN", "stock": 3, "specs": ["Intel Core i5-13400F", "RTX 4060 8GB", "16GB DDR5"]},
	{"id": 5, "name": "GVN Ryzen", "category": "pc_gvn", "price": 22000000, "originalPrice": 22000000,
	 "brand": "GVN", "stock": 1, "specs": ["AMD Ryzen 5 7600", "RX 7600", "32GB DDR5"]},
	{"id": 6, "name": "Office PC", "category": "pc", "price": 8000000, "originalPrice": 9000000,
	 "stock": 10, "specs": ["Intel Core i3", "Intel UHD", "8GB"], "usage": "Văn phòng, Học tập"},
	{"id": 7, "name": "Dell U2723QE", "category": "monitor", "price": 12000000, "originalPrice": 12000000,
	 "brand": "Dell", "stock": 4, "specs": ["27 inch", "4K IPS"]},
	{"id": 8, "name": "Mystery Box", "category": "mouse", "stock": 1}
]`

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	products, skipped, err := catalog.Decode([]byte(fixture))
	require.NoError(t, err)
	require.Empty(t, skipped)
	return catalog.New(products, language.Vietnamese)
}

func ids(products []domain.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func assertIDs(t *testing.T, want []int64, got []domain.Product) {
	t.Helper()
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("result ids mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	t.Run("skips records that fail to decode", func(t *testing.T) {
		products, skipped, err := catalog.Decode([]byte(`[{"id": 1, "name": "a"}, {"name": "no id"}, 42, {"id": 3}]`))
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, ids(products))
		require.Len(t, skipped, 2)
		assert.Equal(t, 1, skipped[0].Index)
		assert.Equal(t, 2, skipped[1].Index)
	})

	t.Run("rejects documents that are not arrays", func(t *testing.T) {
		for _, doc := range []string{``, `{"products": []}`, `[{"id": 1}`, `null`} {
			_, _, err := catalog.Decode([]byte(doc))
			assert.ErrorIs(t, err, catalog.ErrMalformed, "document %q", doc)
		}
	})
}

func TestCatalog_Lookup(t *testing.T) {
	c := catalog.New([]domain.Product{
		{ID: 1, Name: "first"},
		{ID: 1, Name: "duplicate"},
		{ID: 2, Name: "second"},
	}, language.English)

	p, ok := c.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "first", p.Name)

	_, ok = c.Lookup(99)
	assert.False(t, ok)
	assert.Equal(t, 3, c.Len())
}

func TestParseKeyword(t *testing.T) {
	tests := []struct {
		keyword  string
		phrase   string
		override string
	}{
		{keyword: "", phrase: "", override: ""},
		{keyword: "laptop asus", phrase: "asus", override: "laptop"},
		{keyword: "  ROG   Strix ", phrase: "rog strix", override: ""},
		{keyword: "phone laptop gaming", phrase: "gaming", override: "laptop"},
		{keyword: "PHONE", phrase: "", override: "phone"},
		{keyword: "pc_gvn", phrase: "pc_gvn", override: ""},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			phrase, override := catalog.ParseKeyword(tt.keyword)
			assert.Equal(t, tt.phrase, phrase)
			assert.Equal(t, tt.override, override)
		})
	}
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, catalog.SortPriceAsc, catalog.ParseSortKey("price-low-high"))
	assert.Equal(t, catalog.SortPriceAsc, catalog.ParseSortKey("price-asc"))
	assert.Equal(t, catalog.SortPriceDesc, catalog.ParseSortKey("price-high-low"))
	assert.Equal(t, catalog.SortNameDesc, catalog.ParseSortKey("NAME-DESC"))
	assert.Equal(t, catalog.SortDefault, catalog.ParseSortKey("popularity"))
}

func TestCatalog_Search(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		name  string
		query catalog.Query
		want  []int64
	}{
		{
			name:  "keyword with in-stock filter",
			query: catalog.Query{Keyword: "asus", InStockOnly: true},
			want:  []int64{1},
		},
		{
			name:  "category token overrides selected categories",
			query: catalog.Query{Keyword: "laptop asus", Categories: []string{"phone"}},
			want:  []int64{1},
		},
		{
			name:  "empty keyword matches every priced product",
			query: catalog.Query{},
			want:  []int64{1, 2, 3, 4, 5, 6, 7},
		},
		{
			name:  "keyword matches list specs",
			query: catalog.Query{Keyword: "ddr5"},
			want:  []int64{4, 5},
		},
		{
			name:  "keyword does not match map specs",
			query: catalog.Query{Keyword: "snapdragon"},
			want:  []int64{},
		},
		{
			name:  "price range is inclusive",
			query: catalog.Query{MinPrice: decimal.NewFromInt(8000000), MaxPrice: decimal.NewNullDecimal(decimal.NewFromInt(12000000))},
			want:  []int64{2, 6, 7},
		},
		{
			name:  "explicit categories",
			query: catalog.Query{Categories: []string{"pc", "monitor"}},
			want:  []int64{6, 7},
		},
		{
			name:  "explicit categories match exactly",
			query: catalog.Query{Categories: []string{"PC", "Monitor"}},
			want:  []int64{},
		},
		{
			name:  "brands compare lowercase and skip unbranded",
			query: catalog.Query{Brands: []string{"gvn", "dell"}},
			want:  []int64{4, 5, 7},
		},
		{
			name:  "usage is a substring match",
			query: catalog.Query{Usages: []string{"học tập", "gaming"}},
			want:  []int64{1, 6},
		},
		{
			name:  "price descending",
			query: catalog.Query{Categories: []string{"pc_gvn", "pc"}, Sort: catalog.SortPriceDesc},
			want:  []int64{4, 5, 6},
		},
		{
			name:  "name ascending",
			query: catalog.Query{Keyword: "gvn", Sort: catalog.SortNameAsc},
			want:  []int64{5, 4},
		},
		{
			name:  "no match is empty not nil",
			query: catalog.Query{Keyword: "toaster"},
			want:  []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query)
			require.NotNil(t, got)
			assertIDs(t, tt.want, got)
		})
	}
}

func TestCatalog_SearchProperties(t *testing.T) {
	c := newCatalog(t)

	t.Run("results are a subset of the catalog", func(t *testing.T) {
		for _, p := range c.Search(catalog.Query{Keyword: "gvn"}) {
			orig, ok := c.Lookup(p.ID)
			require.True(t, ok)
			assert.Equal(t, orig.Name, p.Name)
		}
	})

	t.Run("price orders are reverses with stable ties", func(t *testing.T) {
		asc := c.Search(catalog.Query{Sort: catalog.SortPriceAsc})
		desc := c.Search(catalog.Query{Sort: catalog.SortPriceDesc})
		require.Len(t, desc, len(asc))

		prices := func(ps []domain.Product) []string {
			out := make([]string, len(ps))
			for i, p := range ps {
				out[i] = p.Price.Decimal.String()
			}
			return out
		}
		ascPrices, descPrices := prices(asc), prices(desc)
		for i := range ascPrices {
			assert.Equal(t, ascPrices[i], descPrices[len(descPrices)-1-i])
		}

		// Products 2 and 6 share a price and keep catalog order both ways.
		assertIDs(t, []int64{2, 6, 7, 1, 5, 4, 3}, asc)
		assertIDs(t, []int64{3, 4, 5, 1, 7, 2, 6}, desc)
	})

	t.Run("identical queries give identical results", func(t *testing.T) {
		q := catalog.Query{Keyword: "phone", Sort: catalog.SortNameDesc}
		if diff := cmp.Diff(ids(c.Search(q)), ids(c.Search(q))); diff != "" {
			t.Errorf("non-idempotent search:\n%s", diff)
		}
	})

	t.Run("empty catalog yields empty results", func(t *testing.T) {
		empty := catalog.Empty(language.English)
		assert.Empty(t, empty.Search(catalog.Query{Keyword: "asus"}))
		assert.NotNil(t, empty.Search(catalog.Query{}))
	})
}

func TestCatalog_SortNamesWithCollation(t *testing.T) {
	c := catalog.New(nil, language.Vietnamese)
	products := []domain.Product{
		{ID: 1, Name: "Đèn bàn"},
		{ID: 2, Name: "Bàn phím"},
		{ID: 3, Name: "Chuột"},
		{ID: 4, Name: "Ấm siêu tốc"},
	}

	c.Sort(products, catalog.SortNameAsc)
	assertIDs(t, []int64{4, 2, 3, 1}, products)

	c.Sort(products, catalog.SortNameDesc)
	assertIDs(t, []int64{1, 3, 2, 4}, products)
}

func TestMatch(t *testing.T) {
	p := domain.Product{ID: 1, Name: "Zen Phone", Category: "Phone", Price: decimal.NewNullDecimal(decimal.NewFromInt(100))}

	assert.True(t, catalog.Match(p, catalog.Query{Keyword: "phone zen"}), "category token matches case-insensitively")
	assert.False(t, catalog.Match(p, catalog.Query{Brands: []string{"asus"}}), "missing brand never matches a brand filter")
	assert.False(t, catalog.Match(p, catalog.Query{Usages: []string{"gaming"}}), "missing usage never matches a usage filter")
	assert.False(t, catalog.Match(domain.Product{ID: 2, Name: "Zen"}, catalog.Query{}), "missing price never matches")
}

func TestCatalog_FractionalPrices(t *testing.T) {
	products, skipped, err := catalog.Decode([]byte(`[
		{"id": 1, "name": "Mouse pad", "category": "mouse", "price": 9.6, "originalPrice": 9.9, "stock": 3},
		{"id": 2, "name": "Mouse bungee", "category": "mouse", "price": 10.4, "originalPrice": 10.4, "stock": 3},
		{"id": 3, "name": "Mouse feet", "category": "mouse", "price": 9.65, "originalPrice": 9.65, "stock": 3}
	]`))
	require.NoError(t, err)
	require.Empty(t, skipped)
	c := catalog.New(products, language.English)

	t.Run("fractional discount is kept", func(t *testing.T) {
		assertIDs(t, []int64{1}, c.Discounted())
	})

	t.Run("fractional bounds are inclusive", func(t *testing.T) {
		assertIDs(t, []int64{1}, c.Search(catalog.Query{MaxPrice: decimal.NewNullDecimal(decimal.RequireFromString("9.6"))}))
		assertIDs(t, []int64{1, 3}, c.Search(catalog.Query{MaxPrice: decimal.NewNullDecimal(decimal.RequireFromString("9.65"))}))
		assertIDs(t, []int64{2, 3}, c.Search(catalog.Query{MinPrice: decimal.RequireFromString("9.65")}))
		assertIDs(t, []int64{1, 3}, c.Search(catalog.Query{MaxPrice: decimal.NewNullDecimal(decimal.NewFromInt(10))}))
	})

	t.Run("close prices do not tie", func(t *testing.T) {
		assertIDs(t, []int64{1, 3, 2}, c.Search(catalog.Query{Sort: catalog.SortPriceAsc}))
		assertIDs(t, []int64{2, 3, 1}, c.Search(catalog.Query{Sort: catalog.SortPriceDesc}))
	})
}
