package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

func TestCatalog_Discounted(t *testing.T) {
	c := newCatalog(t)
	assertIDs(t, []int64{1, 3, 4, 6}, c.Discounted())
}

func TestCatalog_InCategory(t *testing.T) {
	c := newCatalog(t)

	assertIDs(t, []int64{2, 3}, c.InCategory("phone", 5))
	assertIDs(t, []int64{4}, c.InCategory("pc_gvn", 1))
	assertIDs(t, []int64{}, c.InCategory("Phone", 5))
}

func TestCPUTerms(t *testing.T) {
	assert.Equal(t, []string{"ryzen", "5"}, catalog.CPUTerms("Ryzen 5 Series"))
	assert.Equal(t, []string{"core", "i5"}, catalog.CPUTerms("Core i5"))
}

func TestCatalog_ByCPUTag(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		tag  string
		want []int64
	}{
		{tag: "Core i5", want: []int64{4}},
		{tag: "Ryzen 5 Series", want: []int64{5}},
		{tag: "Core i7", want: []int64{}},
		// Every term must occur on a single spec line.
		{tag: "Intel DDR5", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assertIDs(t, tt.want, c.ByCPUTag("pc_gvn", tt.tag, 5))
		})
	}

	t.Run("map specs never match", func(t *testing.T) {
		assertIDs(t, []int64{}, c.ByCPUTag("phone", "Snapdragon", 5))
	})
}

func TestPushRecent(t *testing.T) {
	tests := []struct {
		name string
		ids  []int64
		id   int64
		want []int64
	}{
		{name: "moves duplicate to front", ids: []int64{3, 1, 2}, id: 1, want: []int64{1, 3, 2}},
		{name: "prepends new id", ids: []int64{3, 1, 2}, id: 9, want: []int64{9, 3, 1, 2}},
		{name: "caps at limit", ids: []int64{1, 2, 3, 4, 5}, id: 6, want: []int64{6, 1, 2, 3, 4}},
		{name: "starts empty list", ids: nil, id: 4, want: []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]int64(nil), tt.ids...)
			got := catalog.PushRecent(tt.ids, tt.id, catalog.RecentLimit)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PushRecent mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, before, tt.ids, "input must not be modified")
		})
	}
}

func TestCatalog_Resolve(t *testing.T) {
	c := newCatalog(t)
	assertIDs(t, []int64{7, 1, 3}, c.Resolve([]int64{7, 42, 1, 3, 100}))
	assertIDs(t, []int64{}, c.Resolve(nil))
}

func TestCatalog_Related(t *testing.T) {
	c := newCatalog(t)

	asus, _ := c.Lookup(1)
	assertIDs(t, []int64{2}, c.Related(asus, catalog.RelatedLimit))

	unbranded, _ := c.Lookup(6)
	assertIDs(t, []int64{}, c.Related(unbranded, catalog.RelatedLimit))

	many := make([]domain.Product, 0, 7)
	for i := int64(1); i <= 7; i++ {
		many = append(many, domain.Product{ID: i, Brand: pgtype.Text{String: "MSI", Valid: true}})
	}
	mc := catalog.New(many, language.English)
	assertIDs(t, []int64{1, 2, 4, 5}, mc.Related(many[2], catalog.RelatedLimit))
}

func TestCatalog_Suggest(t *testing.T) {
	c := newCatalog(t)

	assertIDs(t, []int64{}, c.Suggest("   ", catalog.SuggestLimit))
	assertIDs(t, []int64{2, 3}, c.Suggest("phone", catalog.SuggestLimit))
	assertIDs(t, []int64{2}, c.Suggest("phone zen", catalog.SuggestLimit))
	// Quick search ignores price, so unpriced products can be suggested.
	assertIDs(t, []int64{8}, c.Suggest("mystery", catalog.SuggestLimit))
	assertIDs(t, []int64{1, 2}, c.Suggest("asus", 2))
}

func TestCatalog_Shop(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		name   string
		filter catalog.ShopFilter
		want   []int64
	}{
		{
			name:   "all without chips",
			filter: catalog.ShopFilter{Category: catalog.ShopAll},
			want:   []int64{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			name:   "pc chip covers desktops and laptops",
			filter: catalog.ShopFilter{Category: catalog.ShopPC},
			want:   []int64{1, 6},
		},
		{
			name:   "pc cpu chips match joined specs",
			filter: catalog.ShopFilter{Category: catalog.ShopPC, CPU: []string{"i3", "i9"}},
			want:   []int64{6},
		},
		{
			name:   "pc chips across groups all apply",
			filter: catalog.ShopFilter{Category: catalog.ShopPC, CPU: []string{"i7"}, RAM: []string{"8GB"}},
			want:   []int64{},
		},
		{
			name:   "phone storage is exact",
			filter: catalog.ShopFilter{Category: catalog.ShopPhone, Storage: []string{"256GB"}},
			want:   []int64{3},
		},
		{
			name:   "small screens",
			filter: catalog.ShopFilter{Category: catalog.ShopPhone, Screen: []string{catalog.ScreenSmall}},
			want:   []int64{2},
		},
		{
			name:   "large screens",
			filter: catalog.ShopFilter{Category: catalog.ShopPhone, Screen: []string{catalog.ScreenLarge}},
			want:   []int64{3},
		},
		{
			name:   "both screen sizes selected do not restrict",
			filter: catalog.ShopFilter{Category: catalog.ShopPhone, Screen: []string{catalog.ScreenSmall, catalog.ScreenLarge}},
			want:   []int64{2, 3},
		},
		{
			name:   "all applies phone chips to phones only",
			filter: catalog.ShopFilter{Category: catalog.ShopAll, Storage: []string{"128GB"}, CPU: []string{"i7"}},
			want:   []int64{1, 2, 4, 5, 7, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertIDs(t, tt.want, c.Shop(tt.filter))
		})
	}
}
