package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/email"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/state"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/storage"
)

const testPlaceholder = "assets/images/placeholder.png"

const testCatalog = `[
	{"id": 1, "name": "ROG Strix G16", "category": "laptop", "price": 20000000, "originalPrice": 25000000,
	 "brand": "Asus", "stock": 3, "specs": ["Intel Core i7", "RTX 4060"], "image": ["rog-1.jpg", "rog-2.jpg"]},
	{"id": 2, "name": "Zenbook 14", "category": "laptop", "price": 18000000, "originalPrice": 18000000,
	 "brand": "Asus", "stock": 0, "specs": ["Intel Core Ultra 5"]},
	{"id": 3, "name": "GVN Titan", "category": "pc_gvn", "price": 25000000, "originalPrice": 27000000,
	 "brand": "GVN", "stock": 10, "specs": ["Intel Core i5-13400F", "RTX 4060 8GB"]},
	{"id": 4, "name": "GVN Ryzen", "category": "pc_gvn", "price": 22000000, "originalPrice": 22000000,
	 "brand": "GVN", "stock": 1, "specs": ["AMD Ryzen 5 7600"]},
	{"id": 5, "name": "Dell U2723QE", "category": "monitor", "price": 12000000, "originalPrice": 12000000,
	 "brand": "Dell", "stock": 4, "specs": ["27 inch"]},
	{"id": 6, "name": "Mystery Box", "category": "mouse", "stock": 5}
]`

var testKeys = state.Keys{Prefix: "test"}

// writeCatalog stores doc as products.json in a fresh local storage root.
func writeCatalog(t *testing.T, doc string) *storage.LocalStorage {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte(doc), 0o644))
	src, err := storage.NewLocalStorage(dir, "/static")
	require.NoError(t, err)
	return src
}

// newTestCatalogService returns a loaded catalog service over an in-memory
// state store.
func newTestCatalogService(t *testing.T, store state.Store) CatalogService {
	t.Helper()
	svc := NewCatalogService(
		writeCatalog(t, testCatalog),
		NewRecentlyViewedService(store, testKeys, 0),
		CatalogOptions{Key: "products.json", Language: language.Vietnamese, PlaceholderImage: testPlaceholder},
		nil,
	)
	require.NoError(t, svc.Reload(context.Background()))
	return svc
}

// fakeMailer records the emails services ask for.
type fakeMailer struct {
	confirmations []email.OrderConfirmationEmail
	welcomes      []email.WelcomeEmail
	err           error
}

func (m *fakeMailer) SendOrderConfirmation(ctx context.Context, data email.OrderConfirmationEmail) error {
	m.confirmations = append(m.confirmations, data)
	return m.err
}

func (m *fakeMailer) SendWelcome(ctx context.Context, data email.WelcomeEmail) error {
	m.welcomes = append(m.welcomes, data)
	return m.err
}

func cardIDs(cards []ProductCard) []int64 {
	out := make([]int64, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}
