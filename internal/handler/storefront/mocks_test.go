package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/service"
)

// mockCatalogService implements service.CatalogService for testing
type mockCatalogService struct {
	homeFunc           func(ctx context.Context, sessionID, cpuTab string) (*service.HomePage, error)
	shopFunc           func(ctx context.Context, filter catalog.ShopFilter) []service.ProductCard
	salesFunc          func(ctx context.Context) []service.ProductCard
	searchFunc         func(ctx context.Context, q catalog.Query) []service.ProductCard
	suggestFunc        func(ctx context.Context, keyword string) []service.ProductCard
	productDetailFunc  func(ctx context.Context, sessionID string, id int64) (*service.ProductDetail, error)
	recentlyViewedFunc func(ctx context.Context, sessionID string) ([]service.ProductCard, error)
}

func (m *mockCatalogService) Reload(ctx context.Context) error { return nil }

func (m *mockCatalogService) Snapshot() *catalog.Catalog { return catalog.Empty(language.Vietnamese) }

func (m *mockCatalogService) Home(ctx context.Context, sessionID, cpuTab string) (*service.HomePage, error) {
	if m.homeFunc != nil {
		return m.homeFunc(ctx, sessionID, cpuTab)
	}
	return &service.HomePage{}, nil
}

func (m *mockCatalogService) Shop(ctx context.Context, filter catalog.ShopFilter) []service.ProductCard {
	if m.shopFunc != nil {
		return m.shopFunc(ctx, filter)
	}
	return nil
}

func (m *mockCatalogService) Sales(ctx context.Context) []service.ProductCard {
	if m.salesFunc != nil {
		return m.salesFunc(ctx)
	}
	return nil
}

func (m *mockCatalogService) Search(ctx context.Context, q catalog.Query) []service.ProductCard {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, q)
	}
	return nil
}

func (m *mockCatalogService) Suggest(ctx context.Context, keyword string) []service.ProductCard {
	if m.suggestFunc != nil {
		return m.suggestFunc(ctx, keyword)
	}
	return nil
}

func (m *mockCatalogService) ProductDetail(ctx context.Context, sessionID string, id int64) (*service.ProductDetail, error) {
	if m.productDetailFunc != nil {
		return m.productDetailFunc(ctx, sessionID, id)
	}
	return nil, service.ErrProductNotFound
}

func (m *mockCatalogService) RecentlyViewed(ctx context.Context, sessionID string) ([]service.ProductCard, error) {
	if m.recentlyViewedFunc != nil {
		return m.recentlyViewedFunc(ctx, sessionID)
	}
	return nil, nil
}

// mockCartService implements service.CartService for testing
type mockCartService struct {
	getCartSummaryFunc     func(ctx context.Context, sessionID string) (*domain.CartSummary, error)
	addItemFunc            func(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartSummary, error)
	updateItemQuantityFunc func(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartSummary, error)
	removeItemFunc         func(ctx context.Context, sessionID string, productID int64) (*domain.CartSummary, error)
	clearCartFunc          func(ctx context.Context, sessionID string) error
}

func (m *mockCartService) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	return domain.Cart{}, nil
}

func (m *mockCartService) GetCartSummary(ctx context.Context, sessionID string) (*domain.CartSummary, error) {
	if m.getCartSummaryFunc != nil {
		return m.getCartSummaryFunc(ctx, sessionID)
	}
	return &domain.CartSummary{Items: []domain.CartItem{}}, nil
}

func (m *mockCartService) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartSummary, error) {
	if m.addItemFunc != nil {
		return m.addItemFunc(ctx, sessionID, productID, quantity)
	}
	return &domain.CartSummary{}, nil
}

func (m *mockCartService) UpdateItemQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartSummary, error) {
	if m.updateItemQuantityFunc != nil {
		return m.updateItemQuantityFunc(ctx, sessionID, productID, quantity)
	}
	return &domain.CartSummary{}, nil
}

func (m *mockCartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.CartSummary, error) {
	if m.removeItemFunc != nil {
		return m.removeItemFunc(ctx, sessionID, productID)
	}
	return &domain.CartSummary{}, nil
}

func (m *mockCartService) ClearCart(ctx context.Context, sessionID string) error {
	if m.clearCartFunc != nil {
		return m.clearCartFunc(ctx, sessionID)
	}
	return nil
}

// mockAccountService implements service.AccountService for testing
type mockAccountService struct {
	registerFunc func(ctx context.Context, sessionID string, reg domain.Registration) (*domain.User, error)
	loginFunc    func(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error)
	logoutFunc   func(ctx context.Context, sessionID string) error
}

func (m *mockAccountService) Register(ctx context.Context, sessionID string, reg domain.Registration) (*domain.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, sessionID, reg)
	}
	return nil, nil
}

func (m *mockAccountService) Login(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, sessionID, creds)
	}
	return nil, service.ErrInvalidCredentials
}

func (m *mockAccountService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *mockAccountService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	return nil, nil
}

// mockCheckoutService implements service.CheckoutService for testing
type mockCheckoutService struct {
	placeOrderFunc func(ctx context.Context, sessionID string, user *domain.User, details domain.CheckoutDetails) (*domain.Order, error)
	getOrderFunc   func(ctx context.Context, sessionID string, orderID uuid.UUID) (*domain.Order, error)
}

func (m *mockCheckoutService) PlaceOrder(ctx context.Context, sessionID string, user *domain.User, details domain.CheckoutDetails) (*domain.Order, error) {
	if m.placeOrderFunc != nil {
		return m.placeOrderFunc(ctx, sessionID, user, details)
	}
	return nil, service.ErrEmptyCart
}

func (m *mockCheckoutService) GetOrder(ctx context.Context, sessionID string, orderID uuid.UUID) (*domain.Order, error) {
	if m.getOrderFunc != nil {
		return m.getOrderFunc(ctx, sessionID, orderID)
	}
	return nil, service.ErrOrderNotFound
}

const testSession = "test-session"

// newRequest builds a request carrying the test session. A non-empty body
// is sent as JSON.
func newRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(domain.NewContextWithSession(req.Context(), testSession))
}

// serve routes req through a mux so path values are populated.
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}
