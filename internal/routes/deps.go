package routes

import (
	"net/http"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/handler/storefront"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/router"
)

// StorefrontDeps contains dependencies for storefront API routes
type StorefrontDeps struct {
	// Catalog views (home, shop, sales, search, suggest, product, recently viewed)
	CatalogHandler *storefront.CatalogHandler

	// Cart
	CartHandler *storefront.CartHandler

	// Account (register, login, logout, me)
	AccountHandler *storefront.AccountHandler

	// Checkout and order lookup
	CheckoutHandler *storefront.CheckoutHandler

	// RequireUser guards routes that need a signed-in user.
	RequireUser router.Middleware

	// Sensitive wraps sign-in, registration and checkout with a stricter
	// rate limit. Nil applies no extra limit.
	Sensitive router.Middleware
}

// OpsDeps contains dependencies for operational routes
type OpsDeps struct {
	Health  http.HandlerFunc
	Metrics http.Handler
}
