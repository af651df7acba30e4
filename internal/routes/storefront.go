package routes

import (
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/router"
)

// RegisterStorefrontRoutes registers the storefront JSON API.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Catalog views
	r.Get("/api/home", deps.CatalogHandler.Home)
	r.Get("/api/shop", deps.CatalogHandler.Shop)
	r.Get("/api/sales", deps.CatalogHandler.Sales)
	r.Get("/api/search", deps.CatalogHandler.Search)
	r.Get("/api/search/suggest", deps.CatalogHandler.Suggest)
	r.Get("/api/products/{id}", deps.CatalogHandler.Product)
	r.Get("/api/recently-viewed", deps.CatalogHandler.RecentlyViewed)

	// Shopping cart
	r.Get("/api/cart", deps.CartHandler.View)
	r.Delete("/api/cart", deps.CartHandler.Clear)
	r.Post("/api/cart/items", deps.CartHandler.Add)
	r.Patch("/api/cart/items/{id}", deps.CartHandler.Update)
	r.Delete("/api/cart/items/{id}", deps.CartHandler.Remove)

	// Authentication and checkout (POST routes get the stricter limit)
	sensitive := r
	if deps.Sensitive != nil {
		sensitive = r.Group(deps.Sensitive)
	}
	sensitive.Post("/api/account/register", deps.AccountHandler.Register)
	sensitive.Post("/api/account/login", deps.AccountHandler.Login)
	sensitive.Post("/api/checkout", deps.CheckoutHandler.PlaceOrder)
	r.Post("/api/account/logout", deps.AccountHandler.Logout)
	r.Get("/api/orders/{id}", deps.CheckoutHandler.Order)

	// Account routes (require authentication)
	account := r
	if deps.RequireUser != nil {
		account = r.Group(deps.RequireUser)
	}
	account.Get("/api/account/me", deps.AccountHandler.Me)
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *router.Router, deps OpsDeps) {
	r.Get("/health", deps.Health)
	if deps.Metrics != nil {
		r.Handle("GET", "/metrics", deps.Metrics)
	}
}
