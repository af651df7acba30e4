// Package storefront serves the storefront's JSON API.
package storefront

import (
	"net/http"
	"strings"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/handler"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/service"
)

// listResponse wraps product listings.
type listResponse struct {
	Products []service.ProductCard `json:"products"`
	Count    int                   `json:"count"`
}

func newListResponse(cards []service.ProductCard) listResponse {
	if cards == nil {
		cards = []service.ProductCard{}
	}
	return listResponse{Products: cards, Count: len(cards)}
}

// respondError writes err with its validation fields when it has any.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	handler.ValidationErrorResponse(w, r, err)
}

// CatalogHandler handles the catalog views: home, shop, sales, search,
// suggestions, product detail and recently viewed.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Home handles GET /api/home
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := h.catalog.Home(ctx, domain.SessionFromContext(ctx), r.URL.Query().Get("cpu"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, page)
}

// Shop handles GET /api/shop
func (h *CatalogHandler) Shop(w http.ResponseWriter, r *http.Request) {
	filter := parseShopFilter(r.URL.Query())
	handler.WriteJSON(w, http.StatusOK, newListResponse(h.catalog.Shop(r.Context(), filter)))
}

// Sales handles GET /api/sales
func (h *CatalogHandler) Sales(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, newListResponse(h.catalog.Sales(r.Context())))
}

// Search handles GET /api/search
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, newListResponse(h.catalog.Search(r.Context(), q)))
}

// Suggest handles GET /api/search/suggest
func (h *CatalogHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	handler.WriteJSON(w, http.StatusOK, newListResponse(h.catalog.Suggest(r.Context(), keyword)))
}

// Product handles GET /api/products/{id}
func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	detail, err := h.catalog.ProductDetail(ctx, domain.SessionFromContext(ctx), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, detail)
}

// RecentlyViewed handles GET /api/recently-viewed
func (h *CatalogHandler) RecentlyViewed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cards, err := h.catalog.RecentlyViewed(ctx, domain.SessionFromContext(ctx))
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, newListResponse(cards))
}
