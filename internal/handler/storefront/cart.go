package storefront

import (
	"net/http"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/handler"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/service"
)

// CartHandler handles all cart routes
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  *int  `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

// View handles GET /api/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.cartService.GetCartSummary(ctx, domain.SessionFromContext(ctx))
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, summary)
}

// Add handles POST /api/cart/items. Quantity defaults to 1.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.ProductID <= 0 {
		respondError(w, r, domain.NewValidationError("cart.add", "productId", "Product is required"))
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	summary, err := h.cartService.AddItem(ctx, domain.SessionFromContext(ctx), req.ProductID, quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, summary)
}

// Update handles PATCH /api/cart/items/{id}. Quantity 0 removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Quantity == nil {
		respondError(w, r, domain.NewValidationError("cart.update", "quantity", "Quantity is required"))
		return
	}

	summary, err := h.cartService.UpdateItemQuantity(ctx, domain.SessionFromContext(ctx), id, *req.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, summary)
}

// Remove handles DELETE /api/cart/items/{id}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := h.cartService.RemoveItem(ctx, domain.SessionFromContext(ctx), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, summary)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.cartService.ClearCart(ctx, domain.SessionFromContext(ctx)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
