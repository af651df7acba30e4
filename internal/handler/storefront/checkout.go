package storefront

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/handler"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/service"
)

// CheckoutHandler handles order placement and order lookup.
type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

type orderResponse struct {
	Order *domain.Order `json:"order"`
}

// PlaceOrder handles POST /api/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CheckoutDetails
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	order, err := h.checkoutService.PlaceOrder(ctx, domain.SessionFromContext(ctx), domain.UserFromContext(ctx), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, orderResponse{Order: order})
}

// Order handles GET /api/orders/{id}
func (h *CheckoutHandler) Order(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, r, service.ErrOrderNotFound)
		return
	}

	order, err := h.checkoutService.GetOrder(ctx, domain.SessionFromContext(ctx), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, orderResponse{Order: order})
}
