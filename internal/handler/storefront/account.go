package storefront

import (
	"net/http"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/handler"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/service"
)

// AccountHandler handles registration, sign-in and sign-out.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// Register handles POST /api/account/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.Registration
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.accountService.Register(ctx, domain.SessionFromContext(ctx), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, userResponse{User: user})
}

// Login handles POST /api/account/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.Credentials
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.accountService.Login(ctx, domain.SessionFromContext(ctx), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, userResponse{User: user})
}

// Logout handles POST /api/account/logout. The visitor session and its cart
// are kept.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.accountService.Logout(ctx, domain.SessionFromContext(ctx)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/account/me. Requires a signed-in user.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())
	if user == nil {
		respondError(w, r, service.ErrNotSignedIn)
		return
	}
	handler.WriteJSON(w, http.StatusOK, userResponse{User: user})
}
