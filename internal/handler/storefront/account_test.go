package storefront

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/service"
)

func TestAccountHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "created",
			body:       `{"name":"Lan","email":"lan@example.com","password":"correct horse"}`,
			wantStatus: http.StatusCreated,
			wantBody:   `"email":"lan@example.com"`,
		},
		{
			name:       "email taken",
			body:       `{"name":"Lan","email":"lan@example.com","password":"correct horse"}`,
			serviceErr: service.ErrEmailTaken,
			wantStatus: http.StatusConflict,
			wantBody:   domain.ECONFLICT,
		},
		{
			name:       "validation",
			body:       `{"name":"","email":"lan","password":"x"}`,
			serviceErr: domain.NewValidationError("account.register", "name", "Name is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"fields":{"name":"Name is required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAccountHandler(&mockAccountService{
				registerFunc: func(ctx context.Context, sessionID string, reg domain.Registration) (*domain.User, error) {
					assert.Equal(t, testSession, sessionID)
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &domain.User{ID: uuid.New(), Name: reg.Name, Email: reg.Email}, nil
				},
			})

			rec := serve("POST /api/account/register", h.Register, newRequest(http.MethodPost, "/api/account/register", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "password")
		})
	}
}

func TestAccountHandler_Login(t *testing.T) {
	h := NewAccountHandler(&mockAccountService{
		loginFunc: func(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error) {
			if creds.Password != "correct horse" {
				return nil, service.ErrInvalidCredentials
			}
			return &domain.User{ID: uuid.New(), Email: creds.Email}, nil
		},
	})

	rec := serve("POST /api/account/login", h.Login,
		newRequest(http.MethodPost, "/api/account/login", `{"email":"lan@example.com","password":"correct horse"}`))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve("POST /api/account/login", h.Login,
		newRequest(http.MethodPost, "/api/account/login", `{"email":"lan@example.com","password":"wrong"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountHandler_Logout(t *testing.T) {
	loggedOut := ""
	h := NewAccountHandler(&mockAccountService{
		logoutFunc: func(ctx context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	})

	rec := serve("POST /api/account/logout", h.Logout, newRequest(http.MethodPost, "/api/account/logout", ""))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testSession, loggedOut)
}

func TestAccountHandler_Me(t *testing.T) {
	h := NewAccountHandler(&mockAccountService{})

	rec := serve("GET /api/account/me", h.Me, newRequest(http.MethodGet, "/api/account/me", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	user := &domain.User{ID: uuid.New(), Name: "Lan", Email: "lan@example.com"}
	req := newRequest(http.MethodGet, "/api/account/me", "")
	req = req.WithContext(domain.NewContextWithUser(req.Context(), user))

	rec = serve("GET /api/account/me", h.Me, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Lan"`)
}
