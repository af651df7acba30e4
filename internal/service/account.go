package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/auth"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/email"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/state"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/telemetry"
)

// AccountService provides local account registration and sign-in. The
// signed-in user is bound to the visitor session.
type AccountService interface {
	// Register creates an account and signs the session in.
	Register(ctx context.Context, sessionID string, reg domain.Registration) (*domain.User, error)

	// Login verifies credentials and signs the session in.
	Login(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error)

	// Logout signs the session out. Signing out twice is not an error.
	Logout(ctx context.Context, sessionID string) error

	// CurrentUser returns the session's user, or nil when signed out.
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}

// Mailer sends the emails the services trigger.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, data email.OrderConfirmationEmail) error
	SendWelcome(ctx context.Context, data email.WelcomeEmail) error
}

type accountService struct {
	store      state.Store
	keys       state.Keys
	sessionTTL time.Duration
	hasher     *auth.Hasher
	mailer     Mailer
	shopURL    string
	logger     *slog.Logger
	now        func() time.Time
}

// NewAccountService creates a new account service. mailer may be nil.
func NewAccountService(store state.Store, keys state.Keys, sessionTTL time.Duration, hasher *auth.Hasher, mailer Mailer, shopURL string, logger *slog.Logger) AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &accountService{
		store:      store,
		keys:       keys,
		sessionTTL: sessionTTL,
		hasher:     hasher,
		mailer:     mailer,
		shopURL:    shopURL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *accountService) accountKey(email string) string {
	return s.keys.Key("account", domain.NormalizeEmail(email))
}

func (s *accountService) userKey(sessionID string) string {
	return s.keys.Key("user", sessionID)
}

func (s *accountService) Register(ctx context.Context, sessionID string, reg domain.Registration) (*domain.User, error) {
	const op = "account.register"

	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	reg = reg.Normalize()
	var verr error
	if reg.Name == "" {
		verr = domain.AddFieldError(verr, "name", "Name is required")
	}
	if reg.Email == "" {
		verr = domain.AddFieldError(verr, "email", "Email is required")
	} else if _, err := mail.ParseAddress(reg.Email); err != nil {
		verr = domain.AddFieldError(verr, "email", "Email address is invalid")
	}
	if reg.Password == "" {
		verr = domain.AddFieldError(verr, "password", "Password is required")
	} else if len(reg.Password) < auth.MinPasswordLength {
		verr = domain.AddFieldError(verr, "password", ErrPasswordTooShort.Error())
	} else if len(reg.Password) > auth.MaxPasswordLength {
		verr = domain.AddFieldError(verr, "password", ErrPasswordTooLong.Error())
	}
	if verr != nil {
		var ve *domain.ValidationError
		if errors.As(verr, &ve) {
			ve.Op = op
		}
		return nil, verr
	}

	key := s.accountKey(reg.Email)
	_, exists, err := state.GetJSON[domain.Account](ctx, s.store, key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	// The lookup above skips hashing for known emails; SetNX below settles
	// concurrent registrations.
	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := domain.Account{
		ID:           uuid.New(),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	created, err := state.SetJSONNX(ctx, s.store, key, account, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	if !created {
		return nil, ErrEmailTaken
	}

	user := account.User()
	if err := s.signIn(ctx, sessionID, user); err != nil {
		return nil, err
	}

	if telemetry.Business != nil {
		telemetry.Business.Signups.Inc()
	}
	s.logger.Info("account registered", "user_id", user.ID)

	if s.mailer != nil {
		welcome := email.WelcomeEmail{Name: user.Name, Email: user.Email, ShopURL: s.shopURL}
		if err := s.mailer.SendWelcome(ctx, welcome); err != nil {
			s.logger.Warn("failed to send welcome email", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

func (s *accountService) Login(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	account, found, err := state.GetJSON[domain.Account](ctx, s.store, s.accountKey(creds.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if !found {
		s.loginFailed()
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Verify(creds.Password, account.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.loginFailed()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	user := account.User()
	if err := s.signIn(ctx, sessionID, user); err != nil {
		return nil, err
	}
	if telemetry.Business != nil {
		telemetry.Business.Logins.Inc()
	}
	return user, nil
}

func (s *accountService) loginFailed() {
	if telemetry.Business != nil {
		telemetry.Business.LoginFailed.Inc()
	}
}

func (s *accountService) signIn(ctx context.Context, sessionID string, user *domain.User) error {
	if err := state.SetJSON(ctx, s.store, s.userKey(sessionID), user, s.sessionTTL); err != nil {
		return fmt.Errorf("failed to save session user: %w", err)
	}
	return nil
}

func (s *accountService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, s.userKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear session user: %w", err)
	}
	return nil
}

func (s *accountService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, nil
	}
	user, found, err := state.GetJSON[domain.User](ctx, s.store, s.userKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}
