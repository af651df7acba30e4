package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/email"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/state"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/telemetry"
)

// CheckoutService places orders from the session's cart. No payment is
// taken.
type CheckoutService interface {
	// PlaceOrder validates the contact details, records the order, clears
	// the cart and sends a confirmation to signed-in visitors.
	PlaceOrder(ctx context.Context, sessionID string, user *domain.User, details domain.CheckoutDetails) (*domain.Order, error)

	// GetOrder returns an order placed from the same session.
	GetOrder(ctx context.Context, sessionID string, orderID uuid.UUID) (*domain.Order, error)
}

// storedOrder keeps the owning session next to the order, which does not
// serialize it.
type storedOrder struct {
	domain.Order
	Session string `json:"session"`
}

type checkoutService struct {
	store  state.Store
	keys   state.Keys
	carts  CartService
	mailer Mailer
	logger *slog.Logger
	now    func() time.Time
}

// NewCheckoutService creates a new checkout service. mailer may be nil.
func NewCheckoutService(store state.Store, keys state.Keys, carts CartService, mailer Mailer, logger *slog.Logger) CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &checkoutService{
		store:  store,
		keys:   keys,
		carts:  carts,
		mailer: mailer,
		logger: logger,
		now:    time.Now,
	}
}

func (s *checkoutService) orderKey(id uuid.UUID) string {
	return s.keys.Key("order", id.String())
}

func (s *checkoutService) PlaceOrder(ctx context.Context, sessionID string, user *domain.User, details domain.CheckoutDetails) (*domain.Order, error) {
	const op = "checkout.place_order"

	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	details = details.Normalize()
	if err := details.Validate(op); err != nil {
		s.failed("validation")
		return nil, err
	}

	summary, err := s.carts.GetCartSummary(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		s.failed("empty_cart")
		return nil, ErrEmptyCart
	}

	order := domain.NewOrder(sessionID, user, details, *summary, s.now())
	if err := state.SetJSON(ctx, s.store, s.orderKey(order.ID), storedOrder{Order: order, Session: sessionID}, 0); err != nil {
		s.failed("store")
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		// The order is recorded; a stale cart is recoverable by the visitor.
		s.logger.Error("failed to clear cart after checkout", "order_id", order.ID, "error", err)
	}

	if telemetry.Business != nil {
		telemetry.Business.CheckoutCompleted.Inc()
		telemetry.Business.OrderValue.Observe(order.Total.InexactFloat64())
	}
	s.logger.Info("order placed", "order_id", order.ID, "lines", len(order.Lines), "total", order.Total.String())

	if s.mailer != nil && order.Email != "" {
		if err := s.mailer.SendOrderConfirmation(ctx, email.NewOrderConfirmationEmail(order)); err != nil {
			s.logger.Warn("failed to send order confirmation", "order_id", order.ID, "error", err)
		}
	}

	return &order, nil
}

func (s *checkoutService) failed(reason string) {
	if telemetry.Business != nil {
		telemetry.Business.CheckoutFailed.WithLabelValues(reason).Inc()
	}
}

func (s *checkoutService) GetOrder(ctx context.Context, sessionID string, orderID uuid.UUID) (*domain.Order, error) {
	stored, found, err := state.GetJSON[storedOrder](ctx, s.store, s.orderKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if !found || stored.Session != sessionID {
		return nil, ErrOrderNotFound
	}
	order := stored.Order
	order.SessionID = stored.Session
	return &order, nil
}
