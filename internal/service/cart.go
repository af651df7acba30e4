package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/state"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/telemetry"
)

// CartService provides business logic for shopping cart operations. Carts
// are keyed by visitor session.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (domain.Cart, error)
	GetCartSummary(ctx context.Context, sessionID string) (*domain.CartSummary, error)
	AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartSummary, error)
	UpdateItemQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartSummary, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.CartSummary, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type cartService struct {
	store   state.Store
	keys    state.Keys
	ttl     time.Duration
	catalog func() *catalog.Catalog
	logger  *slog.Logger
}

// NewCartService creates a new CartService. snapshot supplies the catalog
// that cart lines are resolved against.
func NewCartService(store state.Store, keys state.Keys, ttl time.Duration, snapshot func() *catalog.Catalog, logger *slog.Logger) CartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &cartService{
		store:   store,
		keys:    keys,
		ttl:     ttl,
		catalog: snapshot,
		logger:  logger,
	}
}

func (s *cartService) key(sessionID string) string {
	return s.keys.Key("cart", sessionID)
}

// GetCart returns the stored cart. A session without a cart has an empty
// one.
func (s *cartService) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, ErrSessionRequired
	}
	cart, _, err := state.GetJSON[domain.Cart](ctx, s.store, s.key(sessionID))
	if err != nil {
		return domain.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) save(ctx context.Context, sessionID string, cart domain.Cart) error {
	if len(cart.Lines) == 0 {
		return s.store.Delete(ctx, s.key(sessionID))
	}
	if err := state.SetJSON(ctx, s.store, s.key(sessionID), cart, s.ttl); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// GetCartSummary resolves the cart against the current catalog.
func (s *cartService) GetCartSummary(ctx context.Context, sessionID string) (*domain.CartSummary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

func (s *cartService) summarize(cart domain.Cart) *domain.CartSummary {
	c := s.catalog()
	summary := &domain.CartSummary{
		Items:     make([]domain.CartItem, 0, len(cart.Lines)),
		ItemCount: cart.Count(),
	}
	for _, line := range cart.Lines {
		p, ok := c.Lookup(line.ProductID)
		if !ok {
			summary.Unresolved++
			continue
		}
		unit := p.Price.Decimal // unpriced products contribute nothing
		item := domain.CartItem{
			Product:   p,
			Quantity:  line.Quantity,
			UnitPrice: unit,
			LineTotal: unit.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}
		summary.Subtotal = summary.Subtotal.Add(item.LineTotal)
		summary.Items = append(summary.Items, item)
	}
	return summary
}

// AddItem adds quantity units of a product, merging with an existing line.
func (s *cartService) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartSummary, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	p, ok := s.catalog().Lookup(productID)
	if !ok {
		return nil, ErrProductNotFound
	}
	if !p.InStock() {
		return nil, ErrOutOfStock
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Compared against the remaining stock so large quantities cannot
	// overflow the merged line.
	if i := cart.Find(productID); i >= 0 {
		if int64(quantity) > p.Stock-int64(cart.Lines[i].Quantity) {
			return nil, ErrInsufficientStock
		}
		cart.Lines[i].Quantity += quantity
	} else {
		if int64(quantity) > p.Stock {
			return nil, ErrInsufficientStock
		}
		cart.Lines = append(cart.Lines, domain.CartLine{ProductID: productID, Quantity: quantity})
	}

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	if telemetry.Business != nil {
		telemetry.Business.CartItemsAdd.WithLabelValues(p.Category).Add(float64(quantity))
	}
	s.logger.Debug("cart item added", "product_id", productID, "quantity", quantity)

	return s.summarize(cart), nil
}

// UpdateItemQuantity sets a line's quantity. Zero removes the line.
func (s *cartService) UpdateItemQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartSummary, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	i := cart.Find(productID)
	if i < 0 {
		return nil, ErrCartItemNotFound
	}
	if p, ok := s.catalog().Lookup(productID); ok && int64(quantity) > p.Stock {
		return nil, ErrInsufficientStock
	}

	cart.Lines[i].Quantity = quantity
	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// RemoveItem removes a product's line from the cart.
func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.CartSummary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	i := cart.Find(productID)
	if i < 0 {
		return nil, ErrCartItemNotFound
	}

	cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// ClearCart empties the cart.
func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}
	if err := s.store.Delete(ctx, s.key(sessionID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	if telemetry.Business != nil {
		telemetry.Business.CartCleared.Inc()
	}
	return nil
}
