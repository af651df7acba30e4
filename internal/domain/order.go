package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = &Error{Code: ENOTFOUND, Message: "Order not found"}

// CheckoutDetails is the contact information submitted at checkout.
type CheckoutDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Normalize trims surrounding whitespace from every field.
func (d CheckoutDetails) Normalize() CheckoutDetails {
	return CheckoutDetails{
		Name:    strings.TrimSpace(d.Name),
		Address: strings.TrimSpace(d.Address),
		Phone:   strings.TrimSpace(d.Phone),
	}
}

// Validate returns a ValidationError listing every empty field.
func (d CheckoutDetails) Validate(op string) error {
	var err error
	if d.Name == "" {
		err = AddFieldError(err, "name", "Name is required")
	}
	if d.Address == "" {
		err = AddFieldError(err, "address", "Address is required")
	}
	if d.Phone == "" {
		err = AddFieldError(err, "phone", "Phone is required")
	}
	if ve := validationError(err); ve != nil {
		ve.Op = op
		return ve
	}
	return nil
}

// OrderLine is a purchased product with its price at checkout time.
type OrderLine struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Order is a placed order. Checkout takes no payment; the order only records
// what was requested.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	SessionID string          `json:"-"`
	UserID    uuid.UUID       `json:"userId"`
	Email     string          `json:"email,omitempty"`
	Customer  CheckoutDetails `json:"customer"`
	Lines     []OrderLine     `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	PlacedAt  time.Time       `json:"placedAt"`
}

// NewOrder builds an order from a resolved cart.
func NewOrder(sessionID string, user *User, details CheckoutDetails, summary CartSummary, now time.Time) Order {
	o := Order{
		ID:        uuid.New(),
		SessionID: sessionID,
		Customer:  details,
		Lines:     make([]OrderLine, 0, len(summary.Items)),
		Total:     summary.Subtotal,
		PlacedAt:  now,
	}
	if user != nil {
		o.UserID = user.ID
		o.Email = user.Email
	}
	for _, item := range summary.Items {
		o.Lines = append(o.Lines, OrderLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return o
}
