package domain

import "github.com/shopspring/decimal"

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrProductNotFound   = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrCartItemNotFound  = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity   = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrOutOfStock        = &Error{Code: EINVALID, Message: "Product is out of stock"}
	ErrInsufficientStock = &Error{Code: EINVALID, Message: "Not enough stock for the requested quantity"}
	ErrEmptyCart         = &Error{Code: EINVALID, Message: "Your cart is empty"}
)

// CartLine is a persisted cart entry. The JSON shape is the one visitors'
// carts have always been stored in.
type CartLine struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"quantity"`
}

// Cart is the persisted cart of one visitor session, in insertion order.
type Cart struct {
	Lines []CartLine `json:"items"`
}

// Count is the total number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Find returns the index of the line for productID, or -1.
func (c Cart) Find(productID int64) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// CartItem is a cart line resolved against the catalog.
type CartItem struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartSummary is a resolved cart with totals. Lines whose product is no
// longer in the catalog are left out of Items and totals and counted in
// Unresolved.
type CartSummary struct {
	Items      []CartItem      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	ItemCount  int             `json:"itemCount"`
	Unresolved int             `json:"unresolved,omitempty"`
}
