package service

import (
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

// Catalog errors - use domain.ENOTFOUND
var (
	ErrProductNotFound = domain.ErrProductNotFound
	ErrOrderNotFound   = domain.ErrOrderNotFound
)

// Cart errors - use domain.EINVALID
var (
	ErrCartItemNotFound  = domain.ErrCartItemNotFound
	ErrInvalidQuantity   = domain.ErrInvalidQuantity
	ErrOutOfStock        = domain.ErrOutOfStock
	ErrInsufficientStock = domain.ErrInsufficientStock
	ErrEmptyCart         = domain.ErrEmptyCart
)

// Account errors
var (
	ErrEmailTaken         = domain.ErrEmailTaken
	ErrInvalidCredentials = domain.ErrInvalidCredentials
	ErrNotSignedIn        = domain.ErrNotSignedIn
	ErrPasswordTooShort   = domain.Errorf(domain.EINVALID, "", "Password must be at least 8 characters")
	ErrPasswordTooLong    = domain.Errorf(domain.EINVALID, "", "Password must be at most 72 bytes")
)

// Session errors
var (
	ErrSessionRequired = domain.Errorf(domain.EINVALID, "", "Visitor session is missing")
)
