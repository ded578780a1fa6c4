package cart

import "errors"

var (
	// ErrInvalidQuantity rejects negative quantities before any
	// network call is made.
	ErrInvalidQuantity = errors.New("quantity must be >= 0")

	// ErrDuplicateItem is a user-facing warning, not a system error:
	// an "add to cart" landed on a product that already has a line.
	ErrDuplicateItem = errors.New("item already in cart")

	// ErrUnauthenticated means no usable credential was available; the
	// mutation was not sent.
	ErrUnauthenticated = errors.New("not logged in")
)
