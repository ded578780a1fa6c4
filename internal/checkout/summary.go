package checkout

import (
	"errors"

	"shopkart/internal/cart"
	"shopkart/pkg/models"
)

var (
	ErrEmptyCart           = errors.New("cart is empty, add items before checking out")
	ErrNoAddress           = errors.New("no delivery address selected")
	ErrInsufficientBalance = errors.New("wallet balance is not enough to pay for the order")
)

// Summary is the order-details box shown before placing an order.
// Products counts distinct SKUs, matching the cart's item count.
type Summary struct {
	Products int     `json:"products"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Summarize computes the order summary for the given line items.
// Shipping is free.
func Summarize(items []models.LineItem) Summary {
	subtotal := cart.TotalValue(items)
	return Summary{
		Products: cart.TotalDistinctItems(items),
		Subtotal: subtotal,
		Shipping: 0,
		Total:    subtotal,
	}
}

// Validate checks the checkout preconditions: a non-empty cart, a
// chosen address and enough wallet balance to cover the total.
func Validate(items []models.LineItem, addressID string, balance float64) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	if addressID == "" {
		return ErrNoAddress
	}
	if balance < Summarize(items).Total {
		return ErrInsufficientBalance
	}
	return nil
}
