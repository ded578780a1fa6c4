package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopkart/pkg/models"
)

func testItems() []models.LineItem {
	return []models.LineItem{
		{ProductID: "p1", Cost: 100, Quantity: 2},
		{ProductID: "p2", Cost: 50, Quantity: 1},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testItems())

	assert.Equal(t, 2, s.Products)
	assert.InDelta(t, 250, s.Subtotal, 1e-9)
	assert.Zero(t, s.Shipping)
	assert.InDelta(t, 250, s.Total, 1e-9)
}

func TestSummarizeEmptyCart(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.Products)
	assert.Zero(t, s.Subtotal)
	assert.Zero(t, s.Total)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(testItems(), "addr-1", 250))
}

func TestValidateEmptyCart(t *testing.T) {
	assert.ErrorIs(t, Validate(nil, "addr-1", 5000), ErrEmptyCart)
}

func TestValidateRequiresAddress(t *testing.T) {
	assert.ErrorIs(t, Validate(testItems(), "", 5000), ErrNoAddress)
}

func TestValidateRequiresSufficientBalance(t *testing.T) {
	assert.ErrorIs(t, Validate(testItems(), "addr-1", 249.99), ErrInsufficientBalance)
}
