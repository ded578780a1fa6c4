package cart

import "shopkart/pkg/models"

// TotalValue returns the monetary value of the cart: the sum of
// cost x quantity over all line items. Display rounding is the
// caller's concern.
func TotalValue(items []models.LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Cost * float64(item.Quantity)
	}
	return total
}

// TotalDistinctItems returns the number of distinct products in the
// cart, not the summed unit count. Callers that need total units must
// sum quantities themselves.
func TotalDistinctItems(items []models.LineItem) int {
	return len(items)
}
