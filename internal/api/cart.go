package api

import (
	"context"
	"net/http"

	"shopkart/pkg/models"
)

type cartUpdateReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// FetchCart returns the backend's current entry list for the
// authenticated user.
func (c *Client) FetchCart(ctx context.Context, token string) ([]models.CartEntry, error) {
	var out []models.CartEntry
	if err := c.doJSON(ctx, http.MethodGet, "/cart", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateCart sets a product's quantity and returns the full updated
// entry list. Quantity 0 makes the backend drop the entry entirely.
func (c *Client) UpdateCart(ctx context.Context, token, productID string, quantity int) ([]models.CartEntry, error) {
	payload := cartUpdateReq{ProductID: productID, Quantity: quantity}
	var out []models.CartEntry
	if err := c.doJSON(ctx, http.MethodPost, "/cart", token, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}
