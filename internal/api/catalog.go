package api

import (
	"context"
	"net/http"
	"net/url"

	"shopkart/pkg/models"
)

// FetchProducts returns the full catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchProducts runs a server-side name/category search.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	var out []models.Product
	path := "/products/search?value=" + url.QueryEscape(query)
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
