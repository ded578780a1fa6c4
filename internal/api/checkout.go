package api

import (
	"context"
	"net/http"

	"shopkart/pkg/models"
)

type addAddressReq struct {
	Address string `json:"address"`
}

type checkoutReq struct {
	AddressID string `json:"addressId"`
}

// Addresses lists the user's saved delivery addresses.
func (c *Client) Addresses(ctx context.Context, token string) ([]models.Address, error) {
	var out []models.Address
	if err := c.doJSON(ctx, http.MethodGet, "/user/addresses", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddAddress saves a new address and returns the updated list.
func (c *Client) AddAddress(ctx context.Context, token, address string) ([]models.Address, error) {
	var out []models.Address
	if err := c.doJSON(ctx, http.MethodPost, "/user/addresses", token, addAddressReq{Address: address}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAddress removes a saved address and returns the updated list.
func (c *Client) DeleteAddress(ctx context.Context, token, addressID string) ([]models.Address, error) {
	var out []models.Address
	if err := c.doJSON(ctx, http.MethodDelete, "/user/addresses/"+escape(addressID), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Checkout places the order for the current cart against a saved
// address. The backend empties the cart and debits the wallet.
func (c *Client) Checkout(ctx context.Context, token, addressID string) error {
	return c.doJSON(ctx, http.MethodPost, "/cart/checkout", token, checkoutReq{AddressID: addressID}, nil)
}
