package api

import (
	"context"
	"net/http"
)

// LoginResult is the auth endpoint's success payload. Balance is the
// user's wallet balance, checked against the order total at checkout.
type LoginResult struct {
	Success  bool    `json:"success"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	payload := credentials{Username: username, Password: password}
	return c.doJSON(ctx, http.MethodPost, "/auth/register", "", payload, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	payload := credentials{Username: username, Password: password}
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", payload, &out); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}
