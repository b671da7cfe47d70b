package client

import (
	"context"
	"net/http"
)

// LoginRequest carries the credentials for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the token envelope the login endpoint returns.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. It does not touch the
// session store; the caller decides whether to persist the token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
