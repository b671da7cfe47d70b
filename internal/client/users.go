package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

// UserCreate is the payload for a new account. Admin-only.
type UserCreate struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     enums.Role `json:"role"`
}

// RoleUpdate is the payload for changing an account's role.
type RoleUpdate struct {
	Role enums.Role `json:"role"`
}

// ListUsers returns every account. Admin-only.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser stores a new account. Admin-only.
func (c *Client) CreateUser(ctx context.Context, input UserCreate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/admin/users", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRole changes the role of the account addressed by username.
func (c *Client) UpdateUserRole(ctx context.Context, username string, input RoleUpdate) (*models.User, error) {
	var user models.User
	path := fmt.Sprintf("/admin/users/username/%s/role", url.PathEscape(username))
	if err := c.do(ctx, http.MethodPut, path, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account by ID. Admin-only.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil)
}
