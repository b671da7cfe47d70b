package screens

import (
	"context"
	"time"

	"github.com/KennethTannn98/stockflow-console/internal/cache"
	"github.com/KennethTannn98/stockflow-console/internal/client"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
	"github.com/KennethTannn98/stockflow-console/pkg/tabular"
)

// UserFacetRole filters the table by account role.
const UserFacetRole = "role"

// UserDraft is the create form for a new account.
type UserDraft struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ROLE_USER ROLE_ADMIN ROLE_MANAGER"`
}

// Users is the admin account screen.
type Users struct {
	*Table[models.User]
	api *client.Client
}

// NewUsers builds the users screen.
func NewUsers(api *client.Client, store cache.Store, log *logger.Logger) *Users {
	view := tabular.NewView[models.User]().
		SearchText(func(u models.User) string { return u.Username }).
		Facet(UserFacetRole, func(u models.User) string { return u.Role.String() }).
		SortField("username", tabular.ByText(func(u models.User) string { return u.Username })).
		SortField("role", tabular.ByOrdered(func(u models.User) string { return u.Role.String() })).
		SortField("createdDate", tabular.ByTime(func(u models.User) time.Time { return u.CreatedDate }))

	screen := &Users{api: api}
	screen.Table = NewTable(view, tabular.DefaultPageSize, store,
		cache.EntityKey(cache.EntityUsers), api.ListUsers, log)
	return screen
}

// Create validates the draft and stores a new account.
func (s *Users) Create(ctx context.Context, draft UserDraft) (*models.User, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	var created *models.User
	err := s.runMutation(ctx, []cache.Key{cache.EntityKey(cache.EntityUsers)}, func(ctx context.Context) error {
		user, err := s.api.CreateUser(ctx, client.UserCreate{
			Username: draft.Username,
			Password: draft.Password,
			Role:     enums.Role(draft.Role),
		})
		created = user
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateRole changes the role of the account addressed by username.
func (s *Users) UpdateRole(ctx context.Context, username string, role enums.Role) (*models.User, error) {
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}

	var updated *models.User
	err := s.runMutation(ctx, []cache.Key{cache.EntityKey(cache.EntityUsers)}, func(ctx context.Context) error {
		user, err := s.api.UpdateUserRole(ctx, username, client.RoleUpdate{Role: role})
		updated = user
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the account the open confirmation dialog points at.
func (s *Users) Delete(ctx context.Context, id int) error {
	if err := s.requireDialog(DialogConfirmDelete, id); err != nil {
		return err
	}

	keys := []cache.Key{
		cache.EntityKey(cache.EntityUsers),
		cache.RecordKey(cache.EntityUsers, id),
	}
	return s.runMutation(ctx, keys, func(ctx context.Context) error {
		return s.api.DeleteUser(ctx, id)
	})
}
