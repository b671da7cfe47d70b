package store

import (
	"context"

	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/db"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
	"github.com/KennethTannn98/stockflow-console/pkg/security"
)

// UserRepo persists accounts. Password hashing happens here so a plaintext
// password never travels past this boundary.
type UserRepo struct {
	client *db.Client
}

// List returns every account, newest first.
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.client.DB().WithContext(ctx).Order("id DESC").Find(&users).Error
	if err != nil {
		return nil, mapReadError(err, "users")
	}
	return users, nil
}

// GetByUsername returns one account for login.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.client.DB().WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, mapReadError(err, "user")
	}
	return &user, nil
}

// Create stores a new account with an Argon2id password hash.
func (r *UserRepo) Create(ctx context.Context, username, password string, role enums.Role, cfg config.PasswordConfig, actor string) (*models.User, error) {
	hash, err := security.HashPassword(password, cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedBy:    actor,
		UpdatedBy:    actor,
	}
	if err := r.client.DB().WithContext(ctx).Create(&user).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return &user, nil
}

// UpdateRoleByUsername changes the role of the named account.
func (r *UserRepo) UpdateRoleByUsername(ctx context.Context, username string, role enums.Role, actor string) (*models.User, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"role":       role,
		"updated_by": actor,
	}
	if err := r.client.DB().WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user role")
	}
	return r.GetByUsername(ctx, username)
}

// Delete removes an account by ID.
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	result := r.client.DB().WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete user")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}
