package repository

import (
	"fmt"
	"strings"
	"sync"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

const usersKey = "tenantdesk:users"

// userRepository implements the UserRepository interface
type userRepository struct {
	coll *storage.Collection[models.User]
	mu   sync.Mutex
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(kv storage.KV) UserRepository {
	return &userRepository{coll: storage.NewCollection[models.User](kv, usersKey)}
}

// FindByEmail matches an email across the whole directory, case-insensitively.
// It is deliberately not tenant-scoped: the customer login flow uses it to
// detect cross-tenant collisions.
func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	users, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// FindByTenantAndEmail matches an email inside a single tenant.
func (r *userRepository) FindByTenantAndEmail(tenantID, email string) (*models.User, error) {
	users, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].TenantID == tenantID && strings.EqualFold(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// ListByTenant returns every user of one tenant.
func (r *userRepository) ListByTenant(tenantID string) ([]models.User, error) {
	users, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	scoped := make([]models.User, 0, len(users))
	for i := range users {
		if users[i].TenantID == tenantID {
			scoped = append(scoped, users[i])
		}
	}
	return scoped, nil
}

// Create assigns id and timestamps and appends the user. A duplicate email
// inside the same tenant and a second CUSTOMER_PRIMARY per tenant are both
// rejected.
func (r *userRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.UserID == "" {
		user.UserID = storage.NewID("USR")
	}
	if user.Status == "" {
		user.Status = models.USER_STATUS_ACTIVE
	}
	now := storage.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := user.Validate(); err != nil {
		return err
	}

	users, err := r.coll.Load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].TenantID == user.TenantID && strings.EqualFold(users[i].Email, user.Email) {
			return fmt.Errorf("email %s already exists for this tenant: %w", user.Email, ErrConflict)
		}
		if user.Role == models.ROLE_CUSTOMER_PRIMARY &&
			users[i].TenantID == user.TenantID &&
			users[i].Role == models.ROLE_CUSTOMER_PRIMARY {
			return fmt.Errorf("tenant already has a primary user: %w", ErrConflict)
		}
	}
	users = append(users, *user)
	return r.coll.Save(users)
}

// Update shallow-merges non-empty patch fields and re-stamps updated_at.
func (r *userRepository) Update(userID string, patch models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].UserID != userID {
			continue
		}
		if patch.Email != "" {
			users[i].Email = patch.Email
		}
		if patch.Role != "" {
			users[i].Role = patch.Role
		}
		if patch.Status != "" {
			users[i].Status = patch.Status
		}
		if patch.PasswordHash != "" {
			users[i].PasswordHash = patch.PasswordHash
		}
		users[i].UpdatedAt = storage.Now()
		if err := r.coll.Save(users); err != nil {
			return nil, err
		}
		u := users[i]
		return &u, nil
	}
	return nil, ErrNotFound
}

// ResetPassword stores a new bcrypt hash for the user.
func (r *userRepository) ResetPassword(userID, newPassword string) error {
	hash, err := models.HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = r.Update(userID, models.User{PasswordHash: hash})
	return err
}
