package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	ROLE_ADMIN            = "ADMIN"
	ROLE_CUSTOMER_PRIMARY = "CUSTOMER_PRIMARY"
	ROLE_CUSTOMER_USER    = "CUSTOMER_USER"

	USER_STATUS_ACTIVE   = "Active"
	USER_STATUS_INACTIVE = "Inactive"
)

// User is a directory account. TenantID is empty only for the platform
// administrator, which is a configured credential pair rather than a stored
// record.
type User struct {
	UserID       string    `json:"user_id" validate:"required"`
	TenantID     string    `json:"tenant_id,omitempty"`
	Email        string    `json:"email" validate:"required,email,max=200"`
	PasswordHash string    `json:"password_hash" validate:"required"`
	Role         string    `json:"role" validate:"oneof=ADMIN CUSTOMER_PRIMARY CUSTOMER_USER"`
	Status       string    `json:"status" validate:"oneof=Active Inactive"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// NewUser builds an unsaved user with a hashed password. The id and
// timestamps are assigned by the repository on create.
func NewUser(tenantID, email, password, role string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       USER_STATUS_ACTIVE,
	}, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// IsActive reports whether the user may log in. An unset status is treated as
// active for records imported before status tracking existed.
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == USER_STATUS_ACTIVE
}

// IsCustomerRole reports whether the role belongs to the customer session
// domain.
func (u *User) IsCustomerRole() bool {
	return u.Role == ROLE_CUSTOMER_PRIMARY || u.Role == ROLE_CUSTOMER_USER
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hashedPassword
	return nil
}
