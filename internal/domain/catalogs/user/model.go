// Package user provides the User catalog.
// Users identify who created and verified reports. The catalog carries
// no credentials; access control is out of scope for this service.
package user

import (
	"context"

	"kassa/internal/core/apperror"
	"kassa/internal/core/entity"
)

// Role defines what a user is allowed to do in the client applications.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleManager    Role = "manager"
	RoleAccountant Role = "accountant"
	RoleCashier    Role = "cashier"
)

// User represents a known operator of the system.
// Catalog.Name holds the full display name.
type User struct {
	entity.Catalog

	// TelegramID identifies the user in the Telegram bot frontend
	TelegramID int64 `db:"telegram_id" json:"telegramId"`

	// Username is the Telegram handle, optional
	Username *string `db:"username" json:"username,omitempty"`

	// Role defines the client-side permission level
	Role Role `db:"role" json:"role"`
}

// NewUser creates a new User with required fields.
func NewUser(fullName string, telegramID int64, role Role) *User {
	return &User{
		Catalog:    entity.NewCatalog(fullName),
		TelegramID: telegramID,
		Role:       role,
	}
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if err := u.Catalog.Validate(ctx); err != nil {
		return err
	}

	if u.TelegramID <= 0 {
		return apperror.NewValidation("telegram id is required").
			WithDetail("field", "telegramId")
	}

	if !isValidRole(u.Role) {
		return apperror.NewValidation("invalid role").
			WithDetail("field", "role").
			WithDetail("value", string(u.Role))
	}

	return nil
}

func isValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleManager, RoleAccountant, RoleCashier:
		return true
	}
	return false
}
