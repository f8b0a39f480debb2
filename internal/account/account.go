package account

import (
	"strings"
	"time"
)

// DefaultRole is assigned to every account at creation.
const DefaultRole = "ROLE_USER"

// ProviderLocal marks accounts created through password registration,
// as opposed to a federated provider name such as "google".
const ProviderLocal = "local"

// Account is a persisted user identity. ID is assigned by the store on
// first save and never changes. PasswordHash is empty or unusable for
// accounts created by federated sign-in.
type Account struct {
	ID           string
	Username     string
	Name         string
	Email        string
	PasswordHash string
	Roles        []string
	Provider     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public is the externally visible view of an Account. It has no
// password hash field at all, so handlers cannot leak one by accident.
type Public struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Provider string   `json:"provider"`
}

func (a *Account) Public() Public {
	return Public{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Email:    a.Email,
		Roles:    a.Roles,
		Provider: a.Provider,
	}
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
