package entity

import (
	"time"
)

// User is the aggregate root for the user domain. Accounts originate from the
// identity provider; the local row mirrors the provider's user object and is
// kept in sync through lifecycle webhooks.
type User struct {
	ID         string
	Provider   string // identity provider name, e.g. "clerk"
	ProviderID string // external id, unique per provider
	Email      string
	FirstName  string
	LastName   string
	AvatarURL  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
