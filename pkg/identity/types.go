package identity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a local user identity. Email is the unique lookup key.
type Account struct {
	ID        uuid.UUID
	Email     string
	Username  string
	Active    bool
	CreatedAt time.Time
}

// Profile is the data an external provider returns after a successful
// handshake. It is transient: produced once per login completion and not
// persisted beyond account creation and identity linking.
type Profile struct {
	// ProviderID is the id of the provider that authenticated the user.
	ProviderID string
	// ProviderUserID is the user's stable identifier at the provider.
	ProviderUserID string
	// Email is required for reconciliation; an empty email fails the login.
	Email string
	// DisplayName seeds the username for newly created accounts.
	DisplayName string
	// AvatarURL is optional decoration, unused by reconciliation.
	AvatarURL string
}
