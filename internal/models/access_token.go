package models

import "time"

// AccessToken is the persisted half of a bearer token. Only the SHA-256
// digest of the token handed to the client is stored.
type AccessToken struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"index;type:varchar(36);not null"`
	Name      string     `json:"name" gorm:"type:varchar(100)"`
	TokenHash string     `json:"-" gorm:"uniqueIndex;type:char(64);not null"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Revoked reports whether the token has been revoked.
func (t *AccessToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}
