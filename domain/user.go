package domain

import "time"

// User mirrors an identity-provider account into the local store. The id is
// the provider-assigned account identifier, never generated locally.
// CreatedAt is persisted at registration time but not exposed on reads.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"-"`
}
