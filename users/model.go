// Package users owns the user entity and its persistence.
package users

import "time"

// User represents a registered account. HashedPassword never leaves the
// process: the json tag excludes it from any serialized form, and the API
// layer only ever exposes the id/username projection.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
