package model

import "time"

// Profile is a player profile held in the profile store. The token is the
// opaque credential a client presents when joining; identity is the stable
// identifier scores and sessions are keyed by.
type Profile struct {
	Token       string    `json:"token"`
	Identity    Identity  `json:"identity"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
