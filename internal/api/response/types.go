package response

import (
	"github.com/ghostduel/server/internal/model"
)

// Profile represents a player profile in API responses
type Profile struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
}

// ProfileFromModel converts a model.Profile to a response Profile
func ProfileFromModel(p *model.Profile) Profile {
	return Profile{
		Identity:    string(p.Identity),
		DisplayName: p.DisplayName,
		Token:       p.Token,
	}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
