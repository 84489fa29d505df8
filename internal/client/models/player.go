// Package models defines the plain data records returned by the admin API client.
package models

import "github.com/google/uuid"

// PlayerInfo identifies a player known to the game server.
type PlayerInfo struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// IsOffline reports whether the player carries the reserved all-zero id
// the server assigns to non-networked identities.
func (p PlayerInfo) IsOffline() bool {
	return p.ID == uuid.Nil.String()
}
