package models

import "time"

// Connection is a live connection to the game server.
// Player is nil until the peer has identified itself.
type Connection struct {
	ID     int64
	Addr   string
	When   time.Time
	Player *PlayerInfo
}
