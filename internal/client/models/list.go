package models

// PlayerList is the shape shared by the whitelist and the blacklist.
// Indexes into Players and IPs are only meaningful against the snapshot
// they were read from.
type PlayerList struct {
	Players []PlayerInfo `json:"players"`
	IPs     []string     `json:"ips"`
}

type Whitelist = PlayerList

type Blacklist = PlayerList
