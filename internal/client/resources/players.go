package resources

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mcadmin/internal/client/apierr"
	"github.com/dmitrijs2005/mcadmin/internal/client/models"
	"github.com/dmitrijs2005/mcadmin/internal/common"
)

const (
	WhitelistPath = "/whitelist"
	BlacklistPath = "/blacklist"

	opAddPlayer    = "addpl"
	opRemovePlayer = "rmpl"
)

type addOp struct {
	Op    string `json:"op"`
	Value string `json:"value"`
}

type removeOp struct {
	Op    string `json:"op"`
	Index int    `json:"index"`
}

// PlayerListClient manages one player list (whitelist or blacklist).
type PlayerListClient struct {
	c    *Client
	path string
}

func NewWhitelistClient(c *Client) *PlayerListClient {
	return &PlayerListClient{c: c, path: WhitelistPath}
}

func NewBlacklistClient(c *Client) *PlayerListClient {
	return &PlayerListClient{c: c, path: BlacklistPath}
}

func (r *PlayerListClient) Path() string { return r.path }

func (r *PlayerListClient) Get(ctx context.Context) (models.PlayerList, error) {
	var l models.PlayerList
	if err := r.c.fetch(ctx, r.path, &l); err != nil {
		return models.PlayerList{}, fmt.Errorf("get %s: %w", r.path, err)
	}
	if l.Players == nil {
		l.Players = []models.PlayerInfo{}
	}
	if l.IPs == nil {
		l.IPs = []string{}
	}
	return l, nil
}

// AddPlayer appends a player by name or identifier.
func (r *PlayerListClient) AddPlayer(ctx context.Context, player string) error {
	if err := r.c.mutate(ctx, r.path, addOp{Op: opAddPlayer, Value: player}, nil); err != nil {
		return fmt.Errorf("add player to %s: %w", r.path, err)
	}
	return nil
}

// RemovePlayer removes the player at index in the last fetched snapshot.
func (r *PlayerListClient) RemovePlayer(ctx context.Context, index int) error {
	if index < 0 {
		return fmt.Errorf("remove player %d from %s: %w", index, r.path, common.ErrInvalidIndex)
	}
	if err := r.c.mutate(ctx, r.path, removeOp{Op: opRemovePlayer, Index: index}, nil); err != nil {
		return fmt.Errorf("remove player %d from %s: %w", index, r.path, err)
	}
	return nil
}

func (r *PlayerListClient) AddIP(ctx context.Context, ip string) error {
	return fmt.Errorf("add ip to %s: %w", r.path, apierr.ErrNotImplemented)
}

func (r *PlayerListClient) RemoveIP(ctx context.Context, index int) error {
	return fmt.Errorf("remove ip from %s: %w", r.path, apierr.ErrNotImplemented)
}
