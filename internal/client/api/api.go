package api

import (
	"context"

	"github.com/dmitrijs2005/mcadmin/internal/client/models"
)

type API interface {
	Logged() bool
	AuthToken() string
	// OnTokenChange registers fn for every token change; the returned func
	// unsubscribes.
	OnTokenChange(fn func(token string)) (unsubscribe func())
	Settled() <-chan struct{}

	Verify(ctx context.Context) (bool, error)
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	GetConfig(ctx context.Context) (models.Config, error)
	SetConfig(ctx context.Context, key models.ConfigKey, value bool) error

	GetWhitelist(ctx context.Context) (models.Whitelist, error)
	AddWhitelistPlayer(ctx context.Context, player string) error
	RemoveWhitelistPlayer(ctx context.Context, index int) error
	AddWhitelistIP(ctx context.Context, ip string) error
	RemoveWhitelistIP(ctx context.Context, index int) error

	GetBlacklist(ctx context.Context) (models.Blacklist, error)
	AddBlacklistPlayer(ctx context.Context, player string) error
	RemoveBlacklistPlayer(ctx context.Context, index int) error
	AddBlacklistIP(ctx context.Context, ip string) error
	RemoveBlacklistIP(ctx context.Context, index int) error

	GetConnections(ctx context.Context) ([]models.Connection, error)
}
