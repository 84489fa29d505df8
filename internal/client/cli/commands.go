package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/client/models"
	"github.com/dmitrijs2005/mcadmin/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

/*************
 * Session
 *************/

func (a *App) Login(ctx context.Context, username string) error {
	if username == "" {
		var err error
		if username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
			return err
		}
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}

	if err := a.api.Login(ctx, username, password); err != nil {
		return err
	}
	a.username = username
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout(ctx)
	a.username = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Verify(ctx context.Context) error {
	ok, err := a.api.Verify(ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(a.out, "Session is valid.")
	} else {
		fmt.Fprintln(a.out, "No valid session.")
	}
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	oldPassword, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	newPassword, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	repeat, err := getPassword("Repeat new password", a.out)
	if err != nil {
		return err
	}
	if newPassword != repeat {
		return fmt.Errorf("new passwords do not match")
	}

	if err := a.api.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

/*************
 * Config
 *************/

func (a *App) ShowConfig(ctx context.Context) error {
	cfg, err := a.api.GetConfig(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, k := range models.ConfigKeys {
		v, _ := cfg.Get(k)
		fmt.Fprintf(w, "%s\t%t\n", k, v)
	}
	return w.Flush()
}

func (a *App) SetConfig(ctx context.Context, key, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("value must be true or false, got %q", value)
	}
	if err := a.api.SetConfig(ctx, models.ConfigKey(key), v); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s set to %t.\n", key, v)
	return nil
}

/*************
 * Player lists
 *************/

func (a *App) getList(ctx context.Context, list listName) (models.PlayerList, error) {
	if list == listBlack {
		return a.api.GetBlacklist(ctx)
	}
	return a.api.GetWhitelist(ctx)
}

func (a *App) ListPlayers(ctx context.Context, list listName) error {
	l, err := a.getList(ctx, list)
	if err != nil {
		return err
	}

	if len(l.Players) == 0 {
		fmt.Fprintln(a.out, "No players.")
	} else {
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tNAME\tID")
		for i, p := range l.Players {
			id := p.ID
			if p.IsOffline() {
				id = "offline"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", i, p.Name, id)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if len(l.IPs) > 0 {
		fmt.Fprintln(a.out, "IPs:", strings.Join(l.IPs, ", "))
	}
	return nil
}

func (a *App) AddPlayer(ctx context.Context, list listName, name string) error {
	var err error
	if list == listBlack {
		err = a.api.AddBlacklistPlayer(ctx, name)
	} else {
		err = a.api.AddWhitelistPlayer(ctx, name)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s.\n", name)
	return nil
}

func (a *App) RemovePlayer(ctx context.Context, list listName, index string) error {
	i, err := strconv.Atoi(index)
	if err != nil {
		return fmt.Errorf("index %q: %w", index, common.ErrInvalidIndex)
	}
	if list == listBlack {
		err = a.api.RemoveBlacklistPlayer(ctx, i)
	} else {
		err = a.api.RemoveWhitelistPlayer(ctx, i)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed #%d.\n", i)
	return nil
}

/*************
 * Connections
 *************/

func (a *App) Connections(ctx context.Context) error {
	conns, err := a.api.GetConnections(ctx)
	if err != nil {
		return err
	}
	if len(conns) == 0 {
		fmt.Fprintln(a.out, "No connections.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tADDRESS\tSINCE\tPLAYER")
	for _, c := range conns {
		player := "-"
		if c.Player != nil {
			player = c.Player.Name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Addr, c.When.Local().Format(time.DateTime), player)
	}
	return w.Flush()
}
