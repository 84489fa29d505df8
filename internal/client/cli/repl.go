package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/mcadmin/internal/client/apierr"
	"github.com/dmitrijs2005/mcadmin/internal/common"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

type listName string

const (
	listWhite listName = "wl"
	listBlack listName = "bl"
)

// execIface is the command surface the REPL dispatches to. App implements it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, username string) error
	Logout(ctx context.Context) error
	Verify(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ShowConfig(ctx context.Context) error
	SetConfig(ctx context.Context, key, value string) error
	ListPlayers(ctx context.Context, list listName) error
	AddPlayer(ctx context.Context, list listName, name string) error
	RemovePlayer(ctx context.Context, list listName, index string) error
	Connections(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: login [username], verify, exit"
	helpLogged    = "Available commands: config, set <key> <true|false>, wl, bl, wl|bl add <name>, wl|bl rm <index>, conns, verify, passwd, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit". Handler
// errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mc %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLogged)
			} else {
				printlnFn(helpAnonymous)
			}

		case "login":
			username := ""
			if len(args) > 0 {
				username = args[0]
			}
			report(a.Login(ctx, username))

		case "logout":
			report(a.Logout(ctx))

		case "verify":
			report(a.Verify(ctx))

		case "passwd":
			report(a.ChangePassword(ctx))

		case "config":
			report(a.ShowConfig(ctx))

		case "set":
			if len(args) != 2 {
				printlnFn("Usage: set <key> <true|false>")
				continue
			}
			report(a.SetConfig(ctx, args[0], args[1]))

		case string(listWhite), string(listBlack):
			list := listName(cmd)
			switch {
			case len(args) == 0:
				report(a.ListPlayers(ctx, list))
			case len(args) == 2 && args[0] == "add":
				report(a.AddPlayer(ctx, list, args[1]))
			case len(args) == 2 && args[0] == "rm":
				report(a.RemovePlayer(ctx, list, args[1]))
			default:
				printlnFn(fmt.Sprintf("Usage: %s | %s add <name> | %s rm <index>", cmd, cmd, cmd))
			}

		case "conns":
			report(a.Connections(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", describe(err))
	}
}

// describe turns an API error into a hint for the operator.
func describe(err error) string {
	switch {
	case apierr.IsAuth(err):
		return "not authorized, please login (" + err.Error() + ")"
	case apierr.IsConflict(err):
		return "changed on the server since the last listing, list again and retry"
	case errors.Is(err, apierr.ErrNotImplemented):
		return "not supported by this client"
	case errors.Is(err, common.ErrInvalidIndex):
		return "index must be a non-negative number from the last listing"
	}
	return err.Error()
}
