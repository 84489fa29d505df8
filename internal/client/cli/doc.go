// Package cli provides the interactive mcadmin command-line client.
//
// NewApp opens the local state database, restores a persisted session token
// and builds the admin API client. App.Root runs the REPL until the user
// exits. Commands:
//
//	help                       show commands
//	login [username]           authenticate (password is read without echo)
//	logout                     end the session
//	verify                     ask the server whether the session is valid
//	passwd                     change the admin password
//	config                     show server configuration
//	set <key> <true|false>     change one configuration key
//	wl | bl                    list whitelist / blacklist
//	wl add <name>              add a player (same for bl)
//	wl rm <index>              remove the player at index of the last listing
//	conns                      list live connections
//	exit | quit                leave the program
package cli
