package adminfake

import (
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/client/models"
	"github.com/google/uuid"
)

type user struct {
	salt     []byte
	verifier []byte
}

type playerList struct {
	players []models.PlayerInfo
	ips     []string
	version string
}

type connection struct {
	id     int64
	addr   string
	when   time.Time
	player *models.PlayerInfo
}

func newVersion() string {
	return uuid.NewString()
}

// playerID resolves the id the server would assign to a newly listed player.
// Online mode derives a stable id from the name; offline players get the
// all-zero id.
func playerID(name string, online bool) string {
	if !online {
		return uuid.Nil.String()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("player:"+name)).String()
}
