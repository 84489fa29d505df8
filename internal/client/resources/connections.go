package resources

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/client/models"
)

const connectionsPath = "/conns"

type connectionWire struct {
	ID     int64              `json:"id"`
	Addr   string             `json:"addr"`
	When   float64            `json:"when"`
	Player *models.PlayerInfo `json:"player"`
}

type ConnectionsClient struct {
	c *Client
}

func NewConnectionsClient(c *Client) *ConnectionsClient {
	return &ConnectionsClient{c: c}
}

func (r *ConnectionsClient) List(ctx context.Context) ([]models.Connection, error) {
	var wire []connectionWire
	if err := r.c.fetch(ctx, connectionsPath, &wire); err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	conns := make([]models.Connection, 0, len(wire))
	for _, w := range wire {
		conns = append(conns, models.Connection{
			ID:     w.ID,
			Addr:   w.Addr,
			When:   time.UnixMilli(int64(w.When * 1000)),
			Player: w.Player,
		})
	}
	return conns, nil
}
