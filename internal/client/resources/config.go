package resources

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mcadmin/internal/client/models"
	"github.com/dmitrijs2005/mcadmin/internal/common"
)

const configPath = "/config"

type configOp struct {
	Op    models.ConfigKey `json:"op"`
	Value bool             `json:"value"`
}

type ConfigClient struct {
	c *Client
}

func NewConfigClient(c *Client) *ConfigClient {
	return &ConfigClient{c: c}
}

func (r *ConfigClient) Get(ctx context.Context) (models.Config, error) {
	var cfg models.Config
	if err := r.c.fetch(ctx, configPath, &cfg); err != nil {
		return models.Config{}, fmt.Errorf("get config: %w", err)
	}
	return cfg, nil
}

// Set changes a single config key. There is no batch form.
func (r *ConfigClient) Set(ctx context.Context, key models.ConfigKey, value bool) error {
	if !key.Valid() {
		return fmt.Errorf("set config %q: %w", key, common.ErrUnknownConfigKey)
	}
	if err := r.c.mutate(ctx, configPath, configOp{Op: key, Value: value}, nil); err != nil {
		return fmt.Errorf("set config %s: %w", key, err)
	}
	return nil
}
