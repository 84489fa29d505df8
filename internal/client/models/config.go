package models

// ConfigKey names a single mutable field of Config.
type ConfigKey string

const (
	ConfigOnlineMode        ConfigKey = "onlineMode"
	ConfigEnableWhitelist   ConfigKey = "enableWhitelist"
	ConfigEnableIPWhitelist ConfigKey = "enableIPWhitelist"
)

// ConfigKeys lists every key accepted by the config endpoint.
var ConfigKeys = []ConfigKey{ConfigOnlineMode, ConfigEnableWhitelist, ConfigEnableIPWhitelist}

// Valid reports whether k is one of ConfigKeys.
func (k ConfigKey) Valid() bool {
	for _, known := range ConfigKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Config is the server's admin-visible configuration.
type Config struct {
	OnlineMode        bool `json:"onlineMode"`
	EnableWhitelist   bool `json:"enableWhitelist"`
	EnableIPWhitelist bool `json:"enableIPWhitelist"`
}

// Get returns the value stored under k and false for unknown keys.
func (c Config) Get(k ConfigKey) (bool, bool) {
	switch k {
	case ConfigOnlineMode:
		return c.OnlineMode, true
	case ConfigEnableWhitelist:
		return c.EnableWhitelist, true
	case ConfigEnableIPWhitelist:
		return c.EnableIPWhitelist, true
	}
	return false, false
}

// Set stores v under k. Unknown keys are ignored and reported with false.
func (c *Config) Set(k ConfigKey, v bool) bool {
	switch k {
	case ConfigOnlineMode:
		c.OnlineMode = v
	case ConfigEnableWhitelist:
		c.EnableWhitelist = v
	case ConfigEnableIPWhitelist:
		c.EnableIPWhitelist = v
	default:
		return false
	}
	return true
}
