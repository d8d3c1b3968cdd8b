package config

// Config holds runtime settings for the NexusPost CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API; endpoint paths are appended to it.
//   - SessionDBPath: SQLite file holding the cached session.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerBaseURL string
	SessionDBPath string
	LogLevel      string
}

// LoadDefaults populates c with the defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.SessionDBPath = "nexuspost.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
