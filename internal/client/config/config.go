// Package config holds the runtime settings of the blackfile CLI and
// their resolution order: defaults, then environment, then flags.
package config

// Config holds runtime settings for the blackfile CLI.
//
// Fields:
//   - ServerURL: base URL of the backend API, including the version prefix.
//   - PublicBaseURL: origin used to build share links shown to the user.
//   - DBPath: path of the local session store.
//   - CachePath: path of the local dashboard cache.
//   - MaxUploadSizeMB: client-side upload size cap.
//   - ShowVersion: print version information and exit.
type Config struct {
	ServerURL       string
	PublicBaseURL   string
	DBPath          string
	CachePath       string
	MaxUploadSizeMB int64
	ShowVersion     bool
}

// LoadDefaults populates c with the defaults of a local setup.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000/api/v1"
	c.PublicBaseURL = "https://blackfile.xyz"
	c.DBPath = "blackfile.db"
	c.CachePath = "blackfile-cache.db"
	c.MaxUploadSizeMB = 10
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment and command-line flags. Later sources take
// precedence over earlier ones. The second return value is the
// remaining non-flag arguments (the command and its args).
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}
