package config

import (
	"flag"
)

// parseFlags populates selected Config fields from command-line flags
// and returns the remaining arguments.
//
// Supported flags:
//
//	--server URL   base URL of the backend API (default from Config)
//	--public URL   origin used for share links (default from Config)
//	--db PATH      path of the session store (default from Config)
//	--cache PATH   path of the dashboard cache (default from Config)
//	--version      print version information and exit
//
// Flags must precede the command; everything after the first non-flag
// argument is handed back untouched.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("blackfile", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "base URL of the backend API")
	fs.StringVar(&cfg.PublicBaseURL, "public", cfg.PublicBaseURL, "origin used for share links")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path of the session store")
	fs.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "path of the dashboard cache")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
