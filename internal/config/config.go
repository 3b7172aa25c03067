package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Bind      string
	Port      int
	Authority string
	CachePath string
	Verbose   bool
}

func (c *Config) Validate() error {
	if c.Authority == "" {
		return errors.New("--authority is required")
	}
	if !strings.HasPrefix(c.Authority, "http://") && !strings.HasPrefix(c.Authority, "https://") {
		return fmt.Errorf("invalid authority url: %q", c.Authority)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// Bind registers flags and their DRAFTER_-prefixed env fallbacks.
func Bind(fs *pflag.FlagSet, cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("DRAFTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.StringVarP(&cfg.Bind, "bind", "b", "127.0.0.1", "address to bind to (env: DRAFTER_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 3000, "port to listen on (env: DRAFTER_PORT)")
	fs.StringVarP(&cfg.Authority, "authority", "a", "http://localhost:8080", "base URL of the draft authority (env: DRAFTER_AUTHORITY)")
	fs.StringVar(&cfg.CachePath, "cache", "drafter.db", "path to the local roster cache, empty to disable (env: DRAFTER_CACHE)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging (env: DRAFTER_VERBOSE)")

	return v
}

// Apply overlays env values onto flags the user did not set explicitly.
func Apply(fs *pflag.FlagSet, v *viper.Viper, cfg *Config) {
	if !fs.Changed("bind") && v.IsSet("bind") {
		cfg.Bind = v.GetString("bind")
	}
	if !fs.Changed("port") && v.IsSet("port") {
		cfg.Port = v.GetInt("port")
	}
	if !fs.Changed("authority") && v.IsSet("authority") {
		cfg.Authority = v.GetString("authority")
	}
	if !fs.Changed("cache") && v.IsSet("cache") {
		cfg.CachePath = v.GetString("cache")
	}
	if !fs.Changed("verbose") && v.IsSet("verbose") {
		cfg.Verbose = v.GetBool("verbose")
	}
}
