package waitlist

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the waitlist service settings, layered as defaults, an
// optional TOML file, then WAITLIST_* environment variables.
type Config struct {
	ListenAddr    string `koanf:"listen_addr"`
	DatabaseURL   string `koanf:"database_url"`
	AllowedOrigin string `koanf:"allowed_origin"`
}

func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"listen_addr":    ":8087",
		"allowed_origin": "*",
	}, "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("WAITLIST_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "WAITLIST_"))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database_url is required (WAITLIST_DATABASE_URL)")
	}
	return cfg, nil
}
