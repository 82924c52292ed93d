package app

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the persisted settings blob: credential, export folder, default
// template, and model overrides. Seeded with defaults on first run.
type Config struct {
	DeepSeekAPIKey    string `yaml:"deepseek_api_key"`
	Model             string `yaml:"model"`
	BaseURL           string `yaml:"base_url"`
	MaxTokens         int    `yaml:"max_tokens"`
	GoogleAccessToken string `yaml:"google_access_token,omitempty"`
	DriveFolderID     string `yaml:"drive_folder_id"`
	DefaultTemplate   string `yaml:"default_template"`
	AutoSave          bool   `yaml:"auto_save"`
}

func DefaultConfig() Config {
	return Config{
		Model:           defaultModel,
		BaseURL:         defaultBaseURL,
		MaxTokens:       defaultMaxTokens,
		DefaultTemplate: "reel-completo",
		AutoSave:        true,
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "getmybrief", "config.yml")
}

// DefaultDataDir is where the conversation log and creator profile live.
func DefaultDataDir() string {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, "getmybrief")
	}
	if base, err := os.UserHomeDir(); err == nil && base != "" {
		return filepath.Join(base, ".local", "share", "getmybrief")
	}
	return filepath.Join(os.TempDir(), "getmybrief")
}
