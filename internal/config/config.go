// Package config loads habitquest settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. HABITQUEST_DB_PATH or
// HABITQUEST_QUESTS_PER_DAY.
const EnvPrefix = "HABITQUEST"

// PathEnv points at an alternate config file.
const PathEnv = "HABITQUEST_CONFIG"

type LogConfig struct {
	Debug bool   `mapstructure:"debug"`
	Dir   string `mapstructure:"dir"`
}

type QuestConfig struct {
	PerDay   int `mapstructure:"per_day"`
	SetBonus int `mapstructure:"set_bonus"`
}

type EngineConfig struct {
	MaxRetries int `mapstructure:"max_retries"`
}

// Config is the top-level application configuration.
type Config struct {
	DBPath   string       `mapstructure:"db_path"`
	UserID   string       `mapstructure:"user_id"`
	Timezone string       `mapstructure:"timezone"`
	Log      LogConfig    `mapstructure:"log"`
	Quests   QuestConfig  `mapstructure:"quests"`
	Engine   EngineConfig `mapstructure:"engine"`
}

// DataDir returns ~/.habitquest, or ./.habitquest without a home directory.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".habitquest"
	}
	return filepath.Join(home, ".habitquest")
}

// DefaultPath returns the config file location, honouring HABITQUEST_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "habitquest", "config.yaml")
}

func setDefaults(v *viper.Viper) {
	dir := DataDir()
	v.SetDefault("db_path", filepath.Join(dir, "habitquest.db"))
	v.SetDefault("user_id", "local")
	v.SetDefault("timezone", "Local")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.dir", filepath.Join(dir, "logs"))
	v.SetDefault("quests.per_day", 3)
	v.SetDefault("quests.set_bonus", 50)
	v.SetDefault("engine.max_retries", 3)
}

// Load reads path (a missing file is fine) and applies HABITQUEST_*
// environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("user_id must not be empty")
	}
	if c.Quests.PerDay < 1 {
		return fmt.Errorf("quests.per_day must be >= 1, got %d", c.Quests.PerDay)
	}
	if c.Quests.SetBonus < 1 {
		return fmt.Errorf("quests.set_bonus must be >= 1, got %d", c.Quests.SetBonus)
	}
	if c.Engine.MaxRetries < 1 {
		return fmt.Errorf("engine.max_retries must be >= 1, got %d", c.Engine.MaxRetries)
	}
	return nil
}
