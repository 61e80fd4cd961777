package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Play     PlayConfig     `mapstructure:"play"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings. An empty Migrations path uses the
// migrations compiled into the binary.
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	Migrations string `mapstructure:"migrations"`
}

// PlayConfig holds solving preferences applied to every playboard.
type PlayConfig struct {
	Responder          string `mapstructure:"responder"`
	Movement           string `mapstructure:"movement"`
	SkipCompleted      bool   `mapstructure:"skip_completed"`
	PreserveCorrect    bool   `mapstructure:"preserve_correct"`
	DontDeleteCrossing bool   `mapstructure:"dont_delete_crossing"`
	ShowErrors         string `mapstructure:"show_errors"`
}

// LogConfig holds logging settings. File is used while the TUI owns the terminal.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Show-errors modes.
const (
	ShowErrorsOff    = "off"
	ShowErrorsCursor = "cursor"
	ShowErrorsGrid   = "grid"
)

// Load reads configuration from file and env. Env var overrides use prefix PUZBOARD_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PUZBOARD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "puzboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PUZBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	user := os.Getenv("USER")

	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "puzboard", "puzboard.db"))
	v.SetDefault("database.migrations", "")
	v.SetDefault("play.responder", user)
	v.SetDefault("play.movement", "axis")
	v.SetDefault("play.skip_completed", false)
	v.SetDefault("play.preserve_correct", true)
	v.SetDefault("play.dont_delete_crossing", false)
	v.SetDefault("play.show_errors", ShowErrorsOff)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(home, ".local", "state", "puzboard", "puzboard.log"))
}

// Validate rejects values the playboard cannot use.
func (c Config) Validate() error {
	switch strings.ToLower(c.Play.Movement) {
	case "", "axis", "clue":
	default:
		return fmt.Errorf("config: play.movement must be axis or clue, got %q", c.Play.Movement)
	}
	switch strings.ToLower(c.Play.ShowErrors) {
	case "", ShowErrorsOff, ShowErrorsCursor, ShowErrorsGrid:
	default:
		return fmt.Errorf("config: play.show_errors must be off, cursor or grid, got %q", c.Play.ShowErrors)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) (string, error) {
	path := os.Getenv("PUZBOARD_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "puzboard", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("play.responder", cfg.Play.Responder)
	v.Set("play.movement", cfg.Play.Movement)
	v.Set("play.skip_completed", cfg.Play.SkipCompleted)
	v.Set("play.preserve_correct", cfg.Play.PreserveCorrect)
	v.Set("play.dont_delete_crossing", cfg.Play.DontDeleteCrossing)
	v.Set("play.show_errors", cfg.Play.ShowErrors)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
