package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ytget/deck-mobile/internal/logger"
)

// EnvPrefix is the prefix of environment variables read by LoadBootstrap
const EnvPrefix = "DECK"

// DefaultPrefetchConcurrency bounds concurrent stack requests during prefetch
const DefaultPrefetchConcurrency = 4

// Bootstrap is the configuration available before the UI starts.
// It seeds the session for headless use and sets up logging.
type Bootstrap struct {
	Server   string
	User     string
	Password string
	Token    string

	Log logger.Config

	Timeout             time.Duration
	PrefetchConcurrency int
}

// HasCredentials reports whether a login can be attempted without user input
func (b *Bootstrap) HasCredentials() bool {
	return b.Server != "" && b.User != "" && b.Password != ""
}

// LoadBootstrap loads configuration from deck.yaml and DECK_ environment variables.
// Priority (highest to lowest):
// 1. Environment variables (e.g., DECK_SERVER, DECK_LOG_LEVEL)
// 2. deck.yaml in the working directory or $HOME/.config/deck
// 3. Built-in defaults
func LoadBootstrap() (*Bootstrap, error) {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "deck"))
	}
	return LoadBootstrapFrom(dirs...)
}

// LoadBootstrapFrom is LoadBootstrap with explicit config file search paths
func LoadBootstrapFrom(dirs ...string) (*Bootstrap, error) {
	v := viper.New()

	v.SetConfigName("deck")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Bootstrap{
		Server:   strings.TrimSpace(v.GetString("server")),
		User:     strings.TrimSpace(v.GetString("user")),
		Password: v.GetString("password"),
		Token:    v.GetString("token"),
		Log: logger.Config{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			Output:     v.GetString("log.output"),
			TimeFormat: v.GetString("log.time_format"),
		},
		Timeout:             time.Duration(v.GetInt("timeout")) * time.Second,
		PrefetchConcurrency: v.GetInt("prefetch_concurrency"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := logger.DefaultConfig()

	v.SetDefault("server", "")
	v.SetDefault("user", "")
	v.SetDefault("password", "")
	v.SetDefault("token", "")
	v.SetDefault("log.level", defaults.Level)
	v.SetDefault("log.format", defaults.Format)
	v.SetDefault("log.output", defaults.Output)
	v.SetDefault("log.time_format", defaults.TimeFormat)
	v.SetDefault("timeout", int(DefaultRequestTimeout/time.Second))
	v.SetDefault("prefetch_concurrency", DefaultPrefetchConcurrency)
}

// Validate checks the values; callers overriding fields after loading
// validate again
func (b *Bootstrap) Validate() error {
	if b.Timeout < MinRequestTimeout || b.Timeout > MaxRequestTimeout {
		return fmt.Errorf("timeout must be between %v and %v, got %v", MinRequestTimeout, MaxRequestTimeout, b.Timeout)
	}
	if b.PrefetchConcurrency < 1 {
		return fmt.Errorf("prefetch_concurrency must be positive, got %d", b.PrefetchConcurrency)
	}
	switch b.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", b.Log.Format)
	}
	return nil
}
