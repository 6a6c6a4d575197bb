package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"apptrack/internal/format"
	"apptrack/internal/logger"
	"apptrack/internal/query"
	"apptrack/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the tracker.
type Config struct {
	Data   DataConfig    `mapstructure:"data"`
	Edit   EditConfig    `mapstructure:"edit"`
	View   ViewConfig    `mapstructure:"view"`
	Output OutputConfig  `mapstructure:"output"`
	Log    logger.Config `mapstructure:"log"`
}

type DataConfig struct {
	Dir     string `mapstructure:"dir"`
	Backend string `mapstructure:"backend"`
}

type EditConfig struct {
	// Debounce is how long text edits wait after the last keystroke before they apply.
	Debounce time.Duration `mapstructure:"debounce"`
}

type ViewConfig struct {
	Sort      string `mapstructure:"sort"`
	EssaySort string `mapstructure:"essay_sort"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Pretty bool   `mapstructure:"pretty"`
}

// Dir returns the per-user config directory (APPTRACK_CONFIG_DIR overrides it for tests).
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("APPTRACK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "apptrack"), nil
}

// Load reads defaults, an optional config file, .env and APPTRACK_* environment variables.
// The returned viper instance lets callers bind command-line flags on top.
func Load() (*Config, *viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("APPTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := readConfigFile(v); err != nil {
		return nil, nil, err
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// Decode unmarshals and validates the current viper state.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if strings.TrimSpace(cfg.Data.Dir) == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.Data.Dir = dir
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "")
	v.SetDefault("data.backend", "sqlite")

	v.SetDefault("edit.debounce", "500ms")

	v.SetDefault("view.sort", string(query.DefaultSortMode))
	v.SetDefault("view.essay_sort", string(query.DefaultEssaySort))

	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", false)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.filename", "")
}

func readConfigFile(v *viper.Viper) error {
	if path := strings.TrimSpace(os.Getenv("APPTRACK_CONFIG")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}
	dir, err := Dir()
	if err != nil {
		return nil
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func defaultDataDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// validateConfig accepts what the flag parsers accept and writes back the
// canonical spelling.
func validateConfig(cfg *Config) error {
	backend, err := store.ParseBackend(cfg.Data.Backend)
	if err != nil {
		return fmt.Errorf("data.backend: %w", err)
	}
	cfg.Data.Backend = string(backend)
	if cfg.Edit.Debounce <= 0 {
		return fmt.Errorf("edit.debounce must be positive")
	}
	sort, err := query.ParseSortMode(cfg.View.Sort)
	if err != nil {
		return err
	}
	cfg.View.Sort = string(sort)
	essaySort, err := query.ParseEssaySortMode(cfg.View.EssaySort)
	if err != nil {
		return err
	}
	cfg.View.EssaySort = string(essaySort)
	f, err := format.ParseFormat(cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	cfg.Output.Format = string(f)
	return nil
}
