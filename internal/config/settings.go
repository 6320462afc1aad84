package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/bookmatch/bookmatch/internal/validation"
)

// EnvPrefix is stripped from environment variables before they are mapped onto
// settings keys.
const EnvPrefix = "BOOKMATCH_"

// Settings holds every tunable that is not a command flag.
type Settings struct {
	DataDir   string            `koanf:"data_dir"`
	Search    SearchSettings    `koanf:"search"`
	Recommend RecommendSettings `koanf:"recommend"`
	Auth      AuthSettings      `koanf:"auth"`
	Log       LogSettings       `koanf:"log"`
}

// SearchSettings tunes the fuzzy title search.
type SearchSettings struct {
	Threshold float64 `koanf:"threshold" validate:"gte=0,lt=1"`
	Limit     int     `koanf:"limit" validate:"gte=0"`
}

// RecommendSettings tunes the recommendation engine.
type RecommendSettings struct {
	Count  int `koanf:"count" validate:"gte=1"`
	Window int `koanf:"window" validate:"gte=1"`
}

// AuthSettings selects the password hashing scheme for new users.
type AuthSettings struct {
	Algorithm string `koanf:"algorithm" validate:"oneof=argon2id sha512"`
}

// LogSettings configures the process logger.
type LogSettings struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

// DefaultSettings returns the values used when nothing else is configured.
func DefaultSettings() *Settings {
	return &Settings{
		DataDir: "",
		Search: SearchSettings{
			Threshold: 0.67,
			Limit:     10,
		},
		Recommend: RecommendSettings{
			Count:  3,
			Window: 3,
		},
		Auth: AuthSettings{
			Algorithm: "argon2id",
		},
		Log: LogSettings{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load layers defaults, the optional YAML settings file and BOOKMATCH_*
// environment variables, in that order of priority.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultSettings(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = GetConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	settings := &Settings{}
	if err := k.Unmarshal("", settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validation.New().Validate(settings); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if settings.DataDir == "" {
		settings.DataDir = GetDataDir()
	}

	return settings, nil
}

// envTransformFunc maps BOOKMATCH_SEARCH_LIMIT style names to koanf paths.
// Unknown variables map to "" and are ignored. BOOKMATCH_DIR and
// BOOKMATCH_CONFIG are read directly by GetDataDir and GetConfigPath.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	envMappings := map[string]string{
		"data_dir":         "data_dir",
		"search_threshold": "search.threshold",
		"search_limit":     "search.limit",
		"recommend_count":  "recommend.count",
		"recommend_window": "recommend.window",
		"auth_algorithm":   "auth.algorithm",
		"log_level":        "log.level",
		"log_format":       "log.format",
	}

	return envMappings[key]
}
