package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SURVEY_ADMIN_"

// Transports understood by the serve command.
const (
	TransportFiber = "fiber"
	TransportChi   = "chi"
)

// Config is the survey admin runtime configuration.
type Config struct {
	Listen        string         `yaml:"listen"`
	Transport     string         `yaml:"transport"`
	BasePath      string         `yaml:"base_path"`
	DefaultLocale string         `yaml:"default_locale"`
	AppName       string         `yaml:"app_name"`
	Translations  string         `yaml:"translations_dir"`
	GraphQL       GraphQLConfig  `yaml:"graphql"`
	Session       SessionConfig  `yaml:"session"`
	Charts        ChartsConfig   `yaml:"charts"`
	Activity      ActivityConfig `yaml:"activity"`
	Log           LogConfig      `yaml:"log"`
}

// GraphQLConfig points at the backend API.
type GraphQLConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// SessionConfig configures the signed session cookie.
type SessionConfig struct {
	CookieName  string `yaml:"cookie_name"`
	Secret      string `yaml:"secret"`
	AllowBearer bool   `yaml:"allow_bearer"`
	SignInURL   string `yaml:"sign_in_url"`
}

// ChartsConfig tunes option summary charts.
type ChartsConfig struct {
	CacheTTL   time.Duration `yaml:"cache_ttl"`
	AssetsHost string        `yaml:"assets_host"`
	Theme      string        `yaml:"theme"`
}

// ActivityConfig toggles the mutation audit trail.
type ActivityConfig struct {
	Enabled bool   `yaml:"enabled"`
	Channel string `yaml:"channel"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:        ":8080",
		Transport:     TransportFiber,
		BasePath:      "/admin",
		DefaultLocale: "en",
		GraphQL:       GraphQLConfig{Timeout: 10 * time.Second},
		Charts:        ChartsConfig{CacheTTL: 5 * time.Minute},
		Activity:      ActivityConfig{Enabled: true},
		Log:           LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path (optional), the .env file next to the working directory
// (optional) and SURVEY_ADMIN_* overrides, then validates the result.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path) //nolint:gosec
		if err != nil {
			return Config{}, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer f.Close()
		if err := Decode(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode merges a YAML document into cfg. Unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("config: parse: %w", err)
	}
	return nil
}

// Validate checks the fields the server cannot run without.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportFiber, TransportChi:
	default:
		return fmt.Errorf("config: unsupported transport %q", c.Transport)
	}
	if strings.TrimSpace(c.GraphQL.Endpoint) == "" {
		return fmt.Errorf("config: graphql.endpoint is required")
	}
	if strings.TrimSpace(c.Session.Secret) == "" {
		return fmt.Errorf("config: session.secret is required")
	}
	if c.GraphQL.Timeout < 0 || c.Charts.CacheTTL < 0 {
		return fmt.Errorf("config: durations must not be negative")
	}
	return nil
}

// SlogLevel maps Log.Level to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger builds the process logger described by Log.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type envBinding struct {
	name  string
	apply func(string) error
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	bindings := []envBinding{
		{"LISTEN", setString(&cfg.Listen)},
		{"TRANSPORT", setString(&cfg.Transport)},
		{"BASE_PATH", setString(&cfg.BasePath)},
		{"DEFAULT_LOCALE", setString(&cfg.DefaultLocale)},
		{"APP_NAME", setString(&cfg.AppName)},
		{"TRANSLATIONS_DIR", setString(&cfg.Translations)},
		{"GRAPHQL_ENDPOINT", setString(&cfg.GraphQL.Endpoint)},
		{"GRAPHQL_TIMEOUT", setDuration(&cfg.GraphQL.Timeout)},
		{"SESSION_COOKIE", setString(&cfg.Session.CookieName)},
		{"SESSION_SECRET", setString(&cfg.Session.Secret)},
		{"SESSION_ALLOW_BEARER", setBool(&cfg.Session.AllowBearer)},
		{"SIGN_IN_URL", setString(&cfg.Session.SignInURL)},
		{"CHART_CACHE_TTL", setDuration(&cfg.Charts.CacheTTL)},
		{"CHART_ASSETS_HOST", setString(&cfg.Charts.AssetsHost)},
		{"CHART_THEME", setString(&cfg.Charts.Theme)},
		{"ACTIVITY_ENABLED", setBool(&cfg.Activity.Enabled)},
		{"ACTIVITY_CHANNEL", setString(&cfg.Activity.Channel)},
		{"LOG_LEVEL", setString(&cfg.Log.Level)},
		{"LOG_FORMAT", setString(&cfg.Log.Format)},
	}
	for _, binding := range bindings {
		value, ok := lookup(EnvPrefix + binding.name)
		if !ok {
			continue
		}
		if err := binding.apply(strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, binding.name, err)
		}
	}
	return nil
}

func setString(target *string) func(string) error {
	return func(value string) error {
		*target = value
		return nil
	}
}

func setBool(target *bool) func(string) error {
	return func(value string) error {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	}
}

func setDuration(target *time.Duration) func(string) error {
	return func(value string) error {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	}
}
