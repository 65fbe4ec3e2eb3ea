package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultEnvFile           = ".env"
	defaultPort              = "8080"
	defaultReadHeaderTimeout = 10 * time.Second
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultHandlerTimeout    = 30 * time.Second
	defaultTemplatesDir      = "templates"
	defaultPublicDir         = "public"
	defaultProfileFile       = "content/profile.yaml"
	defaultLogLevel          = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Env       string
	Server    ServerConfig
	Site      SiteConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	HandlerTimeout    time.Duration
}

// SiteConfig locates content and controls page rendering.
type SiteConfig struct {
	// BaseURL, when set, replaces the request-derived scheme://host in canonical
	// and hreflang links.
	BaseURL      string
	TemplatesDir string
	PublicDir    string
	ProfileFile  string
	// DevMode reparses templates on every request.
	DevMode bool
	// SecurityMeta adds the http-equiv security meta tags to every page.
	SecurityMeta bool
}

// AnalyticsConfig holds client instrumentation identifiers.
type AnalyticsConfig struct {
	ClarityProjectID string
	GA4MeasurementID string
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string
}

// Production reports whether the service runs in the production environment.
func (c Config) Production() bool { return c.Env == EnvProduction }

// Addr returns the listen address for the configured port.
func (c Config) Addr() string { return ":" + c.Server.Port }

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option configures the loader.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides. An empty
// path disables .env loading.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, the .env file and the environment.
// Lookup order is: explicit map, process environment, .env file.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := readDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnv[key]; ok {
			return value, true
		}
		return "", false
	}

	port := stringWithDefault(lookup, "PROFILE_WEB_PORT", "")
	if port == "" {
		// Cloud Run injects PORT.
		port = stringWithDefault(lookup, "PORT", defaultPort)
	}

	cfg := Config{
		Env: strings.ToLower(stringWithDefault(lookup, "PROFILE_WEB_ENV", EnvDevelopment)),
		Server: ServerConfig{
			Port:              port,
			ReadHeaderTimeout: durationWithDefault(lookup, "PROFILE_WEB_READ_HEADER_TIMEOUT", defaultReadHeaderTimeout),
			ReadTimeout:       durationWithDefault(lookup, "PROFILE_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:      durationWithDefault(lookup, "PROFILE_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       durationWithDefault(lookup, "PROFILE_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			HandlerTimeout:    durationWithDefault(lookup, "PROFILE_WEB_HANDLER_TIMEOUT", defaultHandlerTimeout),
		},
		Site: SiteConfig{
			BaseURL:      strings.TrimRight(stringWithDefault(lookup, "PROFILE_WEB_BASE_URL", ""), "/"),
			TemplatesDir: stringWithDefault(lookup, "PROFILE_WEB_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:    stringWithDefault(lookup, "PROFILE_WEB_PUBLIC_DIR", defaultPublicDir),
			ProfileFile:  stringWithDefault(lookup, "PROFILE_WEB_PROFILE_FILE", defaultProfileFile),
			DevMode:      boolWithDefault(lookup, "PROFILE_WEB_DEV", false),
			SecurityMeta: boolWithDefault(lookup, "PROFILE_WEB_SECURITY_META", false),
		},
		Analytics: AnalyticsConfig{
			ClarityProjectID: stringWithDefault(lookup, "CLARITY_PROJECT_ID", ""),
			GA4MeasurementID: stringWithDefault(lookup, "PROFILE_WEB_GA_MEASUREMENT_ID", ""),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "PROFILE_WEB_LOG_LEVEL", defaultLogLevel)),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var invalid []string

	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		invalid = append(invalid, "Env")
	}
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		invalid = append(invalid, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		invalid = append(invalid, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		invalid = append(invalid, "Server.WriteTimeout")
	}
	if cfg.Site.BaseURL != "" {
		u, err := url.Parse(cfg.Site.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			invalid = append(invalid, "Site.BaseURL")
		}
	}
	if strings.TrimSpace(cfg.Site.TemplatesDir) == "" {
		invalid = append(invalid, "Site.TemplatesDir")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
