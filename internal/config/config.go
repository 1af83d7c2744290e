// Package config provides configuration loading and validation for the
// discovery API server. It uses koanf to merge environment variables with
// optional file overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the discovery API server.
type Config struct {
	// Server settings
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`

	// Session tokens for the demo login flow
	SessionSecret string `koanf:"session_secret"`

	// Stripe
	StripeAPIKey      string `koanf:"stripe_api_key"`
	PaymentCurrency   string `koanf:"payment_currency"`
	PaymentSuccessURL string `koanf:"payment_success_url"`
	PaymentCancelURL  string `koanf:"payment_cancel_url"`

	// Geolocation fallback: the launch city center used when the viewer
	// denies geolocation.
	DefaultCenterLat float64 `koanf:"default_center_lat"`
	DefaultCenterLng float64 `koanf:"default_center_lng"`

	// Capacity policy: when true, joining a full activity is rejected.
	CapacityEnforced bool `koanf:"capacity_enforced"`

	// Map camera tuning
	MapOverviewZoom     float64 `koanf:"map_overview_zoom"`
	MapSelectZoom       float64 `koanf:"map_select_zoom"`
	MapDetailZoom       float64 `koanf:"map_detail_zoom"`
	MapUserZoom         float64 `koanf:"map_user_zoom"`
	MapFlyToDurationMS  int     `koanf:"map_flyto_duration_ms"`
	MapDetailDurationMS int     `koanf:"map_detail_duration_ms"`
	MapFitPadding       int     `koanf:"map_fit_padding"`
	MapFitDurationMS    int     `koanf:"map_fit_duration_ms"`
}

// Configuration validation errors.
var (
	ErrMissingSessionSecret = errors.New("SESSION_SECRET is required")
	ErrMissingStripeAPIKey  = errors.New("STRIPE_API_KEY is required")
	ErrInvalidPort          = errors.New("PORT must be a valid integer")
)

// Default values for non-secret configuration.
const (
	DefaultPort            = 8080
	DefaultEnv             = "development"
	DefaultPaymentCurrency = "inr"

	// Delhi city center, the launch area's geolocation fallback.
	DefaultCenterLat = 28.6139
	DefaultCenterLng = 77.2090

	DefaultMapOverviewZoom     = 11.0
	DefaultMapSelectZoom       = 15.0
	DefaultMapDetailZoom       = 16.0
	DefaultMapUserZoom         = 14.0
	DefaultMapFlyToDurationMS  = 1000
	DefaultMapDetailDurationMS = 1500
	DefaultMapFitPadding       = 50
	DefaultMapFitDurationMS    = 1000
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if
// valid). If a config file path is provided and the file cannot be
// loaded, an error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	// Load from YAML file first if provided (lower precedence)
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	// Try NFIT_PORT first, then PORT for platform compatibility
	port, portErr := getEnvIntOrDefaultMulti([]string{"NFIT_PORT", "PORT"}, k.Int("port"), DefaultPort)
	if portErr != nil {
		loadErrs = append(loadErrs, portErr)
	}

	centerLat, latErr := getEnvFloatOrDefault("DEFAULT_CENTER_LAT", k.Float64("default_center_lat"), DefaultCenterLat)
	if latErr != nil {
		loadErrs = append(loadErrs, latErr)
	}
	centerLng, lngErr := getEnvFloatOrDefault("DEFAULT_CENTER_LNG", k.Float64("default_center_lng"), DefaultCenterLng)
	if lngErr != nil {
		loadErrs = append(loadErrs, lngErr)
	}

	capacityEnforced := k.Bool("capacity_enforced")
	if val := os.Getenv("CAPACITY_ENFORCED"); val != "" {
		// Env var takes precedence over file config
		switch strings.ToLower(val) {
		case "true", "1", "yes", "on":
			capacityEnforced = true
		case "false", "0", "no", "off":
			capacityEnforced = false
		}
	}

	cfg := &Config{
		Port:              port,
		Env:               getEnvOrDefaultMulti([]string{"NFIT_ENV", "ENV", "GO_ENV"}, k.String("env"), DefaultEnv),
		SessionSecret:     getEnvOrKoanf("SESSION_SECRET", k, "session_secret"),
		StripeAPIKey:      getEnvOrKoanf("STRIPE_API_KEY", k, "stripe_api_key"),
		PaymentCurrency:   getEnvOrDefault("PAYMENT_CURRENCY", k.String("payment_currency"), DefaultPaymentCurrency),
		PaymentSuccessURL: getEnvOrKoanf("PAYMENT_SUCCESS_URL", k, "payment_success_url"),
		PaymentCancelURL:  getEnvOrKoanf("PAYMENT_CANCEL_URL", k, "payment_cancel_url"),
		DefaultCenterLat:  centerLat,
		DefaultCenterLng:  centerLng,
		CapacityEnforced:  capacityEnforced,
	}

	cfg.MapOverviewZoom = floatOrDefault(k.Float64("map_overview_zoom"), DefaultMapOverviewZoom)
	cfg.MapSelectZoom = floatOrDefault(k.Float64("map_select_zoom"), DefaultMapSelectZoom)
	cfg.MapDetailZoom = floatOrDefault(k.Float64("map_detail_zoom"), DefaultMapDetailZoom)
	cfg.MapUserZoom = floatOrDefault(k.Float64("map_user_zoom"), DefaultMapUserZoom)
	cfg.MapFlyToDurationMS = intOrDefault(k.Int("map_flyto_duration_ms"), DefaultMapFlyToDurationMS)
	cfg.MapDetailDurationMS = intOrDefault(k.Int("map_detail_duration_ms"), DefaultMapDetailDurationMS)
	cfg.MapFitPadding = intOrDefault(k.Int("map_fit_padding"), DefaultMapFitPadding)
	cfg.MapFitDurationMS = intOrDefault(k.Int("map_fit_duration_ms"), DefaultMapFitDurationMS)

	errs := cfg.Validate()
	errs = append(loadErrs, errs...)

	return cfg, errs
}

// Validate checks that all required configuration values are present.
// Returns a slice of validation errors (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if c.SessionSecret == "" {
		errs = append(errs, ErrMissingSessionSecret)
	}
	if c.StripeAPIKey == "" {
		errs = append(errs, ErrMissingStripeAPIKey)
	}

	return errs
}

// LogSummary returns a summary of the configuration suitable for logging.
// All secrets are masked to prevent accidental exposure.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"port":              strconv.Itoa(c.Port),
		"env":               c.Env,
		"session_secret":    mask(c.SessionSecret),
		"stripe_api_key":    mask(c.StripeAPIKey),
		"payment_currency":  c.PaymentCurrency,
		"default_center":    fmt.Sprintf("%.4f,%.4f", c.DefaultCenterLat, c.DefaultCenterLng),
		"capacity_enforced": strconv.FormatBool(c.CapacityEnforced),
	}
}

func mask(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	return "(set)"
}

// getEnvOrKoanf returns the environment variable value if set, otherwise the koanf value.
func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

// getEnvOrDefault returns the environment variable value if set, otherwise the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first non-empty value found, otherwise the koanf value, or default.
func getEnvOrDefaultMulti(envKeys []string, koanfVal string, defaultVal string) string {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvIntOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first valid integer value found, otherwise the koanf value, or default.
// Returns an error if any environment variable is set but cannot be parsed as an integer.
func getEnvIntOrDefaultMulti(envKeys []string, koanfVal int, defaultVal int) (int, error) {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				return 0, fmt.Errorf("%s must be a valid integer: %w", key, ErrInvalidPort)
			}
			return i, nil
		}
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// getEnvFloatOrDefault returns the environment variable as float64 if set, otherwise the koanf value, or default.
// Returns an error if the environment variable is set but cannot be parsed as a float.
func getEnvFloatOrDefault(envKey string, koanfVal float64, defaultVal float64) (float64, error) {
	if val := os.Getenv(envKey); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid float: %w", envKey, err)
		}
		return f, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

func floatOrDefault(val, defaultVal float64) float64 {
	if val != 0 {
		return val
	}
	return defaultVal
}

func intOrDefault(val, defaultVal int) int {
	if val != 0 {
		return val
	}
	return defaultVal
}
