// Package config loads CLI settings from flags, SD_* environment variables
// and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yaroslav/sdtemplate/internal/logging"
	"github.com/yaroslav/sdtemplate/pkg/template"
	"github.com/yaroslav/sdtemplate/sdk"
)

// EnvPrefix is prepended to every setting key to form its environment variable.
const EnvPrefix = "SD"

// Setting keys.
const (
	KeyAPIURL       = "api_url"
	KeyToken        = "token"
	KeyTemplatePath = "template_path"
	KeyLogLevel     = "log_level"
	KeyDev          = "dev"
	KeyTimeout      = "timeout"
)

// flagNames maps setting keys to the persistent flags that override them.
var flagNames = map[string]string{
	KeyAPIURL:       "api-url",
	KeyToken:        "token",
	KeyTemplatePath: "file",
	KeyLogLevel:     "log-level",
	KeyDev:          "dev",
	KeyTimeout:      "timeout",
}

// ErrInvalidSettings indicates a setting has an unusable value.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the resolved CLI configuration.
type Settings struct {
	// APIURL is the registry API root (SD_API_URL).
	APIURL string `mapstructure:"api_url"`

	// Token is the bearer token (SD_TOKEN).
	Token string `mapstructure:"token"`

	// TemplatePath is the template document to operate on (SD_TEMPLATE_PATH).
	TemplatePath string `mapstructure:"template_path"`

	// LogLevel is the minimum log level written to stderr.
	LogLevel string `mapstructure:"log_level"`

	// Dev switches logs to the console encoder.
	Dev bool `mapstructure:"dev"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `mapstructure:"timeout"`

	// ConfigFile is the config file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Settings {
	return Settings{
		APIURL:       sdk.DefaultBaseURL,
		TemplatePath: template.DefaultPath,
		LogLevel:     logging.DefaultConfig().Level,
		Timeout:      sdk.DefaultTimeout,
	}
}

// New returns a viper instance with defaults and environment bindings applied.
func New() *viper.Viper {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault(KeyAPIURL, defaults.APIURL)
	v.SetDefault(KeyToken, defaults.Token)
	v.SetDefault(KeyTemplatePath, defaults.TemplatePath)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyDev, defaults.Dev)
	v.SetDefault(KeyTimeout, defaults.Timeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags binds every flag in flags that overrides a setting.
// Flags missing from the set are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagNames {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file and resolves the settings.
//
// When configFile is empty the file is optional and looked up as
// $HOME/.config/sdtemplate/config.yaml. An explicit configFile must exist.
// Precedence is flag, then environment, then config file, then default.
//
// Returns:
//   - *Settings: The resolved and validated settings
//   - error: Config file or validation error
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sdtemplate"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	settings.ConfigFile = v.ConfigFileUsed()

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Validate checks that the settings are usable.
//
// Returns:
//   - error: ErrInvalidSettings describing what is wrong, or nil if valid
func (s *Settings) Validate() error {
	s.APIURL = strings.TrimSpace(s.APIURL)
	s.Token = strings.TrimSpace(s.Token)
	s.TemplatePath = strings.TrimSpace(s.TemplatePath)

	parsed, err := url.Parse(s.APIURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: api_url must be an absolute http(s) URL, got %q", ErrInvalidSettings, s.APIURL)
	}

	if s.TemplatePath == "" {
		return fmt.Errorf("%w: template_path cannot be empty", ErrInvalidSettings)
	}

	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidSettings, err)
	}

	if s.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidSettings)
	}

	return nil
}

// LoggingConfig returns the logger configuration for these settings.
func (s *Settings) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = s.LogLevel
	cfg.Development = s.Dev
	return cfg
}

// ClientConfig returns the registry client configuration for these settings.
func (s *Settings) ClientConfig(userAgent string, logger *zap.Logger) sdk.ClientConfig {
	return sdk.ClientConfig{
		BaseURL:   s.APIURL,
		Token:     s.Token,
		Timeout:   s.Timeout,
		UserAgent: userAgent,
		Logger:    logger,
	}
}
