// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Gemini   GeminiConfig
	Log      LogConfig
	Location LocationConfig
	Stores   StoresConfig
	Speech   SpeechConfig
	Export   ExportConfig
}

type ServerConfig struct {
	Transport string
	Host      string
	Port      int
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StorageConfig struct {
	DBPath string
}

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// LocationConfig pins the device position; without it store lookups need
// explicit coordinates.
type LocationConfig struct {
	Enabled   bool
	Latitude  float64
	Longitude float64
}

// StoresConfig sizes the nearby-store lookup cache.
type StoresConfig struct {
	CacheSize int
	CacheTTL  time.Duration
}

type SpeechConfig struct {
	Command string
}

type ExportConfig struct {
	Dir string
}

const (
	EnvPrefix      = "MEALMATE"
	ConfigFileName = "mealmate"
)

var defaults = map[string]interface{}{
	"server.transport":   "http",
	"server.host":        "0.0.0.0",
	"server.port":        8011,
	"storage.db_path":    "mealmate.db",
	"gemini.api_key":     "",
	"gemini.base_url":    "https://generativelanguage.googleapis.com/v1beta",
	"gemini.model":       "gemini-2.5-flash",
	"gemini.timeout":     "60s",
	"log.level":          "info",
	"log.format":         "text",
	"location.enabled":   false,
	"location.latitude":  0.0,
	"location.longitude": 0.0,
	"stores.cache_size":  64,
	"stores.cache_ttl":   "10m",
	"speech.command":     "",
	"export.dir":         ".",
}

// Flags maps command-line flag names to configuration keys.
var Flags = map[string]string{
	"transport":  "server.transport",
	"host":       "server.host",
	"port":       "server.port",
	"db-path":    "storage.db_path",
	"model":      "gemini.model",
	"log-level":  "log.level",
	"log-format": "log.format",
	"speech":     "speech.command",
	"export-dir": "export.dir",
}

type Options struct {
	// ConfigFile overrides the search for mealmate.yaml in $HOME and ".".
	ConfigFile string
	// EnvFiles are loaded into the process environment first; missing files
	// are skipped.
	EnvFiles []string
	Flags    *pflag.FlagSet
}

// Load layers defaults, the config file, the environment and flags, in
// increasing precedence.
func Load(opts Options) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		// godotenv never overrides variables already set in the environment.
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key: %w", err)
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range Flags {
			if flag := opts.Flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Transport: v.GetString("server.transport"),
			Host:      v.GetString("server.host"),
			Port:      v.GetInt("server.port"),
		},
		Storage: StorageConfig{DBPath: v.GetString("storage.db_path")},
		Gemini: GeminiConfig{
			APIKey:  v.GetString("gemini.api_key"),
			BaseURL: v.GetString("gemini.base_url"),
			Model:   v.GetString("gemini.model"),
			Timeout: v.GetDuration("gemini.timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Location: LocationConfig{
			Enabled:   v.GetBool("location.enabled"),
			Latitude:  v.GetFloat64("location.latitude"),
			Longitude: v.GetFloat64("location.longitude"),
		},
		Stores: StoresConfig{
			CacheSize: v.GetInt("stores.cache_size"),
			CacheTTL:  v.GetDuration("stores.cache_ttl"),
		},
		Speech: SpeechConfig{Command: v.GetString("speech.command")},
		Export: ExportConfig{Dir: v.GetString("export.dir")},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Transport != "http" {
		return fmt.Errorf("unsupported transport %q", c.Server.Transport)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("invalid gemini timeout %s", c.Gemini.Timeout)
	}
	if c.Storage.DBPath == "" {
		return errors.New("storage.db_path is required")
	}
	return nil
}
