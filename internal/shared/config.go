package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variable names for credentials.
const (
	EnvYouTubeAPIKey  = "YT_API_KEY"
	EnvSpotifyClient  = "SPOTIFY_CLIENT"
	EnvSpotifySecret  = "SPOTIFY_SECRET"
	defaultTimeout    = 15 * time.Second
	defaultRateLimit  = 5.0
	defaultLogLevel   = "info"
	defaultConfigPath = "config.toml"
)

// Config represents the application configuration loaded from a TOML file and the environment.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	HTTP        HTTPConfig        `toml:"http"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	YouTube YouTubeConfig `toml:"youtube"`
}

// SpotifyConfig contains Spotify API credentials and endpoints.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	APIURL       string `toml:"api_url"`
	TokenURL     string `toml:"token_url"`
}

// YouTubeConfig contains YouTube Data API credentials.
type YouTubeConfig struct {
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint"`
}

// HTTPConfig contains outbound request settings.
type HTTPConfig struct {
	Timeout   Duration `toml:"timeout"`
	RateLimit float64  `toml:"rate_limit"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration wraps [time.Duration] so it can be decoded from TOML strings like "15s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: bad duration %q", ErrInvalidConfig, text)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}
	config.applyDefaults()

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyDefaults()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Resolve builds the process configuration once at startup.
//
// Order, lowest first: embedded defaults, the TOML file at configPath (skipped when absent),
// the dotenv file at envPath (skipped when absent), the process environment.
// Missing credentials are not an error here.
func Resolve(configPath, envPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	config := DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			// Load never overrides variables already present in the environment.
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("%w: failed to load %s: %v", ErrInvalidConfig, envPath, err)
			}
		}
	}

	config.ApplyEnv(os.LookupEnv)
	return config, nil
}

// ApplyEnv overlays credentials found through lookup onto the config.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvYouTubeAPIKey); ok && v != "" {
		c.Credentials.YouTube.APIKey = v
	}
	if v, ok := lookup(EnvSpotifyClient); ok && v != "" {
		c.Credentials.Spotify.ClientID = v
	}
	if v, ok := lookup(EnvSpotifySecret); ok && v != "" {
		c.Credentials.Spotify.ClientSecret = v
	}
}

// MissingCredentials lists the environment names of credentials that are unset.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.Credentials.YouTube.APIKey == "" {
		missing = append(missing, EnvYouTubeAPIKey)
	}
	if c.Credentials.Spotify.ClientID == "" {
		missing = append(missing, EnvSpotifyClient)
	}
	if c.Credentials.Spotify.ClientSecret == "" {
		missing = append(missing, EnvSpotifySecret)
	}
	return missing
}

func (c *Config) applyDefaults() {
	if c.HTTP.Timeout.Duration <= 0 {
		c.HTTP.Timeout.Duration = defaultTimeout
	}
	if c.HTTP.RateLimit <= 0 {
		c.HTTP.RateLimit = defaultRateLimit
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}
