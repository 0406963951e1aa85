package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

const envProduction = "production"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	API         APIConfig         `toml:"api"`
	Assets      AssetsConfig      `toml:"assets"`
	Credentials CredentialsConfig `toml:"credentials"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host          string  `toml:"host"`
	Port          int     `toml:"port"`
	Env           string  `toml:"env"`
	Title         string  `toml:"title"`
	LogLevel      string  `toml:"log_level"`
	CORSOrigin    string  `toml:"cors_origin"`
	AuthRateLimit float64 `toml:"auth_rate_limit"` // requests per second across the auth endpoints
	AuthBurst     int     `toml:"auth_burst"`
}

// APIConfig points at the upstream movies/users API.
type APIConfig struct {
	URL            string `toml:"url"`
	APIKeyToken    string `toml:"api_key_token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// AssetsConfig locates the bundler output.
type AssetsConfig struct {
	PublicDir    string `toml:"public_dir"`
	ManifestPath string `toml:"manifest_path"`
}

// CredentialsConfig contains OAuth client credentials per identity provider.
type CredentialsConfig struct {
	Google   ProviderConfig `toml:"google"`
	Twitter  ProviderConfig `toml:"twitter"`
	Facebook ProviderConfig `toml:"facebook"`
}

// ProviderConfig contains OAuth2 client credentials.
type ProviderConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// Enabled reports whether both client credentials are present.
func (p ProviderConfig) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// Dev reports whether the server runs in development mode.
//
// Anything other than "production" is development: cookies drop the Secure flag and the asset manifest is re-read on
// every request.
func (c *Config) Dev() bool {
	return c.Server.Env != envProduction
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
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

// LoadEnvFile loads variables from a dotenv file into the process environment.
//
// An empty path loads ".env" from the working directory and tolerates its absence.
func LoadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment variables on top of the file configuration.
func (c *Config) ApplyEnv() error {
	setString(&c.Server.Env, "ENV")
	setString(&c.Server.LogLevel, "LOG_LEVEL")
	setString(&c.Server.CORSOrigin, "CORS_ORIGIN")
	setString(&c.API.URL, "API_URL")
	setString(&c.API.APIKeyToken, "API_KEY_TOKEN")
	setString(&c.Assets.PublicDir, "PUBLIC_DIR")
	setString(&c.Assets.ManifestPath, "MANIFEST_PATH")

	setString(&c.Credentials.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&c.Credentials.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&c.Credentials.Google.RedirectURI, "GOOGLE_REDIRECT_URI")
	setString(&c.Credentials.Twitter.ClientID, "TWITTER_CLIENT_ID")
	setString(&c.Credentials.Twitter.ClientSecret, "TWITTER_CLIENT_SECRET")
	setString(&c.Credentials.Twitter.RedirectURI, "TWITTER_REDIRECT_URI")
	setString(&c.Credentials.Facebook.ClientID, "FACEBOOK_CLIENT_ID")
	setString(&c.Credentials.Facebook.ClientSecret, "FACEBOOK_CLIENT_SECRET")
	setString(&c.Credentials.Facebook.RedirectURI, "FACEBOOK_REDIRECT_URI")

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.Port = port
	}

	return nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("%w: api.url is required", ErrMissingConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: api.timeout_seconds must not be negative", ErrInvalidConfig)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
