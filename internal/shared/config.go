package shared

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Providers ProvidersConfig `yaml:"providers"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Relay     RelayConfig     `yaml:"relay"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig configures the webhook HTTP server.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ProvidersConfig configures the AI text backends.
type ProvidersConfig struct {
	Default  string         `yaml:"default"`
	DeepSeek ProviderConfig `yaml:"deepseek"`
	Eden     ProviderConfig `yaml:"eden"`
}

// ProviderConfig is one AI vendor endpoint.
type ProviderConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
	Retry   int           `yaml:"retry"`
}

// WorkspaceConfig configures the document-workspace client. An empty
// BaseURL disables the workspace integration entirely.
type WorkspaceConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Token             string        `yaml:"token"`
	DefaultCollection string        `yaml:"default_collection"`
	Timeout           time.Duration `yaml:"timeout"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
}

// RelayConfig tunes message routing behavior.
type RelayConfig struct {
	Locale        string        `yaml:"locale"`
	EnrichContext bool          `yaml:"enrich_context"`
	CallTimeout   time.Duration `yaml:"call_timeout"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// LoadConfig reads a YAML config file, applies environment overrides for
// secrets (a .env file is honored when present) and validates the result.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv lets API credentials come from the environment instead of the
// config file, so the file can be committed without secrets.
func (c *Config) applyEnv() {
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		c.Providers.DeepSeek.APIKey = v
	}
	if v := os.Getenv("EDEN_API_KEY"); v != "" {
		c.Providers.Eden.APIKey = v
	}
	if v := os.Getenv("NOTION_TOKEN"); v != "" {
		c.Workspace.Token = v
	}
}

func (c *Config) applyDefaults() {
	if c.Providers.Default == "" {
		c.Providers.Default = "deepseek"
	}
	if c.Providers.DeepSeek.Timeout == 0 {
		c.Providers.DeepSeek.Timeout = 30 * time.Second
	}
	if c.Providers.Eden.Timeout == 0 {
		c.Providers.Eden.Timeout = 30 * time.Second
	}
	if c.Workspace.Timeout == 0 {
		c.Workspace.Timeout = 15 * time.Second
	}
	if c.Workspace.CacheTTL == 0 {
		c.Workspace.CacheTTL = 5 * time.Minute
	}
	if c.Relay.Locale == "" {
		c.Relay.Locale = "en"
	}
	if c.Relay.CallTimeout == 0 {
		c.Relay.CallTimeout = 30 * time.Second
	}
}

func (c *Config) validate() error {
	if err := validateAddr(c.Server.Addr); err != nil {
		return fmt.Errorf("server.addr: %w", err)
	}

	if err := validateBaseURL(c.Providers.DeepSeek.BaseURL); err != nil {
		return fmt.Errorf("providers.deepseek.base_url: %w", err)
	}
	if c.Providers.DeepSeek.APIKey == "" {
		return fmt.Errorf("providers.deepseek.api_key: must not be empty")
	}

	if err := validateBaseURL(c.Providers.Eden.BaseURL); err != nil {
		return fmt.Errorf("providers.eden.base_url: %w", err)
	}
	if c.Providers.Eden.APIKey == "" {
		return fmt.Errorf("providers.eden.api_key: must not be empty")
	}

	switch c.Providers.Default {
	case "deepseek", "eden":
	default:
		return fmt.Errorf("providers.default: unknown provider %q", c.Providers.Default)
	}

	// The workspace integration is optional; when configured it needs a
	// token and a collection to file notes into.
	if c.Workspace.BaseURL != "" {
		if err := validateBaseURL(c.Workspace.BaseURL); err != nil {
			return fmt.Errorf("workspace.base_url: %w", err)
		}
		if c.Workspace.Token == "" {
			return fmt.Errorf("workspace.token: must not be empty")
		}
		if c.Workspace.DefaultCollection == "" {
			return fmt.Errorf("workspace.default_collection: must not be empty")
		}
	}

	return nil
}

func validateAddr(addr string) error {
	if addr == "" {
		return fmt.Errorf("must not be empty")
	}
	_, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}
	return nil
}

func validateBaseURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("must not be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must include scheme and host")
	}
	return nil
}
