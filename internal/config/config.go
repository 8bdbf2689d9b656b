package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the full configuration required to run the extraction proxy.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Registry RegistryConfig `yaml:"registry"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig controls the inbound HTTP listener.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// UpstreamConfig controls outbound requests to content-extraction APIs.
type UpstreamConfig struct {
	UserAgent    string   `yaml:"user_agent"`
	Timeout      Duration `yaml:"timeout"`
	MaxBodyBytes int64    `yaml:"max_body_bytes"`
}

// EndpointConfig declares one upstream endpoint candidate. The request URL
// is built by concatenating the template with the percent-encoded parameter.
type EndpointConfig struct {
	URL string `yaml:"url"`
	// Dialect selects the profile extractor for user_stalk candidates.
	Dialect string `yaml:"dialect,omitempty"`
}

// RegistryConfig lists endpoint candidates per capability, in trial order.
type RegistryConfig struct {
	Download      []EndpointConfig `yaml:"download"`
	Story         []EndpointConfig `yaml:"story"`
	UserSearch    []EndpointConfig `yaml:"user_search"`
	HashtagSearch []EndpointConfig `yaml:"hashtag_search"`
	UserStalk     []EndpointConfig `yaml:"user_stalk"`
}

// CacheConfig controls the optional in-process result cache.
type CacheConfig struct {
	Enabled    bool     `yaml:"enabled"`
	MaxEntries int      `yaml:"max_entries"`
	TTL        Duration `yaml:"ttl"`
}

// LoggingConfig selects log verbosity and format.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Structured bool   `yaml:"structured"`
}

// Default returns a Config populated with the known upstream endpoints and
// sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":3000",
			ShutdownTimeout: DurationFrom(15 * time.Second),
		},
		Upstream: UpstreamConfig{
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			Timeout:      DurationFrom(15 * time.Second),
			MaxBodyBytes: 5 * 1024 * 1024,
		},
		Registry: RegistryConfig{
			Download: []EndpointConfig{
				{URL: "https://api-aswin-sparky.koyeb.app/api/downloader/igdl?url="},
				{URL: "https://api.vreden.my.id/api/igdownload?url="},
				{URL: "https://api.vreden.my.id/api/download/instagram2?url="},
				{URL: "https://api.sylphy.xyz/download/instagram?url="},
				{URL: "https://api.dreaded.site/api/igdl?url="},
				{URL: "https://api.dorratz.com/igdl?url="},
			},
			Story: []EndpointConfig{
				{URL: "https://api-aswin-sparky.koyeb.app/api/downloader/story?search="},
			},
			UserSearch: []EndpointConfig{
				{URL: "https://api.vreden.my.id/api/instagram/users?query="},
			},
			HashtagSearch: []EndpointConfig{
				{URL: "https://api.vreden.my.id/api/instagram/hashtags?query="},
			},
			UserStalk: []EndpointConfig{
				{URL: "https://api.vreden.my.id/api/igstalk?query=", Dialect: "vreden"},
				{URL: "https://api.giftedtech.web.id/api/stalk/igstalk?apikey=gifted&username=", Dialect: "gokublack"},
				{URL: "https://gokublack.xyz/stalk/igstalk?usuario=", Dialect: "gokublack"},
			},
		},
		Cache: CacheConfig{
			Enabled:    false,
			MaxEntries: 256,
			TTL:        DurationFrom(5 * time.Minute),
		},
		Logging: LoggingConfig{
			Level:      "info",
			Structured: true,
		},
	}
}

// Load reads, merges, and validates configuration from a YAML file.
func Load(path string) (*Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer fh.Close()

	return LoadFromReader(fh)
}

// LoadFromReader decodes configuration from an arbitrary reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decodeYAML(r, &cfg); err != nil {
		return nil, err
	}
	cfg.normalise()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Validate enforces required invariants for the proxy configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}
	if c.Upstream.Timeout.Duration <= 0 {
		return fmt.Errorf("upstream.timeout must be > 0 (got %s)", c.Upstream.Timeout)
	}
	if c.Upstream.MaxBodyBytes <= 0 {
		return fmt.Errorf("upstream.max_body_bytes must be > 0 (got %d)", c.Upstream.MaxBodyBytes)
	}
	if strings.TrimSpace(c.Upstream.UserAgent) == "" {
		return errors.New("upstream.user_agent must be set")
	}

	groups := []struct {
		name      string
		endpoints []EndpointConfig
	}{
		{"download", c.Registry.Download},
		{"story", c.Registry.Story},
		{"user_search", c.Registry.UserSearch},
		{"hashtag_search", c.Registry.HashtagSearch},
		{"user_stalk", c.Registry.UserStalk},
	}
	for _, g := range groups {
		if len(g.endpoints) == 0 {
			return fmt.Errorf("registry.%s must list at least one endpoint", g.name)
		}
		for i, ep := range g.endpoints {
			parsed, err := url.Parse(ep.URL)
			if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
				return fmt.Errorf("registry.%s[%d] has invalid url %q", g.name, i, ep.URL)
			}
			if g.name == "user_stalk" {
				if ep.Dialect != "vreden" && ep.Dialect != "gokublack" {
					return fmt.Errorf("registry.user_stalk[%d] has unknown dialect %q", i, ep.Dialect)
				}
			} else if ep.Dialect != "" {
				return fmt.Errorf("registry.%s[%d] must not set a dialect", g.name, i)
			}
		}
	}

	if c.Cache.Enabled {
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be > 0 (got %d)", c.Cache.MaxEntries)
		}
		if c.Cache.TTL.Duration <= 0 {
			return fmt.Errorf("cache.ttl must be > 0 (got %s)", c.Cache.TTL)
		}
	}

	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalise() {
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	c.Upstream.UserAgent = strings.TrimSpace(c.Upstream.UserAgent)

	c.Registry.Download = cleanEndpoints(c.Registry.Download)
	c.Registry.Story = cleanEndpoints(c.Registry.Story)
	c.Registry.UserSearch = cleanEndpoints(c.Registry.UserSearch)
	c.Registry.HashtagSearch = cleanEndpoints(c.Registry.HashtagSearch)
	c.Registry.UserStalk = cleanEndpoints(c.Registry.UserStalk)

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

func cleanEndpoints(endpoints []EndpointConfig) []EndpointConfig {
	cleaned := make([]EndpointConfig, 0, len(endpoints))
	for _, ep := range endpoints {
		ep.URL = strings.TrimSpace(ep.URL)
		ep.Dialect = strings.ToLower(strings.TrimSpace(ep.Dialect))
		if ep.URL == "" {
			continue
		}
		cleaned = append(cleaned, ep)
	}
	return cleaned
}

// SlogLevel converts the configured level name to a slog.Level.
func (l LoggingConfig) SlogLevel() slog.Level {
	level, err := parseLevel(l.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown logging.level %q", name)
	}
}
