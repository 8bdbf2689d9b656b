package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if len(cfg.Registry.Download) != 6 {
		t.Fatalf("expected 6 download endpoints, got %d", len(cfg.Registry.Download))
	}
	if len(cfg.Registry.UserStalk) != 3 {
		t.Fatalf("expected 3 stalk endpoints, got %d", len(cfg.Registry.UserStalk))
	}
	if cfg.Registry.UserStalk[0].Dialect != "vreden" {
		t.Fatalf("first stalk endpoint should use the vreden dialect, got %q", cfg.Registry.UserStalk[0].Dialect)
	}
}

func TestLoadFromReaderOverrides(t *testing.T) {
	yamlDoc := `
server:
  addr: ":9090"
upstream:
  timeout: 5s
cache:
  enabled: true
  max_entries: 10
  ttl: 30
logging:
  level: debug
`
	cfg, err := LoadFromReader(strings.NewReader(yamlDoc))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Upstream.Timeout.Duration != 5*time.Second {
		t.Fatalf("timeout = %s, want 5s", cfg.Upstream.Timeout)
	}
	if cfg.Cache.TTL.Duration != 30*time.Second {
		t.Fatalf("numeric ttl = %s, want 30s", cfg.Cache.TTL)
	}
	// Registry defaults survive a partial override.
	if len(cfg.Registry.Download) != 6 {
		t.Fatalf("expected default download endpoints, got %d", len(cfg.Registry.Download))
	}
}

func TestLoadFromReaderRejectsUnknownFields(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader("bogus_field: 1\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = " " }},
		{"zero timeout", func(c *Config) { c.Upstream.Timeout = Duration{} }},
		{"blank user agent", func(c *Config) { c.Upstream.UserAgent = "" }},
		{"no download endpoints", func(c *Config) { c.Registry.Download = nil }},
		{"bad endpoint url", func(c *Config) {
			c.Registry.Download = []EndpointConfig{{URL: "not a url"}}
		}},
		{"unknown stalk dialect", func(c *Config) {
			c.Registry.UserStalk[0].Dialect = "mystery"
		}},
		{"dialect outside stalk", func(c *Config) {
			c.Registry.Story[0].Dialect = "vreden"
		}},
		{"cache without entries", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.MaxEntries = 0
		}},
		{"unknown log level", func(c *Config) { c.Logging.Level = "shout" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNormaliseDropsBlankEndpoints(t *testing.T) {
	cfg := Default()
	cfg.Registry.Download = append(cfg.Registry.Download, EndpointConfig{URL: "   "})
	cfg.normalise()
	if len(cfg.Registry.Download) != 6 {
		t.Fatalf("blank endpoint should be dropped, got %d", len(cfg.Registry.Download))
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatalf("parse duration: %v", err)
	}
	if d.Duration != 90*time.Second {
		t.Fatalf("duration = %s, want 1m30s", d)
	}
	if err := d.UnmarshalText([]byte("nonsense")); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
