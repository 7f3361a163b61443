package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.GRPC.Port != 50051 {
		t.Errorf("grpc.port default = %d, want 50051", cfg.GRPC.Port)
	}
	if cfg.GRPC.BindAddress != "auto" {
		t.Errorf("grpc.bind_address default = %q, want auto", cfg.GRPC.BindAddress)
	}
	if cfg.Metrics.Port != 9090 {
		t.Errorf("metrics.port default = %d, want 9090", cfg.Metrics.Port)
	}
	if cfg.Backend.Kind != BackendMock {
		t.Errorf("backend.kind default = %q, want %q", cfg.Backend.Kind, BackendMock)
	}
	if cfg.Cache.TTLSec != 300 {
		t.Errorf("cache.ttl_sec default = %d, want 300", cfg.Cache.TTLSec)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Backend.Kind = "elastic" }, "backend.kind"},
		{"bleve without path", func(c *Config) { c.Backend.Kind = BackendBleve }, "backend.index_path"},
		{"cache without addrs", func(c *Config) { c.Cache.Enabled = true }, "cache.addrs"},
		{"llm without key", func(c *Config) { c.LLM.Enabled = true }, "llm.api_key"},
		{"port clash", func(c *Config) { c.Metrics.Port = c.GRPC.Port }, "must differ"},
		{"port out of range", func(c *Config) { c.GRPC.Port = 70000 }, "grpc.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MEMVID_TEST_PORT", "6000")

	in := []byte("port: ${MEMVID_TEST_PORT}\naddr: ${MEMVID_TEST_MISSING:-localhost}\n")
	got := string(expandEnvVars(in))
	want := "port: 6000\naddr: localhost\n"
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}
