package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Addr string `env:"TASKHUB_TEST_ADDR" envDefault:"localhost:9090"`
	TTL  int    `env:"TASKHUB_TEST_TTL" envDefault:"15"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "localhost:9090" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.TTL != 15 {
		t.Fatalf("expected default ttl 15, got %d", cfg.TTL)
	}
}

func TestParseEnvOverride(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TASKHUB_TEST_TTL", "60")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.TTL != 60 {
		t.Fatalf("expected ttl 60, got %d", cfg.TTL)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TASKHUB_TEST_TTL", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
