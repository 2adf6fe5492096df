package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("Env = %q", cfg.Env)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("ObjectStoreType = %q", cfg.ObjectStoreType)
	}
	if cfg.RecordStoreType != "memory" {
		t.Fatalf("RecordStoreType = %q", cfg.RecordStoreType)
	}
	if cfg.CapabilityMode != "any" {
		t.Fatalf("CapabilityMode = %q", cfg.CapabilityMode)
	}
	if cfg.CapabilityMaxWidth != 768 {
		t.Fatalf("CapabilityMaxWidth = %d", cfg.CapabilityMaxWidth)
	}
	if cfg.ConversionFatal {
		t.Fatal("ConversionFatal should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("RECORD_STORE", "pg")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("LLM_PROVIDER", "GEMINI")
	t.Setenv("CAPABILITY_MODE", "AND")
	t.Setenv("CAPABILITY_MAX_WIDTH", "1024")
	t.Setenv("CONVERSION_FATAL", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg := Load()

	if cfg.Env != "production" {
		t.Fatalf("Env = %q", cfg.Env)
	}
	if cfg.RecordStoreType != "postgres" {
		t.Fatalf("RecordStoreType = %q", cfg.RecordStoreType)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("ObjectStoreType = %q", cfg.ObjectStoreType)
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("LLMProvider = %q", cfg.LLMProvider)
	}
	if cfg.CapabilityMode != "all" {
		t.Fatalf("CapabilityMode = %q", cfg.CapabilityMode)
	}
	if cfg.CapabilityMaxWidth != 1024 {
		t.Fatalf("CapabilityMaxWidth = %d", cfg.CapabilityMaxWidth)
	}
	if !cfg.ConversionFatal {
		t.Fatal("ConversionFatal should be true")
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://staging.example.com" {
		t.Fatalf("CORSAllowOrigin = %v", cfg.CORSAllowOrigin)
	}
}

func TestNormalizers(t *testing.T) {
	if got := normalizeRecordStoreType("Redis"); got != "redis" {
		t.Fatalf("normalizeRecordStoreType = %q", got)
	}
	if got := normalizeRecordStoreType("bogus"); got != "memory" {
		t.Fatalf("unknown record store = %q", got)
	}
	if got := normalizeProvider("none"); got != "none" {
		t.Fatalf("normalizeProvider none = %q", got)
	}
	if got := normalizeProvider("anything"); got != "openai" {
		t.Fatalf("normalizeProvider default = %q", got)
	}
	if got := normalizeCapabilityMode("weird"); got != "any" {
		t.Fatalf("normalizeCapabilityMode default = %q", got)
	}
}
