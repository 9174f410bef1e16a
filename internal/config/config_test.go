package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extraction.Provider != "openai" {
		t.Errorf("expected openai provider, got %s", cfg.Extraction.Provider)
	}
	if cfg.Extraction.APIKey != "${OPENAI_API_KEY}" {
		t.Error("expected API key placeholder")
	}
	if cfg.Ingest.DPI != 300 {
		t.Errorf("expected 300 DPI default, got %d", cfg.Ingest.DPI)
	}
	if cfg.Consolidation.GPATolerance != 0.05 {
		t.Errorf("expected GPA tolerance 0.05, got %f", cfg.Consolidation.GPATolerance)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_API_KEY", "secret123")
		defer os.Unsetenv("TEST_API_KEY")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestConfig_ResolveAPIKey(t *testing.T) {
	os.Setenv("TEST_OPENAI_KEY", "sk-test-123")
	defer os.Unsetenv("TEST_OPENAI_KEY")

	cfg := &Config{
		Extraction: ExtractionCfg{APIKey: "${TEST_OPENAI_KEY}"},
	}
	if got := cfg.ResolveAPIKey(); got != "sk-test-123" {
		t.Errorf("expected sk-test-123, got %s", got)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		configContent := `
extraction:
  model: "gpt-4o-mini"
consolidation:
  gpa_tolerance: 0.1
`
		if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Extraction.Model != "gpt-4o-mini" {
			t.Errorf("expected gpt-4o-mini, got %s", cfg.Extraction.Model)
		}
		if cfg.Consolidation.GPATolerance != 0.1 {
			t.Errorf("expected overridden GPA tolerance, got %f", cfg.Consolidation.GPATolerance)
		}
		// Unset values keep defaults.
		if cfg.Ingest.DPI != 300 {
			t.Errorf("expected default DPI, got %d", cfg.Ingest.DPI)
		}
	})
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("written default config does not load: %v", err)
	}
	if mgr.Get().Extraction.Model != "gpt-4o" {
		t.Errorf("unexpected model in written defaults: %s", mgr.Get().Extraction.Model)
	}
}
