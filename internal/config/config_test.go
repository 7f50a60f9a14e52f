// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.Chat.Model = "test-model"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			cfg := Global()
			if cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "bad backend url",
			mutate: func(c *Config) { c.Backend.URL = "not a url" },
			field:  "backend.url",
		},
		{
			name:   "unknown mode",
			mutate: func(c *Config) { c.Chat.DefaultMode = "telepathy" },
			field:  "chat.default_mode",
		},
		{
			name:   "num_results too large",
			mutate: func(c *Config) { c.Search.NumResults = 50 },
			field:  "search.num_results",
		},
		{
			name:   "extension without dot",
			mutate: func(c *Config) { c.Upload.AllowedExtensions = []string{"pdf"} },
			field:  "upload.allowed_extensions",
		},
		{
			name:   "unknown theme",
			mutate: func(c *Config) { c.UI.Theme = "sepia" },
			field:  "ui.theme",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Validate() error %q should mention %q", err, tc.field)
			}
		})
	}
}

func TestSetDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Backend.URL == "" {
		t.Error("Backend.URL should be defaulted")
	}
	if cfg.Search.NumResults == 0 {
		t.Error("Search.NumResults should be defaulted")
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		t.Error("Upload.AllowedExtensions should be defaulted")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaulted config should validate, got: %v", err)
	}
}

func TestLoadFromPath_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[backend]
url = "http://backend.test:9000"
timeout_secs = 10

[chat]
default_mode = "web_search"

[search]
num_results = 8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Backend.URL != "http://backend.test:9000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Chat.DefaultMode != "web_search" {
		t.Errorf("Chat.DefaultMode = %q", cfg.Chat.DefaultMode)
	}
	if cfg.Search.NumResults != 8 {
		t.Errorf("Search.NumResults = %d", cfg.Search.NumResults)
	}
	// Unset sections keep defaults.
	if cfg.UI.Theme != "dark" {
		t.Errorf("UI.Theme = %q, want default 'dark'", cfg.UI.Theme)
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"backend": {"url": "http://json.test:8000"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Backend.URL != "http://json.test:8000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
}

func TestLoadFromPath_InvalidValuesRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[search]
num_results = 500
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath() should reject out-of-range num_results")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("WARM_BACKEND_URL", "http://env.test:7000")
	t.Setenv("WARM_MODE", "people_search")
	t.Setenv("WARM_NUM_RESULTS", "3")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "http://env.test:7000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Chat.DefaultMode != "people_search" {
		t.Errorf("Chat.DefaultMode = %q", cfg.Chat.DefaultMode)
	}
	if cfg.Search.NumResults != 3 {
		t.Errorf("Search.NumResults = %d", cfg.Search.NumResults)
	}
}

func TestGetSet_DotNotation(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("backend.url", "http://dot.test"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := cfg.Get("backend.url")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "http://dot.test" {
		t.Errorf("Get(backend.url) = %v", got)
	}

	// Numeric conversion from string input.
	if err := cfg.Set("search.num_results", "7"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Search.NumResults != 7 {
		t.Errorf("Search.NumResults = %d, want 7", cfg.Search.NumResults)
	}

	if _, err := cfg.Get("no.such.key"); err == nil {
		t.Error("Get() on unknown key should fail")
	}
}

func TestExtensionAllowed(t *testing.T) {
	cfg := Default()

	if !cfg.ExtensionAllowed(".pdf") {
		t.Error(".pdf should be allowed")
	}
	if !cfg.ExtensionAllowed(".PDF") {
		t.Error("Extension check should be case-insensitive")
	}
	if cfg.ExtensionAllowed(".exe") {
		t.Error(".exe should not be allowed")
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	// Redirect the config dir to a temp home.
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.Backend.URL = "http://roundtrip.test"
	cfg.Search.NumResults = 9

	path, err := ConfigPathTOML()
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Backend.URL != "http://roundtrip.test" {
		t.Errorf("Backend.URL = %q", loaded.Backend.URL)
	}
	if loaded.Search.NumResults != 9 {
		t.Errorf("Search.NumResults = %d", loaded.Search.NumResults)
	}
}

func TestClone_IsDeep(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()

	clone.Upload.AllowedExtensions[0] = ".changed"
	if cfg.Upload.AllowedExtensions[0] == ".changed" {
		t.Error("Clone() must copy the extension slice")
	}
}

func TestGetAllKeys_Resolvable(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}
}
