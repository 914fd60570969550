package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arclebanon/arccms/internal/config"
)

// TestInitCmd tests configuration file creation.
func TestInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates a loadable config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "arccms.yaml")
		out, err := run(t, "init", "-o", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Created configuration file") {
			t.Errorf("expected confirmation, got %q", out)
		}

		file, err := config.LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load generated config: %v", err)
		}
		if file.BaseURL != config.DefaultBaseURL {
			t.Errorf("expected base URL %q, got %q", config.DefaultBaseURL, file.BaseURL)
		}
		if file.SponsorsPerPage != config.DefaultSponsorsPerPage {
			t.Errorf("expected %d sponsors per page, got %d", config.DefaultSponsorsPerPage, file.SponsorsPerPage)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("failed to stat config: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".arccms")
		if err := os.WriteFile(path, []byte("baseURL: keep\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if _, err := run(t, "init", "-o", path); err == nil {
			t.Fatal("expected error for existing file")
		}

		data, err := os.ReadFile(path) //nolint:gosec // test path
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(data) != "baseURL: keep\n" {
			t.Error("expected existing file to be untouched")
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".arccms")
		if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if _, err := run(t, "init", "-o", path, "-f"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path) //nolint:gosec // test path
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if !strings.Contains(string(data), "baseURL:") {
			t.Error("expected template content")
		}
	})
}
