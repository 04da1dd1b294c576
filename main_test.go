package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandConfigFlag(t *testing.T) {
	cmd := newRootCmd()
	flag := cmd.Flags().Lookup("config")
	if flag == nil {
		t.Fatalf("expected --config flag")
	}
	if flag.DefValue != "" {
		t.Fatalf("expected empty default, got %q", flag.DefValue)
	}
}

func TestRootCommandMissingConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "конфигурац") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestRootCommandMissingDataset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "dataset:\n  path: " + filepath.Join(dir, "absent.csv") + "\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", path})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "данные") {
		t.Fatalf("expected dataset error, got %v", err)
	}
}

func TestRootCommandRejectsUnknownFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--port", "9000"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}
