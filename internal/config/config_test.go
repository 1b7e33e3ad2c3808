package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
server:
  base_url: https://board.example.com
  ws_url: wss://board.example.com/realtime
  token: secret
identity:
  user_id: u-1
  username: jane
  display_name: Jane Doe
chat:
  history_limit: 25
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "https://board.example.com" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Identity.DisplayName != "Jane Doe" {
		t.Errorf("DisplayName = %q", cfg.Identity.DisplayName)
	}
	if cfg.Chat.HistoryLimit != 25 {
		t.Errorf("HistoryLimit = %d", cfg.Chat.HistoryLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadMissingFileWithEnv(t *testing.T) {
	t.Setenv("AGORA_SERVER", "https://env.example.com")
	t.Setenv("AGORA_USER", "envuser")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Chat.HistoryLimit != 50 {
		t.Errorf("HistoryLimit default = %d", cfg.Chat.HistoryLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateMissingServer(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty config")
	}
}
