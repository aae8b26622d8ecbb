package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create temporary config file
	content := `
server:
  port: 9090
  host: "127.0.0.1"

kv:
  type: "memory"

auth:
  jwtSecret: "test-secret"
  adminEmail: "boss@app.com"

redis:
  host: "testredis"
  port: 6380
`

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Load config
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify loaded values
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}

	if cfg.KV.Type != "memory" {
		t.Errorf("Expected kv type memory, got %s", cfg.KV.Type)
	}

	if cfg.Auth.AdminEmail != "boss@app.com" {
		t.Errorf("Expected admin email boss@app.com, got %s", cfg.Auth.AdminEmail)
	}

	if cfg.Redis.Host != "testredis" {
		t.Errorf("Expected redis host testredis, got %s", cfg.Redis.Host)
	}

	// Verify defaults survive a partial file
	if cfg.Storage.BucketName != "post-images" {
		t.Errorf("Expected default bucket post-images, got %s", cfg.Storage.BucketName)
	}

	if cfg.AI.TextModel == "" {
		t.Error("Expected a default text model")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	content := `
server:
  port: 9090
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(tmpfile.Name()); err == nil {
		t.Error("Expected error when auth.jwtSecret is missing")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error when loading nonexistent file")
	}
}
