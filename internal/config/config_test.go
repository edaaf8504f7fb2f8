package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SYSDASH_DB_PATH", "SYSDASH_TABLE", "SYSDASH_LISTEN",
		"SYSDASH_AUTH_USER", "SYSDASH_AUTH_PASS", "SYSDASH_AUTH_PASS_HASH",
		"SYSDASH_SESSION_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "log.db" || cfg.Table != "system_log" {
		t.Errorf("store defaults = %q/%q", cfg.DBPath, cfg.Table)
	}
	if cfg.Listen != ":7655" {
		t.Errorf("listen = %q", cfg.Listen)
	}
	if cfg.AuthUser != "admin" || cfg.AuthPass != "admin123" {
		t.Errorf("auth defaults = %q/%q", cfg.AuthUser, cfg.AuthPass)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("session ttl = %v", cfg.SessionTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYSDASH_DB_PATH", "/var/lib/sysdash/log.db")
	t.Setenv("SYSDASH_TABLE", "host_log")
	t.Setenv("SYSDASH_AUTH_PASS_HASH", "$2a$12$fakehash")
	t.Setenv("SYSDASH_SESSION_TTL", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/var/lib/sysdash/log.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.Table != "host_log" {
		t.Errorf("table = %q", cfg.Table)
	}
	if cfg.AuthPassHash != "$2a$12$fakehash" {
		t.Error("hash not read")
	}
	if cfg.SessionTTL != 4*time.Hour {
		t.Errorf("session ttl = %v", cfg.SessionTTL)
	}
}

func TestLoadInvalidTTLFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYSDASH_SESSION_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("session ttl = %v, want default", cfg.SessionTTL)
	}
}

func TestLoadRejectsBadTableName(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYSDASH_TABLE", "system_log; DROP TABLE x")

	if _, err := Load(); err == nil {
		t.Error("expected error for unsafe table name")
	}
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := &Config{Table: "system_log", AuthUser: "admin"}
	if err := cfg.validate(); err == nil {
		t.Error("expected error when neither password nor hash is set")
	}

	cfg.AuthPassHash = "$2a$12$fakehash"
	if err := cfg.validate(); err != nil {
		t.Errorf("hash alone should satisfy validation: %v", err)
	}

	cfg = &Config{Table: "system_log", AuthPass: "admin123"}
	if err := cfg.validate(); err == nil {
		t.Error("expected error for empty auth user")
	}
}
