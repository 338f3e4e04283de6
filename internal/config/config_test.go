package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
port: "8080"
databaseURL: "postgres://localhost/printerstore"
jwtSecret: "0123456789abcdef0123456789abcdef"
`

func TestLoadMinimal(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.DatabaseURL == "" || cfg.JWTSecret == "" {
		t.Fatalf("required fields dropped: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db-host/override")
	t.Setenv("JWT_SECRET", "ffffffffffffffffffffffffffffffff")
	t.Setenv("LOGIN_RATE_LIMIT_PER_MINUTE", "7")

	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseURL != "postgres://db-host/override" {
		t.Fatalf("databaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "ffffffffffffffffffffffffffffffff" {
		t.Fatalf("jwtSecret not overridden")
	}
	if cfg.LoginRateLimitPerMinute != 7 {
		t.Fatalf("login rate limit = %d", cfg.LoginRateLimitPerMinute)
	}
}

func TestLoadRejectsMissingRequired(t *testing.T) {
	cases := map[string]string{
		"missing port":     "databaseURL: \"x\"\njwtSecret: \"y\"\n",
		"missing database": "port: \"8080\"\njwtSecret: \"y\"\n",
		"missing secret":   "port: \"8080\"\ndatabaseURL: \"x\"\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadRejectsPartialMinio(t *testing.T) {
	body := minimalConfig + "minioEndpoint: \"minio:9000\"\n"
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected error for minio endpoint without credentials")
	}
}

func TestLoadRejectsAdminWithoutPassword(t *testing.T) {
	body := minimalConfig + "adminUsername: \"admin\"\n"
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected error for admin username without password")
	}
}

func TestParseDurations(t *testing.T) {
	if _, err := ParseJWTTTL("not-a-duration"); err == nil {
		t.Fatalf("expected jwtTTL parse error")
	}
	ttl, err := ParseJWTTTL("24h")
	if err != nil || ttl != 24*time.Hour {
		t.Fatalf("jwtTTL = %v err=%v", ttl, err)
	}
	leeway, err := ParseJWTLeeway("")
	if err != nil || leeway != 0 {
		t.Fatalf("empty leeway = %v err=%v", leeway, err)
	}
	cache, err := ParseCatalogCacheTTL("30s")
	if err != nil || cache != 30*time.Second {
		t.Fatalf("cache ttl = %v err=%v", cache, err)
	}
}

func TestParseTrustedProxyCIDRs(t *testing.T) {
	got := ParseTrustedProxyCIDRs(" 10.0.0.0/8 , , 192.168.1.1 ")
	if len(got) != 2 || got[0] != "10.0.0.0/8" || got[1] != "192.168.1.1" {
		t.Fatalf("parsed = %v", got)
	}
	if ParseTrustedProxyCIDRs("") != nil {
		t.Fatalf("empty input should return nil")
	}
}
