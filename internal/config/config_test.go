package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestViperConfigGetString(t *testing.T) {
	v := viper.New()
	v.Set("name", "test")
	cfg := New(v)

	if got := cfg.GetString("name"); got != "test" {
		t.Errorf("GetString('name') = %q, want %q", got, "test")
	}
}

func TestViperConfigGetInt(t *testing.T) {
	v := viper.New()
	v.Set("port", 8080)
	cfg := New(v)

	if got := cfg.GetInt("port"); got != 8080 {
		t.Errorf("GetInt('port') = %d, want %d", got, 8080)
	}
}

func TestViperConfigGetBool(t *testing.T) {
	v := viper.New()
	v.Set("enabled", true)
	cfg := New(v)

	if got := cfg.GetBool("enabled"); !got {
		t.Error("GetBool('enabled') = false, want true")
	}
}

func TestViperConfigGetDuration(t *testing.T) {
	v := viper.New()
	v.Set("timeout", "5s")
	cfg := New(v)

	want := 5 * time.Second
	if got := cfg.GetDuration("timeout"); got != want {
		t.Errorf("GetDuration('timeout') = %v, want %v", got, want)
	}
}

func TestViperConfigIsSet(t *testing.T) {
	v := viper.New()
	v.Set("exists", true)
	cfg := New(v)

	if !cfg.IsSet("exists") {
		t.Error("IsSet('exists') = false, want true")
	}
	if cfg.IsSet("missing") {
		t.Error("IsSet('missing') = true, want false")
	}
}

func TestViperConfigSub(t *testing.T) {
	v := viper.New()
	v.Set("server.limits.enabled", true)
	v.Set("server.limits.interval", 30)
	cfg := New(v)

	sub := cfg.Sub("server.limits")
	if sub == nil {
		t.Fatal("Sub('server.limits') = nil")
	}
	if got := sub.GetBool("enabled"); !got {
		t.Error("sub.GetBool('enabled') = false, want true")
	}
	if got := sub.GetInt("interval"); got != 30 {
		t.Errorf("sub.GetInt('interval') = %d, want %d", got, 30)
	}
}

func TestViperConfigSubMissing(t *testing.T) {
	v := viper.New()
	cfg := New(v)

	sub := cfg.Sub("nonexistent")
	if sub == nil {
		t.Fatal("Sub('nonexistent') should return empty Config, not nil")
	}
	// Should return zero values without panic.
	if got := cfg.GetString("anything"); got != "" {
		t.Errorf("empty config GetString() = %q, want empty", got)
	}
	_ = sub
}

func TestViperConfigUnmarshal(t *testing.T) {
	v := viper.New()
	v.Set("host", "localhost")
	v.Set("port", 9090)
	cfg := New(v)

	var target struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	}
	if err := cfg.Unmarshal(&target); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if target.Host != "localhost" {
		t.Errorf("Host = %q, want %q", target.Host, "localhost")
	}
	if target.Port != 9090 {
		t.Errorf("Port = %d, want %d", target.Port, 9090)
	}
}

func TestNilViper(t *testing.T) {
	cfg := New(nil)
	// Should not panic and return zero values.
	if got := cfg.GetString("key"); got != "" {
		t.Errorf("nil viper GetString() = %q, want empty", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if s.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", s.Server.Port)
	}
	if s.Server.RequestTimeout != 10*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 10s", s.Server.RequestTimeout)
	}
	if s.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", s.Database.Driver)
	}
	if !s.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want true")
	}
	if len(s.Server.TrustedProxies) != 0 {
		t.Errorf("Server.TrustedProxies = %v, want none", s.Server.TrustedProxies)
	}
	if got := s.Server.Addr(); got != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q, want 0.0.0.0:9090", got)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NEWSROOM_SERVER_PORT", "8181")
	t.Setenv("NEWSROOM_DATABASE_DRIVER", "postgres")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if s.Server.Port != 8181 {
		t.Errorf("Server.Port = %d, want 8181", s.Server.Port)
	}
	if s.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want postgres", s.Database.Driver)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsroom.yaml")
	data := "server:\n  port: 7070\n  rate_limit: 5\ndatabase:\n  dsn: /tmp/news.db\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.GetInt("server.port"); got != 7070 {
		t.Errorf("server.port = %d, want 7070", got)
	}
	if got := cfg.GetFloat64("server.rate_limit"); got != 5 {
		t.Errorf("server.rate_limit = %v, want 5", got)
	}
	if got := cfg.GetString("database.dsn"); got != "/tmp/news.db" {
		t.Errorf("database.dsn = %q, want /tmp/news.db", got)
	}
	if got := cfg.GetString("database.driver"); got != "sqlite" {
		t.Errorf("database.driver = %q, want default sqlite", got)
	}
}

func TestLoadTrustedProxies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsroom.yaml")
	data := "server:\n  trusted_proxies:\n    - 10.0.0.0/8\n    - 127.0.0.1\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if len(s.Server.TrustedProxies) != 2 || s.Server.TrustedProxies[0] != "10.0.0.0/8" {
		t.Errorf("Server.TrustedProxies = %v, want [10.0.0.0/8 127.0.0.1]", s.Server.TrustedProxies)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() with missing explicit file: want error")
	}
}
