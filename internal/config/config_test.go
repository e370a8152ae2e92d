package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	return dir
}

func TestLoadConfigFrom(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9100
  mode: debug
  pprof: true
cors:
  allow_origins: ["https://boatrace.example"]
source:
  driver: fixture
  fixture_dir: /data/fixtures
scraper:
  base_url: http://scraper:9000
  timeout: 3
  retry_count: 4
database:
  dsn: postgres://u:p@db:5432/boatrace
  conn_max_lifetime: 30m
log:
  level: debug
  format: json
`)

	cfg, err := LoadConfigFrom(dir)
	if err != nil {
		t.Fatalf("LoadConfigFrom error = %v", err)
	}

	if cfg.Server.Port != 9100 || cfg.Server.Mode != "debug" || !cfg.Server.Pprof {
		t.Errorf("server = %+v", cfg.Server)
	}
	if len(cfg.CORS.AllowOrigins) != 1 || cfg.CORS.AllowOrigins[0] != "https://boatrace.example" {
		t.Errorf("cors = %+v", cfg.CORS)
	}
	if cfg.Source.Driver != DriverFixture || cfg.Source.FixtureDir != "/data/fixtures" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Scraper.Timeout != 3 || cfg.Scraper.RetryCount != 4 {
		t.Errorf("scraper = %+v", cfg.Scraper)
	}
	// 未在文件中出现的字段取默认值
	if cfg.Scraper.RetryBackoffMs != 200 {
		t.Errorf("retry_backoff_ms = %d, want default 200", cfg.Scraper.RetryBackoffMs)
	}
	if cfg.Database.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("conn_max_lifetime = %v", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfigFrom error = %v", err)
	}
	if cfg.Server.Port != 8000 || cfg.Source.Driver != DriverScraper || cfg.Scraper.BaseURL == "" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Database.DSN != "" {
		t.Errorf("database.dsn = %q, want empty", cfg.Database.DSN)
	}
}

func TestLoadConfigFrom_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, `
scraper:
  base_url: http://from-file:9000
  auth_token: file-token
`)
	t.Setenv("SCRAPER_BASE_URL", "http://from-env:9000")
	t.Setenv("SCRAPER_AUTH_TOKEN", "env-token")
	t.Setenv("SCRAPER_PROXY", "http://proxy:8080")
	t.Setenv("DATABASE_DSN", "postgres://env/boatrace")
	t.Setenv("SERVER_PORT", "8123")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfigFrom(dir)
	if err != nil {
		t.Fatalf("LoadConfigFrom error = %v", err)
	}
	if cfg.Scraper.BaseURL != "http://from-env:9000" || cfg.Scraper.AuthToken != "env-token" || cfg.Scraper.Proxy != "http://proxy:8080" {
		t.Errorf("scraper = %+v", cfg.Scraper)
	}
	if cfg.Database.DSN != "postgres://env/boatrace" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Server.Port != 8123 || cfg.Log.Level != "warn" {
		t.Errorf("port = %d, level = %q", cfg.Server.Port, cfg.Log.Level)
	}
}

func TestLoadConfigFrom_BadPortEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	if _, err := LoadConfigFrom(t.TempDir()); err == nil {
		t.Fatal("期望 SERVER_PORT 非整数时报错")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Port: 8000},
			Source:  SourceConfig{Driver: DriverScraper},
			Scraper: ScraperConfig{BaseURL: "http://localhost:9000", Timeout: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown driver", func(c *Config) { c.Source.Driver = "redis" }, true},
		{"scraper without base url", func(c *Config) { c.Scraper.BaseURL = "" }, true},
		{"fixture without dir", func(c *Config) { c.Source.Driver = DriverFixture }, true},
		{"fixture with dir", func(c *Config) { c.Source = SourceConfig{Driver: DriverFixture, FixtureDir: "./testdata"} }, false},
		{"timeout zero", func(c *Config) { c.Scraper.Timeout = 0 }, true},
		{"negative retry", func(c *Config) { c.Scraper.RetryCount = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
