package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 数据源驱动
const (
	DriverScraper = "scraper"
	DriverFixture = "fixture"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	CORS     CORSConfig     `mapstructure:"cors"`     // 跨域配置
	Source   SourceConfig   `mapstructure:"source"`   // 数据源选择
	Scraper  ScraperConfig  `mapstructure:"scraper"`  // 爬虫服务配置
	Database DatabaseConfig `mapstructure:"database"` // 访问记录库（可选）
	Log      LogConfig      `mapstructure:"log"`      // 日志配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port  int    `mapstructure:"port"`  // 服务端口
	Mode  string `mapstructure:"mode"`  // Gin运行模式：debug/release/test
	Pprof bool   `mapstructure:"pprof"` // 是否注册pprof路由
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"` // 允许的前端来源
}

// SourceConfig 数据源配置
type SourceConfig struct {
	Driver     string `mapstructure:"driver"`      // scraper / fixture
	FixtureDir string `mapstructure:"fixture_dir"` // fixture 驱动读取的目录
}

// ScraperConfig 爬虫服务配置
type ScraperConfig struct {
	BaseURL        string `mapstructure:"base_url"`         // 爬虫服务基础地址
	Timeout        int    `mapstructure:"timeout"`          // 请求超时（秒）
	RetryCount     int    `mapstructure:"retry_count"`      // 重试次数
	RetryBackoffMs int    `mapstructure:"retry_backoff_ms"` // 重试间隔基数（毫秒），按次数线性增长
	AuthToken      string `mapstructure:"auth_token"`       // Bearer Token
	Proxy          string `mapstructure:"proxy"`            // 代理地址
}

// DatabaseConfig PostgreSQL 配置，DSN 为空时不启用访问记录
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("./config")
}

// LoadConfigFrom 从指定目录加载 config.yaml；文件不存在时使用默认值
func LoadConfigFrom(dir string) (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	v.SetTypeByDefaultValue(true)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	if err := overrideFromEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.pprof", false)
	v.SetDefault("cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("source.driver", DriverScraper)
	v.SetDefault("source.fixture_dir", "./testdata")
	v.SetDefault("scraper.base_url", "http://localhost:9000")
	v.SetDefault("scraper.timeout", 10)
	v.SetDefault("scraper.retry_count", 2)
	v.SetDefault("scraper.retry_backoff_ms", 200)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) error {
	if v := os.Getenv("SCRAPER_BASE_URL"); v != "" {
		cfg.Scraper.BaseURL = v
	}
	if v := os.Getenv("SCRAPER_AUTH_TOKEN"); v != "" {
		cfg.Scraper.AuthToken = v
	}
	if v := os.Getenv("SCRAPER_PROXY"); v != "" {
		cfg.Scraper.Proxy = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("环境变量 SERVER_PORT 不是整数: %q", v)
		}
		cfg.Server.Port = port
	}
	return nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port 超出范围: %d", c.Server.Port)
	}
	switch c.Source.Driver {
	case DriverScraper:
		if c.Scraper.BaseURL == "" {
			return errors.New("scraper.base_url 不能为空")
		}
	case DriverFixture:
		if c.Source.FixtureDir == "" {
			return errors.New("source.fixture_dir 不能为空")
		}
	default:
		return fmt.Errorf("未知的数据源驱动: %q", c.Source.Driver)
	}
	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout 必须为正数: %d", c.Scraper.Timeout)
	}
	if c.Scraper.RetryCount < 0 {
		return fmt.Errorf("scraper.retry_count 不能为负数: %d", c.Scraper.RetryCount)
	}
	return nil
}

// GetGORMConfig 获取GORM配置，debug 模式下打印SQL
func (d *DatabaseConfig) GetGORMConfig(debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gorm.Config{Logger: logger.Default.LogMode(level)}
}
