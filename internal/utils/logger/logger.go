package logger

import (
	"os"
	"strings"

	"BoatraceAPI/internal/config"

	"github.com/sirupsen/logrus"
)

// New 按配置创建全局日志实例；级别无法识别时退回 info
func New(cfg config.LogConfig) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}

	if err != nil && cfg.Level != "" {
		l.WithField("level", cfg.Level).Warn("未知的日志级别，使用info")
	}
	return l
}
