package interfaces

import (
	"context"
	"encoding/json"
	"errors"

	"BoatraceAPI/internal/config"
	"BoatraceAPI/internal/model"

	"github.com/sirupsen/logrus"
)

// ErrUpstream 上游（爬虫）调用失败，所有数据源实现都用它包装底层错误
var ErrUpstream = errors.New("上游数据源调用失败")

// RaceDataSource 比赛数据源：爬虫 HTTP 服务或本地 fixture 目录
type RaceDataSource interface {
	// GetName 数据源名称
	GetName() string
	// FetchRaceData 出走表/赔率/直前情报，原样透传
	FetchRaceData(ctx context.Context, kind model.RaceDataKind, date model.Date, stadiumID, raceNumber int) (json.RawMessage, error)
	// FetchResults 结果原始结构（场地 -> 场次 -> 记录）
	FetchResults(ctx context.Context, date model.Date, stadiumID, raceNumber int) (model.RawMap, error)
	// FetchStadiums 当日开催场一览
	FetchStadiums(ctx context.Context, date model.Date) (json.RawMessage, error)
}

// AccessRecorder 访问记录存储
type AccessRecorder interface {
	Record(ctx context.Context, entry *model.AccessLog) error
}

// SourceFactory 数据源工厂函数签名
// 入参：全局配置、日志实例
type SourceFactory func(cfg *config.Config, logger *logrus.Logger) (RaceDataSource, error)
