package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"BoatraceAPI/internal/adapter"
	"BoatraceAPI/internal/config"
	"BoatraceAPI/internal/interfaces"
	"BoatraceAPI/internal/model"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(config.DriverFixture, NewFixtureAdapter)
}

// Adapter 从本地目录读取爬虫输出的 JSON 快照，用于本地开发与测试
//
//	{dir}/{kind}/{YYYY-MM-DD}_{stadium}_{race}.json
//	{dir}/stadiums/{YYYY-MM-DD}.json
type Adapter struct {
	dir    string
	logger *logrus.Logger
}

func NewFixtureAdapter(cfg *config.Config, logger *logrus.Logger) (interfaces.RaceDataSource, error) {
	info, err := os.Stat(cfg.Source.FixtureDir)
	if err != nil {
		return nil, fmt.Errorf("fixture目录不可用: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixture路径不是目录: %s", cfg.Source.FixtureDir)
	}
	return &Adapter{dir: cfg.Source.FixtureDir, logger: logger}, nil
}

func (a *Adapter) GetName() string {
	return config.DriverFixture
}

func (a *Adapter) FetchRaceData(ctx context.Context, kind model.RaceDataKind, date model.Date, stadiumID, raceNumber int) (json.RawMessage, error) {
	body, err := a.read(ctx, a.racePath(kind, date, stadiumID, raceNumber))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: fixture %s 不是合法JSON", interfaces.ErrUpstream, kind)
	}
	return json.RawMessage(body), nil
}

func (a *Adapter) FetchResults(ctx context.Context, date model.Date, stadiumID, raceNumber int) (model.RawMap, error) {
	body, err := a.read(ctx, a.racePath(model.KindResults, date, stadiumID, raceNumber))
	if err != nil {
		return nil, err
	}
	var raw model.RawMap
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: 解析结果fixture失败: %w", interfaces.ErrUpstream, err)
	}
	return raw, nil
}

func (a *Adapter) FetchStadiums(ctx context.Context, date model.Date) (json.RawMessage, error) {
	body, err := a.read(ctx, filepath.Join(a.dir, string(model.KindStadiums), date.String()+".json"))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: fixture stadiums 不是合法JSON", interfaces.ErrUpstream)
	}
	return json.RawMessage(body), nil
}

func (a *Adapter) racePath(kind model.RaceDataKind, date model.Date, stadiumID, raceNumber int) string {
	name := fmt.Sprintf("%s_%d_%d.json", date.String(), stadiumID, raceNumber)
	return filepath.Join(a.dir, string(kind), name)
}

func (a *Adapter) read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrUpstream, err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		a.logger.WithError(err).WithField("path", path).Debug("读取fixture失败")
		return nil, fmt.Errorf("%w: 读取fixture失败: %w", interfaces.ErrUpstream, err)
	}
	return body, nil
}
