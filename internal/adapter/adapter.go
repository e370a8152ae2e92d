package adapter

import (
	"fmt"

	"BoatraceAPI/internal/config"
	"BoatraceAPI/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// NewSource 按 source.driver 从工厂注册表创建数据源。
// 具体实现需被匿名导入（import _ ".../adapter/scraper"）以触发注册
func NewSource(cfg *config.Config, logger *logrus.Logger) (interfaces.RaceDataSource, error) {
	driver := cfg.Source.Driver
	factory, ok := GetFactory(driver)
	if !ok {
		return nil, fmt.Errorf("未找到数据源驱动%s（已注册：%v）", driver, ListFactories())
	}

	source, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("初始化数据源%s失败: %w", driver, err)
	}
	if source == nil {
		return nil, fmt.Errorf("数据源%s的工厂函数返回nil", driver)
	}

	logger.WithFields(logrus.Fields{
		"driver": driver,
		"source": source.GetName(),
	}).Info("数据源初始化成功")
	return source, nil
}
