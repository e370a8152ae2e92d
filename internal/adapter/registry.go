package adapter

import (
	"fmt"
	"sort"
	"sync"

	"BoatraceAPI/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// ========== 全局工厂函数注册表 ==========
var (
	factoryMu       sync.RWMutex
	factoryRegistry = make(map[string]interfaces.SourceFactory)
)

// Register 供数据源实现的 init 函数调用，注册工厂函数
func Register(driver string, factory interfaces.SourceFactory) {
	if factory == nil {
		panic(fmt.Sprintf("数据源%s的工厂函数不能为nil", driver))
	}
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, exists := factoryRegistry[driver]; exists {
		logrus.Warnf("数据源%s已注册，将覆盖原有实现", driver)
	}
	factoryRegistry[driver] = factory
}

// GetFactory 获取指定驱动的工厂函数
func GetFactory(driver string) (interfaces.SourceFactory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	factory, ok := factoryRegistry[driver]
	return factory, ok
}

// ListFactories 列出所有已注册的驱动（按名称排序）
func ListFactories() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	drivers := make([]string, 0, len(factoryRegistry))
	for d := range factoryRegistry {
		drivers = append(drivers, d)
	}
	sort.Strings(drivers)
	return drivers
}
