package repository

import (
	"context"

	"BoatraceAPI/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessLogRepository 访问记录仓储，实现 interfaces.AccessRecorder
type AccessLogRepository struct {
	db *gorm.DB
}

// NewAccessLogRepository 创建访问记录仓储
func NewAccessLogRepository(db *gorm.DB) *AccessLogRepository {
	return &AccessLogRepository{db: db}
}

// Record 写入一条访问记录，LogUUID 为空时自动生成
func (r *AccessLogRepository) Record(ctx context.Context, entry *model.AccessLog) error {
	if entry.LogUUID == "" {
		entry.LogUUID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
